// Package importer decodes candidate match records produced outside the
// engine — the AI text/image import pipeline, spreadsheet exports, manual
// admin entry. Producers disagree on field names and types (scores arrive
// as numbers or strings, teams as teamA/teamB or home/away), so decoding is
// deliberately lenient: a record is salvaged whenever both team names can
// be recovered, and everything else defaults. The output is plain
// model.Match values; reconciliation treats them like any other source.
package importer

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/matchdayhq/matchday-data/internal/model"
)

// rawRecord accepts the union of field spellings seen across producers.
type rawRecord struct {
	ID       string          `json:"id"`
	TeamA    string          `json:"teamA"`
	Home     string          `json:"home"`
	HomeTeam string          `json:"homeTeam"`
	TeamB    string          `json:"teamB"`
	Away     string          `json:"away"`
	AwayTeam string          `json:"awayTeam"`
	Date     string          `json:"date"`
	FullDate string          `json:"fullDate"`
	Kickoff  string          `json:"kickoff"`
	Venue    string          `json:"venue"`
	Status   string          `json:"status"`
	ScoreA   json.RawMessage `json:"scoreA"`
	ScoreB   json.RawMessage `json:"scoreB"`
	HomeGoal json.RawMessage `json:"homeScore"`
	AwayGoal json.RawMessage `json:"awayScore"`

	Events           []model.MatchEvent `json:"events"`
	Lineups          model.Lineups      `json:"lineups"`
	PlayerOfTheMatch *model.PlayerRef   `json:"playerOfTheMatch"`
}

// Result reports what a parse run kept and dropped.
type Result struct {
	Matches []model.Match
	Skipped int
}

// Summary returns a human-readable summary.
func (r *Result) Summary() string {
	return fmt.Sprintf("parsed=%d skipped=%d", len(r.Matches), r.Skipped)
}

// Parse decodes a JSON array of candidate match records. Records missing
// either team name are counted as skipped, never fatal; only malformed JSON
// at the document level returns an error.
func Parse(data []byte) (*Result, error) {
	var raws []rawRecord
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("decode import payload: %w", err)
	}

	result := &Result{}
	for _, r := range raws {
		m, ok := convert(r)
		if !ok {
			result.Skipped++
			continue
		}
		result.Matches = append(result.Matches, m)
	}
	return result, nil
}

func convert(r rawRecord) (model.Match, bool) {
	teamA := firstNonEmpty(r.TeamA, r.Home, r.HomeTeam)
	teamB := firstNonEmpty(r.TeamB, r.Away, r.AwayTeam)
	if teamA == "" || teamB == "" {
		return model.Match{}, false
	}

	m := model.Match{
		ID:               r.ID,
		TeamA:            teamA,
		TeamB:            teamB,
		Date:             r.Date,
		FullDate:         firstNonEmpty(r.FullDate, r.Kickoff),
		Venue:            r.Venue,
		Status:           normalizeStatus(r.Status),
		Events:           r.Events,
		Lineups:          r.Lineups,
		PlayerOfTheMatch: r.PlayerOfTheMatch,
	}

	if v, ok := coerceScore(r.ScoreA, r.HomeGoal); ok {
		m.ScoreA = &v
	}
	if v, ok := coerceScore(r.ScoreB, r.AwayGoal); ok {
		m.ScoreB = &v
	}

	// A record carrying both scores but no status is a result in all but
	// name.
	if m.Status == "" {
		if m.ScoreA != nil && m.ScoreB != nil {
			m.Status = model.StatusFinished
		} else {
			m.Status = model.StatusScheduled
		}
	}
	return m, true
}

// coerceScore extracts an integer score from whichever field the producer
// filled, accepting JSON numbers and numeric strings.
func coerceScore(candidates ...json.RawMessage) (int, bool) {
	for _, raw := range candidates {
		if len(raw) == 0 || string(raw) == "null" {
			continue
		}

		var n int
		if err := json.Unmarshal(raw, &n); err == nil {
			return n, true
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return int(f), true
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
				return n, true
			}
		}
	}
	return 0, false
}

var statusAliases = map[string]string{
	"ft":        model.StatusFinished,
	"fulltime":  model.StatusFinished,
	"full-time": model.StatusFinished,
	"final":     model.StatusFinished,
	"played":    model.StatusFinished,
	"upcoming":  model.StatusScheduled,
	"fixture":   model.StatusScheduled,
	"tbd":       model.StatusScheduled,
}

func normalizeStatus(status string) string {
	s := strings.ToLower(strings.TrimSpace(status))
	if canonical, ok := statusAliases[s]; ok {
		return canonical
	}
	switch s {
	case model.StatusScheduled, model.StatusLive, model.StatusFinished,
		model.StatusPostponed, model.StatusCancelled,
		model.StatusAbandoned, model.StatusSuspended:
		return s
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
