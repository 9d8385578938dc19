package engine

import (
	"sort"
	"strings"

	"github.com/matchdayhq/matchday-data/internal/model"
)

const formLength = 5

// CalculateStandings folds finished matches into a fresh league table.
//
// Every input team gets an all-zero row; results and fixtures are combined,
// restricted to finished matches with both scores present, and
// deduplicated. A record marked finished without a score, or naming a team
// that normalizes to no known side, is skipped — one malformed record must
// never abort the table. Points are fixed at win 3, draw 1.
//
// The returned slice is sorted by points, then goal difference, then goals
// scored. Input slices are not mutated.
func CalculateStandings(teams []model.Team, results, fixtures []model.Match) []model.Team {
	combined := make([]model.Match, 0, len(results)+len(fixtures))
	combined = append(combined, results...)
	combined = append(combined, fixtures...)

	countable := combined[:0:0]
	for _, m := range combined {
		if m.Status == model.StatusFinished && m.ScoreA != nil && m.ScoreB != nil {
			countable = append(countable, m)
		}
	}

	rows := make(map[string]*model.LeagueRow, len(teams))
	forms := make(map[string][]string, len(teams))
	for _, t := range teams {
		rows[Normalize(t.Name)] = &model.LeagueRow{}
	}

	for _, m := range sortedMatches(DedupMatches(countable)) {
		keyA, keyB := Normalize(m.TeamA), Normalize(m.TeamB)
		rowA, rowB := rows[keyA], rows[keyB]
		if rowA == nil || rowB == nil {
			continue // no row to update
		}

		scoreA, scoreB := *m.ScoreA, *m.ScoreB
		applySide(rowA, scoreA, scoreB)
		applySide(rowB, scoreB, scoreA)
		forms[keyA] = append(forms[keyA], resultCode(scoreA, scoreB))
		forms[keyB] = append(forms[keyB], resultCode(scoreB, scoreA))
	}

	out := make([]model.Team, len(teams))
	for i, t := range teams {
		key := Normalize(t.Name)
		out[i] = t
		out[i].Stats = *rows[key]
		out[i].Stats.Form = formString(forms[key])
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Stats, out[j].Stats
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDifference != b.GoalDifference {
			return a.GoalDifference > b.GoalDifference
		}
		return a.GoalsFor > b.GoalsFor
	})
	return out
}

// CalculateGroupStandings restricts matches to those between members of the
// group's team set, then delegates to CalculateStandings. Group stages use
// no separate algorithm.
func CalculateGroupStandings(teams []model.Team, matches []model.Match) []model.Team {
	members := make(map[string]bool, len(teams))
	for _, t := range teams {
		members[Normalize(t.Name)] = true
	}

	var inGroup []model.Match
	for _, m := range matches {
		if members[Normalize(m.TeamA)] && members[Normalize(m.TeamB)] {
			inGroup = append(inGroup, m)
		}
	}
	return CalculateStandings(teams, inGroup, nil)
}

func applySide(row *model.LeagueRow, scored, conceded int) {
	row.Played++
	row.GoalsFor += scored
	row.GoalsAgainst += conceded
	row.GoalDifference = row.GoalsFor - row.GoalsAgainst
	switch {
	case scored > conceded:
		row.Won++
		row.Points += 3
	case scored == conceded:
		row.Drawn++
		row.Points++
	default:
		row.Lost++
	}
}

func resultCode(scored, conceded int) string {
	switch {
	case scored > conceded:
		return "W"
	case scored == conceded:
		return "D"
	default:
		return "L"
	}
}

// formString keeps the last formLength results and flips them so the most
// recent comes first.
func formString(codes []string) string {
	if len(codes) > formLength {
		codes = codes[len(codes)-formLength:]
	}
	reversed := make([]string, len(codes))
	for i, c := range codes {
		reversed[len(codes)-1-i] = c
	}
	return strings.Join(reversed, " ")
}
