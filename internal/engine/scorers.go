package engine

import (
	"sort"

	"github.com/matchdayhq/matchday-data/internal/model"
)

// Score weights for the leaderboard. Goals dominate; player-of-the-match
// awards break ties between equal scorers.
const (
	goalWeight = 10
	potmWeight = 5
)

// AggregateGoalsFromEvents projects reconciled player stats into a ranked
// scorer leaderboard. It reconciles over fixtures and results combined,
// then emits a record for every player with at least one goal or
// player-of-the-match award. Consumers take the top N.
func AggregateGoalsFromEvents(fixtures, results []model.Match, teams []model.Team) []model.ScorerRecord {
	combined := make([]model.Match, 0, len(fixtures)+len(results))
	combined = append(combined, fixtures...)
	combined = append(combined, results...)

	var records []model.ScorerRecord
	for _, team := range ReconcilePlayers(teams, combined) {
		for _, p := range team.Players {
			if p.Stats.Goals == 0 && p.Stats.PotmWins == 0 {
				continue
			}
			records = append(records, model.ScorerRecord{
				Name:     p.Name,
				Team:     team.Name,
				Goals:    p.Stats.Goals,
				PotmWins: p.Stats.PotmWins,
				Score:    p.Stats.Goals*goalWeight + p.Stats.PotmWins*potmWeight,
			})
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Goals != records[j].Goals {
			return records[i].Goals > records[j].Goals
		}
		return records[i].Score > records[j].Score
	})
	return records
}
