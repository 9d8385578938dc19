package engine

import "github.com/matchdayhq/matchday-data/internal/model"

// RenameTeamInMatches rewrites teamA/teamB on every match where the current
// name normalize-equals oldName. Used when an admin renames a team so that
// historical matches stay joinable to the renamed roster. Returns a new
// slice; the input is not mutated.
func RenameTeamInMatches(matches []model.Match, oldName, newName string) []model.Match {
	key := Normalize(oldName)
	out := make([]model.Match, len(matches))
	for i, m := range matches {
		if Normalize(m.TeamA) == key {
			m.TeamA = newName
		}
		if Normalize(m.TeamB) == key {
			m.TeamB = newName
		}
		out[i] = m
	}
	return out
}
