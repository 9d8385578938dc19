package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchdayhq/matchday-data/internal/model"
)

func finished(teamA, teamB string, scoreA, scoreB int, date string) model.Match {
	return model.Match{
		TeamA: teamA, TeamB: teamB,
		FullDate: date, Status: model.StatusFinished,
		ScoreA: intPtr(scoreA), ScoreB: intPtr(scoreB),
	}
}

func TestCalculateStandingsEndToEnd(t *testing.T) {
	teams := []model.Team{{Name: "Mbabane Swallows"}, {Name: "Green Mamba"}}
	results := []model.Match{finished("Mbabane Swallows", "Green Mamba", 3, 1, "2024-01-01")}

	table := CalculateStandings(teams, results, nil)
	require.Len(t, table, 2)

	swallows, mamba := table[0], table[1]
	assert.Equal(t, "Mbabane Swallows", swallows.Name)
	assert.Equal(t, model.LeagueRow{
		Played: 1, Won: 1, GoalsFor: 3, GoalsAgainst: 1,
		GoalDifference: 2, Points: 3, Form: "W",
	}, swallows.Stats)

	assert.Equal(t, "Green Mamba", mamba.Name)
	assert.Equal(t, model.LeagueRow{
		Played: 1, Lost: 1, GoalsFor: 1, GoalsAgainst: 3,
		GoalDifference: -2, Form: "L",
	}, mamba.Stats)
}

func TestCalculateStandingsDraw(t *testing.T) {
	teams := []model.Team{{Name: "A"}, {Name: "B"}}
	table := CalculateStandings(teams, []model.Match{finished("A", "B", 1, 1, "2024-01-01")}, nil)

	for _, row := range table {
		assert.Equal(t, 1, row.Stats.Points)
		assert.Equal(t, 1, row.Stats.Drawn)
		assert.Equal(t, "D", row.Stats.Form)
	}
}

func TestCalculateStandingsSymmetricDuplicate(t *testing.T) {
	// The same real match recorded twice with the sides flipped must count
	// once, not twice.
	teams := []model.Team{{Name: "Mbabane Swallows"}, {Name: "Green Mamba"}}
	results := []model.Match{
		finished("Mbabane Swallows", "Green Mamba", 2, 1, "2024-01-01"),
		finished("Green Mamba", "Mbabane Swallows", 1, 2, "2024-01-01"),
	}

	table := CalculateStandings(teams, results, nil)
	assert.Equal(t, 1, table[0].Stats.Played)
	assert.Equal(t, 1, table[1].Stats.Played)
	assert.Equal(t, 3, table[0].Stats.Points)
}

func TestCalculateStandingsSkipsMalformedRecords(t *testing.T) {
	teams := []model.Team{{Name: "A"}, {Name: "B"}}
	results := []model.Match{
		// Marked finished but missing a score.
		{TeamA: "A", TeamB: "B", FullDate: "2024-01-01", Status: model.StatusFinished, ScoreA: intPtr(2)},
		// References a team nobody knows.
		finished("A", "Phantom FC", 4, 0, "2024-01-08"),
		// Scoreline present but the match was abandoned.
		{TeamA: "A", TeamB: "B", FullDate: "2024-01-15", Status: model.StatusAbandoned, ScoreA: intPtr(1), ScoreB: intPtr(0)},
	}

	table := CalculateStandings(teams, results, nil)
	for _, row := range table {
		assert.Equal(t, 0, row.Stats.Played, "team %s", row.Name)
		assert.Equal(t, "", row.Stats.Form)
	}
}

func TestCalculateStandingsFormBound(t *testing.T) {
	teams := []model.Team{{Name: "A"}, {Name: "B"}}
	results := []model.Match{
		finished("A", "B", 1, 0, "2024-01-01"),
		finished("A", "B", 0, 1, "2024-01-08"),
		finished("A", "B", 2, 2, "2024-01-15"),
		finished("A", "B", 3, 0, "2024-01-22"),
		finished("A", "B", 1, 0, "2024-01-29"),
		finished("A", "B", 0, 2, "2024-02-05"),
		finished("A", "B", 5, 0, "2024-02-12"),
	}

	table := CalculateStandings(teams, results, nil)
	var a model.Team
	for _, row := range table {
		if row.Name == "A" {
			a = row
		}
	}

	tokens := strings.Fields(a.Stats.Form)
	require.Len(t, tokens, 5)
	// Most recent first: W (5-0), L (0-2), W (1-0), W (3-0), D (2-2).
	assert.Equal(t, []string{"W", "L", "W", "W", "D"}, tokens)
}

func TestCalculateStandingsSortOrder(t *testing.T) {
	teams := []model.Team{{Name: "A"}, {Name: "B"}, {Name: "C"}}
	results := []model.Match{
		finished("A", "B", 2, 0, "2024-01-01"), // A 3pts GD+2
		finished("C", "B", 3, 0, "2024-01-08"), // C 3pts GD+3
	}

	table := CalculateStandings(teams, results, nil)
	require.Len(t, table, 3)
	assert.Equal(t, "C", table[0].Name) // same points, better GD
	assert.Equal(t, "A", table[1].Name)
	assert.Equal(t, "B", table[2].Name)
}

func TestCalculateStandingsIdempotent(t *testing.T) {
	teams := []model.Team{{Name: "Mbabane Swallows"}, {Name: "Green Mamba"}, {Name: "Royal Leopards"}}
	results := []model.Match{
		finished("Mbabane Swallows", "Green Mamba", 2, 2, "2024-01-01"),
		finished("Royal Leopards", "Mbabane Swallows", 0, 1, "2024-01-08"),
	}
	fixtures := []model.Match{
		{TeamA: "Green Mamba", TeamB: "Royal Leopards", FullDate: "2024-03-01", Status: model.StatusScheduled},
	}

	first := CalculateStandings(teams, results, fixtures)
	second := CalculateStandings(teams, results, fixtures)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestCalculateStandingsDoesNotMutateInput(t *testing.T) {
	teams := []model.Team{{Name: "A", Stats: model.LeagueRow{Points: 99}}, {Name: "B"}}
	results := []model.Match{finished("A", "B", 1, 0, "2024-01-01")}

	_ = CalculateStandings(teams, results, nil)
	assert.Equal(t, 99, teams[0].Stats.Points, "input team must be untouched")
}

func TestCalculateGroupStandings(t *testing.T) {
	group := []model.Team{{Name: "A"}, {Name: "B"}}
	matches := []model.Match{
		finished("A", "B", 1, 0, "2024-01-01"),
		// Cross-group match must not count.
		finished("A", "Outsider", 0, 7, "2024-01-08"),
	}

	table := CalculateGroupStandings(group, matches)
	require.Len(t, table, 2)
	assert.Equal(t, "A", table[0].Name)
	assert.Equal(t, 1, table[0].Stats.Played)
	assert.Equal(t, 1, table[0].Stats.GoalsFor)
	assert.Equal(t, 0, table[0].Stats.GoalsAgainst)
}
