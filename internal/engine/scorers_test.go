package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchdayhq/matchday-data/internal/model"
)

func TestAggregateGoalsFromEventsRanking(t *testing.T) {
	teams := []model.Team{{
		Name: "Green Mamba",
		Players: []model.Player{
			{ID: 1, Name: "P1", BaseStats: model.PlayerStats{Goals: 3}},
			{ID: 2, Name: "P2", BaseStats: model.PlayerStats{Goals: 2, PotmWins: 2}},
		},
	}}

	records := AggregateGoalsFromEvents(nil, nil, teams)
	require.Len(t, records, 2)

	// Goals are compared first: 3 goals outranks 2 goals + 2 awards even
	// though the weighted scores are level (30 vs 30).
	assert.Equal(t, "P1", records[0].Name)
	assert.Equal(t, 30, records[0].Score)
	assert.Equal(t, "P2", records[1].Name)
	assert.Equal(t, 30, records[1].Score)
}

func TestAggregateGoalsFromEventsScoreTiebreak(t *testing.T) {
	teams := []model.Team{{
		Name: "Green Mamba",
		Players: []model.Player{
			{ID: 1, Name: "Plain", BaseStats: model.PlayerStats{Goals: 2}},
			{ID: 2, Name: "Decorated", BaseStats: model.PlayerStats{Goals: 2, PotmWins: 1}},
		},
	}}

	records := AggregateGoalsFromEvents(nil, nil, teams)
	require.Len(t, records, 2)
	assert.Equal(t, "Decorated", records[0].Name) // 25 beats 20 on equal goals
	assert.Equal(t, "Plain", records[1].Name)
}

func TestAggregateGoalsFromEventsFiltersNonScorers(t *testing.T) {
	teams := []model.Team{{
		Name: "Green Mamba",
		Players: []model.Player{
			{ID: 1, Name: "Keeper", Position: model.PositionGoalkeeper},
			{ID: 2, Name: "Awarded", BaseStats: model.PlayerStats{PotmWins: 1}},
		},
	}}

	records := AggregateGoalsFromEvents(nil, nil, teams)
	require.Len(t, records, 1)
	assert.Equal(t, "Awarded", records[0].Name)
	assert.Equal(t, 5, records[0].Score)
}

func TestAggregateGoalsFromEventsCombinesFixturesAndResults(t *testing.T) {
	teams := []model.Team{
		{Name: "Green Mamba", Players: []model.Player{{ID: 9, Name: "Striker"}}},
		{Name: "Mbabane Swallows"},
	}
	results := []model.Match{{
		TeamA: "Green Mamba", TeamB: "Mbabane Swallows",
		FullDate: "2024-01-01", Status: model.StatusFinished,
		ScoreA: intPtr(2), ScoreB: intPtr(0),
		Events: []model.MatchEvent{
			{Type: model.EventGoal, TeamName: "Green Mamba", PlayerID: 9},
			{Type: model.EventGoal, TeamName: "Green Mamba", PlayerID: 9},
		},
	}}
	// A duplicate of the result lingering in the fixtures list must not
	// double the tally.
	fixtures := []model.Match{{
		TeamA: "Green Mamba", TeamB: "Mbabane Swallows",
		FullDate: "2024-01-01", Status: model.StatusScheduled,
	}}

	records := AggregateGoalsFromEvents(fixtures, results, teams)
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Goals)
	assert.Equal(t, 20, records[0].Score)
}
