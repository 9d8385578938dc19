package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matchdayhq/matchday-data/internal/model"
)

func playerByName(t *testing.T, teams []model.Team, name string) model.Player {
	t.Helper()
	key := Normalize(name)
	for _, team := range teams {
		for _, p := range team.Players {
			if Normalize(p.Name) == key {
				return p
			}
		}
	}
	t.Fatalf("player %q not found", name)
	return model.Player{}
}

func TestReconcilePlayersBaselinePlusDeltas(t *testing.T) {
	teams := []model.Team{{
		Name: "Mbabane Swallows",
		Players: []model.Player{{
			ID: 7, Name: "Sabelo Ndzinisa", Position: model.PositionForward,
			BaseStats: model.PlayerStats{Appearances: 100, Goals: 40},
			// Stale derived stats from a previous run must be ignored.
			Stats: model.PlayerStats{Appearances: 999, Goals: 999},
		}},
	}, {Name: "Green Mamba"}}

	matches := []model.Match{{
		TeamA: "Mbabane Swallows", TeamB: "Green Mamba",
		FullDate: "2024-01-01", Status: model.StatusFinished,
		ScoreA: intPtr(2), ScoreB: intPtr(0),
		Lineups: model.Lineups{TeamA: model.Lineup{Starters: []int{7}}},
		Events: []model.MatchEvent{
			{Type: model.EventGoal, TeamName: "Mbabane Swallows", PlayerID: 7},
			{Type: model.EventGoal, TeamName: "Mbabane Swallows", PlayerID: 7},
		},
	}}

	out := ReconcilePlayers(teams, matches)
	p := playerByName(t, out, "Sabelo Ndzinisa")
	assert.Equal(t, 101, p.Stats.Appearances)
	assert.Equal(t, 42, p.Stats.Goals)
	// The baseline itself is immutable input.
	assert.Equal(t, model.PlayerStats{Appearances: 100, Goals: 40}, p.BaseStats)
}

func TestReconcilePlayersIdempotent(t *testing.T) {
	teams := []model.Team{{
		Name: "Mbabane Swallows",
		Players: []model.Player{
			{ID: 1, Name: "Keeper", Position: model.PositionGoalkeeper},
			{ID: 7, Name: "Striker", Position: model.PositionForward, BaseStats: model.PlayerStats{Goals: 3}},
		},
	}, {Name: "Green Mamba"}}
	matches := []model.Match{{
		TeamA: "Mbabane Swallows", TeamB: "Green Mamba",
		FullDate: "2024-01-01", Status: model.StatusFinished,
		ScoreA: intPtr(1), ScoreB: intPtr(0),
		Lineups: model.Lineups{TeamA: model.Lineup{Starters: []int{1, 7}}},
		Events:  []model.MatchEvent{{Type: model.EventGoal, TeamName: "Mbabane Swallows", PlayerID: 7}},
	}}

	first := ReconcilePlayers(teams, matches)
	second := ReconcilePlayers(teams, matches)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))

	// Re-running over the first run's output changes nothing either —
	// recomputation always restarts from baseStats.
	third := ReconcilePlayers(first, matches)
	c, err := json.Marshal(third)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(c))
}

func TestReconcilePlayersAppearanceDedup(t *testing.T) {
	teams := []model.Team{{
		Name:    "Mbabane Swallows",
		Players: []model.Player{{ID: 7, Name: "Striker"}},
	}, {Name: "Green Mamba"}}

	record := model.Match{
		TeamA: "Mbabane Swallows", TeamB: "Green Mamba",
		FullDate: "2024-01-01", Status: model.StatusFinished,
		ScoreA: intPtr(1), ScoreB: intPtr(1),
		Lineups: model.Lineups{TeamA: model.Lineup{Starters: []int{7}}},
	}
	// Same real match imported twice.
	out := ReconcilePlayers(teams, []model.Match{record, record})

	p := playerByName(t, out, "Striker")
	assert.Equal(t, 1, p.Stats.Appearances)
}

func TestReconcilePlayersCleanSheets(t *testing.T) {
	teams := []model.Team{{
		Name: "Green Mamba",
		Players: []model.Player{
			{ID: 1, Name: "Keeper", Position: model.PositionGoalkeeper},
			{ID: 2, Name: "Centre Back", Position: model.PositionDefender},
			{ID: 10, Name: "Playmaker", Position: model.PositionMidfielder},
		},
	}, {Name: "Mbabane Swallows"}}

	matches := []model.Match{{
		TeamA: "Green Mamba", TeamB: "Mbabane Swallows",
		FullDate: "2024-01-01", Status: model.StatusFinished,
		ScoreA: intPtr(2), ScoreB: intPtr(0),
		Lineups: model.Lineups{TeamA: model.Lineup{Starters: []int{1, 2, 10}}},
	}}

	out := ReconcilePlayers(teams, matches)
	assert.Equal(t, 1, playerByName(t, out, "Keeper").Stats.CleanSheets)
	assert.Equal(t, 1, playerByName(t, out, "Centre Back").Stats.CleanSheets)
	// Midfielders do not collect clean sheets.
	assert.Equal(t, 0, playerByName(t, out, "Playmaker").Stats.CleanSheets)
}

func TestReconcilePlayersDiscoversFromEvents(t *testing.T) {
	teams := []model.Team{{Name: "Green Mamba"}, {Name: "Mbabane Swallows"}}
	matches := []model.Match{{
		TeamA: "Green Mamba", TeamB: "Mbabane Swallows",
		FullDate: "2024-01-01", Status: model.StatusFinished,
		ScoreA: intPtr(1), ScoreB: intPtr(0),
		Events: []model.MatchEvent{
			{Type: model.EventGoal, TeamName: "Green Mamba", PlayerName: "Mystery Scorer"},
		},
	}}

	first := ReconcilePlayers(teams, matches)
	p := playerByName(t, first, "Mystery Scorer")
	assert.Equal(t, 1, p.Stats.Goals)
	assert.Equal(t, StableID("Mystery Scorer"), p.ID)

	// Same input again: same identity, no duplicate player minted.
	second := ReconcilePlayers(teams, matches)
	q := playerByName(t, second, "Mystery Scorer")
	assert.Equal(t, p.ID, q.ID)
	for _, team := range second {
		seen := 0
		for _, pl := range team.Players {
			if Normalize(pl.Name) == Normalize("Mystery Scorer") {
				seen++
			}
		}
		assert.LessOrEqual(t, seen, 1)
	}
}

func TestReconcilePlayersCardsAndAssists(t *testing.T) {
	teams := []model.Team{{
		Name: "Green Mamba",
		Players: []model.Player{
			{ID: 4, Name: "Enforcer", Position: model.PositionDefender},
			{ID: 10, Name: "Playmaker", Position: model.PositionMidfielder},
			{ID: 9, Name: "Striker", Position: model.PositionForward},
		},
	}, {Name: "Mbabane Swallows"}}

	matches := []model.Match{{
		TeamA: "Green Mamba", TeamB: "Mbabane Swallows",
		FullDate: "2024-01-01", Status: model.StatusFinished,
		ScoreA: intPtr(1), ScoreB: intPtr(2),
		Events: []model.MatchEvent{
			{Type: model.EventGoal, TeamName: "Green Mamba", PlayerID: 9, AssistPlayerID: 10},
			{Type: model.EventCard, TeamName: "Green Mamba", PlayerID: 4, Card: model.CardYellow},
			{Type: model.EventCard, TeamName: "Green Mamba", PlayerID: 4, Card: model.CardRed},
			{Type: model.EventSubstitution, TeamName: "Green Mamba", PlayerID: 10},
		},
	}}

	out := ReconcilePlayers(teams, matches)
	assert.Equal(t, 1, playerByName(t, out, "Striker").Stats.Goals)
	assert.Equal(t, 1, playerByName(t, out, "Playmaker").Stats.Assists)

	enforcer := playerByName(t, out, "Enforcer")
	assert.Equal(t, 1, enforcer.Stats.YellowCards)
	assert.Equal(t, 1, enforcer.Stats.RedCards)
}

func TestReconcilePlayersPlayerOfTheMatch(t *testing.T) {
	teams := []model.Team{{
		Name:    "Green Mamba",
		Players: []model.Player{{ID: 9, Name: "Striker"}},
	}, {Name: "Mbabane Swallows"}}

	matches := []model.Match{{
		TeamA: "Green Mamba", TeamB: "Mbabane Swallows",
		FullDate: "2024-01-01", Status: model.StatusFinished,
		ScoreA: intPtr(3), ScoreB: intPtr(0),
		PlayerOfTheMatch: &model.PlayerRef{Name: "Striker", Team: "Green Mamba"},
	}}

	out := ReconcilePlayers(teams, matches)
	assert.Equal(t, 1, playerByName(t, out, "Striker").Stats.PotmWins)
}

func TestReconcilePlayersMergesDuplicateTeamSnapshots(t *testing.T) {
	competition := model.Team{
		Name:     "Green Mamba",
		CrestURL: "https://img.example/placeholder.png",
		Players: []model.Player{
			{ID: 9, Name: "Striker", Bio: ""},
			{ID: 4, Name: "Enforcer"},
		},
	}
	youth := model.Team{
		Name:     "green mamba", // normalizes equal
		CrestURL: "https://img.example/mamba-crest.png",
		Players: []model.Player{
			{ID: 9, Name: "Striker", Bio: "Top scorer 2023"},
			{Name: "Academy Kid"},
		},
	}

	out := ReconcilePlayers([]model.Team{competition, youth}, nil)
	require.Len(t, out, 1)

	team := out[0]
	// Real crest beats the placeholder.
	assert.Equal(t, "https://img.example/mamba-crest.png", team.CrestURL)
	// No player dropped, none duplicated.
	require.Len(t, team.Players, 3)
	assert.Equal(t, "Top scorer 2023", playerByName(t, out, "Striker").Bio)
}

func TestReconcilePlayersDoesNotMutateInput(t *testing.T) {
	teams := []model.Team{{
		Name:    "Green Mamba",
		Players: []model.Player{{ID: 9, Name: "Striker", BaseStats: model.PlayerStats{Goals: 5}}},
	}, {Name: "Mbabane Swallows"}}
	matches := []model.Match{{
		TeamA: "Green Mamba", TeamB: "Mbabane Swallows",
		FullDate: "2024-01-01", Status: model.StatusFinished,
		ScoreA: intPtr(1), ScoreB: intPtr(0),
		Events: []model.MatchEvent{{Type: model.EventGoal, TeamName: "Green Mamba", PlayerID: 9}},
	}}

	_ = ReconcilePlayers(teams, matches)
	assert.Equal(t, model.PlayerStats{}, teams[0].Players[0].Stats, "input player stats must be untouched")
	assert.Len(t, teams[0].Players, 1)
}
