// Package model defines the canonical value types the engine, the snapshot
// store, and the API all share. These structs are the contract between the
// persistence layer and the computation core — the store marshals them to
// jsonb, the engine folds them, handlers serve them.
//
// Matches reference teams and players by free-text name only; there is no
// durable foreign key. Normalized names (see internal/engine) are the join
// key everywhere.
package model

// --------------------------------------------------------------------------
// Match status
// --------------------------------------------------------------------------

const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusFinished  = "finished"
	StatusPostponed = "postponed"
	StatusCancelled = "cancelled"
	StatusAbandoned = "abandoned"
	StatusSuspended = "suspended"
)

// --------------------------------------------------------------------------
// Player positions
// --------------------------------------------------------------------------

const (
	PositionGoalkeeper = "Goalkeeper"
	PositionDefender   = "Defender"
	PositionMidfielder = "Midfielder"
	PositionForward    = "Forward"
)

// --------------------------------------------------------------------------
// Match event types
// --------------------------------------------------------------------------

const (
	EventGoal         = "goal"
	EventCard         = "card"
	EventSubstitution = "substitution"
	EventInfo         = "info"

	CardYellow = "yellow"
	CardRed    = "red"
)

// --------------------------------------------------------------------------
// Teams
// --------------------------------------------------------------------------

// Team is one club in a competition. Name is its identity — two teams whose
// names normalize equal are the same team.
type Team struct {
	Name      string        `json:"name"`
	ShortCode string        `json:"shortCode,omitempty"`
	CrestURL  string        `json:"crestUrl,omitempty"`
	Colors    string        `json:"colors,omitempty"`
	Stats     LeagueRow     `json:"stats"`
	Players   []Player      `json:"players,omitempty"`
	Staff     []StaffMember `json:"staff,omitempty"`
}

// LeagueRow is a team's league-table row. It is derived in full on every
// standings calculation, never patched incrementally.
type LeagueRow struct {
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
	Form           string `json:"form,omitempty"` // "W D L", most recent first, max 5
}

// StaffMember is coaching/technical staff. Inert for the engine.
type StaffMember struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

// --------------------------------------------------------------------------
// Players
// --------------------------------------------------------------------------

// Player is a squad member. ID is explicit when known; otherwise a
// deterministic hash of the normalized name so repeated reconciliation runs
// reproduce the same identity.
type Player struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position,omitempty"`
	Number   int    `json:"number,omitempty"`
	Bio      string `json:"bio,omitempty"`
	PhotoURL string `json:"photoUrl,omitempty"`

	// BaseStats is the admin-entered historical floor. Immutable input to
	// reconciliation.
	BaseStats PlayerStats `json:"baseStats"`

	// Stats is always BaseStats plus match-derived deltas, recomputed in
	// full. Never hand-edited, never used as a running counter.
	Stats PlayerStats `json:"stats"`

	TransferHistory []Transfer `json:"transferHistory,omitempty"`
}

// PlayerStats holds career counters. The same shape serves as baseline and
// derived totals.
type PlayerStats struct {
	Appearances int `json:"appearances"`
	Goals       int `json:"goals"`
	Assists     int `json:"assists"`
	YellowCards int `json:"yellowCards"`
	RedCards    int `json:"redCards"`
	CleanSheets int `json:"cleanSheets"`
	PotmWins    int `json:"potmWins"`
}

// IsZero reports whether every counter is zero.
func (s PlayerStats) IsZero() bool {
	return s == PlayerStats{}
}

// Transfer is one entry in a player's transfer history. Inert for the engine.
type Transfer struct {
	Season string `json:"season,omitempty"`
	From   string `json:"from,omitempty"`
	To     string `json:"to,omitempty"`
}

// --------------------------------------------------------------------------
// Matches
// --------------------------------------------------------------------------

// Match is a competition fixture or result. The ID field may differ across
// duplicate imports of the same real-world match; for aggregation a match is
// identified by the unordered pair of normalized team names plus its date.
type Match struct {
	ID       string `json:"id,omitempty"`
	TeamA    string `json:"teamA"`
	TeamB    string `json:"teamB"`
	Date     string `json:"date,omitempty"`     // display date, e.g. "2024-01-01"
	FullDate string `json:"fullDate,omitempty"` // preferred for identity when present
	Venue    string `json:"venue,omitempty"`
	Status   string `json:"status"`

	// Scores are present when the match is finished.
	ScoreA *int `json:"scoreA,omitempty"`
	ScoreB *int `json:"scoreB,omitempty"`

	Events           []MatchEvent `json:"events,omitempty"`
	Lineups          Lineups      `json:"lineups,omitempty"`
	PlayerOfTheMatch *PlayerRef   `json:"playerOfTheMatch,omitempty"`
}

// MatchEvent is a single in-match event. Player references carry an explicit
// id when the producer knew it, else a free-text name.
type MatchEvent struct {
	Type     string `json:"type"`
	Minute   int    `json:"minute,omitempty"`
	TeamName string `json:"teamName,omitempty"`

	PlayerID   int    `json:"playerId,omitempty"`
	PlayerName string `json:"playerName,omitempty"`

	// Card detail for EventCard ("yellow" or "red").
	Card string `json:"card,omitempty"`

	// Assist credit for EventGoal, when recorded.
	AssistPlayerID   int    `json:"assistPlayerId,omitempty"`
	AssistPlayerName string `json:"assistPlayerName,omitempty"`

	Detail string `json:"detail,omitempty"`
}

// Lineups holds both sides' selections, keyed to TeamA/TeamB of the match.
type Lineups struct {
	TeamA Lineup `json:"teamA,omitempty"`
	TeamB Lineup `json:"teamB,omitempty"`
}

// Lineup lists player ids only — producers do not repeat names here.
type Lineup struct {
	Starters []int `json:"starters,omitempty"`
	Subs     []int `json:"subs,omitempty"`
}

// PlayerRef names a player by id and/or free text, with an optional team.
type PlayerRef struct {
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Team string `json:"team,omitempty"`
}

// --------------------------------------------------------------------------
// Derived, read-only shapes
// --------------------------------------------------------------------------

// ScorerRecord is one row of the ranked scorer leaderboard. Derived on every
// call, never persisted.
type ScorerRecord struct {
	Name     string `json:"name"`
	Team     string `json:"team"`
	Goals    int    `json:"goals"`
	PotmWins int    `json:"potmWins"`
	Score    int    `json:"score"` // goals*10 + potmWins*5, ranking tiebreak
}

// Group is a named subset of a competition's teams (group-stage pools).
type Group struct {
	Name  string   `json:"name"`
	Teams []string `json:"teams"`
}
