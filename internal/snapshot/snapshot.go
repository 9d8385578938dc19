// Package snapshot implements the read-compute-write cycle around the pure
// engine. A competition's teams, fixtures and results are stored as jsonb
// documents; recomputation loads them inside a transaction with the row
// locked, runs the engine, and writes the derived teams back atomically.
// That keeps the cycle safe under concurrent writers even though the engine
// itself has no concurrency control.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchdayhq/matchday-data/internal/engine"
	"github.com/matchdayhq/matchday-data/internal/model"
)

// ErrTeamNotFound is returned by RenameTeam when no roster entry normalizes
// equal to the requested name.
var ErrTeamNotFound = errors.New("team not found")

// Competition is one row of the competition list.
type Competition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Snapshot is a point-in-time copy of one competition's data.
type Snapshot struct {
	Teams    []model.Team  `json:"teams"`
	Fixtures []model.Match `json:"fixtures"`
	Results  []model.Match `json:"results"`
	Groups   []model.Group `json:"groups,omitempty"`
}

// List returns all competitions.
func List(ctx context.Context, pool *pgxpool.Pool) ([]Competition, error) {
	rows, err := pool.Query(ctx, "competition_list")
	if err != nil {
		return nil, fmt.Errorf("list competitions: %w", err)
	}
	defer rows.Close()

	var comps []Competition
	for rows.Next() {
		var c Competition
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("scan competition: %w", err)
		}
		comps = append(comps, c)
	}
	return comps, rows.Err()
}

// Load reads a competition snapshot outside any transaction. Good enough
// for read-only endpoints; mutations go through the locked variants below.
func Load(ctx context.Context, pool *pgxpool.Pool, competitionID string) (*Snapshot, error) {
	row := pool.QueryRow(ctx, "competition_snapshot", competitionID)
	return scanSnapshot(row, competitionID)
}

func scanSnapshot(row pgx.Row, competitionID string) (*Snapshot, error) {
	var teamsRaw, fixturesRaw, resultsRaw, groupsRaw []byte
	if err := row.Scan(&teamsRaw, &fixturesRaw, &resultsRaw, &groupsRaw); err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("competition %q: %w", competitionID, err)
		}
		return nil, fmt.Errorf("load competition %q: %w", competitionID, err)
	}

	var s Snapshot
	for _, col := range []struct {
		raw  []byte
		dst  interface{}
		name string
	}{
		{teamsRaw, &s.Teams, "teams"},
		{fixturesRaw, &s.Fixtures, "fixtures"},
		{resultsRaw, &s.Results, "results"},
		{groupsRaw, &s.Groups, "groups"},
	} {
		if len(col.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(col.raw, col.dst); err != nil {
			return nil, fmt.Errorf("decode %s for competition %q: %w", col.name, competitionID, err)
		}
	}
	return &s, nil
}

// Recompute runs the full engine pass over one competition and persists the
// derived teams: rosters reconciled (duplicate snapshots merged, player
// stats re-derived from baseStats + matches), then league rows recalculated.
// The competition row stays locked for the duration, so concurrent writers
// serialize and nothing is double counted.
func Recompute(ctx context.Context, pool *pgxpool.Pool, competitionID string) (*Snapshot, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin recompute: %w", err)
	}
	defer tx.Rollback(ctx)

	s, err := scanSnapshot(tx.QueryRow(ctx, "competition_snapshot_for_update", competitionID), competitionID)
	if err != nil {
		return nil, err
	}

	derived := Derive(s)

	teamsJSON, err := json.Marshal(derived.Teams)
	if err != nil {
		return nil, fmt.Errorf("encode teams: %w", err)
	}
	if _, err := tx.Exec(ctx, "update_competition_teams", competitionID, teamsJSON); err != nil {
		return nil, fmt.Errorf("write teams for competition %q: %w", competitionID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit recompute: %w", err)
	}
	return derived, nil
}

// Derive runs the engine over an in-memory snapshot: player reconciliation
// over fixtures ∪ results, then standings over the reconciled teams.
func Derive(s *Snapshot) *Snapshot {
	combined := make([]model.Match, 0, len(s.Fixtures)+len(s.Results))
	combined = append(combined, s.Fixtures...)
	combined = append(combined, s.Results...)

	reconciled := engine.ReconcilePlayers(s.Teams, combined)
	teams := engine.CalculateStandings(reconciled, s.Results, s.Fixtures)

	return &Snapshot{
		Teams:    teams,
		Fixtures: s.Fixtures,
		Results:  s.Results,
		Groups:   s.Groups,
	}
}

// TopScorers returns the top n entries of the scorer leaderboard, ranked by
// goals with player-of-the-match awards breaking ties. n <= 0 means all.
func TopScorers(s *Snapshot, n int) []model.ScorerRecord {
	scorers := engine.AggregateGoalsFromEvents(s.Fixtures, s.Results, s.Teams)
	if n > 0 && len(scorers) > n {
		scorers = scorers[:n]
	}
	return scorers
}

// RenameTeam rewrites a team's name on its roster entry and across every
// historical fixture and result, all in one transaction, so matches stay
// joinable after an admin rename.
func RenameTeam(ctx context.Context, pool *pgxpool.Pool, competitionID, oldName, newName string) error {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin rename: %w", err)
	}
	defer tx.Rollback(ctx)

	s, err := scanSnapshot(tx.QueryRow(ctx, "competition_snapshot_for_update", competitionID), competitionID)
	if err != nil {
		return err
	}

	key := engine.Normalize(oldName)
	found := false
	for i := range s.Teams {
		if engine.Normalize(s.Teams[i].Name) == key {
			s.Teams[i].Name = newName
			found = true
		}
	}
	if !found {
		return fmt.Errorf("no team named %q in competition %q: %w", oldName, competitionID, ErrTeamNotFound)
	}

	s.Fixtures = engine.RenameTeamInMatches(s.Fixtures, oldName, newName)
	s.Results = engine.RenameTeamInMatches(s.Results, oldName, newName)

	teamsJSON, err := json.Marshal(s.Teams)
	if err != nil {
		return fmt.Errorf("encode teams: %w", err)
	}
	fixturesJSON, err := json.Marshal(s.Fixtures)
	if err != nil {
		return fmt.Errorf("encode fixtures: %w", err)
	}
	resultsJSON, err := json.Marshal(s.Results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	if _, err := tx.Exec(ctx, "update_competition_teams", competitionID, teamsJSON); err != nil {
		return fmt.Errorf("write teams: %w", err)
	}
	if _, err := tx.Exec(ctx, "update_competition_matches", competitionID, fixturesJSON, resultsJSON); err != nil {
		return fmt.Errorf("write matches: %w", err)
	}

	return tx.Commit(ctx)
}

// ImportMatches appends candidate match records to a competition. Records
// with status finished land in results, the rest in fixtures; the engine's
// deduplication absorbs any overlap with existing records on the next
// recompute. An audit row records the import.
func ImportMatches(ctx context.Context, pool *pgxpool.Pool, competitionID, source string, matches []model.Match) error {
	if len(matches) == 0 {
		return nil
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback(ctx)

	s, err := scanSnapshot(tx.QueryRow(ctx, "competition_snapshot_for_update", competitionID), competitionID)
	if err != nil {
		return err
	}

	for _, m := range matches {
		if m.Status == model.StatusFinished {
			s.Results = append(s.Results, m)
		} else {
			s.Fixtures = append(s.Fixtures, m)
		}
	}

	fixturesJSON, err := json.Marshal(s.Fixtures)
	if err != nil {
		return fmt.Errorf("encode fixtures: %w", err)
	}
	resultsJSON, err := json.Marshal(s.Results)
	if err != nil {
		return fmt.Errorf("encode results: %w", err)
	}

	if _, err := tx.Exec(ctx, "update_competition_matches", competitionID, fixturesJSON, resultsJSON); err != nil {
		return fmt.Errorf("write matches: %w", err)
	}
	if _, err := tx.Exec(ctx, "record_import", competitionID, source, len(matches)); err != nil {
		return fmt.Errorf("record import: %w", err)
	}

	return tx.Commit(ctx)
}
