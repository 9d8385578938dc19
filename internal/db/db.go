// Package db provides a pgxpool-based connection pool with prepared statement
// registration and health checking.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchdayhq/matchday-data/internal/config"
)

// Pool wraps pgxpool.Pool with application-specific helpers.
type Pool struct {
	*pgxpool.Pool
}

// New creates and validates a new connection pool.
func New(ctx context.Context, cfg *config.Config) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MinConns = int32(cfg.DBPoolMinConns)
	poolCfg.MaxConns = int32(cfg.DBPoolMaxConns)
	poolCfg.MaxConnLifetime = cfg.DBPoolMaxLife
	poolCfg.MaxConnIdleTime = 5 * time.Minute

	// Register prepared statements on every new connection.
	poolCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return registerPreparedStatements(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	// Verify connectivity
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Pool{Pool: pool}, nil
}

// HealthCheck runs a trivial query to verify the database is reachable.
func (p *Pool) HealthCheck(ctx context.Context) error {
	var n int
	return p.QueryRow(ctx, "health_check").Scan(&n)
}

// registerPreparedStatements registers all statements the API, the admin CLI
// and the background tasks use. Prepared statements eliminate parse overhead
// on every request.
func registerPreparedStatements(ctx context.Context, conn *pgx.Conn) error {
	stmts := map[string]string{
		// Health
		"health_check": "SELECT 1",

		// Competitions: point-in-time snapshot reads
		"competition_list":     "SELECT id, name FROM competitions ORDER BY id",
		"competition_name":     "SELECT name FROM competitions WHERE id = $1",
		"competition_snapshot": "SELECT teams, fixtures, results, groups FROM competitions WHERE id = $1",

		// Competitions: read-compute-write cycle (row locked for the
		// duration of the recompute transaction)
		"competition_snapshot_for_update": "SELECT teams, fixtures, results, groups FROM competitions WHERE id = $1 FOR UPDATE",
		"update_competition_teams":        "UPDATE competitions SET teams = $2, updated_at = NOW() WHERE id = $1",
		"update_competition_matches":      "UPDATE competitions SET fixtures = $2, results = $3, updated_at = NOW() WHERE id = $1",

		// Import audit trail
		"record_import": "INSERT INTO match_imports (competition_id, source, record_count, applied_at) VALUES ($1, $2, $3, NOW())",
	}

	for name, sql := range stmts {
		if _, err := conn.Prepare(ctx, name, sql); err != nil {
			return fmt.Errorf("prepare %q: %w", name, err)
		}
	}
	return nil
}
