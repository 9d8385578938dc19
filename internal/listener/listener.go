// Package listener provides a Postgres LISTEN/NOTIFY consumer for match data
// changes. It holds a dedicated pgx connection (not from the pool) listening
// on the `matches_changed` channel.
//
// When match rows for a competition are written outside this service (bulk
// loads, manual SQL fixes), a Postgres trigger fires pg_notify and this
// consumer recomputes the competition's derived tables and drops its cached
// responses.
package listener

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchdayhq/matchday-data/internal/cache"
	"github.com/matchdayhq/matchday-data/internal/snapshot"
)

const (
	channel          = "matches_changed"
	reconnectBackoff = 5 * time.Second
	maxReconnect     = 30 * time.Second
)

// ChangeEvent is the JSON payload from pg_notify('matches_changed', ...).
type ChangeEvent struct {
	CompetitionID string `json:"competition_id"`
	Source        string `json:"source"`
	Timestamp     int64  `json:"ts"`
}

// Start opens a dedicated connection and listens on the matches_changed
// channel. It reconnects automatically on connection loss. Blocks until ctx
// is cancelled. Intended to be called with `go`.
func Start(ctx context.Context, dbURL string, pool *pgxpool.Pool, appCache *cache.Cache, logger *slog.Logger) {
	backoff := reconnectBackoff

	for {
		err := listenLoop(ctx, dbURL, pool, appCache, logger)
		if ctx.Err() != nil {
			logger.Info("Match change listener stopped (context cancelled)")
			return
		}

		logger.Error("Match change listener disconnected, reconnecting...",
			"error", err, "backoff", backoff)

		select {
		case <-time.After(backoff):
			backoff = min(backoff*2, maxReconnect)
		case <-ctx.Done():
			return
		}
	}
}

// listenLoop runs a single listen session. Returns when the connection drops
// or the context is cancelled.
func listenLoop(ctx context.Context, dbURL string, pool *pgxpool.Pool, appCache *cache.Cache, logger *slog.Logger) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(context.Background())

	_, err = conn.Exec(ctx, "LISTEN "+channel)
	if err != nil {
		return fmt.Errorf("LISTEN %s: %w", channel, err)
	}
	logger.Info("Match change listener connected", "channel", channel)

	for {
		notification, err := conn.WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("wait for notification: %w", err)
		}

		var event ChangeEvent
		if err := json.Unmarshal([]byte(notification.Payload), &event); err != nil {
			logger.Warn("Failed to parse match change event",
				"payload", notification.Payload, "error", err)
			continue
		}
		if event.CompetitionID == "" {
			logger.Warn("Match change event missing competition_id",
				"payload", notification.Payload)
			continue
		}

		logger.Info("Match change event received",
			"competition_id", event.CompetitionID,
			"source", event.Source)

		// Process asynchronously to avoid blocking the listener
		go handleChange(ctx, pool, appCache, event, logger)
	}
}

// handleChange recomputes the competition's derived tables and invalidates
// its cached responses. Recompute holds the competition row lock, so events
// arriving faster than the recompute serialize on the database.
func handleChange(ctx context.Context, pool *pgxpool.Pool, appCache *cache.Cache, event ChangeEvent, logger *slog.Logger) {
	start := time.Now()
	derived, err := snapshot.Recompute(ctx, pool, event.CompetitionID)
	if err != nil {
		logger.Warn("Recompute after match change failed",
			"competition_id", event.CompetitionID, "error", err)
		return
	}

	dropped := appCache.Invalidate(fmt.Sprintf("competition:%s:", event.CompetitionID))

	logger.Info("Recomputed after match change",
		"competition_id", event.CompetitionID,
		"teams", len(derived.Teams),
		"cache_dropped", dropped,
		"duration", time.Since(start).Round(time.Millisecond))
}
