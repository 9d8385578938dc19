// Package maintenance runs periodic background tasks as Go tickers.
// Replaces pg_cron — all scheduled work is driven from Go since it is
// already a persistent, long-running service (required for LISTEN/NOTIFY).
package maintenance

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/matchdayhq/matchday-data/internal/cache"
	"github.com/matchdayhq/matchday-data/internal/snapshot"
)

// Config controls maintenance task intervals. Zero duration disables a task.
type Config struct {
	SweepInterval   time.Duration // Full recompute sweep over all competitions
	SweepWorkers    int           // Concurrent recomputes during a sweep
	CleanupInterval time.Duration // Stale import-audit rows
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		SweepInterval:   15 * time.Minute,
		SweepWorkers:    2,
		CleanupInterval: 30 * time.Minute,
	}
}

// Start launches all configured maintenance tickers. Blocks until ctx is
// cancelled. Intended to be called with `go`.
func Start(ctx context.Context, pool *pgxpool.Pool, appCache *cache.Cache, cfg Config, logger *slog.Logger) {
	logger.Info("Maintenance tickers started",
		"sweep", cfg.SweepInterval,
		"sweep_workers", cfg.SweepWorkers,
		"cleanup", cfg.CleanupInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Sweep: recompute every competition's derived tables. Catches changes
	// that never produced a NOTIFY (listener downtime, direct writes with
	// triggers disabled).
	if cfg.SweepInterval > 0 {
		t := time.NewTicker(cfg.SweepInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { sweep(ctx, pool, appCache, cfg.SweepWorkers, logger) })
	}

	// Cleanup: purge old import-audit rows
	if cfg.CleanupInterval > 0 {
		t := time.NewTicker(cfg.CleanupInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { cleanup(ctx, pool, logger) })
	}

	<-ctx.Done()
	logger.Info("Maintenance tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// sweep recomputes all competitions with a bounded worker pool. Each
// recompute holds only its own row lock, so competitions proceed
// independently.
func sweep(ctx context.Context, pool *pgxpool.Pool, appCache *cache.Cache, workers int, logger *slog.Logger) {
	comps, err := snapshot.List(ctx, pool)
	if err != nil {
		logger.Warn("Sweep: failed to list competitions", "error", err)
		return
	}
	if len(comps) == 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}

	start := time.Now()
	jobs := make(chan snapshot.Competition)
	var wg sync.WaitGroup
	var mu sync.Mutex
	succeeded, failed := 0, 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for comp := range jobs {
				if _, err := snapshot.Recompute(ctx, pool, comp.ID); err != nil {
					logger.Warn("Sweep: recompute failed",
						"competition_id", comp.ID, "error", err)
					mu.Lock()
					failed++
					mu.Unlock()
					continue
				}
				appCache.Invalidate(fmt.Sprintf("competition:%s:", comp.ID))
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}

	for _, comp := range comps {
		select {
		case jobs <- comp:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return
		}
	}
	close(jobs)
	wg.Wait()

	logger.Info("Sweep: recompute pass complete",
		"competitions", len(comps),
		"succeeded", succeeded,
		"failed", failed,
		"duration", time.Since(start).Round(time.Second))
}

// cleanup purges import-audit rows older than 90 days. The audit trail is
// for operational forensics, not history.
func cleanup(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) {
	tag, err := pool.Exec(ctx, `
		DELETE FROM match_imports
		WHERE applied_at < NOW() - INTERVAL '90 days'`)
	if err != nil {
		logger.Warn("Cleanup: failed to purge old import audit rows", "error", err)
	} else if tag.RowsAffected() > 0 {
		logger.Info("Cleanup: purged old import audit rows", "count", tag.RowsAffected())
	}
}
