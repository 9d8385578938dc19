// Command admin is the Matchday data administration CLI.
//
// Usage:
//
//	matchday-admin standings --competition pl-2024
//	matchday-admin scorers --competition pl-2024 --limit 10
//	matchday-admin recompute --competition pl-2024
//	matchday-admin recompute --all --workers 4
//	matchday-admin rename-team --competition pl-2024 --old "Mbabane Swallows" --new "Mbabane Swallows FC"
//	matchday-admin import --competition pl-2024 --file matches.json --source spreadsheet
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/matchdayhq/matchday-data/internal/config"
	"github.com/matchdayhq/matchday-data/internal/db"
	"github.com/matchdayhq/matchday-data/internal/importer"
	"github.com/matchdayhq/matchday-data/internal/snapshot"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "matchday-admin",
		Short: "Matchday data administration CLI",
	}

	root.AddCommand(standingsCmd())
	root.AddCommand(scorersCmd())
	root.AddCommand(recomputeCmd())
	root.AddCommand(renameTeamCmd())
	root.AddCommand(importCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// standings command
// --------------------------------------------------------------------------

func standingsCmd() *cobra.Command {
	var competitionID string
	cmd := &cobra.Command{
		Use:   "standings",
		Short: "Print the league table for a competition",
		RunE: func(cmd *cobra.Command, args []string) error {
			if competitionID == "" {
				return fmt.Errorf("--competition is required")
			}
			return runTask(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				s, err := snapshot.Load(ctx, pool.Pool, competitionID)
				if err != nil {
					return err
				}
				derived := snapshot.Derive(s)

				tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "POS\tTEAM\tP\tW\tD\tL\tGF\tGA\tGD\tPTS\tFORM")
				for i, t := range derived.Teams {
					fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%s\n",
						i+1, t.Name,
						t.Stats.Played, t.Stats.Won, t.Stats.Drawn, t.Stats.Lost,
						t.Stats.GoalsFor, t.Stats.GoalsAgainst, t.Stats.GoalDifference,
						t.Stats.Points, t.Stats.Form)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&competitionID, "competition", "", "Competition ID")
	return cmd
}

// --------------------------------------------------------------------------
// scorers command
// --------------------------------------------------------------------------

func scorersCmd() *cobra.Command {
	var competitionID string
	var limit int
	cmd := &cobra.Command{
		Use:   "scorers",
		Short: "Print the top scorer leaderboard for a competition",
		RunE: func(cmd *cobra.Command, args []string) error {
			if competitionID == "" {
				return fmt.Errorf("--competition is required")
			}
			return runTask(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				s, err := snapshot.Load(ctx, pool.Pool, competitionID)
				if err != nil {
					return err
				}
				scorers := snapshot.TopScorers(s, limit)

				tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "RANK\tPLAYER\tTEAM\tGOALS\tPOTM\tSCORE")
				for i, sc := range scorers {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\t%d\n",
						i+1, sc.Name, sc.Team, sc.Goals, sc.PotmWins, sc.Score)
				}
				return tw.Flush()
			})
		},
	}
	cmd.Flags().StringVar(&competitionID, "competition", "", "Competition ID")
	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum entries to print")
	return cmd
}

// --------------------------------------------------------------------------
// recompute command
// --------------------------------------------------------------------------

func recomputeCmd() *cobra.Command {
	var competitionID string
	var all bool
	var workers int
	cmd := &cobra.Command{
		Use:   "recompute",
		Short: "Recompute derived tables and persist them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && competitionID == "" {
				return fmt.Errorf("--competition or --all is required")
			}
			return runTask(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if !all {
					start := time.Now()
					derived, err := snapshot.Recompute(ctx, pool.Pool, competitionID)
					if err != nil {
						return err
					}
					logger.Info("Recompute finished",
						"competition_id", competitionID,
						"teams", len(derived.Teams),
						"duration", time.Since(start).Round(time.Millisecond))
					return nil
				}
				return recomputeAll(ctx, pool, workers)
			})
		},
	}
	cmd.Flags().StringVar(&competitionID, "competition", "", "Competition ID")
	cmd.Flags().BoolVar(&all, "all", false, "Recompute every competition")
	cmd.Flags().IntVar(&workers, "workers", 2, "Concurrent worker count with --all")
	return cmd
}

// recomputeAll runs recompute over every competition with a bounded worker
// pool, same shape as the background sweep.
func recomputeAll(ctx context.Context, pool *db.Pool, workers int) error {
	comps, err := snapshot.List(ctx, pool.Pool)
	if err != nil {
		return fmt.Errorf("list competitions: %w", err)
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
				if _, err := snapshot.Recompute(ctx, pool.Pool, comp.ID); err != nil {
					logger.Error("Recompute failed", "competition_id", comp.ID, "error", err)
					mu.Lock()
					failed++
					mu.Unlock()
					continue
				}
				logger.Info("Recomputed", "competition_id", comp.ID)
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
			return ctx.Err()
		}
	}
	close(jobs)
	wg.Wait()

	logger.Info("Recompute pass finished",
		"competitions", len(comps),
		"succeeded", succeeded,
		"failed", failed,
		"duration", time.Since(start).Round(time.Second))
	if failed > 0 {
		return fmt.Errorf("%d of %d competitions failed", failed, len(comps))
	}
	return nil
}

// --------------------------------------------------------------------------
// rename-team command
// --------------------------------------------------------------------------

func renameTeamCmd() *cobra.Command {
	var competitionID, oldName, newName string
	cmd := &cobra.Command{
		Use:   "rename-team",
		Short: "Rename a team across its roster entry and all matches",
		RunE: func(cmd *cobra.Command, args []string) error {
			if competitionID == "" || oldName == "" || newName == "" {
				return fmt.Errorf("--competition, --old and --new are required")
			}
			return runTask(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				if err := snapshot.RenameTeam(ctx, pool.Pool, competitionID, oldName, newName); err != nil {
					return err
				}
				logger.Info("Team renamed",
					"competition_id", competitionID,
					"old", oldName, "new", newName)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&competitionID, "competition", "", "Competition ID")
	cmd.Flags().StringVar(&oldName, "old", "", "Current team name")
	cmd.Flags().StringVar(&newName, "new", "", "New team name")
	return cmd
}

// --------------------------------------------------------------------------
// import command
// --------------------------------------------------------------------------

func importCmd() *cobra.Command {
	var competitionID, file, source string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import candidate match records from a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if competitionID == "" || file == "" {
				return fmt.Errorf("--competition and --file are required")
			}
			return runTask(func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}

				result, err := importer.Parse(data)
				if err != nil {
					return err
				}
				logger.Info("Parsed import file", "file", file, "summary", result.Summary())
				if len(result.Matches) == 0 {
					return fmt.Errorf("no salvageable match records in %s", file)
				}

				if err := snapshot.ImportMatches(ctx, pool.Pool, competitionID, source, result.Matches); err != nil {
					return err
				}

				start := time.Now()
				derived, err := snapshot.Recompute(ctx, pool.Pool, competitionID)
				if err != nil {
					return err
				}
				logger.Info("Import finished",
					"competition_id", competitionID,
					"imported", len(result.Matches),
					"skipped", result.Skipped,
					"teams", len(derived.Teams),
					"duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&competitionID, "competition", "", "Competition ID")
	cmd.Flags().StringVar(&file, "file", "", "Path to JSON file with match records")
	cmd.Flags().StringVar(&source, "source", "cli", "Import source label for the audit trail")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runTask handles config loading, DB connection, and context cancellation.
func runTask(fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := db.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	return fn(ctx, cfg, pool)
}
