package app

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"go-horde-survival/internal/config"
	"go-horde-survival/internal/utils"
)

// RunResult is the outcome of one headless run.
type RunResult struct {
	Seed  int64
	Stats Stats
}

// RunHeadless plays one game with the autopilot for the given simulated
// duration, stepping at frame seconds. It stops early when ctx is cancelled.
func RunHeadless(ctx context.Context, cfg config.Config, duration, frame float64, logger *slog.Logger) (Stats, error) {
	g, err := NewGame(cfg, logger)
	if err != nil {
		return Stats{}, err
	}
	pilot := NewAutopilot(g, utils.NewPRNGService(cfg.Seed+1), DefaultAutopilotConfig())
	frames := int(duration / frame)
	for i := 0; i < frames; i++ {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return g.Stats(), err
			}
		}
		pilot.Update(frame)
		g.Update(frame)
	}
	return g.Stats(), nil
}

// RunBatch plays runs games in parallel, seeding run i with cfg.Seed+i.
// Results come back in seed order.
func RunBatch(ctx context.Context, cfg config.Config, runs int, duration, frame float64, logger *slog.Logger) ([]RunResult, error) {
	if logger == nil {
		logger = slog.Default()
	}
	results := make([]RunResult, runs)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i := 0; i < runs; i++ {
		i := i
		runCfg := cfg
		runCfg.Seed = cfg.Seed + int64(i)
		g.Go(func() error {
			log := logger.With("run", i, "seed", runCfg.Seed)
			stats, err := RunHeadless(gctx, runCfg, duration, frame, log)
			if err != nil {
				return fmt.Errorf("run %d (seed %d): %w", i, runCfg.Seed, err)
			}
			results[i] = RunResult{Seed: runCfg.Seed, Stats: stats}
			log.Info("run finished", "round", stats.MaxRound, "kills", stats.Kills, "deaths", stats.PlayerDeaths)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
