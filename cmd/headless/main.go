// Command headless plays seeded games with the autopilot and prints a report.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"go-horde-survival/internal/app"
	"go-horde-survival/internal/config"
	"go-horde-survival/internal/defs"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	runs := flag.Int("runs", 8, "number of games")
	seconds := flag.Float64("seconds", 120, "simulated seconds per game")
	frame := flag.Float64("frame", 1.0/60, "simulation step in seconds")
	level := flag.String("level", "", "override the level name")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *level != "" {
		cfg.Level.Name = *level
		cfg.Level.Rows = nil
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))
	if *frame <= 0 || *frame > config.MaxDeltaTime {
		return fmt.Errorf("frame must be in (0, %v]", config.MaxDeltaTime)
	}

	slog.Info("headless batch starting", "runs", *runs, "seconds", *seconds, "level", cfg.Level.Name, "seed", cfg.Seed)
	results, err := app.RunBatch(ctx, cfg, *runs, *seconds, *frame, slog.Default())
	if err != nil {
		return err
	}
	report(results)
	return nil
}

func report(results []app.RunResult) {
	fmt.Printf("%-8s %6s %8s %6s %7s  %s\n", "seed", "round", "spawned", "kills", "deaths", "drops")
	var total app.Stats
	for _, r := range results {
		s := r.Stats
		fmt.Printf("%-8d %6d %8d %6d %7d  %s\n", r.Seed, s.MaxRound, s.Spawned, s.Kills, s.PlayerDeaths, formatDrops(s.Drops))
		total.Spawned += s.Spawned
		total.Kills += s.Kills
		total.PlayerDeaths += s.PlayerDeaths
		total.MaxRound = max(total.MaxRound, s.MaxRound)
	}
	fmt.Printf("%-8s %6d %8d %6d %7d\n", "total", total.MaxRound, total.Spawned, total.Kills, total.PlayerDeaths)
}

func formatDrops(drops map[defs.LootType]int) string {
	keys := make([]defs.LootType, 0, len(drops))
	for k := range drops {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	out := ""
	for _, k := range keys {
		out += fmt.Sprintf("%s=%d ", k, drops[k])
	}
	return out
}
