// cmd/game/main.go
package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"go-horde-survival/internal/config"
	"go-horde-survival/internal/defs"
	"go-horde-survival/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
)

var errQuit = errors.New("quit")

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	if a.stateMachine.Quitting() {
		return errQuit
	}
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config")
	enemiesPath := flag.String("enemies", "", "optional YAML file with enemy definitions")
	menu := flag.Bool("menu", false, "start from the menu instead of the game")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("loading config", "err", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: config.ParseLogLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	if *enemiesPath != "" {
		if err := defs.LoadEnemyDefinitions(*enemiesPath); err != nil {
			logger.Error("loading enemy definitions", "err", err)
			os.Exit(1)
		}
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	sm := state.NewStateMachine()
	if *menu {
		sm.SetState(state.NewMenuState(sm, cfg, logger))
	} else {
		gs, err := state.NewGameState(sm, cfg, logger)
		if err != nil {
			logger.Error("starting game", "err", err)
			os.Exit(1)
		}
		sm.SetState(gs)
	}

	app := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Horde")
	if err := ebiten.RunGame(app); err != nil && !errors.Is(err, errQuit) {
		logger.Error("game loop", "err", err)
		os.Exit(1)
	}
}
