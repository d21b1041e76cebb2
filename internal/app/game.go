// internal/app/game.go
package app

import (
	"fmt"
	"log/slog"

	"go-horde-survival/internal/component"
	"go-horde-survival/internal/config"
	"go-horde-survival/internal/defs"
	"go-horde-survival/internal/entity"
	"go-horde-survival/internal/event"
	"go-horde-survival/internal/hud"
	"go-horde-survival/internal/navigation"
	"go-horde-survival/internal/physics"
	"go-horde-survival/internal/system"
	"go-horde-survival/internal/timer"
	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/tilemap"
)

// shotImpulse толкает агента от игрока при попадании.
const shotImpulse = 4.0

// Stats are running totals for reports.
type Stats struct {
	Ticks        int
	Round        int
	MaxRound     int
	Spawned      int
	Kills        int
	PlayerDeaths int
	Drops        map[defs.LootType]int
}

// Game holds the simulation: the grid, the clocks, the physics world and
// every system, wired together and stepped in a fixed order.
type Game struct {
	Config config.Config
	Grid   *tilemap.Grid
	ECS    *entity.ECS
	Timers *timer.Queue
	World  *physics.World
	Field  *navigation.Manager
	Rng    *utils.PRNGService
	Logger *slog.Logger

	AgentSystem        *system.AgentSystem
	WaveSystem         *system.WaveSystem
	PlayerSystem       *system.PlayerSystem
	MovementSystem     *system.MovementSystem
	StateSystem        *system.StateSystem
	VisualEffectSystem *system.VisualEffectSystem
	PlayerBus          *event.Dispatcher

	Indicators *hud.Indicators
	RoundText  *hud.RoundText
	DayNight   *hud.DayNight

	gameTime float64
	isPaused bool
	stats    Stats
}

// NewGame builds the level named in cfg and wires every system. The first
// round starts after the configured intermission.
func NewGame(cfg config.Config, logger *slog.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	rows, err := defs.LevelRows(cfg.Level.Name, cfg.Level.Rows)
	if err != nil {
		return nil, err
	}
	grid, err := tilemap.Parse(rows, tilemap.Connectivity(cfg.Grid.Connectivity))
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", cfg.Level.Name, err)
	}

	ecs := entity.NewECS()
	world := physics.NewWorld(cfg.Physics.Damping)
	world.AddWalls(grid)

	g := &Game{
		Config:     cfg,
		Grid:       grid,
		ECS:        ecs,
		Timers:     timer.NewQueue(),
		World:      world,
		Field:      navigation.NewManager(grid, logger),
		Rng:        utils.NewPRNGService(cfg.Seed),
		Logger:     logger,
		PlayerBus:  event.NewDispatcher(),
		Indicators: hud.NewIndicators(),
		RoundText:  hud.NewRoundText(true),
		DayNight:   hud.NewDayNight(1.5),
		stats:      Stats{Round: 1, MaxRound: 1, Drops: make(map[defs.LootType]int)},
	}

	g.AgentSystem, err = system.NewAgentSystem(system.AgentDeps{
		ECS:     ecs,
		Timers:  g.Timers,
		Field:   g.Field,
		Physics: world,
		Sink:    g.Indicators,
		RNG:     g.Rng,
		Logger:  logger,
	}, cfg)
	if err != nil {
		return nil, err
	}
	g.PlayerSystem = system.NewPlayerSystem(ecs, g.PlayerBus, logger)
	g.WaveSystem, err = system.NewWaveSystem(system.WaveDeps{
		ECS:    ecs,
		Agents: g.AgentSystem,
		Grid:   grid,
		Timers: g.Timers,
		RNG:    g.Rng,
		Target: g.PlayerSystem,
		Logger: logger,
	}, cfg.Wave)
	if err != nil {
		return nil, err
	}
	g.MovementSystem = system.NewMovementSystem(ecs)
	g.StateSystem = system.NewStateSystem(g, g.PlayerBus)
	g.VisualEffectSystem = system.NewVisualEffectSystem(ecs)

	g.WaveSystem.Subscribe(g, event.AgentSpawned, event.RoundChanged)
	g.WaveSystem.Subscribe(g.RoundText, event.RoundChanged)
	g.WaveSystem.Subscribe(g.DayNight, event.RoundChanged, event.WaveCleared)

	g.spawnPlayer()
	logger.Info("game created", "level", cfg.Level.Name, "width", grid.Width, "height", grid.Height,
		"spawns", len(grid.SpawnPoints), "seed", cfg.Seed)
	return g, nil
}

func (g *Game) spawnPlayer() {
	p := g.Config.Player
	g.PlayerSystem.Spawn(g.Grid.PlayerStart.Center(), p.Speed, p.Radius, p.MaxHealth, g.World)
}

// OnEvent hooks every new agent's bus to the listeners that care about its death.
func (g *Game) OnEvent(e event.Event) {
	switch e.Type {
	case event.AgentSpawned:
		a, ok := g.ECS.Agents[e.AgentID]
		if !ok {
			return
		}
		g.stats.Spawned++
		a.Bus.Subscribe(g.PlayerSystem, event.AgentDied)
		a.Bus.Subscribe(g.VisualEffectSystem, event.AgentDied)
		a.Bus.Subscribe(event.ListenerFunc(g.onAgentDied), event.AgentDied)
	case event.RoundChanged:
		g.stats.Round = e.Round
		g.stats.MaxRound = max(g.stats.MaxRound, e.Round)
	}
}

func (g *Game) onAgentDied(e event.Event) {
	if e.Forced {
		return
	}
	g.stats.Kills++
	if e.Loot != defs.LootNone {
		g.stats.Drops[e.Loot]++
	}
}

// Update advances the simulation by one frame.
func (g *Game) Update(deltaTime float64) {
	dt := deltaTime
	if dt > config.MaxDeltaTime {
		dt = config.MaxDeltaTime
	}
	if dt <= 0 || g.isPaused {
		return
	}
	g.gameTime += dt
	g.ECS.GameTime = g.gameTime
	g.stats.Ticks++

	g.Field.OnTargetMoved(tilemap.WorldToCell(g.PlayerSystem.Position()))
	g.Timers.Advance(dt)
	g.ECS.EachAgent(func(a *component.Agent) {
		g.AgentSystem.Step(a, dt)
	})
	g.MovementSystem.Apply(dt)
	g.World.Step(dt)
	g.MovementSystem.Sync()
	g.WaveSystem.Update(dt)
	g.VisualEffectSystem.Update(dt)
	g.DayNight.Update(dt)
	g.StateSystem.Update()
}

// ClearScene destroys every agent, resets the scheduler to round 1 and
// brings the player back at the start cell.
func (g *Game) ClearScene() {
	g.Logger.Info("clearing scene", "round", g.WaveSystem.Round(), "live", g.WaveSystem.LiveCount())
	g.WaveSystem.Clear()
	g.VisualEffectSystem.Clear()
	g.Indicators.Reset()
	g.RoundText.Reset()
	g.stats.PlayerDeaths++
	g.stats.Round = g.WaveSystem.Round()
	g.spawnPlayer()
}

// Pause freezes the simulation and the scheduler.
func (g *Game) Pause() {
	g.isPaused = true
	g.WaveSystem.Pause()
}

func (g *Game) Resume() {
	g.isPaused = false
	g.WaveSystem.Resume()
}

func (g *Game) TogglePause() {
	if g.isPaused {
		g.Resume()
	} else {
		g.Pause()
	}
}

func (g *Game) IsPaused() bool {
	return g.isPaused
}

func (g *Game) GetGameTime() float64 {
	return g.gameTime
}

// Stats returns a copy of the running totals.
func (g *Game) Stats() Stats {
	s := g.stats
	s.Drops = make(map[defs.LootType]int, len(g.stats.Drops))
	for k, v := range g.stats.Drops {
		s.Drops[k] = v
	}
	return s
}

// NearestAgent returns the live agent closest to from within maxRange, or nil.
func (g *Game) NearestAgent(from utils.Vec2, maxRange float64) *component.Agent {
	var best *component.Agent
	bestDist := maxRange
	g.ECS.EachAgent(func(a *component.Agent) {
		if !a.Alive() {
			return
		}
		if d := a.Position.Dist(from); d <= bestDist {
			best, bestDist = a, d
		}
	})
	return best
}

// Shoot hits a with the given damage and kind, pushing it away from the player.
func (g *Game) Shoot(a *component.Agent, damage float64, kind defs.HitKind) {
	push := a.Position.Sub(g.PlayerSystem.Position()).Normalize().Scale(shotImpulse)
	g.AgentSystem.TakeHit(a, damage, push, kind)
}

// FieldDump renders the live flow field as text.
func (g *Game) FieldDump() string {
	return navigation.Format(g.Grid, g.Field.Field())
}
