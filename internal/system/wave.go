// internal/system/wave.go
package system

import (
	"log/slog"

	"go-horde-survival/internal/component"
	"go-horde-survival/internal/config"
	"go-horde-survival/internal/defs"
	"go-horde-survival/internal/entity"
	"go-horde-survival/internal/event"
	"go-horde-survival/internal/interfaces"
	"go-horde-survival/internal/timer"
	"go-horde-survival/internal/types"
	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/tilemap"
)

// SchedulerState - состояние планировщика волн
type SchedulerState uint8

const (
	SchedulerRunning SchedulerState = iota
	SchedulerWaiting
	SchedulerPaused
)

func (s SchedulerState) String() string {
	switch s {
	case SchedulerRunning:
		return "Running"
	case SchedulerWaiting:
		return "Waiting"
	case SchedulerPaused:
		return "Paused"
	}
	return "Unknown"
}

// spawnJitter keeps agents spawned on the same cell from starting on top of each other.
const spawnJitter = 0.3

// WaveSystem paces agent creation, owns the round number and the live-agent
// set, and publishes round notifications. It is the only code that inserts
// into or removes from the live set.
type WaveSystem struct {
	ecs    *entity.ECS
	agents *AgentSystem
	grid   *tilemap.Grid
	timers *timer.Queue
	rng    *utils.PRNGService
	target interfaces.Target
	bus    *event.Dispatcher
	logger *slog.Logger

	policy        defs.WaveSizePolicy
	intermission  float64
	spawnInterval float64

	state      SchedulerState
	resume     SchedulerState
	round      int
	clock      float64
	waitStart  float64
	spawned    int // агентов создано в текущем раунде
	pending    map[timer.Token]struct{}
	dead       []types.EntityID
	generation uint64
}

// WaveDeps are the collaborators of a WaveSystem.
type WaveDeps struct {
	ECS    *entity.ECS
	Agents *AgentSystem
	Grid   *tilemap.Grid
	Timers *timer.Queue
	RNG    *utils.PRNGService
	Target interfaces.Target
	Logger *slog.Logger
}

func NewWaveSystem(deps WaveDeps, cfg config.WaveConfig) (*WaveSystem, error) {
	policy, err := defs.NewWaveSizePolicy(cfg.SizePolicy, cfg.BaseSize, cfg.PerRound)
	if err != nil {
		return nil, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &WaveSystem{
		ecs:           deps.ECS,
		agents:        deps.Agents,
		grid:          deps.Grid,
		timers:        deps.Timers,
		rng:           deps.RNG,
		target:        deps.Target,
		bus:           event.NewDispatcher(),
		logger:        logger,
		policy:        policy,
		intermission:  cfg.Intermission,
		spawnInterval: cfg.SpawnInterval,
		pending:       make(map[timer.Token]struct{}),
	}
	s.reset()
	return s, nil
}

// reset puts the scheduler in its initial form: round 1, empty, waiting out
// the first intermission.
func (s *WaveSystem) reset() {
	s.state = SchedulerWaiting
	s.resume = SchedulerWaiting
	s.round = 1
	s.clock = 0
	s.waitStart = 0
	s.spawned = 0
	s.dead = s.dead[:0]
}

// Subscribe registers a listener for scheduler notifications.
func (s *WaveSystem) Subscribe(l event.Listener, types ...event.Type) event.Handle {
	return s.bus.Subscribe(l, types...)
}

func (s *WaveSystem) Unsubscribe(h event.Handle) bool {
	return s.bus.Unsubscribe(h)
}

func (s *WaveSystem) Round() int            { return s.round }
func (s *WaveSystem) State() SchedulerState { return s.state }
func (s *WaveSystem) PendingSpawns() int    { return len(s.pending) }
func (s *WaveSystem) LiveCount() int        { return s.ecs.AgentCount() }

// WaveSize returns how many agents the given round spawns.
func (s *WaveSystem) WaveSize(round int) int { return s.policy.Size(round) }

// Update removes the dead, detects a cleared wave and starts the next one
// once the intermission has passed.
func (s *WaveSystem) Update(deltaTime float64) {
	if s.state == SchedulerPaused {
		return
	}
	s.clock += deltaTime
	s.sweep()

	if s.ecs.AgentCount() == 0 && len(s.pending) == 0 && s.state != SchedulerWaiting {
		if s.spawned > 0 {
			s.logger.Info("wave cleared", "round", s.round)
			s.bus.Dispatch(event.Event{Type: event.WaveCleared, Round: s.round})
		}
		s.state = SchedulerWaiting
		s.waitStart = s.clock
	}

	if s.state == SchedulerWaiting && len(s.pending) == 0 && s.clock-s.waitStart > s.intermission {
		s.round++
		s.bus.Dispatch(event.Event{Type: event.RoundChanged, Round: s.round})
		s.SpawnWave(s.round)
	}
}

// sweep drops agents that signalled death, and any agent left dead by a
// faulted death path.
func (s *WaveSystem) sweep() {
	for _, id := range s.dead {
		s.ecs.RemoveAgent(id)
	}
	s.dead = s.dead[:0]
	for _, id := range s.ecs.AgentIDs() {
		if a := s.ecs.Agents[id]; !a.Alive() {
			s.ecs.RemoveAgent(id)
		}
	}
}

// SpawnWave schedules the round's agents spawnInterval apart. The first one
// appears on the next timer advance.
func (s *WaveSystem) SpawnWave(round int) {
	n := s.policy.Size(round)
	s.spawned = 0
	s.logger.Info("wave scheduled", "round", round, "size", n)
	for i := 0; i < n; i++ {
		s.scheduleSpawn(float64(i) * s.spawnInterval)
	}
}

func (s *WaveSystem) scheduleSpawn(delay float64) {
	gen := s.generation
	var tok timer.Token
	tok = s.timers.After(delay, func() {
		if gen != s.generation {
			return
		}
		delete(s.pending, tok)
		if s.state == SchedulerPaused {
			s.scheduleSpawn(s.spawnInterval)
			return
		}
		s.spawnOne()
	})
	s.pending[tok] = struct{}{}
}

func (s *WaveSystem) spawnOne() {
	cell, err := s.grid.RandomSpawnPoint(s.rng.Intn)
	if err != nil {
		s.logger.Warn("spawn skipped", "round", s.round, "err", err)
		s.afterFailedSpawn()
		return
	}
	ids := defs.EnemyIDs()
	if len(ids) == 0 {
		s.logger.Warn("spawn skipped: no enemy definitions", "round", s.round)
		s.afterFailedSpawn()
		return
	}
	def := defs.EnemyLibrary[ids[s.rng.Intn(len(ids))]]

	pos := cell.Center().Add(utils.Vec2{
		X: (s.rng.Float64() - 0.5) * spawnJitter,
		Y: (s.rng.Float64() - 0.5) * spawnJitter,
	})
	a := s.agents.Spawn(def, pos, s.target)
	a.Bus.Subscribe(s, event.AgentDied)
	s.ecs.AddAgent(a)
	c := config.AgentColors[def.Visuals.ColorIndex%len(config.AgentColors)]
	s.ecs.Renderables[a.ID] = &component.Renderable{Color: c, Radius: float32(a.Radius * config.TileSize)}

	s.spawned++
	if s.state == SchedulerWaiting {
		s.state = SchedulerRunning
		s.logger.Info("wave started", "round", s.round)
	}
	s.bus.Dispatch(event.Event{Type: event.AgentSpawned, Round: s.round, AgentID: a.ID, Position: pos})
}

// afterFailedSpawn restarts the intermission when a whole wave produced nothing,
// so the scheduler does not sit in Waiting forever.
func (s *WaveSystem) afterFailedSpawn() {
	if len(s.pending) == 0 && s.spawned == 0 && s.state == SchedulerWaiting {
		s.waitStart = s.clock
	}
}

// OnEvent queues dead agents for removal on the next Update.
func (s *WaveSystem) OnEvent(e event.Event) {
	if e.Type == event.AgentDied {
		s.dead = append(s.dead, e.AgentID)
	}
}

// Clear destroys every live agent through its death path, cancels pending
// spawns and resets the scheduler. Safe to call repeatedly.
func (s *WaveSystem) Clear() {
	s.generation++
	for tok := range s.pending {
		s.timers.Cancel(tok)
	}
	clear(s.pending)
	for _, a := range s.ecs.TakeAgents() {
		s.agents.Despawn(a)
	}
	s.reset()
}

// Pause freezes the intermission clock and holds back pending spawns.
func (s *WaveSystem) Pause() {
	if s.state == SchedulerPaused {
		return
	}
	s.resume = s.state
	s.state = SchedulerPaused
}

func (s *WaveSystem) Resume() {
	if s.state != SchedulerPaused {
		return
	}
	s.state = s.resume
}
