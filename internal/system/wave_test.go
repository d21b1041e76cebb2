package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-horde-survival/internal/component"
	"go-horde-survival/internal/config"
	"go-horde-survival/internal/event"
	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/tilemap"
)

var waveLevel = []string{
	"S........S",
	"..........",
	"..........",
	"..........",
	"....P.....",
	"..........",
	"..........",
	"..........",
	"..........",
	"S........S",
}

const tickDT = 0.25

func newWaveHarness(t *testing.T, mutate func(*config.Config)) (*harness, *WaveSystem) {
	t.Helper()
	h := newHarness(t, tilemap.MustParse(waveLevel, tilemap.Eight), mutate)
	ws, err := NewWaveSystem(WaveDeps{
		ECS:    h.ecs,
		Agents: h.agents,
		Grid:   h.grid,
		Timers: h.timers,
		RNG:    utils.NewPRNGService(11),
		Target: h.target,
		Logger: quietLogger(),
	}, h.cfg.Wave)
	require.NoError(t, err)
	return h, ws
}

// tick follows the game order: timers first, scheduler last.
func tick(h *harness, ws *WaveSystem, n int) {
	for i := 0; i < n; i++ {
		h.timers.Advance(tickDT)
		ws.Update(tickDT)
	}
}

func TestRoundAdvancesAfterIntermission(t *testing.T) {
	h, ws := newWaveHarness(t, nil)
	log := &eventLog{}
	ws.Subscribe(log)

	assert.Equal(t, 1, ws.Round())
	assert.Equal(t, SchedulerWaiting, ws.State())
	assert.Zero(t, ws.LiveCount())

	tick(h, ws, 8) // clock 2.0: not past the intermission yet
	assert.Equal(t, 1, ws.Round())

	tick(h, ws, 1)
	assert.Equal(t, 2, ws.Round())
	assert.Equal(t, SchedulerWaiting, ws.State(), "no agent exists yet")
	assert.Equal(t, 10, ws.PendingSpawns())
	assert.Zero(t, ws.LiveCount())

	tick(h, ws, 1)
	assert.Equal(t, SchedulerRunning, ws.State())
	assert.Less(t, ws.LiveCount(), 10, "spawns are staggered")

	tick(h, ws, 5)
	assert.Equal(t, 10, ws.LiveCount())
	assert.Zero(t, ws.PendingSpawns())
	assert.Equal(t, 1, log.count(event.RoundChanged))
	assert.Equal(t, 2, log.events[0].Round)
	assert.Equal(t, 10, log.count(event.AgentSpawned))
	assert.Zero(t, log.count(event.WaveCleared))

	spawns := map[tilemap.Cell]bool{}
	for _, c := range h.grid.SpawnPoints {
		spawns[c] = true
	}
	h.ecs.EachAgent(func(a *component.Agent) {
		assert.True(t, spawns[a.Cell], "agent %d spawned off a spawn point", a.ID)
		assert.Same(t, h.target, a.Target)
		assert.NotNil(t, h.ecs.Renderables[a.ID])
	})
}

func TestLinearWaveSize(t *testing.T) {
	h, ws := newWaveHarness(t, func(c *config.Config) { c.Wave.SizePolicy = "linear" })
	tick(h, ws, 9)
	assert.Equal(t, 2, ws.Round())
	assert.Equal(t, 14, ws.PendingSpawns())
	tick(h, ws, 10)
	assert.Equal(t, 14, ws.LiveCount())
}

func TestWaveClearedAndNextRound(t *testing.T) {
	h, ws := newWaveHarness(t, func(c *config.Config) { c.Wave.BaseSize = 4 })
	log := &eventLog{}
	ws.Subscribe(log, event.WaveCleared, event.RoundChanged)
	tick(h, ws, 12)
	require.Equal(t, 4, ws.LiveCount())

	h.ecs.EachAgent(func(a *component.Agent) { h.agents.Kill(a) })
	assert.Equal(t, 4, ws.LiveCount(), "removal waits for the scheduler")

	tick(h, ws, 1)
	assert.Zero(t, ws.LiveCount())
	assert.Equal(t, SchedulerWaiting, ws.State())
	assert.Equal(t, 1, log.count(event.WaveCleared))

	tick(h, ws, 8)
	assert.Equal(t, 2, ws.Round(), "intermission not over")
	tick(h, ws, 1)
	assert.Equal(t, 3, ws.Round())
	assert.Equal(t, []event.Type{event.RoundChanged, event.WaveCleared, event.RoundChanged},
		[]event.Type{log.events[0].Type, log.events[1].Type, log.events[2].Type})
}

func TestClearWithPendingSpawns(t *testing.T) {
	h, ws := newWaveHarness(t, func(c *config.Config) { c.Wave.BaseSize = 3 })
	tick(h, ws, 9)
	require.Equal(t, 3, ws.PendingSpawns())

	ws.Clear()
	assert.Zero(t, ws.PendingSpawns())
	for i := 0; i < 20; i++ {
		h.timers.Advance(tickDT)
	}
	assert.Zero(t, ws.LiveCount())
	assert.Zero(t, h.ecs.AgentCount())
	assert.Equal(t, 1, ws.Round())
	assert.Equal(t, SchedulerWaiting, ws.State())
}

func TestClearDestroysLiveAgents(t *testing.T) {
	h, ws := newWaveHarness(t, nil)
	tick(h, ws, 10)
	require.Positive(t, ws.LiveCount())
	require.Positive(t, ws.PendingSpawns())

	var live []*component.Agent
	h.ecs.EachAgent(func(a *component.Agent) { live = append(live, a) })
	deaths := &eventLog{}
	for _, a := range live {
		a.Bus.Subscribe(deaths)
	}

	ws.Clear()
	ws.Clear()
	for _, a := range live {
		assert.Equal(t, component.StateDead, a.State)
	}
	assert.Equal(t, len(live), deaths.count(event.AgentDied))
	for _, e := range deaths.events {
		assert.True(t, e.Forced)
	}

	h.timers.Advance(5)
	assert.Zero(t, ws.LiveCount())
	tick(h, ws, 8)
	assert.Equal(t, 1, ws.Round(), "the reset scheduler waits out a fresh intermission")
}

func TestSchedulerWorksWithoutListeners(t *testing.T) {
	h, ws := newWaveHarness(t, nil)
	assert.NotPanics(t, func() {
		tick(h, ws, 15)
		h.ecs.EachAgent(func(a *component.Agent) { h.agents.Kill(a) })
		tick(h, ws, 1)
	})
	assert.Equal(t, SchedulerWaiting, ws.State())
	assert.Equal(t, 2, ws.Round())
}

func TestPauseFreezesIntermissionAndSpawns(t *testing.T) {
	h, ws := newWaveHarness(t, nil)
	tick(h, ws, 4)
	ws.Pause()
	ws.Pause()
	assert.Equal(t, SchedulerPaused, ws.State())
	tick(h, ws, 20)
	assert.Equal(t, 1, ws.Round())

	ws.Resume()
	assert.Equal(t, SchedulerWaiting, ws.State())
	tick(h, ws, 5)
	assert.Equal(t, 2, ws.Round())

	ws.Pause()
	tick(h, ws, 10)
	assert.Zero(t, ws.LiveCount(), "spawns are held while paused")
	assert.Equal(t, 10, ws.PendingSpawns())

	ws.Resume()
	tick(h, ws, 6)
	assert.Equal(t, 10, ws.LiveCount())
	assert.Equal(t, SchedulerRunning, ws.State())
}

func TestInvalidSpawnIsSkipped(t *testing.T) {
	h, ws := newWaveHarness(t, func(c *config.Config) { c.Wave.BaseSize = 2 })
	for _, c := range h.grid.SpawnPoints {
		require.NoError(t, h.grid.SetOverride(c, tilemap.Blocked))
	}

	tick(h, ws, 10)
	assert.Equal(t, 2, ws.Round())
	assert.Zero(t, ws.LiveCount())
	assert.Zero(t, ws.PendingSpawns())
	assert.Equal(t, SchedulerWaiting, ws.State())

	tick(h, ws, 7)
	assert.Equal(t, 2, ws.Round(), "the failed wave restarted the intermission")
	tick(h, ws, 1)
	assert.Equal(t, 3, ws.Round())
}

func TestUnknownSizePolicy(t *testing.T) {
	_, err := NewWaveSystem(WaveDeps{}, config.WaveConfig{SizePolicy: "exponential"})
	assert.Error(t, err)
}
