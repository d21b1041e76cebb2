package system

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"go-horde-survival/internal/config"
	"go-horde-survival/internal/entity"
	"go-horde-survival/internal/event"
	"go-horde-survival/internal/navigation"
	"go-horde-survival/internal/timer"
	"go-horde-survival/internal/types"
	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/tilemap"
)

type fakeSink struct {
	visible map[types.EntityID]bool
	shows   int
	hides   int
}

func newFakeSink() *fakeSink {
	return &fakeSink{visible: make(map[types.EntityID]bool)}
}

func (f *fakeSink) Show(id types.EntityID) { f.visible[id] = true; f.shows++ }
func (f *fakeSink) Hide(id types.EntityID) { f.visible[id] = false; f.hides++ }

type fakeTarget struct {
	pos    utils.Vec2
	dead   bool
	damage float64
	hits   int
	panic  bool
}

func (t *fakeTarget) Position() utils.Vec2 {
	if t.panic {
		panic("target exploded")
	}
	return t.pos
}
func (t *fakeTarget) Alive() bool { return !t.dead }
func (t *fakeTarget) TakeDamage(amount float64) {
	t.damage += amount
	t.hits++
}

type eventLog struct {
	events []event.Event
}

func (l *eventLog) OnEvent(e event.Event) { l.events = append(l.events, e) }

func (l *eventLog) count(t event.Type) int {
	n := 0
	for _, e := range l.events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type harness struct {
	cfg    config.Config
	grid   *tilemap.Grid
	ecs    *entity.ECS
	timers *timer.Queue
	field  *navigation.Manager
	sink   *fakeSink
	target *fakeTarget
	agents *AgentSystem
}

func newHarness(t *testing.T, g *tilemap.Grid, mutate func(*config.Config)) *harness {
	t.Helper()
	cfg := config.Default()
	if mutate != nil {
		mutate(&cfg)
	}
	h := &harness{
		cfg:    cfg,
		grid:   g,
		ecs:    entity.NewECS(),
		timers: timer.NewQueue(),
		field:  navigation.NewManager(g, quietLogger()),
		sink:   newFakeSink(),
		target: &fakeTarget{},
	}
	var err error
	h.agents, err = NewAgentSystem(AgentDeps{
		ECS:    h.ecs,
		Timers: h.timers,
		Field:  h.field,
		Sink:   h.sink,
		RNG:    utils.NewPRNGService(7),
		Logger: quietLogger(),
	}, cfg)
	require.NoError(t, err)
	return h
}

// aim moves the target and recomputes the field, as the game does at tick start.
func (h *harness) aim(pos utils.Vec2) {
	h.target.pos = pos
	h.field.OnTargetMoved(tilemap.WorldToCell(pos))
}

// advance moves the frame clock in fixed steps.
func (h *harness) advance(total, step float64) {
	for elapsed := 0.0; elapsed < total-1e-9; elapsed += step {
		h.timers.Advance(step)
	}
}
