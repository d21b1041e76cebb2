package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-horde-survival/internal/entity"
	"go-horde-survival/internal/event"
	"go-horde-survival/internal/physics"
	"go-horde-survival/internal/utils"
)

func TestPlayerDiesOnce(t *testing.T) {
	ecs := entity.NewECS()
	bus := event.NewDispatcher()
	log := &eventLog{}
	bus.Subscribe(log, event.PlayerDied)
	ps := NewPlayerSystem(ecs, bus, quietLogger())

	assert.False(t, ps.Alive(), "no player yet")
	assert.NotPanics(t, func() { ps.TakeDamage(10) })

	ps.Spawn(utils.Vec2{X: 3, Y: 4}, 4, 0.4, 300, nil)
	require.True(t, ps.Alive())
	assert.Equal(t, utils.Vec2{X: 3, Y: 4}, ps.Position())

	ps.TakeDamage(290)
	assert.True(t, ps.Alive())
	ps.TakeDamage(20)
	ps.TakeDamage(20)
	assert.False(t, ps.Alive())
	assert.Equal(t, 0.0, ecs.Player.Health.Value)
	assert.Equal(t, 1, log.count(event.PlayerDied))

	ps.Move(utils.Vec2{X: 1})
	assert.Equal(t, utils.Zero, ecs.Player.Velocity)
}

func TestPlayerMoveAndKills(t *testing.T) {
	ecs := entity.NewECS()
	ps := NewPlayerSystem(ecs, event.NewDispatcher(), quietLogger())
	world := physics.NewWorld(1)
	p := ps.Spawn(utils.Vec2{X: 1, Y: 1}, 4, 0.4, 300, world)
	require.NotNil(t, p.Body)

	ps.Move(utils.Vec2{X: 3, Y: 4})
	assert.InDelta(t, 2.4, p.Velocity.X, 1e-9)
	assert.InDelta(t, 3.2, p.Velocity.Y, 1e-9)

	ps.OnEvent(event.Event{Type: event.AgentDied})
	ps.OnEvent(event.Event{Type: event.AgentDied, Forced: true})
	ps.OnEvent(event.Event{Type: event.RoundChanged})
	assert.Equal(t, 1, p.Kills)

	again := ps.Spawn(utils.Vec2{X: 2, Y: 2}, 4, 0.4, 300, world)
	assert.Equal(t, 1, world.BodyCount(), "respawn replaces the old body")
	assert.NotEqual(t, p.ID, again.ID)
}
