package system

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-horde-survival/internal/component"
	"go-horde-survival/internal/defs"
	"go-horde-survival/internal/entity"
	"go-horde-survival/internal/physics"
	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/tilemap"
)

func TestMovementWithoutBodies(t *testing.T) {
	ecs := entity.NewECS()
	a := &component.Agent{ID: ecs.NewEntity(), Position: utils.Vec2{X: 1.5, Y: 1.5}, Velocity: utils.Vec2{X: 2}}
	ecs.AddAgent(a)
	ecs.Player = &component.Player{Position: utils.Vec2{X: 5, Y: 5}, Velocity: utils.Vec2{Y: -1}}

	ms := NewMovementSystem(ecs)
	ms.Apply(0.5)
	ms.Sync()
	assert.Equal(t, utils.Vec2{X: 2.5, Y: 1.5}, a.Position)
	assert.Equal(t, tilemap.Cell{Col: 2, Row: 1}, a.Cell)
	assert.Equal(t, utils.Vec2{X: 5, Y: 4.5}, ecs.Player.Position)
}

func TestMovementThroughPhysics(t *testing.T) {
	ecs := entity.NewECS()
	world := physics.NewWorld(1)
	start := utils.Vec2{X: 1.5, Y: 1.5}
	a := &component.Agent{ID: ecs.NewEntity(), Position: start, Velocity: utils.Vec2{Y: 1}}
	a.Body = world.AddBody(start, 0.3, 1)
	ecs.AddAgent(a)

	ms := NewMovementSystem(ecs)
	for i := 0; i < 60; i++ {
		ms.Apply(1.0 / 60)
		world.Step(1.0 / 60)
		ms.Sync()
	}
	assert.InDelta(t, 2.5, a.Position.Y, 0.01)
	assert.Equal(t, tilemap.Cell{Col: 1, Row: 2}, a.Cell)
}

func TestKnockbackSurvivesSteeringRequest(t *testing.T) {
	h := newHarness(t, tilemap.NewGrid(10, 10, tilemap.Eight), nil)
	world := physics.NewWorld(1)
	h.agents.physics = world
	start := utils.Vec2{X: 5.5, Y: 5.5}
	a := h.agents.Spawn(zombie, start, h.target)
	h.ecs.AddAgent(a)

	h.agents.TakeHit(a, 1, utils.Vec2{X: -5}, defs.HitStagger)
	require.Equal(t, component.StateStaggered, a.State)
	require.True(t, a.Velocity.IsZero(), "staggered agents request no movement")
	assert.InDelta(t, -5, a.Knockback.X, 1e-9)

	ms := NewMovementSystem(h.ecs)
	frame := func() {
		ms.Apply(0.05)
		world.Step(0.05)
		ms.Sync()
	}
	frame()
	assert.InDelta(t, start.X-0.25, a.Position.X, 0.01, "the hit moves the body along the impulse")
	assert.InDelta(t, start.Y, a.Position.Y, 0.01)

	for i := 0; i < 60; i++ {
		frame()
	}
	assert.True(t, a.Knockback.IsZero(), "knockback decays to rest")
	assert.Less(t, a.Position.X, start.X-0.8)
	assert.Greater(t, a.Position.X, start.X-1.1)
}

func TestKnockbackWithoutBody(t *testing.T) {
	h := newHarness(t, tilemap.NewGrid(10, 10, tilemap.Eight), nil)
	a := h.agents.Spawn(zombie, utils.Vec2{X: 2.5, Y: 2.5}, h.target)
	h.ecs.AddAgent(a)

	h.agents.TakeDamage(a, 1, utils.Vec2{Y: 2})
	NewMovementSystem(h.ecs).Apply(0.1)
	assert.InDelta(t, 2.7, a.Position.Y, 1e-9)
	assert.InDelta(t, 2*math.Exp(-knockbackDrag*0.1), a.Knockback.Y, 1e-9)

	h.agents.Kill(a)
	assert.True(t, a.Knockback.IsZero())
}
