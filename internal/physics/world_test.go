package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/tilemap"
)

const step = 1.0 / 60

func TestBodyMovesWithRequestedVelocity(t *testing.T) {
	w := NewWorld(1)
	b := w.AddBody(utils.Vec2{X: 5, Y: 5}, 0.3, 1)
	b.SetVelocity(utils.Vec2{X: 1})
	for i := 0; i < 60; i++ {
		w.Step(step)
	}
	assert.InDelta(t, 6.0, b.Position().X, 0.01)
	assert.InDelta(t, 5.0, b.Position().Y, 0.01)
}

func TestWallsStopBodies(t *testing.T) {
	g := tilemap.MustParse([]string{
		"#####",
		"#P.##",
		"#####",
	}, tilemap.Eight)
	w := NewWorld(1)
	w.AddWalls(g)

	b := w.AddBody(utils.Vec2{X: 1.5, Y: 1.5}, 0.35, 1)
	for i := 0; i < 180; i++ {
		b.SetVelocity(utils.Vec2{X: 2})
		w.Step(step)
	}
	p := b.Position()
	assert.Less(t, p.X, 3.0, "never enters the wall cell")
	assert.Greater(t, p.X, 2.3)
	assert.InDelta(t, 1.5, p.Y, 0.05)
}

func TestImpulseChangesVelocity(t *testing.T) {
	w := NewWorld(1)
	b := w.AddBody(utils.Vec2{X: 0, Y: 0}, 0.3, 2)
	b.ApplyImpulse(utils.Vec2{Y: 4})
	assert.InDelta(t, 2.0, b.Velocity().Y, 1e-9)
}

func TestDampingSlowsBodies(t *testing.T) {
	w := NewWorld(0.1)
	b := w.AddBody(utils.Vec2{}, 0.3, 1)
	b.SetVelocity(utils.Vec2{X: 3})
	for i := 0; i < 60; i++ {
		w.Step(step)
	}
	assert.InDelta(t, 0.3, b.Velocity().X, 0.05)
}

func TestRemoveBodyIsIdempotent(t *testing.T) {
	w := NewWorld(1)
	b := w.AddBody(utils.Vec2{}, 0.3, 1)
	other := w.AddBody(utils.Vec2{X: 3}, 0.3, 1)
	require.Equal(t, 2, w.BodyCount())

	w.RemoveBody(b)
	w.RemoveBody(b)
	assert.Equal(t, 1, w.BodyCount())

	w.Step(step)
	w.Step(0)
	assert.InDelta(t, 3.0, other.Position().X, 1e-9)
}
