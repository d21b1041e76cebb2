package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-horde-survival/internal/component"
	"go-horde-survival/internal/defs"
	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/tilemap"
)

func newBurnHarness(t *testing.T) (*harness, *component.Agent) {
	h := newHarness(t, tilemap.NewGrid(6, 6, tilemap.Eight), nil)
	require.Equal(t, 3.0, h.cfg.Fire.Duration)
	require.Equal(t, 0.5, h.cfg.Fire.TickInterval)
	require.Equal(t, 1.0, h.cfg.Indicator.HideDelay)
	a := h.agents.Spawn(zombie, utils.Vec2{X: 2.5, Y: 2.5}, h.target)
	return h, a
}

func TestIndicatorHidesAfterDamage(t *testing.T) {
	h, a := newBurnHarness(t)
	h.agents.TakeDamage(a, 10, utils.Zero)
	assert.True(t, h.sink.visible[a.ID])

	h.advance(0.5, 0.5)
	assert.True(t, h.sink.visible[a.ID])
	h.advance(0.5, 0.5)
	assert.False(t, h.sink.visible[a.ID])
	assert.Equal(t, 1, h.sink.shows)
	assert.Equal(t, 1, h.sink.hides)
}

func TestRepeatedDamageExtendsIndicator(t *testing.T) {
	h, a := newBurnHarness(t)
	h.agents.TakeDamage(a, 10, utils.Zero)
	h.advance(0.5, 0.5)
	h.agents.TakeDamage(a, 10, utils.Zero)
	h.advance(0.5, 0.5)
	assert.True(t, h.sink.visible[a.ID], "hide moved to 1.5")
	h.advance(0.5, 0.5)
	assert.False(t, h.sink.visible[a.ID])
	assert.Equal(t, 1, h.sink.shows, "show is not repeated while visible")
}

func TestFireBurnsUntilExpiry(t *testing.T) {
	h, a := newBurnHarness(t)
	h.agents.SetOnFire(a)
	assert.True(t, a.Fire.Active)
	assert.True(t, h.sink.visible[a.ID])

	h.advance(2.5, 0.5)
	assert.True(t, h.sink.visible[a.ID], "visible while burning")
	assert.Equal(t, 75.0, a.Health.Value)

	h.advance(0.5, 0.5)
	assert.False(t, a.Fire.Active)
	assert.Equal(t, 75.0, a.Health.Value, "the fire goes out before its tick at expiry")
	assert.False(t, h.sink.visible[a.ID])

	h.advance(2, 0.5)
	assert.Equal(t, 75.0, a.Health.Value)
	assert.Zero(t, h.timers.Len())
}

func TestSetOnFireRefreshesWithoutStacking(t *testing.T) {
	h, a := newBurnHarness(t)
	h.agents.SetOnFire(a)
	h.advance(1.0, 0.5)
	h.agents.SetOnFire(a)
	assert.Equal(t, 4.0, a.Fire.Expiry)

	h.advance(1.0, 0.5)
	assert.Equal(t, 80.0, a.Health.Value, "one tick chain, 5 per half second")

	h.advance(2.0, 0.5)
	assert.False(t, a.Fire.Active)
	assert.Equal(t, 65.0, a.Health.Value)
}

func TestIndicatorOutlivesFireAfterLateDamage(t *testing.T) {
	h, a := newBurnHarness(t)
	h.agents.SetOnFire(a)
	h.advance(2.5, 0.5)
	h.agents.TakeDamage(a, 1, utils.Zero) // hide at max(3.5, 3.0)

	h.advance(0.5, 0.5)
	assert.False(t, a.Fire.Active)
	assert.True(t, h.sink.visible[a.ID], "a later hide is still pending")

	h.advance(0.5, 0.5)
	assert.False(t, h.sink.visible[a.ID])
}

func TestIgniteAfterDamageMovesHideToExpiry(t *testing.T) {
	h, a := newBurnHarness(t)
	h.agents.TakeDamage(a, 1, utils.Zero)
	h.advance(0.5, 0.5)
	h.agents.TakeHit(a, 0, utils.Zero, defs.HitFire)
	require.True(t, a.Fire.Active)

	h.advance(1.0, 0.5)
	assert.True(t, h.sink.visible[a.ID], "the 1 s hide was replaced")
	h.advance(2.0, 0.5)
	assert.False(t, h.sink.visible[a.ID])
}

func TestFireKillsOnce(t *testing.T) {
	h, a := newBurnHarness(t)
	a.Health.Value = 12
	log := &eventLog{}
	a.Bus.Subscribe(log)

	h.agents.SetOnFire(a)
	h.advance(3, 0.5)
	assert.Equal(t, component.StateDead, a.State)
	assert.Len(t, log.events, 1)
	assert.False(t, h.sink.visible[a.ID])
	assert.Zero(t, h.timers.Len())
}

func TestStaleHideOnDeadAgentIsNoop(t *testing.T) {
	h, a := newBurnHarness(t)
	h.agents.TakeDamage(a, 10, utils.Zero)
	hides := h.sink.hides
	h.agents.Kill(a)
	require.Equal(t, hides+1, h.sink.hides)

	h.advance(2, 0.5)
	assert.Equal(t, hides+1, h.sink.hides)
}

func TestFireTickCadenceIgnoresFrameRate(t *testing.T) {
	h, a := newBurnHarness(t)
	h.agents.SetOnFire(a)
	h.advance(3.2, 0.4)
	assert.False(t, a.Fire.Active)
	assert.Equal(t, 75.0, a.Health.Value, "ticks at 0.5 s steps regardless of the 0.4 s frames")
}
