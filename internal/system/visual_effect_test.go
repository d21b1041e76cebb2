package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-horde-survival/internal/defs"
	"go-horde-survival/internal/entity"
	"go-horde-survival/internal/event"
	"go-horde-survival/internal/utils"
)

type countingContext struct{ clears int }

func (c *countingContext) ClearScene() { c.clears++ }

func TestLootMarkersFade(t *testing.T) {
	ecs := entity.NewECS()
	vs := NewVisualEffectSystem(ecs)

	vs.OnEvent(event.Event{Type: event.AgentDied, Loot: defs.LootNone})
	vs.OnEvent(event.Event{Type: event.AgentDied, Loot: defs.LootAmmo, Position: utils.Vec2{X: 2, Y: 3}})
	vs.OnEvent(event.Event{Type: event.WaveCleared})
	assert.Len(t, ecs.Markers, 1)
	assert.Equal(t, defs.LootAmmo, ecs.Markers[0].Loot)

	vs.Update(LootMarkerDuration / 2)
	vs.OnEvent(event.Event{Type: event.AgentDied, Loot: defs.LootLife})
	vs.Update(LootMarkerDuration / 2)
	assert.Len(t, ecs.Markers, 1)
	assert.Equal(t, defs.LootLife, ecs.Markers[0].Loot)

	vs.Clear()
	assert.Empty(t, ecs.Markers)
}

func TestPlayerDeathClearsSceneAtEndOfTick(t *testing.T) {
	bus := event.NewDispatcher()
	ctx := &countingContext{}
	ss := NewStateSystem(ctx, bus)

	ss.Update()
	assert.Zero(t, ctx.clears)

	bus.Dispatch(event.Event{Type: event.PlayerDied})
	assert.Zero(t, ctx.clears, "not from inside the dispatch")
	ss.Update()
	ss.Update()
	assert.Equal(t, 1, ctx.clears)
	assert.Equal(t, 1, ss.Teardowns())
}
