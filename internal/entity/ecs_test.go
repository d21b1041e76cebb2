package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-horde-survival/internal/component"
	"go-horde-survival/internal/types"
)

func TestRegistryKeepsSpawnOrder(t *testing.T) {
	ecs := NewECS()
	for i := 0; i < 4; i++ {
		id := ecs.NewEntity()
		ecs.AddAgent(&component.Agent{ID: id})
		ecs.Renderables[id] = &component.Renderable{}
	}
	assert.Equal(t, []types.EntityID{1, 2, 3, 4}, ecs.AgentIDs())

	assert.True(t, ecs.RemoveAgent(2))
	assert.False(t, ecs.RemoveAgent(2))
	assert.NotContains(t, ecs.Renderables, types.EntityID(2))
	assert.Equal(t, []types.EntityID{1, 3, 4}, ecs.AgentIDs())
	assert.Equal(t, 3, ecs.AgentCount())
}

func TestEachAgentToleratesRemoval(t *testing.T) {
	ecs := NewECS()
	for i := 0; i < 3; i++ {
		ecs.AddAgent(&component.Agent{ID: ecs.NewEntity()})
	}
	var seen []types.EntityID
	ecs.EachAgent(func(a *component.Agent) {
		seen = append(seen, a.ID)
		if a.ID == 1 {
			ecs.RemoveAgent(2)
		}
	})
	assert.Equal(t, []types.EntityID{1, 3}, seen)
}

func TestTakeAgents(t *testing.T) {
	ecs := NewECS()
	a := &component.Agent{ID: ecs.NewEntity()}
	b := &component.Agent{ID: ecs.NewEntity()}
	ecs.AddAgent(a)
	ecs.AddAgent(b)
	ecs.AddAgent(a)

	taken := ecs.TakeAgents()
	assert.Equal(t, []*component.Agent{a, b}, taken)
	assert.Zero(t, ecs.AgentCount())
	assert.Empty(t, ecs.TakeAgents())
	assert.Equal(t, types.EntityID(3), ecs.NewEntity(), "ids are never reused")
}
