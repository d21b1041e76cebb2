// internal/entity/ecs.go
package entity

import (
	"go-horde-survival/internal/component"
	"go-horde-survival/internal/types"
)

// ECS holds the live entities of one simulation. Agents are kept in spawn
// order so every pass over them is deterministic.
type ECS struct {
	GameTime    float64
	NextID      types.EntityID
	Agents      map[types.EntityID]*component.Agent
	Renderables map[types.EntityID]*component.Renderable
	Player      *component.Player
	Markers     []*component.LootMarker

	order []types.EntityID
}

func NewECS() *ECS {
	return &ECS{
		NextID:      1,
		Agents:      make(map[types.EntityID]*component.Agent),
		Renderables: make(map[types.EntityID]*component.Renderable),
	}
}

func (ecs *ECS) NewEntity() types.EntityID {
	id := ecs.NextID
	ecs.NextID++
	return id
}

// AddAgent registers a freshly spawned agent.
func (ecs *ECS) AddAgent(a *component.Agent) {
	if _, exists := ecs.Agents[a.ID]; exists {
		return
	}
	ecs.Agents[a.ID] = a
	ecs.order = append(ecs.order, a.ID)
}

// RemoveAgent drops an agent and its renderable. Unknown ids are ignored.
func (ecs *ECS) RemoveAgent(id types.EntityID) bool {
	if _, ok := ecs.Agents[id]; !ok {
		return false
	}
	delete(ecs.Agents, id)
	delete(ecs.Renderables, id)
	for i, v := range ecs.order {
		if v == id {
			ecs.order = append(ecs.order[:i], ecs.order[i+1:]...)
			break
		}
	}
	return true
}

// AgentIDs returns a snapshot of live agent ids in spawn order. Callers may
// remove agents while walking it.
func (ecs *ECS) AgentIDs() []types.EntityID {
	ids := make([]types.EntityID, len(ecs.order))
	copy(ids, ecs.order)
	return ids
}

// EachAgent calls fn for every live agent in spawn order.
func (ecs *ECS) EachAgent(fn func(a *component.Agent)) {
	for _, id := range ecs.AgentIDs() {
		if a, ok := ecs.Agents[id]; ok {
			fn(a)
		}
	}
}

func (ecs *ECS) AgentCount() int {
	return len(ecs.order)
}

// TakeAgents empties the registry and hands back what was in it, in spawn order.
func (ecs *ECS) TakeAgents() []*component.Agent {
	out := make([]*component.Agent, 0, len(ecs.order))
	for _, id := range ecs.order {
		out = append(out, ecs.Agents[id])
		delete(ecs.Renderables, id)
	}
	ecs.order = ecs.order[:0]
	ecs.Agents = make(map[types.EntityID]*component.Agent)
	return out
}
