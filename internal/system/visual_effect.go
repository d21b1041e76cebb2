// internal/system/visual_effect.go
package system

import (
	"go-horde-survival/internal/component"
	"go-horde-survival/internal/defs"
	"go-horde-survival/internal/entity"
	"go-horde-survival/internal/event"
)

// LootMarkerDuration - сколько секунд маркер лута остаётся на карте.
const LootMarkerDuration = 5.0

// VisualEffectSystem управляет визуальными эффектами: маркерами выпавшего лута.
type VisualEffectSystem struct {
	ecs *entity.ECS
}

// NewVisualEffectSystem создает новую систему визуальных эффектов.
func NewVisualEffectSystem(ecs *entity.ECS) *VisualEffectSystem {
	return &VisualEffectSystem{ecs: ecs}
}

// OnEvent places a marker for every agent death that dropped something.
func (s *VisualEffectSystem) OnEvent(e event.Event) {
	if e.Type != event.AgentDied || e.Loot == defs.LootNone {
		return
	}
	s.ecs.Markers = append(s.ecs.Markers, &component.LootMarker{
		Position: e.Position,
		Loot:     e.Loot,
		Duration: LootMarkerDuration,
	})
}

// Update обновляет все активные визуальные эффекты.
func (s *VisualEffectSystem) Update(deltaTime float64) {
	kept := s.ecs.Markers[:0]
	for _, m := range s.ecs.Markers {
		m.Timer += deltaTime
		if m.Timer < m.Duration {
			kept = append(kept, m)
		}
	}
	for i := len(kept); i < len(s.ecs.Markers); i++ {
		s.ecs.Markers[i] = nil
	}
	s.ecs.Markers = kept
}

// Clear drops every marker.
func (s *VisualEffectSystem) Clear() {
	s.ecs.Markers = nil
}
