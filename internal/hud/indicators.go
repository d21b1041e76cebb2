// Package hud holds the state the HUD widgets draw from. It has no renderer
// dependency so the simulation can run without a window.
package hud

import (
	"sort"

	"go-horde-survival/internal/interfaces"
	"go-horde-survival/internal/types"
)

var _ interfaces.IndicatorSink = (*Indicators)(nil)

// Indicators - набор агентов, над которыми сейчас видна полоска здоровья.
type Indicators struct {
	visible map[types.EntityID]struct{}
}

func NewIndicators() *Indicators {
	return &Indicators{visible: make(map[types.EntityID]struct{})}
}

func (i *Indicators) Show(id types.EntityID) { i.visible[id] = struct{}{} }
func (i *Indicators) Hide(id types.EntityID) { delete(i.visible, id) }

func (i *Indicators) Visible(id types.EntityID) bool {
	_, ok := i.visible[id]
	return ok
}

func (i *Indicators) Len() int { return len(i.visible) }

// IDs returns the visible ids in ascending order.
func (i *Indicators) IDs() []types.EntityID {
	ids := make([]types.EntityID, 0, len(i.visible))
	for id := range i.visible {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}

// Reset hides everything.
func (i *Indicators) Reset() {
	clear(i.visible)
}
