// internal/component/visual.go
package component

import (
	"go-horde-survival/internal/defs"
	"go-horde-survival/internal/utils"
)

// LootMarker отмечает место, где выпал лут. Economy rules are out of scope;
// the marker only shows the drop decision.
type LootMarker struct {
	Position utils.Vec2
	Loot     defs.LootType
	Timer    float64 // сколько уже висит
	Duration float64
}
