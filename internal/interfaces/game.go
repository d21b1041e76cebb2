// internal/interfaces/game.go
package interfaces

import (
	"go-horde-survival/internal/types"
	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/tilemap"
)

// Target - то, за чем охотятся агенты (игрок).
type Target interface {
	Position() utils.Vec2
	Alive() bool
	TakeDamage(amount float64)
}

// IndicatorSink is the HUD side of per-agent health indicators.
type IndicatorSink interface {
	Show(id types.EntityID)
	Hide(id types.EntityID)
}

// FieldSampler is what agents read from the navigation layer each tick.
type FieldSampler interface {
	SampleDirection(c tilemap.Cell) utils.Vec2
	// Source returns the cell of the last computation; ok is false before the first one.
	Source() (c tilemap.Cell, ok bool)
	SourceWalkable() bool
}

// GameContext is what systems may ask of the running game.
type GameContext interface {
	ClearScene()
}
