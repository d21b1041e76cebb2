// internal/event/types.go
package event

import (
	"go-horde-survival/internal/defs"
	"go-horde-survival/internal/types"
	"go-horde-survival/internal/utils"
)

// Type - тип события
type Type uint8

const (
	RoundChanged Type = iota // номер раунда увеличился
	WaveCleared              // все агенты волны уничтожены
	AgentSpawned
	AgentDied
	PlayerDied
)

func (t Type) String() string {
	switch t {
	case RoundChanged:
		return "RoundChanged"
	case WaveCleared:
		return "WaveCleared"
	case AgentSpawned:
		return "AgentSpawned"
	case AgentDied:
		return "AgentDied"
	case PlayerDied:
		return "PlayerDied"
	}
	return "Unknown"
}

// Event is the single message type on every bus. Only the fields relevant to
// Type are set; listeners never receive a reference into publisher internals.
type Event struct {
	Type     Type
	Round    int
	AgentID  types.EntityID
	Position utils.Vec2
	Loot     defs.LootType // AgentDied: what dropped, LootNone if nothing
	Forced   bool          // AgentDied: removed by a scene clear, not killed
}
