// internal/component/player.go
package component

import (
	"go-horde-survival/internal/interfaces"
	"go-horde-survival/internal/types"
	"go-horde-survival/internal/utils"
)

// Player хранит состояние игрока: позицию, здоровье и тело в физическом мире.
type Player struct {
	ID       types.EntityID
	Position utils.Vec2
	Velocity utils.Vec2
	Speed    float64
	Radius   float64
	Health   Health
	Body     interfaces.Body
	Kills    int
}
