// internal/system/movement.go
package system

import (
	"math"

	"go-horde-survival/internal/component"
	"go-horde-survival/internal/entity"
	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/tilemap"
)

const (
	knockbackDrag = 6.0  // 1/с, экспоненциальное затухание отброса
	knockbackRest = 0.05 // ниже этой скорости отброс обнуляется
)

// MovementSystem hands velocity requests to the physics bodies and reads the
// resolved positions back. Entities without a body are integrated directly.
type MovementSystem struct {
	ecs *entity.ECS
}

func NewMovementSystem(ecs *entity.ECS) *MovementSystem {
	return &MovementSystem{ecs: ecs}
}

// Apply pushes this tick's requests into the bodies. Call before the physics step.
// An agent's knockback is added to its steering request and then decays.
func (s *MovementSystem) Apply(deltaTime float64) {
	s.ecs.EachAgent(func(a *component.Agent) {
		if !a.Alive() {
			return
		}
		v := a.Velocity.Add(a.Knockback)
		a.Knockback = decayKnockback(a.Knockback, deltaTime)
		if a.Body != nil {
			a.Body.SetVelocity(v)
			return
		}
		a.Position = a.Position.Add(v.Scale(deltaTime))
	})
	if p := s.ecs.Player; p != nil && p.Body == nil {
		p.Position = p.Position.Add(p.Velocity.Scale(deltaTime))
	} else if p != nil {
		p.Body.SetVelocity(p.Velocity)
	}
}

func decayKnockback(v utils.Vec2, deltaTime float64) utils.Vec2 {
	if v.IsZero() {
		return v
	}
	v = v.Scale(math.Exp(-knockbackDrag * deltaTime))
	if v.Len() < knockbackRest {
		return utils.Zero
	}
	return v
}

// Sync adopts the positions the physics world resolved. Call after the physics step.
func (s *MovementSystem) Sync() {
	s.ecs.EachAgent(func(a *component.Agent) {
		if a.Body != nil {
			a.Position = a.Body.Position()
		}
		a.Cell = tilemap.WorldToCell(a.Position)
	})
	if p := s.ecs.Player; p != nil && p.Body != nil {
		p.Position = p.Body.Position()
	}
}
