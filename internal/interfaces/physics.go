// internal/interfaces/physics.go
package interfaces

import "go-horde-survival/internal/utils"

// Body is the physical presence of an agent or the player inside the
// physics world. Positions are in world units.
type Body interface {
	Position() utils.Vec2
	SetPosition(p utils.Vec2)
	Velocity() utils.Vec2
	// SetVelocity requests a movement vector for the next step.
	SetVelocity(v utils.Vec2)
	ApplyImpulse(impulse utils.Vec2)
}

// PhysicsWorld resolves collisions. The core never does collision response itself.
type PhysicsWorld interface {
	AddBody(pos utils.Vec2, radius, mass float64) Body
	RemoveBody(b Body)
	Step(dt float64)
}
