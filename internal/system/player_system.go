// internal/system/player_system.go
package system

import (
	"log/slog"

	"go-horde-survival/internal/component"
	"go-horde-survival/internal/entity"
	"go-horde-survival/internal/event"
	"go-horde-survival/internal/interfaces"
	"go-horde-survival/internal/utils"
)

var _ interfaces.Target = (*PlayerSystem)(nil)

// PlayerSystem отвечает за логику игрока: урон от агентов, смерть, счётчик убийств.
// It is the Target every agent hunts.
type PlayerSystem struct {
	ecs    *entity.ECS
	bus    *event.Dispatcher
	logger *slog.Logger
}

func NewPlayerSystem(ecs *entity.ECS, bus *event.Dispatcher, logger *slog.Logger) *PlayerSystem {
	if logger == nil {
		logger = slog.Default()
	}
	return &PlayerSystem{ecs: ecs, bus: bus, logger: logger}
}

// Spawn creates the player at pos with full health.
func (s *PlayerSystem) Spawn(pos utils.Vec2, speed, radius, maxHealth float64, world interfaces.PhysicsWorld) *component.Player {
	if old := s.ecs.Player; old != nil && old.Body != nil && world != nil {
		world.RemoveBody(old.Body)
	}
	p := &component.Player{
		ID:       s.ecs.NewEntity(),
		Position: pos,
		Speed:    speed,
		Radius:   radius,
		Health:   component.Health{Value: maxHealth, Max: maxHealth},
	}
	if world != nil {
		// игрок тяжелее агентов, толпа его не сдвигает
		p.Body = world.AddBody(pos, radius, 50)
	}
	s.ecs.Player = p
	return p
}

func (s *PlayerSystem) Position() utils.Vec2 {
	if p := s.ecs.Player; p != nil {
		return p.Position
	}
	return utils.Zero
}

func (s *PlayerSystem) Alive() bool {
	p := s.ecs.Player
	return p != nil && p.Health.Value > 0
}

// TakeDamage reduces player health; the hit that reaches zero publishes PlayerDied once.
func (s *PlayerSystem) TakeDamage(amount float64) {
	p := s.ecs.Player
	if p == nil {
		return
	}
	if p.Health.Reduce(amount) {
		p.Velocity = utils.Zero
		s.logger.Info("player died", "kills", p.Kills)
		s.bus.Dispatch(event.Event{Type: event.PlayerDied, Position: p.Position})
	}
}

// Move requests movement along dir at the player's speed. A dead player stands still.
func (s *PlayerSystem) Move(dir utils.Vec2) {
	p := s.ecs.Player
	if p == nil {
		return
	}
	if !s.Alive() {
		p.Velocity = utils.Zero
		return
	}
	p.Velocity = dir.Normalize().Scale(p.Speed)
}

// OnEvent counts kills. Agents removed by a scene clear do not count.
func (s *PlayerSystem) OnEvent(e event.Event) {
	if e.Type != event.AgentDied || e.Forced {
		return
	}
	if p := s.ecs.Player; p != nil {
		p.Kills++
	}
}
