// internal/component/agent.go
package component

import (
	"go-horde-survival/internal/defs"
	"go-horde-survival/internal/event"
	"go-horde-survival/internal/interfaces"
	"go-horde-survival/internal/timer"
	"go-horde-survival/internal/types"
	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/tilemap"
)

// AgentState - состояние конечного автомата агента.
type AgentState uint8

const (
	StateIdle AgentState = iota
	StateFollowField
	StateAttack
	StateStaggered
	StateDead
)

func (s AgentState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateFollowField:
		return "FollowField"
	case StateAttack:
		return "Attack"
	case StateStaggered:
		return "Staggered"
	case StateDead:
		return "Dead"
	}
	return "Unknown"
}

// AttackData is live while State == StateAttack.
type AttackData struct {
	Step     int     // текущий кадр атаки, 0..steps-1
	StepTime float64 // сколько прошло в текущем кадре
}

// StaggerData is live while State == StateStaggered. The end of the stagger
// is a timer callback that sets Done; the next step leaves the state.
type StaggerData struct {
	Token timer.Token
	Done  bool
}

// Agent is one enemy. State-specific data sits next to the state id so a
// transition only has to reset the block it enters.
type Agent struct {
	ID       types.EntityID
	DefID    string
	Position utils.Vec2
	Cell     tilemap.Cell
	Velocity utils.Vec2 // последний запрос движения
	// Knockback is hit velocity carried on top of Velocity until it decays.
	Knockback utils.Vec2
	Speed    float64
	Radius   float64
	Health   Health
	Loot     defs.LootType
	Target   interfaces.Target
	Body     interfaces.Body

	State     AgentState
	StateTime float64
	Attack    AttackData
	Stagger   StaggerData
	Attacks   int // завершённые циклы атаки

	Fire      BurningEffect
	Indicator IndicatorState

	// Bus publishes AgentDied exactly once.
	Bus *event.Dispatcher
}

// Alive reports whether the agent still ticks.
func (a *Agent) Alive() bool {
	return a.State != StateDead
}
