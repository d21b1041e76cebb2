// internal/system/state.go
package system

import (
	"go-horde-survival/internal/event"
	"go-horde-survival/internal/interfaces"
)

// StateSystem turns player death into a scene teardown. The teardown runs
// from Update at the end of the tick, never from inside the agent pass that
// dealt the killing blow.
type StateSystem struct {
	gameContext interfaces.GameContext
	teardown    bool
	teardowns   int
}

func NewStateSystem(gameContext interfaces.GameContext, playerBus *event.Dispatcher) *StateSystem {
	ss := &StateSystem{gameContext: gameContext}
	playerBus.Subscribe(ss, event.PlayerDied)
	return ss
}

func (s *StateSystem) OnEvent(e event.Event) {
	if e.Type == event.PlayerDied {
		s.teardown = true
	}
}

// Update clears the scene if the player died this tick.
func (s *StateSystem) Update() {
	if !s.teardown {
		return
	}
	s.teardown = false
	s.teardowns++
	s.gameContext.ClearScene()
}

// Teardowns returns how many times the scene was cleared after a player death.
func (s *StateSystem) Teardowns() int {
	return s.teardowns
}
