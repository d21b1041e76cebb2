// internal/state/pause_state.go
package state

import (
	"image/color"

	"go-horde-survival/internal/config"
	"go-horde-survival/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

// PauseState замораживает игру и рисует её под затемнением.
type PauseState struct {
	stateMachine *StateMachine
	previous     *GameState
}

func NewPauseState(sm *StateMachine, prev *GameState) *PauseState {
	return &PauseState{stateMachine: sm, previous: prev}
}

func (s *PauseState) Enter() {
	s.previous.game.Pause()
	s.previous.pauseButton.SetPaused(true)
}

func (s *PauseState) Update(deltaTime float64) {
	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		unpause = unpause || s.previous.pauseButton.IsClicked(x, y)
	}
	if unpause {
		s.stateMachine.SetState(s.previous)
	}
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previous.Draw(screen)
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 128}, false)
	ui.DrawTextCentered(screen, "PAUSED", float64(config.ScreenWidth)/2, float64(config.ScreenHeight)/2-6, color.White)
}

func (s *PauseState) Exit() {
	s.previous.game.Resume()
	s.previous.pauseButton.SetPaused(false)
}
