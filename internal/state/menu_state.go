// internal/state/menu_state.go
package state

import (
	"log/slog"

	"go-horde-survival/internal/config"
	"go-horde-survival/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MenuState - стартовый экран.
type MenuState struct {
	sm     *StateMachine
	cfg    config.Config
	logger *slog.Logger
	err    error
}

func NewMenuState(sm *StateMachine, cfg config.Config, logger *slog.Logger) *MenuState {
	return &MenuState{sm: sm, cfg: cfg, logger: logger}
}

func (m *MenuState) Enter() {}

func (m *MenuState) Update(deltaTime float64) {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		m.sm.Quit()
		return
	}
	if !inpututil.IsKeyJustPressed(ebiten.KeySpace) && !inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return
	}
	gs, err := NewGameState(m.sm, m.cfg, m.logger)
	if err != nil {
		m.logger.Error("cannot start game", "err", err)
		m.err = err
		return
	}
	m.sm.SetState(gs)
}

func (m *MenuState) Draw(screen *ebiten.Image) {
	screen.Fill(config.BackgroundColor)
	cx, cy := float64(config.ScreenWidth)/2, float64(config.ScreenHeight)/2
	ui.DrawTextCentered(screen, "HORDE", cx, cy-40, config.TextLightColor)
	ui.DrawTextCentered(screen, "level: "+m.cfg.Level.Name, cx, cy-10, config.TextLightColor)
	ui.DrawTextCentered(screen, "SPACE - start, ESC - quit", cx, cy+20, config.TextLightColor)
	if m.err != nil {
		ui.DrawTextCentered(screen, m.err.Error(), cx, cy+50, config.RunningColor)
	}
}

func (m *MenuState) Exit() {}
