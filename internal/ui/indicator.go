// internal/ui/indicator.go
package ui

import (
	"image/color"
	"math"
	"time"

	"go-horde-survival/internal/config"
	"go-horde-survival/internal/system"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// StateIndicator - кружок состояния планировщика волн.
type StateIndicator struct {
	X, Y          float32
	Radius        float32
	LastClickTime time.Time
}

func NewStateIndicator(x, y, radius float32) *StateIndicator {
	return &StateIndicator{X: x, Y: y, Radius: radius}
}

func stateColor(s system.SchedulerState) color.RGBA {
	switch s {
	case system.SchedulerRunning:
		return config.RunningColor
	case system.SchedulerPaused:
		return config.PausedColor
	}
	return config.WaitingColor
}

// Draw отрисовывает индикатор
func (i *StateIndicator) Draw(screen *ebiten.Image, state system.SchedulerState) {
	elapsed := time.Since(i.LastClickTime).Seconds()
	scale := 1.0 + 0.3*math.Exp(-elapsed*8)
	r := i.Radius * float32(scale)

	vector.DrawFilledCircle(screen, i.X, i.Y, r, stateColor(state), true)
	vector.StrokeCircle(screen, i.X, i.Y, r, 1, color.White, true)
}

// IsClicked проверяет, был ли клик внутри индикатора
func (i *StateIndicator) IsClicked(x, y int) bool {
	dx := float32(x) - i.X
	dy := float32(y) - i.Y
	return dx*dx+dy*dy <= i.Radius*i.Radius
}

func (i *StateIndicator) HandleClick() {
	i.LastClickTime = time.Now()
}
