package ui

import (
	"fmt"
	"image/color"

	"go-horde-survival/internal/config"
	"go-horde-survival/internal/hud"
	"go-horde-survival/internal/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// DayNightOverlay darkens the scene as night falls and shows the HUD clock.
type DayNightOverlay struct {
	X, Y     float64
	MaxShade uint8
}

func NewDayNightOverlay(x, y float64) *DayNightOverlay {
	return &DayNightOverlay{X: x, Y: y, MaxShade: 150}
}

func (o *DayNightOverlay) Draw(screen *ebiten.Image, d *hud.DayNight) {
	shade := uint8(utils.Lerp(0, float32(o.MaxShade), float32(1-d.Daylight())))
	if shade > 0 {
		vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, shade}, false)
	}
	DrawText(screen, fmt.Sprintf("%02d:00", d.Hour()), o.X, o.Y, config.TextLightColor)
}
