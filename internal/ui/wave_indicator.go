package ui

import (
	"image/color"

	"go-horde-survival/internal/hud"

	"github.com/hajimehoshi/ebiten/v2"
)

// WaveIndicator отображает номер текущего раунда римскими цифрами.
type WaveIndicator struct {
	X, Y             float64
	Color            color.RGBA
	BossColor        color.RGBA
	OutlineColor     color.RGBA
	OutlineThickness int
}

// NewWaveIndicator создает новый индикатор волны.
func NewWaveIndicator(x, y float64) *WaveIndicator {
	return &WaveIndicator{
		X:                x,
		Y:                y,
		Color:            color.RGBA{70, 130, 180, 255},
		BossColor:        color.RGBA{220, 30, 30, 255},
		OutlineColor:     color.RGBA{255, 255, 255, 255},
		OutlineThickness: 1,
	}
}

// Draw отрисовывает индикатор на экране.
func (i *WaveIndicator) Draw(screen *ebiten.Image, round *hud.RoundText) {
	label := round.String()
	if label == "" {
		return
	}
	textColor := i.Color
	if round.Boss() {
		textColor = i.BossColor // красный для каждого десятого раунда
	}

	// обводка
	for y := -i.OutlineThickness; y <= i.OutlineThickness; y++ {
		for x := -i.OutlineThickness; x <= i.OutlineThickness; x++ {
			if x == 0 && y == 0 {
				continue
			}
			DrawTextCentered(screen, label, i.X+float64(x), i.Y+float64(y), i.OutlineColor)
		}
	}
	DrawTextCentered(screen, label, i.X, i.Y, textColor)
}
