// internal/ui/player_health_indicator.go
package ui

import (
	"fmt"
	"image/color"

	"go-horde-survival/internal/component"
	putils "go-horde-survival/pkg/utils"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	HealthRows          = 5
	HealthCols          = 4
	HealthCircleRadius  = 8.0
	HealthCircleSpacing = 4.0
)

var (
	healthFull  = color.RGBA{40, 90, 220, 255}
	healthLow   = color.RGBA{220, 40, 40, 255}
	healthEmpty = color.RGBA{0, 0, 0, 255}
)

// PlayerHealthIndicator отображает здоровье игрока сеткой кружков.
type PlayerHealthIndicator struct {
	X, Y float32
}

func NewPlayerHealthIndicator(x, y float32) *PlayerHealthIndicator {
	return &PlayerHealthIndicator{X: x, Y: y}
}

// Draw рисует индикатор. Каждый кружок - доля максимального здоровья.
func (i *PlayerHealthIndicator) Draw(screen *ebiten.Image, health component.Health) {
	cells := HealthRows * HealthCols
	filled := putils.ClampInt(int(health.Fraction()*float64(cells)+0.5), 0, cells)
	if health.Value > 0 && filled == 0 {
		filled = 1
	}
	half := cells / 2

	for j := 0; j < cells; j++ {
		row := j / HealthCols
		col := j % HealthCols
		x := i.X + float32(col)*(HealthCircleRadius*2+HealthCircleSpacing) + HealthCircleRadius
		y := i.Y + float32(row)*(HealthCircleRadius*2+HealthCircleSpacing) + HealthCircleRadius

		c := healthEmpty
		if j < filled {
			// больше половины - "избыток" синий
			c = healthLow
			if filled > half && j < filled-half {
				c = healthFull
			}
		}
		vector.DrawFilledCircle(screen, x, y, HealthCircleRadius, c, true)
		vector.StrokeCircle(screen, x, y, HealthCircleRadius, 1, color.White, true)
	}

	label := fmt.Sprintf("%.0f/%.0f", health.Value, health.Max)
	width := float64(HealthCols) * (HealthCircleRadius*2 + HealthCircleSpacing)
	DrawTextCentered(screen, label, float64(i.X)+width/2, float64(i.Y)-20, color.White)
}
