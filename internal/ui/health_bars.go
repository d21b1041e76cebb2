package ui

import (
	"go-horde-survival/internal/config"
	"go-horde-survival/internal/entity"
	"go-horde-survival/internal/hud"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// HealthBars draws a bar above every agent whose indicator is visible.
type HealthBars struct {
	ecs        *entity.ECS
	indicators *hud.Indicators
}

func NewHealthBars(ecs *entity.ECS, indicators *hud.Indicators) *HealthBars {
	return &HealthBars{ecs: ecs, indicators: indicators}
}

func (h *HealthBars) Draw(screen *ebiten.Image, offsetX, offsetY float64) {
	for _, id := range h.indicators.IDs() {
		a, ok := h.ecs.Agents[id]
		if !ok {
			continue
		}
		x := float32(a.Position.X*config.TileSize+offsetX) - config.HealthBarWidth/2
		y := float32((a.Position.Y-a.Radius)*config.TileSize+offsetY) - config.HealthBarHeight - 3
		vector.DrawFilledRect(screen, x, y, config.HealthBarWidth, config.HealthBarHeight, config.BackgroundColor, false)
		w := float32(a.Health.Fraction()) * config.HealthBarWidth
		c := config.HealthBarColor
		if a.Fire.Active {
			c = config.BurningColor
		}
		vector.DrawFilledRect(screen, x, y, w, config.HealthBarHeight, c, false)
	}
}
