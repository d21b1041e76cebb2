package render

import (
	"math"

	"go-horde-survival/internal/component"
	"go-horde-survival/internal/config"
	"go-horde-survival/internal/entity"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// EntityRenderer рисует агентов, игрока и маркеры лута. World units are
// scaled by config.TileSize and shifted by the camera offset.
type EntityRenderer struct {
	ecs *entity.ECS
}

func NewEntityRenderer(ecs *entity.ECS) *EntityRenderer {
	return &EntityRenderer{ecs: ecs}
}

func (r *EntityRenderer) Draw(screen *ebiten.Image, offsetX, offsetY float64) {
	gameTime := r.ecs.GameTime

	for _, m := range r.ecs.Markers {
		x := float32(m.Position.X*config.TileSize + offsetX)
		y := float32(m.Position.Y*config.TileSize + offsetY)
		c := config.LootColors[m.Loot]
		c.A = uint8(255 * (1 - m.Timer/m.Duration))
		vector.StrokeRect(screen, x-4, y-4, 8, 8, 2, c, true)
	}

	r.ecs.EachAgent(func(a *component.Agent) {
		rend, ok := r.ecs.Renderables[a.ID]
		if !ok {
			return
		}
		x := float32(a.Position.X*config.TileSize + offsetX)
		y := float32(a.Position.Y*config.TileSize + offsetY)

		c := rend.Color
		switch {
		case a.State == component.StateStaggered:
			c = config.StaggeredColor
		case a.Fire.Active:
			// мерцание горящего агента
			if math.Sin(gameTime*20) > 0 {
				c = config.BurningColor
			}
		}
		radius := rend.Radius
		if a.State == component.StateAttack {
			// пульс на каждом кадре атаки
			radius *= 1 + 0.1*float32(a.Attack.Step)
		}
		vector.DrawFilledCircle(screen, x, y, radius, c, true)
	})

	if p := r.ecs.Player; p != nil && p.Health.Value > 0 {
		x := float32(p.Position.X*config.TileSize + offsetX)
		y := float32(p.Position.Y*config.TileSize + offsetY)
		vector.DrawFilledCircle(screen, x, y, float32(p.Radius*config.TileSize), config.PlayerColor, true)
		vector.StrokeCircle(screen, x, y, float32(p.Radius*config.TileSize), 1, config.TextLightColor, true)
	}
}
