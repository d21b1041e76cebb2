package render

import (
	"math"

	"go-horde-survival/pkg/tilemap"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// GridRenderer рисует карту тайлов и стрелки поля потока. The tiles are
// pre-rendered into an image that is rebuilt when the grid version changes.
type GridRenderer struct {
	grid     *tilemap.Grid
	tileSize float64
	colors   *MapColors

	mapImage   *ebiten.Image
	mapVersion uint64
}

func NewGridRenderer(grid *tilemap.Grid, tileSize float64, colors *MapColors) *GridRenderer {
	r := &GridRenderer{grid: grid, tileSize: tileSize, colors: colors}
	r.RenderMapImage()
	return r
}

// RenderMapImage перерисовывает статичную карту.
func (r *GridRenderer) RenderMapImage() {
	w := int(float64(r.grid.Width) * r.tileSize)
	h := int(float64(r.grid.Height) * r.tileSize)
	if r.mapImage == nil {
		r.mapImage = ebiten.NewImage(w, h)
	}
	r.mapImage.Fill(r.colors.BackgroundColor)

	spawns := make(map[tilemap.Cell]bool, len(r.grid.SpawnPoints))
	for _, c := range r.grid.SpawnPoints {
		spawns[c] = true
	}
	ts := float32(r.tileSize)
	for row := 0; row < r.grid.Height; row++ {
		for col := 0; col < r.grid.Width; col++ {
			c := tilemap.Cell{Col: col, Row: row}
			x, y := float32(col)*ts, float32(row)*ts

			fill := r.colors.ImpassableColor
			if r.grid.IsWalkable(c) {
				fill = r.colors.PassableColor
				if cost := r.grid.Cost(c); cost > 1 {
					// '~' стоит 3, дороже - темнее
					fill = ShadeByCost(r.colors.RoughColor, cost/3)
				}
			}
			vector.DrawFilledRect(r.mapImage, x, y, ts, ts, fill, false)
			vector.StrokeRect(r.mapImage, x, y, ts, ts, r.colors.StrokeWidth, DarkenColor(fill), false)
			if spawns[c] {
				vector.StrokeRect(r.mapImage, x+3, y+3, ts-6, ts-6, 2, r.colors.SpawnColor, false)
			}
		}
	}
	r.mapVersion = r.grid.Version()
}

// Draw draws the map and, when field is non-nil, an arrow per reached cell.
func (r *GridRenderer) Draw(screen *ebiten.Image, field *tilemap.FlowField, offsetX, offsetY float64) {
	if r.mapVersion != r.grid.Version() {
		r.RenderMapImage()
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(offsetX, offsetY)
	screen.DrawImage(r.mapImage, op)

	if field == nil || !field.Computed() {
		return
	}
	half := r.tileSize / 2
	for row := 0; row < field.Height; row++ {
		for col := 0; col < field.Width; col++ {
			c := tilemap.Cell{Col: col, Row: row}
			dir := field.Direction(c)
			if dir.IsZero() {
				continue
			}
			cx := float64(col)*r.tileSize + half + offsetX
			cy := float64(row)*r.tileSize + half + offsetY
			r.drawArrow(screen, cx, cy, math.Atan2(dir.Y, dir.X), half*0.7)
		}
	}
}

func (r *GridRenderer) drawArrow(screen *ebiten.Image, cx, cy, angle, length float64) {
	tipX := cx + math.Cos(angle)*length
	tipY := cy + math.Sin(angle)*length
	tailX := cx - math.Cos(angle)*length*0.6
	tailY := cy - math.Sin(angle)*length*0.6
	c := r.colors.ArrowColor
	vector.StrokeLine(screen, float32(tailX), float32(tailY), float32(tipX), float32(tipY), 1, c, true)
	for _, side := range []float64{-1, 1} {
		a := angle + math.Pi - side*math.Pi/6
		vector.StrokeLine(screen, float32(tipX), float32(tipY),
			float32(tipX+math.Cos(a)*length*0.5), float32(tipY+math.Sin(a)*length*0.5), 1, c, true)
	}
}
