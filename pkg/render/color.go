// pkg/render/color.go
package render

import "image/color"

// MapColors holds all the color definitions needed to render the static map background.
type MapColors struct {
	BackgroundColor color.RGBA
	PassableColor   color.RGBA
	RoughColor      color.RGBA
	ImpassableColor color.RGBA
	SpawnColor      color.RGBA
	ArrowColor      color.RGBA
	StrokeWidth     float32
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// ShadeByCost darkens passable tiles in proportion to their traversal cost.
func ShadeByCost(c color.RGBA, cost float64) color.RGBA {
	if cost <= 1 {
		return c
	}
	k := 1 / cost
	if k < 0.4 {
		k = 0.4
	}
	return color.RGBA{
		R: uint8(float64(c.R) * k),
		G: uint8(float64(c.G) * k),
		B: uint8(float64(c.B) * k),
		A: c.A,
	}
}
