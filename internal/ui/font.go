package ui

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// Face - общий шрифт HUD.
var Face = text.NewGoXFace(basicfont.Face7x13)

// DrawText draws s with its top-left corner at (x, y).
func DrawText(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, Face, op)
}

// DrawTextCentered draws s centered horizontally on x.
func DrawTextCentered(screen *ebiten.Image, s string, x, y float64, c color.Color) {
	w := text.Advance(s, Face)
	DrawText(screen, s, x-w/2, y, c)
}
