package navigation

import (
	"strings"

	"go-horde-survival/pkg/tilemap"
)

var arrows = [8]rune{'↑', '→', '↓', '←', '↗', '↘', '↙', '↖'}

// Glyph returns the debug character for one cell of the field:
// '#' unwalkable, '@' source, '?' unreached floor, else an arrow.
func Glyph(g *tilemap.Grid, f *tilemap.FlowField, c tilemap.Cell) rune {
	if f.Computed() && c == f.Source {
		return '@'
	}
	if !g.IsWalkable(c) {
		return '#'
	}
	d := f.DirectionIndex(c)
	if d == tilemap.DirNone {
		return '?'
	}
	return arrows[d]
}

// Format renders the whole field, one line per row.
func Format(g *tilemap.Grid, f *tilemap.FlowField) string {
	var b strings.Builder
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			b.WriteRune(Glyph(g, f, tilemap.Cell{Col: col, Row: row}))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
