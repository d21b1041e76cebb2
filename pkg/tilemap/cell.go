// pkg/tilemap/cell.go
package tilemap

import (
	"math"

	"go-horde-survival/internal/utils"
	putils "go-horde-survival/pkg/utils"
)

// Cell is an integer (column, row) coordinate into a Grid. Rows grow downward.
type Cell struct {
	Col, Row int
}

// Direction indexes into NeighborOffsets.
const (
	DirNone int8 = -1
	DirN    int8 = 0
	DirE    int8 = 1
	DirS    int8 = 2
	DirW    int8 = 3
	DirNE   int8 = 4
	DirSE   int8 = 5
	DirSW   int8 = 6
	DirNW   int8 = 7
)

// NeighborOffsets is the fixed neighbor scan order: cardinals clockwise from
// north, then diagonals clockwise from north-east. The flow field breaks
// distance ties by this order, so it must never change.
var NeighborOffsets = [8]Cell{
	{0, -1}, {1, 0}, {0, 1}, {-1, 0},
	{1, -1}, {1, 1}, {-1, 1}, {-1, -1},
}

// dirVectors are the unit vectors for NeighborOffsets.
var dirVectors [8]utils.Vec2

func init() {
	for i, o := range NeighborOffsets {
		dirVectors[i] = utils.Vec2{X: float64(o.Col), Y: float64(o.Row)}.Normalize()
	}
}

// DirVector returns the unit vector for a direction index, Zero for DirNone.
func DirVector(d int8) utils.Vec2 {
	if d < 0 || int(d) >= len(dirVectors) {
		return utils.Zero
	}
	return dirVectors[d]
}

// IsDiagonal reports whether direction index d is one of the four diagonals.
func IsDiagonal(d int8) bool {
	return d >= DirNE
}

func (c Cell) Add(o Cell) Cell {
	return Cell{Col: c.Col + o.Col, Row: c.Row + o.Row}
}

// Chebyshev returns the king-move distance between two cells.
func (c Cell) Chebyshev(o Cell) int {
	dc := putils.Abs(c.Col - o.Col)
	dr := putils.Abs(c.Row - o.Row)
	if dc > dr {
		return dc
	}
	return dr
}

// Center returns the world-space center of the cell.
func (c Cell) Center() utils.Vec2 {
	return utils.Vec2{X: float64(c.Col) + 0.5, Y: float64(c.Row) + 0.5}
}

// WorldToCell converts world coordinates to the containing cell.
func WorldToCell(p utils.Vec2) Cell {
	return Cell{Col: int(math.Floor(p.X)), Row: int(math.Floor(p.Y))}
}
