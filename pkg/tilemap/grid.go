// pkg/tilemap/grid.go
package tilemap

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidLevel  = errors.New("tilemap: invalid level")
	ErrNoPlayerStart = errors.New("tilemap: level has no player start")
	ErrNoSpawnPoint  = errors.New("tilemap: no walkable spawn point")
	ErrOutOfBounds   = errors.New("tilemap: cell out of bounds")
)

// Blocked is the cost of a cell agents cannot enter.
var Blocked = math.Inf(1)

// Connectivity selects 4- or 8-connected neighbors.
type Connectivity int

const (
	Four  Connectivity = 4
	Eight Connectivity = 8
)

type Tile struct {
	Walkable bool
	Cost     float64
}

// Grid is the static tile map. Base tiles never change after construction;
// dynamic obstacles are cost overrides that bump Version so the flow field
// manager knows to recompute before the next agent pass.
type Grid struct {
	Width, Height int
	Connectivity  Connectivity
	SpawnPoints   []Cell
	PlayerStart   Cell

	tiles     []Tile
	overrides map[Cell]float64
	version   uint64
}

// NewGrid creates a fully walkable grid with unit costs.
func NewGrid(width, height int, conn Connectivity) *Grid {
	g := &Grid{
		Width:        width,
		Height:       height,
		Connectivity: conn,
		tiles:        make([]Tile, width*height),
		overrides:    make(map[Cell]float64),
	}
	for i := range g.tiles {
		g.tiles[i] = Tile{Walkable: true, Cost: 1}
	}
	return g
}

// Parse builds a grid from an ASCII layout:
//
//	'.' or ' '  floor, cost 1
//	'1'..'9'    floor with that cost
//	'~'         rough floor, cost 3
//	'#'         wall
//	'S'         enemy spawn point (floor)
//	'P'         player start (floor), exactly one
//
// Short rows are padded with walls.
func Parse(rows []string, conn Connectivity) (*Grid, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidLevel)
	}
	width := 0
	for _, r := range rows {
		if n := len([]rune(r)); n > width {
			width = n
		}
	}
	if width == 0 {
		return nil, fmt.Errorf("%w: empty layout", ErrInvalidLevel)
	}

	g := NewGrid(width, len(rows), conn)
	hasStart := false
	for row, line := range rows {
		runes := []rune(line)
		for col := 0; col < width; col++ {
			c := Cell{Col: col, Row: row}
			if col >= len(runes) {
				g.setTile(c, Tile{Walkable: false, Cost: Blocked})
				continue
			}
			switch ch := runes[col]; {
			case ch == '.' || ch == ' ':
			case ch >= '1' && ch <= '9':
				g.setTile(c, Tile{Walkable: true, Cost: float64(ch - '0')})
			case ch == '~':
				g.setTile(c, Tile{Walkable: true, Cost: 3})
			case ch == '#':
				g.setTile(c, Tile{Walkable: false, Cost: Blocked})
			case ch == 'S':
				g.SpawnPoints = append(g.SpawnPoints, c)
			case ch == 'P':
				if hasStart {
					return nil, fmt.Errorf("%w: second player start at %v", ErrInvalidLevel, c)
				}
				g.PlayerStart = c
				hasStart = true
			default:
				return nil, fmt.Errorf("%w: unknown tile %q at %v", ErrInvalidLevel, ch, c)
			}
		}
	}
	if !hasStart {
		return nil, ErrNoPlayerStart
	}
	return g, nil
}

// MustParse is Parse for fixed layouts known to be valid.
func MustParse(rows []string, conn Connectivity) *Grid {
	g, err := Parse(rows, conn)
	if err != nil {
		panic(err)
	}
	return g
}

// String renders the grid back into the Parse layout (overrides excluded).
func (g *Grid) String() string {
	spawns := make(map[Cell]bool, len(g.SpawnPoints))
	for _, s := range g.SpawnPoints {
		spawns[s] = true
	}
	var b strings.Builder
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			c := Cell{Col: col, Row: row}
			t := g.tiles[g.index(c)]
			switch {
			case c == g.PlayerStart:
				b.WriteByte('P')
			case spawns[c]:
				b.WriteByte('S')
			case !t.Walkable:
				b.WriteByte('#')
			case t.Cost == 1:
				b.WriteByte('.')
			case t.Cost == 3:
				b.WriteByte('~')
			case t.Cost > 1 && t.Cost <= 9 && t.Cost == math.Trunc(t.Cost):
				b.WriteByte(byte('0' + int(t.Cost)))
			default:
				b.WriteByte('?')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func (g *Grid) index(c Cell) int {
	return c.Row*g.Width + c.Col
}

func (g *Grid) setTile(c Cell, t Tile) {
	g.tiles[g.index(c)] = t
}

// InBounds reports whether c lies inside the grid.
func (g *Grid) InBounds(c Cell) bool {
	return c.Col >= 0 && c.Row >= 0 && c.Col < g.Width && c.Row < g.Height
}

// SetTile replaces a base tile. Used by level builders and tests, not at runtime.
func (g *Grid) SetTile(c Cell, walkable bool, cost float64) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	if walkable && cost < 1 {
		return fmt.Errorf("%w: walkable cost %v < 1 at %v", ErrInvalidLevel, cost, c)
	}
	if !walkable {
		cost = Blocked
	}
	g.setTile(c, Tile{Walkable: walkable, Cost: cost})
	g.version++
	return nil
}

// SetWall is SetTile(c, false, Blocked).
func (g *Grid) SetWall(c Cell) error {
	return g.SetTile(c, false, Blocked)
}

// SetOverride applies a dynamic cost override. Blocked makes the cell unwalkable.
func (g *Grid) SetOverride(c Cell, cost float64) error {
	if !g.InBounds(c) {
		return fmt.Errorf("%w: %v", ErrOutOfBounds, c)
	}
	if cost < 1 {
		return fmt.Errorf("%w: override cost %v < 1 at %v", ErrInvalidLevel, cost, c)
	}
	g.overrides[c] = cost
	g.version++
	return nil
}

// ClearOverride removes a dynamic override, if any.
func (g *Grid) ClearOverride(c Cell) {
	if _, ok := g.overrides[c]; ok {
		delete(g.overrides, c)
		g.version++
	}
}

// Version changes whenever walkability or costs change.
func (g *Grid) Version() uint64 {
	return g.version
}

// IsWalkable reports whether agents may occupy c.
func (g *Grid) IsWalkable(c Cell) bool {
	return !math.IsInf(g.Cost(c), 1)
}

// Cost returns the cost of entering c, Blocked for walls and out-of-bounds cells.
func (g *Grid) Cost(c Cell) float64 {
	if !g.InBounds(c) {
		return Blocked
	}
	t := g.tiles[g.index(c)]
	if !t.Walkable {
		return Blocked
	}
	if o, ok := g.overrides[c]; ok {
		return o
	}
	return t.Cost
}

// StepCost is the cost of moving from a cell to its neighbor in direction d.
// Diagonal steps are scaled by √2.
func (g *Grid) StepCost(to Cell, d int8) float64 {
	c := g.Cost(to)
	if IsDiagonal(d) {
		return c * math.Sqrt2
	}
	return c
}

// Neighbors returns the walkable neighbors of c in NeighborOffsets order.
func (g *Grid) Neighbors(c Cell) []Cell {
	var buf [8]Cell
	var dirs [8]int8
	n := g.neighbors(c, &buf, &dirs)
	out := make([]Cell, n)
	copy(out, buf[:n])
	return out
}

// neighbors fills buf/dirs without allocating and returns the count.
// A diagonal is only offered when both adjacent cardinals are walkable, so
// agents never cut wall corners; the relation stays symmetric.
func (g *Grid) neighbors(c Cell, buf *[8]Cell, dirs *[8]int8) int {
	n := 0
	limit := 4
	if g.Connectivity == Eight {
		limit = 8
	}
	for i := 0; i < limit; i++ {
		d := int8(i)
		nc := c.Add(NeighborOffsets[i])
		if !g.IsWalkable(nc) {
			continue
		}
		if IsDiagonal(d) {
			off := NeighborOffsets[i]
			if !g.IsWalkable(Cell{Col: c.Col + off.Col, Row: c.Row}) ||
				!g.IsWalkable(Cell{Col: c.Col, Row: c.Row + off.Row}) {
				continue
			}
		}
		buf[n] = nc
		dirs[n] = d
		n++
	}
	return n
}

// RandomSpawnPoint picks a walkable spawn point using intn (e.g. PRNG.Intn).
func (g *Grid) RandomSpawnPoint(intn func(int) int) (Cell, error) {
	candidates := make([]Cell, 0, len(g.SpawnPoints))
	for _, s := range g.SpawnPoints {
		if g.IsWalkable(s) {
			candidates = append(candidates, s)
		}
	}
	if len(candidates) == 0 {
		return Cell{}, ErrNoSpawnPoint
	}
	return candidates[intn(len(candidates))], nil
}

// WalkableCount returns the number of walkable cells, the cost scale of a recompute.
func (g *Grid) WalkableCount() int {
	n := 0
	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if g.IsWalkable(Cell{Col: col, Row: row}) {
				n++
			}
		}
	}
	return n
}
