package tilemap

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func computeField(g *Grid, source Cell) *FlowField {
	f := NewFlowField(g.Width, g.Height)
	f.Compute(g, source)
	return f
}

// bellmanFord is the brute-force reference: relax every edge until nothing changes.
func bellmanFord(g *Grid, source Cell) map[Cell]float64 {
	dist := map[Cell]float64{source: 0}
	if !g.IsWalkable(source) {
		return dist
	}
	for changed := true; changed; {
		changed = false
		for row := 0; row < g.Height; row++ {
			for col := 0; col < g.Width; col++ {
				c := Cell{col, row}
				d, ok := dist[c]
				if !ok || !g.IsWalkable(c) {
					continue
				}
				var buf [8]Cell
				var dirs [8]int8
				n := g.neighbors(c, &buf, &dirs)
				for i := 0; i < n; i++ {
					nd := d + g.StepCost(buf[i], dirs[i])
					if old, seen := dist[buf[i]]; !seen || nd < old-1e-9 {
						dist[buf[i]] = nd
						changed = true
					}
				}
			}
		}
	}
	return dist
}

func randomGrid(rng *rand.Rand, w, h int, conn Connectivity) *Grid {
	g := NewGrid(w, h, conn)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			switch r := rng.Intn(10); {
			case r < 2:
				_ = g.SetWall(Cell{col, row})
			case r < 4:
				_ = g.SetTile(Cell{col, row}, true, float64(1+rng.Intn(4)))
			}
		}
	}
	return g
}

func TestFlowFieldOpenGridScenario(t *testing.T) {
	g := NewGrid(10, 10, Eight)
	f := computeField(g, Cell{5, 5})

	d, ok := f.Distance(Cell{5, 4})
	require.True(t, ok)
	assert.Equal(t, 1.0, d)

	d0, ok := f.Distance(Cell{5, 5})
	require.True(t, ok)
	assert.Equal(t, 0.0, d0)

	next, ok := f.Next(Cell{5, 4})
	require.True(t, ok)
	assert.Equal(t, Cell{5, 5}, next)
	assert.Equal(t, DirS, f.DirectionIndex(Cell{5, 4}))
	assert.InDelta(t, 1.0, f.Direction(Cell{5, 4}).Y, 1e-12)

	assert.True(t, f.Direction(Cell{5, 5}).IsZero(), "source has no direction")
}

func TestFlowFieldRoutesAroundWall(t *testing.T) {
	g := NewGrid(10, 10, Eight)
	require.NoError(t, g.SetWall(Cell{5, 5}))
	f := computeField(g, Cell{5, 6})

	_, reached := f.Distance(Cell{5, 5})
	assert.False(t, reached, "wall must never get a finite distance")
	assert.Equal(t, DirNone, f.DirectionIndex(Cell{5, 5}))

	for _, c := range []Cell{{4, 5}, {6, 5}, {5, 4}} {
		_, ok := f.Distance(c)
		assert.True(t, ok, "%v should be reachable", c)
		next, ok := f.Next(c)
		require.True(t, ok)
		assert.NotEqual(t, Cell{5, 5}, next, "%v must not step into the wall", c)
	}

	d, _ := f.Distance(Cell{5, 4})
	assert.InDelta(t, 4.0, d, 1e-9)
}

func TestFlowFieldMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 40; trial++ {
		conn := Eight
		if trial%2 == 1 {
			conn = Four
		}
		g := randomGrid(rng, 7, 6, conn)
		src := Cell{rng.Intn(7), rng.Intn(6)}
		f := computeField(g, src)
		want := bellmanFord(g, src)

		for row := 0; row < g.Height; row++ {
			for col := 0; col < g.Width; col++ {
				c := Cell{col, row}
				got, ok := f.Distance(c)
				exp, seen := want[c]
				require.Equal(t, seen, ok, "trial %d cell %v reachability", trial, c)
				if ok {
					require.InDelta(t, exp, got, 1e-9, "trial %d cell %v", trial, c)
				}
			}
		}
	}
}

func TestFlowFieldDirectionStrictlyDescends(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for trial := 0; trial < 40; trial++ {
		g := randomGrid(rng, 9, 9, Eight)
		src := Cell{4, 4}
		_ = g.SetTile(src, true, 1)
		f := computeField(g, src)

		for row := 0; row < g.Height; row++ {
			for col := 0; col < g.Width; col++ {
				c := Cell{col, row}
				d, ok := f.Distance(c)
				if !ok || c == src {
					continue
				}
				next, ok := f.Next(c)
				require.True(t, ok, "reached cell %v must have a direction", c)
				nd, _ := f.Distance(next)
				require.Less(t, nd, d)

				// following the field terminates at the source
				cur, steps := c, 0
				for cur != src {
					cur, _ = f.Next(cur)
					steps++
					require.LessOrEqual(t, steps, g.Width*g.Height)
				}
			}
		}
	}
}

func TestFlowFieldTieBreakPrefersCardinal(t *testing.T) {
	// (1,0) and (0,1) are both distance 1 from (0,0) on an open 4-connected grid;
	// from (1,1) the scan order N before W picks (1,0).
	g := NewGrid(3, 3, Four)
	f := computeField(g, Cell{0, 0})
	assert.Equal(t, DirN, f.DirectionIndex(Cell{1, 1}))

	// with diagonals, the diagonal is strictly shorter and wins.
	g8 := NewGrid(3, 3, Eight)
	f8 := computeField(g8, Cell{0, 0})
	assert.Equal(t, DirNW, f8.DirectionIndex(Cell{1, 1}))
}

func TestFlowFieldDeterministic(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	g := randomGrid(rng, 12, 12, Eight)
	src := Cell{6, 6}
	_ = g.SetTile(src, true, 1)

	a := computeField(g, src)
	b := computeField(g, src)
	assert.True(t, a.Equal(b))

	// recomputing in place reuses buffers and gives the same field
	a.Compute(g, Cell{0, 0})
	a.Compute(g, src)
	assert.True(t, a.Equal(b))

	var c FlowField
	c.CopyFrom(b)
	assert.True(t, c.Equal(b))
}

func TestFlowFieldUnwalkableSource(t *testing.T) {
	g := NewGrid(5, 5, Eight)
	require.NoError(t, g.SetWall(Cell{2, 2}))
	f := computeField(g, Cell{2, 2})

	assert.False(t, f.SourceWalkable)
	d, ok := f.Distance(Cell{2, 2})
	assert.True(t, ok)
	assert.Equal(t, 0.0, d)

	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			c := Cell{col, row}
			assert.True(t, f.Direction(c).IsZero(), "%v", c)
			if c != (Cell{2, 2}) {
				_, ok := f.Distance(c)
				assert.False(t, ok)
			}
		}
	}
}

func TestFlowFieldNeverComputed(t *testing.T) {
	f := NewFlowField(4, 4)
	assert.False(t, f.Computed())
	assert.True(t, f.Direction(Cell{1, 1}).IsZero())
	d, ok := f.Distance(Cell{1, 1})
	assert.False(t, ok)
	assert.True(t, math.IsInf(d, 1))
}

func TestFlowFieldDisconnectedRegion(t *testing.T) {
	g := MustParse([]string{
		"..#..",
		"P.#..",
		"..#..",
	}, Eight)
	f := computeField(g, g.PlayerStart)

	_, ok := f.Distance(Cell{4, 1})
	assert.False(t, ok)
	assert.True(t, f.Direction(Cell{4, 1}).IsZero())
}
