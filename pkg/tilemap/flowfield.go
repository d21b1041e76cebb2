// pkg/tilemap/flowfield.go
package tilemap

import (
	"container/heap"
	"math"

	"go-horde-survival/internal/utils"
)

// Unreached is the distance of cells the source cannot reach.
var Unreached = math.Inf(1)

// FlowField holds a distance field and a direction field toward one source cell.
type FlowField struct {
	Width, Height  int
	Source         Cell
	SourceWalkable bool

	distances  []float64
	directions []int8
	computed   bool

	pq priorityQueue
}

// NewFlowField creates an empty, never-computed field for the given size.
func NewFlowField(width, height int) *FlowField {
	size := width * height
	f := &FlowField{
		Width:      width,
		Height:     height,
		distances:  make([]float64, size),
		directions: make([]int8, size),
		pq:         make(priorityQueue, 0, size/4+1),
	}
	f.reset()
	return f
}

func (f *FlowField) reset() {
	for i := range f.distances {
		f.distances[i] = Unreached
		f.directions[i] = DirNone
	}
}

// Computed reports whether Compute has run at least once.
func (f *FlowField) Computed() bool {
	return f.computed
}

func (f *FlowField) inBounds(c Cell) bool {
	return c.Col >= 0 && c.Row >= 0 && c.Col < f.Width && c.Row < f.Height
}

// Compute rebuilds the whole field from source.
//
// Pass 1 is Dijkstra seeded at source with distance 0. Pass 2 points every
// reached non-source cell at its minimum-distance neighbor; the first one in
// NeighborOffsets order wins ties. An unwalkable source is marked reached at 0
// but never expanded.
func (f *FlowField) Compute(g *Grid, source Cell) {
	f.reset()
	f.Source = source
	f.computed = true
	f.SourceWalkable = g.IsWalkable(source)
	if !f.inBounds(source) {
		return
	}

	w := f.Width
	srcIdx := source.Row*w + source.Col
	f.distances[srcIdx] = 0
	if !f.SourceWalkable {
		return
	}

	var buf [8]Cell
	var dirs [8]int8

	f.pq = f.pq[:0]
	heap.Push(&f.pq, &node{idx: srcIdx, dist: 0})
	for f.pq.Len() > 0 {
		cur := heap.Pop(&f.pq).(*node)
		if cur.dist > f.distances[cur.idx] {
			continue // устаревшая запись
		}
		c := Cell{Col: cur.idx % w, Row: cur.idx / w}
		n := g.neighbors(c, &buf, &dirs)
		for i := 0; i < n; i++ {
			nc := buf[i]
			if !f.inBounds(nc) {
				continue
			}
			nIdx := nc.Row*w + nc.Col
			nd := cur.dist + g.StepCost(nc, dirs[i])
			if nd < f.distances[nIdx] {
				f.distances[nIdx] = nd
				heap.Push(&f.pq, &node{idx: nIdx, dist: nd})
			}
		}
	}

	for idx, d := range f.distances {
		if idx == srcIdx || math.IsInf(d, 1) {
			continue
		}
		c := Cell{Col: idx % w, Row: idx / w}
		best := d
		bestDir := DirNone
		n := g.neighbors(c, &buf, &dirs)
		for i := 0; i < n; i++ {
			nc := buf[i]
			if !f.inBounds(nc) {
				continue
			}
			if nd := f.distances[nc.Row*w+nc.Col]; nd < best {
				best = nd
				bestDir = dirs[i]
			}
		}
		f.directions[idx] = bestDir
	}
}

// Distance returns the accumulated cost from c to the source and whether c was reached.
func (f *FlowField) Distance(c Cell) (float64, bool) {
	if !f.computed || !f.inBounds(c) {
		return Unreached, false
	}
	d := f.distances[c.Row*f.Width+c.Col]
	return d, !math.IsInf(d, 1)
}

// DirectionIndex returns the direction index at c, DirNone if unreached, the source, or never computed.
func (f *FlowField) DirectionIndex(c Cell) int8 {
	if !f.computed || !f.inBounds(c) {
		return DirNone
	}
	return f.directions[c.Row*f.Width+c.Col]
}

// Direction returns the unit vector at c, or the zero vector.
func (f *FlowField) Direction(c Cell) utils.Vec2 {
	return DirVector(f.DirectionIndex(c))
}

// Next returns the neighbor c's direction points at.
func (f *FlowField) Next(c Cell) (Cell, bool) {
	d := f.DirectionIndex(c)
	if d == DirNone {
		return c, false
	}
	return c.Add(NeighborOffsets[d]), true
}

// Equal reports whether two fields hold identical distances and directions.
func (f *FlowField) Equal(o *FlowField) bool {
	if f.Width != o.Width || f.Height != o.Height || f.Source != o.Source || f.computed != o.computed {
		return false
	}
	for i := range f.distances {
		if f.distances[i] != o.distances[i] || f.directions[i] != o.directions[i] {
			return false
		}
	}
	return true
}

// CopyFrom makes f an exact copy of o, reusing f's buffers when sizes match.
func (f *FlowField) CopyFrom(o *FlowField) {
	if len(f.distances) != len(o.distances) {
		f.distances = make([]float64, len(o.distances))
		f.directions = make([]int8, len(o.directions))
	}
	f.Width, f.Height = o.Width, o.Height
	f.Source, f.SourceWalkable, f.computed = o.Source, o.SourceWalkable, o.computed
	copy(f.distances, o.distances)
	copy(f.directions, o.directions)
}

// priorityQueue для Дейкстры; ничьи по дистанции разрешаются по индексу клетки,
// чтобы порядок обхода был детерминирован.
type priorityQueue []*node

type node struct {
	idx  int
	dist float64
}

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].dist != pq[j].dist {
		return pq[i].dist < pq[j].dist
	}
	return pq[i].idx < pq[j].idx
}
func (pq priorityQueue) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }
func (pq *priorityQueue) Push(x interface{}) {
	*pq = append(*pq, x.(*node))
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}
