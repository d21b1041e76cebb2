// Package navigation owns the live flow field and decides when to rebuild it.
package navigation

import (
	"log/slog"

	"go-horde-survival/internal/interfaces"
	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/tilemap"
)

var _ interfaces.FieldSampler = (*Manager)(nil)

// RecomputeHook is called after every recompute with the new live field.
// Hooks must not keep the pointer past the call; the buffer is reused.
type RecomputeHook func(g *tilemap.Grid, f *tilemap.FlowField)

// Manager keeps two field buffers. A recompute fills the back buffer and
// swaps it in, so agents never observe a half-built field.
type Manager struct {
	grid  *tilemap.Grid
	live  *tilemap.FlowField
	back  *tilemap.FlowField
	hooks []RecomputeHook

	lastVersion uint64
	recomputes  int
	logger      *slog.Logger
}

// NewManager creates a manager over g. Nothing is computed until the first OnTargetMoved.
func NewManager(g *tilemap.Grid, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{
		grid:   g,
		live:   tilemap.NewFlowField(g.Width, g.Height),
		back:   tilemap.NewFlowField(g.Width, g.Height),
		logger: logger,
	}
}

// OnTargetMoved recomputes the field if the target changed cells or the grid
// changed since the last computation. It reports whether a recompute ran.
func (m *Manager) OnTargetMoved(cell tilemap.Cell) bool {
	if m.live.Computed() && m.live.Source == cell && m.lastVersion == m.grid.Version() {
		return false
	}
	m.Recompute(cell)
	return true
}

// Recompute rebuilds the field from source unconditionally.
func (m *Manager) Recompute(source tilemap.Cell) {
	m.back.Compute(m.grid, source)
	m.live, m.back = m.back, m.live
	m.lastVersion = m.grid.Version()
	m.recomputes++

	if !m.live.SourceWalkable {
		m.logger.Debug("flow field source is not walkable", "col", source.Col, "row", source.Row)
	}
	for _, h := range m.hooks {
		h(m.grid, m.live)
	}
}

// SampleDirection returns the unit direction at c, or the zero vector when c
// is unreached, is the source, or nothing was computed yet.
func (m *Manager) SampleDirection(c tilemap.Cell) utils.Vec2 {
	return m.live.Direction(c)
}

// Source returns the cell of the last computation.
func (m *Manager) Source() (tilemap.Cell, bool) {
	return m.live.Source, m.live.Computed()
}

// SourceWalkable is false when the target stands on an unwalkable cell;
// agents steer straight at it until it is back on walkable ground.
func (m *Manager) SourceWalkable() bool {
	return m.live.Computed() && m.live.SourceWalkable
}

// Field exposes the live field read-only for debug views.
func (m *Manager) Field() *tilemap.FlowField {
	return m.live
}

func (m *Manager) Grid() *tilemap.Grid {
	return m.grid
}

// Recomputes returns how many times the field was rebuilt.
func (m *Manager) Recomputes() int {
	return m.recomputes
}

// AddHook registers a debug hook.
func (m *Manager) AddHook(h RecomputeHook) {
	m.hooks = append(m.hooks, h)
}
