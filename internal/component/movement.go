// component/movement.go
package component

import "go-horde-survival/internal/utils"

// Waypoints - маршрут автопилота игрока
type Waypoints struct {
	Points       []utils.Vec2
	CurrentIndex int
}

// Current returns the active waypoint, cycling through the list.
func (w *Waypoints) Current() (utils.Vec2, bool) {
	if len(w.Points) == 0 {
		return utils.Zero, false
	}
	return w.Points[w.CurrentIndex%len(w.Points)], true
}

// Advance moves to the next waypoint.
func (w *Waypoints) Advance() {
	if len(w.Points) > 0 {
		w.CurrentIndex = (w.CurrentIndex + 1) % len(w.Points)
	}
}
