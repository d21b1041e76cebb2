// Package physics wraps a chipmunk space for the top-down world: dynamic
// circles for agents and the player, static boxes for wall cells.
package physics

import (
	"github.com/jakecoffman/cp"

	"go-horde-survival/internal/interfaces"
	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/tilemap"
)

var _ interfaces.PhysicsWorld = (*World)(nil)

// World is a zero-gravity space. Damping is the fraction of velocity a body
// keeps after one second without new requests.
type World struct {
	space  *cp.Space
	bodies map[*Body]struct{}
	walls  []*cp.Shape
}

func NewWorld(damping float64) *World {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{})
	space.SetDamping(damping)
	return &World{
		space:  space,
		bodies: make(map[*Body]struct{}),
	}
}

// AddWalls creates a static box for every unwalkable cell and a frame around
// the grid. Calling it again replaces the previous walls.
func (w *World) AddWalls(g *tilemap.Grid) {
	for _, s := range w.walls {
		w.space.RemoveShape(s)
	}
	w.walls = w.walls[:0]

	static := w.space.StaticBody
	addBox := func(l, b, r, t float64) {
		shape := w.space.AddShape(cp.NewBox2(static, cp.BB{L: l, B: b, R: r, T: t}, 0))
		shape.SetFriction(0)
		w.walls = append(w.walls, shape)
	}

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			if g.IsWalkable(tilemap.Cell{Col: col, Row: row}) {
				continue
			}
			addBox(float64(col), float64(row), float64(col+1), float64(row+1))
		}
	}
	width, height := float64(g.Width), float64(g.Height)
	addBox(-1, -1, width+1, 0)
	addBox(-1, height, width+1, height+1)
	addBox(-1, 0, 0, height)
	addBox(width, 0, width+1, height)
}

// AddBody creates a dynamic circle at pos.
func (w *World) AddBody(pos utils.Vec2, radius, mass float64) interfaces.Body {
	body := cp.NewBody(mass, cp.MomentForCircle(mass, 0, radius, cp.Vector{}))
	w.space.AddBody(body)
	body.SetPosition(cp.Vector{X: pos.X, Y: pos.Y})

	shape := cp.NewCircle(body, radius, cp.Vector{})
	shape.SetFriction(0)
	shape.SetElasticity(0)
	w.space.AddShape(shape)

	b := &Body{body: body, shape: shape}
	w.bodies[b] = struct{}{}
	return b
}

// RemoveBody detaches b from the space. Removing twice or removing a body of
// another world is a no-op.
func (w *World) RemoveBody(ib interfaces.Body) {
	b, ok := ib.(*Body)
	if !ok {
		return
	}
	if _, live := w.bodies[b]; !live {
		return
	}
	delete(w.bodies, b)
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
}

// Step advances the simulation.
func (w *World) Step(dt float64) {
	if dt <= 0 {
		return
	}
	w.space.Step(dt)
}

// BodyCount returns the number of dynamic bodies.
func (w *World) BodyCount() int {
	return len(w.bodies)
}

// Body is a dynamic circle.
type Body struct {
	body  *cp.Body
	shape *cp.Shape
}

func (b *Body) Position() utils.Vec2 {
	p := b.body.Position()
	return utils.Vec2{X: p.X, Y: p.Y}
}

func (b *Body) SetPosition(p utils.Vec2) {
	b.body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
}

func (b *Body) Velocity() utils.Vec2 {
	v := b.body.Velocity()
	return utils.Vec2{X: v.X, Y: v.Y}
}

func (b *Body) SetVelocity(v utils.Vec2) {
	b.body.SetVelocity(v.X, v.Y)
}

func (b *Body) ApplyImpulse(impulse utils.Vec2) {
	b.body.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse.X, Y: impulse.Y}, b.body.Position())
}
