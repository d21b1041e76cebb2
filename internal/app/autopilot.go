// internal/app/autopilot.go
package app

import (
	"go-horde-survival/internal/component"
	"go-horde-survival/internal/defs"
	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/tilemap"
)

// AutopilotConfig настраивает скриптового игрока.
type AutopilotConfig struct {
	Waypoints      int     // сколько точек маршрута выбрать
	FireRange      float64 // дальность выстрела в клетках
	FireInterval   float64
	ShotDamage     float64
	StaggerEvery   int // каждый N-й выстрел оглушает
	IgniteInterval float64
}

func DefaultAutopilotConfig() AutopilotConfig {
	return AutopilotConfig{
		Waypoints:      6,
		FireRange:      6,
		FireInterval:   0.25,
		ShotDamage:     20,
		StaggerEvery:   3,
		IgniteInterval: 2,
	}
}

// Autopilot plays the game without input: it walks a loop of random
// waypoints along its own flow field, shoots the nearest agent and sets one
// on fire now and then. Headless runs and the demo mode use it.
type Autopilot struct {
	game  *Game
	rng   *utils.PRNGService
	cfg   AutopilotConfig
	route component.Waypoints
	field *tilemap.FlowField

	fireCooldown   float64
	igniteCooldown float64
	shots          int
}

func NewAutopilot(g *Game, rng *utils.PRNGService, cfg AutopilotConfig) *Autopilot {
	p := &Autopilot{
		game:           g,
		rng:            rng,
		cfg:            cfg,
		field:          tilemap.NewFlowField(g.Grid.Width, g.Grid.Height),
		igniteCooldown: cfg.IgniteInterval,
	}
	p.pickRoute()
	return p
}

// pickRoute chooses walkable cells reachable from the player start.
func (p *Autopilot) pickRoute() {
	grid := p.game.Grid
	reach := tilemap.NewFlowField(grid.Width, grid.Height)
	reach.Compute(grid, grid.PlayerStart)

	var cells []tilemap.Cell
	for row := 0; row < grid.Height; row++ {
		for col := 0; col < grid.Width; col++ {
			c := tilemap.Cell{Col: col, Row: row}
			if _, ok := reach.Distance(c); ok && c != grid.PlayerStart {
				cells = append(cells, c)
			}
		}
	}
	p.route = component.Waypoints{}
	for i := 0; i < p.cfg.Waypoints && len(cells) > 0; i++ {
		j := p.rng.Intn(len(cells))
		p.route.Points = append(p.route.Points, cells[j].Center())
		cells[j] = cells[len(cells)-1]
		cells = cells[:len(cells)-1]
	}
	p.aim()
}

func (p *Autopilot) aim() {
	if wp, ok := p.route.Current(); ok {
		p.field.Compute(p.game.Grid, tilemap.WorldToCell(wp))
	}
}

// Update steers the player and fires. Call before Game.Update.
func (p *Autopilot) Update(deltaTime float64) {
	ps := p.game.PlayerSystem
	if !ps.Alive() {
		return
	}
	p.walk()

	p.fireCooldown -= deltaTime
	p.igniteCooldown -= deltaTime
	pos := ps.Position()
	if p.fireCooldown <= 0 {
		if a := p.game.NearestAgent(pos, p.cfg.FireRange); a != nil {
			p.shots++
			kind := defs.HitNormal
			if p.cfg.StaggerEvery > 0 && p.shots%p.cfg.StaggerEvery == 0 {
				kind = defs.HitStagger
			}
			p.game.Shoot(a, p.cfg.ShotDamage, kind)
			p.fireCooldown = p.cfg.FireInterval
		}
	}
	if p.igniteCooldown <= 0 {
		if a := p.game.NearestAgent(pos, p.cfg.FireRange); a != nil && !a.Fire.Active {
			p.game.Shoot(a, 0, defs.HitFire)
			p.igniteCooldown = p.cfg.IgniteInterval
		}
	}
}

func (p *Autopilot) walk() {
	ps := p.game.PlayerSystem
	wp, ok := p.route.Current()
	if !ok {
		ps.Move(utils.Zero)
		return
	}
	pos := ps.Position()
	cell := tilemap.WorldToCell(pos)
	if cell == tilemap.WorldToCell(wp) {
		if pos.Dist(wp) < 0.25 {
			p.route.Advance()
			p.aim()
			ps.Move(utils.Zero)
			return
		}
		ps.Move(wp.Sub(pos))
		return
	}
	dir := p.field.Direction(cell)
	if dir.IsZero() {
		// с этой клетки не дойти, берём следующую точку
		p.route.Advance()
		p.aim()
		ps.Move(utils.Zero)
		return
	}
	// держимся центра клетки, чтобы не цеплять углы стен
	next, _ := p.field.Next(cell)
	ps.Move(next.Center().Sub(pos).Add(dir.Scale(0.1)))
}

// Waypoint returns the point the autopilot is walking to.
func (p *Autopilot) Waypoint() (utils.Vec2, bool) {
	return p.route.Current()
}
