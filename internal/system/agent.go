// internal/system/agent.go
package system

import (
	"fmt"
	"log/slog"

	"go-horde-survival/internal/component"
	"go-horde-survival/internal/config"
	"go-horde-survival/internal/defs"
	"go-horde-survival/internal/entity"
	"go-horde-survival/internal/event"
	"go-horde-survival/internal/interfaces"
	"go-horde-survival/internal/timer"
	"go-horde-survival/internal/utils"
	"go-horde-survival/pkg/tilemap"
)

// stepFunc runs one tick of a state and returns the state to be in afterwards.
type stepFunc func(s *AgentSystem, a *component.Agent, dt float64) component.AgentState

// stepTable dispatches by state id. Dead has no entry: it never ticks.
var stepTable = [...]stepFunc{
	component.StateIdle:        (*AgentSystem).stepIdle,
	component.StateFollowField: (*AgentSystem).stepFollowField,
	component.StateAttack:      (*AgentSystem).stepAttack,
	component.StateStaggered:   (*AgentSystem).stepStaggered,
	component.StateDead:        nil,
}

// AgentSystem runs the per-agent state machines and owns every way an agent
// can be hurt or removed.
type AgentSystem struct {
	ecs     *entity.ECS
	timers  *timer.Queue
	field   interfaces.FieldSampler
	physics interfaces.PhysicsWorld
	sink    interfaces.IndicatorSink
	rng     *utils.PRNGService
	logger  *slog.Logger

	agent     config.AgentConfig
	fire      config.FireConfig
	hideDelay float64
	dropRate  float64
	lootTable []defs.LootEntry
}

// AgentDeps are the collaborators of an AgentSystem. Physics and Sink may be nil.
type AgentDeps struct {
	ECS     *entity.ECS
	Timers  *timer.Queue
	Field   interfaces.FieldSampler
	Physics interfaces.PhysicsWorld
	Sink    interfaces.IndicatorSink
	RNG     *utils.PRNGService
	Logger  *slog.Logger
}

func NewAgentSystem(deps AgentDeps, cfg config.Config) (*AgentSystem, error) {
	entries := make([]defs.LootEntry, 0, len(cfg.Loot.Table))
	for _, e := range cfg.Loot.Table {
		entries = append(entries, defs.LootEntry{Name: e.Type, Weight: e.Weight})
	}
	table, err := defs.ResolveLootTable(entries)
	if err != nil {
		return nil, fmt.Errorf("loot table: %w", err)
	}
	if len(table) == 0 {
		table = defs.DefaultLootTable
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AgentSystem{
		ecs:       deps.ECS,
		timers:    deps.Timers,
		field:     deps.Field,
		physics:   deps.Physics,
		sink:      deps.Sink,
		rng:       deps.RNG,
		logger:    logger,
		agent:     cfg.Agent,
		fire:      cfg.Fire,
		hideDelay: cfg.Indicator.HideDelay,
		dropRate:  cfg.Loot.DropChance,
		lootTable: table,
	}, nil
}

// Spawn builds an agent of the given kind at pos. The caller decides whether
// and when it joins the live set.
func (s *AgentSystem) Spawn(def defs.EnemyDefinition, pos utils.Vec2, target interfaces.Target) *component.Agent {
	id := s.ecs.NewEntity()
	maxHealth := s.agent.MaxHealth * def.HealthFactor
	radius := s.agent.Radius
	if def.Visuals.RadiusFactor > 0 {
		radius *= def.Visuals.RadiusFactor
	}
	a := &component.Agent{
		ID:       id,
		DefID:    def.ID,
		Position: pos,
		Cell:     tilemap.WorldToCell(pos),
		Speed:    s.agent.Speed * def.SpeedFactor,
		Radius:   radius,
		Health:   component.Health{Value: maxHealth, Max: maxHealth},
		Loot:     def.Loot,
		Target:   target,
		State:    component.StateIdle,
		Bus:      event.NewDispatcher(),
	}
	if s.physics != nil {
		a.Body = s.physics.AddBody(pos, radius, s.agent.Mass)
	}
	return a
}

// Step runs one tick of a's state machine. A panic inside the step is logged
// and kills the agent; it never reaches the frame loop.
func (s *AgentSystem) Step(a *component.Agent, dt float64) {
	if !a.Alive() {
		return
	}
	s.guard(a, "step", func() {
		a.StateTime += dt
		next := stepTable[a.State](s, a, dt)
		if !a.Alive() {
			return // умер во время шага
		}
		if next != a.State {
			s.enter(a, next)
		}
	})
}

// guard runs fn and converts a panic into the agent's death.
func (s *AgentSystem) guard(a *component.Agent, what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("agent fault recovered", "agent", a.ID, "in", what, "state", a.State.String(), "panic", r)
			s.forceDead(a)
		}
	}()
	fn()
}

// forceDead runs the death path, falling back to just marking the agent dead
// if the death path itself faults. The scheduler sweeps dead agents either way.
func (s *AgentSystem) forceDead(a *component.Agent) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("agent death path faulted", "agent", a.ID, "panic", r)
			a.State = component.StateDead
			a.Velocity = utils.Zero
		}
	}()
	s.die(a, false)
}

// enter switches state and resets the data block of the state being entered.
func (s *AgentSystem) enter(a *component.Agent, next component.AgentState) {
	prev := a.State
	a.State = next
	a.StateTime = 0
	switch next {
	case component.StateAttack:
		a.Attack = component.AttackData{}
		a.Velocity = utils.Zero
	case component.StateStaggered, component.StateIdle, component.StateDead:
		a.Velocity = utils.Zero
	}
	if prev == component.StateStaggered && next != component.StateStaggered {
		s.timers.Cancel(a.Stagger.Token)
		a.Stagger = component.StaggerData{}
	}
}

func (s *AgentSystem) targetInRange(a *component.Agent) bool {
	if a.Target == nil || !a.Target.Alive() {
		return false
	}
	return a.Position.Dist(a.Target.Position()) <= s.agent.AttackRange
}

func (s *AgentSystem) hasTarget(a *component.Agent) bool {
	return a.Target != nil && a.Target.Alive()
}

// steer returns the direction a should walk. The field is used whenever it
// has a direction; a straight line to the target is used when the target
// stands on an unwalkable cell or the agent already shares its cell.
func (s *AgentSystem) steer(a *component.Agent) (utils.Vec2, bool) {
	dir := s.field.SampleDirection(a.Cell)
	if !dir.IsZero() {
		return dir, true
	}
	src, ok := s.field.Source()
	if !ok || !s.hasTarget(a) {
		return utils.Zero, false
	}
	if !s.field.SourceWalkable() || a.Cell == src {
		direct := a.Target.Position().Sub(a.Position).Normalize()
		return direct, !direct.IsZero()
	}
	return utils.Zero, false
}

func (s *AgentSystem) stepIdle(a *component.Agent, _ float64) component.AgentState {
	a.Velocity = utils.Zero
	if !s.hasTarget(a) {
		return component.StateIdle
	}
	if s.targetInRange(a) {
		return component.StateFollowField
	}
	if _, ok := s.steer(a); ok {
		return component.StateFollowField
	}
	return component.StateIdle
}

func (s *AgentSystem) stepFollowField(a *component.Agent, _ float64) component.AgentState {
	if !s.hasTarget(a) {
		return component.StateIdle
	}
	if s.targetInRange(a) {
		return component.StateAttack
	}
	dir, ok := s.steer(a)
	if !ok {
		// отрезан от цели: стоим на месте
		return component.StateIdle
	}
	a.Velocity = dir.Scale(a.Speed)
	return component.StateFollowField
}

func (s *AgentSystem) stepAttack(a *component.Agent, dt float64) component.AgentState {
	a.Velocity = utils.Zero
	a.Attack.StepTime += dt
	for a.Attack.StepTime >= s.agent.AttackStepDuration {
		a.Attack.StepTime -= s.agent.AttackStepDuration
		a.Attack.Step++
		if a.Attack.Step < s.agent.AttackSteps {
			continue
		}

		// цикл атаки завершён
		a.Attacks++
		if !s.targetInRange(a) {
			if s.hasTarget(a) {
				return component.StateFollowField
			}
			return component.StateIdle
		}
		a.Target.TakeDamage(s.agent.AttackDamage)
		if !a.Target.Alive() {
			return component.StateIdle
		}
		a.Attack.Step = 0
	}
	return component.StateAttack
}

func (s *AgentSystem) stepStaggered(a *component.Agent, _ float64) component.AgentState {
	a.Velocity = utils.Zero
	if !a.Stagger.Done {
		return component.StateStaggered
	}
	switch {
	case s.targetInRange(a):
		return component.StateAttack
	case s.hasTarget(a):
		return component.StateFollowField
	}
	return component.StateIdle
}

// stagger puts a into Staggered, or extends the stagger it is already in.
func (s *AgentSystem) stagger(a *component.Agent) {
	if a.State != component.StateStaggered {
		s.enter(a, component.StateStaggered)
	}
	s.timers.Cancel(a.Stagger.Token)
	a.Stagger.Done = false
	a.Stagger.Token = s.timers.After(s.agent.StaggerDuration, func() {
		if !a.Alive() || a.State != component.StateStaggered {
			return
		}
		a.Stagger.Done = true
	})
}

// TakeDamage is a plain hit.
func (s *AgentSystem) TakeDamage(a *component.Agent, amount float64, impulse utils.Vec2) {
	s.TakeHit(a, amount, impulse, defs.HitNormal)
}

// TakeHit reduces health (never below zero), pushes the body and applies the
// hit's side effect. Hits on a dead agent are ignored.
func (s *AgentSystem) TakeHit(a *component.Agent, amount float64, impulse utils.Vec2, kind defs.HitKind) {
	if !a.Alive() {
		return
	}
	s.guard(a, "hit", func() {
		if !impulse.IsZero() {
			s.knockBack(a, impulse)
		}
		if s.applyDamage(a, amount) {
			return
		}
		if kind == defs.HitStagger || (amount > 0 && a.State == component.StateStaggered) {
			s.stagger(a)
		}
		if kind == defs.HitFire {
			s.SetOnFire(a)
		}
	})
}

// knockBack turns an impulse into knockback velocity. With a body the body's
// own mass decides the velocity change.
func (s *AgentSystem) knockBack(a *component.Agent, impulse utils.Vec2) {
	if a.Body == nil {
		mass := s.agent.Mass
		if mass <= 0 {
			mass = 1
		}
		a.Knockback = a.Knockback.Add(impulse.Scale(1 / mass))
		return
	}
	before := a.Body.Velocity()
	a.Body.ApplyImpulse(impulse)
	a.Knockback = a.Knockback.Add(a.Body.Velocity().Sub(before))
}

// Kill drives a's health to zero through the normal death path.
func (s *AgentSystem) Kill(a *component.Agent) {
	if !a.Alive() {
		return
	}
	s.guard(a, "kill", func() {
		a.Health.Value = 0
		s.die(a, false)
	})
}

// Despawn runs the death path without a loot roll. Used by scene clears.
func (s *AgentSystem) Despawn(a *component.Agent) {
	if !a.Alive() {
		return
	}
	s.guard(a, "despawn", func() {
		s.die(a, true)
	})
}

// die is the Dead path: it runs at most once per agent.
func (s *AgentSystem) die(a *component.Agent, forced bool) {
	if a.State == component.StateDead {
		return
	}
	s.enter(a, component.StateDead)
	a.Knockback = utils.Zero

	s.timers.Cancel(a.Fire.Tick)
	s.timers.Cancel(a.Fire.Out)
	a.Fire.Active = false
	s.timers.Cancel(a.Indicator.Hide)
	if a.Indicator.Visible {
		a.Indicator.Visible = false
		if s.sink != nil {
			s.sink.Hide(a.ID)
		}
	}

	loot := defs.LootNone
	if !forced {
		loot = s.rollLoot(a.Loot)
	}
	if a.Body != nil {
		a.Position = a.Body.Position()
		if s.physics != nil {
			s.physics.RemoveBody(a.Body)
		}
		a.Body = nil
	}

	s.logger.Debug("agent died", "agent", a.ID, "loot", loot.String(), "forced", forced)
	a.Bus.Dispatch(event.Event{
		Type:     event.AgentDied,
		AgentID:  a.ID,
		Position: a.Position,
		Loot:     loot,
		Forced:   forced,
	})
}
