// internal/system/status_effect.go
package system

import (
	"go-horde-survival/internal/component"
)

// SetOnFire ignites a. While already burning it only pushes the expiry back;
// the damage rate never stacks.
func (s *AgentSystem) SetOnFire(a *component.Agent) {
	if !a.Alive() {
		return
	}
	now := s.timers.Now()
	a.Fire.Expiry = now + s.fire.Duration

	s.timers.Cancel(a.Fire.Out)
	a.Fire.Out = s.timers.At(a.Fire.Expiry, func() { s.extinguish(a) })

	if !a.Fire.Active {
		a.Fire.Active = true
		a.Fire.DamagePerTick = s.fire.DamagePerTick
		s.scheduleFireTick(a)
	}
	s.showIndicator(a)
}

func (s *AgentSystem) scheduleFireTick(a *component.Agent) {
	a.Fire.Tick = s.timers.After(s.fire.TickInterval, func() {
		if !a.Alive() || !a.Fire.Active {
			return
		}
		s.guard(a, "burn", func() {
			if s.applyDamage(a, a.Fire.DamagePerTick) {
				return
			}
			if a.Fire.Active {
				s.scheduleFireTick(a)
			}
		})
	})
}

// extinguish ends the burn. If nothing else will hide the indicator, it is
// hidden here.
func (s *AgentSystem) extinguish(a *component.Agent) {
	if !a.Alive() {
		return
	}
	a.Fire.Active = false
	s.timers.Cancel(a.Fire.Tick)
	a.Fire.Tick = 0
	a.Fire.Out = 0
	if a.Indicator.Visible && !s.timers.Pending(a.Indicator.Hide) {
		s.hideIndicator(a)
	}
}

// showIndicator makes the health indicator visible and schedules its hide at
// max(now + hide delay, fire expiry), keeping a later hide if one is pending.
func (s *AgentSystem) showIndicator(a *component.Agent) {
	if !a.Indicator.Visible {
		a.Indicator.Visible = true
		if s.sink != nil {
			s.sink.Show(a.ID)
		}
	}
	at := s.timers.Now() + s.hideDelay
	if a.Fire.Active && a.Fire.Expiry > at {
		at = a.Fire.Expiry
	}
	if s.timers.Pending(a.Indicator.Hide) && a.Indicator.HideAt >= at {
		return
	}
	s.timers.Cancel(a.Indicator.Hide)
	a.Indicator.HideAt = at
	a.Indicator.Hide = s.timers.At(at, func() {
		a.Indicator.Hide = 0
		if !a.Alive() || a.Fire.Active {
			// горит: индикатор спрячет extinguish
			return
		}
		s.hideIndicator(a)
	})
}

func (s *AgentSystem) hideIndicator(a *component.Agent) {
	if !a.Indicator.Visible {
		return
	}
	a.Indicator.Visible = false
	if s.sink != nil {
		s.sink.Hide(a.ID)
	}
}
