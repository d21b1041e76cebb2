// internal/component/status_effect.go
package component

import "go-horde-survival/internal/timer"

// BurningEffect indicates that an entity is on fire.
type BurningEffect struct {
	Active        bool
	Expiry        float64 // frame-clock time the fire goes out
	DamagePerTick float64
	Tick          timer.Token // следующий тик урона
	Out           timer.Token // погасание
}

// IndicatorState tracks the HUD health indicator of one agent.
type IndicatorState struct {
	Visible bool
	HideAt  float64
	Hide    timer.Token
}
