package hud

import (
	"math"

	"go-horde-survival/internal/event"
	"go-horde-survival/internal/utils"
)

// DayNight drives the sky tint. A cleared wave brings the day, a new round
// brings the night. The change is eased over TransitionTime seconds.
type DayNight struct {
	TransitionTime float64

	night bool
	light float64 // 0 - полночь, 1 - полдень
}

func NewDayNight(transition float64) *DayNight {
	return &DayNight{TransitionTime: transition, light: 1}
}

func (d *DayNight) OnEvent(e event.Event) {
	switch e.Type {
	case event.RoundChanged:
		d.night = true
	case event.WaveCleared:
		d.night = false
	}
}

func (d *DayNight) Update(deltaTime float64) {
	step := 1.0
	if d.TransitionTime > 0 {
		step = deltaTime / d.TransitionTime
	}
	if d.night {
		d.light = utils.Clamp01(d.light - step)
	} else {
		d.light = utils.Clamp01(d.light + step)
	}
}

func (d *DayNight) Night() bool { return d.night }

// Daylight is the current day fraction in [0, 1].
func (d *DayNight) Daylight() float64 { return d.light }

// Hour maps the light level onto the 0..23 HUD clock. Dusk runs from noon
// to midnight, dawn from midnight to noon.
func (d *DayNight) Hour() int {
	h := d.light * 12
	if d.night {
		h = 12 + (1-d.light)*12
	}
	return int(math.Floor(h+1e-9)) % 24
}
