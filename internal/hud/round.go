package hud

import (
	"strconv"
	"strings"

	"go-horde-survival/internal/event"
)

// RoundText is the read-only round label. It follows RoundChanged and never
// talks back to the scheduler.
type RoundText struct {
	round int
	roman bool
}

// NewRoundText starts at round 1. With roman set the label uses Roman numerals.
func NewRoundText(roman bool) *RoundText {
	return &RoundText{round: 1, roman: roman}
}

func (r *RoundText) OnEvent(e event.Event) {
	if e.Type == event.RoundChanged {
		r.round = e.Round
	}
}

func (r *RoundText) Round() int { return r.round }

// Reset goes back to round 1 after a scene clear.
func (r *RoundText) Reset() { r.round = 1 }

// Boss reports every tenth round, which the wave indicator paints red.
func (r *RoundText) Boss() bool { return r.round > 0 && r.round%10 == 0 }

func (r *RoundText) String() string {
	if r.roman {
		return toRoman(r.round)
	}
	return strconv.Itoa(r.round)
}

// toRoman конвертирует целое число в римское.
func toRoman(num int) string {
	if num <= 0 {
		return ""
	}
	val := []int{1000, 900, 500, 400, 100, 90, 50, 40, 10, 9, 5, 4, 1}
	syb := []string{"M", "CM", "D", "CD", "C", "XC", "L", "XL", "X", "IX", "V", "IV", "I"}

	var roman strings.Builder
	for i := 0; i < len(val); i++ {
		for num >= val[i] {
			roman.WriteString(syb[i])
			num -= val[i]
		}
	}
	return roman.String()
}
