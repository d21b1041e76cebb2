package component

// Health - компонент здоровья
type Health struct {
	Value float64
	Max   float64
}

// Fraction returns Value/Max in [0, 1].
func (h Health) Fraction() float64 {
	if h.Max <= 0 {
		return 0
	}
	f := h.Value / h.Max
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// Reduce subtracts damage and clamps at zero. It reports whether this call
// took the value from positive to zero.
func (h *Health) Reduce(damage float64) (killed bool) {
	if damage <= 0 || h.Value <= 0 {
		return false
	}
	h.Value -= damage
	if h.Value <= 0 {
		h.Value = 0
		return true
	}
	return false
}
