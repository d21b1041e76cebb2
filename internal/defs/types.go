// internal/defs/types.go
package defs

// HitKind defines what a hit does besides damage.
type HitKind string

const (
	HitNormal  HitKind = "NORMAL"
	HitStagger HitKind = "STAGGER" // останавливает агента на время оглушения
	HitFire    HitKind = "FIRE"    // поджигает
)
