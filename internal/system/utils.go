// internal/system/utils.go
package system

import (
	"go-horde-survival/internal/component"
	"go-horde-survival/internal/defs"
)

// applyDamage наносит урон агенту, показывает индикатор здоровья и запускает
// смерть, если здоровье дошло до нуля. Returns true if this call killed a.
func (s *AgentSystem) applyDamage(a *component.Agent, damage float64) bool {
	if damage <= 0 {
		return false
	}
	killed := a.Health.Reduce(damage)
	if killed {
		s.die(a, false)
		return true
	}
	s.showIndicator(a)
	return false
}

// rollLoot decides the drop. Explicit hints always drop; the random hint
// drops with the configured chance and then picks by weight.
func (s *AgentSystem) rollLoot(hint defs.LootType) defs.LootType {
	switch hint {
	case defs.LootWeapon, defs.LootAmmo, defs.LootLife:
		return hint
	case defs.LootRandom:
		if s.rng == nil || !s.rng.Chance(s.dropRate) {
			return defs.LootNone
		}
		return s.rng.ChooseWeighted(s.lootTable)
	}
	return defs.LootNone
}
