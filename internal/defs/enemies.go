// internal/defs/enemies.go
package defs

import "slices"

// EnemyDefinition holds the static data for one kind of agent. Health and
// speed are factors applied to the agent section of the config.
type EnemyDefinition struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	HealthFactor float64 `yaml:"health_factor"`
	SpeedFactor  float64 `yaml:"speed_factor"`
	Visuals      Visuals `yaml:"visuals"`
	// Loot is the default hint; the scheduler may override it per spawn.
	Loot     LootType `yaml:"-"`
	LootName string   `yaml:"loot"`
}

// Visuals - параметры отрисовки
type Visuals struct {
	ColorIndex   int     `yaml:"color_index"`
	RadiusFactor float64 `yaml:"radius_factor"`
}

// EnemyLibrary is the library of all enemy definitions, mapped by their ID.
var EnemyLibrary = map[string]EnemyDefinition{
	"ZOMBIE_1": {
		ID: "ZOMBIE_1", Name: "Shambler",
		HealthFactor: 1, SpeedFactor: 1,
		Visuals: Visuals{ColorIndex: 0, RadiusFactor: 1},
		Loot:    LootRandom, LootName: "random",
	},
	"ZOMBIE_2": {
		ID: "ZOMBIE_2", Name: "Rotter",
		HealthFactor: 1, SpeedFactor: 1,
		Visuals: Visuals{ColorIndex: 1, RadiusFactor: 1},
		Loot:    LootRandom, LootName: "random",
	},
}

// EnemyIDs returns the library keys in a stable order so that seeded runs
// pick the same kinds.
func EnemyIDs() []string {
	ids := make([]string, 0, len(EnemyLibrary))
	for id := range EnemyLibrary {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
