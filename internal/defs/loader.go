// internal/defs/loader.go
package defs

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadEnemyDefinitions reads the enemy definitions file and replaces the EnemyLibrary.
func LoadEnemyDefinitions(path string) error {
	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read enemy definitions file: %w", err)
	}

	var enemyDefs []EnemyDefinition
	if err := yaml.Unmarshal(file, &enemyDefs); err != nil {
		return fmt.Errorf("failed to unmarshal enemy definitions: %w", err)
	}

	library := make(map[string]EnemyDefinition, len(enemyDefs))
	for _, def := range enemyDefs {
		if def.ID == "" {
			return fmt.Errorf("enemy definition without id in %s", path)
		}
		loot, err := ParseLootType(def.LootName)
		if err != nil {
			return fmt.Errorf("enemy %s: %w", def.ID, err)
		}
		def.Loot = loot
		if def.HealthFactor <= 0 {
			def.HealthFactor = 1
		}
		if def.SpeedFactor <= 0 {
			def.SpeedFactor = 1
		}
		library[def.ID] = def
	}
	if len(library) == 0 {
		return fmt.Errorf("no enemy definitions in %s", path)
	}
	EnemyLibrary = library

	slog.Info("loaded enemy definitions", "count", len(EnemyLibrary), "path", path)
	return nil
}

// LevelRows returns the layout named by name, or rows if they are given.
func LevelRows(name string, rows []string) ([]string, error) {
	if len(rows) > 0 {
		return rows, nil
	}
	level, ok := Levels[name]
	if !ok {
		return nil, fmt.Errorf("unknown level %q", name)
	}
	return level, nil
}
