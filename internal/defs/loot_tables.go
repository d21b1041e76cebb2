package defs

import "fmt"

// LootType is the hint an agent carries about what it drops on death.
type LootType int

const (
	LootRandom LootType = iota
	LootWeapon
	LootAmmo
	LootLife
	LootNone // результат броска, когда ничего не выпало
)

func (t LootType) String() string {
	switch t {
	case LootRandom:
		return "random"
	case LootWeapon:
		return "weapon"
	case LootAmmo:
		return "ammo"
	case LootLife:
		return "life"
	case LootNone:
		return "none"
	default:
		return fmt.Sprintf("loot(%d)", int(t))
	}
}

// ParseLootType maps a config name back to a LootType.
func ParseLootType(s string) (LootType, error) {
	switch s {
	case "random", "":
		return LootRandom, nil
	case "weapon":
		return LootWeapon, nil
	case "ammo":
		return LootAmmo, nil
	case "life":
		return LootLife, nil
	}
	return LootNone, fmt.Errorf("unknown loot type %q", s)
}

// LootEntry представляет одну запись в таблице выпадения.
// Weight - относительный шанс выпадения.
type LootEntry struct {
	Type   LootType `yaml:"-"`
	Name   string   `yaml:"type"`
	Weight int      `yaml:"weight"`
}

// DefaultLootTable is used for agents with the random hint once the drop roll succeeds.
var DefaultLootTable = []LootEntry{
	{Type: LootWeapon, Name: "weapon", Weight: 1},
	{Type: LootAmmo, Name: "ammo", Weight: 2},
	{Type: LootLife, Name: "life", Weight: 1},
}

// ResolveLootTable fills Type from Name for entries loaded from config.
func ResolveLootTable(entries []LootEntry) ([]LootEntry, error) {
	out := make([]LootEntry, 0, len(entries))
	for _, e := range entries {
		t, err := ParseLootType(e.Name)
		if err != nil {
			return nil, err
		}
		if t == LootRandom {
			return nil, fmt.Errorf("loot table entry cannot be %q", e.Name)
		}
		e.Type = t
		out = append(out, e)
	}
	return out, nil
}
