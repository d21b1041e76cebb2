package config

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	ScreenWidth  = 1200
	ScreenHeight = 900
	TileSize     = 24.0 // пикселей на клетку (одна мировая единица)
	MaxDeltaTime = 0.06

	IndicatorOffsetX = 30
	IndicatorRadius  = 10.0
	HealthBarWidth   = 20.0
	HealthBarHeight  = 3.0

	TextCharWidth = 7
	TextOffsetY   = 4
)

var (
	BackgroundColor = color.RGBA{20, 20, 30, 255}
	PassableColor   = color.RGBA{70, 100, 120, 220}
	RoughColor      = color.RGBA{95, 110, 90, 220}
	ImpassableColor = color.RGBA{150, 70, 70, 220}
	SpawnColor      = color.RGBA{0, 255, 0, 255}
	PlayerColor     = color.RGBA{240, 240, 240, 255}
	ArrowColor      = color.RGBA{255, 255, 0, 128}
	TextLightColor  = color.RGBA{240, 240, 240, 255}
	RunningColor    = color.RGBA{220, 60, 60, 220}
	WaitingColor    = color.RGBA{70, 130, 180, 220}
	PausedColor     = color.RGBA{194, 178, 128, 255}
	AgentColors     = []color.RGBA{
		{110, 150, 80, 255}, // zombie type 1
		{150, 120, 70, 255}, // zombie type 2
	}
	BurningColor   = color.RGBA{255, 120, 0, 255}
	StaggeredColor = color.RGBA{200, 200, 255, 255}
	HealthBarColor = color.RGBA{220, 40, 40, 255}
	// индексы совпадают с defs.LootType
	LootColors = [...]color.RGBA{
		{255, 255, 255, 255}, // random
		{255, 215, 0, 255},   // weapon
		{100, 180, 255, 255}, // ammo
		{80, 220, 120, 255},  // life
		{0, 0, 0, 0},         // none
	}
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable of the simulation. Durations are in seconds of
// frame-clock time, distances in world units (one tile).
type Config struct {
	LogLevel  string          `yaml:"log_level"`
	Seed      int64           `yaml:"seed"`
	Grid      GridConfig      `yaml:"grid"`
	Agent     AgentConfig     `yaml:"agent"`
	Fire      FireConfig      `yaml:"fire"`
	Indicator IndicatorConfig `yaml:"indicator"`
	Wave      WaveConfig      `yaml:"wave"`
	Loot      LootConfig      `yaml:"loot"`
	Physics   PhysicsConfig   `yaml:"physics"`
	Player    PlayerConfig    `yaml:"player"`
	Level     LevelConfig     `yaml:"level"`
}

type GridConfig struct {
	Connectivity int `yaml:"connectivity"` // 4 или 8
}

type AgentConfig struct {
	MaxHealth          float64 `yaml:"max_health"`
	Speed              float64 `yaml:"speed"`
	Radius             float64 `yaml:"radius"`
	Mass               float64 `yaml:"mass"`
	AttackRange        float64 `yaml:"attack_range"`
	AttackSteps        int     `yaml:"attack_steps"`
	AttackStepDuration float64 `yaml:"attack_step_duration"`
	AttackDamage       float64 `yaml:"attack_damage"`
	StaggerDuration    float64 `yaml:"stagger_duration"`
}

// AttackCycle is the length of one full attack.
func (a AgentConfig) AttackCycle() float64 {
	return float64(a.AttackSteps) * a.AttackStepDuration
}

type FireConfig struct {
	Duration      float64 `yaml:"duration"`
	DamagePerTick float64 `yaml:"damage_per_tick"`
	TickInterval  float64 `yaml:"tick_interval"`
}

type IndicatorConfig struct {
	HideDelay float64 `yaml:"hide_delay"`
}

type WaveConfig struct {
	Intermission  float64 `yaml:"intermission"`
	SpawnInterval float64 `yaml:"spawn_interval"`
	SizePolicy    string  `yaml:"size_policy"` // "constant" | "linear"
	BaseSize      int     `yaml:"base_size"`
	PerRound      int     `yaml:"per_round"`
}

type LootConfig struct {
	DropChance float64     `yaml:"drop_chance"`
	Table      []LootEntry `yaml:"table"`
}

// LootEntry mirrors defs.LootEntry without importing defs into config.
type LootEntry struct {
	Type   string `yaml:"type"`
	Weight int    `yaml:"weight"`
}

type PhysicsConfig struct {
	Damping float64 `yaml:"damping"`
}

type PlayerConfig struct {
	MaxHealth float64 `yaml:"max_health"`
	Speed     float64 `yaml:"speed"`
	Radius    float64 `yaml:"radius"`
}

type LevelConfig struct {
	Name string   `yaml:"name"`
	Rows []string `yaml:"rows"` // пусто - встроенная карта по имени
}

// Default returns the configuration matching the original game's tuning.
func Default() Config {
	return Config{
		LogLevel: "info",
		Grid:     GridConfig{Connectivity: 8},
		Agent: AgentConfig{
			MaxHealth:          100,
			Speed:              2.0,
			Radius:             0.35,
			Mass:               1.0,
			AttackRange:        1.5,
			AttackSteps:        3,
			AttackStepDuration: 0.15,
			AttackDamage:       10,
			StaggerDuration:    0.4,
		},
		Fire: FireConfig{
			Duration:      3.0,
			DamagePerTick: 5,
			TickInterval:  0.5,
		},
		Indicator: IndicatorConfig{HideDelay: 1.0},
		Wave: WaveConfig{
			Intermission:  2.0,
			SpawnInterval: 0.1,
			SizePolicy:    "constant",
			BaseSize:      10,
			PerRound:      2,
		},
		Loot: LootConfig{
			DropChance: 0.15,
			Table: []LootEntry{
				{Type: "weapon", Weight: 1},
				{Type: "ammo", Weight: 2},
				{Type: "life", Weight: 1},
			},
		},
		Physics: PhysicsConfig{Damping: 0.1},
		Player: PlayerConfig{
			MaxHealth: 300,
			Speed:     4.0,
			Radius:    0.4,
		},
		Level: LevelConfig{Name: "town"},
	}
}

// Load loads config from a YAML file on top of Default.
// If the file doesn't exist, returns defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Grid.Connectivity != 4 && c.Grid.Connectivity != 8:
		return fmt.Errorf("%w: grid.connectivity must be 4 or 8, got %d", ErrInvalidConfig, c.Grid.Connectivity)
	case c.Agent.MaxHealth <= 0:
		return fmt.Errorf("%w: agent.max_health must be positive", ErrInvalidConfig)
	case c.Agent.Speed < 0:
		return fmt.Errorf("%w: agent.speed must not be negative", ErrInvalidConfig)
	case c.Agent.Radius <= 0 || c.Agent.Radius >= 0.5:
		return fmt.Errorf("%w: agent.radius must be in (0, 0.5)", ErrInvalidConfig)
	case c.Agent.Mass <= 0:
		return fmt.Errorf("%w: agent.mass must be positive", ErrInvalidConfig)
	case c.Agent.AttackSteps <= 0 || c.Agent.AttackStepDuration <= 0:
		return fmt.Errorf("%w: agent attack cycle must be positive", ErrInvalidConfig)
	case c.Fire.TickInterval <= 0:
		return fmt.Errorf("%w: fire.tick_interval must be positive", ErrInvalidConfig)
	case c.Wave.Intermission < 0 || c.Wave.SpawnInterval < 0:
		return fmt.Errorf("%w: wave timings must not be negative", ErrInvalidConfig)
	case c.Wave.SizePolicy != "constant" && c.Wave.SizePolicy != "linear":
		return fmt.Errorf("%w: wave.size_policy must be constant or linear, got %q", ErrInvalidConfig, c.Wave.SizePolicy)
	case c.Wave.BaseSize < 0 || c.Wave.PerRound < 0:
		return fmt.Errorf("%w: wave sizes must not be negative", ErrInvalidConfig)
	case c.Loot.DropChance < 0 || c.Loot.DropChance > 1:
		return fmt.Errorf("%w: loot.drop_chance must be in [0, 1]", ErrInvalidConfig)
	case c.Player.MaxHealth <= 0:
		return fmt.Errorf("%w: player.max_health must be positive", ErrInvalidConfig)
	}
	return nil
}

// ParseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func ParseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
