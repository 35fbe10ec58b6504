package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries every tunable the engine needs. Nothing in the engine reads
// package-level state: grids, planners and renderers are all built from a
// Config instance so several can coexist in one process (and in tests).
type Config struct {
	Screen ScreenConfig `yaml:"screen"`
	Render RenderConfig `yaml:"render"`
	Path   PathConfig   `yaml:"path"`
	Player PlayerConfig `yaml:"player"`
	Enemy  EnemyTuning  `yaml:"enemy"`
	Weapon WeaponConfig `yaml:"weapon"`
}

type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

type RenderConfig struct {
	FOVDegrees    float64 `yaml:"fov_degrees"`
	RayCount      int     `yaml:"ray_count"`
	MaxDepth      float64 `yaml:"max_depth"`       // view distance in tiles
	TileSize      float64 `yaml:"tile_size"`       // world pixels per tile
	MaxWallScale  float64 `yaml:"max_wall_scale"`  // wall height cap, in screen heights
	MinWallDist   float64 `yaml:"min_wall_dist"`   // distance floor, in tiles
	MaxSpriteSize float64 `yaml:"max_sprite_size"` // sprite size cap, in screen heights
	MaxSkipFactor int     `yaml:"max_skip_factor"` // adaptive quality upper bound
}

type PathConfig struct {
	MaxIterations   int `yaml:"max_iterations"`
	UpdateFrequency int `yaml:"update_frequency"` // replan every N ticks
	MaxLength       int `yaml:"max_length"`       // waypoint cap per path
}

type PlayerConfig struct {
	MoveSpeed float64 `yaml:"move_speed"` // world pixels per tick
	TurnSpeed float64 `yaml:"turn_speed"` // degrees per tick
	MaxHealth int     `yaml:"max_health"`
}

// EnemyTuning holds shared population settings plus per-class stats.
type EnemyTuning struct {
	MaxCount      int             `yaml:"max_count"`
	SpawnCooldown int             `yaml:"spawn_cooldown"` // ticks between spawns
	Scout         EnemyClassStats `yaml:"scout"`
	Tank          EnemyClassStats `yaml:"tank"`
	Ranged        EnemyClassStats `yaml:"ranged"`
	Patrol        PatrolTuning    `yaml:"patrol"`
}

type EnemyClassStats struct {
	Speed          float64 `yaml:"speed"` // tiles per tick
	HP             int     `yaml:"hp"`
	Damage         int     `yaml:"damage"`
	AttackRange    float64 `yaml:"attack_range"` // tiles
	AttackCooldown int     `yaml:"attack_cooldown"`
}

type PatrolTuning struct {
	SightRange     float64 `yaml:"sight_range"`     // tiles
	AlertDuration  int     `yaml:"alert_duration"`  // ticks
	SearchDuration int     `yaml:"search_duration"` // ticks
}

type WeaponConfig struct {
	FireCooldown int     `yaml:"fire_cooldown"` // ticks
	MaxAmmo      int     `yaml:"max_ammo"`
	ReloadTime   int     `yaml:"reload_time"` // ticks
	Damage       int     `yaml:"damage"`
	AimTolerance float64 `yaml:"aim_tolerance"` // degrees of hitscan forgiveness
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() Config {
	return Config{
		Screen: ScreenConfig{Width: 800, Height: 600, TargetFPS: 60},
		Render: RenderConfig{
			FOVDegrees:    60,
			RayCount:      200,
			MaxDepth:      20,
			TileSize:      64,
			MaxWallScale:  2.5,
			MinWallDist:   0.1,
			MaxSpriteSize: 1.2,
			MaxSkipFactor: 4,
		},
		Path: PathConfig{
			MaxIterations:   1000,
			UpdateFrequency: 10,
			MaxLength:       100,
		},
		Player: PlayerConfig{MoveSpeed: 4, TurnSpeed: 3, MaxHealth: 100},
		Enemy: EnemyTuning{
			MaxCount:      8,
			SpawnCooldown: 100,
			Scout:         EnemyClassStats{Speed: 0.12, HP: 3, Damage: 8, AttackRange: 1.2, AttackCooldown: 40},
			Tank:          EnemyClassStats{Speed: 0.05, HP: 12, Damage: 15, AttackRange: 1.8, AttackCooldown: 80},
			Ranged:        EnemyClassStats{Speed: 0.06, HP: 2, Damage: 12, AttackRange: 6.0, AttackCooldown: 90},
			Patrol: PatrolTuning{
				SightRange:     8,
				AlertDuration:  300,
				SearchDuration: 180,
			},
		},
		Weapon: WeaponConfig{FireCooldown: 20, MaxAmmo: 12, ReloadTime: 150, Damage: 1, AimTolerance: 4},
	}
}

// LoadConfig reads a YAML config file over the defaults, so partial files
// only need the keys they change.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects configurations the engine is entitled to refuse at
// construction time rather than guard against per frame.
func (c Config) Validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("config: screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("config: target_fps must be positive")
	}
	if c.Render.RayCount <= 0 {
		return fmt.Errorf("config: ray_count must be positive")
	}
	if c.Render.TileSize <= 0 {
		return fmt.Errorf("config: tile_size must be positive")
	}
	if c.Render.FOVDegrees <= 0 || c.Render.FOVDegrees >= 180 {
		return fmt.Errorf("config: fov_degrees %v out of range (0,180)", c.Render.FOVDegrees)
	}
	if c.Render.MaxDepth <= 0 {
		return fmt.Errorf("config: max_depth must be positive")
	}
	if c.Render.MaxSkipFactor < 1 {
		return fmt.Errorf("config: max_skip_factor must be >= 1")
	}
	return nil
}
