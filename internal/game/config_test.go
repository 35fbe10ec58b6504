package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig_Valid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig_PartialOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("render:\n  ray_count: 400\nplayer:\n  max_health: 50\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.RayCount != 400 {
		t.Fatalf("overlay should set ray_count=400, got %d", cfg.Render.RayCount)
	}
	if cfg.Player.MaxHealth != 50 {
		t.Fatalf("overlay should set max_health=50, got %d", cfg.Player.MaxHealth)
	}
	// Untouched keys keep their defaults.
	if cfg.Render.FOVDegrees != 60 {
		t.Fatalf("fov should keep its default, got %v", cfg.Render.FOVDegrees)
	}
	if cfg.Weapon.MaxAmmo != 12 {
		t.Fatalf("max_ammo should keep its default, got %d", cfg.Weapon.MaxAmmo)
	}
}

func TestLoadConfig_RejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("render:\n  fov_degrees: 240\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("fov of 240 degrees should be rejected")
	}
}

func TestConfigValidate_Rejections(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero screen", func(c *Config) { c.Screen.Width = 0 }},
		{"zero fps", func(c *Config) { c.Screen.TargetFPS = 0 }},
		{"zero rays", func(c *Config) { c.Render.RayCount = 0 }},
		{"zero tile", func(c *Config) { c.Render.TileSize = 0 }},
		{"zero depth", func(c *Config) { c.Render.MaxDepth = 0 }},
		{"zero skip", func(c *Config) { c.Render.MaxSkipFactor = 0 }},
	}
	for _, tc := range cases {
		cfg := DefaultConfig()
		tc.mutate(&cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected a validation error", tc.name)
		}
	}
}
