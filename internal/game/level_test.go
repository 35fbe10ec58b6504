package game

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultLevel_Valid(t *testing.T) {
	lv := DefaultLevel()
	if err := lv.Validate(); err != nil {
		t.Fatal(err)
	}
	g, err := lv.Grid(64)
	if err != nil {
		t.Fatal(err)
	}
	// Spawn points must be on floor and reachable from the player.
	p := NewPlanner(g)
	player := Point{X: lv.Player.X * 64, Y: lv.Player.Y * 64}
	for i, sp := range lv.Spawns {
		at := Point{X: sp.X * 64, Y: sp.Y * 64}
		if !g.WalkableAt(at) {
			t.Fatalf("spawn %d sits in a wall", i)
		}
		if p.FindPath(player, at, 0) == nil {
			t.Fatalf("spawn %d unreachable from player spawn", i)
		}
	}
}

func TestLoadLevel_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "level.yaml")
	data := []byte(`name: test arena
rows:
  - "11111"
  - "1...1"
  - "1...1"
  - "11111"
player:
  x: 1.5
  y: 1.5
  angle: 90
spawns:
  - {x: 3.5, y: 2.5, class: tank}
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	lv, err := LoadLevel(path)
	if err != nil {
		t.Fatal(err)
	}
	if lv.Name != "test arena" {
		t.Fatalf("name = %q", lv.Name)
	}
	if lv.Player.Angle != 90 {
		t.Fatalf("player angle = %v", lv.Player.Angle)
	}
	if len(lv.Spawns) != 1 || lv.Spawns[0].Class != "tank" {
		t.Fatalf("spawns = %+v", lv.Spawns)
	}
}

func TestLevelValidate_PlayerInWall(t *testing.T) {
	lv := &Level{
		Rows:   []string{"111", "1.1", "111"},
		Player: SpawnPoint{X: 0.5, Y: 0.5},
	}
	if err := lv.Validate(); err == nil {
		t.Fatal("player spawn inside a wall should be rejected")
	}
}

func TestLevelValidate_RaggedRows(t *testing.T) {
	lv := &Level{
		Rows:   []string{"1111", "1.1", "1111"},
		Player: SpawnPoint{X: 1.5, Y: 1.5},
	}
	if err := lv.Validate(); err == nil {
		t.Fatal("ragged rows should be rejected")
	}
}
