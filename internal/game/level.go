package game

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Level is the authored description of one map: the cell rows plus spawn
// points. Rows use the ParseRows format ('.' floor, '1'-'9' walls).
type Level struct {
	Name   string       `yaml:"name"`
	Rows   []string     `yaml:"rows"`
	Player SpawnPoint   `yaml:"player"`
	Spawns []EnemySpawn `yaml:"spawns"`
}

// SpawnPoint places the player, in tile units (1.5 = middle of tile 1).
type SpawnPoint struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Angle float64 `yaml:"angle"` // degrees
}

// EnemySpawn places one enemy, in tile units. Class is "scout", "tank" or
// "ranged"; empty picks per-spawn at random.
type EnemySpawn struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Class string  `yaml:"class"`
}

// LoadLevel reads and validates a YAML level file.
func LoadLevel(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("level: %w", err)
	}
	var lv Level
	if err := yaml.Unmarshal(data, &lv); err != nil {
		return nil, fmt.Errorf("level: parse %s: %w", path, err)
	}
	if err := lv.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return &lv, nil
}

// Validate checks the level is structurally sound before a Grid is built
// from it: rectangular rows, a player spawn on a floor tile.
func (lv *Level) Validate() error {
	cells, err := ParseRows(lv.Rows)
	if err != nil {
		return err
	}
	if len(cells) == 0 || len(cells[0]) == 0 {
		return fmt.Errorf("no rows")
	}
	w := len(cells[0])
	for y, row := range cells {
		if len(row) != w {
			return fmt.Errorf("row %d has %d cells, want %d", y, len(row), w)
		}
	}
	px, py := int(lv.Player.X), int(lv.Player.Y)
	if py < 0 || py >= len(cells) || px < 0 || px >= w || cells[py][px] != 0 {
		return fmt.Errorf("player spawn (%v,%v) is not on a floor tile", lv.Player.X, lv.Player.Y)
	}
	return nil
}

// Grid builds the immutable Grid for this level.
func (lv *Level) Grid(tileSize float64) (*Grid, error) {
	cells, err := ParseRows(lv.Rows)
	if err != nil {
		return nil, err
	}
	return NewGrid(cells, tileSize)
}

// DefaultLevel returns the built-in map: a 32x32 arena with interior
// structures, matching the reference layout. Interior blocks use the brick
// and panel textures for variety.
func DefaultLevel() *Level {
	return &Level{
		Name: "the hold",
		Rows: []string{
			"11111111111111111111111111111111",
			"1..............................1",
			"1.222..................2222....1",
			"1.2.......................2....1",
			"1.2.......................2....1",
			"1.2.......................2....1",
			"1.......3333.......3333........1",
			"1.......3..3.......3..3........1",
			"1.......3..3.......3..3........1",
			"1.......3333.......3333........1",
			"1..............................1",
			"1.............222..............1",
			"1.............2................1",
			"1..2222.......2........2222....1",
			"1..2..2.......2........2..2....1",
			"1..2..2................2..2....1",
			"1..2..2................2..2....1",
			"1..2222................2222....1",
			"1..............................1",
			"1..............................1",
			"1.........1111111111111........1",
			"1.........1...........1........1",
			"1.........1...........1........1",
			"1.........1...........1........1",
			"1.........1...........1........1",
			"1.........1...........1........1",
			"1....333..1...........1.333....1",
			"1....3.3..11111111111.1.3.3....1",
			"1....333..............1.333....1",
			"1.....................1........1",
			"1..............................1",
			"1..............................1",
			"11111111111111111111111111111111",
		},
		Player: SpawnPoint{X: 1.5, Y: 1.5, Angle: 0},
		Spawns: []EnemySpawn{
			{X: 16.5, Y: 16.5, Class: "scout"},
			{X: 28.5, Y: 3.5, Class: "tank"},
			{X: 4.5, Y: 28.5, Class: "ranged"},
		},
	}
}
