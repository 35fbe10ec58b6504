package game

import (
	"fmt"
	"math/rand"
)

// Sim is a headless simulation harness: it mirrors Game's tick loop but has
// no Ebiten dependency, so tests and the report tool can run it anywhere.
// Deterministic for a given seed and option set.
type Sim struct {
	Cfg     Config
	Grid    *Grid
	Planner *Planner
	Player  *Player
	Weapon  *Weapon
	Manager *EnemyManager
	SimLog  *SimLog
	Tick    int

	rows    []string
	playerX float64 // tile units
	playerY float64
	angle   float64
	verbose bool
	seed    int64
	rng     *rand.Rand

	// Scripted input, applied every tick until changed.
	Intent MoveIntent

	prevStates map[*Enemy]EnemyState
	known      int // enemies already labelled
}

// simOptionKind orders option application: infrastructure first, entities
// once the grid exists.
type simOptionKind int

const (
	simOptInfra simOptionKind = iota
	simOptEntity
)

// SimOption is a builder function applied to a Sim during construction.
type SimOption struct {
	kind simOptionKind
	fn   func(*Sim)
}

// WithGridRows sets the map layout in ParseRows format.
func WithGridRows(rows []string) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.rows = rows }}
}

// WithConfig replaces the default config.
func WithConfig(cfg Config) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.Cfg = cfg }}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.seed = seed }}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) SimOption {
	return SimOption{simOptInfra, func(s *Sim) { s.verbose = v }}
}

// WithPlayerAt places the player, in tile units, facing angle degrees.
func WithPlayerAt(tx, ty, angle float64) SimOption {
	return SimOption{simOptEntity, func(s *Sim) {
		s.Player.Pos = Point{X: tx * s.Grid.TileSize(), Y: ty * s.Grid.TileSize()}
		s.Player.Angle = angle
	}}
}

// WithEnemyAt adds a spawn point, in tile units, that the manager will fill
// on its normal cadence. The first spawns fire on tick one.
func WithEnemyAt(class string, tx, ty float64) SimOption {
	return SimOption{simOptEntity, func(s *Sim) {
		s.Manager.AddSpawn(EnemySpawn{X: tx, Y: ty, Class: class})
	}}
}

// NewSim constructs a Sim: infrastructure options, then the grid, then
// entity options.
func NewSim(opts ...SimOption) (*Sim, error) {
	s := &Sim{
		Cfg:     DefaultConfig(),
		playerX: 1.5,
		playerY: 1.5,
		seed:    1,
		rows: []string{
			"1111111111",
			"1........1",
			"1........1",
			"1........1",
			"1........1",
			"1........1",
			"1........1",
			"1........1",
			"1........1",
			"1111111111",
		},
	}
	for _, o := range opts {
		if o.kind == simOptInfra {
			o.fn(s)
		}
	}

	cells, err := ParseRows(s.rows)
	if err != nil {
		return nil, err
	}
	grid, err := NewGrid(cells, s.Cfg.Render.TileSize)
	if err != nil {
		return nil, err
	}
	s.Grid = grid
	s.Planner = NewPlanner(grid)
	s.SimLog = NewSimLog(s.verbose)
	s.rng = rand.New(rand.NewSource(s.seed)) // #nosec G404 -- test harness
	s.Player = NewPlayer(
		Point{X: s.playerX * grid.TileSize(), Y: s.playerY * grid.TileSize()},
		s.angle, s.Cfg.Player, grid)
	s.Weapon = NewWeapon(s.Cfg.Weapon)
	s.Manager = NewEnemyManager(s.Cfg, grid, s.Planner, nil, s.rng)
	s.prevStates = make(map[*Enemy]EnemyState)

	for _, o := range opts {
		if o.kind == simOptEntity {
			o.fn(s)
		}
	}
	return s, nil
}

// MustSim is NewSim for tests that pass known-good options.
func MustSim(opts ...SimOption) *Sim {
	s, err := NewSim(opts...)
	if err != nil {
		panic(err)
	}
	return s
}

// Enemies returns the live enemy population.
func (s *Sim) Enemies() []*Enemy { return s.Manager.Enemies() }

// Fire shoots the player's weapon this instant and logs the result.
func (s *Sim) Fire() *Enemy {
	hit := s.Weapon.Fire(s.Player, s.Manager.Enemies())
	if hit != nil {
		s.SimLog.Add(s.Tick, s.label(hit), "combat", "enemy_hit",
			fmt.Sprintf("hp=%d", hit.HP()), float64(hit.HP()))
		if !hit.Alive() {
			s.Player.AddScore(scoreForClass(hit.Class()))
			s.SimLog.Add(s.Tick, s.label(hit), "combat", "kill", hit.Class().String(), 0)
		}
	}
	return hit
}

// RunTicks advances the simulation n ticks.
func (s *Sim) RunTicks(n int) {
	for i := 0; i < n; i++ {
		s.Tick++
		s.runOneTick()
	}
}

// RunUntil advances up to maxTicks, stopping early when predicate returns
// true. Returns the tick it was satisfied at, or -1.
func (s *Sim) RunUntil(predicate func(*Sim) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		s.Tick++
		s.runOneTick()
		if predicate(s) {
			return s.Tick
		}
	}
	return -1
}

// runOneTick mirrors Game's fixed-step update.
func (s *Sim) runOneTick() {
	before := s.Manager.Count()

	s.Player.Update(s.Intent)
	s.Weapon.Update()
	damage := s.Manager.Update(s.Player)
	if damage > 0 {
		s.Player.TakeDamage(damage)
		s.SimLog.Add(s.Tick, "player", "combat", "player_hit",
			fmt.Sprintf("dmg=%d hp=%d", damage, s.Player.Health), float64(damage))
	}

	if after := s.Manager.Count(); after > before {
		for _, e := range s.Manager.Enemies() {
			_ = s.label(e) // assign labels to newcomers in spawn order
		}
		s.SimLog.Add(s.Tick, "--", "spawn", "enemy",
			fmt.Sprintf("count=%d", after), float64(after))
	}

	for _, e := range s.Manager.Enemies() {
		prev, seen := s.prevStates[e]
		if seen && prev != e.State() {
			s.SimLog.Add(s.Tick, s.label(e), "state", "transition",
				fmt.Sprintf("%s → %s", prev, e.State()), 0)
		}
		s.prevStates[e] = e.State()
		s.SimLog.AddVerbose(s.Tick, s.label(e), "path", "progress",
			fmt.Sprintf("wp=%d/%d", e.PathIndex(), len(e.PathPoints())), float64(e.PathIndex()))
	}
	s.SimLog.AddVerbose(s.Tick, "player", "state", "position",
		fmt.Sprintf("(%.1f,%.1f) hp=%d", s.Player.Pos.X, s.Player.Pos.Y, s.Player.Health), 0)
}

// label assigns stable E0..En labels in spawn order.
func (s *Sim) label(e *Enemy) string {
	for i, live := range s.Manager.enemies {
		if live == e {
			if i >= s.known {
				s.known = i + 1
			}
			return fmt.Sprintf("E%d", i)
		}
	}
	return "--"
}

// scoreForClass awards kill points by how hard the class is to put down.
func scoreForClass(c EnemyClass) int {
	switch c {
	case ClassTank:
		return 300
	case ClassRanged:
		return 150
	default:
		return 100
	}
}
