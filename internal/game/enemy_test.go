package game

import (
	"math/rand"
	"testing"
)

func enemyFixture(t *testing.T, rows []string, class EnemyClass, at Point) (*Enemy, *Player, *Grid, Config) {
	t.Helper()
	g := mustGrid(t, rows, 64)
	cfg := DefaultConfig()
	rng := rand.New(rand.NewSource(3)) // #nosec G404 -- test fixture
	e := NewEnemy(class, at, g, NewPlanner(g), cfg, rng)
	p := NewPlayer(g.TileCenter(1, 1), 0, cfg.Player, g)
	return e, p, g, cfg
}

func TestEnemy_SightTriggersAttack(t *testing.T) {
	rows := []string{
		"11111111",
		"1......1",
		"1......1",
		"1......1",
		"11111111",
	}
	e, p, g, _ := enemyFixture(t, rows, ClassScout, Point{})
	e.pos = g.TileCenter(5, 2)

	if e.State() != EnemyStatePatrol {
		t.Fatalf("enemy should start patrolling, got %v", e.State())
	}
	e.Update(p)
	if e.State() != EnemyStateAttack {
		t.Fatalf("clear line of sight should trigger attack, got %v", e.State())
	}
}

func TestEnemy_LostSightGoesSearchingThenPatrol(t *testing.T) {
	// A dividing wall with a gap at the bottom; the player can duck behind it.
	rows := []string{
		"11111111",
		"1..11..1",
		"1..11..1",
		"1......1",
		"11111111",
	}
	e, p, g, cfg := enemyFixture(t, rows, ClassScout, Point{})
	e.pos = g.TileCenter(6, 1)
	p.Pos = g.TileCenter(1, 1)

	// Wall between them from the start: no sight, keeps patrolling.
	e.Update(p)
	if e.State() == EnemyStateAttack {
		t.Fatal("enemy should not see through the dividing wall")
	}

	// Step the player into the open gap: contact.
	p.Pos = g.TileCenter(2, 3)
	// Enemy may have wandered; pin it with direct sight down the open row.
	e.pos = g.TileCenter(6, 3)
	e.Update(p)
	if e.State() != EnemyStateAttack {
		t.Fatalf("open line should trigger attack, got %v", e.State())
	}

	// Duck back behind the wall: the enemy searches the last seen spot.
	p.Pos = g.TileCenter(1, 1)
	e.pos = g.TileCenter(6, 1)
	e.Update(p)
	if e.State() != EnemyStateSearch {
		t.Fatalf("breaking sight should start a search, got %v", e.State())
	}

	// A search that never re-acquires times out back to patrol.
	e.path = nil // hold position so it cannot stumble into view
	for i := 0; i <= cfg.Enemy.Patrol.SearchDuration+1; i++ {
		e.pos = g.TileCenter(6, 1)
		e.Update(p)
		if e.State() == EnemyStateAttack {
			t.Fatal("enemy re-acquired through a wall")
		}
	}
	if e.State() != EnemyStatePatrol {
		t.Fatalf("search should time out to patrol, got %v", e.State())
	}
}

func TestEnemy_PathTruncatedToMaxLength(t *testing.T) {
	rows := []string{
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
	}
	e, p, g, cfg := enemyFixture(t, rows, ClassScout, Point{})
	cfg.Path.MaxLength = 3
	e.pathCfg = cfg.Path
	e.pos = g.TileCenter(8, 8)
	p.Pos = g.TileCenter(3, 3) // 7.07 tiles out, inside sight range

	e.Update(p)
	if e.State() != EnemyStateAttack {
		t.Fatalf("expected attack, got %v", e.State())
	}
	if len(e.PathPoints()) == 0 || len(e.PathPoints()) > 3 {
		t.Fatalf("path should be truncated to 3 waypoints, got %d", len(e.PathPoints()))
	}
}

func TestEnemy_AttackDamagesInRangeOnly(t *testing.T) {
	rows := []string{
		"11111111",
		"1......1",
		"11111111",
	}
	e, p, g, cfg := enemyFixture(t, rows, ClassScout, Point{})
	p.Pos = g.TileCenter(1, 1)

	// Out of the scout's 1.2-tile reach: no damage.
	e.pos = g.TileCenter(5, 1)
	if dmg := e.Update(p); dmg != 0 {
		t.Fatalf("enemy 4 tiles out should not deal damage, got %d", dmg)
	}

	// Adjacent: one cooldown's worth of damage.
	e.pos = g.TileCenter(2, 1)
	e.path = nil
	dmg := e.Update(p)
	if dmg != cfg.Enemy.Scout.Damage {
		t.Fatalf("adjacent attack should deal %d, got %d", cfg.Enemy.Scout.Damage, dmg)
	}
	// Cooldown holds fire on the next tick.
	e.pos = g.TileCenter(2, 1)
	if dmg := e.Update(p); dmg != 0 {
		t.Fatalf("attack cooldown should hold fire, got %d", dmg)
	}
}

func TestEnemy_TakeDamageAndDeath(t *testing.T) {
	rows := []string{
		"111",
		"1.1",
		"111",
	}
	e, _, g, _ := enemyFixture(t, rows, ClassScout, Point{})
	e.pos = g.TileCenter(1, 1)

	if killed := e.TakeDamage(1); killed {
		t.Fatal("scout has 3 hp, one damage should not kill")
	}
	if !e.HitFlash() {
		t.Fatal("damage should start the hit flash")
	}
	if killed := e.TakeDamage(2); !killed {
		t.Fatal("reaching 0 hp should kill")
	}
	if e.Alive() {
		t.Fatal("dead enemy should not report alive")
	}
	if e.TakeDamage(5) {
		t.Fatal("damaging a corpse should not kill again")
	}
}

func TestEnemy_MoveFollowsPathAndFaces(t *testing.T) {
	rows := []string{
		"1111111",
		"1.....1",
		"1111111",
	}
	e, _, g, _ := enemyFixture(t, rows, ClassScout, Point{})
	e.pos = g.TileCenter(1, 1)
	e.path = []Point{g.TileCenter(2, 1), g.TileCenter(3, 1)}
	e.pathIndex = 0

	start := e.pos
	e.move()
	if e.pos.X <= start.X {
		t.Fatal("enemy should advance toward its waypoint")
	}
	if e.Facing() != 0 {
		t.Fatalf("moving east should face 0 degrees, got %v", e.Facing())
	}
	if !g.WalkableAt(e.pos) {
		t.Fatal("movement must stay on floor")
	}
}

func TestEnemyManager_SpawnCapAndCooldown(t *testing.T) {
	sim := MustSim(
		game10x10(),
		WithSeed(5),
		WithEnemyAt("scout", 5.5, 5.5),
		WithEnemyAt("tank", 7.5, 7.5),
		WithEnemyAt("ranged", 2.5, 7.5),
	)
	sim.RunTicks(1)
	if got := sim.Manager.Count(); got != 1 {
		t.Fatalf("one enemy should spawn on the first tick, got %d", got)
	}

	cooldown := sim.Cfg.Enemy.SpawnCooldown
	sim.RunTicks(cooldown + 2)
	if got := sim.Manager.Count(); got != 2 {
		t.Fatalf("second spawn should wait one cooldown, got %d", got)
	}

	// Spawn points are reused once their tile vacates, so the population
	// keeps growing toward the cap but never past it.
	sim.RunTicks(10 * (cooldown + 2))
	got := sim.Manager.Count()
	if got < 3 {
		t.Fatalf("all three spawn points should have fired, got %d live", got)
	}
	if got > sim.Cfg.Enemy.MaxCount {
		t.Fatalf("population %d exceeds cap %d", got, sim.Cfg.Enemy.MaxCount)
	}
}

// game10x10 is the harness default map stated explicitly, for tests that
// care about its dimensions.
func game10x10() SimOption {
	return WithGridRows([]string{
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
	})
}
