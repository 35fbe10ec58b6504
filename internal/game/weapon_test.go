package game

import (
	"math/rand"
	"testing"
)

func weaponFixture(t *testing.T, rows []string) (*Weapon, *Player, *Grid, Config) {
	t.Helper()
	g := mustGrid(t, rows, 64)
	cfg := DefaultConfig()
	p := NewPlayer(g.TileCenter(1, 1), 0, cfg.Player, g)
	return NewWeapon(cfg.Weapon), p, g, cfg
}

func spawnTestEnemy(g *Grid, cfg Config, class EnemyClass, at Point) *Enemy {
	rng := rand.New(rand.NewSource(9)) // #nosec G404 -- test fixture
	return NewEnemy(class, at, g, NewPlanner(g), cfg, rng)
}

func TestWeapon_HitscanDownCorridor(t *testing.T) {
	w, p, g, cfg := weaponFixture(t, []string{
		"11111111",
		"1......1",
		"11111111",
	})
	e := spawnTestEnemy(g, cfg, ClassScout, g.TileCenter(5, 1))

	hit := w.Fire(p, []*Enemy{e})
	if hit != e {
		t.Fatal("shot straight down the corridor should hit")
	}
	if e.HP() != cfg.Enemy.Scout.HP-cfg.Weapon.Damage {
		t.Fatalf("hit should cost %d hp, enemy has %d", cfg.Weapon.Damage, e.HP())
	}
	if w.Ammo() != cfg.Weapon.MaxAmmo-1 {
		t.Fatalf("shot should spend one round, ammo=%d", w.Ammo())
	}
}

func TestWeapon_WallBlocksShot(t *testing.T) {
	w, p, g, cfg := weaponFixture(t, []string{
		"1111111",
		"1..1..1",
		"1..1..1",
		"1.....1",
		"1111111",
	})
	e := spawnTestEnemy(g, cfg, ClassScout, g.TileCenter(5, 1))

	if hit := w.Fire(p, []*Enemy{e}); hit != nil {
		t.Fatal("the dividing wall should block the shot")
	}
	if w.Ammo() != cfg.Weapon.MaxAmmo-1 {
		t.Fatal("a miss still spends the round")
	}
}

func TestWeapon_AimToleranceRejectsOffAxis(t *testing.T) {
	w, p, g, cfg := weaponFixture(t, []string{
		"11111111",
		"1......1",
		"1......1",
		"1......1",
		"11111111",
	})
	// 14 degrees off the view axis, well past the 4-degree tolerance.
	e := spawnTestEnemy(g, cfg, ClassScout, g.TileCenter(5, 2))

	if hit := w.Fire(p, []*Enemy{e}); hit != nil {
		t.Fatal("enemy outside the aim tolerance should not be hit")
	}
}

func TestWeapon_NearestOfTwoTakesTheHit(t *testing.T) {
	w, p, g, cfg := weaponFixture(t, []string{
		"11111111",
		"1......1",
		"11111111",
	})
	near := spawnTestEnemy(g, cfg, ClassScout, g.TileCenter(3, 1))
	far := spawnTestEnemy(g, cfg, ClassScout, g.TileCenter(6, 1))

	if hit := w.Fire(p, []*Enemy{far, near}); hit != near {
		t.Fatal("the nearer enemy on the shot line should absorb the hit")
	}
	if far.HP() != cfg.Enemy.Scout.HP {
		t.Fatal("the farther enemy should be untouched")
	}
}

func TestWeapon_CooldownAmmoAndReload(t *testing.T) {
	w, p, g, cfg := weaponFixture(t, []string{
		"1111",
		"1..1",
		"1111",
	})
	_ = g

	// Cooldown blocks an immediate second shot.
	if w.Fire(p, nil) != nil {
		t.Fatal("firing at nothing hits nothing")
	}
	firstAmmo := w.Ammo()
	w.Fire(p, nil)
	if w.Ammo() != firstAmmo {
		t.Fatal("cooldown should block the second trigger pull")
	}

	// Drain the magazine.
	for w.Ammo() > 0 {
		for i := 0; i < cfg.Weapon.FireCooldown; i++ {
			w.Update()
		}
		w.Fire(p, nil)
	}

	// Dry fire starts a reload instead of shooting.
	for i := 0; i < cfg.Weapon.FireCooldown; i++ {
		w.Update()
	}
	w.Fire(p, nil)
	if !w.Reloading() {
		t.Fatal("dry fire should start a reload")
	}
	for i := 0; i < cfg.Weapon.ReloadTime; i++ {
		w.Update()
	}
	if w.Reloading() {
		t.Fatal("reload should finish after its configured time")
	}
	if w.Ammo() != cfg.Weapon.MaxAmmo {
		t.Fatalf("reload should refill the magazine, ammo=%d", w.Ammo())
	}
}

func TestWeapon_ReloadIgnoredWhenFull(t *testing.T) {
	w, _, _, _ := weaponFixture(t, []string{
		"1111",
		"1..1",
		"1111",
	})
	w.Reload()
	if w.Reloading() {
		t.Fatal("reloading a full magazine should be a no-op")
	}
}
