package game

import "testing"

// dumpLog prints the full SimLog to t.Log so it appears in `go test -v`.
func dumpLog(t *testing.T, s *Sim) {
	t.Helper()
	entries := s.SimLog.Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

func TestScenario_OutOfSightStaysQuiet(t *testing.T) {
	rows := []string{
		"111111111111111111111111",
		"1......................1",
		"111111111111111111111111",
	}
	// Enemy 15 tiles out: outside sight range, and its patrol loop cannot
	// bring it within range of the stationary player.
	sim := MustSim(
		WithGridRows(rows),
		WithSeed(11),
		WithPlayerAt(1.5, 1.5, 0),
		WithEnemyAt("scout", 16.5, 1.5),
	)
	sim.RunTicks(300)
	dumpLog(t, sim)

	if sim.SimLog.HasEntry("combat", "player_hit", "") {
		t.Fatal("an unseen player should take no damage")
	}
	for _, e := range sim.Enemies() {
		if e.State() == EnemyStateAttack {
			t.Fatal("no enemy should reach attack state without contact")
		}
	}
	if sim.Player.Health != sim.Cfg.Player.MaxHealth {
		t.Fatalf("player health should be untouched, got %d", sim.Player.Health)
	}
}

func TestScenario_ContactChaseAndDamage(t *testing.T) {
	sim := MustSim(
		WithSeed(11),
		WithPlayerAt(1.5, 1.5, 0),
		WithEnemyAt("scout", 5.5, 1.5),
	)

	tick := sim.RunUntil(func(s *Sim) bool {
		return s.Player.Health < s.Cfg.Player.MaxHealth
	}, 600)
	dumpLog(t, sim)

	if tick < 0 {
		t.Fatal("a scout with clear sight should close and land a hit within 600 ticks")
	}
	if !sim.SimLog.HasEntry("combat", "player_hit", "") {
		t.Fatal("damage should be logged")
	}
	enemies := sim.Enemies()
	if len(enemies) != 1 || enemies[0].State() != EnemyStateAttack {
		t.Fatal("the scout should be in attack state at the moment of contact")
	}
}

func TestScenario_KillScoresAndLogs(t *testing.T) {
	rows := []string{
		"11111111",
		"1......1",
		"11111111",
	}
	sim := MustSim(
		WithGridRows(rows),
		WithSeed(4),
		WithPlayerAt(1.5, 1.5, 0),
		WithEnemyAt("scout", 5.5, 1.5),
	)
	sim.RunTicks(1)

	// Three hits put a scout down; respect the fire cooldown between them.
	for i := 0; i < 5 && sim.Manager.Kills() == 0; i++ {
		sim.Fire()
		sim.RunTicks(sim.Cfg.Weapon.FireCooldown + 1)
	}
	dumpLog(t, sim)

	if got := sim.Manager.Kills(); got != 1 {
		t.Fatalf("expected exactly one kill, got %d", got)
	}
	if !sim.SimLog.HasEntry("combat", "kill", "scout") {
		t.Fatal("the kill should be logged with its class")
	}
	if sim.Player.Score != 100 {
		t.Fatalf("a scout kill scores 100, got %d", sim.Player.Score)
	}
	if got := sim.Manager.Count(); got != 0 {
		t.Fatalf("the corpse should leave the live population, got %d", got)
	}
}

func TestScenario_DeterministicForSeed(t *testing.T) {
	build := func() *Sim {
		return MustSim(
			WithSeed(77),
			WithPlayerAt(2.5, 2.5, 45),
			WithEnemyAt("scout", 7.5, 7.5),
			WithEnemyAt("tank", 7.5, 2.5),
			WithVerbose(true),
		)
	}
	a, b := build(), build()
	a.Intent = MoveIntent{Forward: 0.5, Turn: 0.1}
	b.Intent = MoveIntent{Forward: 0.5, Turn: 0.1}
	a.RunTicks(400)
	b.RunTicks(400)

	if a.Player.Pos != b.Player.Pos || a.Player.Health != b.Player.Health {
		t.Fatal("identical seeds should reproduce the player state exactly")
	}
	ea, eb := a.Enemies(), b.Enemies()
	if len(ea) != len(eb) {
		t.Fatalf("enemy counts diverged: %d vs %d", len(ea), len(eb))
	}
	for i := range ea {
		if ea[i].Position() != eb[i].Position() || ea[i].State() != eb[i].State() {
			t.Fatalf("enemy %d diverged: %v/%v vs %v/%v",
				i, ea[i].Position(), ea[i].State(), eb[i].Position(), eb[i].State())
		}
	}
	la, lb := a.SimLog.Entries(), b.SimLog.Entries()
	if len(la) != len(lb) {
		t.Fatalf("log lengths diverged: %d vs %d", len(la), len(lb))
	}
	for i := range la {
		if la[i] != lb[i] {
			t.Fatalf("log entry %d diverged:\n%s\n%s", i, la[i].String(), lb[i].String())
		}
	}
}
