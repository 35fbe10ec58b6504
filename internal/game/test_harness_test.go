package game

import "testing"

func TestSimOptions_EntityOptionsApplyAfterInfra(t *testing.T) {
	rows := []string{
		"111111111111",
		"1..........1",
		"111111111111",
	}
	// Entity placement listed before the grid it lands on: application is
	// two-phase, so ordering in the option list must not matter.
	sim := MustSim(
		WithPlayerAt(9.5, 1.5, 90),
		WithEnemyAt("tank", 1.5, 1.5),
		WithGridRows(rows),
	)

	if gx, gy := sim.Grid.WorldToTile(sim.Player.Pos); gx != 9 || gy != 1 {
		t.Fatalf("player placed at tile (%d,%d), want (9,1)", gx, gy)
	}
	if sim.Player.Angle != 90 {
		t.Fatalf("player angle = %v, want 90", sim.Player.Angle)
	}

	sim.RunTicks(1)
	enemies := sim.Enemies()
	if len(enemies) != 1 {
		t.Fatalf("expected one spawned enemy, got %d", len(enemies))
	}
	if enemies[0].Class() != ClassTank {
		t.Fatalf("spawned class = %v, want tank", enemies[0].Class())
	}
	if gx, gy := sim.Grid.WorldToTile(enemies[0].Position()); gx != 1 || gy != 1 {
		t.Fatalf("enemy spawned at tile (%d,%d), want (1,1)", gx, gy)
	}
}
