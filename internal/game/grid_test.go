package game

import "testing"

func mustGrid(t *testing.T, rows []string, tileSize float64) *Grid {
	t.Helper()
	cells, err := ParseRows(rows)
	if err != nil {
		t.Fatal(err)
	}
	g, err := NewGrid(cells, tileSize)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNewGrid_RejectsEmpty(t *testing.T) {
	if _, err := NewGrid(nil, 64); err == nil {
		t.Fatal("empty cell array should be rejected")
	}
	if _, err := NewGrid([][]int{{}}, 64); err == nil {
		t.Fatal("empty row should be rejected")
	}
}

func TestNewGrid_RejectsRagged(t *testing.T) {
	cells := [][]int{{1, 1, 1}, {1, 0}}
	if _, err := NewGrid(cells, 64); err == nil {
		t.Fatal("ragged rows should be rejected")
	}
}

func TestNewGrid_RejectsBadValues(t *testing.T) {
	if _, err := NewGrid([][]int{{1, -1}}, 64); err == nil {
		t.Fatal("negative cell should be rejected")
	}
	if _, err := NewGrid([][]int{{1, 0}}, 0); err == nil {
		t.Fatal("zero tile size should be rejected")
	}
}

func TestGrid_Walkability(t *testing.T) {
	g := mustGrid(t, []string{
		"111",
		"1.1",
		"111",
	}, 64)
	if !g.IsWalkable(1, 1) {
		t.Fatal("centre should be floor")
	}
	if g.IsWalkable(0, 0) {
		t.Fatal("wall should not be walkable")
	}
	if g.IsWalkable(-1, 0) || g.IsWalkable(3, 1) {
		t.Fatal("out of bounds should not be walkable")
	}
}

func TestGrid_WallTexture(t *testing.T) {
	g := mustGrid(t, []string{
		"123",
		"1.1",
		"111",
	}, 64)
	if got := g.WallTexture(1, 0); got != 1 {
		t.Fatalf("wall '2' should carry texture index 1, got %d", got)
	}
	if got := g.WallTexture(2, 0); got != 2 {
		t.Fatalf("wall '3' should carry texture index 2, got %d", got)
	}
	if got := g.WallTexture(-1, 0); got != 0 {
		t.Fatalf("out of bounds texture should be 0, got %d", got)
	}
}

func TestGrid_WorldTileRoundTrip(t *testing.T) {
	g := mustGrid(t, []string{
		"1111",
		"1..1",
		"1111",
	}, 64)
	gx, gy := g.WorldToTile(Point{X: 130, Y: 70})
	if gx != 2 || gy != 1 {
		t.Fatalf("expected tile (2,1), got (%d,%d)", gx, gy)
	}
	c := g.TileCenter(2, 1)
	if c.X != 160 || c.Y != 96 {
		t.Fatalf("expected centre (160,96), got (%v,%v)", c.X, c.Y)
	}
	gx, gy = g.WorldToTile(c)
	if gx != 2 || gy != 1 {
		t.Fatal("tile centre should map back to its tile")
	}
}

func TestParseRows_UnknownCell(t *testing.T) {
	if _, err := ParseRows([]string{"1x1"}); err == nil {
		t.Fatal("unknown cell character should be rejected")
	}
}

func TestParseRows_FloorAliases(t *testing.T) {
	cells, err := ParseRows([]string{"1.1", "1 1", "101"})
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 3; y++ {
		if cells[y][1] != 0 {
			t.Fatalf("row %d centre should parse as floor", y)
		}
	}
}
