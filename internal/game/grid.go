package game

import (
	"fmt"
	"math"
)

// Point is a continuous world-space position in pixels.
type Point struct {
	X float64
	Y float64
}

// Dist returns the Euclidean distance to other.
func (p Point) Dist(other Point) float64 {
	dx := other.X - p.X
	dy := other.Y - p.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Grid is the immutable level layout: a rectangular array of cells where 0 is
// walkable floor and any value >= 1 is a wall carrying texture index value-1.
// Built once at level load; nothing in the engine mutates it afterwards.
type Grid struct {
	cells    [][]int
	width    int
	height   int
	tileSize float64
}

// NewGrid validates and wraps a cell array. The array must be non-empty,
// rectangular, and have a positive tile size. A grid whose border is not
// fully walled is accepted but rays and agents can then leave the map, so
// level authors are expected to seal the perimeter.
func NewGrid(cells [][]int, tileSize float64) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, fmt.Errorf("grid: empty cell array")
	}
	if tileSize <= 0 {
		return nil, fmt.Errorf("grid: tile size must be positive, got %v", tileSize)
	}
	w := len(cells[0])
	for y, row := range cells {
		if len(row) != w {
			return nil, fmt.Errorf("grid: row %d has %d cells, want %d (grid must be rectangular)", y, len(row), w)
		}
		for x, v := range row {
			if v < 0 {
				return nil, fmt.Errorf("grid: negative cell value %d at (%d,%d)", v, x, y)
			}
		}
	}
	return &Grid{cells: cells, width: w, height: len(cells), tileSize: tileSize}, nil
}

// Width returns the grid width in tiles.
func (g *Grid) Width() int { return g.width }

// Height returns the grid height in tiles.
func (g *Grid) Height() int { return g.height }

// TileSize returns the world-pixel size of one tile.
func (g *Grid) TileSize() float64 { return g.tileSize }

// InBounds reports whether (gx,gy) is a valid tile coordinate.
func (g *Grid) InBounds(gx, gy int) bool {
	return gx >= 0 && gy >= 0 && gx < g.width && gy < g.height
}

// IsWalkable reports whether the tile at (gx,gy) is floor.
// Out-of-bounds tiles are not walkable.
func (g *Grid) IsWalkable(gx, gy int) bool {
	if !g.InBounds(gx, gy) {
		return false
	}
	return g.cells[gy][gx] == 0
}

// WallTexture returns the texture index of the wall at (gx,gy).
// Only meaningful when the tile is not walkable; out-of-bounds returns 0.
func (g *Grid) WallTexture(gx, gy int) int {
	if !g.InBounds(gx, gy) {
		return 0
	}
	v := g.cells[gy][gx]
	if v < 1 {
		return 0
	}
	return v - 1
}

// WorldToTile converts a world point to the tile containing it.
func (g *Grid) WorldToTile(p Point) (int, int) {
	return int(math.Floor(p.X / g.tileSize)), int(math.Floor(p.Y / g.tileSize))
}

// TileCenter returns the world point at the centre of tile (gx,gy).
func (g *Grid) TileCenter(gx, gy int) Point {
	return Point{
		X: float64(gx)*g.tileSize + g.tileSize/2,
		Y: float64(gy)*g.tileSize + g.tileSize/2,
	}
}

// WalkableAt reports whether the tile containing world point p is floor.
func (g *Grid) WalkableAt(p Point) bool {
	gx, gy := g.WorldToTile(p)
	return g.IsWalkable(gx, gy)
}

// ParseRows builds a cell array from a slice of strings where ' ' (or '0')
// is floor and '1'..'9' are walls with texture index digit-1. This is the
// authoring format used by level files and tests.
func ParseRows(rows []string) ([][]int, error) {
	cells := make([][]int, len(rows))
	for y, row := range rows {
		cells[y] = make([]int, len(row))
		for x, ch := range row {
			switch {
			case ch == ' ' || ch == '0' || ch == '.':
				cells[y][x] = 0
			case ch >= '1' && ch <= '9':
				cells[y][x] = int(ch - '0')
			default:
				return nil, fmt.Errorf("grid: row %d col %d: unknown cell %q", y, x, ch)
			}
		}
	}
	return cells, nil
}
