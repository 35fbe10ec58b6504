package game

import (
	"math"

	"github.com/zyedidia/generic/mapset"
)

// discoverRadius is how many tiles around the viewer become visible on the
// minimap per frame.
const discoverRadius = 4

// MinimapEntity is the optional extra surface an entity can expose for the
// minimap overlay: its current path, for the path-debug toggle.
type MinimapEntity interface {
	PathPoints() []Point
	PathIndex() int
}

// Minimap draws the scaled-down level into a corner of the frame: discovered
// walls, the player wedge, enemy dots and (optionally) enemy paths.
type Minimap struct {
	grid       *Grid
	sizePx     int
	scale      float64
	discovered mapset.Set[int]
}

// NewMinimap builds a minimap panel sizePx pixels square.
func NewMinimap(grid *Grid, sizePx int) *Minimap {
	side := grid.Width()
	if grid.Height() > side {
		side = grid.Height()
	}
	return &Minimap{
		grid:       grid,
		sizePx:     sizePx,
		scale:      float64(sizePx) / float64(side),
		discovered: mapset.New[int](),
	}
}

// Discover marks the tiles around the viewer as explored. Fog persists for
// the life of the level, so the map fills in as the player moves.
func (m *Minimap) Discover(viewer Viewer) {
	gx, gy := m.grid.WorldToTile(viewer.Pos)
	for dy := -discoverRadius; dy <= discoverRadius; dy++ {
		for dx := -discoverRadius; dx <= discoverRadius; dx++ {
			tx, ty := gx+dx, gy+dy
			if !m.grid.InBounds(tx, ty) {
				continue
			}
			m.discovered.Put(ty*m.grid.Width() + tx)
		}
	}
}

// Draw renders the minimap into the top-right corner of frame.
func (m *Minimap) Draw(frame *Frame, viewer Viewer, entities []SpriteEntity, showPaths bool) {
	ox := frame.Width() - m.sizePx - 10
	oy := 10

	frame.FillRect(ox, oy, m.sizePx, m.sizePx, RGB{10, 10, 10})

	// Discovered walls, coloured by texture index like the full render.
	wallCols := [3]RGB{{200, 200, 200}, {150, 100, 100}, {90, 120, 150}}
	for gy := 0; gy < m.grid.Height(); gy++ {
		for gx := 0; gx < m.grid.Width(); gx++ {
			if m.grid.IsWalkable(gx, gy) {
				continue
			}
			if !m.discovered.Has(gy*m.grid.Width() + gx) {
				continue
			}
			c := wallCols[m.grid.WallTexture(gx, gy)%len(wallCols)]
			px := ox + int(float64(gx)*m.scale)
			py := oy + int(float64(gy)*m.scale)
			side := int(m.scale) + 1
			frame.FillRect(px, py, side, side, c)
		}
	}

	// Enemy dots and, when toggled, their paths.
	for _, e := range entities {
		pos := e.Position()
		ex := ox + int(pos.X/m.grid.TileSize()*m.scale)
		ey := oy + int(pos.Y/m.grid.TileSize()*m.scale)
		frame.FillRect(ex-1, ey-1, 3, 3, RGB{255, 60, 60})

		me, ok := e.(MinimapEntity)
		if !ok || !showPaths {
			continue
		}
		path := me.PathPoints()
		for i := me.PathIndex(); i < len(path); i++ {
			wp := path[i]
			px := ox + int(wp.X/m.grid.TileSize()*m.scale)
			py := oy + int(wp.Y/m.grid.TileSize()*m.scale)
			frame.Set(px, py, RGB{255, 180, 60})
		}
	}

	// Player wedge: a dot plus a short facing line.
	px := ox + int(viewer.Pos.X/m.grid.TileSize()*m.scale)
	py := oy + int(viewer.Pos.Y/m.grid.TileSize()*m.scale)
	frame.FillRect(px-1, py-1, 3, 3, RGB{60, 255, 60})
	rad := viewer.Angle * math.Pi / 180
	for t := 0; t < 6; t++ {
		frame.Set(px+int(math.Cos(rad)*float64(t)), py+int(math.Sin(rad)*float64(t)), RGB{60, 255, 60})
	}
}
