package game

import "math"

// LineOfSight reports whether a straight line from a to b crosses no wall
// tile. It walks the grid with the same DDA used for rendering, so sight and
// sprite occlusion agree about which walls block.
func LineOfSight(g *Grid, a, b Point) bool {
	ax, ay := a.X/g.TileSize(), a.Y/g.TileSize()
	bx, by := b.X/g.TileSize(), b.Y/g.TileSize()

	dirX := bx - ax
	dirY := by - ay
	length := math.Sqrt(dirX*dirX + dirY*dirY)
	if length < 1e-9 {
		return true
	}
	dirX /= length
	dirY /= length

	mapX, mapY := int(math.Floor(ax)), int(math.Floor(ay))
	endX, endY := int(math.Floor(bx)), int(math.Floor(by))

	deltaX, deltaY := 1e30, 1e30
	if dirX != 0 {
		deltaX = math.Abs(1 / dirX)
	}
	if dirY != 0 {
		deltaY = math.Abs(1 / dirY)
	}

	var sideX, sideY float64
	stepX, stepY := 0, 0
	if dirX < 0 {
		stepX = -1
		sideX = (ax - float64(mapX)) * deltaX
	} else if dirX > 0 {
		stepX = 1
		sideX = (float64(mapX) + 1 - ax) * deltaX
	} else {
		sideX = 1e30
	}
	if dirY < 0 {
		stepY = -1
		sideY = (ay - float64(mapY)) * deltaY
	} else if dirY > 0 {
		stepY = 1
		sideY = (float64(mapY) + 1 - ay) * deltaY
	} else {
		sideY = 1e30
	}

	// A diagonal line crosses one grid line per axis per tile, so the walk
	// needs up to |dx|+|dy| steps to reach the end tile.
	maxSteps := abs(endX-mapX) + abs(endY-mapY) + 2
	for i := 0; i < maxSteps; i++ {
		if mapX == endX && mapY == endY {
			return true
		}
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
		} else {
			sideY += deltaY
			mapY += stepY
		}
		if !g.InBounds(mapX, mapY) {
			return false
		}
		if !g.IsWalkable(mapX, mapY) {
			// The target tile itself may be a wall edge the point sits
			// against; sight up to it still counts.
			return mapX == endX && mapY == endY
		}
	}
	return mapX == endX && mapY == endY
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
