package game

import "math"

// textureSize is the wall texture edge length. Power of two so the vertical
// sample row can wrap with a mask.
const textureSize = 64

// wallHit is the outcome of casting one ray.
type wallHit struct {
	hit        bool
	dist       float64 // perpendicular distance in tiles
	side       int     // 0 = crossed a vertical grid line, 1 = horizontal
	texIndex   int
	texX       int
	lineHeight int // projected wall strip height in pixels
}

// WallCaster casts one ray per screen column with DDA and draws shaded,
// perspective-scaled textured wall strips. It is the sole writer of the
// depth buffer during a frame.
type WallCaster struct {
	grid     *Grid
	cfg      RenderConfig
	screenW  int
	screenH  int
	textures []*Texture

	stripWidth int     // screen pixels per ray column
	fovRad     float64
	maxSteps   int
}

// NewWallCaster builds a caster for the given grid and screen size.
func NewWallCaster(grid *Grid, cfg RenderConfig, screenW, screenH int, textures []*Texture) *WallCaster {
	return &WallCaster{
		grid:     grid,
		cfg:      cfg,
		screenW:  screenW,
		screenH:  screenH,
		textures: textures,
		// Round up so strips tile the screen with no gaps.
		stripWidth: (screenW + cfg.RayCount - 1) / cfg.RayCount,
		fovRad:     cfg.FOVDegrees * math.Pi / 180,
		// One DDA step crosses one grid line; a ray of length MaxDepth
		// crosses at most two lines per tile travelled.
		maxSteps: int(2*cfg.MaxDepth) + 4,
	}
}

// RenderWalls casts rays for every column (honouring the quality skip
// factor), draws the wall strips into frame and records perpendicular
// distances into depth. Skipped columns replicate the nearest cast column,
// pixels and depth both.
func (w *WallCaster) RenderWalls(frame *Frame, depth *DepthBuffer, viewer Viewer, skip int) {
	if skip < 1 {
		skip = 1
	}
	viewRad := viewer.Angle * math.Pi / 180
	startRad := viewRad - w.fovRad/2

	for c := 0; c < w.cfg.RayCount; c += skip {
		rayRad := startRad + (float64(c)/float64(w.cfg.RayCount))*w.fovRad
		hit := w.castRay(viewer.Pos, rayRad, rayRad-viewRad)

		// Columns covered by this cast (the cast column plus replicas).
		covered := skip
		if c+covered > w.cfg.RayCount {
			covered = w.cfg.RayCount - c
		}
		for i := 0; i < covered; i++ {
			if hit.hit {
				depth.Set(c+i, hit.dist)
			} else {
				depth.Set(c+i, w.cfg.MaxDepth)
			}
		}
		if hit.hit {
			w.drawStrip(frame, c, covered, hit)
		}
	}
}

// castRay runs DDA from the viewer position along angle rayRad and returns
// the first wall hit within the step bound. viewOffset is the ray's angular
// offset from the view centre; the reported distance is projected onto the
// view axis with it, which is what avoids the fisheye distortion.
func (w *WallCaster) castRay(pos Point, rayRad, viewOffset float64) wallHit {
	dirX := math.Cos(rayRad)
	dirY := math.Sin(rayRad)

	// Viewer position in continuous grid units.
	posX := pos.X / w.grid.TileSize()
	posY := pos.Y / w.grid.TileSize()
	mapX := int(math.Floor(posX))
	mapY := int(math.Floor(posY))

	// Distance along the ray between successive grid-line crossings.
	// An axis-aligned ray never crosses one axis; a huge finite delta keeps
	// the arithmetic well defined without a division fault.
	deltaX := 1e30
	if dirX != 0 {
		deltaX = math.Abs(1 / dirX)
	}
	deltaY := 1e30
	if dirY != 0 {
		deltaY = math.Abs(1 / dirY)
	}

	stepX, stepY := 1, 1
	var sideX, sideY float64
	if dirX < 0 {
		stepX = -1
		sideX = (posX - float64(mapX)) * deltaX
	} else {
		sideX = (float64(mapX) + 1 - posX) * deltaX
	}
	if dirY < 0 {
		stepY = -1
		sideY = (posY - float64(mapY)) * deltaY
	} else {
		sideY = (float64(mapY) + 1 - posY) * deltaY
	}

	side := 0
	for steps := 0; steps < w.maxSteps; steps++ {
		if sideX < sideY {
			sideX += deltaX
			mapX += stepX
			side = 0
		} else {
			sideY += deltaY
			mapY += stepY
			side = 1
		}
		if !w.grid.InBounds(mapX, mapY) {
			// Ray escaped the map: no hit.
			return wallHit{}
		}
		if w.grid.IsWalkable(mapX, mapY) {
			continue
		}

		// Euclidean distance along the unit-direction ray.
		var rayLen float64
		if side == 0 {
			rayLen = (float64(mapX) - posX + (1-float64(stepX))/2) / dirX
		} else {
			rayLen = (float64(mapY) - posY + (1-float64(stepY))/2) / dirY
		}

		// Project onto the view axis so a flat wall renders flat.
		perp := rayLen * math.Cos(viewOffset)
		if perp > w.cfg.MaxDepth {
			return wallHit{}
		}
		if perp < w.cfg.MinWallDist {
			perp = w.cfg.MinWallDist
		}

		// Fractional hit position along the crossed wall face.
		var wallX float64
		if side == 0 {
			wallX = posY + rayLen*dirY
		} else {
			wallX = posX + rayLen*dirX
		}
		wallX -= math.Floor(wallX)

		texX := int(wallX * textureSize)
		// Mirror so both faces of a wall read the texture the same way.
		if (side == 0 && dirX > 0) || (side == 1 && dirY < 0) {
			texX = textureSize - texX - 1
		}

		lineHeight := int(float64(w.screenH) / perp)
		maxHeight := int(w.cfg.MaxWallScale * float64(w.screenH))
		if lineHeight > maxHeight {
			lineHeight = maxHeight
		}
		// A hit near MaxDepth can round to zero height; the strip still
		// draws one row, and the texture step divides by this.
		if lineHeight < 1 {
			lineHeight = 1
		}

		texIndex := w.grid.WallTexture(mapX, mapY)
		if texIndex >= len(w.textures) {
			texIndex = 0
		}
		return wallHit{
			hit:        true,
			dist:       perp,
			side:       side,
			texIndex:   texIndex,
			texX:       texX,
			lineHeight: lineHeight,
		}
	}
	return wallHit{}
}

// drawStrip paints the vertical wall strip for ray column c, spanning
// widthCols ray columns of screen pixels.
func (w *WallCaster) drawStrip(frame *Frame, c, widthCols int, hit wallHit) {
	drawStart := w.screenH/2 - hit.lineHeight/2
	if drawStart < 0 {
		drawStart = 0
	}
	drawEnd := w.screenH/2 + hit.lineHeight/2
	if drawEnd > w.screenH-1 {
		drawEnd = w.screenH - 1
	}

	shade := w.shadeFactor(hit.side, hit.dist)
	tex := w.textures[hit.texIndex]

	texStep := float64(textureSize) / float64(hit.lineHeight)
	texPos := float64(drawStart-w.screenH/2+hit.lineHeight/2) * texStep

	x0 := c * w.stripWidth
	x1 := x0 + widthCols*w.stripWidth
	if x1 > w.screenW {
		x1 = w.screenW
	}
	for y := drawStart; y <= drawEnd; y++ {
		texY := int(texPos) & (textureSize - 1)
		texPos += texStep
		col := tex.At(hit.texX, texY).Scale(shade)
		for x := x0; x < x1; x++ {
			frame.Set(x, y, col)
		}
	}
}

// shadeFactor darkens horizontal-line faces to distinguish N/S from E/W
// walls and applies distance fog capped at 60% darkening.
func (w *WallCaster) shadeFactor(side int, dist float64) float64 {
	base := 1.0
	if side == 1 {
		base = 0.8
	}
	fog := dist / w.cfg.MaxDepth
	if fog > 1 {
		fog = 1
	}
	return base * (1 - fog*0.6)
}

// StripWidth returns the screen pixel width of one ray column.
func (w *WallCaster) StripWidth() int { return w.stripWidth }
