package game

import (
	"math"
	"sort"
)

// SpriteEntity is what the compositor needs from anything drawn as a
// billboard: enemies today, but nothing here knows about enemy logic.
type SpriteEntity interface {
	Position() Point
	Facing() float64 // degrees, direction the entity looks
	HitFlash() bool  // true while the red hit tint should show
	Sprite(view SpriteView) *Texture
}

// spriteDraw is one culled, projected sprite ready for compositing.
type spriteDraw struct {
	entity  SpriteEntity
	dist    float64 // tiles
	screenX int
	size    int
	view    SpriteView
	mirror  bool
	flash   bool
}

// SpriteCompositor projects sprite entities into screen space and draws them
// column by column against the depth buffer, so walls correctly occlude them.
type SpriteCompositor struct {
	cfg        RenderConfig
	screenW    int
	screenH    int
	stripWidth int
	fovRad     float64

	draws []spriteDraw // reused across frames
}

// NewSpriteCompositor builds a compositor matching the wall caster's column
// layout: stripWidth must equal the caster's so screen x maps to the same
// depth column.
func NewSpriteCompositor(cfg RenderConfig, screenW, screenH, stripWidth int) *SpriteCompositor {
	return &SpriteCompositor{
		cfg:        cfg,
		screenW:    screenW,
		screenH:    screenH,
		stripWidth: stripWidth,
		fovRad:     cfg.FOVDegrees * math.Pi / 180,
	}
}

// RenderSprites draws all visible entities back to front. The depth buffer
// must already hold this frame's wall distances.
func (sc *SpriteCompositor) RenderSprites(frame *Frame, depth *DepthBuffer, viewer Viewer, entities []SpriteEntity) {
	draws := sc.cull(viewer, entities)

	// Farthest first, so nearer sprites paint over farther ones.
	sort.Slice(draws, func(i, j int) bool { return draws[i].dist > draws[j].dist })

	for _, d := range draws {
		sc.drawSprite(frame, depth, d)
	}
}

// cull computes distance and view angle for every entity and keeps the ones
// inside the render depth and a margin around the field of view.
func (sc *SpriteCompositor) cull(viewer Viewer, entities []SpriteEntity) []spriteDraw {
	viewRad := viewer.Angle * math.Pi / 180
	draws := sc.draws[:0]

	for _, e := range entities {
		pos := e.Position()
		dx := pos.X - viewer.Pos.X
		dy := pos.Y - viewer.Pos.Y
		distTiles := math.Sqrt(dx*dx+dy*dy) / sc.cfg.TileSize
		if distTiles > sc.cfg.MaxDepth {
			continue
		}

		angle := normalizeRad(math.Atan2(dy, dx) - viewRad)
		// Wide sprites at the screen edge still need drawing, so the FOV
		// test carries a 1.5x margin.
		if math.Abs(angle) > (sc.fovRad/2)*1.5 {
			continue
		}

		screenX := int((0.5 + angle/sc.fovRad) * float64(sc.screenW))

		size := sc.screenH
		if distTiles > 0 {
			size = int(float64(sc.screenH) / distTiles)
		}
		maxSize := int(sc.cfg.MaxSpriteSize * float64(sc.screenH))
		if size > maxSize {
			size = maxSize
		}
		if size <= 0 {
			continue
		}

		view, mirror := sc.selectView(viewer, e)
		draws = append(draws, spriteDraw{
			entity:  e,
			dist:    distTiles,
			screenX: screenX,
			size:    size,
			view:    view,
			mirror:  mirror,
			flash:   e.HitFlash(),
		})
	}
	sc.draws = draws
	return draws
}

// selectView picks the front, side or back view from the entity's facing
// relative to the viewer. The side view mirrors when the viewer stands on
// the entity's left of "directly behind".
func (sc *SpriteCompositor) selectView(viewer Viewer, e SpriteEntity) (SpriteView, bool) {
	pos := e.Position()
	toViewer := math.Atan2(viewer.Pos.Y-pos.Y, viewer.Pos.X-pos.X) * 180 / math.Pi
	rel := normalizeDeg(e.Facing() - toViewer)

	abs := math.Abs(rel)
	switch {
	case abs <= 45:
		return ViewFront, false
	case abs >= 135:
		return ViewBack, false
	default:
		return ViewSide, rel < 0
	}
}

// drawSprite composites one sprite strip by strip, drawing a column only
// where the sprite is strictly nearer than the wall recorded for it.
func (sc *SpriteCompositor) drawSprite(frame *Frame, depth *DepthBuffer, d spriteDraw) {
	tex := d.entity.Sprite(d.view)
	if tex == nil {
		return
	}

	top := sc.screenH/2 - d.size/2
	left := d.screenX - d.size/2

	x0 := max(0, left)
	x1 := min(sc.screenW, left+d.size)

	for x := x0; x < x1; x++ {
		col := x / sc.stripWidth
		if d.dist >= depth.At(col) {
			continue
		}
		// Horizontal texture coordinate inside the scaled sprite.
		u := float64(x-left) / float64(d.size)
		if d.mirror {
			u = 1 - u
		}
		texX := int(u * float64(tex.Size()))

		for y := max(0, top); y < min(sc.screenH, top+d.size); y++ {
			v := float64(y-top) / float64(d.size)
			texY := int(v * float64(tex.Size()))
			if !tex.Opaque(texX, texY) {
				continue
			}
			c := tex.At(texX, texY)
			if d.flash {
				// Red tint while the hit timer runs.
				c = RGB{
					R: clampByte(int(c.R) + 100),
					G: uint8(int(c.G) * 6 / 10),
					B: uint8(int(c.B) * 6 / 10),
				}
			}
			frame.Set(x, y, c)
		}
	}
}

// normalizeRad wraps an angle to (-pi, pi].
func normalizeRad(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}

// normalizeDeg wraps an angle to (-180, 180].
func normalizeDeg(a float64) float64 {
	for a > 180 {
		a -= 360
	}
	for a <= -180 {
		a += 360
	}
	return a
}
