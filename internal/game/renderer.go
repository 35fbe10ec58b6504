package game

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// Viewer is the camera state the renderer consumes each frame: a continuous
// world position, a facing angle in degrees, and the remaining ticks of the
// "just hit" flash that drives the red overlay.
type Viewer struct {
	Pos      Point
	Angle    float64
	HitTimer int
}

// Renderer drives one frame: background gradients, the wall pass, the
// sprite pass, then overlays. It owns the frame pixel buffer, the depth
// buffer and the quality controller.
type Renderer struct {
	grid    *Grid
	cfg     RenderConfig
	screenW int
	screenH int

	frame   *Frame
	depth   *DepthBuffer
	caster  *WallCaster
	sprites *SpriteCompositor
	quality *QualityController
	minimap *Minimap

	skyRows   []RGB
	floorRows []RGB
}

// NewRenderer builds the full pipeline for one grid. Wall textures are
// generated deterministically from the given seed.
func NewRenderer(grid *Grid, cfg RenderConfig, screen ScreenConfig, texSeed int64) *Renderer {
	rng := rand.New(rand.NewSource(texSeed)) // #nosec G404 -- cosmetic only
	textures := GenerateWallTextures(textureSize, rng)

	caster := NewWallCaster(grid, cfg, screen.Width, screen.Height, textures)
	r := &Renderer{
		grid:    grid,
		cfg:     cfg,
		screenW: screen.Width,
		screenH: screen.Height,
		frame:   NewFrame(screen.Width, screen.Height),
		depth:   NewDepthBuffer(cfg.RayCount, cfg.MaxDepth),
		caster:  caster,
		sprites: NewSpriteCompositor(cfg, screen.Width, screen.Height, caster.StripWidth()),
		quality: NewQualityController(float64(screen.TargetFPS), cfg.MaxSkipFactor),
		minimap: NewMinimap(grid, 150),
	}
	r.precomputeBackground()
	return r
}

// precomputeBackground fills the per-row sky and floor gradient colours once.
func (r *Renderer) precomputeBackground() {
	half := r.screenH / 2
	r.skyRows = make([]RGB, half)
	r.floorRows = make([]RGB, r.screenH-half)
	for y := 0; y < half; y++ {
		r.skyRows[y] = RGB{100, 100, clampByte(255 - y/2)}
	}
	for y := range r.floorRows {
		g := clampByte(40 + y/5)
		r.floorRows[y] = RGB{g, g, g}
	}
}

// Render draws one complete frame: background, walls (filling the depth
// buffer), sprites (reading it), then the minimap and damage flash. The
// passes are strictly sequential: the depth buffer is written in full
// before the sprite pass reads it.
func (r *Renderer) Render(viewer Viewer, entities []SpriteEntity, showPaths bool) {
	half := r.screenH / 2
	for y, c := range r.skyRows {
		r.frame.HLine(0, r.screenW-1, y, c)
	}
	for y, c := range r.floorRows {
		r.frame.HLine(0, r.screenW-1, half+y, c)
	}

	r.depth.Reset()
	r.caster.RenderWalls(r.frame, r.depth, viewer, r.quality.SkipFactor())
	r.sprites.RenderSprites(r.frame, r.depth, viewer, entities)

	r.minimap.Discover(viewer)
	r.minimap.Draw(r.frame, viewer, entities, showPaths)

	if viewer.HitTimer > 0 {
		alpha := viewer.HitTimer * 15
		if alpha > 150 {
			alpha = 150
		}
		r.frame.Tint(RGB{255, 0, 0}, uint8(alpha))
	}
}

// OnMeasuredFrameRate forwards an fps sample to the quality controller.
func (r *Renderer) OnMeasuredFrameRate(fps float64) {
	r.quality.OnMeasuredFrameRate(fps)
}

// Frame returns the pixel buffer of the most recent Render call.
func (r *Renderer) Frame() *Frame { return r.frame }

// Depth exposes the per-column wall distances of the most recent frame.
func (r *Renderer) Depth() *DepthBuffer { return r.depth }

// SkipFactor reports the quality controller's current column skip factor.
func (r *Renderer) SkipFactor() int { return r.quality.SkipFactor() }

// Discovered exposes the minimap's explored-tile set.
func (r *Renderer) Discovered() mapset.Set[int] { return r.minimap.discovered }
