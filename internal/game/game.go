package game

import (
	"fmt"
	"image/color"
	"log"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// maxTicksPerFrame caps how many sim ticks one render frame may run, so a
// long stall does not snowball into an ever-growing catch-up debt.
const maxTicksPerFrame = 4

// Game is the Ebiten shell around the engine: it owns the fixed-step tick
// loop, input, and the HUD, and blits the renderer's CPU frame to screen.
type Game struct {
	cfg     Config
	level   *Level
	grid    *Grid
	planner *Planner
	player  *Player
	weapon  *Weapon
	manager *EnemyManager
	rend    *Renderer
	timer   *FrameTimer

	frameImage *ebiten.Image // renderer output, uploaded each frame
	seed       int64
	rng        *rand.Rand
	tick       int

	lastUpdate time.Time
	timeAccum  time.Duration

	showPaths bool
	showHUD   bool
	gameOver  bool
	prevKeys  map[ebiten.Key]bool
	prevFire  bool

	watcher   *LevelWatcher
	levelPath string
}

// New builds a game from a level and config. seed fixes texture generation
// and enemy behaviour for reproducible runs.
func New(cfg Config, level *Level, seed int64) (*Game, error) {
	g := &Game{
		cfg:      cfg,
		seed:     seed,
		rng:      rand.New(rand.NewSource(seed)), // #nosec G404 -- cosmetic only
		timer:    NewFrameTimer(),
		showHUD:  true,
		prevKeys: map[ebiten.Key]bool{},
	}
	if err := g.loadLevel(level); err != nil {
		return nil, err
	}
	g.frameImage = ebiten.NewImage(cfg.Screen.Width, cfg.Screen.Height)
	g.lastUpdate = time.Now()
	return g, nil
}

// loadLevel (re)builds all level-derived state. Player health and score
// survive a reload; position resets to the level's spawn.
func (g *Game) loadLevel(level *Level) error {
	if err := level.Validate(); err != nil {
		return err
	}
	grid, err := level.Grid(g.cfg.Render.TileSize)
	if err != nil {
		return err
	}

	prevHealth, prevScore := 0, 0
	if g.player != nil {
		prevHealth, prevScore = g.player.Health, g.player.Score
	}

	g.level = level
	g.grid = grid
	g.planner = NewPlanner(grid)
	g.player = NewPlayer(
		Point{X: level.Player.X * grid.TileSize(), Y: level.Player.Y * grid.TileSize()},
		level.Player.Angle, g.cfg.Player, grid)
	if prevHealth > 0 {
		g.player.Health = prevHealth
		g.player.Score = prevScore
	}
	g.weapon = NewWeapon(g.cfg.Weapon)
	g.manager = NewEnemyManager(g.cfg, grid, g.planner, level.Spawns, g.rng)
	g.rend = NewRenderer(grid, g.cfg.Render, g.cfg.Screen, g.seed)
	return nil
}

// WatchLevel starts hot-reloading the level file: edits to it rebuild the
// map in place on the next frame.
func (g *Game) WatchLevel(path string) error {
	w, err := NewLevelWatcher(filepath.Dir(path))
	if err != nil {
		return err
	}
	g.watcher = w
	g.levelPath = path
	return nil
}

// Close releases the level watcher, if any.
func (g *Game) Close() {
	if g.watcher != nil {
		g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.handleInput()
	g.pollWatcher()

	if g.gameOver {
		if g.keyPressed(ebiten.KeyEnter) {
			g.restart()
		}
		return nil
	}

	// Fixed-step accumulator: sim ticks run at the configured rate no
	// matter how fast Ebiten calls Update, and a stall is clamped rather
	// than replayed.
	now := time.Now()
	g.timeAccum += now.Sub(g.lastUpdate)
	g.lastUpdate = now
	tickDur := time.Second / time.Duration(g.cfg.Screen.TargetFPS)
	if g.timeAccum > maxTicksPerFrame*tickDur {
		g.timeAccum = maxTicksPerFrame * tickDur
	}
	for g.timeAccum >= tickDur {
		g.timeAccum -= tickDur
		g.simTick()
	}
	return nil
}

// simTick runs one simulation tick: player, weapon, enemies.
func (g *Game) simTick() {
	g.tick++
	g.player.Update(g.readMoveIntent())
	g.weapon.Update()

	if damage := g.manager.Update(g.player); damage > 0 {
		g.player.TakeDamage(damage)
		if !g.player.Alive() {
			g.gameOver = true
		}
	}
}

// readMoveIntent maps held keys to this tick's movement.
func (g *Game) readMoveIntent() MoveIntent {
	var in MoveIntent
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		in.Forward += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		in.Forward -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		in.Strafe -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) {
		in.Strafe += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		in.Turn -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		in.Turn += 1
	}
	return in
}

// handleInput processes edge-triggered keys every frame.
func (g *Game) handleInput() {
	fire := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	fireEdge := fire && !g.prevFire
	g.prevFire = fire
	if (g.keyPressed(ebiten.KeySpace) || fireEdge) && !g.gameOver {
		if hit := g.weapon.Fire(g.player, g.manager.Enemies()); hit != nil && !hit.Alive() {
			g.player.AddScore(scoreForClass(hit.Class()))
		}
	}
	if g.keyPressed(ebiten.KeyR) {
		g.weapon.Reload()
	}
	if g.keyPressed(ebiten.KeyP) {
		g.showPaths = !g.showPaths
	}
	if g.keyPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if g.keyPressed(ebiten.KeyF9) {
		report := BuildDebugReport(g.tick, g.seed, g.player, g.weapon, g.manager, g.rend, g.timer.FPS())
		if err := CopyDebugReport(report); err != nil {
			log.Printf("debug report: clipboard unavailable: %v", err)
		}
		fmt.Print(report)
	}
}

// keyPressed is an edge-triggered key check against last frame's state.
func (g *Game) keyPressed(k ebiten.Key) bool {
	down := ebiten.IsKeyPressed(k)
	was := g.prevKeys[k]
	g.prevKeys[k] = down
	return down && !was
}

// pollWatcher applies a pending level reload, if the watcher reported one.
func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	select {
	case <-g.watcher.Events:
		level, err := LoadLevel(g.levelPath)
		if err != nil {
			log.Printf("level reload: %v", err)
			return
		}
		if err := g.loadLevel(level); err != nil {
			log.Printf("level reload: %v", err)
			return
		}
		log.Printf("level reloaded: %s", g.levelPath)
	case err := <-g.watcher.Errors:
		log.Printf("level watch: %v", err)
	default:
	}
}

// restart resets the run after a game over, keeping the same level and seed.
func (g *Game) restart() {
	g.gameOver = false
	g.tick = 0
	g.player = nil // loadLevel treats dead players as a fresh start
	if err := g.loadLevel(g.level); err != nil {
		log.Printf("restart: %v", err)
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	entities := make([]SpriteEntity, 0, g.manager.Count())
	for _, e := range g.manager.Enemies() {
		entities = append(entities, e)
	}
	g.rend.Render(g.player.Viewer(), entities, g.showPaths)
	g.frameImage.WritePixels(g.rend.Frame().Pix())
	screen.DrawImage(g.frameImage, nil)

	if fps, ok := g.timer.Tick(); ok {
		g.rend.OnMeasuredFrameRate(fps)
	}

	if g.showHUD {
		g.drawHUD(screen)
	}
	if g.gameOver {
		g.drawGameOver(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	w := float32(g.cfg.Screen.Width)
	h := float32(g.cfg.Screen.Height)

	// Health bar, bottom left, colour stepped by remaining fraction.
	frac := float32(g.player.Health) / float32(g.cfg.Player.MaxHealth)
	barCol := color.RGBA{R: 60, G: 200, B: 60, A: 255}
	switch {
	case frac < 0.25:
		barCol = color.RGBA{R: 220, G: 50, B: 50, A: 255}
	case frac < 0.5:
		barCol = color.RGBA{R: 230, G: 180, B: 40, A: 255}
	}
	const barW, barH = 180, 14
	vector.FillRect(screen, 12, h-barH-12, barW, barH, color.RGBA{A: 180}, false)
	vector.FillRect(screen, 12, h-barH-12, barW*frac, barH, barCol, false)
	vector.StrokeRect(screen, 12, h-barH-12, barW, barH, 1, color.RGBA{R: 200, G: 200, B: 200, A: 200}, false)

	ammo := fmt.Sprintf("AMMO %d/%d", g.weapon.Ammo(), g.cfg.Weapon.MaxAmmo)
	if g.weapon.Reloading() {
		ammo = "RELOADING"
	}
	ebitenutil.DebugPrintAt(screen, ammo, int(w)-110, int(h)-26)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("SCORE %d", g.player.Score), 12, int(h)-46)
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("FPS %.0f  skip=%d  enemies=%d", g.timer.FPS(), g.rend.SkipFactor(), g.manager.Count()),
		12, 8)

	// Crosshair.
	cx, cy := w/2, h/2
	reach := float32(4 + g.weapon.Recoil())
	cross := color.RGBA{R: 230, G: 230, B: 230, A: 220}
	vector.StrokeLine(screen, cx-reach, cy, cx+reach, cy, 1, cross, false)
	vector.StrokeLine(screen, cx, cy-reach, cx, cy+reach, 1, cross, false)
}

func (g *Game) drawGameOver(screen *ebiten.Image) {
	w := float32(g.cfg.Screen.Width)
	h := float32(g.cfg.Screen.Height)
	vector.FillRect(screen, 0, 0, w, h, color.RGBA{R: 40, A: 160}, false)

	face := basicfont.Face7x13
	centered := func(s string, y int, col color.Color) {
		adv := font.MeasureString(face, s)
		text.Draw(screen, s, face, int(w/2)-adv.Round()/2, y, col)
	}
	centered("GAME OVER", int(h/2)-12, color.RGBA{R: 230, G: 60, B: 60, A: 255})
	centered(fmt.Sprintf("score: %d", g.player.Score), int(h/2)+8, color.White)
	centered("[Enter] restart", int(h/2)+26, color.RGBA{R: 180, G: 180, B: 180, A: 255})
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.cfg.Screen.Width, g.cfg.Screen.Height
}
