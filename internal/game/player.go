package game

import "math"

// collisionPad keeps the player's eye point off wall faces so the renderer
// never divides by a near-zero wall distance. In world pixels.
const collisionPad = 8

// Player holds the viewer's state: position, facing, health and score.
// Movement is resolved per axis, so sliding along walls works without any
// extra collision response.
type Player struct {
	Pos    Point
	Angle  float64 // degrees
	Health int
	Score  int

	cfg      PlayerConfig
	grid     *Grid
	hitTimer int // ticks of red damage tint remaining
}

// MoveIntent is one tick of movement input, before collision.
type MoveIntent struct {
	Forward float64 // -1..1
	Strafe  float64 // -1..1, positive is right
	Turn    float64 // -1..1, positive is clockwise
}

// NewPlayer spawns a player at a world position facing angle degrees.
func NewPlayer(pos Point, angle float64, cfg PlayerConfig, grid *Grid) *Player {
	return &Player{
		Pos:    pos,
		Angle:  angle,
		Health: cfg.MaxHealth,
		cfg:    cfg,
		grid:   grid,
	}
}

// Update applies one tick of movement intent with wall collision.
func (p *Player) Update(in MoveIntent) {
	if p.hitTimer > 0 {
		p.hitTimer--
	}
	p.Angle += in.Turn * p.cfg.TurnSpeed
	for p.Angle < 0 {
		p.Angle += 360
	}
	for p.Angle >= 360 {
		p.Angle -= 360
	}

	rad := p.Angle * math.Pi / 180
	dx := (math.Cos(rad)*in.Forward - math.Sin(rad)*in.Strafe) * p.cfg.MoveSpeed
	dy := (math.Sin(rad)*in.Forward + math.Cos(rad)*in.Strafe) * p.cfg.MoveSpeed

	// Per-axis resolution: a blocked axis cancels alone, so the player
	// slides along walls instead of sticking to them.
	if p.canStand(Point{X: p.Pos.X + dx, Y: p.Pos.Y}) {
		p.Pos.X += dx
	}
	if p.canStand(Point{X: p.Pos.X, Y: p.Pos.Y + dy}) {
		p.Pos.Y += dy
	}
}

// canStand checks the point plus a small pad in each direction, so the eye
// point keeps its distance from wall faces.
func (p *Player) canStand(at Point) bool {
	for _, off := range [4]Point{{collisionPad, 0}, {-collisionPad, 0}, {0, collisionPad}, {0, -collisionPad}} {
		if !p.grid.WalkableAt(Point{X: at.X + off.X, Y: at.Y + off.Y}) {
			return false
		}
	}
	return true
}

// TakeDamage reduces health and starts the damage tint. Health floors at 0.
func (p *Player) TakeDamage(dmg int) {
	if dmg <= 0 {
		return
	}
	p.Health -= dmg
	if p.Health < 0 {
		p.Health = 0
	}
	p.hitTimer = 10
}

// Alive reports whether the player still has health.
func (p *Player) Alive() bool { return p.Health > 0 }

// AddScore credits points for a kill.
func (p *Player) AddScore(points int) { p.Score += points }

// Viewer returns the renderer's view of the player this tick.
func (p *Player) Viewer() Viewer {
	return Viewer{Pos: p.Pos, Angle: p.Angle, HitTimer: p.hitTimer}
}
