package game

import (
	"math"
	"math/rand"
)

// EnemyClass selects one of the tuned stat blocks.
type EnemyClass int

const (
	ClassScout EnemyClass = iota
	ClassTank
	ClassRanged
)

func (c EnemyClass) String() string {
	switch c {
	case ClassScout:
		return "scout"
	case ClassTank:
		return "tank"
	case ClassRanged:
		return "ranged"
	default:
		return "unknown"
	}
}

// ParseEnemyClass maps a level-file class name to its EnemyClass. Unknown
// names fall back to scout.
func ParseEnemyClass(name string) EnemyClass {
	switch name {
	case "tank":
		return ClassTank
	case "ranged":
		return ClassRanged
	default:
		return ClassScout
	}
}

// EnemyState is the high-level behaviour state.
type EnemyState int

const (
	EnemyStatePatrol EnemyState = iota // walking its patrol loop
	EnemyStateAttack                   // player in sight, pursuing/firing
	EnemyStateSearch                   // lost sight, moving to last seen spot
	EnemyStateDead
)

func (s EnemyState) String() string {
	switch s {
	case EnemyStatePatrol:
		return "patrol"
	case EnemyStateAttack:
		return "attack"
	case EnemyStateSearch:
		return "search"
	case EnemyStateDead:
		return "dead"
	default:
		return "unknown"
	}
}

const hitEffectTicks = 5

// Enemy is an autonomous agent: it patrols a loop of points, chases the
// player on sight, and falls back to searching the last seen position when
// line of sight breaks.
type Enemy struct {
	pos    Point
	facing float64 // degrees
	class  EnemyClass
	stats  EnemyClassStats
	hp     int

	grid    *Grid
	planner *Planner
	pathCfg PathConfig
	patrol  PatrolTuning

	// Navigation
	path       []Point
	pathIndex  int
	replanTick int

	// Behaviour
	state         EnemyState
	stateTicks    int
	lastSeen      Point
	hasLastSeen   bool
	patrolPoints  []Point
	patrolIndex   int
	attackCD      int
	hitEffect     int
	speedOverride float64 // tiles per tick; 0 means use stats.Speed

	sprites [spriteViewCount]*Texture
}

// NewEnemy builds an enemy of the given class at a world position. The
// planner may be shared between enemies; they replan on different ticks.
func NewEnemy(class EnemyClass, pos Point, grid *Grid, planner *Planner, cfg Config, rng *rand.Rand) *Enemy {
	stats := cfg.Enemy.Scout
	body, head := RGB{180, 40, 40}, RGB{120, 120, 40}
	switch class {
	case ClassTank:
		stats = cfg.Enemy.Tank
		body, head = RGB{70, 90, 60}, RGB{60, 60, 60}
	case ClassRanged:
		stats = cfg.Enemy.Ranged
		body, head = RGB{60, 60, 140}, RGB{150, 120, 90}
	}
	e := &Enemy{
		pos:     pos,
		class:   class,
		stats:   stats,
		hp:      stats.HP,
		grid:    grid,
		planner: planner,
		pathCfg: cfg.Path,
		patrol:  cfg.Enemy.Patrol,
		state:   EnemyStatePatrol,
		sprites: GenerateEnemySprites(textureSize, body, head),
		// Stagger replans so a full population does not all plan on the
		// same tick.
		replanTick: rng.Intn(max(cfg.Path.UpdateFrequency, 1)),
	}
	e.generatePatrolRoute(rng)
	return e
}

// Position implements SpriteEntity.
func (e *Enemy) Position() Point { return e.pos }

// Facing implements SpriteEntity.
func (e *Enemy) Facing() float64 { return e.facing }

// HitFlash implements SpriteEntity.
func (e *Enemy) HitFlash() bool { return e.hitEffect > 0 }

// Sprite implements SpriteEntity.
func (e *Enemy) Sprite(view SpriteView) *Texture { return e.sprites[view] }

// PathPoints implements MinimapEntity.
func (e *Enemy) PathPoints() []Point { return e.path }

// PathIndex implements MinimapEntity.
func (e *Enemy) PathIndex() int { return e.pathIndex }

// Class returns the enemy's stat class.
func (e *Enemy) Class() EnemyClass { return e.class }

// State returns the current behaviour state.
func (e *Enemy) State() EnemyState { return e.state }

// HP returns remaining hit points.
func (e *Enemy) HP() int { return e.hp }

// Alive reports whether the enemy is still in play.
func (e *Enemy) Alive() bool { return e.state != EnemyStateDead }

// TakeDamage applies damage and reports whether it killed the enemy.
func (e *Enemy) TakeDamage(dmg int) bool {
	if e.state == EnemyStateDead {
		return false
	}
	e.hp -= dmg
	e.hitEffect = hitEffectTicks
	if e.hp <= 0 {
		e.state = EnemyStateDead
		e.path = nil
		return true
	}
	return false
}

// Alert forces the enemy into attack state toward a position, used to
// propagate contact between nearby enemies.
func (e *Enemy) Alert(at Point) {
	if e.state == EnemyStateDead || e.state == EnemyStateAttack {
		return
	}
	e.state = EnemyStateAttack
	e.stateTicks = 0
	e.lastSeen = at
	e.hasLastSeen = true
}

// Update advances the enemy one tick. It returns the damage dealt to the
// player this tick (0 almost always).
func (e *Enemy) Update(player *Player) int {
	if e.state == EnemyStateDead {
		return 0
	}
	if e.hitEffect > 0 {
		e.hitEffect--
	}
	if e.attackCD > 0 {
		e.attackCD--
	}
	e.stateTicks++
	e.replanTick++

	sees := e.canSee(player.Pos)
	e.updateState(player, sees)
	e.updatePathfinding(player)
	damage := e.tryAttack(player, sees)
	e.move()
	return damage
}

// updateState runs the patrol/attack/search transitions. Sighting the player
// switches to attack immediately from any live state.
func (e *Enemy) updateState(player *Player, sees bool) {
	if sees {
		if e.state != EnemyStateAttack {
			e.state = EnemyStateAttack
			e.stateTicks = 0
		}
		e.lastSeen = player.Pos
		e.hasLastSeen = true
		return
	}
	switch e.state {
	case EnemyStateAttack:
		// Lost sight: go look where the player was last seen.
		e.state = EnemyStateSearch
		e.stateTicks = 0
	case EnemyStateSearch:
		reached := e.hasLastSeen && e.pos.Dist(e.lastSeen) < e.grid.TileSize()
		if reached || e.stateTicks > e.patrol.SearchDuration {
			e.state = EnemyStatePatrol
			e.stateTicks = 0
			e.hasLastSeen = false
		}
	}
}

// updatePathfinding replans on the configured cadence, or immediately when
// the current path is spent. Replanning picks the goal by state.
func (e *Enemy) updatePathfinding(player *Player) {
	due := e.replanTick >= e.pathCfg.UpdateFrequency
	spent := e.pathIndex >= len(e.path)
	if !due && !spent {
		return
	}
	e.replanTick = 0

	var goal Point
	switch e.state {
	case EnemyStateAttack:
		goal = player.Pos
	case EnemyStateSearch:
		if !e.hasLastSeen {
			return
		}
		goal = e.lastSeen
	case EnemyStatePatrol:
		if len(e.patrolPoints) == 0 {
			return
		}
		goal = e.patrolPoints[e.patrolIndex]
		if e.pos.Dist(goal) < e.grid.TileSize()*0.8 {
			e.patrolIndex = (e.patrolIndex + 1) % len(e.patrolPoints)
			goal = e.patrolPoints[e.patrolIndex]
		}
	default:
		return
	}

	path := e.planner.FindPath(e.pos, goal, e.pathCfg.MaxIterations)
	if len(path) > e.pathCfg.MaxLength {
		path = path[:e.pathCfg.MaxLength]
	}
	e.path = path
	e.pathIndex = 0
}

// tryAttack deals damage when the player is in sight and inside this class's
// attack range, gated by the attack cooldown.
func (e *Enemy) tryAttack(player *Player, sees bool) int {
	if !sees || e.attackCD > 0 || e.state != EnemyStateAttack {
		return 0
	}
	rangePx := e.stats.AttackRange * e.grid.TileSize()
	if e.pos.Dist(player.Pos) > rangePx {
		return 0
	}
	e.attackCD = e.stats.AttackCooldown
	// Face the player while firing.
	e.facing = math.Atan2(player.Pos.Y-e.pos.Y, player.Pos.X-e.pos.X) * 180 / math.Pi
	return e.stats.Damage
}

// move advances along the current path, consuming the full per-tick travel
// budget across waypoints and turning to face the motion direction.
func (e *Enemy) move() {
	speed := e.stats.Speed
	if e.speedOverride > 0 {
		speed = e.speedOverride
	}
	switch e.state {
	case EnemyStateAttack:
		speed *= 1.3
	case EnemyStateSearch:
		speed *= 0.8
	}
	remaining := speed * e.grid.TileSize()

	for remaining > 0 && e.pathIndex < len(e.path) {
		wp := e.path[e.pathIndex]
		dx := wp.X - e.pos.X
		dy := wp.Y - e.pos.Y
		dist := math.Sqrt(dx*dx + dy*dy)

		if dist > 1e-6 {
			e.facing = math.Atan2(dy, dx) * 180 / math.Pi
		}

		if dist <= remaining {
			e.pos = wp
			remaining -= dist
			e.pathIndex++
		} else {
			next := Point{X: e.pos.X + dx/dist*remaining, Y: e.pos.Y + dy/dist*remaining}
			// Paths only route through floor, but a mid-replan waypoint can
			// briefly aim at a tile boundary; never step into a wall.
			if e.grid.WalkableAt(next) {
				e.pos = next
			}
			remaining = 0
		}
	}
}

// canSee reports line of sight to a target within sight range: a DDA walk
// from the enemy to the target that must not cross a wall tile.
func (e *Enemy) canSee(target Point) bool {
	if e.pos.Dist(target) > e.patrol.SightRange*e.grid.TileSize() {
		return false
	}
	return LineOfSight(e.grid, e.pos, target)
}

// generatePatrolRoute picks a small loop of reachable floor tiles near the
// spawn point. Falls back to the spawn tile alone on cramped maps.
func (e *Enemy) generatePatrolRoute(rng *rand.Rand) {
	gx, gy := e.grid.WorldToTile(e.pos)
	const radius = 6
	var candidates []Point
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			tx, ty := gx+dx, gy+dy
			if !e.grid.IsWalkable(tx, ty) {
				continue
			}
			center := e.grid.TileCenter(tx, ty)
			if len(e.planner.FindPath(e.pos, center, e.pathCfg.MaxIterations)) == 0 {
				continue
			}
			candidates = append(candidates, center)
		}
	}
	if len(candidates) == 0 {
		e.patrolPoints = []Point{e.pos}
		return
	}
	rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	n := min(4, len(candidates))
	e.patrolPoints = candidates[:n]
}
