package game

import (
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// alertRadiusTiles is how far a contact shout carries.
const alertRadiusTiles = 6

// EnemyManager owns the enemy population: spawning from level spawn points
// up to the configured cap, ticking each enemy, and propagating contact so a
// sighting pulls nearby enemies into the fight.
type EnemyManager struct {
	cfg     Config
	grid    *Grid
	planner *Planner
	rng     *rand.Rand

	spawns     []EnemySpawn
	spawnIndex int
	spawnTimer int
	// Tiles with a live enemy standing on them at spawn time; a spawn point
	// whose tile is occupied waits for the next cooldown.
	occupied mapset.Set[int]

	enemies []*Enemy
	kills   int
}

// NewEnemyManager builds a manager for one level. The planner is shared by
// all enemies it spawns.
func NewEnemyManager(cfg Config, grid *Grid, planner *Planner, spawns []EnemySpawn, rng *rand.Rand) *EnemyManager {
	return &EnemyManager{
		cfg:      cfg,
		grid:     grid,
		planner:  planner,
		rng:      rng,
		spawns:   spawns,
		occupied: mapset.New[int](),
	}
}

// Enemies returns the live population. Callers must not hold the slice
// across an Update.
func (em *EnemyManager) Enemies() []*Enemy {
	live := em.enemies[:0:0]
	for _, e := range em.enemies {
		if e.Alive() {
			live = append(live, e)
		}
	}
	return live
}

// AddSpawn registers an extra spawn point after construction. The headless
// harness uses this to drop scripted enemies into a level.
func (em *EnemyManager) AddSpawn(sp EnemySpawn) {
	em.spawns = append(em.spawns, sp)
}

// Kills returns how many enemies have died so far.
func (em *EnemyManager) Kills() int { return em.kills }

// Count returns the number of live enemies.
func (em *EnemyManager) Count() int {
	n := 0
	for _, e := range em.enemies {
		if e.Alive() {
			n++
		}
	}
	return n
}

// Update ticks spawning and every live enemy, and returns the total damage
// dealt to the player this tick.
func (em *EnemyManager) Update(player *Player) int {
	em.tickSpawning()

	damage := 0
	var contacts []Point
	for _, e := range em.enemies {
		if !e.Alive() {
			continue
		}
		wasAttacking := e.State() == EnemyStateAttack
		damage += e.Update(player)
		if !wasAttacking && e.State() == EnemyStateAttack {
			contacts = append(contacts, e.Position())
		}
	}

	// Fresh contacts shout: patrol and search enemies nearby join in.
	for _, at := range contacts {
		radius := alertRadiusTiles * em.grid.TileSize()
		for _, e := range em.enemies {
			if e.Alive() && e.Position().Dist(at) <= radius {
				e.Alert(player.Pos)
			}
		}
	}

	// Track kills once, when an enemy first shows up dead.
	live := 0
	for _, e := range em.enemies {
		if e.Alive() {
			live++
		}
	}
	em.kills = len(em.enemies) - live
	return damage
}

// tickSpawning spawns one enemy per cooldown period while under the cap and
// spawn points remain unblocked.
func (em *EnemyManager) tickSpawning() {
	if len(em.spawns) == 0 || em.Count() >= em.cfg.Enemy.MaxCount {
		return
	}
	if em.spawnTimer > 0 {
		em.spawnTimer--
		return
	}

	em.refreshOccupied()
	for tries := 0; tries < len(em.spawns); tries++ {
		sp := em.spawns[em.spawnIndex]
		em.spawnIndex = (em.spawnIndex + 1) % len(em.spawns)

		pos := Point{X: sp.X * em.grid.TileSize(), Y: sp.Y * em.grid.TileSize()}
		gx, gy := em.grid.WorldToTile(pos)
		if !em.grid.IsWalkable(gx, gy) || em.occupied.Has(gy*em.grid.Width()+gx) {
			continue
		}

		class := ParseEnemyClass(sp.Class)
		if sp.Class == "" {
			class = EnemyClass(em.rng.Intn(3))
		}
		em.enemies = append(em.enemies, NewEnemy(class, pos, em.grid, em.planner, em.cfg, em.rng))
		em.spawnTimer = em.cfg.Enemy.SpawnCooldown
		return
	}
	// All spawn tiles blocked; retry after a short wait.
	em.spawnTimer = em.cfg.Enemy.SpawnCooldown / 4
}

func (em *EnemyManager) refreshOccupied() {
	em.occupied = mapset.New[int]()
	for _, e := range em.enemies {
		if !e.Alive() {
			continue
		}
		gx, gy := em.grid.WorldToTile(e.Position())
		em.occupied.Put(gy*em.grid.Width() + gx)
	}
}
