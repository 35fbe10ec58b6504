package game

import "math"

// Weapon is the player's hitscan gun: instant hit along the view direction,
// with ammo, a fire cooldown and a reload timer. Recoil is cosmetic and
// consumed by the HUD.
type Weapon struct {
	cfg       WeaponConfig
	ammo      int
	cooldown  int
	reloading int
	recoil    int
}

// NewWeapon returns a weapon with a full magazine.
func NewWeapon(cfg WeaponConfig) *Weapon {
	return &Weapon{cfg: cfg, ammo: cfg.MaxAmmo}
}

// Ammo returns rounds left in the magazine.
func (w *Weapon) Ammo() int { return w.ammo }

// Reloading reports whether a reload is in progress.
func (w *Weapon) Reloading() bool { return w.reloading > 0 }

// Recoil returns the remaining cosmetic recoil ticks.
func (w *Weapon) Recoil() int { return w.recoil }

// Update advances timers one tick. Finishing a reload refills the magazine.
func (w *Weapon) Update() {
	if w.cooldown > 0 {
		w.cooldown--
	}
	if w.recoil > 0 {
		w.recoil--
	}
	if w.reloading > 0 {
		w.reloading--
		if w.reloading == 0 {
			w.ammo = w.cfg.MaxAmmo
		}
	}
}

// Reload starts a reload unless one is running or the magazine is full.
func (w *Weapon) Reload() {
	if w.reloading > 0 || w.ammo == w.cfg.MaxAmmo {
		return
	}
	w.reloading = w.cfg.ReloadTime
}

// Fire performs one hitscan shot from the player's position along their view
// direction. It returns the enemy hit, or nil: a dry or cooling weapon, an
// in-progress reload, or simply missing all return nil. An empty magazine
// auto-starts a reload.
func (w *Weapon) Fire(player *Player, enemies []*Enemy) *Enemy {
	if w.cooldown > 0 || w.reloading > 0 {
		return nil
	}
	if w.ammo <= 0 {
		w.Reload()
		return nil
	}
	w.ammo--
	w.cooldown = w.cfg.FireCooldown
	w.recoil = 4

	// Nearest enemy inside the angular tolerance with clear sight wins.
	var hit *Enemy
	best := math.Inf(1)
	for _, e := range enemies {
		if !e.Alive() {
			continue
		}
		dx := e.Position().X - player.Pos.X
		dy := e.Position().Y - player.Pos.Y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist >= best {
			continue
		}
		toEnemy := math.Atan2(dy, dx) * 180 / math.Pi
		if math.Abs(normalizeDeg(toEnemy-player.Angle)) > w.cfg.AimTolerance {
			continue
		}
		if !LineOfSight(player.grid, player.Pos, e.Position()) {
			continue
		}
		hit = e
		best = dist
	}
	if hit != nil {
		hit.TakeDamage(w.cfg.Damage)
	}
	return hit
}

// Damage returns the per-shot damage, for score and report bookkeeping.
func (w *Weapon) Damage() int { return w.cfg.Damage }
