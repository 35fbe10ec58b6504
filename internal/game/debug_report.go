package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// BuildDebugReport renders a snapshot of the whole engine state as text, for
// pasting into bug reports. Bound to F9 in the game shell.
func BuildDebugReport(tick int, seed int64, player *Player, weapon *Weapon, mgr *EnemyManager, r *Renderer, fps float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "--- Grimhold debug report ---\n")
	fmt.Fprintf(&b, "tick=%d seed=%d fps=%.1f skip=%d\n\n", tick, seed, fps, r.SkipFactor())

	fmt.Fprintf(&b, "player: pos=(%.1f,%.1f) angle=%.1f hp=%d score=%d\n",
		player.Pos.X, player.Pos.Y, player.Angle, player.Health, player.Score)
	fmt.Fprintf(&b, "weapon: ammo=%d reloading=%v\n\n", weapon.Ammo(), weapon.Reloading())

	enemies := mgr.Enemies()
	fmt.Fprintf(&b, "enemies: live=%d kills=%d\n", len(enemies), mgr.Kills())
	for i, e := range enemies {
		fmt.Fprintf(&b, "  %02d) %-6s %-7s hp=%-3d pos=(%.0f,%.0f) facing=%.0f path=%d/%d\n",
			i, e.Class(), e.State(), e.HP(),
			e.Position().X, e.Position().Y, e.Facing(),
			e.PathIndex(), len(e.PathPoints()))
	}

	fmt.Fprintf(&b, "\ndiscovered_tiles=%d\n", r.Discovered().Size())
	return b.String()
}

// CopyDebugReport puts the report on the system clipboard. Headless machines
// without a clipboard provider return an error; callers log and move on.
func CopyDebugReport(report string) error {
	return clipboard.WriteAll(report)
}
