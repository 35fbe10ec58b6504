package main

import (
	"flag"
	"fmt"
	"sort"
	"time"

	"github.com/gookit/color"
	"github.com/nvall/grimhold/internal/game"
)

var (
	styleHeader = color.Style{color.FgCyan, color.OpBold}
	styleGood   = color.Style{color.FgGreen}
	styleBad    = color.Style{color.FgRed, color.OpBold}
	styleSubtle = color.Style{color.FgGray}
)

type runStats struct {
	runIndex int
	seed     int64

	firstSightTick  int
	firstHitTick    int
	playerHits      int
	damageTaken     int
	transitions     int
	spawns          int
	kills           int
	score           int
	healthAtEnd     int
	survived        bool
	finalEnemyCount int
	summary         string

	renderP50 time.Duration
	renderP95 time.Duration
	renderMax time.Duration
}

func main() {
	var runs int
	var ticks int
	var seedBase int64
	var seedStep int64

	flag.IntVar(&runs, "runs", 5, "number of headless simulation runs")
	flag.IntVar(&ticks, "ticks", 3600, "ticks per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.Parse()

	if runs <= 0 || ticks <= 0 {
		styleBad.Println("error: -runs and -ticks must be > 0")
		return
	}

	styleHeader.Println("=== Grimhold Headless Report ===")
	fmt.Printf("runs=%d ticks=%d seed_base=%d seed_step=%d\n\n", runs, ticks, seedBase, seedStep)

	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		stats := runScenario(i+1, seed, ticks)
		all = append(all, stats)
		printRun(stats)
	}
	printAggregate(all)
}

// runScenario walks the player in a square patrol through an arena with all
// three enemy classes and records what the enemies do about it.
func runScenario(runIndex int, seed int64, ticks int) runStats {
	sim := game.MustSim(
		game.WithSeed(seed),
		game.WithGridRows([]string{
			"1111111111111111",
			"1..............1",
			"1..22....33....1",
			"1..2......3....1",
			"1..............1",
			"1......11......1",
			"1......1.......1",
			"1..............1",
			"1....2....3....1",
			"1..............1",
			"1111111111111111",
		}),
		game.WithPlayerAt(2.5, 2.5, 0),
		game.WithEnemyAt("scout", 13.5, 8.5),
		game.WithEnemyAt("tank", 13.5, 2.5),
		game.WithEnemyAt("ranged", 2.5, 8.5),
	)

	// Scripted input: keep moving forward and slowly turning, so the
	// player crosses enemy sight lines without needing a human.
	sim.Intent = game.MoveIntent{Forward: 0.6, Turn: 0.25}
	interval := max(ticks/20, 1)
	for t := 0; t < ticks; t += interval {
		sim.RunTicks(min(interval, ticks-t))
		sim.Fire()
	}

	stats := runStats{
		runIndex:        runIndex,
		seed:            seed,
		firstSightTick:  -1,
		firstHitTick:    -1,
		transitions:     sim.SimLog.Count("state", "transition"),
		spawns:          sim.SimLog.Count("spawn", ""),
		kills:           sim.Manager.Kills(),
		score:           sim.Player.Score,
		healthAtEnd:     sim.Player.Health,
		survived:        sim.Player.Alive(),
		finalEnemyCount: sim.Manager.Count(),
		summary:         sim.SimLog.Summary(sim.Tick, sim.Player, sim.Enemies()),
	}
	if e, ok := sim.SimLog.FirstOf("state", "transition"); ok {
		stats.firstSightTick = e.Tick
	}
	if e, ok := sim.SimLog.FirstOf("combat", "player_hit"); ok {
		stats.firstHitTick = e.Tick
	}
	for _, e := range sim.SimLog.Filter("combat", "player_hit") {
		stats.playerHits++
		stats.damageTaken += int(e.NumVal)
	}
	stats.renderP50, stats.renderP95, stats.renderMax = benchRenderer(sim, seed, 60)
	return stats
}

// benchRenderer times the software renderer on the run's final world state:
// the full pipeline runs headlessly into its CPU frame, so the timings are
// free of any display overhead.
func benchRenderer(sim *game.Sim, seed int64, frames int) (p50, p95, max time.Duration) {
	rend := game.NewRenderer(sim.Grid, sim.Cfg.Render, sim.Cfg.Screen, seed)
	entities := make([]game.SpriteEntity, 0, len(sim.Enemies()))
	for _, e := range sim.Enemies() {
		entities = append(entities, e)
	}
	viewer := sim.Player.Viewer()

	samples := make([]time.Duration, 0, frames)
	for i := 0; i < frames; i++ {
		start := time.Now()
		rend.Render(viewer, entities, true)
		samples = append(samples, time.Since(start))
	}
	return game.DurationPercentiles(samples)
}

func printRun(s runStats) {
	styleHeader.Printf("--- run %d (seed=%d) ---\n", s.runIndex, s.seed)
	fmt.Printf("  first_sight=%s first_hit=%s transitions=%d spawns=%d\n",
		tickStr(s.firstSightTick), tickStr(s.firstHitTick), s.transitions, s.spawns)
	fmt.Printf("  player: hits_taken=%d damage=%d hp_end=%d score=%d kills=%d\n",
		s.playerHits, s.damageTaken, s.healthAtEnd, s.score, s.kills)
	fmt.Printf("  render: p50=%s p95=%s max=%s\n", s.renderP50, s.renderP95, s.renderMax)
	if s.survived {
		styleGood.Printf("  survived (enemies left: %d)\n", s.finalEnemyCount)
	} else {
		styleBad.Println("  player died")
	}
	styleSubtle.Print(s.summary)
	fmt.Println()
}

func printAggregate(all []runStats) {
	styleHeader.Println("=== Aggregate ===")

	survived := 0
	totalKills, totalDamage := 0, 0
	sights := make([]int, 0, len(all))
	for _, s := range all {
		if s.survived {
			survived++
		}
		totalKills += s.kills
		totalDamage += s.damageTaken
		if s.firstSightTick >= 0 {
			sights = append(sights, s.firstSightTick)
		}
	}
	fmt.Printf("  survived: %d/%d  kills_total=%d  damage_total=%d\n",
		survived, len(all), totalKills, totalDamage)

	if len(sights) > 0 {
		sort.Ints(sights)
		styleSubtle.Printf("  first_sight ticks: min=%d median=%d max=%d\n",
			sights[0], sights[len(sights)/2], sights[len(sights)-1])
	} else {
		styleSubtle.Println("  no enemy ever sighted the player")
	}
}

func tickStr(t int) string {
	if t < 0 {
		return "never"
	}
	return fmt.Sprintf("T=%d", t)
}
