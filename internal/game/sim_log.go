package game

import (
	"fmt"
	"strings"
)

// SimLogEntry is one recorded event during a headless simulation run.
type SimLogEntry struct {
	Tick     int
	Actor    string  // "player", "E0".."En", or "--" for global events
	Category string  // state, path, combat, spawn, render
	Key      string  // specific event name within the category
	Value    string  // human-readable detail
	NumVal   float64 // optional numeric value for threshold checks
}

// String formats the entry as a fixed-width log line.
//
//	[T=042] E0     state    transition       patrol → attack
func (e SimLogEntry) String() string {
	return fmt.Sprintf("[T=%03d] %-6s %-8s %-16s %s",
		e.Tick, e.Actor, e.Category, e.Key, e.Value)
}

// matches reports whether the entry fits a category/key query; an empty
// query field matches anything.
func (e SimLogEntry) matches(category, key string) bool {
	if category != "" && e.Category != category {
		return false
	}
	if key != "" && e.Key != key {
		return false
	}
	return true
}

// SimLog collects structured events during a headless simulation. It is
// unbounded and machine-readable, so tests and the report tool assert on it
// instead of scraping rendered frames.
type SimLog struct {
	entries []SimLogEntry
	verbose bool
}

// NewSimLog creates a SimLog. If verbose is true, per-tick position entries
// are also recorded.
func NewSimLog(verbose bool) *SimLog {
	return &SimLog{verbose: verbose}
}

// Add records a new entry.
func (sl *SimLog) Add(tick int, actor, category, key, value string, numVal float64) {
	sl.entries = append(sl.entries, SimLogEntry{
		Tick:     tick,
		Actor:    actor,
		Category: category,
		Key:      key,
		Value:    value,
		NumVal:   numVal,
	})
}

// AddVerbose records an entry only when verbose mode is on.
func (sl *SimLog) AddVerbose(tick int, actor, category, key, value string, numVal float64) {
	if sl.verbose {
		sl.Add(tick, actor, category, key, value, numVal)
	}
}

// Entries returns all recorded entries.
func (sl *SimLog) Entries() []SimLogEntry {
	return sl.entries
}

// Filter returns entries matching category and/or key; empty strings match
// any value for that field.
func (sl *SimLog) Filter(category, key string) []SimLogEntry {
	var out []SimLogEntry
	for _, e := range sl.entries {
		if e.matches(category, key) {
			out = append(out, e)
		}
	}
	return out
}

// Count returns how many entries match category and/or key.
func (sl *SimLog) Count(category, key string) int {
	n := 0
	for _, e := range sl.entries {
		if e.matches(category, key) {
			n++
		}
	}
	return n
}

// FirstOf returns the earliest entry matching category+key, or false if none.
func (sl *SimLog) FirstOf(category, key string) (SimLogEntry, bool) {
	for _, e := range sl.entries {
		if e.matches(category, key) {
			return e, true
		}
	}
	return SimLogEntry{}, false
}

// HasEntry returns true if at least one entry matches category, key, and
// value substring.
func (sl *SimLog) HasEntry(category, key, valueSubstr string) bool {
	for _, e := range sl.entries {
		if e.matches(category, key) &&
			(valueSubstr == "" || strings.Contains(e.Value, valueSubstr)) {
			return true
		}
	}
	return false
}

// Summary returns a short human-readable snapshot of the simulation: player
// condition, the live population per class, and who currently has contact.
func (sl *SimLog) Summary(tick int, player *Player, enemies []*Enemy) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Summary at T=%03d ---\n", tick)
	fmt.Fprintf(&sb, "player: hp=%d score=%d\n", player.Health, player.Score)

	byClass := map[EnemyClass]int{}
	byState := map[EnemyState]int{}
	for _, e := range enemies {
		byClass[e.Class()]++
		byState[e.State()]++
	}
	sb.WriteString("alive:")
	for _, c := range []EnemyClass{ClassScout, ClassTank, ClassRanged} {
		if n := byClass[c]; n > 0 {
			fmt.Fprintf(&sb, " %s=%d", c, n)
		}
	}
	if len(enemies) == 0 {
		sb.WriteString(" none")
	}
	sb.WriteByte('\n')

	sb.WriteString("states:")
	for _, st := range []EnemyState{EnemyStatePatrol, EnemyStateAttack, EnemyStateSearch} {
		if n := byState[st]; n > 0 {
			fmt.Fprintf(&sb, " %s=%d", st, n)
		}
	}
	sb.WriteByte('\n')

	contacts := 0
	for i, e := range enemies {
		if e.State() == EnemyStateAttack {
			fmt.Fprintf(&sb, "contact: E%d (%s) at (%.1f, %.1f)\n",
				i, e.Class(), e.Position().X, e.Position().Y)
			contacts++
		}
	}
	if contacts == 0 {
		sb.WriteString("contact: none\n")
	}
	return sb.String()
}
