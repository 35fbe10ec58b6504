package game

import "container/heap"

// DefaultMaxIterations bounds one FindPath call when the caller passes <= 0.
const DefaultMaxIterations = 1000

// diagCost is the fixed diagonal step cost. Kept as the literal 1.414 rather
// than math.Sqrt2 so path costs match the reference tuning exactly.
const diagCost = 1.414

// pathDirs lists the 8 neighbour offsets in fixed expansion order.
// The order matters: together with the earliest-insertion tie-break it makes
// path shape deterministic on symmetric maps.
var pathDirs = [8][2]int{
	{0, -1}, {1, -1}, {1, 0}, {1, 1},
	{0, 1}, {-1, 1}, {-1, 0}, {-1, -1},
}

// pathNode is one search-state record. Nodes live in the planner's arena and
// reference their predecessor by arena index, so nothing outlives the
// FindPath call that created it and the arena is reused across calls.
type pathNode struct {
	gx, gy int
	g, h   float64
	parent int // arena index of predecessor, -1 for the start node
	seq    int // insertion order, used as the f tie-break
}

func (n *pathNode) f() float64 { return n.g + n.h }

// Planner runs A* searches over a Grid. Not safe for concurrent use: the
// node arena and open list are reused between calls.
type Planner struct {
	grid  *Grid
	nodes []pathNode
	open  openHeap
}

// NewPlanner creates a Planner bound to grid.
func NewPlanner(grid *Grid) *Planner {
	p := &Planner{grid: grid}
	p.open.p = p
	return p
}

// openHeap is a min-heap of arena indices ordered by ascending f.
// Equal-f ties break toward the earlier-inserted node, which keeps results
// independent of heap sift details.
type openHeap struct {
	p    *Planner
	idxs []int
}

func (h *openHeap) Len() int { return len(h.idxs) }
func (h *openHeap) Less(i, j int) bool {
	a := &h.p.nodes[h.idxs[i]]
	b := &h.p.nodes[h.idxs[j]]
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	return a.seq < b.seq
}
func (h *openHeap) Swap(i, j int) { h.idxs[i], h.idxs[j] = h.idxs[j], h.idxs[i] }
func (h *openHeap) Push(x any)    { h.idxs = append(h.idxs, x.(int)) }
func (h *openHeap) Pop() any {
	old := h.idxs
	n := old[len(old)-1]
	h.idxs = old[:len(old)-1]
	return n
}

// FindPath returns a sequence of tile-centre waypoints from the tile holding
// start to the tile holding goal, both inclusive. It returns nil when either
// endpoint is out of bounds or inside a wall, when the search space is
// exhausted, or when maxIterations expansions run out; callers cannot and
// need not distinguish the three. maxIterations <= 0 selects
// DefaultMaxIterations.
//
// The search is standard A*: Manhattan heuristic, orthogonal cost 1,
// diagonal cost 1.414, no reopening of closed cells. The Manhattan heuristic
// overestimates under diagonal movement, so the result is not guaranteed
// globally shortest; this matches the reference behaviour and is intentional.
func (p *Planner) FindPath(start, goal Point, maxIterations int) []Point {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	sx, sy := p.grid.WorldToTile(start)
	gx, gy := p.grid.WorldToTile(goal)
	if !p.grid.IsWalkable(sx, sy) || !p.grid.IsWalkable(gx, gy) {
		return nil
	}

	key := func(tx, ty int) int { return ty*p.grid.Width() + tx }
	heuristic := func(tx, ty int) float64 {
		dx := tx - gx
		dy := ty - gy
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		return float64(dx + dy)
	}

	p.nodes = p.nodes[:0]
	p.open.idxs = p.open.idxs[:0]
	closed := make(map[int]bool)
	best := make(map[int]int) // cell key -> arena index of cheapest known node

	p.nodes = append(p.nodes, pathNode{gx: sx, gy: sy, h: heuristic(sx, sy), parent: -1, seq: 0})
	best[key(sx, sy)] = 0
	heap.Push(&p.open, 0)
	seq := 1

	for iter := 0; p.open.Len() > 0 && iter < maxIterations; iter++ {
		curIdx := heap.Pop(&p.open).(int)
		cur := p.nodes[curIdx]

		if cur.gx == gx && cur.gy == gy {
			return p.buildPath(curIdx)
		}

		k := key(cur.gx, cur.gy)
		if closed[k] {
			continue
		}
		closed[k] = true

		for _, d := range pathDirs {
			nx, ny := cur.gx+d[0], cur.gy+d[1]
			if !p.grid.IsWalkable(nx, ny) {
				continue
			}
			nk := key(nx, ny)
			if closed[nk] {
				continue
			}

			cost := 1.0
			if d[0] != 0 && d[1] != 0 {
				// Reject diagonals that would cut through a wall corner.
				if !p.grid.IsWalkable(cur.gx+d[0], cur.gy) || !p.grid.IsWalkable(cur.gx, cur.gy+d[1]) {
					continue
				}
				cost = diagCost
			}

			newG := cur.g + cost
			if prevIdx, ok := best[nk]; ok && p.nodes[prevIdx].g <= newG {
				continue
			}
			p.nodes = append(p.nodes, pathNode{
				gx: nx, gy: ny,
				g: newG, h: heuristic(nx, ny),
				parent: curIdx, seq: seq,
			})
			seq++
			best[nk] = len(p.nodes) - 1
			heap.Push(&p.open, len(p.nodes)-1)
		}
	}
	return nil
}

// buildPath walks parent links from end back to the start node, then reverses
// and converts each cell to its tile-centre world point.
func (p *Planner) buildPath(endIdx int) []Point {
	count := 0
	for i := endIdx; i != -1; i = p.nodes[i].parent {
		count++
	}
	path := make([]Point, count)
	for i, at := endIdx, count-1; i != -1; i, at = p.nodes[i].parent, at-1 {
		path[at] = p.grid.TileCenter(p.nodes[i].gx, p.nodes[i].gy)
	}
	return path
}
