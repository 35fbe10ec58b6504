package game

// DepthBuffer records the perpendicular wall distance (in tile units) for
// each ray column of one frame. The wall pass is its only writer; the sprite
// pass reads it to occlude sprites behind walls. Values persist only for the
// frame being rendered.
type DepthBuffer struct {
	dist     []float64
	sentinel float64
}

// NewDepthBuffer creates a buffer with one slot per ray column. sentinel is
// the "no wall hit" distance, normally the maximum view depth.
func NewDepthBuffer(columns int, sentinel float64) *DepthBuffer {
	db := &DepthBuffer{dist: make([]float64, columns), sentinel: sentinel}
	db.Reset()
	return db
}

// Reset restores every column to the sentinel distance.
func (db *DepthBuffer) Reset() {
	for i := range db.dist {
		db.dist[i] = db.sentinel
	}
}

// Len returns the number of columns.
func (db *DepthBuffer) Len() int { return len(db.dist) }

// Set records the wall distance for column c. Out-of-range columns are ignored.
func (db *DepthBuffer) Set(c int, dist float64) {
	if c < 0 || c >= len(db.dist) {
		return
	}
	db.dist[c] = dist
}

// At returns the wall distance recorded for column c. Out-of-range columns
// report the sentinel.
func (db *DepthBuffer) At(c int) float64 {
	if c < 0 || c >= len(db.dist) {
		return db.sentinel
	}
	return db.dist[c]
}
