package game

// QualityController adapts the ray-column skip factor to hold a target frame
// rate. A higher skip factor casts fewer rays per frame (skipped columns
// replicate their neighbour), trading sharpness for speed. It never changes
// what is visible, only how finely it is sampled.
type QualityController struct {
	targetFPS float64
	skip      int
	maxSkip   int
}

// NewQualityController starts at full quality (skip factor 1).
func NewQualityController(targetFPS float64, maxSkip int) *QualityController {
	if maxSkip < 1 {
		maxSkip = 1
	}
	return &QualityController{targetFPS: targetFPS, skip: 1, maxSkip: maxSkip}
}

// OnMeasuredFrameRate feeds one fps measurement. Below 70% of target the
// skip factor rises; above 120% it falls back toward full quality.
func (q *QualityController) OnMeasuredFrameRate(fps float64) {
	switch {
	case fps < q.targetFPS*0.7 && q.skip < q.maxSkip:
		q.skip++
	case fps > q.targetFPS*1.2 && q.skip > 1:
		q.skip--
	}
}

// SkipFactor returns the current column skip factor, always >= 1.
func (q *QualityController) SkipFactor() int { return q.skip }
