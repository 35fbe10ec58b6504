package game

import (
	"sort"
	"time"
)

// fpsWindow is how many recent frames the moving average covers.
const fpsWindow = 30

// FrameTimer measures wall-clock frame rate as a moving average, feeding the
// renderer's adaptive quality controller twice a second rather than every
// frame so one slow frame does not thrash the skip factor.
type FrameTimer struct {
	last        time.Time
	samples     [fpsWindow]float64 // seconds per frame
	count       int
	next        int
	sinceReport time.Duration
}

// NewFrameTimer starts timing from now.
func NewFrameTimer() *FrameTimer {
	return &FrameTimer{last: time.Now()}
}

// Tick records one frame boundary and reports (fps, true) when a new half-
// second measurement is ready.
func (ft *FrameTimer) Tick() (float64, bool) {
	now := time.Now()
	dt := now.Sub(ft.last)
	ft.last = now
	if dt <= 0 {
		return 0, false
	}

	ft.samples[ft.next] = dt.Seconds()
	ft.next = (ft.next + 1) % fpsWindow
	if ft.count < fpsWindow {
		ft.count++
	}

	ft.sinceReport += dt
	if ft.sinceReport < 500*time.Millisecond || ft.count == 0 {
		return 0, false
	}
	ft.sinceReport = 0
	return ft.FPS(), true
}

// FPS returns the moving-average frame rate over the sample window.
func (ft *FrameTimer) FPS() float64 {
	if ft.count == 0 {
		return 0
	}
	sum := 0.0
	for i := 0; i < ft.count; i++ {
		sum += ft.samples[i]
	}
	avg := sum / float64(ft.count)
	if avg <= 0 {
		return 0
	}
	return 1 / avg
}

// DurationPercentiles summarises timing samples as median, p95 and max.
// Zero values for an empty slice. The input is not modified.
func DurationPercentiles(samples []time.Duration) (p50, p95, max time.Duration) {
	if len(samples) == 0 {
		return 0, 0, 0
	}
	sorted := make([]time.Duration, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	p50 = sorted[len(sorted)/2]
	p95 = sorted[len(sorted)*95/100]
	max = sorted[len(sorted)-1]
	return p50, p95, max
}
