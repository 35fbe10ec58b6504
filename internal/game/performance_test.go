package game

import (
	"testing"
	"time"
)

func TestDurationPercentiles_Empty(t *testing.T) {
	p50, p95, max := DurationPercentiles(nil)
	if p50 != 0 || p95 != 0 || max != 0 {
		t.Fatalf("empty input should summarise to zeros, got %v %v %v", p50, p95, max)
	}
}

func TestDurationPercentiles_Summary(t *testing.T) {
	samples := make([]time.Duration, 100)
	for i := range samples {
		samples[i] = time.Duration(100-i) * time.Millisecond // descending
	}
	p50, p95, max := DurationPercentiles(samples)
	if max != 100*time.Millisecond {
		t.Fatalf("max = %v", max)
	}
	if p50 != 51*time.Millisecond {
		t.Fatalf("p50 = %v", p50)
	}
	if p95 != 96*time.Millisecond {
		t.Fatalf("p95 = %v", p95)
	}
	if samples[0] != 100*time.Millisecond {
		t.Fatal("input slice should not be reordered")
	}
}
