package profiler

import (
	"testing"
	"time"
)

func TestTickReportsAfterInterval(t *testing.T) {
	p := NewProfiler(10 * time.Millisecond)
	if p.Tick() {
		t.Fatal("expected no report on the first tick")
	}
	time.Sleep(15 * time.Millisecond)
	if !p.Tick() {
		t.Fatal("expected a report once the interval elapsed")
	}
	stats := p.Last()
	if stats.FPS <= 0 || stats.Heap == 0 || stats.SystemHeap == 0 {
		t.Errorf("expected positive fps and memory figures, got %+v", stats)
	}
}

func TestNewProfilerDefaultsInterval(t *testing.T) {
	p := NewProfiler(0)
	if p.updateInterval != time.Second {
		t.Errorf("expected 1s interval, got %v", p.updateInterval)
	}
}
