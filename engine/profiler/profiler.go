package profiler

import (
	"runtime"
	"time"

	"github.com/Carmen-Shannon/estomania/pkg/logger"
	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
)

// Stats is one reporting interval of frame and memory figures.
type Stats struct {
	FPS        float64
	Heap       uint64
	AllocRate  uint64 // bytes per second
	GCCount    uint32
	LastPause  time.Duration
	MaxPause   time.Duration
	SystemHeap uint64
}

// Profiler tracks frame rate and memory statistics and logs them at a fixed interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64
	last           Stats
	log            *logrus.Entry
}

// NewProfiler creates a Profiler that reports every interval. Intervals <= 0 default to one second.
//
// Parameters:
//   - interval: time between reports
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
		log:            logger.Component("profiler"),
	}
}

// Tick should be called once per frame. When the interval has elapsed it samples memory
// statistics and logs FPS, heap, allocation rate, GC pauses and total memory.
//
// Returns:
//   - bool: true if stats were logged this tick
func (p *Profiler) Tick() bool {
	p.frameCount++
	now := time.Now()
	elapsed := now.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	stats := Stats{
		FPS:        float64(p.frameCount) / elapsed.Seconds(),
		Heap:       p.memStats.Alloc,
		AllocRate:  uint64(float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / elapsed.Seconds()),
		GCCount:    p.memStats.NumGC,
		SystemHeap: p.memStats.Sys,
	}

	// PauseNs is a circular buffer of the last 256 pauses.
	if gc := stats.GCCount; gc > 0 {
		stats.LastPause = time.Duration(p.memStats.PauseNs[(gc-1)%256])
		start := p.lastGCCount
		if gc-start > 256 {
			start = gc - 256
		}
		for i := start; i < gc; i++ {
			if pause := time.Duration(p.memStats.PauseNs[i%256]); pause > stats.MaxPause {
				stats.MaxPause = pause
			}
		}
	}

	p.log.WithFields(logrus.Fields{
		"fps":        humanize.FtoaWithDigits(stats.FPS, 2),
		"heap":       humanize.Bytes(stats.Heap),
		"alloc_rate": humanize.Bytes(stats.AllocRate) + "/s",
		"gc":         humanize.Comma(int64(stats.GCCount)),
		"gc_last":    stats.LastPause.String(),
		"gc_max":     stats.MaxPause.String(),
		"sys":        humanize.Bytes(stats.SystemHeap),
	}).Info("frame stats")

	p.frameCount = 0
	p.lastTime = now
	p.lastGCCount = stats.GCCount
	p.lastTotalAlloc = p.memStats.TotalAlloc
	p.last = stats
	return true
}

// Last returns the most recently reported stats.
func (p *Profiler) Last() Stats {
	return p.last
}
