package app

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/dshills/framecore/internal/renderer"
)

const strategies = int(renderer.StrategyForce) + 1

// Metrics accumulates frame statistics. Recording happens on the frame loop;
// Snapshot may be called from any goroutine.
type Metrics struct {
	frameCount   atomic.Uint64
	frameTotalNs atomic.Int64
	frameMinNs   atomic.Int64
	frameMaxNs   atomic.Int64
	lastFrameNs  atomic.Int64
	failed       atomic.Uint64

	byStrategy [strategies]atomic.Uint64
	rects      atomic.Uint64
	changes    atomic.Uint64
	bytes      atomic.Uint64

	startTime time.Time
}

// NewMetrics creates a new metrics tracker.
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),
	}
	// Initialize min to max int64 so first frame will be smaller
	m.frameMinNs.Store(1<<63 - 1)
	return m
}

// RecordFrame records one frame and how long it took.
func (m *Metrics) RecordFrame(s renderer.FrameStats, duration time.Duration) {
	ns := duration.Nanoseconds()

	m.frameCount.Add(1)
	m.frameTotalNs.Add(ns)
	m.lastFrameNs.Store(ns)

	for {
		old := m.frameMinNs.Load()
		if ns >= old || m.frameMinNs.CompareAndSwap(old, ns) {
			break
		}
	}
	for {
		old := m.frameMaxNs.Load()
		if ns <= old || m.frameMaxNs.CompareAndSwap(old, ns) {
			break
		}
	}

	if int(s.Strategy) >= 0 && int(s.Strategy) < strategies {
		m.byStrategy[s.Strategy].Add(1)
	}
	m.rects.Add(uint64(s.Rects))
	m.changes.Add(uint64(s.Changes))
	m.bytes.Add(uint64(s.Bytes))
}

// RecordFailure records a frame that returned an error.
func (m *Metrics) RecordFailure() {
	m.failed.Add(1)
}

// Snapshot returns a snapshot of current metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	frameCount := m.frameCount.Load()

	var avgFrameNs int64
	if frameCount > 0 {
		avgFrameNs = m.frameTotalNs.Load() / int64(frameCount)
	}
	minFrameNs := m.frameMinNs.Load()
	if minFrameNs == 1<<63-1 {
		minFrameNs = 0
	}

	s := MetricsSnapshot{
		Uptime:         time.Since(m.startTime),
		FrameCount:     frameCount,
		FailedFrames:   m.failed.Load(),
		AvgFrameTimeNs: avgFrameNs,
		MinFrameTimeNs: minFrameNs,
		MaxFrameTimeNs: m.frameMaxNs.Load(),
		LastFrameNs:    m.lastFrameNs.Load(),
		Rects:          m.rects.Load(),
		Changes:        m.changes.Load(),
		Bytes:          m.bytes.Load(),
	}
	for i := range s.ByStrategy {
		s.ByStrategy[i] = m.byStrategy[i].Load()
	}
	return s
}

// MetricsSnapshot is a point-in-time view of metrics.
type MetricsSnapshot struct {
	Uptime         time.Duration
	FrameCount     uint64
	FailedFrames   uint64
	AvgFrameTimeNs int64
	MinFrameTimeNs int64
	MaxFrameTimeNs int64
	LastFrameNs    int64

	// ByStrategy counts frames indexed by renderer.Strategy.
	ByStrategy [strategies]uint64

	Rects   uint64
	Changes uint64
	Bytes   uint64
}

// Frames returns the number of frames rendered with strategy s.
func (s MetricsSnapshot) Frames(st renderer.Strategy) uint64 {
	if int(st) < 0 || int(st) >= strategies {
		return 0
	}
	return s.ByStrategy[st]
}

// AvgFPS returns the frame rate the pipeline could sustain.
func (s MetricsSnapshot) AvgFPS() float64 {
	if s.AvgFrameTimeNs == 0 {
		return 0
	}
	return 1e9 / float64(s.AvgFrameTimeNs)
}

// BytesPerFrame returns the mean output size.
func (s MetricsSnapshot) BytesPerFrame() float64 {
	if s.FrameCount == 0 {
		return 0
	}
	return float64(s.Bytes) / float64(s.FrameCount)
}

// WriteTo prints a human readable report.
func (s MetricsSnapshot) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintf(w,
		"frames      %d (%d failed)\n"+
			"strategies  force=%d incremental=%d animation=%d idle=%d\n"+
			"rects       %d\n"+
			"changes     %d\n"+
			"bytes       %d (%.1f per frame)\n"+
			"frame time  avg=%s min=%s max=%s (%.0f fps)\n",
		s.FrameCount, s.FailedFrames,
		s.Frames(renderer.StrategyForce), s.Frames(renderer.StrategyIncremental),
		s.Frames(renderer.StrategyAnimation), s.Frames(renderer.StrategyIdle),
		s.Rects,
		s.Changes,
		s.Bytes, s.BytesPerFrame(),
		time.Duration(s.AvgFrameTimeNs), time.Duration(s.MinFrameTimeNs), time.Duration(s.MaxFrameTimeNs), s.AvgFPS(),
	)
	return int64(n), err
}
