package app

import (
	"strings"
	"testing"
	"time"

	"github.com/dshills/framecore/internal/renderer"
)

func TestMetricsRecordFrame(t *testing.T) {
	m := NewMetrics()

	m.RecordFrame(renderer.FrameStats{Strategy: renderer.StrategyForce, Rects: 1, Changes: 100, Bytes: 400}, 3*time.Millisecond)
	m.RecordFrame(renderer.FrameStats{Strategy: renderer.StrategyIncremental, Rects: 2, Changes: 5, Bytes: 40}, time.Millisecond)
	m.RecordFrame(renderer.FrameStats{Strategy: renderer.StrategyIdle}, 2*time.Millisecond)
	m.RecordFailure()

	s := m.Snapshot()
	if s.FrameCount != 3 || s.FailedFrames != 1 {
		t.Errorf("counts = %d/%d, want 3/1", s.FrameCount, s.FailedFrames)
	}
	if s.Rects != 3 || s.Changes != 105 || s.Bytes != 440 {
		t.Errorf("totals = %d/%d/%d", s.Rects, s.Changes, s.Bytes)
	}
	if s.Frames(renderer.StrategyForce) != 1 || s.Frames(renderer.StrategyIdle) != 1 || s.Frames(renderer.StrategyAnimation) != 0 {
		t.Errorf("by strategy = %v", s.ByStrategy)
	}
	if s.MinFrameTimeNs != int64(time.Millisecond) || s.MaxFrameTimeNs != int64(3*time.Millisecond) {
		t.Errorf("min/max = %d/%d", s.MinFrameTimeNs, s.MaxFrameTimeNs)
	}
	if s.AvgFrameTimeNs != int64(2*time.Millisecond) {
		t.Errorf("avg = %d", s.AvgFrameTimeNs)
	}
	if s.AvgFPS() != 500 {
		t.Errorf("AvgFPS = %v, want 500", s.AvgFPS())
	}
}

func TestMetricsEmptySnapshot(t *testing.T) {
	s := NewMetrics().Snapshot()
	if s.MinFrameTimeNs != 0 || s.AvgFPS() != 0 || s.BytesPerFrame() != 0 {
		t.Errorf("empty snapshot = %+v", s)
	}
	if s.Frames(renderer.Strategy(99)) != 0 {
		t.Error("unknown strategy should count zero")
	}
}

func TestMetricsWriteTo(t *testing.T) {
	m := NewMetrics()
	m.RecordFrame(renderer.FrameStats{Strategy: renderer.StrategyForce, Bytes: 10}, time.Millisecond)

	var sb strings.Builder
	if _, err := m.Snapshot().WriteTo(&sb); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"frames      1", "force=1", "bytes       10"} {
		if !strings.Contains(sb.String(), want) {
			t.Errorf("report missing %q:\n%s", want, sb.String())
		}
	}
}
