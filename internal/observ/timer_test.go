package observ

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

func fakeClock(step time.Duration) func() time.Time {
	var mu sync.Mutex
	now := time.Unix(0, 0)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	timer := NewTimer()
	timer.now = fakeClock(time.Millisecond)

	idx := timer.Begin("parse")
	timer.End(idx, "main.lua")
	err := timer.Track("luacheck", func() error { return errors.New("not found") })
	if err == nil {
		t.Fatal("Track must return the error of fn")
	}
	timer.End(42, "ignored")

	report := timer.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("expected 2 phases, got %+v", report.Phases)
	}
	if report.Phases[0].DurationMS != 1 || report.Phases[0].Note != "main.lua" {
		t.Fatalf("unexpected phase %+v", report.Phases[0])
	}
	if report.Phases[1].Note != "error: not found" {
		t.Fatalf("unexpected note %q", report.Phases[1].Note)
	}
	if report.TotalMS != 2 {
		t.Fatalf("unexpected total %v", report.TotalMS)
	}

	summary := timer.Summary()
	if !strings.Contains(summary, "parse") || !strings.Contains(summary, "// main.lua") || !strings.Contains(summary, "total") {
		t.Fatalf("unexpected summary:\n%s", summary)
	}
}

func TestTimerConcurrentAndJSON(t *testing.T) {
	timer := NewTimer()
	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			timer.End(timer.Begin("file"), "")
		}()
	}
	wg.Wait()

	var buf bytes.Buffer
	if err := timer.Write(&buf, true); err != nil {
		t.Fatalf("write: %v", err)
	}
	var report Report
	if err := json.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(report.Phases) != 16 {
		t.Fatalf("expected 16 phases, got %d", len(report.Phases))
	}
}

func TestNilTimer(t *testing.T) {
	var timer *Timer
	timer.End(timer.Begin("x"), "")
	if len(timer.Report().Phases) != 0 {
		t.Fatal("nil timer must report nothing")
	}
}
