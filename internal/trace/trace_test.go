package trace_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"lunar/internal/trace"
)

func TestLevelFiltersScopes(t *testing.T) {
	cases := []struct {
		level trace.Level
		scope trace.Scope
		want  bool
	}{
		{trace.LevelOff, trace.ScopeDriver, false},
		{trace.LevelError, trace.ScopeDriver, false},
		{trace.LevelPhase, trace.ScopeRequest, true},
		{trace.LevelPhase, trace.ScopePass, true},
		{trace.LevelPhase, trace.ScopeFile, false},
		{trace.LevelDetail, trace.ScopeFile, true},
		{trace.LevelDetail, trace.ScopeNode, false},
		{trace.LevelDebug, trace.ScopeNode, true},
	}
	for _, tc := range cases {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestParseFlags(t *testing.T) {
	lvl, err := trace.ParseLevel("DETAIL")
	if err != nil || lvl != trace.LevelDetail {
		t.Fatalf("ParseLevel(DETAIL) = %v, %v", lvl, err)
	}
	if _, err := trace.ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
	mode, err := trace.ParseMode("Ring")
	if err != nil || mode != trace.ModeRing {
		t.Fatalf("ParseMode(Ring) = %v, %v", mode, err)
	}
	if mode, _ := trace.ParseMode(""); mode != trace.ModeStream {
		t.Fatalf("empty mode = %v", mode)
	}
	if _, err := trace.ParseMode("tape"); err == nil {
		t.Fatalf("expected error for unknown mode")
	}
}

func TestStartNestsSpans(t *testing.T) {
	ring := trace.NewRingTracer(8, trace.LevelPhase)
	ctx := trace.WithTracer(context.Background(), ring)

	ctx, root := trace.Start(ctx, trace.ScopeRequest, "textDocument/completion")
	_, child := trace.Start(ctx, trace.ScopePass, "analyze")
	child.WithExtra("file", "a.lua").End("")
	_, filtered := trace.Start(ctx, trace.ScopeFile, "index")
	filtered.End("")
	root.End("ok")

	events := ring.Snapshot()
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	if events[1].ParentID != root.ID() {
		t.Fatalf("child parent = %d, want %d", events[1].ParentID, root.ID())
	}
	if events[2].Extra["file"] != "a.lua" {
		t.Fatalf("extra not carried on end event: %v", events[2].Extra)
	}
	if events[3].Kind != trace.KindSpanEnd || events[3].Detail != "ok" {
		t.Fatalf("unexpected last event %+v", events[3])
	}
	if filtered.ID() != 0 {
		t.Fatalf("filtered span should be inert")
	}
}

func TestStartWithoutTracer(t *testing.T) {
	ctx, span := trace.Start(context.Background(), trace.ScopeDriver, "x")
	if span.End("") != 0 || trace.ParentID(ctx) != 0 {
		t.Fatalf("nop span should be inert")
	}
}

func TestRingWrapsAround(t *testing.T) {
	ring := trace.NewRingTracer(2, trace.LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		trace.Point(ring, trace.ScopeDriver, name, "")
	}
	events := ring.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("unexpected snapshot %+v", events)
	}
	if ring.Dropped() != 1 {
		t.Fatalf("dropped = %d, want 1", ring.Dropped())
	}
}

func TestStreamTextFormat(t *testing.T) {
	var buf bytes.Buffer
	st := trace.NewStreamTracer(&buf, trace.LevelPhase, trace.FormatText)
	span := trace.Begin(st, trace.ScopePass, "format", 0)
	span.WithExtra("z", "1").WithExtra("a", "2").End("done")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	if !strings.Contains(lines[0], "→ format") {
		t.Fatalf("begin line %q", lines[0])
	}
	if !strings.HasSuffix(lines[1], "← format (done) {a=2, z=1}") {
		t.Fatalf("end line %q", lines[1])
	}
}

func TestBothModeFansOut(t *testing.T) {
	var buf bytes.Buffer
	tr, err := trace.New(trace.Config{Level: trace.LevelPhase, Mode: trace.ModeBoth, Output: &buf, Format: trace.FormatNDJSON})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	trace.Point(tr, trace.ScopeDriver, "start", "")
	ring := trace.RingOf(tr)
	if ring == nil {
		t.Fatalf("both mode should keep a ring, got %T", tr)
	}
	if got := len(ring.Snapshot()); got != 1 {
		t.Fatalf("ring holds %d events", got)
	}
	if !strings.Contains(buf.String(), `"name":"start"`) {
		t.Fatalf("stream output %q", buf.String())
	}
}

func TestRingModeWritesOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ndjson")
	tr, err := trace.New(trace.Config{Level: trace.LevelPhase, Mode: trace.ModeRing, OutputPath: path, RingSize: 2})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for _, name := range []string{"one", "two", "three"} {
		trace.Point(tr, trace.ScopePass, name, "")
	}
	if data, _ := os.ReadFile(path); len(data) != 0 {
		t.Fatalf("ring wrote before Close: %q", data)
	}
	if err := tr.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], `"name":"two"`) || !strings.Contains(lines[1], `"name":"three"`) {
		t.Fatalf("unexpected dump %q", data)
	}
}

func TestHeartbeat(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelError)
	stop := trace.StartHeartbeat(context.Background(), ring, time.Millisecond)
	deadline := time.Now().Add(2 * time.Second)
	for len(ring.Snapshot()) < 2 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	stop()
	stop()
	events := ring.Snapshot()
	if len(events) < 2 {
		t.Fatalf("got %d heartbeats", len(events))
	}
	if events[0].Kind != trace.KindHeartbeat || events[0].Detail != "#1" {
		t.Fatalf("unexpected heartbeat %+v", events[0])
	}
	n := len(ring.Snapshot())
	time.Sleep(5 * time.Millisecond)
	if len(ring.Snapshot()) != n {
		t.Fatalf("heartbeat kept running after stop")
	}

	if stop := trace.StartHeartbeat(context.Background(), trace.Nop, time.Millisecond); stop == nil {
		t.Fatalf("disabled heartbeat should still return a stop func")
	}
}

func TestNewOffIsNop(t *testing.T) {
	tr, err := trace.New(trace.Config{Level: trace.LevelOff})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if tr.Enabled() {
		t.Fatalf("off tracer should be disabled")
	}
	if trace.RingOf(tr) != nil {
		t.Fatalf("nop has no ring")
	}
}
