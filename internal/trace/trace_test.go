package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestLevelShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopeDriver, true},
		{LevelPhase, ScopePhase, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
		{Level(42), ScopeDriver, false},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tt.level, tt.scope, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "debug"} {
		l, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if l.String() != s {
			t.Errorf("round trip %q -> %s", s, l)
		}
	}
	if l, err := ParseLevel(" Phase "); err != nil || l != LevelPhase {
		t.Errorf("ParseLevel is case-insensitive: got %v, %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestParseMode(t *testing.T) {
	tests := map[string]StorageMode{"": ModeStream, "stream": ModeStream, "RING": ModeRing, "both": ModeBoth}
	for in, want := range tests {
		got, err := ParseMode(in)
		if err != nil || got != want {
			t.Errorf("ParseMode(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestRingTracerRecordsSpans(t *testing.T) {
	ring := NewRingTracer(8, LevelPhase)
	ctx := WithTracer(context.Background(), ring)

	ctx, outer := BeginCtx(ctx, ScopeDriver, "diag")
	fileCtx := WithFile(ctx, "src/a.adc")
	_, inner := BeginCtx(fileCtx, ScopePhase, "parse")
	_, skipped := BeginCtx(fileCtx, ScopeFile, "file")
	skipped.End("")
	inner.End("3 decls")
	outer.End("ok")

	events := ring.Snapshot()
	if len(events) != 4 || ring.Len() != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	if events[1].ParentID != outer.ID() {
		t.Errorf("parse span parent = %d, want %d", events[1].ParentID, outer.ID())
	}
	if events[1].File != "src/a.adc" || events[2].File != "src/a.adc" {
		t.Errorf("file not propagated: %+v", events[1:3])
	}
	if events[0].File != "" {
		t.Errorf("outer span must have no file, got %q", events[0].File)
	}
	if events[3].Kind != KindSpanEnd || events[3].Detail != "ok" {
		t.Errorf("unexpected last event %+v", events[3])
	}
	for i := 1; i < len(events); i++ {
		if events[i].Seq <= events[i-1].Seq {
			t.Errorf("sequence not increasing at %d", i)
		}
	}
}

func TestRingTracerWraps(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeNode, name, "", false)
	}
	events := ring.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("unexpected snapshot %+v", events)
	}

	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 2 {
		t.Errorf("dump:\n%s", buf.String())
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	ctx := WithFile(WithTracer(context.Background(), tr), "main.adc")
	_, span := BeginCtx(ctx, ScopePhase, "lex")
	span.End("12 tokens")
	Point(tr, ScopeDriver, "failure", "boom", true)
	if err := tr.Flush(); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, want := range []string{"→ lex [main.adc]", "← lex [main.adc] (12 tokens)", "• failure (boom)"} {
		if !strings.Contains(out, want) {
			t.Errorf("output misses %q:\n%s", want, out)
		}
	}
}

func TestStreamTracerBuffersUntilFlush(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatText)
	Point(tr, ScopeDriver, "x", "", false)
	if buf.Len() != 0 {
		t.Fatalf("expected buffered output, got %q", buf.String())
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "• x") {
		t.Errorf("Close must flush, got %q", buf.String())
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelPhase, FormatNDJSON)
	Begin(tr, ScopeDriver, "parse", 0).End("")
	if err := tr.Flush(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], `"kind":"begin"`) || !strings.Contains(lines[1], `"kind":"end"`) {
		t.Errorf("unexpected ndjson:\n%s", buf.String())
	}
}

func TestErrorPointsPassErrorLevel(t *testing.T) {
	ring := NewRingTracer(4, LevelError)
	Point(ring, ScopeDriver, "quiet", "", false)
	PointCtx(WithTracer(context.Background(), ring), ScopeDriver, "cache_read", "denied", true)
	events := ring.Snapshot()
	if len(events) != 1 || events[0].Name != "cache_read" {
		t.Fatalf("unexpected events %+v", events)
	}
}

func TestNopTracer(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Fatal("empty context must yield Nop")
	}
	span := Begin(Nop, ScopeDriver, "x", 0)
	if span.ID() != 0 || span.End("") != 0 {
		t.Error("nop span must be inert")
	}
}

func TestNewSelectsFormatByExtension(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Output: &buf, OutputPath: "trace.ndjson"})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "x", 0)
	if err := tr.Flush(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(buf.String(), "{") {
		t.Errorf("expected ndjson, got %q", buf.String())
	}

	off, err := New(Config{Level: LevelOff})
	if err != nil || off != Nop {
		t.Errorf("LevelOff must give Nop, got %v, %v", off, err)
	}
}

func TestFindRing(t *testing.T) {
	ring := NewRingTracer(4, LevelDebug)
	var buf bytes.Buffer
	multi := NewMultiTracer(LevelDebug, NewStreamTracer(&buf, LevelDebug, FormatText), ring)

	if got, ok := FindRing(multi); !ok || got != ring {
		t.Fatal("ring inside multi tracer not found")
	}
	if got, ok := FindRing(ring); !ok || got != ring {
		t.Fatal("ring itself not found")
	}
	if _, ok := FindRing(Nop); ok {
		t.Fatal("nop tracer has no ring")
	}
}
