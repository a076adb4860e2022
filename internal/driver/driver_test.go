package driver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/observ"
	"github.com/rwiggins1/adequate-c/internal/token"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestParseSource(t *testing.T) {
	res := ParseSource("ok.adc", "func main() -> int { return 0; }")
	if _, ok := res.Root(); !ok {
		t.Fatalf("expected a root, got diagnostics %v", res.Bag.Items())
	}

	res = ParseSource("bad.adc", "int = 3;")
	if _, ok := res.Root(); ok {
		t.Fatal("root must be absent for a file with errors")
	}
	if res.Bag.ErrorCount() != 1 {
		t.Fatalf("expected 1 error, got %d", res.Bag.ErrorCount())
	}
	if d := res.Bag.Items()[0]; d.Filename != "bad.adc" || d.Code != diag.SynExpectIdentifier {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}

func TestParseSourceDeepNesting(t *testing.T) {
	const n = 200_000
	src := "int x = " + strings.Repeat("(", n) + "1" + strings.Repeat(")", n) + ";\nint y = 2;\n"
	res := ParseSource("deep.adc", src)
	if _, ok := res.Root(); ok {
		t.Fatal("root must be absent for a file with errors")
	}
	if res.Bag.Len() != 1 {
		t.Fatalf("expected 1 diagnostic, got %v", res.Bag.Items())
	}
	if d := res.Bag.Items()[0]; d.Code != diag.SynTooDeep || d.Line != 1 {
		t.Errorf("unexpected diagnostic %+v", d)
	}
}

func TestParseSourceCountsErrorsPastLimit(t *testing.T) {
	src := strings.Repeat("int = 1;\n", 5)
	res := ParseSourceWith(context.Background(), "many.adc", src, Options{MaxDiagnostics: 2})
	if res.Bag.Len() != 2 {
		t.Fatalf("recorded %d diagnostics, want 2", res.Bag.Len())
	}
	if res.Bag.ErrorCount() != 5 {
		t.Errorf("ErrorCount = %d, want 5", res.Bag.ErrorCount())
	}
	want := "Compilation failed with 5 error(s) (3 not shown)"
	if got := diag.Summary(res.Bag); got != want {
		t.Errorf("Summary = %q, want %q", got, want)
	}
}

func TestDiagnoseCacheKeepsDroppedCounts(t *testing.T) {
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "many.adc")
	writeFile(t, path, strings.Repeat("int = 1;\n", 4))
	opts := Options{Cache: cache, MaxDiagnostics: 1}

	first, err := Diagnose(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Diagnose(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached {
		t.Fatal("second run should come from the cache")
	}
	if first.Bag.ErrorCount() != 4 || second.Bag.ErrorCount() != 4 {
		t.Errorf("errors = %d fresh, %d cached; want 4", first.Bag.ErrorCount(), second.Bag.ErrorCount())
	}
	if diag.Summary(first.Bag) != diag.Summary(second.Bag) {
		t.Errorf("summary differs: %q vs %q", diag.Summary(first.Bag), diag.Summary(second.Bag))
	}
}

func TestParseSourceNormalizesCRLF(t *testing.T) {
	res := ParseSource("crlf.adc", "int x;\r\nint y;\r\n")
	if _, ok := res.Root(); !ok {
		t.Fatalf("unexpected diagnostics %v", res.Bag.Items())
	}
	if string(res.File.Content) != "int x;\nint y;\n" {
		t.Errorf("content not normalised: %q", res.File.Content)
	}
}

func TestParseFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.adc")
	writeFile(t, path, "struct P { int x; }\n")

	timer := observ.NewTimer()
	res, err := Parse(context.Background(), path, Options{Timer: timer})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := res.Root(); !ok {
		t.Fatalf("unexpected diagnostics %v", res.Bag.Items())
	}

	var names []string
	for _, p := range timer.Phases() {
		names = append(names, p.Name)
	}
	if !slices.Equal(names, []string{"load", "parse"}) {
		t.Errorf("phases = %v", names)
	}

	if _, err := Parse(context.Background(), filepath.Join(dir, "missing.adc"), Options{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestTokenize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "t.adc")
	writeFile(t, path, "int x = \"open")

	res, err := Tokenize(context.Background(), path, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if last := res.Tokens[len(res.Tokens)-1]; last.Kind != token.EOF {
		t.Errorf("last token %v, want EOF", last.Kind)
	}
	if res.Bag.ErrorCount() != 1 || res.Bag.Items()[0].Code != diag.LexUnterminatedString {
		t.Errorf("expected one unterminated string error, got %v", res.Bag.Items())
	}
}

func TestParseDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.adc"), "int = 1;\n")
	writeFile(t, filepath.Join(dir, "a.adc"), "int a;\n")
	writeFile(t, filepath.Join(dir, "sub", "c.adc"), "func f() { }\n")
	writeFile(t, filepath.Join(dir, ".hidden", "d.adc"), "garbage(\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not source")

	var mu sync.Mutex
	events := map[string][]Status{}
	sink := SinkFunc(func(ev Event) {
		mu.Lock()
		defer mu.Unlock()
		events[ev.File] = append(events[ev.File], ev.Status)
	})

	fs, results, err := ParseDir(context.Background(), dir, Options{Jobs: 2, Progress: sink})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		filepath.Join(dir, "a.adc"),
		filepath.Join(dir, "b.adc"),
		filepath.Join(dir, "sub", "c.adc"),
	}
	if len(results) != len(want) {
		t.Fatalf("got %d results, want %d", len(results), len(want))
	}
	for i, r := range results {
		if r.Path != want[i] {
			t.Errorf("result %d: path %s, want %s", i, r.Path, want[i])
		}
		if fs.Get(r.FileID).Path != filepath.ToSlash(filepath.Clean(r.Path)) {
			t.Errorf("result %d: file id points to %s", i, fs.Get(r.FileID).Path)
		}
	}
	if results[0].Bag.HasErrors() || !results[1].Bag.HasErrors() || results[2].Bag.HasErrors() {
		t.Errorf("unexpected error distribution: %d %d %d",
			results[0].Bag.ErrorCount(), results[1].Bag.ErrorCount(), results[2].Bag.ErrorCount())
	}

	merged := MergeBags(results)
	if merged.ErrorCount() != 1 {
		t.Errorf("merged errors = %d", merged.ErrorCount())
	}

	if got := events[want[1]]; len(got) == 0 || got[len(got)-1] != StatusError {
		t.Errorf("events for b.adc: %v", got)
	}
	if got := events[want[0]]; len(got) == 0 || got[len(got)-1] != StatusDone {
		t.Errorf("events for a.adc: %v", got)
	}
}

func TestParseDirEmpty(t *testing.T) {
	_, results, err := ParseDir(context.Background(), t.TempDir(), Options{})
	if err != nil || results != nil {
		t.Fatalf("results=%v err=%v", results, err)
	}
}

func TestDiagnoseCache(t *testing.T) {
	cache, err := NewDiskCache(filepath.Join(t.TempDir(), "cache"))
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "main.adc")
	writeFile(t, path, "int x = 1\nint y;\n")
	opts := Options{Cache: cache}

	first, err := Diagnose(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.Cached || first.Bag.ErrorCount() == 0 {
		t.Fatalf("first run: cached=%v errors=%d", first.Cached, first.Bag.ErrorCount())
	}

	second, err := Diagnose(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.Cached || second.Parse != nil {
		t.Fatal("second run should come from the cache")
	}
	a, b := first.Bag.Items(), second.Bag.Items()
	if len(a) != len(b) {
		t.Fatalf("cached %d diagnostics, want %d", len(b), len(a))
	}
	for i := range a {
		if a[i].Code != b[i].Code || a[i].Message != b[i].Message || a[i].Primary != b[i].Primary ||
			a[i].Line != b[i].Line || a[i].Column != b[i].Column || a[i].Filename != b[i].Filename {
			t.Errorf("diagnostic %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}

	writeFile(t, path, "int x = 1;\nint y;\n")
	third, err := Diagnose(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.Cached || third.Bag.Len() != 0 {
		t.Errorf("changed file: cached=%v diagnostics=%v", third.Cached, third.Bag.Items())
	}

	if err := cache.DropAll(); err != nil {
		t.Fatal(err)
	}
	fourth, err := Diagnose(context.Background(), path, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.Cached {
		t.Error("cache must be empty after DropAll")
	}
}

func TestNilCacheIsNoop(t *testing.T) {
	var c *DiskCache
	var payload DiskPayload
	if err := c.Put(CacheKey(ParseSource("x.adc", "").File, 0), &payload); err != nil {
		t.Fatal(err)
	}
	if hit, err := c.Get(CacheKey(ParseSource("x.adc", "").File, 0), &payload); hit || err != nil {
		t.Fatalf("hit=%v err=%v", hit, err)
	}
}

func TestCacheKeyDependsOnLimit(t *testing.T) {
	file := ParseSource("x.adc", "int x;").File
	if CacheKey(file, 0) == CacheKey(file, 10) {
		t.Error("different limits must give different keys")
	}
	if CacheKey(file, 5) != CacheKey(file, 5) {
		t.Error("key must be deterministic")
	}
}

func TestWatcher(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.adc"), "int a;\n")

	w, err := NewWatcher([]string{dir})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = w.Close() }()
	w.Debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	batches := make(chan []string, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(paths []string) { batches <- paths })
	}()

	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")
	writeFile(t, filepath.Join(dir, "a.adc"), "int b;\n")

	absDir, err := filepath.Abs(dir)
	if err != nil {
		t.Fatal(err)
	}
	select {
	case batch := <-batches:
		if !slices.Contains(batch, filepath.Join(absDir, "a.adc")) {
			t.Errorf("batch %v misses a.adc", batch)
		}
		for _, p := range batch {
			if filepath.Ext(p) != SourceExt {
				t.Errorf("unexpected path in batch: %s", p)
			}
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}

func TestWatcherMissingPath(t *testing.T) {
	if _, err := NewWatcher([]string{filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Fatal("expected error for a missing path")
	}
}
