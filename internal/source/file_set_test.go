package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSetVersioning(t *testing.T) {
	fs := NewFileSet()

	id1 := fs.Add("test.adc", []byte("hello world"), 0)
	if id1 != 0 {
		t.Errorf("expected first FileID to be 0, got %d", id1)
	}
	id2 := fs.Add("test.adc", []byte("hello universe"), 0)
	if id2 != 1 {
		t.Errorf("expected second FileID to be 1, got %d", id2)
	}

	latest, ok := fs.GetLatest("test.adc")
	if !ok || latest != id2 {
		t.Fatalf("GetLatest = %d,%v; want %d,true", latest, ok, id2)
	}
	if got := string(fs.Get(id1).Content); got != "hello world" {
		t.Errorf("old version content = %q", got)
	}
	if fs.Len() != 2 {
		t.Errorf("Len = %d, want 2", fs.Len())
	}
}

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("virtual.adc", []byte("line1\nline2\nline3"))
	f := fs.Get(id)

	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag")
	}
	want := []uint32{5, 11}
	if len(f.LineIdx) != len(want) {
		t.Fatalf("LineIdx = %v, want %v", f.LineIdx, want)
	}
	for i := range want {
		if f.LineIdx[i] != want[i] {
			t.Errorf("LineIdx[%d] = %d, want %d", i, f.LineIdx[i], want[i])
		}
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("a.adc", []byte("ab\ncd\n\nef"))

	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{1, 1}},
		{2, LineCol{1, 3}}, // сам '\n' принадлежит первой строке
		{3, LineCol{2, 1}},
		{4, LineCol{2, 2}},
		{6, LineCol{3, 1}},
		{7, LineCol{4, 1}},
		{9, LineCol{4, 3}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("a.adc", []byte("first\nsecond\n")))

	cases := map[uint32]string{0: "", 1: "first", 2: "second", 3: "", 4: ""}
	for line, want := range cases {
		if got := f.GetLine(line); got != want {
			t.Errorf("GetLine(%d) = %q, want %q", line, got, want)
		}
	}
}

func TestNormalize(t *testing.T) {
	in := []byte("\xEF\xBB\xBFint x;\r\nint y;\r\n")
	out, flags := Normalize(in)
	if string(out) != "int x;\nint y;\n" {
		t.Fatalf("Normalize = %q", out)
	}
	if flags&FileHadBOM == 0 || flags&FileNormalizedCRLF == 0 {
		t.Errorf("flags = %b, want BOM and CRLF", flags)
	}
	if flags&FileNormalizedNFC != 0 {
		t.Errorf("ASCII input must not be NFC-rewritten")
	}

	// e + combining acute -> precomposed é
	out, flags = Normalize([]byte("cafe\u0301"))
	if string(out) != "caf\u00e9" {
		t.Errorf("NFC output = %q", out)
	}
	if flags&FileNormalizedNFC == 0 {
		t.Errorf("expected NFC flag")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.adc")
	if err := os.WriteFile(path, []byte("int x = 1;\r\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	fs := NewFileSetWithBase(dir)
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if string(f.Content) != "int x = 1;\n" {
		t.Errorf("content = %q", f.Content)
	}
	if got := f.FormatPath("relative", fs.BaseDir()); got != "main.adc" {
		t.Errorf("relative path = %q", got)
	}
	if got := f.FormatPath("basename", ""); got != "main.adc" {
		t.Errorf("basename = %q", got)
	}

	if _, err := fs.Load(filepath.Join(dir, "missing.adc")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	base := t.TempDir()
	other := t.TempDir()
	target := filepath.Join(other, "x.adc")

	got := RelativePath(target, base)
	if !filepath.IsAbs(filepath.FromSlash(got)) {
		t.Errorf("RelativePath outside base = %q, want absolute", got)
	}
}
