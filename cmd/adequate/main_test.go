package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rwiggins1/adequate-c/internal/version"
)

func runCLI(t *testing.T, args ...string) (code int, stdout, stderr string) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var out, errOut bytes.Buffer
	code = run(context.Background(), args, &out, &errOut)
	return code, out.String(), errOut.String()
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionShort(t *testing.T) {
	code, out, _ := runCLI(t, "version", "--short")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if out != version.Version+"\n" {
		t.Errorf("got %q", out)
	}
}

func TestTokenizeJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.adc", "int x = 1;\n")
	code, out, errOut := runCLI(t, "tokenize", "--format", "json", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "EOF") {
		t.Errorf("token stream has no EOF: %s", out)
	}
}

func TestTokenizeUnknownFormat(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.adc", "int x;\n")
	code, _, errOut := runCLI(t, "tokenize", "--format", "xml", path)
	if code != 1 || !strings.Contains(errOut, "unknown format: xml") {
		t.Errorf("code %d, stderr %q", code, errOut)
	}
}

func TestParseTree(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.adc", "int x = 1 + 2;\n")
	code, out, errOut := runCLI(t, "parse", "--format", "tree", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "Binary +") {
		t.Errorf("tree output:\n%s", out)
	}
}

func TestParseDirJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.adc", "int a;\n")
	writeFile(t, dir, "b.adc", "int b;\n")
	code, out, errOut := runCLI(t, "parse", "--format", "json", dir)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	var files []struct {
		Path string          `json:"path"`
		AST  json.RawMessage `json:"ast"`
	}
	if err := json.Unmarshal([]byte(out), &files); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if len(files) != 2 || !strings.HasSuffix(files[0].Path, "a.adc") || !strings.HasSuffix(files[1].Path, "b.adc") {
		t.Errorf("unexpected files: %+v", files)
	}
}

func TestDiagPlainErrors(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.adc", "int = 3;")
	code, out, _ := runCLI(t, "diag", "--format", "plain", path)
	if code != 1 {
		t.Fatalf("exit code %d, want 1", code)
	}
	want := filepath.ToSlash(path) + ":1:5: error: expected identifier, got '='\n\nCompilation failed with 1 error(s)\n"
	if out != want {
		t.Errorf("got:\n%q\nwant:\n%q", out, want)
	}
}

func TestDiagCleanDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.adc", "func main() -> int { return 0; }\n")
	writeFile(t, dir, "nested/b.adc", "int counter = 0;\n")
	code, out, errOut := runCLI(t, "diag", "--ui", "off", dir)
	if code != 0 {
		t.Fatalf("exit code %d, stdout %q, stderr %q", code, out, errOut)
	}
	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}
}

func TestDiagJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.adc", "int = 3;\nint ok = 1 + ;\n")
	code, out, _ := runCLI(t, "diag", "--format", "json", path)
	if code != 1 {
		t.Fatalf("exit code %d", code)
	}
	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("invalid json: %v\n%s", err, out)
	}
	if !strings.Contains(out, "SYN2007") {
		t.Errorf("missing SYN2007 in %s", out)
	}
}

func TestDiagCache(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	path := writeFile(t, t.TempDir(), "main.adc", "int = 3;")
	_, first, _ := runCLI(t, "diag", "--format", "plain", "--cache", path)
	code, second, _ := runCLI(t, "diag", "--format", "plain", "--cache", path)
	if code != 1 {
		t.Fatalf("exit code %d", code)
	}
	if first != second {
		t.Errorf("cached output differs:\n%q\n%q", first, second)
	}
}

func TestInitAndDiagProject(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "demo")
	code, out, errOut := runCLI(t, "init", dir)
	if code != 0 {
		t.Fatalf("init: exit code %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, "adequate.toml") || !strings.Contains(out, "src/main.adc") {
		t.Errorf("init output %q", out)
	}

	code, _, errOut = runCLI(t, "init", dir)
	if code != 1 || !strings.Contains(errOut, "already exists") {
		t.Errorf("second init: code %d, stderr %q", code, errOut)
	}

	t.Chdir(dir)
	code, out, errOut = runCLI(t, "diag", "--ui", "off")
	if code != 0 {
		t.Fatalf("diag in project: code %d, stdout %q, stderr %q", code, out, errOut)
	}
}

func TestInitInvalidName(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "1bad name")
	code, out, errOut := runCLI(t, "init", dir)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	if !strings.Contains(out, defaultProjectName) {
		t.Errorf("expected fallback name in %q", out)
	}
}

func TestDiagWithoutTarget(t *testing.T) {
	t.Chdir(t.TempDir())
	code, _, errOut := runCLI(t, "diag")
	if code != 1 || !strings.Contains(errOut, "no input") {
		t.Errorf("code %d, stderr %q", code, errOut)
	}
}

func TestInvalidColor(t *testing.T) {
	code, _, errOut := runCLI(t, "--color", "rainbow", "version")
	if code != 1 || !strings.Contains(errOut, "invalid --color") {
		t.Errorf("code %d, stderr %q", code, errOut)
	}
}

func TestTraceFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.adc", "int x = 1;\n")
	tracePath := filepath.Join(dir, "trace.log")
	code, _, errOut := runCLI(t, "--trace", tracePath, "parse", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	data, err := os.ReadFile(tracePath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "parse") {
		t.Errorf("trace has no parse span:\n%s", data)
	}
}

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "ON": uiModeOn, " off ": uiModeOff} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("maybe"); err == nil {
		t.Error("expected error")
	}
	var buf bytes.Buffer
	if shouldUseTUI(uiModeAuto, &buf) {
		t.Error("buffer is not a terminal")
	}
}

func TestProfileFlags(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.adc", "int x = 1;\n")
	cpu := filepath.Join(dir, "cpu.out")
	mem := filepath.Join(dir, "mem.out")
	code, _, errOut := runCLI(t, "--cpu-profile", cpu, "--mem-profile", mem, "diag", path)
	if code != 0 {
		t.Fatalf("exit code %d, stderr %q", code, errOut)
	}
	for _, p := range []string{cpu, mem} {
		if _, err := os.Stat(p); err != nil {
			t.Errorf("profile not written: %v", err)
		}
	}
}

func TestDiagShort(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.adc", "int = 3;")
	writeFile(t, dir, "a.adc", "int ok;\n")
	t.Chdir(dir)
	code, out, _ := runCLI(t, "diag", "--format", "short", "--ui", "off", "b.adc")
	if code != 1 {
		t.Fatalf("exit code %d", code)
	}
	if want := "error SYN2007 b.adc:1:5 expected identifier, got '='\n"; out != want {
		t.Errorf("got %q, want %q", out, want)
	}
}
