package fuzztests

import (
	"bufio"
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const maxSeedBytes = 64 << 10

// fixedSeeds cover recovery paths that the sample programs never reach.
var fixedSeeds = []string{
	"",
	"func main() -> int { return 0; }\n",
	"int = 3;",
	"func f( { }",
	"struct S { int x; 42; }",
	"\"unterminated",
	"/* never closed",
	"namespace n { namespace m { int x; } }",
	"int[0] a; int[99999999999999999999] b;",
	"for (;;) { do { break; } while (1); }",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range fixedSeeds {
		f.Add([]byte(s))
	}
	repo := filepath.Join("..", "..")
	walkSources(filepath.Join(repo, "testdata"), func(src []byte) { f.Add(clampSeed(src)) })
	// #nosec G304 -- fixed repository location
	if readme, err := os.ReadFile(filepath.Join(repo, "README.md")); err == nil {
		for _, snippet := range readmeSnippets(readme) {
			f.Add(clampSeed(snippet))
		}
	}
}

// walkSources calls add for every *.adc file below root; unreadable entries are skipped.
func walkSources(root string, add func([]byte)) {
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".adc" {
			return nil
		}
		// #nosec G304 -- path comes from the testdata walk
		if src, readErr := os.ReadFile(path); readErr == nil {
			add(src)
		}
		return nil
	})
}

// readmeSnippets returns the bodies of ```adequate fenced blocks, indentation kept.
func readmeSnippets(doc []byte) [][]byte {
	var (
		out     [][]byte
		current []byte
		inBlock bool
	)
	sc := bufio.NewScanner(bytes.NewReader(doc))
	for sc.Scan() {
		line := sc.Text()
		fence := strings.TrimSpace(line)
		switch {
		case !inBlock && strings.HasPrefix(fence, "```adequate"):
			inBlock, current = true, nil
		case inBlock && strings.HasPrefix(fence, "```"):
			inBlock = false
			if len(current) > 0 {
				out = append(out, current)
			}
		case inBlock:
			current = append(current, line...)
			current = append(current, '\n')
		}
	}
	return out
}

func clampSeed(src []byte) []byte {
	return bytes.Clone(src[:min(len(src), maxSeedBytes)])
}
