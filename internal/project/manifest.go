package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
)

// Manifest is the parsed adequate.toml.
type Manifest struct {
	Path        string // абсолютный путь к adequate.toml; пусто для Default
	Package     PackageSection
	Build       BuildSection
	Diagnostics DiagnosticsSection
}

type PackageSection struct {
	Name string `toml:"name"`
}

type BuildSection struct {
	// Sources: каталог с .adc файлами относительно корня проекта.
	Sources string `toml:"sources"`
}

type DiagnosticsSection struct {
	Max    int    `toml:"max"`    // 0 = без ограничения
	Color  string `toml:"color"`  // auto|on|off
	Format string `toml:"format"` // plain|pretty|json
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing in a manifest.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrPackageNameMissing indicates that [package].name is missing or empty.
	ErrPackageNameMissing = errors.New("missing [package].name")
)

type manifestFile struct {
	Package     PackageSection     `toml:"package"`
	Build       BuildSection       `toml:"build"`
	Diagnostics DiagnosticsSection `toml:"diagnostics"`
}

// Default returns the manifest written by `adequate init`.
func Default(name string) Manifest {
	return Manifest{
		Package: PackageSection{Name: name},
		Build:   BuildSection{Sources: "src"},
		Diagnostics: DiagnosticsSection{
			Max:    100,
			Color:  "auto",
			Format: "pretty",
		},
	}
}

// LoadManifest parses adequate.toml. [package].name is required; other sections
// fall back to Default values when absent.
func LoadManifest(path string) (Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Manifest{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	name := strings.TrimSpace(cfg.Package.Name)
	if !meta.IsDefined("package", "name") || name == "" {
		return Manifest{}, fmt.Errorf("%s: %w", path, ErrPackageNameMissing)
	}
	if !IsValidPackageName(name) {
		return Manifest{}, fmt.Errorf("%s: invalid package name %q", path, name)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Manifest{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	m := Default(name)
	if abs, err := filepath.Abs(path); err == nil {
		m.Path = abs
	} else {
		m.Path = path
	}
	if meta.IsDefined("build", "sources") {
		m.Build.Sources = strings.TrimSpace(cfg.Build.Sources)
	}
	if meta.IsDefined("diagnostics", "max") {
		if cfg.Diagnostics.Max < 0 {
			return Manifest{}, fmt.Errorf("%s: [diagnostics].max must be >= 0, got %d", path, cfg.Diagnostics.Max)
		}
		m.Diagnostics.Max = cfg.Diagnostics.Max
	}
	if meta.IsDefined("diagnostics", "color") {
		m.Diagnostics.Color = cfg.Diagnostics.Color
		if !oneOf(m.Diagnostics.Color, "auto", "on", "off") {
			return Manifest{}, fmt.Errorf("%s: [diagnostics].color must be auto|on|off, got %q", path, m.Diagnostics.Color)
		}
	}
	if meta.IsDefined("diagnostics", "format") {
		m.Diagnostics.Format = cfg.Diagnostics.Format
		if !oneOf(m.Diagnostics.Format, "plain", "pretty", "short", "json") {
			return Manifest{}, fmt.Errorf("%s: [diagnostics].format must be plain|pretty|short|json, got %q", path, m.Diagnostics.Format)
		}
	}
	return m, nil
}

// Load finds adequate.toml upwards from startDir and parses it.
// ok == false when no manifest exists.
func Load(startDir string) (Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return Manifest{}, ok, err
	}
	m, err := LoadManifest(path)
	return m, true, err
}

// Root returns the project directory of a loaded manifest.
func (m Manifest) Root() string {
	if m.Path == "" {
		return ""
	}
	return filepath.Dir(m.Path)
}

// SourcesDir resolves [build].sources against the project root and makes sure
// it stays inside the project and is a directory.
func (m Manifest) SourcesDir() (string, error) {
	root := m.Root()
	if root == "" {
		return "", errors.New("manifest has no location")
	}
	rel := strings.TrimSpace(m.Build.Sources)
	if rel == "" {
		return root, nil
	}
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("invalid [build].sources %q: must be relative", rel)
	}
	dir := filepath.Join(root, filepath.Clean(filepath.FromSlash(rel)))
	if !pathWithin(root, dir) {
		return "", fmt.Errorf("invalid [build].sources %q: escapes project root", rel)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("invalid [build].sources %q: %w", rel, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("invalid [build].sources %q: not a directory", rel)
	}
	return dir, nil
}

// WriteManifest writes m as dir/adequate.toml. An existing manifest is kept
// unless force is set.
func WriteManifest(dir string, m Manifest, force bool) (string, error) {
	path := filepath.Join(dir, ManifestName)
	if !force {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s already exists", path)
		}
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}
	// #nosec G304 -- path is built from the init directory
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create manifest: %w", err)
	}
	enc := toml.NewEncoder(f)
	if err := enc.Encode(manifestFile{Package: m.Package, Build: m.Build, Diagnostics: m.Diagnostics}); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}

// IsValidPackageName: ASCII, начинается с буквы или '_', далее буквы, цифры, '_' и '-'.
func IsValidPackageName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		if r > unicode.MaxASCII {
			return false
		}
		if i == 0 && r != '_' && !unicode.IsLetter(r) {
			return false
		}
		if i > 0 && r != '_' && r != '-' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func oneOf(s string, options ...string) bool {
	return slices.Contains(options, s)
}

func pathWithin(root, path string) bool {
	if root == "" || path == "" {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
