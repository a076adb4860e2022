package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/diagfmt"
	"github.com/rwiggins1/adequate-c/internal/driver"
	"github.com/rwiggins1/adequate-c/internal/observ"
	"github.com/rwiggins1/adequate-c/internal/prof"
	"github.com/rwiggins1/adequate-c/internal/project"
	"github.com/rwiggins1/adequate-c/internal/source"
	"github.com/rwiggins1/adequate-c/internal/trace"
)

// app: состояние одного запуска CLI: настройки, таймер и трассировка.
type app struct {
	settings settings
	timer    *observ.Timer
	tracer   trace.Tracer
	cleanup  func()
	profile  *prof.Session
}

// settings: флаги поверх adequate.toml: явно заданный флаг сильнее манифеста.
type settings struct {
	color          bool
	quiet          bool
	timings        bool
	maxDiagnostics int
	diagFormat     string
	manifest       project.Manifest
	hasManifest    bool
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := a.loadSettings(cmd); err != nil {
		return err
	}
	if a.settings.timings {
		a.timer = observ.NewTimer()
	}
	if err := a.setupProfiling(cmd); err != nil {
		return err
	}
	return a.setupTracing(cmd)
}

func (a *app) setupProfiling(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	var (
		cfg prof.Config
		err error
	)
	if cfg.CPUProfile, err = flags.GetString("cpu-profile"); err != nil {
		return fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	if cfg.MemProfile, err = flags.GetString("mem-profile"); err != nil {
		return fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	if cfg.RuntimeTrace, err = flags.GetString("runtime-trace"); err != nil {
		return fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}
	if !cfg.Enabled() {
		return nil
	}
	a.profile, err = prof.Start(cfg)
	return err
}

func (a *app) loadSettings(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	s := settings{diagFormat: "pretty"}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	m, found, err := project.Load(wd)
	if err != nil {
		return err
	}
	s.manifest, s.hasManifest = m, found

	colorMode := "auto"
	if found {
		colorMode = m.Diagnostics.Color
		s.maxDiagnostics = m.Diagnostics.Max
		s.diagFormat = m.Diagnostics.Format
	}
	if flags.Changed("color") || !found {
		if colorMode, err = flags.GetString("color"); err != nil {
			return fmt.Errorf("failed to get color flag: %w", err)
		}
	}
	if flags.Changed("max-diagnostics") || !found {
		if s.maxDiagnostics, err = flags.GetInt("max-diagnostics"); err != nil {
			return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
		}
	}
	if s.maxDiagnostics < 0 {
		return fmt.Errorf("--max-diagnostics must be >= 0, got %d", s.maxDiagnostics)
	}
	if s.quiet, err = flags.GetBool("quiet"); err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = flags.GetBool("timings"); err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	if s.color, err = resolveColor(colorMode, cmd.ErrOrStderr()); err != nil {
		return err
	}
	color.NoColor = !s.color
	a.settings = s
	return nil
}

// resolveColor: auto включает цвет только для терминала и без NO_COLOR.
func resolveColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		if _, set := os.LookupEnv("NO_COLOR"); set {
			return false, nil
		}
		return isTerminal(w), nil
	default:
		return false, fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func (a *app) driverOptions() driver.Options {
	return driver.Options{
		MaxDiagnostics: a.settings.maxDiagnostics,
		Timer:          a.timer,
	}
}

// resolveTarget: явный аргумент или каталог исходников из adequate.toml.
func (a *app) resolveTarget(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if !a.settings.hasManifest {
		return "", errors.New("no input: pass a file or directory, or run inside a project with " + project.ManifestName)
	}
	return a.settings.manifest.SourcesDir()
}

func (a *app) printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, format string) error {
	switch format {
	case "plain":
		return diagfmt.Plain(w, bag)
	case "pretty":
		return diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     a.settings.color,
			Context:   1,
			ShowNotes: true,
		})
	case "short":
		if bag.Len() == 0 {
			return nil
		}
		_, err := fmt.Fprintln(w, diag.FormatShortDiagnostics(bag.Items(), fs, true))
		return err
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// finish prints timings, stops profiling and closes the tracer.
func (a *app) finish(stderr io.Writer) {
	if err := a.profile.Stop(); err != nil {
		fmt.Fprintf(stderr, "failed to write profile: %v\n", err)
	}
	if a.settings.timings && a.timer != nil {
		fmt.Fprint(stderr, a.timer.Summary())
	}
	if a.cleanup != nil {
		a.cleanup()
		a.cleanup = nil
	}
}
