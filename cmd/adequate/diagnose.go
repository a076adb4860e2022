package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rwiggins1/adequate-c/internal/diag"
	"github.com/rwiggins1/adequate-c/internal/driver"
	"github.com/rwiggins1/adequate-c/internal/source"
	"github.com/rwiggins1/adequate-c/internal/ui"
)

type diagOptions struct {
	format     string
	useCache   bool
	clearCache bool
	jobs       int
	ui         uiMode
}

func (a *app) newDiagCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diag [flags] [file.adc|directory]",
		Short: "Run diagnostics on sources",
		Long: `Parse a source file or every *.adc file in a directory and report diagnostics.
Without an argument the sources directory of adequate.toml is used.
The exit status is 1 when any error was reported.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runDiag,
	}
	cmd.Flags().String("format", "", "output format (pretty|plain|short|json); defaults to adequate.toml or pretty")
	cmd.Flags().Bool("cache", false, "reuse diagnostics of unchanged files from the on-disk cache")
	cmd.Flags().Bool("cache-clear", false, "drop the on-disk cache before running")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().String("ui", "auto", "progress UI for directories (auto|on|off)")
	return cmd
}

func (a *app) readDiagOptions(cmd *cobra.Command) (diagOptions, error) {
	var (
		opts diagOptions
		err  error
	)
	flags := cmd.Flags()
	if opts.format, err = flags.GetString("format"); err != nil {
		return opts, fmt.Errorf("failed to get format flag: %w", err)
	}
	if opts.format == "" {
		opts.format = a.settings.diagFormat
	}
	switch opts.format {
	case "pretty", "plain", "short", "json":
	default:
		return opts, fmt.Errorf("unknown format: %s", opts.format)
	}
	if opts.useCache, err = flags.GetBool("cache"); err != nil {
		return opts, fmt.Errorf("failed to get cache flag: %w", err)
	}
	if opts.clearCache, err = flags.GetBool("cache-clear"); err != nil {
		return opts, fmt.Errorf("failed to get cache-clear flag: %w", err)
	}
	if opts.jobs, err = flags.GetInt("jobs"); err != nil {
		return opts, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return opts, fmt.Errorf("failed to get ui flag: %w", err)
	}
	if opts.ui, err = readUIMode(uiValue); err != nil {
		return opts, err
	}
	return opts, nil
}

func (a *app) runDiag(cmd *cobra.Command, args []string) error {
	opts, err := a.readDiagOptions(cmd)
	if err != nil {
		return err
	}
	target, err := a.resolveTarget(args)
	if err != nil {
		return err
	}
	return a.diagnoseTarget(cmd.Context(), target, opts, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// diagnoseTarget печатает диагностики файла или каталога и возвращает
// errHasErrors, если среди них есть ошибки.
func (a *app) diagnoseTarget(ctx context.Context, target string, opts diagOptions, out, errOut io.Writer) error {
	st, err := os.Stat(target)
	if err != nil {
		return err
	}

	var (
		bag *diag.Bag
		fs  *source.FileSet
	)
	if st.IsDir() {
		if opts.useCache && !a.settings.quiet {
			fmt.Fprintln(errOut, "warning: --cache applies to single files only; ignored for directories")
		}
		fs, bag, err = a.diagnoseDir(ctx, target, opts, errOut)
	} else {
		fs, bag, err = a.diagnoseFile(ctx, target, opts)
	}
	if err != nil {
		return err
	}

	if bag.Len() > 0 || opts.format == "json" {
		if err := a.printDiagnostics(out, bag, fs, opts.format); err != nil {
			return err
		}
	}
	if bag.HasErrors() {
		return errHasErrors
	}
	return nil
}

func (a *app) diagnoseFile(ctx context.Context, path string, opts diagOptions) (*source.FileSet, *diag.Bag, error) {
	dopts := a.driverOptions()
	if opts.useCache || opts.clearCache {
		cache, err := driver.OpenDiskCache("adequate")
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open cache: %w", err)
		}
		if opts.clearCache {
			if err := cache.DropAll(); err != nil {
				return nil, nil, fmt.Errorf("failed to clear cache: %w", err)
			}
		}
		if opts.useCache {
			dopts.Cache = cache
		}
	}
	res, err := driver.Diagnose(ctx, path, dopts)
	if err != nil {
		return nil, nil, fmt.Errorf("diagnostics failed: %w", err)
	}
	return res.FileSet, res.Bag, nil
}

func (a *app) diagnoseDir(ctx context.Context, dir string, opts diagOptions, errOut io.Writer) (*source.FileSet, *diag.Bag, error) {
	dopts := a.driverOptions()
	dopts.Jobs = opts.jobs

	if a.settings.quiet || !shouldUseTUI(opts.ui, errOut) {
		fs, results, err := driver.ParseDir(ctx, dir, dopts)
		if err != nil {
			return nil, nil, fmt.Errorf("diagnostics failed: %w", err)
		}
		return fs, driver.MergeBags(results), nil
	}

	files, err := driver.ListSourceFiles(dir)
	if err != nil {
		return nil, nil, err
	}

	events := make(chan driver.Event, 64)
	uiDone := make(chan error, 1)
	go func() {
		err := ui.Run(ui.Options{Title: "adequate diag", Root: dir, Files: files}, events, errOut)
		// UI мог выйти раньше: дочитываем канал, чтобы воркеры не встали
		for range events {
		}
		uiDone <- err
	}()
	dopts.Progress = driver.ChannelSink{Ch: events}
	fs, results, err := driver.ParseDir(ctx, dir, dopts)
	close(events)
	if uiErr := <-uiDone; uiErr != nil && err == nil {
		err = uiErr
	}
	if err != nil {
		return nil, nil, fmt.Errorf("diagnostics failed: %w", err)
	}
	return fs, driver.MergeBags(results), nil
}
