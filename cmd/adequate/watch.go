package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rwiggins1/adequate-c/internal/driver"
)

func (a *app) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch [flags] [file.adc|directory]",
		Short: "Re-run diagnostics whenever sources change",
		Long: `Watch runs diagnostics once, then again after every change to *.adc files
under the target. Without an argument the sources directory of adequate.toml is used.
Stop with Ctrl+C.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runWatch,
	}
	cmd.Flags().String("format", "", "output format (pretty|plain|short|json); defaults to adequate.toml or pretty")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	cmd.Flags().Duration("debounce", driver.DefaultDebounce, "quiet period before a batch of changes is reported")
	return cmd
}

func (a *app) runWatch(cmd *cobra.Command, args []string) error {
	var (
		opts diagOptions
		err  error
	)
	flags := cmd.Flags()
	if opts.format, err = flags.GetString("format"); err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if opts.format == "" {
		opts.format = a.settings.diagFormat
	}
	switch opts.format {
	case "pretty", "plain", "short", "json":
	default:
		return fmt.Errorf("unknown format: %s", opts.format)
	}
	if opts.jobs, err = flags.GetInt("jobs"); err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	debounce, err := flags.GetDuration("debounce")
	if err != nil {
		return fmt.Errorf("failed to get debounce flag: %w", err)
	}
	// прогресс-бар поверх постоянно перерисовываемого вывода только мешает
	opts.ui = uiModeOff

	target, err := a.resolveTarget(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	w, err := driver.NewWatcher([]string{target})
	if err != nil {
		return err
	}
	defer func() { _ = w.Close() }()
	w.Debounce = debounce

	check := func(changed []string) {
		if !a.settings.quiet {
			header := fmt.Sprintf("[%s] checking %s", time.Now().Format("15:04:05"), target)
			if len(changed) > 0 {
				header += fmt.Sprintf(" (%d changed)", len(changed))
			}
			fmt.Fprintln(errOut, header)
		}
		err := a.diagnoseTarget(ctx, target, opts, out, errOut)
		switch {
		case err == nil:
			if !a.settings.quiet {
				fmt.Fprintln(errOut, "no errors")
			}
		case errors.Is(err, errHasErrors):
		default:
			fmt.Fprintf(errOut, "error: %v\n", err)
		}
	}

	check(nil)
	if err := w.Run(ctx, check); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
