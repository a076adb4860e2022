package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rwiggins1/adequate-c/internal/trace"
)

// setupTracing inspects trace-related flags and attaches a tracer to the
// command context. --trace without --trace-level means phase level.
func (a *app) setupTracing(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()

	traceOutput, err := flags.GetString("trace")
	if err != nil {
		return fmt.Errorf("failed to get trace flag: %w", err)
	}
	levelStr, err := flags.GetString("trace-level")
	if err != nil {
		return fmt.Errorf("failed to get trace-level flag: %w", err)
	}
	modeStr, err := flags.GetString("trace-mode")
	if err != nil {
		return fmt.Errorf("failed to get trace-mode flag: %w", err)
	}

	level, err := trace.ParseLevel(levelStr)
	if err != nil {
		return err
	}
	if traceOutput != "" && !flags.Changed("trace-level") {
		level = trace.LevelPhase
	}
	mode, err := trace.ParseMode(modeStr)
	if err != nil {
		return err
	}

	if level == trace.LevelOff {
		a.tracer = trace.Nop
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return nil
	}

	cfg := trace.Config{
		Level:      level,
		Mode:       mode,
		OutputPath: traceOutput,
	}
	if traceOutput == "-" {
		cfg.Output = nopCloser{cmd.ErrOrStderr()}
	}
	tracer, err := trace.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create tracer: %w", err)
	}
	a.tracer = tracer
	cmd.SetContext(trace.WithTracer(cmd.Context(), tracer))

	errOut := cmd.ErrOrStderr()
	a.cleanup = func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(errOut, "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(errOut, "trace: close error: %v\n", err)
		}
	}
	return nil
}

// dumpTraceOnPanic prints the ring buffer, if any, and re-panics.
func (a *app) dumpTraceOnPanic(w io.Writer) {
	r := recover()
	if r == nil {
		return
	}
	if a.tracer != nil {
		_ = a.tracer.Flush()
	}
	if ring, ok := trace.FindRing(a.tracer); ok {
		fmt.Fprintf(w, "panic: %v\nlast trace events:\n", r)
		_ = ring.Dump(w, trace.FormatText)
	}
	panic(r)
}

// nopCloser keeps StreamTracer.Close from closing the command's stderr.
type nopCloser struct{ io.Writer }
