package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rwiggins1/adequate-c/internal/version"
)

// errHasErrors: во входе есть ошибки; диагностики уже напечатаны.
var errHasErrors = errors.New("diagnostics contain errors")

// main wires signals and exits with the status returned by run.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the CLI and maps the outcome to an exit status:
// 0 on success, 1 when the input has errors or the command failed.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) (code int) {
	a := &app{}
	defer a.dumpTraceOnPanic(stderr)

	root := a.newRootCmd()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	a.finish(stderr)

	switch {
	case err == nil:
		return 0
	case errors.Is(err, errHasErrors):
		return 1
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
}

func (a *app) newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "adequate",
		Short:             "Adequate C front end: tokenizer, parser and diagnostics",
		Long:              `adequate tokenizes and parses Adequate C sources (*.adc) and reports diagnostics`,
		Version:           version.Version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	// Глобальные флаги
	pf := root.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show (0 = unlimited)")
	pf.String("trace", "", "write trace events to file (- for stderr)")
	pf.String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	pf.String("trace-mode", "stream", "trace storage (stream|ring|both); ring is dumped on panic")
	pf.String("cpu-profile", "", "write CPU profile to file")
	pf.String("mem-profile", "", "write heap profile to file on exit")
	pf.String("runtime-trace", "", "write Go runtime trace to file")

	root.AddCommand(
		a.newTokenizeCmd(),
		a.newParseCmd(),
		a.newDiagCmd(),
		a.newWatchCmd(),
		a.newInitCmd(),
		a.newVersionCmd(),
	)
	return root
}
