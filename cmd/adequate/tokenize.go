package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rwiggins1/adequate-c/internal/diagfmt"
	"github.com/rwiggins1/adequate-c/internal/driver"
)

func (a *app) newTokenizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokenize [flags] <file.adc>",
		Short: "Tokenize an Adequate C source file",
		Long:  `Tokenize breaks down a source file into its constituent tokens`,
		Args:  cobra.ExactArgs(1),
		RunE:  a.runTokenize,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|json|msgpack)")
	return cmd
}

func (a *app) runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	result, err := driver.Tokenize(cmd.Context(), args[0], a.driverOptions())
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// диагностики в stderr, токены в stdout
	if result.Bag.Len() > 0 {
		if err := a.printDiagnostics(cmd.ErrOrStderr(), result.Bag, result.FileSet, "pretty"); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "pretty":
		err = diagfmt.FormatTokensPretty(out, result.Tokens, result.FileSet)
	case "json":
		err = diagfmt.FormatTokensJSON(out, result.Tokens)
	case "msgpack":
		err = diagfmt.FormatTokensMsgpack(out, result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	if err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return errHasErrors
	}
	return nil
}
