package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rwiggins1/adequate-c/internal/ast"
	"github.com/rwiggins1/adequate-c/internal/diagfmt"
	"github.com/rwiggins1/adequate-c/internal/driver"
	"github.com/rwiggins1/adequate-c/internal/source"
)

func (a *app) newParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse [flags] [file.adc|directory]",
		Short: "Parse sources and print the syntax tree",
		Long: `Parse a source file, or every *.adc file in a directory, and print the AST.
Without an argument the sources directory of adequate.toml is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runParse,
	}
	cmd.Flags().String("format", "pretty", "output format (pretty|tree|json)")
	cmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	return cmd
}

func (a *app) runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "tree", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}

	target, err := a.resolveTarget(args)
	if err != nil {
		return err
	}
	st, err := os.Stat(target)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	if !st.IsDir() {
		res, err := driver.Parse(ctx, target, a.driverOptions())
		if err != nil {
			return fmt.Errorf("parse failed: %w", err)
		}
		if res.Bag.Len() > 0 {
			if err := a.printDiagnostics(errOut, res.Bag, res.FileSet, "pretty"); err != nil {
				return err
			}
		}
		if err := renderAST(out, format, res.Builder, res.FileID, res.FileSet); err != nil {
			return err
		}
		if res.Bag.HasErrors() {
			return errHasErrors
		}
		return nil
	}

	opts := a.driverOptions()
	opts.Jobs = jobs
	fs, results, err := driver.ParseDir(ctx, target, opts)
	if err != nil {
		return fmt.Errorf("parse failed: %w", err)
	}
	merged := driver.MergeBags(results)
	if merged.Len() > 0 {
		if err := a.printDiagnostics(errOut, merged, fs, "pretty"); err != nil {
			return err
		}
	}

	if format == "json" {
		type fileAST struct {
			Path string                `json:"path"`
			AST  *diagfmt.ASTNodeOutput `json:"ast,omitempty"`
		}
		files := make([]fileAST, 0, len(results))
		for _, r := range results {
			entry := fileAST{Path: r.Path}
			if r.Parse != nil {
				node := diagfmt.BuildASTOutput(r.Parse.Builder, ast.FileRef(r.Parse.FileID))
				entry.AST = &node
			}
			files = append(files, entry)
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(files); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Parse == nil {
				continue
			}
			if format == "tree" {
				fmt.Fprintf(out, "== %s ==\n", r.Path)
			}
			if err := renderAST(out, format, r.Parse.Builder, r.Parse.FileID, fs); err != nil {
				return err
			}
		}
	}

	if merged.HasErrors() {
		return errHasErrors
	}
	return nil
}

func renderAST(w io.Writer, format string, b *ast.Builder, fileID ast.FileID, fs *source.FileSet) error {
	switch format {
	case "tree":
		return diagfmt.FormatASTTree(w, b, ast.FileRef(fileID))
	case "json":
		return diagfmt.FormatASTJSON(w, b, fileID)
	default:
		return diagfmt.FormatASTPretty(w, b, fileID, fs)
	}
}
