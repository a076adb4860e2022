package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rwiggins1/adequate-c/internal/driver"
	"github.com/rwiggins1/adequate-c/internal/project"
)

const defaultProjectName = "adequate-project"

func (a *app) newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path|name]",
		Short: "Initialize a new Adequate C project",
		Long: `Initialize a new project by creating a manifest (adequate.toml) and a
hello-world source (src/main.adc). If [path|name] is omitted, initializes the
current directory. A missing directory is created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runInit,
	}
	cmd.Flags().Bool("force", false, "overwrite an existing adequate.toml")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return fmt.Errorf("failed to get force flag: %w", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	target := wd
	if len(args) > 0 && args[0] != "." {
		target = args[0]
		if !filepath.IsAbs(target) {
			target = filepath.Join(wd, target)
		}
	}

	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %q: %w", target, err)
		}
	} else if !st.IsDir() {
		return fmt.Errorf("%q is not a directory", target)
	}

	name := strings.TrimSpace(filepath.Base(target))
	if !project.IsValidPackageName(name) {
		name = defaultProjectName
	}

	m := project.Default(name)
	manifestPath, err := project.WriteManifest(target, m, force)
	if err != nil {
		return fmt.Errorf("project already initialized or not writable: %w", err)
	}

	srcDir := filepath.Join(target, filepath.FromSlash(m.Build.Sources))
	if err := os.MkdirAll(srcDir, 0o750); err != nil {
		return fmt.Errorf("failed to create %s: %w", srcDir, err)
	}
	mainPath := filepath.Join(srcDir, "main"+driver.SourceExt)
	createdMain := false
	if _, err := os.Stat(mainPath); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(mainPath, []byte(defaultMainSource), 0o600); err != nil {
			return fmt.Errorf("failed to write %s: %w", mainPath, err)
		}
		createdMain = true
	}

	if a.settings.quiet {
		return nil
	}
	out := cmd.OutOrStdout()
	rel := target
	if r, err := filepath.Rel(wd, target); err == nil {
		rel = r
	}
	fmt.Fprintf(out, "Initialized project %s in %s\n", name, rel)
	fmt.Fprintf(out, "  - %s\n", filepath.Base(manifestPath))
	mainRel := filepath.ToSlash(filepath.Join(m.Build.Sources, filepath.Base(mainPath)))
	if createdMain {
		fmt.Fprintf(out, "  - %s\n", mainRel)
	} else {
		fmt.Fprintf(out, "  - %s (existing)\n", mainRel)
	}
	return nil
}

const defaultMainSource = `// Adequate C hello world
func main() -> int {
    print("Hello, Adequate C!");
    return 0;
}
`
