package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
)

// Version information for the adequate CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI, without colour.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Semver parses Version strictly (no "v" prefix, all three components).
func Semver() (*semver.Version, error) {
	v, err := semver.StrictNewVersion(Version)
	if err != nil {
		return nil, fmt.Errorf("invalid version %q: %w", Version, err)
	}
	return v, nil
}

// Colored renders major, minor and patch in their own colours.
// A Version that does not parse is returned as is.
func Colored() string {
	v, err := Semver()
	if err != nil {
		return Version
	}
	out := versionMajorColor.Sprint(v.Major()) + "." +
		versionMinorColor.Sprint(v.Minor()) + "." +
		versionPatchColor.Sprint(v.Patch())
	if pre := v.Prerelease(); pre != "" {
		out += "-" + pre
	}
	if meta := v.Metadata(); meta != "" {
		out += "+" + meta
	}
	return out
}

// Info: строка для `adequate version`: версия и, если заданы, коммит и дата сборки.
func Info() string {
	var sb strings.Builder
	sb.WriteString("adequate ")
	sb.WriteString(Colored())
	if GitCommit != "" {
		fmt.Fprintf(&sb, " (%s)", GitCommit)
	}
	if BuildDate != "" {
		fmt.Fprintf(&sb, " built %s", BuildDate)
	}
	return sb.String()
}

// Compatible reports whether Version satisfies a constraint such as ">= 0.1.0-0".
// Prerelease versions only match constraints that carry a prerelease themselves.
func Compatible(constraint string) (bool, error) {
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return false, fmt.Errorf("invalid constraint %q: %w", constraint, err)
	}
	v, err := Semver()
	if err != nil {
		return false, err
	}
	return c.Check(v), nil
}
