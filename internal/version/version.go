package version

import "github.com/fatih/color"

// Build metadata for the rill CLI. GitCommit and BuildDate are meant to
// be stamped at build time via -ldflags.

var (
	major = color.New(color.FgYellow, color.Bold).Sprint("0")
	minor = color.New(color.FgGreen, color.Bold).Sprint("1")
	patch = color.New(color.FgBlue, color.Bold).Sprint("0")

	// Version is the semantic version of the CLI.
	Version = major + "." + minor + "." + patch + "-dev"

	// GitCommit is the commit hash of the build, when stamped.
	GitCommit = ""

	// BuildDate is the ISO-8601 build date, when stamped.
	BuildDate = ""
)
