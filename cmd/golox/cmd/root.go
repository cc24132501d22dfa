// Package cmd implements the golox command-line interface: run,
// tokens, parse, and version subcommands wired with cobra, following
// the original DWScript interpreter's CLI layout.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version information, set by build flags (see the teacher's own
// ldflags-based version stamping).
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "golox",
	Short: "Lox interpreter",
	Long: `golox is a tree-walking interpreter for the Lox scripting language:
dynamically typed, lexically scoped, with closures, single inheritance,
and first-class functions.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
