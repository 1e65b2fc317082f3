package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/abhisek/redacao/internal/grading"
	"github.com/abhisek/redacao/internal/llm"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the active configuration",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "redacao", resolveVersion())

		cfg := grading.ConfigFromEnv()
		markers := "built-in"
		if cfg.MarkersPath != "" {
			markers = cfg.MarkersPath
		}
		fmt.Fprintf(out, "markers:  %s\n", markers)

		if lcfg, ok := llm.Resolve(); ok {
			fmt.Fprintf(out, "llm:      %s\n", lcfg.Provider)
		} else {
			fmt.Fprintln(out, "llm:      none (offline)")
		}
	},
}

// resolveVersion prefers the ldflags value, then the module version
// recorded by go install.
func resolveVersion() string {
	if version != "(devel)" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return version
}
