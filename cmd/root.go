package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/redacao/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "redacao",
	Short: "ENEM essay structure analysis and band scoring",
	Long: "redacao analyzes the structure of ENEM essays (metrics, paragraph elements, " +
		"connectives) and grades the five competencies from error lists.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides REDACAO_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().String("log-format", "text", "Log format: text, json, logfmt")
	rootCmd.PersistentFlags().Bool("json", false, "Print results as JSON")
	rootCmd.PersistentFlags().Bool("plain", false, "Disable colors and borders")
	rootCmd.PersistentFlags().Bool("offline", false, "Do not call LLM providers")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(gradeCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then REDACAO_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
