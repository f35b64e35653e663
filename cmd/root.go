package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matemagica",
	Short: "Two-digit addition and subtraction worksheets",
	Long: "Matemágica generates two-digit addition and subtraction exercises at three\n" +
		"difficulty tiers, locally or with an LLM, as text, JSON, CSV or PDF.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file (default $XDG_CONFIG_HOME/matemagica/matemagica.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides MATEMAGICA_DB env var)")
	pf.String("log-level", "", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}
