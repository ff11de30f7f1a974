package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "csstypes",
	Short: "Typed CSS class bindings and unused-class purging",
	Long: `Extract every class of a stylesheet into generated code (Rust macro table,
Go constants, JSON, YAML), and optionally strip the stylesheet down to the
classes your source files actually use.`,
	// Default behavior: run generate when no subcommand is given.
	// PreRunE of generateCmd does not fire when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runGenerate(generateCmd, nil)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress the summary (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", defaultConfigPath, "Config file path (.yaml or .toml)")

	addPipelineFlags(rootCmd)

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
