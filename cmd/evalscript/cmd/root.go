package cmd

import "github.com/spf13/cobra"

// Version is the evaluator library version this binary embeds. No release
// pipeline injects it via build flags yet, so it stays a constant.
const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "evalscript [file]",
	Short: "A tree-walking evaluator for a JavaScript-like scripting language",
	Long:  `evalscript parses and evaluates programs written in a subset of a C-family dynamic scripting language.`,
	// Without this, cobra treats a positional file argument to the bare
	// root command as an unknown subcommand.
	Args:    cobra.MaximumNArgs(1),
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
