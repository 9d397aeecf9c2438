package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "arbor",
	Short: "Arbor is a mind-map editing engine for test-case trees",
	Long: `Arbor loads hierarchical test-case documents (demand, module, test point,
use case, precondition, step, expected result), lays them out and applies
editing scripts with full undo history.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Editor config file (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("debug", false, "Log editor activity to stderr")
}
