package main

import (
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/pkg/domain"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <document> <script>",
	Short: "Apply an editing script to a document",
	Long: `Runs every step of a JSON or YAML script (reorders, renames, collapses,
undo/redo...) against the document and reports what was applied or rejected.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		debug, _ := cmd.Flags().GetBool("debug")
		out, _ := cmd.Flags().GetString("output")
		strict, _ := cmd.Flags().GetBool("strict")
		quiet, _ := cmd.Flags().GetBool("quiet")
		width, _ := cmd.Flags().GetFloat64("width")
		height, _ := cmd.Flags().GetFloat64("height")

		_, err := cli.Replay(cli.ReplayOptions{
			EditorOptions: cli.EditorOptions{
				DocPath:    args[0],
				ConfigPath: configPath,
				Debug:      debug,
			},
			ScriptPath: args[1],
			Measure:    domain.Size{Width: width, Height: height},
			OutPath:    out,
			Strict:     strict,
			Quiet:      quiet,
		}, os.Stdout)
		if err != nil {
			fmt.Printf("Replay failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringP("output", "o", "", "Write the resulting document to this file")
	replayCmd.Flags().Bool("strict", false, "Stop at the first rejected step")
	replayCmd.Flags().BoolP("quiet", "q", false, "Only print the summary")
	replayCmd.Flags().Float64("width", 180, "Nominal width given to every node before replaying")
	replayCmd.Flags().Float64("height", 40, "Nominal height given to every node before replaying")
}
