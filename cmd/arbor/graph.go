package main

import (
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/graph"
	"github.com/spf13/cobra"
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <document>",
	Short: "Export the document as a Mermaid diagram",
	Long:  `Outputs a Mermaid diagram (graph LR) of the document. Collapsed subtrees are folded.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		current, _ := cmd.Flags().GetString("current")

		doc, err := cli.LoadDocument(args[0])
		if err != nil {
			fmt.Printf("Error loading document: %v\n", err)
			os.Exit(1)
		}

		var overlay *graph.GraphOverlay
		if current != "" {
			overlay = &graph.GraphOverlay{CurrentNode: current}
		}
		fmt.Print(graph.GenerateMermaid(doc, overlay))
	},
}

func init() {
	rootCmd.AddCommand(graphCmd)
	graphCmd.Flags().String("current", "", "Highlight the node with this uuid")
}
