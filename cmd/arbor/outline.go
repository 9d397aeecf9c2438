package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aretw0/arbor/internal/cli"
	"github.com/aretw0/arbor/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var outlineCmd = &cobra.Command{
	Use:   "outline <document>",
	Short: "Print the document as a Markdown outline",
	Long:  `Prints the document as a nested list. On a terminal the Markdown is rendered; otherwise it is written raw.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		all, _ := cmd.Flags().GetBool("all")
		raw, _ := cmd.Flags().GetBool("raw")

		doc, err := cli.LoadDocument(args[0])
		if err != nil {
			fmt.Printf("Error loading document: %v\n", err)
			os.Exit(1)
		}

		md := tui.Outline(doc, tui.OutlineOptions{
			ShowCollapsed: all,
			Title:         filepath.Base(args[0]),
		})
		if raw || !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Print(md)
			return
		}

		out, err := tui.NewRenderer()(md)
		if err != nil {
			fmt.Print(md)
			return
		}
		fmt.Print(out)
	},
}

func init() {
	rootCmd.AddCommand(outlineCmd)
	outlineCmd.Flags().BoolP("all", "a", false, "Show collapsed subtrees")
	outlineCmd.Flags().Bool("raw", false, "Print Markdown without rendering")
}
