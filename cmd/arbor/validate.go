package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/arbor/internal/validator"
	"github.com/aretw0/arbor/pkg/convert"
	"github.com/aretw0/arbor/pkg/schema"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <document>",
	Short: "Check a document for consistency",
	Long:  `Checks the raw document (unique uuids, priorities, sort numbers) and the flattened store (parent links, reachability, precondition ordering).`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(args[0]); err != nil {
			fmt.Println("Validation failed:")
			var agg *schema.AggregateError
			if errors.As(err, &agg) {
				for _, e := range agg.Errors {
					fmt.Printf("  - %v\n", e)
				}
			} else {
				fmt.Printf("  - %v\n", err)
			}
			os.Exit(1)
		}
		fmt.Println("Document is valid! ✅")
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	raw, err := schema.Decode(data, schema.FormatFromPath(path))
	if err != nil {
		return err
	}
	if err := schema.Validate(raw); err != nil {
		return err
	}
	doc, err := convert.ToMindMap(raw)
	if err != nil {
		return err
	}
	return validator.Validate(doc)
}
