package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-craft/internal/ids"
	"github.com/jonathan/resume-craft/internal/observability"
	"github.com/jonathan/resume-craft/internal/seed"
	"github.com/jonathan/resume-craft/internal/types"
)

func newValidateCmd(global *globalOptions) *cobra.Command {
	var seedPath string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a seed document",
		Long:  "Checks a JSON or YAML seed document against the résumé schema and the document invariants, and prints a summary of its sections.",
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := seed.LoadFile(seedPath, ids.NewUUIDAllocator())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "✓ %s is valid (%d sections)\n", seedPath, len(doc.Sections))
			if global.verbose {
				observability.NewPrinter(out).PrintDocument(&doc)
				return nil
			}
			for _, s := range doc.Sections {
				visibility := "visible"
				if !s.IsVisible {
					visibility = "hidden"
				}
				fmt.Fprintf(out, "  - %s [%s, %s]: %d items\n", s.Title, s.Type, visibility, len(types.Items(s.Content)))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&seedPath, "seed", "s", "", "Seed document (JSON or YAML)")
	_ = cmd.MarkFlagRequired("seed")
	return cmd
}
