package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-craft/internal/ids"
	"github.com/jonathan/resume-craft/internal/seed"
	"github.com/jonathan/resume-craft/internal/types"
)

func newTemplateCmd(global *globalOptions) *cobra.Command {
	var (
		empty bool
		out   string
	)
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Print a starter seed document",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				doc types.ResumeData
				err error
			)
			if empty {
				doc = seed.Empty(ids.NewUUIDAllocator())
			} else if doc, err = seed.Template(); err != nil {
				return err
			}
			data, err := json.MarshalIndent(doc, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal document: %w", err)
			}
			return writeOutput(cmd, out, append(data, '\n'))
		},
	}
	cmd.Flags().BoolVar(&empty, "empty", false, "Print an empty document with the standard sections")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file (stdout when empty)")
	return cmd
}
