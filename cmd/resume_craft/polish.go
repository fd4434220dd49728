package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-craft/internal/enhance"
	"github.com/jonathan/resume-craft/internal/observability"
)

func newPolishCmd(global *globalOptions) *cobra.Command {
	var (
		texts []string
		label string
	)
	cmd := &cobra.Command{
		Use:   "polish",
		Short: "Polish pieces of résumé text with the configured LLM",
		Long: "Rewrites each --text (or stdin when --text is \"-\") with the configured LLM provider and prints " +
			"the results in order, separated by blank lines. Several texts are polished concurrently. " +
			"An input is printed unchanged when its enhancement fails.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := global.load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.ProviderAPIKey() == "" {
				return fmt.Errorf("no API key configured for provider %q", cfg.LLMProvider)
			}
			inputs, err := polishInputs(texts, cmd.InOrStdin())
			if err != nil {
				return err
			}

			log := newLogger(cmd, cfg, "text")
			ctx := context.Background()
			enhancer, cleanup, err := newEnhancer(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			reqs := make([]enhance.Request, len(inputs))
			for i, text := range inputs {
				reqs[i] = enhance.Request{Text: text, Label: label}
			}
			results := enhancer.EnhanceBatch(ctx, reqs)

			out := cmd.OutOrStdout()
			if global.verbose {
				boxLabel := label
				if boxLabel == "" {
					boxLabel = "text"
				}
				printer := observability.NewPrinter(out)
				for i, polished := range results {
					printer.PrintEnhancement(boxLabel, inputs[i], polished)
				}
				return nil
			}
			fmt.Fprintln(out, strings.Join(results, "\n\n"))
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&texts, "text", "t", nil, "Text to polish, repeatable; \"-\" reads stdin")
	cmd.Flags().StringVarP(&label, "label", "l", "", "What the text is, e.g. \"experience description\"")
	_ = cmd.MarkFlagRequired("text")
	return cmd
}

// polishInputs resolves "-" to stdin, trims every text and drops blank ones
func polishInputs(texts []string, stdin io.Reader) ([]string, error) {
	out := make([]string, 0, len(texts))
	for _, text := range texts {
		if text == "-" {
			data, err := io.ReadAll(stdin)
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			text = string(data)
		}
		if text = strings.TrimSpace(text); text != "" {
			out = append(out, text)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("nothing to polish: --text is empty")
	}
	return out, nil
}
