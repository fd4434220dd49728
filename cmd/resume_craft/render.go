package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-craft/internal/export"
	"github.com/jonathan/resume-craft/internal/ids"
	"github.com/jonathan/resume-craft/internal/projection"
	"github.com/jonathan/resume-craft/internal/rendering"
)

type renderOptions struct {
	seed         string
	format       string
	out          string
	presentLabel string
	lang         string
	template     string
	global       *globalOptions
}

func newRenderCmd(global *globalOptions) *cobra.Command {
	opts := &renderOptions{global: global}
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a résumé document as HTML, LaTeX, JSON or PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.seed, "seed", "s", "", "Seed document (JSON or YAML); the built-in template when empty")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "html", "Output format: html, latex, json or pdf")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "Output file (stdout when empty)")
	cmd.Flags().StringVar(&opts.presentLabel, "present-label", "", "Label shown for ongoing entries (default from config)")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "HTML lang attribute")
	cmd.Flags().StringVar(&opts.template, "template", "", "Custom LaTeX template file")
	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions) error {
	cfg, err := opts.global.load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log := newLogger(cmd, cfg, "text")

	presentLabel := opts.presentLabel
	if presentLabel == "" {
		presentLabel = cfg.PresentLabel
	}

	doc, err := loadDocument(opts.seed, ids.NewUUIDAllocator())
	if err != nil {
		return fmt.Errorf("failed to load seed: %w", err)
	}
	view := projection.Project(doc, projection.Options{PresentLabel: presentLabel})

	var data []byte
	switch strings.ToLower(opts.format) {
	case "html":
		out, err := rendering.RenderHTML(view, rendering.HTMLOptions{Lang: opts.lang})
		if err != nil {
			return err
		}
		data = []byte(out)
	case "latex", "tex":
		var out string
		if opts.template != "" {
			out, err = rendering.RenderLaTeXWithTemplate(view, opts.template)
		} else {
			out, err = rendering.RenderLaTeX(view)
		}
		if err != nil {
			return err
		}
		data = []byte(out)
	case "json":
		data, err = rendering.Render(view, rendering.FormatJSON)
		if err != nil {
			return err
		}
	case "pdf":
		printer := export.NewChromePrinter(cfg.ChromePath, 0, log)
		data, err = export.PDF(context.Background(), printer, view)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format %q (use html, latex, json or pdf)", opts.format)
	}

	if err := writeOutput(cmd, opts.out, data); err != nil {
		return err
	}
	if opts.out != "" && opts.out != "-" {
		log.WithFields(logrus.Fields{
			"format": opts.format,
			"path":   opts.out,
			"bytes":  len(data),
		}).Info("Rendered résumé")
	}
	return nil
}
