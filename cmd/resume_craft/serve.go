package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-craft/internal/document"
	"github.com/jonathan/resume-craft/internal/export"
	"github.com/jonathan/resume-craft/internal/ids"
	"github.com/jonathan/resume-craft/internal/server"
	"github.com/jonathan/resume-craft/internal/server/ratelimit"
)

type serveOptions struct {
	port   int
	seed   string
	noPDF  bool
	global *globalOptions
}

func newServeCmd(global *globalOptions) *cobra.Command {
	opts := &serveOptions{global: global}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the résumé editing server",
		Long:  "Starts an HTTP server hosting one editing session. The session is seeded from --seed, or from the built-in template when no seed is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, opts)
		},
	}
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (default from config, 8080)")
	cmd.Flags().StringVarP(&opts.seed, "seed", "s", "", "Seed document (JSON or YAML)")
	cmd.Flags().BoolVar(&opts.noPDF, "no-pdf", false, "Disable PDF export")
	return cmd
}

func runServe(cmd *cobra.Command, opts *serveOptions) error {
	cfg, err := opts.global.load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.port != 0 {
		cfg.Port = opts.port
	}
	if opts.seed != "" {
		cfg.Seed = opts.seed
	}

	log := newLogger(cmd, cfg, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	alloc := ids.NewUUIDAllocator()
	doc, err := loadDocument(cfg.Seed, alloc)
	if err != nil {
		return fmt.Errorf("failed to load seed: %w", err)
	}
	session := document.NewSession(doc, alloc, log)

	enhancer, cleanup, err := newEnhancer(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	var printer export.Printer
	if !opts.noPDF {
		printer = export.NewChromePrinter(cfg.ChromePath, 0, log)
	}

	srv, err := server.New(server.Config{
		Port:         cfg.Port,
		PresentLabel: cfg.PresentLabel,
	}, server.Deps{
		Session:   session,
		Enhancer:  enhancer,
		Printer:   printer,
		RateLimit: ratelimit.LoadConfig(os.Getenv),
		Log:       log,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	log.WithField("sections", len(doc.Sections)).Info("Session seeded")
	return srv.Start(ctx)
}
