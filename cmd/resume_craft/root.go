package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-craft/internal/config"
	"github.com/jonathan/resume-craft/internal/enhance"
	"github.com/jonathan/resume-craft/internal/ids"
	"github.com/jonathan/resume-craft/internal/llm"
	"github.com/jonathan/resume-craft/internal/logging"
	"github.com/jonathan/resume-craft/internal/seed"
	"github.com/jonathan/resume-craft/internal/types"
)

// globalOptions are the persistent flags shared by every subcommand
type globalOptions struct {
	configPath string
	logLevel   string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:           "resume_craft",
		Short:         "Structured résumé editor with live preview and AI polishing",
		Long:          "resume_craft hosts an editing session for a structured résumé document over HTTP, and renders, validates and polishes résumé documents from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to JSON config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Print detailed debug information")

	root.AddCommand(
		newServeCmd(opts),
		newRenderCmd(opts),
		newValidateCmd(opts),
		newPolishCmd(opts),
		newTemplateCmd(opts),
	)
	return root
}

// load resolves the configuration: config file, environment, flags, defaults
func (o *globalOptions) load() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.logLevel != "" {
		cfg.LogLevel = o.logLevel
	}
	if o.verbose {
		cfg.Verbose = true
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// newLogger builds a logger writing to the command's stderr
func newLogger(cmd *cobra.Command, cfg config.Config, format string) *logrus.Logger {
	return logging.NewWithOutput(cmd.ErrOrStderr(), cfg.LogLevel, format)
}

// loadDocument loads a seed file, or the built-in template when path is empty
func loadDocument(path string, alloc ids.Allocator) (types.ResumeData, error) {
	if path == "" {
		return seed.Template()
	}
	return seed.LoadFile(path, alloc)
}

// newEnhancer builds the enhancement port from configuration. Without an API key the
// enhancer is disabled and returns every input unchanged.
func newEnhancer(ctx context.Context, cfg config.Config, log logrus.FieldLogger) (*enhance.Enhancer, func(), error) {
	provider, err := llm.ParseProvider(cfg.LLMProvider)
	if err != nil {
		return nil, nil, err
	}

	opts := enhance.Options{
		Timeout: time.Duration(cfg.EnhanceTimeoutSeconds) * time.Second,
		Log:     log,
	}
	closers := []func() error{}
	cleanup := func() {
		for _, c := range closers {
			if err := c(); err != nil {
				log.WithError(err).Warn("cleanup failed")
			}
		}
	}

	apiKey := cfg.ProviderAPIKey()
	if apiKey == "" {
		log.WithField("provider", provider).Warn("No API key configured, text enhancement is disabled")
		return enhance.New(nil, opts), cleanup, nil
	}

	llmConfig := llm.DefaultConfigFor(provider)
	if cfg.Model != "" {
		llmConfig = llmConfig.WithModel(llm.TierLite, cfg.Model).WithModel(llm.TierStandard, cfg.Model)
	}
	client, err := llm.NewClient(ctx, llmConfig, apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	closers = append(closers, client.Close)

	if cfg.RedisURL != "" {
		rdb, err := enhance.NewRedisClient(cfg.RedisURL)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		cache := enhance.NewRedisCache(rdb, time.Duration(cfg.CacheTTLSeconds)*time.Second)
		closers = append(closers, cache.Close)
		opts.Cache = cache
	} else {
		opts.Cache = enhance.NewMemoryCache(0)
	}

	log.WithFields(logrus.Fields{
		"provider": provider,
		"model":    client.GetModel(llm.TierLite),
		"redis":    cfg.RedisURL != "",
	}).Info("Text enhancement enabled")
	return enhance.New(client, opts), cleanup, nil
}

// writeOutput writes data to path, or to stdout when path is empty or "-"
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" || path == "-" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
