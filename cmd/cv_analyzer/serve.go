package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-analyzer/internal/config"
	"github.com/jonathan/cv-analyzer/internal/pipeline"
	"github.com/jonathan/cv-analyzer/internal/server"
)

var (
	servePort           int
	serveSecrets        string
	serveDatabaseURL    string
	serveSearchProvider string
	serveTimeout        int
	serveLogLevel       string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes POST /analyze, GET /runs/{id} and GET /health.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveSecrets, "secrets", "", "Path to a YAML secrets file (defaults to ./secrets.yaml when present)")
	serveCmd.Flags().StringVar(&serveDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")
	serveCmd.Flags().StringVar(&serveSearchProvider, "search-provider", "auto", "Market search provider: auto, tavily or google")
	serveCmd.Flags().IntVar(&serveTimeout, "timeout", config.DefaultAttemptTimeout, "Seconds allowed per provider attempt")
	serveCmd.Flags().StringVar(&serveLogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := newLogger(serveLogLevel, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	cfg := config.Defaults()
	cfg.SecretsFile = serveSecrets
	cfg.SearchProvider = serveSearchProvider
	cfg.AttemptTimeout = serveTimeout
	cfg.DatabaseURL = serveDatabaseURL
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	secrets, err := config.LoadSecrets(config.ResolveSecretsFile(cfg.SecretsFile))
	if err != nil {
		return err
	}

	opts := pipeline.Options{
		Logger:         logger,
		Credentials:    secrets,
		LLM:            cfg.LLMOptions(logger),
		SearchProvider: cfg.SearchProvider,
	}
	srvCfg := server.Config{
		Port:        servePort,
		Credentials: secrets,
		Logger:      logger,
	}

	if database := openStore(ctx, cfg.DatabaseURL, logger); database != nil {
		defer database.Close()
		opts.Store = database
		srvCfg.Runs = database
	}

	srvCfg.Analyzer = pipeline.New(opts)
	return server.New(srvCfg).Start(ctx)
}
