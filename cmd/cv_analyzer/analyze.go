package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/cv-analyzer/internal/config"
	"github.com/jonathan/cv-analyzer/internal/db"
	"github.com/jonathan/cv-analyzer/internal/llm"
	"github.com/jonathan/cv-analyzer/internal/observability"
	"github.com/jonathan/cv-analyzer/internal/pipeline"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a CV against a target role and write a gap report",
	Long: `Runs the full analysis: load document -> parse resume -> analyze skills -> fetch market requirements -> render report.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runAnalyze,
}

var (
	analyzeConfigPath     string
	analyzeCV             string
	analyzeRole           string
	analyzeOut            string
	analyzeProvider       string
	analyzeLanguage       string
	analyzeSearchProvider string
	analyzeSecrets        string
	analyzeDatabaseURL    string
	analyzeTimeout        int
	analyzeVerbose        bool
	analyzeLogLevel       string
)

func init() {
	// Config file flag (processed first)
	analyzeCmd.Flags().StringVar(&analyzeConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	analyzeCmd.Flags().StringVar(&analyzeCV, "cv", "", "Path to the CV (.txt, .md, .pdf, .html)")
	analyzeCmd.Flags().StringVarP(&analyzeRole, "role", "r", "", "Target role, e.g. \"ML Engineer\"")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", config.DefaultOut, "Path to write the markdown report")
	analyzeCmd.Flags().StringVarP(&analyzeProvider, "provider", "p", "auto", "LLM provider: auto, gemini, mistral or anthropic")
	analyzeCmd.Flags().StringVarP(&analyzeLanguage, "language", "l", "english", "Report language: english or indonesia")
	analyzeCmd.Flags().StringVar(&analyzeSearchProvider, "search-provider", "auto", "Market search provider: auto, tavily or google")
	analyzeCmd.Flags().StringVar(&analyzeSecrets, "secrets", "", "Path to a YAML secrets file (defaults to ./secrets.yaml when present)")
	analyzeCmd.Flags().IntVar(&analyzeTimeout, "timeout", config.DefaultAttemptTimeout, "Seconds allowed per provider attempt")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print intermediate artifacts")
	analyzeCmd.Flags().StringVar(&analyzeLogLevel, "log-level", "warn", "Log level: debug, info, warn or error")

	// Database URL for run persistence
	analyzeCmd.Flags().StringVar(&analyzeDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	logger, err := newLogger(analyzeLogLevel, errOut)
	if err != nil {
		return err
	}

	cfg, err := resolveAnalyzeConfig(cmd)
	if err != nil {
		return err
	}

	secrets, err := config.LoadSecrets(config.ResolveSecretsFile(cfg.SecretsFile))
	if err != nil {
		return err
	}

	// Fail fast when a single provider was requested without its key
	if err := llm.CheckCredentials(secrets, llm.NormalizeProvider(cfg.Provider)); err != nil {
		return err
	}

	opts := pipeline.Options{
		Logger:         logger,
		Credentials:    secrets,
		LLM:            cfg.LLMOptions(logger),
		SearchProvider: cfg.SearchProvider,
		OnProgress:     progressReporter(out, printerFor(cfg.Verbose, out)),
	}

	if database := openStore(ctx, cfg.DatabaseURL, logger); database != nil {
		defer database.Close()
		opts.Store = database
	}

	state := pipeline.New(opts).Run(ctx, pipeline.Input{
		DocumentPath: cfg.Document,
		TargetRole:   cfg.Role,
		Language:     cfg.Language,
		Provider:     cfg.Provider,
	})

	for _, msg := range state.Errors {
		_, _ = fmt.Fprintf(errOut, "[WARN] %s\n", msg)
	}

	if state.ReportMarkdown == "" {
		return fmt.Errorf("no report produced (run %s)", state.RunID)
	}

	if err := writeReport(cfg.Out, state.ReportMarkdown); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Report written to %s (run %s)\n", cfg.Out, state.RunID)
	return nil
}

// resolveAnalyzeConfig layers the config file, changed flags, the
// environment and defaults, then checks required fields.
func resolveAnalyzeConfig(cmd *cobra.Command) (config.Config, error) {
	// Step 1: Load config file if provided
	var cfg config.Config
	if analyzeConfigPath != "" {
		loaded, err := config.LoadConfig(analyzeConfigPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	// Step 2: Apply CLI overrides, only for flags that were explicitly set
	flags := cmd.Flags()
	if flags.Changed("cv") {
		cfg.Document = analyzeCV
	}
	if flags.Changed("role") {
		cfg.Role = analyzeRole
	}
	if flags.Changed("out") {
		cfg.Out = analyzeOut
	}
	if flags.Changed("provider") {
		cfg.Provider = analyzeProvider
	}
	if flags.Changed("language") {
		cfg.Language = analyzeLanguage
	}
	if flags.Changed("search-provider") {
		cfg.SearchProvider = analyzeSearchProvider
	}
	if flags.Changed("secrets") {
		cfg.SecretsFile = analyzeSecrets
	}
	if flags.Changed("timeout") {
		cfg.AttemptTimeout = analyzeTimeout
	}
	if flags.Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = analyzeDatabaseURL
	}

	// Step 3: Environment fallback and defaults
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	cfg = cfg.MergeWithDefaults(config.Defaults())

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}

	// Step 4: Validate required fields
	if strings.TrimSpace(cfg.Document) == "" {
		return config.Config{}, fmt.Errorf("--cv is required (via flag or config)")
	}
	if strings.TrimSpace(cfg.Role) == "" {
		return config.Config{}, fmt.Errorf("--role is required (via flag or config)")
	}
	return cfg, nil
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "info":
		lvl = slog.LevelInfo
	case "", "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid --log-level %q: must be debug, info, warn or error", level)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func printerFor(verbose bool, w io.Writer) *observability.Printer {
	if !verbose {
		return nil
	}
	return observability.NewPrinter(w)
}

// progressReporter prints a banner per stage and, with a printer, the
// artifact the stage produced.
func progressReporter(w io.Writer, printer *observability.Printer) pipeline.ProgressCallback {
	return func(ev pipeline.ProgressEvent) {
		_, _ = fmt.Fprintf(w, "Stage %d/%d: %s (%s)\n", ev.Index, ev.Total, ev.Stage, ev.Status)
		if ev.Message != "" {
			_, _ = fmt.Fprintf(w, "  %s\n", ev.Message)
		}
		if printer != nil && ev.Content != nil {
			printer.PrintArtifact(ev.Content)
		}
	}
}

// openStore connects to Postgres when a URL is configured. Failures are
// logged and the run continues without persistence.
func openStore(ctx context.Context, databaseURL string, logger *slog.Logger) *db.DB {
	if databaseURL == "" {
		return nil
	}
	database, err := db.Connect(ctx, databaseURL)
	if err != nil {
		logger.Warn("persistence disabled", slog.Any("error", err))
		return nil
	}
	if err := database.EnsureSchema(ctx); err != nil {
		logger.Warn("persistence disabled", slog.Any("error", err))
		database.Close()
		return nil
	}
	return database
}

func writeReport(path, markdown string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(markdown), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
