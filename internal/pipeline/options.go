package pipeline

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jonathan/cv-analyzer/internal/ingestion"
	"github.com/jonathan/cv-analyzer/internal/llm"
	"github.com/jonathan/cv-analyzer/internal/market"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Stage   Stage  `json:"stage"`
	Index   int    `json:"index"` // 1-based
	Total   int    `json:"total"`
	Status  string `json:"status"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// Progress statuses
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusSkipped   = "skipped"
)

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// ClientFactory builds the LLM client for a run
type ClientFactory func(ctx context.Context, provider llm.Provider) (llm.Client, error)

// SourceFactory builds the market data source for a run
type SourceFactory func(ctx context.Context) (market.Source, error)

// Store persists runs and their stage outputs. *db.DB satisfies it.
type Store interface {
	CreateRun(ctx context.Context, runID uuid.UUID, documentPath, targetRole, language, provider string) error
	SaveArtifact(ctx context.Context, runID uuid.UUID, step, category string, content any) error
	SaveTextArtifact(ctx context.Context, runID uuid.UUID, step, category, text string) error
	CompleteRun(ctx context.Context, runID uuid.UUID, status string) error
}

// Options holds the collaborators a Runner uses. Zero values select defaults.
type Options struct {
	Logger         *slog.Logger
	Loader         ingestion.Loader
	Credentials    llm.CredentialSource
	LLM            llm.Options
	SearchProvider string
	NewClient      ClientFactory
	NewSource      SourceFactory
	Store          Store // optional
	OnProgress     ProgressCallback
}

// Input is the caller-supplied part of a run
type Input struct {
	DocumentPath string
	TargetRole   string
	Language     string
	Provider     string
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Loader == nil {
		o.Loader = ingestion.NewFileLoader()
	}
	if o.Credentials == nil {
		o.Credentials = llm.EnvCredentials{}
	}
	if o.LLM.Logger == nil {
		o.LLM.Logger = o.Logger
	}
	o.LLM = o.LLM.WithDefaults()
	if o.NewClient == nil {
		creds, llmOpts := o.Credentials, o.LLM
		o.NewClient = func(ctx context.Context, p llm.Provider) (llm.Client, error) {
			return llm.New(ctx, p, creds, llmOpts)
		}
	}
	if o.NewSource == nil {
		creds, selector := o.Credentials, o.SearchProvider
		o.NewSource = func(ctx context.Context) (market.Source, error) {
			return market.NewSource(ctx, creds, selector)
		}
	}
	return o
}
