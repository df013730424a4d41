package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-analyzer/internal/db"
	"github.com/jonathan/cv-analyzer/internal/ingestion"
	"github.com/jonathan/cv-analyzer/internal/llm"
	"github.com/jonathan/cv-analyzer/internal/market"
	"github.com/jonathan/cv-analyzer/internal/reporting"
	"github.com/jonathan/cv-analyzer/internal/types"
)

func newHarness() *harness {
	return &harness{
		client: &scriptedClient{responses: happyResponses},
		source: &staticSource{snippets: happySnippets},
	}
}

func TestRun_HappyPath(t *testing.T) {
	h := newHarness()

	state := New(h.options()).Run(context.Background(), Input{
		DocumentPath: "cv.txt",
		TargetRole:   "ML Engineer",
		Language:     "english",
		Provider:     "auto",
	})

	require.Empty(t, state.Errors)
	require.NotNil(t, state.StructuredResume)
	assert.Equal(t, "Ana Putri", state.StructuredResume.Name)
	assert.Equal(t, []string{"docker", "langchain", "python"}, state.StructuredResume.SkillsExplicit)

	require.NotNil(t, state.SkillAnalysis)
	assert.Equal(t, []string{"docker", "faiss", "langchain", "python", "rag"}, state.SkillAnalysis.ExplicitSkills)
	assert.Contains(t, state.SkillAnalysis.ImplicitSkills, "containerization")
	assert.Contains(t, state.SkillAnalysis.ImplicitSkills, "vector search")

	require.NotNil(t, state.MarketRequirements)
	assert.Equal(t, "ML Engineer", state.MarketRequirements.Role)
	assert.Equal(t, "fake-search", state.MarketRequirements.Source)
	assert.Equal(t, []string{"docker", "kubernetes", "mlflow", "python"}, state.MarketRequirements.Skills)

	assert.Contains(t, state.ReportMarkdown, "## Overview")
	assert.Contains(t, state.ReportMarkdown, "| kubernetes | listed in most postings |")
	assert.Empty(t, reporting.Validate(state.ReportMarkdown, types.LanguageEnglish))

	assert.Equal(t, 4, h.client.calls)
	assert.Equal(t, 1, h.clientBuilds, "client is built once per run")
	assert.Equal(t, 1, h.sourceBuilds)
	assert.True(t, h.client.closed)

	assert.Equal(t, []string{
		"LoadDocument:completed",
		"ParseResume:completed",
		"AnalyzeSkills:completed",
		"FetchMarketRequirements:completed",
		"RenderReport:completed",
	}, h.statuses())
	for _, e := range h.events {
		assert.Equal(t, state.RunID.String(), e.RunID)
		assert.Equal(t, 5, e.Total)
	}
}

func TestRun_UnsupportedExtension(t *testing.T) {
	h := newHarness()
	opts := h.options()
	opts.Loader = ingestion.NewFileLoader()

	state := New(opts).Run(context.Background(), Input{DocumentPath: "cv.docx", TargetRole: "ML Engineer"})

	require.Len(t, state.Errors, 1)
	assert.True(t, strings.HasPrefix(state.Errors[0], "LoadDocument error: unsupported document format .docx"), state.Errors[0])
	assert.Empty(t, state.RawText)
	assert.Nil(t, state.StructuredResume)
	assert.Nil(t, state.SkillAnalysis)
	assert.Nil(t, state.MarketRequirements)
	assert.Empty(t, state.ReportMarkdown)

	assert.Equal(t, 0, h.client.calls)
	assert.Equal(t, 0, h.sourceBuilds)
	assert.Equal(t, []string{
		"LoadDocument:failed",
		"ParseResume:skipped",
		"AnalyzeSkills:skipped",
		"FetchMarketRequirements:skipped",
		"RenderReport:skipped",
	}, h.statuses())
}

func TestRun_ClientBuildFailureIsLoadError(t *testing.T) {
	h := newHarness()
	h.clientErr = &llm.CredentialError{Provider: "gemini", Keys: []string{"GEMINI_API_KEY"}}

	state := New(h.options()).Run(context.Background(), Input{DocumentPath: "cv.txt", TargetRole: "ML Engineer", Provider: "gemini"})

	require.Len(t, state.Errors, 1)
	assert.True(t, strings.HasPrefix(state.Errors[0], "LoadDocument error: LLM init failed (gemini)"), state.Errors[0])
	assert.Contains(t, state.Errors[0], "GEMINI_API_KEY")
	assert.Empty(t, state.RawText)
	assert.Equal(t, 1, h.clientBuilds)
}

func TestRun_ProviderOutageStillProducesReport(t *testing.T) {
	h := newHarness()
	h.client = &scriptedClient{err: errors.New("all providers failed")}

	state := New(h.options()).Run(context.Background(), Input{DocumentPath: "cv.txt", TargetRole: "ML Engineer", Language: "id"})

	require.Empty(t, state.Errors)
	assert.Equal(t, "indonesia", state.Language)
	require.NotNil(t, state.StructuredResume)
	assert.Equal(t, []string{"docker", "langchain", "python"}, state.StructuredResume.SkillsExplicit)
	assert.Equal(t, []string{"docker", "kubernetes", "mlflow", "python", "pytorch"}, state.MarketRequirements.Skills)
	assert.Contains(t, state.ReportMarkdown, "## Ikhtisar")
	assert.Contains(t, state.ReportMarkdown, "prioritas belajar")
	assert.Equal(t, 4, h.client.calls)
}

func TestRun_ZeroSearchResultsIsFatal(t *testing.T) {
	h := newHarness()
	h.source = &staticSource{}

	state := New(h.options()).Run(context.Background(), Input{DocumentPath: "cv.txt", TargetRole: "ML Engineer"})

	require.Len(t, state.Errors, 1)
	assert.True(t, strings.HasPrefix(state.Errors[0], "FetchMarketRequirements error:"), state.Errors[0])
	assert.Contains(t, state.Errors[0], "ML Engineer")

	// Earlier outputs are kept for diagnostics
	assert.NotNil(t, state.StructuredResume)
	assert.NotNil(t, state.SkillAnalysis)
	assert.Nil(t, state.MarketRequirements)
	assert.Empty(t, state.ReportMarkdown)
	assert.Equal(t, 2, h.client.calls)
}

func TestRun_EmptyTargetRole(t *testing.T) {
	h := newHarness()

	state := New(h.options()).Run(context.Background(), Input{DocumentPath: "cv.txt", TargetRole: "  "})

	require.Len(t, state.Errors, 1)
	assert.Equal(t, "FetchMarketRequirements error: target role is empty", state.Errors[0])
	assert.Equal(t, 0, h.source.searches)
}

func TestRun_EmptyDocument(t *testing.T) {
	h := newHarness()
	opts := h.options()
	opts.Loader = textLoader("  \n\n ")

	state := New(opts).Run(context.Background(), Input{DocumentPath: "cv.txt", TargetRole: "ML Engineer"})

	require.Len(t, state.Errors, 1)
	assert.Equal(t, "ParseResume error: document is empty", state.Errors[0])
	assert.Nil(t, state.StructuredResume)
	assert.Equal(t, 0, h.client.calls)
}

func TestRun_Cancellation(t *testing.T) {
	t.Run("before start", func(t *testing.T) {
		h := newHarness()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		state := New(h.options()).Run(ctx, Input{DocumentPath: "cv.txt", TargetRole: "ML Engineer"})

		assert.Equal(t, []string{"LoadDocument error: context canceled"}, state.Errors)
		assert.Equal(t, 0, h.clientBuilds)
	})

	t.Run("during skill analysis", func(t *testing.T) {
		h := newHarness()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		h.client.onInvoke = func(call int) {
			if call == 2 {
				cancel()
			}
		}

		state := New(h.options()).Run(ctx, Input{DocumentPath: "cv.txt", TargetRole: "ML Engineer"})

		assert.Equal(t, []string{"AnalyzeSkills error: context canceled"}, state.Errors)
		assert.NotNil(t, state.StructuredResume)
		assert.Nil(t, state.SkillAnalysis, "cancelled stage does not write its output")
		assert.Empty(t, state.ReportMarkdown)
		assert.Equal(t, 2, h.client.calls)
		assert.True(t, h.client.closed)
	})
}

func TestRun_Persistence(t *testing.T) {
	t.Run("records every stage output", func(t *testing.T) {
		h := newHarness()
		store := &recordingStore{}
		opts := h.options()
		opts.Store = store

		state := New(opts).Run(context.Background(), Input{DocumentPath: "cv.txt", TargetRole: "ML Engineer"})

		require.Empty(t, state.Errors)
		require.Len(t, store.created, 1)
		assert.Equal(t, state.RunID, store.created[0])
		assert.Equal(t, []string{
			db.StepRawText,
			db.StepStructuredResume,
			db.StepSkillAnalysis,
			db.StepMarketRequirements,
			db.StepReportMarkdown,
			db.StepErrors,
		}, store.steps())
		assert.Equal(t, db.StatusCompleted, store.status)
	})

	t.Run("failed run", func(t *testing.T) {
		h := newHarness()
		h.source = &staticSource{err: errors.New("search quota exceeded")}
		store := &recordingStore{}
		opts := h.options()
		opts.Store = store

		state := New(opts).Run(context.Background(), Input{DocumentPath: "cv.txt", TargetRole: "ML Engineer"})

		require.Len(t, state.Errors, 1)
		assert.Equal(t, db.StatusFailed, store.status)
		last := store.artifacts[len(store.artifacts)-1]
		assert.Equal(t, db.StepErrors, last.step)
		assert.Equal(t, state.Errors, last.content)
	})

	t.Run("create failure disables persistence", func(t *testing.T) {
		h := newHarness()
		store := &recordingStore{createErr: errors.New("connection refused")}
		opts := h.options()
		opts.Store = store

		state := New(opts).Run(context.Background(), Input{DocumentPath: "cv.txt", TargetRole: "ML Engineer"})

		assert.Empty(t, state.Errors)
		assert.NotEmpty(t, state.ReportMarkdown)
		assert.Empty(t, store.artifacts)
		assert.Empty(t, store.status)
	})
}

func TestRun_IsolatedRuns(t *testing.T) {
	h := newHarness()
	opts := h.options()
	opts.OnProgress = nil

	var mu sync.Mutex
	var clients []*scriptedClient
	opts.NewClient = func(_ context.Context, _ llm.Provider) (llm.Client, error) {
		mu.Lock()
		defer mu.Unlock()
		c := &scriptedClient{responses: happyResponses}
		clients = append(clients, c)
		return c, nil
	}
	opts.NewSource = func(_ context.Context) (market.Source, error) {
		return &staticSource{snippets: happySnippets}, nil
	}
	runner := New(opts)

	states := make([]*types.PipelineState, 3)
	var wg sync.WaitGroup
	for i := range states {
		wg.Add(1)
		go func() {
			defer wg.Done()
			states[i] = runner.Run(context.Background(), Input{DocumentPath: "cv.txt", TargetRole: "ML Engineer"})
		}()
	}
	wg.Wait()

	require.Len(t, clients, len(states), "every run builds its own client")
	for _, c := range clients {
		assert.Equal(t, 4, c.calls)
		assert.True(t, c.closed)
	}
	seen := map[string]bool{}
	for _, s := range states {
		assert.Empty(t, s.Errors)
		assert.Equal(t, states[0].ReportMarkdown, s.ReportMarkdown)
		assert.False(t, seen[s.RunID.String()])
		seen[s.RunID.String()] = true
	}
}

func TestStages(t *testing.T) {
	assert.Equal(t, []Stage{StageLoad, StageParse, StageAnalyze, StageMarket, StageReport}, Stages())
}
