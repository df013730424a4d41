// Package pipeline runs the five analysis stages over one candidate document.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonathan/cv-analyzer/internal/db"
	"github.com/jonathan/cv-analyzer/internal/llm"
	"github.com/jonathan/cv-analyzer/internal/market"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// Stage names one pipeline stage
type Stage string

// Pipeline stages in execution order
const (
	StageLoad    Stage = "LoadDocument"
	StageParse   Stage = "ParseResume"
	StageAnalyze Stage = "AnalyzeSkills"
	StageMarket  Stage = "FetchMarketRequirements"
	StageReport  Stage = "RenderReport"
)

type stage struct {
	name Stage
	run  func(ctx context.Context, r *run) error
}

var stages []stage

// stages is assigned in init because the stage funcs refer back to it
func init() {
	stages = []stage{
		{StageLoad, loadDocument},
		{StageParse, parseResume},
		{StageAnalyze, analyzeSkills},
		{StageMarket, fetchMarket},
		{StageReport, renderReport},
	}
}

// Stages lists every stage in execution order
func Stages() []Stage {
	out := make([]Stage, len(stages))
	for i, s := range stages {
		out[i] = s.name
	}
	return out
}

// Runner executes pipeline runs. A Runner may serve concurrent runs; each run
// owns its state, its LLM client and its market source.
type Runner struct {
	opts Options
}

// New creates a Runner
func New(opts Options) *Runner {
	return &Runner{opts: opts.withDefaults()}
}

// run is the per-invocation accumulator
type run struct {
	opts   Options
	state  *types.PipelineState
	log    *slog.Logger
	client llm.Client
	source market.Source
	store  Store
}

// Run executes every stage in order and returns the terminal state. It never
// fails: faults are recorded in the state's Errors.
func (r *Runner) Run(ctx context.Context, in Input) *types.PipelineState {
	state := types.NewPipelineState(
		in.DocumentPath,
		in.TargetRole,
		string(types.ParseLanguage(in.Language)),
		string(llm.NormalizeProvider(in.Provider)),
	)

	rn := &run{
		opts:  r.opts,
		state: state,
		log:   r.opts.Logger.With(slog.String("run_id", state.RunID.String())),
		store: r.opts.Store,
	}
	defer rn.closeClient()

	rn.begin(ctx)
	for i, s := range stages {
		rn.exec(ctx, i, s)
	}
	rn.finish(ctx)

	return state
}

func (rn *run) exec(ctx context.Context, index int, s stage) {
	log := rn.log.With(slog.String("stage", string(s.name)))

	if index > 0 && rn.state.Failed() {
		log.Debug("stage skipped")
		rn.emit(index, s.name, StatusSkipped, "skipped after earlier error", nil)
		return
	}
	if err := ctx.Err(); err != nil {
		rn.fail(index, s.name, err)
		return
	}

	start := time.Now()
	log.Info("stage started")
	if err := s.run(ctx, rn); err != nil {
		rn.fail(index, s.name, err)
		log.Warn("stage failed", slog.Duration("duration", time.Since(start)), slog.Any("error", err))
		return
	}
	log.Info("stage finished", slog.Duration("duration", time.Since(start)))
}

func (rn *run) fail(index int, name Stage, err error) {
	rn.state.AppendError("%s error: %v", name, err)
	rn.emit(index, name, StatusFailed, err.Error(), nil)
}

func (rn *run) emit(index int, name Stage, status, message string, content any) {
	if rn.opts.OnProgress == nil {
		return
	}
	rn.opts.OnProgress(ProgressEvent{
		Stage:   name,
		Index:   index + 1,
		Total:   len(stages),
		Status:  status,
		Message: message,
		RunID:   rn.state.RunID.String(),
		Content: content,
	})
}

// llmClient returns the run's client, building it on first use
func (rn *run) llmClient(ctx context.Context) (llm.Client, error) {
	if rn.client != nil {
		return rn.client, nil
	}
	provider := llm.Provider(rn.state.Provider)
	client, err := rn.opts.NewClient(ctx, provider)
	if err != nil {
		return nil, fmt.Errorf("LLM init failed (%s): %w", provider, err)
	}
	rn.client = client
	return client, nil
}

// marketSource returns the run's search source, building it on first use
func (rn *run) marketSource(ctx context.Context) (market.Source, error) {
	if rn.source != nil {
		return rn.source, nil
	}
	source, err := rn.opts.NewSource(ctx)
	if err != nil {
		return nil, fmt.Errorf("market source init failed: %w", err)
	}
	rn.source = source
	return source, nil
}

func (rn *run) closeClient() {
	if rn.client == nil {
		return
	}
	if err := rn.client.Close(); err != nil {
		rn.log.Warn("failed to close LLM client", slog.Any("error", err))
	}
}

// Persistence never changes the pipeline state; failures are logged only.

func (rn *run) begin(ctx context.Context) {
	if rn.store == nil {
		return
	}
	s := rn.state
	if err := rn.store.CreateRun(context.WithoutCancel(ctx), s.RunID, s.DocumentPath, s.TargetRole, s.Language, s.Provider); err != nil {
		rn.log.Warn("failed to create database run, continuing without persistence", slog.Any("error", err))
		rn.store = nil
		return
	}
	rn.log.Debug("created database run")
}

func (rn *run) save(ctx context.Context, step, category string, content any) {
	if rn.store == nil {
		return
	}
	if err := rn.store.SaveArtifact(context.WithoutCancel(ctx), rn.state.RunID, step, category, content); err != nil {
		rn.log.Warn("failed to save artifact", slog.String("step", step), slog.Any("error", err))
	}
}

func (rn *run) saveText(ctx context.Context, step, category, text string) {
	if rn.store == nil {
		return
	}
	if err := rn.store.SaveTextArtifact(context.WithoutCancel(ctx), rn.state.RunID, step, category, text); err != nil {
		rn.log.Warn("failed to save artifact", slog.String("step", step), slog.Any("error", err))
	}
}

func (rn *run) finish(ctx context.Context) {
	if rn.state.Failed() {
		rn.log.Warn("pipeline finished with errors", slog.Int("errors", len(rn.state.Errors)))
	} else {
		rn.log.Info("pipeline finished")
	}

	if rn.store == nil {
		return
	}
	rn.save(ctx, db.StepErrors, db.CategoryReport, rn.state.Errors)
	status := db.StatusFor(len(rn.state.Errors))
	if err := rn.store.CompleteRun(context.WithoutCancel(ctx), rn.state.RunID, status); err != nil {
		rn.log.Warn("failed to complete database run", slog.Any("error", err))
	}
}

