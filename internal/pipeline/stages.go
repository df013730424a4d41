package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/cv-analyzer/internal/db"
	"github.com/jonathan/cv-analyzer/internal/llm"
	"github.com/jonathan/cv-analyzer/internal/market"
	"github.com/jonathan/cv-analyzer/internal/parsing"
	"github.com/jonathan/cv-analyzer/internal/reporting"
	"github.com/jonathan/cv-analyzer/internal/skills"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// Stages return an error instead of writing their output field; the output is
// assigned only after the context is confirmed live.

func loadDocument(ctx context.Context, rn *run) error {
	if _, err := rn.llmClient(ctx); err != nil {
		return err
	}

	doc, err := rn.opts.Loader.Load(ctx, rn.state.DocumentPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	rn.state.RawText = doc.Text
	rn.log.Info("document loaded",
		slog.String("format", string(doc.Format)),
		slog.Int("chars", len(doc.Text)),
		slog.String("sha256", doc.Hash))
	rn.saveText(ctx, db.StepRawText, db.CategoryIngestion, doc.Text)
	rn.emit(0, StageLoad, StatusCompleted, fmt.Sprintf("Loaded %d characters from %s", len(doc.Text), doc.Path), nil)
	return nil
}

func parseResume(ctx context.Context, rn *run) error {
	if strings.TrimSpace(rn.state.RawText) == "" {
		return errors.New("document is empty")
	}
	client, err := rn.llmClient(ctx)
	if err != nil {
		return err
	}

	result := parsing.ParseResume(ctx, client, rn.state.RawText)
	logExtraction(rn.log, StageParse, result)
	if err := ctx.Err(); err != nil {
		return err
	}

	resume := result.Value
	rn.state.StructuredResume = &resume
	rn.save(ctx, db.StepStructuredResume, db.CategoryAnalysis, rn.state.StructuredResume)
	rn.emit(1, StageParse, StatusCompleted,
		fmt.Sprintf("Structured resume with %d skills and %d experiences", len(resume.SkillsExplicit), len(resume.Experiences)),
		rn.state.StructuredResume)
	return nil
}

func analyzeSkills(ctx context.Context, rn *run) error {
	if rn.state.StructuredResume == nil {
		return errors.New("resume is not structured")
	}
	client, err := rn.llmClient(ctx)
	if err != nil {
		return err
	}

	analysis, result := skills.Analyze(ctx, client, rn.state.StructuredResume)
	logExtraction(rn.log, StageAnalyze, result)
	if err := ctx.Err(); err != nil {
		return err
	}

	rn.state.SkillAnalysis = analysis
	rn.save(ctx, db.StepSkillAnalysis, db.CategoryAnalysis, analysis)
	rn.emit(2, StageAnalyze, StatusCompleted,
		fmt.Sprintf("%d explicit and %d implicit skills", len(analysis.ExplicitSkills), len(analysis.ImplicitSkills)),
		analysis)
	return nil
}

func fetchMarket(ctx context.Context, rn *run) error {
	role := strings.TrimSpace(rn.state.TargetRole)
	if role == "" {
		return errors.New("target role is empty")
	}
	client, err := rn.llmClient(ctx)
	if err != nil {
		return err
	}
	source, err := rn.marketSource(ctx)
	if err != nil {
		return err
	}

	req, result, err := market.Requirements(ctx, client, source, role)
	if err != nil {
		return err
	}
	logExtraction(rn.log, StageMarket, result)
	if err := ctx.Err(); err != nil {
		return err
	}

	rn.state.MarketRequirements = req
	rn.save(ctx, db.StepMarketRequirements, db.CategoryMarket, req)
	rn.emit(3, StageMarket, StatusCompleted,
		fmt.Sprintf("%d market skills from %s", len(req.Skills), req.Source), req)
	return nil
}

func renderReport(ctx context.Context, rn *run) error {
	s := rn.state
	if s.StructuredResume == nil || s.SkillAnalysis == nil || s.MarketRequirements == nil {
		return errors.New("incomplete data for report")
	}
	client, err := rn.llmClient(ctx)
	if err != nil {
		return err
	}

	md, result := reporting.Make(ctx, client, s.StructuredResume, s.SkillAnalysis, s.MarketRequirements, types.ParseLanguage(s.Language))
	logExtraction(rn.log, StageReport, result)
	if err := ctx.Err(); err != nil {
		return err
	}

	s.ReportMarkdown = md
	rn.saveText(ctx, db.StepReportMarkdown, db.CategoryReport, md)
	rn.emit(4, StageReport, StatusCompleted, fmt.Sprintf("Rendered %d-character report", len(md)), nil)
	return nil
}

func logExtraction[T any](log *slog.Logger, name Stage, result llm.Result[T]) {
	log = log.With(slog.String("stage", string(name)), slog.String("path", string(result.Path)))
	if result.UsedFallback() {
		log.Warn("extraction fell back to deterministic default", slog.Any("cause", result.Err))
		return
	}
	log.Info("extraction succeeded")
}
