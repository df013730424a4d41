package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/cv-analyzer/internal/ingestion"
	"github.com/jonathan/cv-analyzer/internal/llm"
	"github.com/jonathan/cv-analyzer/internal/market"
)

// scriptedClient answers the i-th call with responses[i]
type scriptedClient struct {
	responses []string
	err       error
	onInvoke  func(call int)
	calls     int
	closed    bool
}

func (c *scriptedClient) Invoke(_ context.Context, _ []llm.Message) (string, error) {
	c.calls++
	if c.onInvoke != nil {
		c.onInvoke(c.calls)
	}
	if c.err != nil {
		return "", c.err
	}
	if c.calls > len(c.responses) {
		return "", errors.New("no scripted response")
	}
	return c.responses[c.calls-1], nil
}

func (c *scriptedClient) Close() error {
	c.closed = true
	return nil
}

type staticSource struct {
	snippets []string
	err      error
	searches int
}

func (s *staticSource) Name() string { return "fake-search" }

func (s *staticSource) Search(_ context.Context, _ string) ([]string, error) {
	s.searches++
	return s.snippets, s.err
}

type savedArtifact struct {
	step     string
	category string
	content  any
}

type recordingStore struct {
	mu        sync.Mutex
	createErr error
	created   []uuid.UUID
	artifacts []savedArtifact
	status    string
}

func (s *recordingStore) CreateRun(_ context.Context, runID uuid.UUID, _, _, _, _ string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	s.created = append(s.created, runID)
	return nil
}

func (s *recordingStore) SaveArtifact(_ context.Context, _ uuid.UUID, step, category string, content any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = append(s.artifacts, savedArtifact{step, category, content})
	return nil
}

func (s *recordingStore) SaveTextArtifact(_ context.Context, _ uuid.UUID, step, category, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.artifacts = append(s.artifacts, savedArtifact{step, category, text})
	return nil
}

func (s *recordingStore) CompleteRun(_ context.Context, _ uuid.UUID, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	return nil
}

func (s *recordingStore) steps() []string {
	out := make([]string, 0, len(s.artifacts))
	for _, a := range s.artifacts {
		out = append(out, a.step)
	}
	return out
}

const resumeText = `Ana Putri
Machine learning engineer building retrieval systems.

Experience
Acme AI - ML Engineer (2021-2024)
- Built RAG search over support tickets

Skills
Python, Docker, LangChain
`

func textLoader(text string) ingestion.Loader {
	return ingestion.LoaderFunc(func(_ context.Context, path string) (*ingestion.Document, error) {
		return ingestion.TextDocument(path, text), nil
	})
}

// harness wires fakes into Options and counts factory calls
type harness struct {
	client       *scriptedClient
	source       *staticSource
	clientErr    error
	clientBuilds int
	sourceBuilds int
	events       []ProgressEvent
}

func (h *harness) options() Options {
	return Options{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Loader: textLoader(resumeText),
		NewClient: func(_ context.Context, _ llm.Provider) (llm.Client, error) {
			h.clientBuilds++
			if h.clientErr != nil {
				return nil, h.clientErr
			}
			return h.client, nil
		},
		NewSource: func(_ context.Context) (market.Source, error) {
			h.sourceBuilds++
			return h.source, nil
		},
		OnProgress: func(e ProgressEvent) {
			h.events = append(h.events, e)
		},
	}
}

func (h *harness) statuses() []string {
	out := make([]string, 0, len(h.events))
	for _, e := range h.events {
		out = append(out, string(e.Stage)+":"+e.Status)
	}
	return out
}

var happyResponses = []string{
	`{"name": "Ana Putri", "summary": "Machine learning engineer building retrieval systems.",
	  "skills_explicit": ["Python", "Docker", "LangChain"],
	  "experiences": [{"company": "Acme AI", "title": "ML Engineer", "period": "2021-2024", "bullets": ["Built RAG search over support tickets"]}],
	  "projects": []}`,
	"```json\n{\"skills\": [\"rag\", \"faiss\"]}\n```",
	`{"skills": ["Python", "Docker", "Kubernetes", "MLflow"]}`,
	`{"overview": "Strong retrieval background.",
	  "strengths": [{"skill": "python", "notes": "primary language"}, {"skill": "docker", "notes": "ships containers"}],
	  "gaps": [{"skill": "kubernetes", "notes": "listed in most postings"}, {"skill": "mlflow", "notes": "experiment tracking"}],
	  "plan_weeks": [{"title": "Kubernetes basics", "tasks": ["Run kind locally"]}, {"title": "MLflow", "tasks": ["Track one experiment"]}],
	  "final_notes": "Prioritize orchestration."}`,
}

var happySnippets = []string{
	"ml engineer jobs\nrequires python, docker, kubernetes and mlflow",
	"senior ml engineer\nexperience with pytorch and kubernetes",
}
