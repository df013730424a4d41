package server

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/cv-analyzer/internal/llm"
	"github.com/jonathan/cv-analyzer/internal/pipeline"
	"github.com/jonathan/cv-analyzer/internal/reporting"
	"github.com/jonathan/cv-analyzer/internal/types"
)

// AnalyzeRequest holds the form fields of POST /analyze
type AnalyzeRequest struct {
	Role     string `validate:"required,max=200"`
	Language string `validate:"omitempty,max=32"`
	Provider string `validate:"omitempty,oneof=auto gemini mistral anthropic"`
}

// AnalyzeResponse is the body returned by POST /analyze
type AnalyzeResponse struct {
	RunID          string   `json:"run_id"`
	ReportMarkdown string   `json:"report_markdown,omitempty"`
	Errors         []string `json:"errors"`
	Issues         []string `json:"issues"`
}

// handleAnalyze stores the uploaded CV in a temp file and runs the pipeline on it
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid multipart form: "+err.Error())
		return
	}

	req := AnalyzeRequest{
		Role:     strings.TrimSpace(r.FormValue("role")),
		Language: strings.TrimSpace(r.FormValue("language")),
		Provider: strings.ToLower(strings.TrimSpace(r.FormValue("provider"))),
	}
	if err := s.validate.Struct(req); err != nil {
		s.writeError(w, validationError(err))
		return
	}

	provider := llm.NormalizeProvider(req.Provider)
	if err := llm.CheckCredentials(s.creds, provider); err != nil {
		s.writeError(w, err)
		return
	}

	file, header, err := r.FormFile("cv")
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "cv", Message: "file upload is required"})
		return
	}
	defer func() { _ = file.Close() }()

	path, err := saveUpload(file, header.Filename)
	if err != nil {
		s.writeError(w, err)
		return
	}
	defer func() { _ = os.Remove(path) }()

	state := s.analyzer.Run(r.Context(), pipeline.Input{
		DocumentPath: path,
		TargetRole:   req.Role,
		Language:     req.Language,
		Provider:     string(provider),
	})

	resp := AnalyzeResponse{
		RunID:          state.RunID.String(),
		ReportMarkdown: state.ReportMarkdown,
		Errors:         state.Errors,
		Issues:         []string{},
	}
	if resp.Errors == nil {
		resp.Errors = []string{}
	}
	if state.ReportMarkdown != "" {
		resp.Issues = reporting.Validate(state.ReportMarkdown, types.ParseLanguage(state.Language))
	}

	status := http.StatusOK
	if state.Failed() {
		status = http.StatusUnprocessableEntity
	}
	s.logger.Info("analysis finished",
		slog.String("run_id", resp.RunID),
		slog.Int("errors", len(resp.Errors)),
		slog.Int("issues", len(resp.Issues)))
	s.jsonResponse(w, status, resp)
}

// saveUpload copies an upload to a temp file that keeps the original
// extension, so the loader can dispatch on it.
func saveUpload(src io.Reader, filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	tmp, err := os.CreateTemp("", "cv-upload-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, src); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to store upload: %w", err)
	}
	return tmp.Name(), nil
}

// handleGetRun returns a stored run with its outputs
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		s.writeError(w, ErrPersistenceDisabled)
		return
	}

	idStr := r.PathValue("id")
	runID, err := uuid.Parse(idStr)
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return
	}

	detail, err := s.runs.GetRunDetail(r.Context(), runID)
	if err != nil {
		s.logger.Error("failed to load run", slog.String("run_id", idStr), slog.Any("error", err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to load run")
		return
	}
	if detail == nil {
		s.writeError(w, &ErrRunNotFound{RunID: idStr})
		return
	}

	s.jsonResponse(w, http.StatusOK, detail)
}

// writeError maps err onto its status code
func (s *Server) writeError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}

// validationError converts validator errors into an *ErrValidation
func validationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return &ErrValidation{Field: strings.ToLower(fe.Field()), Message: fe.Tag()}
	}
	return &ErrValidation{Field: "request", Message: "invalid request"}
}
