package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/automata"
	"github.com/aretw0/automata/internal/presentation/graph"
	"github.com/aretw0/automata/internal/runtime"
	"github.com/aretw0/automata/internal/sanitize"
	"github.com/aretw0/automata/internal/validator"
	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodySize caps request bodies; individual words are further limited by the max word size.
const maxBodySize = 8 << 20

// Engine defines what the HTTP adapter needs from the automata core.
type Engine interface {
	ports.Engine
	Record(ctx context.Context, name string, a *domain.Automaton, words []string) (*domain.Report, error)
	Reports() ports.ReportStore
}

// Server serves the automata JSON API.
type Server struct {
	Engine      Engine
	MaxWordSize int
	metrics     http.Handler
	logger      *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetrics mounts a Prometheus handler on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithMaxWordSize sets the per-word byte limit.
func WithMaxWordSize(n int) Option {
	return func(s *Server) {
		s.MaxWordSize = n
	}
}

// WithLogger sets the logger used for request failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine Engine, opts ...Option) http.Handler {
	s := &Server{
		Engine:      engine,
		MaxWordSize: sanitize.DefaultMaxWordSize,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Post("/evaluate", s.Evaluate)
	r.Post("/validate", s.Validate)
	r.Get("/definitions", s.ListDefinitions)
	r.Get("/definitions/{name}/graph", s.GetGraph)
	r.Route("/reports", func(r chi.Router) {
		r.Get("/", s.ListReports)
		r.Get("/{id}", s.GetReport)
		r.Delete("/{id}", s.DeleteReport)
	})
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// DefinitionRef points at a definition, either inline or by name. Exactly one must be set.
type DefinitionRef struct {
	Definition string `json:"definition,omitempty"`
	Name       string `json:"name,omitempty"`
}

// EvaluateRequest is the body of POST /evaluate.
type EvaluateRequest struct {
	DefinitionRef
	Words []string `json:"words"`
	Trace bool     `json:"trace,omitempty"`
	Save  bool     `json:"save,omitempty"`
}

// EvaluateResponse is the result of POST /evaluate.
type EvaluateResponse struct {
	Definition string                 `json:"definition"`
	ReportID   string                 `json:"report_id,omitempty"`
	Results    []domain.Result        `json:"results"`
	Verdicts   domain.Verdicts        `json:"verdicts"`
	Summary    map[domain.Verdict]int `json:"summary"`
}

// ValidateResponse is the result of POST /validate.
type ValidateResponse struct {
	Valid    bool               `json:"valid"`
	States   int                `json:"states"`
	Rules    int                `json:"rules"`
	Complete bool               `json:"complete"`
	Analysis validator.Analysis `json:"analysis"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Section string `json:"section,omitempty"`
	Line    int    `json:"line,omitempty"`
}

// Evaluate handles the POST /evaluate request.
func (s *Server) Evaluate(w http.ResponseWriter, r *http.Request) {
	var body EvaluateRequest
	if !s.decode(w, r, &body) {
		return
	}
	if err := sanitize.Words(body.Words, s.MaxWordSize); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid input: %w", err))
		s.logger.Warn("Evaluate: input rejected", "err", err, "words", len(body.Words))
		return
	}
	if body.Save && s.Engine.Reports() == nil {
		s.writeError(w, http.StatusBadRequest, errors.New("save requested but no report store is configured"))
		return
	}

	a, name, ok := s.resolve(w, r, body.DefinitionRef)
	if !ok {
		return
	}

	resp := EvaluateResponse{Definition: name}
	if body.Save {
		report, err := s.Engine.Record(r.Context(), name, a, body.Words)
		if err != nil {
			s.fail(w, err)
			return
		}
		resp.ReportID = report.ID
		resp.Results = report.Results
	} else {
		resp.Results = s.Engine.EvaluateEach(r.Context(), a, body.Words)
	}

	resp.Verdicts = domain.Collapse(resp.Results)
	resp.Summary = domain.Count(resp.Results)
	if !body.Trace {
		resp.Results = withoutPaths(resp.Results)
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// Validate handles the POST /validate request.
func (s *Server) Validate(w http.ResponseWriter, r *http.Request) {
	var body DefinitionRef
	if !s.decode(w, r, &body) {
		return
	}
	a, _, ok := s.resolve(w, r, body)
	if !ok {
		return
	}
	analysis := validator.Analyze(a)
	s.writeJSON(w, http.StatusOK, ValidateResponse{
		Valid:    true,
		States:   len(a.States()),
		Rules:    len(a.Rules()),
		Complete: analysis.Complete(),
		Analysis: analysis,
	})
}

// ListDefinitions handles the GET /definitions request.
func (s *Server) ListDefinitions(w http.ResponseWriter, r *http.Request) {
	names, err := s.Engine.Definitions(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"definitions": names})
}

// GetGraph handles the GET /definitions/{name}/graph request.
// The optional "word" query parameter highlights the run of that word.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	a, err := s.Engine.Load(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.fail(w, err)
		return
	}

	var overlay *graph.Overlay
	if r.URL.Query().Has("word") {
		word := r.URL.Query().Get("word")
		if err := sanitize.Word(word, s.MaxWordSize); err != nil {
			s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid input: %w", err))
			return
		}
		overlay = graph.OverlayFromResult(runtime.Run(a, word))
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, graph.GenerateMermaid(a, overlay))
}

// ListReports handles the GET /reports request.
func (s *Server) ListReports(w http.ResponseWriter, r *http.Request) {
	store, ok := s.reports(w)
	if !ok {
		return
	}
	ids, err := store.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"reports": ids})
}

// GetReport handles the GET /reports/{id} request.
func (s *Server) GetReport(w http.ResponseWriter, r *http.Request) {
	store, ok := s.reports(w)
	if !ok {
		return
	}
	report, err := store.Load(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

// DeleteReport handles the DELETE /reports/{id} request.
func (s *Server) DeleteReport(w http.ResponseWriter, r *http.Request) {
	store, ok := s.reports(w)
	if !ok {
		return
	}
	if err := store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "automata-http",
		"version": strings.TrimSpace(automata.Version),
	})
}

// -- Helpers --

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body: %w", err))
		s.logger.Warn("invalid request body", "path", r.URL.Path, "err", err)
		return false
	}
	return true
}

// resolve turns a DefinitionRef into an automaton and the name to report it under.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request, ref DefinitionRef) (*domain.Automaton, string, bool) {
	var (
		a    *domain.Automaton
		name string
		err  error
	)
	switch {
	case ref.Definition != "" && ref.Name != "":
		s.writeError(w, http.StatusBadRequest, errors.New("set either definition or name, not both"))
		return nil, "", false
	case ref.Name != "":
		name = ref.Name
		a, err = s.Engine.Load(r.Context(), ref.Name)
	case ref.Definition != "":
		name = "inline"
		a, err = s.Engine.Parse(r.Context(), []byte(ref.Definition))
	default:
		s.writeError(w, http.StatusBadRequest, errors.New("definition or name is required"))
		return nil, "", false
	}
	if err != nil {
		s.fail(w, err)
		return nil, "", false
	}
	return a, name, true
}

func (s *Server) reports(w http.ResponseWriter) (ports.ReportStore, bool) {
	store := s.Engine.Reports()
	if store == nil {
		s.writeError(w, http.StatusNotImplemented, errors.New("no report store is configured"))
		return nil, false
	}
	return store, true
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, err error) {
	var fe *domain.FormatError
	switch {
	case errors.As(err, &fe):
		s.writeJSON(w, http.StatusUnprocessableEntity, ErrorResponse{
			Error:   err.Error(),
			Section: string(fe.Section),
			Line:    fe.Line,
		})
	case errors.Is(err, domain.ErrDefinitionNotFound), errors.Is(err, domain.ErrReportNotFound):
		s.writeError(w, http.StatusNotFound, err)
	case errors.Is(err, domain.ErrInvalidReportID):
		s.writeError(w, http.StatusBadRequest, err)
	default:
		s.logger.Error("request failed", "err", err)
		s.writeError(w, http.StatusInternalServerError, err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func withoutPaths(results []domain.Result) []domain.Result {
	out := make([]domain.Result, len(results))
	for i, r := range results {
		r.Path = nil
		out[i] = r
	}
	return out
}
