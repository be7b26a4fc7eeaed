// Package ui exposes the pair analyses over HTTP: a JSON API for
// triggering and listing runs, and rendered Markdown reports.
package ui

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/google/uuid"

	"promcorr/app"
	"promcorr/domain/core"
	"promcorr/internal"
	"promcorr/models"
	"promcorr/ports"
	"promcorr/report"
)

// Server serves the analysis API.
type Server struct {
	router chi.Router
	pairs  *app.PairService
	runs   ports.RunRepository
	log    *internal.Logger
}

// NewServer creates a server. runs may be nil when no database is
// configured; the run listing endpoints then report the store as absent.
func NewServer(pairs *app.PairService, runs ports.RunRepository, log *internal.Logger) *Server {
	s := &Server{pairs: pairs, runs: runs, log: log}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", s.handleHealth)
	r.Post("/api/analyze", s.handleAnalyze)
	r.Get("/api/runs", s.handleListRuns)
	r.Get("/api/runs/{id}", s.handleGetRun)
	r.Get("/runs/{id}/report", s.handleRunReport)

	s.router = r
	return s
}

// Handler returns the routed http.Handler, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe blocks serving the API on the given port.
func (s *Server) ListenAndServe(port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}
	s.log.Info("listening on :%s", port)
	return srv.ListenAndServe()
}

// analyzeRequest is the JSON body for POST /api/analyze.
type analyzeRequest struct {
	Files1 []string `json:"files_1"`
	Files2 []string `json:"files_2"`
	Dir1   string   `json:"dir_1"`
	Dir2   string   `json:"dir_2"`

	Metric1  string `json:"metric_1"`
	Metric2  string `json:"metric_2"`
	NumFiles int    `json:"num_files"`
	Host     string `json:"host"`

	CadenceSeconds   float64 `json:"cadence_seconds"`
	ToleranceSeconds float64 `json:"tolerance_seconds"`
	MaxLag           int     `json:"max_lag"`
	Window           int     `json:"window"`
	MinPeriods       int     `json:"min_periods"`

	SkipRateConversion bool `json:"skip_rate_conversion"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var body analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decoding request: %w", err))
		return
	}
	if len(body.Files1)+len(body.Dir1) == 0 || len(body.Files2)+len(body.Dir2) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("both sides need files or a directory"))
		return
	}

	req := app.PairRequest{
		Files1:             body.Files1,
		Files2:             body.Files2,
		Dir1:               body.Dir1,
		Dir2:               body.Dir2,
		Metric1:            body.Metric1,
		Metric2:            body.Metric2,
		NumFiles:           body.NumFiles,
		Host:               body.Host,
		Cadence:            time.Duration(body.CadenceSeconds * float64(time.Second)),
		Tolerance:          time.Duration(body.ToleranceSeconds * float64(time.Second)),
		MaxLag:             body.MaxLag,
		Window:             body.Window,
		MinPeriods:         body.MinPeriods,
		SkipRateConversion: body.SkipRateConversion,
	}
	run, err := s.pairs.Analyze(r.Context(), req)
	if err != nil {
		status := http.StatusInternalServerError
		if core.IsMalformedInput(err) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		writeError(w, http.StatusNotImplemented, errors.New("run store not configured"))
		return
	}
	runs, err := s.runs.ListRuns(r.Context(), 50)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if runs == nil {
		runs = []*models.PairRun{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, run)
}

func (s *Server) handleRunReport(w http.ResponseWriter, r *http.Request) {
	run, ok := s.lookupRun(w, r)
	if !ok {
		return
	}
	html := markdown.ToHTML([]byte(report.PairMarkdown(run)), nil, nil)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

func (s *Server) lookupRun(w http.ResponseWriter, r *http.Request) (*models.PairRun, bool) {
	if s.runs == nil {
		writeError(w, http.StatusNotImplemented, errors.New("run store not configured"))
		return nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid run id: %w", err))
		return nil, false
	}
	run, err := s.runs.GetRun(r.Context(), id)
	if errors.Is(err, core.ErrRunNotFound) {
		writeError(w, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return nil, false
	}
	return run, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
