// Package webui provides the HTTP API for running solves and browsing
// past runs.
package webui

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/puzzle-scout/internal/puzzle"
	"github.com/puzzle-scout/internal/repository"
	"github.com/puzzle-scout/internal/service"
	"github.com/puzzle-scout/internal/storage"
	apperrors "github.com/puzzle-scout/pkg/errors"
	"github.com/puzzle-scout/pkg/utils"
)

// maxMapSize bounds uploaded map bodies.
const maxMapSize = 1 << 20

// Server is the web UI server.
type Server struct {
	port   int
	logger utils.Logger
	svc    *service.SolveService
	repo   repository.RunRepository
	store  storage.Storage
	server *http.Server
}

// NewServer creates a web UI server. Repository and storage may be nil;
// the corresponding endpoints then report service unavailable.
func NewServer(port int, logger utils.Logger, svc *service.SolveService, repo repository.RunRepository, store storage.Storage) *Server {
	if logger == nil {
		logger = &utils.NullLogger{}
	}
	return &Server{
		port:   port,
		logger: logger,
		svc:    svc,
		repo:   repo,
		store:  store,
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/solve", s.handleSolve)
	mux.HandleFunc("GET /api/runs", s.handleListRuns)
	mux.HandleFunc("GET /api/runs/{uuid}/report", s.handleReport)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Start starts the web server and blocks until shutdown.
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 5 * time.Minute,
	}

	s.logger.Info("Starting web server at http://localhost:%d", s.port)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// handleSolve runs a solve of the map in the request body.
func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		name = "upload.txt"
	}

	body := http.MaxBytesReader(w, r.Body, maxMapSize)
	defer body.Close()

	state, err := puzzle.Parse(name, body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	report, err := s.svc.Solve(r.Context(), state)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}

// handleListRuns lists the most recent runs.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		s.writeError(w, http.StatusServiceUnavailable, apperrors.New(apperrors.CodeConfigError, "no run database configured"))
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			s.writeError(w, http.StatusBadRequest, apperrors.Newf(apperrors.CodeInvalidInput, "bad limit %q", raw))
			return
		}
		limit = parsed
	}

	runs, err := s.repo.ListRuns(r.Context(), limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, http.StatusOK, runs)
}

// handleReport streams a stored report.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, http.StatusServiceUnavailable, apperrors.New(apperrors.CodeConfigError, "no report storage configured"))
		return
	}

	uuid := r.PathValue("uuid")
	key := fmt.Sprintf("runs/%s/report.json", uuid)

	exists, err := s.store.Exists(r.Context(), key)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	if !exists {
		s.writeError(w, http.StatusNotFound, apperrors.Newf(apperrors.CodeNotFound, "no report for run %s", uuid))
		return
	}

	rc, err := s.store.Download(r.Context(), key)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	defer rc.Close()

	w.Header().Set("Content-Type", "application/json")
	if _, err := io.Copy(w, rc); err != nil {
		s.logger.Warn("streaming report %s: %v", key, err)
	}
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encoding response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	s.logger.Warn("request failed: %v", err)
	s.writeJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  apperrors.GetErrorCode(err),
	})
}
