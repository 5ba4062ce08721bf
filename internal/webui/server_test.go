package webui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/puzzle-scout/internal/service"
	"github.com/puzzle-scout/internal/storage"
	"github.com/puzzle-scout/pkg/config"
	"github.com/puzzle-scout/pkg/model"
)

type listRepo struct {
	runs []*model.SolveRun
}

func (r *listRepo) CreateRun(ctx context.Context, run *model.SolveRun) error {
	r.runs = append(r.runs, run)
	return nil
}
func (r *listRepo) GetRunByUUID(ctx context.Context, uuid string) (*model.SolveRun, error) {
	return nil, nil
}
func (r *listRepo) ListRuns(ctx context.Context, limit int) ([]*model.SolveRun, error) {
	if limit < len(r.runs) {
		return r.runs[:limit], nil
	}
	return r.runs, nil
}
func (r *listRepo) UpdateStatus(ctx context.Context, uuid string, status model.RunStatus, info string) error {
	return nil
}
func (r *listRepo) CompleteRun(ctx context.Context, run *model.SolveRun) error {
	return nil
}

func testServer(t *testing.T) (*Server, *listRepo, storage.Storage) {
	t.Helper()

	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	repo := &listRepo{}
	cfg := &config.Config{
		Solver: config.SolverConfig{GhostDepths: []int{1}, BucketLoadFactor: 1.0},
	}
	svc := service.New(cfg, nil, repo, store)
	return NewServer(0, nil, svc, repo, store), repo, store
}

func TestServer_Health(t *testing.T) {
	srv, _, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}

func TestServer_Solve(t *testing.T) {
	srv, _, _ := testServer(t)

	body := strings.NewReader("5,3\n#####\n#@.*#\n#####\n")
	req := httptest.NewRequest(http.MethodPost, "/api/solve?name=level1.txt", body)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report model.SolveReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, "level1.txt", report.MapName)
	assert.Equal(t, 2, report.MinGoalDistance)
	assert.True(t, report.Done)
}

func TestServer_SolveBadMap(t *testing.T) {
	srv, _, _ := testServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/solve", strings.NewReader("garbage"))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "MAP_PARSE_ERROR")
}

func TestServer_ListRuns(t *testing.T) {
	srv, repo, _ := testServer(t)
	repo.runs = []*model.SolveRun{
		{RunUUID: "run-1", MapName: "a.txt", Status: model.RunStatusCompleted},
	}

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var runs []*model.SolveRun
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &runs))
	require.Len(t, runs, 1)
	assert.Equal(t, "run-1", runs[0].RunUUID)
}

func TestServer_ListRuns_BadLimit(t *testing.T) {
	srv, _, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/runs?limit=zero", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_Report_RoundTrip(t *testing.T) {
	srv, _, _ := testServer(t)

	// Solve once to produce a stored report.
	body := strings.NewReader("5,3\n#####\n#@.*#\n#####\n")
	req := httptest.NewRequest(http.MethodPost, "/api/solve", body)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var report model.SolveReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))

	req = httptest.NewRequest(http.MethodGet, "/api/runs/"+report.RunUUID+"/report", nil)
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var stored model.SolveReport
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stored))
	assert.Equal(t, report.RunUUID, stored.RunUUID)
}

func TestServer_Report_NotFound(t *testing.T) {
	srv, _, _ := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/runs/nope/report", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_NoRepoConfigured(t *testing.T) {
	cfg := &config.Config{Solver: config.SolverConfig{BucketLoadFactor: 1.0}}
	srv := NewServer(0, nil, service.New(cfg, nil, nil, nil), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
