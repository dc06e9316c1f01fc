package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"FlipScout/internal/domain/models"
	"FlipScout/internal/usecase"
	applogger "FlipScout/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubSource struct {
	calls      int
	candidates []models.Candidate
}

func (s *stubSource) FetchCandidates(context.Context, time.Duration) ([]models.Candidate, error) {
	s.calls++
	return s.candidates, nil
}

type stubStore struct {
	inserts int
	rows    []models.Signal
}

func (s *stubStore) InsertBatch(_ context.Context, signals []models.Signal) (int, error) {
	s.inserts += len(signals)
	return len(signals), nil
}

func (s *stubStore) RecentSignals(context.Context, *int64, time.Time, int) ([]models.Signal, error) {
	return s.rows, nil
}
func (s *stubStore) Health(context.Context) error { return nil }
func (s *stubStore) Close() error                 { return nil }

type stubMetrics struct{}

func (stubMetrics) RecordRun(string, float64) {}
func (stubMetrics) RecordCandidates(int)      {}
func (stubMetrics) RecordSignal(string)       {}
func (stubMetrics) RecordError(string)        {}

func newTestServer(t *testing.T, token string, src *stubSource, store *stubStore) *echo.Echo {
	t.Helper()
	l, err := applogger.New(&applogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	runner := usecase.NewScoreRunner(src, store, nil, nil, stubMetrics{})
	reader := usecase.NewSignalReader(store, nil, time.Minute)
	h := NewScoringHandler(l, runner, reader, token, 2*time.Hour)

	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func ptr(v int64) *int64 { return &v }

func TestHealthNoAuth(t *testing.T) {
	e := newTestServer(t, "tok", &stubSource{}, &stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"ok":true}` {
		t.Fatalf("body: %q", rec.Body.String())
	}
}

func TestRunRejectsMissingToken(t *testing.T) {
	src := &stubSource{}
	store := &stubStore{}
	e := newTestServer(t, "tok", src, store)

	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "unauthorized") {
		t.Fatalf("body should identify unauthorized: %q", rec.Body.String())
	}
	if src.calls != 0 || store.inserts != 0 {
		t.Fatalf("unauthorized request must not touch storage")
	}
}

func TestRunRejectsWrongToken(t *testing.T) {
	src := &stubSource{}
	e := newTestServer(t, "tok", src, &stubStore{})

	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer nope")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: %d", rec.Code)
	}
	if src.calls != 0 {
		t.Fatalf("wrong token must not reach the source")
	}
}

func TestRunRejectsAllWhenTokenUnconfigured(t *testing.T) {
	e := newTestServer(t, "", &stubSource{}, &stubStore{})

	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer anything")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("unset secret should fail closed, got %d", rec.Code)
	}
}

func TestRunProcessesCandidates(t *testing.T) {
	src := &stubSource{candidates: []models.Candidate{
		{ProductID: 1, PriceSnapshotID: 10, CompID: ptr(100), PriceCents: 3000, MedianSaleCents: ptr(8000), Sales30d: ptr(30)},
		{ProductID: 2, PriceSnapshotID: 20, PriceCents: 999},
	}}
	store := &stubStore{}
	e := newTestServer(t, "tok", src, store)

	req := httptest.NewRequest(http.MethodPost, "/run", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", rec.Code, rec.Body.String())
	}
	var res models.RunResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Processed != 2 || res.Inserted != 2 {
		t.Fatalf("unexpected result %+v", res)
	}
	if store.inserts != 2 {
		t.Fatalf("expected 2 inserts, got %d", store.inserts)
	}
}

func TestRunDryRunBody(t *testing.T) {
	src := &stubSource{candidates: []models.Candidate{{ProductID: 1, PriceSnapshotID: 10, PriceCents: 100}}}
	store := &stubStore{}
	e := newTestServer(t, "tok", src, store)

	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{"dry_run":true,"window_hours":4}`))
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", rec.Code, rec.Body.String())
	}
	var res models.RunResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Processed != 1 || res.Inserted != 0 {
		t.Fatalf("dry run result %+v", res)
	}
	if store.inserts != 0 {
		t.Fatalf("dry run must not insert")
	}
}

func TestRunRejectsOutOfRangeWindow(t *testing.T) {
	e := newTestServer(t, "tok", &stubSource{}, &stubStore{})

	req := httptest.NewRequest(http.MethodPost, "/run", strings.NewReader(`{"window_hours":48}`))
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d body=%s", rec.Code, rec.Body.String())
	}
}

func TestRecentRequiresAuth(t *testing.T) {
	e := newTestServer(t, "tok", &stubSource{}, &stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/signals/recent", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status: %d", rec.Code)
	}
}

func TestRecentReturnsRows(t *testing.T) {
	store := &stubStore{rows: []models.Signal{
		{ID: 5, ProductID: 1, Status: models.StatusBuyable, NetProfitCents: 2760},
	}}
	e := newTestServer(t, "tok", &stubSource{}, store)

	req := httptest.NewRequest(http.MethodGet, "/api/signals/recent?limit=10", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status: %d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `"BUYABLE"`) {
		t.Fatalf("body missing signal: %s", rec.Body.String())
	}
}

func TestRecentRejectsBadLimit(t *testing.T) {
	e := newTestServer(t, "tok", &stubSource{}, &stubStore{})

	req := httptest.NewRequest(http.MethodGet, "/api/signals/recent?limit=9999", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer tok")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status: %d body=%s", rec.Code, rec.Body.String())
	}
}
