package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/movie-catalog/api"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/mocks"
)

func TestIPRateLimiter(t *testing.T) {
	limiter := newIPRateLimiter(LimiterConfig{Enabled: true, RPS: 1, Burst: 2})
	start := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

	steps := []struct {
		name string
		ip   string
		at   time.Time
		want bool
	}{
		{name: "first request", ip: "10.0.0.1", at: start, want: true},
		{name: "within burst", ip: "10.0.0.1", at: start, want: true},
		{name: "burst exhausted", ip: "10.0.0.1", at: start, want: false},
		{name: "other client unaffected", ip: "10.0.0.2", at: start, want: true},
		{name: "token refilled", ip: "10.0.0.1", at: start.Add(time.Second), want: true},
	}

	for _, step := range steps {
		if got := limiter.allow(step.ip, step.at); got != step.want {
			t.Errorf("%s: allow() = %v, want %v", step.name, got, step.want)
		}
	}

	limiter.allow("10.0.0.3", start.Add(10*time.Minute))

	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	if _, ok := limiter.clients["10.0.0.1"]; ok {
		t.Errorf("stale client 10.0.0.1 was not pruned")
	}
	if len(limiter.clients) != 1 {
		t.Errorf("clients = %d, want 1", len(limiter.clients))
	}
}

func TestRateLimitMiddleware(t *testing.T) {
	app := newTestApplication(func(a *Application) {
		a.limiter = newIPRateLimiter(LimiterConfig{Enabled: true, RPS: 0.001, Burst: 1})
	})

	handler := app.rateLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 2)
	for range 2 {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/movies", nil)
		r.RemoteAddr = "192.0.2.10:51234"

		handler.ServeHTTP(w, r)
		codes = append(codes, w.Code)
	}

	want := []int{http.StatusOK, http.StatusTooManyRequests}
	if diff := cmp.Diff(want, codes); diff != "" {
		t.Errorf("status codes mismatch (-want +got):\n%s", diff)
	}
}

func TestRecoverPanic(t *testing.T) {
	app := newTestApplication()

	handler := app.recoverPanic(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	w, r := executeRequest(t, http.MethodGet, "/movies", nil)
	handler.ServeHTTP(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want %d", w.Code, http.StatusInternalServerError)
	}
	if got := w.Header().Get("Connection"); got != "close" {
		t.Errorf("Connection header = %q, want close", got)
	}
}

func TestRoutes(t *testing.T) {
	app := newTestApplication(func(a *Application) {
		a.movieRepo = &mocks.MockMovieRepo{
			GetAllFunc: func(ctx context.Context, p domain.Pagination) ([]*domain.Movie, int, error) {
				return []*domain.Movie{}, 0, nil
			},
			GetByIdFunc: func(ctx context.Context, id int) (*domain.Movie, error) {
				return nil, int4Lookup(id)
			},
			DeleteFunc: func(ctx context.Context, id int) error {
				return nil
			},
		}
	})

	tests := []struct {
		name       string
		method     string
		url        string
		wantStatus int
	}{
		{name: "list with trailing slash", method: http.MethodGet, url: "/movies/", wantStatus: http.StatusOK},
		{name: "list without trailing slash", method: http.MethodGet, url: "/movies?page=1&size=5", wantStatus: http.StatusOK},
		{name: "non numeric page", method: http.MethodGet, url: "/movies?page=first", wantStatus: http.StatusBadRequest},
		{name: "missing movie", method: http.MethodGet, url: "/movies/42", wantStatus: http.StatusNotFound},
		{name: "non numeric id", method: http.MethodGet, url: "/movies/abc", wantStatus: http.StatusBadRequest},
		{name: "id past the id column range", method: http.MethodGet, url: "/movies/3000000000", wantStatus: http.StatusNotFound},
		{name: "delete id past the id column range", method: http.MethodDelete, url: "/movies/3000000000", wantStatus: http.StatusNotFound},
		{name: "id overflowing int", method: http.MethodGet, url: "/movies/99999999999999999999", wantStatus: http.StatusBadRequest},
		{name: "page past the last page", method: http.MethodGet, url: "/movies?page=92233720368547760&size=100", wantStatus: http.StatusUnprocessableEntity},
		{name: "delete", method: http.MethodDelete, url: "/movies/42", wantStatus: http.StatusNoContent},
		{name: "unsupported method", method: http.MethodPut, url: "/movies/42", wantStatus: http.StatusMethodNotAllowed},
		{name: "unknown path", method: http.MethodGet, url: "/directors", wantStatus: http.StatusNotFound},
		{name: "healthcheck", method: http.MethodGet, url: "/healthcheck", wantStatus: http.StatusOK},
		{name: "openapi document", method: http.MethodGet, url: "/openapi.json", wantStatus: http.StatusOK},
	}

	routes := app.Routes()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, r := executeRequest(t, tt.method, tt.url, nil)

			routes.ServeHTTP(w, r)

			if w.Code != tt.wantStatus {
				t.Errorf("%s %s status = %d, want %d", tt.method, tt.url, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestGetHealth(t *testing.T) {
	app := newTestApplication()

	w, r := executeRequest(t, http.MethodGet, "/healthcheck", nil)
	app.GetHealth(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("GetHealth() status = %d, want %d", w.Code, http.StatusOK)
	}

	var response api.HealthcheckResponse
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	want := api.HealthcheckResponse{
		Status: "UP",
		SystemInfo: api.SystemInfo{
			Version:     version,
			Environment: "test",
		},
	}

	if diff := cmp.Diff(want, response); diff != "" {
		t.Errorf("GetHealth() response mismatch (-want +got):\n%s", diff)
	}
}
