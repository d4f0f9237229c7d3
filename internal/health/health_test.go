package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(t *testing.T, handler http.HandlerFunc, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHealthHandler_Healthy(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.RegisterChecker("storage", NewPingChecker("storage", pingerFunc(func(context.Context) error {
		return nil
	})))

	w := serve(t, handler.ServeHTTP, "/healthz")
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var response Response
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != StatusHealthy {
		t.Errorf("expected status healthy, got %s", response.Status)
	}
	if response.Version != "v1.0.0" {
		t.Errorf("expected version v1.0.0, got %s", response.Version)
	}
	if len(response.Checks) != 1 || response.Checks["storage"].Status != StatusHealthy {
		t.Errorf("unexpected checks: %+v", response.Checks)
	}
}

func TestHealthHandler_Unhealthy(t *testing.T) {
	handler := NewHandler("v1.0.0")
	handler.RegisterChecker("storage", NewFuncChecker("storage", func(context.Context) error {
		return errors.New("connection refused")
	}))

	w := serve(t, handler.ServeHTTP, "/healthz")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", w.Code)
	}

	var response Response
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Checks["storage"].Message != "connection refused" {
		t.Errorf("unexpected check message: %+v", response.Checks["storage"])
	}
}

func TestHealthHandler_OptionalDependencyDegrades(t *testing.T) {
	handler := NewHandler("dev")
	handler.RegisterChecker("storage", NewFuncChecker("storage", func(context.Context) error { return nil }))
	handler.RegisterChecker("kafka", NewOptionalChecker("kafka", func(context.Context) error {
		return errors.New("no brokers")
	}))

	status, checks := handler.Run(context.Background())
	if status != StatusDegraded {
		t.Fatalf("expected degraded, got %s", status)
	}
	if checks["kafka"].Status != StatusDegraded {
		t.Fatalf("unexpected kafka check: %+v", checks["kafka"])
	}

	if w := serve(t, handler.ReadinessHandler, "/readyz"); w.Code != http.StatusOK {
		t.Fatalf("degraded service must stay ready, got %d", w.Code)
	}
}

func TestHealthHandler_CheckTimeout(t *testing.T) {
	handler := NewHandler("dev")
	handler.timeout = 20 * time.Millisecond
	handler.RegisterChecker("slow", NewFuncChecker("slow", func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}))

	status, checks := handler.Run(context.Background())
	if status != StatusUnhealthy {
		t.Fatalf("expected unhealthy, got %s", status)
	}
	if checks["slow"].Message != context.DeadlineExceeded.Error() {
		t.Fatalf("unexpected message: %q", checks["slow"].Message)
	}
}

func TestReadinessHandler(t *testing.T) {
	handler := NewHandler("dev")
	if w := serve(t, handler.ReadinessHandler, "/readyz"); w.Code != http.StatusOK {
		t.Fatalf("expected 200 without checks, got %d", w.Code)
	}

	handler.RegisterChecker("storage", NewFuncChecker("storage", func(context.Context) error {
		return errors.New("down")
	}))
	w := serve(t, handler.ReadinessHandler, "/readyz")
	if w.Code != http.StatusServiceUnavailable || w.Body.String() != "not ready" {
		t.Fatalf("unexpected readiness response: %d %q", w.Code, w.Body.String())
	}
}

func TestLivenessHandler(t *testing.T) {
	w := serve(t, LivenessHandler, "/livez")
	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Fatalf("unexpected liveness response: %d %q", w.Code, w.Body.String())
	}
}
