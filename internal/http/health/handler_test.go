package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/text/language"

	"github.com/delta94/youth-membership-admin-ui/internal/platform/catalog"
)

type pingFunc func(context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(t *testing.T, h http.Handler) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/health", nil))

	if ct := resp.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", ct)
	}
	var body Response
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp, body
}

func loadedCatalogs(t *testing.T) Check {
	t.Helper()
	countries, err := catalog.Countries(language.Finnish)
	if err != nil {
		t.Fatalf("countries: %v", err)
	}
	languages, err := catalog.Languages(language.Finnish)
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	return Catalogs(countries, languages)
}

func TestHealthyWhenAllChecksPass(t *testing.T) {
	store := Store(pingFunc(func(context.Context) error { return nil }))
	resp, body := serve(t, Handler(loadedCatalogs(t), store))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 OK, got %d", resp.Code)
	}
	if body.Status != StatusHealthy {
		t.Fatalf("expected status %q, got %q", StatusHealthy, body.Status)
	}
	if body.Checks["catalogs"] != CheckOK || body.Checks["store"] != CheckOK {
		t.Fatalf("unexpected checks %v", body.Checks)
	}
}

func TestUnhealthyWhenStoreFails(t *testing.T) {
	store := Store(pingFunc(func(context.Context) error {
		return errors.New("rpc error: code = Unavailable desc = connection refused")
	}))
	resp, body := serve(t, Handler(loadedCatalogs(t), store))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if body.Status != StatusUnhealthy {
		t.Fatalf("expected status %q, got %q", StatusUnhealthy, body.Status)
	}
	if body.Checks["store"] != CheckFailed || body.Checks["catalogs"] != CheckOK {
		t.Fatalf("unexpected checks %v", body.Checks)
	}
}

func TestUnhealthyWhenCatalogEmpty(t *testing.T) {
	resp, body := serve(t, Handler(Catalogs(nil, nil)))

	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	if body.Checks["catalogs"] != CheckFailed {
		t.Fatalf("unexpected checks %v", body.Checks)
	}
}

func TestChecksReceiveDeadline(t *testing.T) {
	var hasDeadline bool
	store := Store(pingFunc(func(ctx context.Context) error {
		_, hasDeadline = ctx.Deadline()
		return nil
	}))
	serve(t, Handler(store))

	if !hasDeadline {
		t.Fatal("expected checks to run with a deadline")
	}
}
