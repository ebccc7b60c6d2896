package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/text/language"

	"github.com/delta94/youth-membership-admin-ui/internal/config"
	"github.com/delta94/youth-membership-admin-ui/internal/http/health"
	"github.com/delta94/youth-membership-admin-ui/internal/platform/auth"
	"github.com/delta94/youth-membership-admin-ui/internal/platform/catalog"
	profilesvc "github.com/delta94/youth-membership-admin-ui/internal/service/youthprofile"
	yp "github.com/delta94/youth-membership-admin-ui/internal/youthprofile"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	countries, err := catalog.Countries(language.Finnish)
	if err != nil {
		t.Fatalf("countries: %v", err)
	}
	languages, err := catalog.Languages(language.Finnish)
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	clock := func() time.Time { return time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC) }
	validator, err := yp.NewValidator(countries, languages, yp.WithClock(clock))
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	store := profilesvc.NewMemoryStoreWithClock(clock)
	return newRouter(deps{
		verifier:       &auth.MockVerifier{User: auth.TestUser()},
		service:        profilesvc.NewGate(store, validator),
		store:          store,
		validator:      validator,
		countries:      countries,
		languages:      languages,
		adminCountry:   "FI",
		allowedOrigins: []string{"https://admin.example.com"},
	})
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	tests := []struct {
		name   string
		accept string
	}{
		{"json", "application/json"},
		{"wildcard all", "*/*"},
		{"no accept header", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			req.Header.Set(chimiddleware.RequestIDHeader, "test-health-req")
			if tt.accept != "" {
				req.Header.Set("Accept", tt.accept)
			}
			resp := httptest.NewRecorder()
			srv.ServeHTTP(resp, req)

			if resp.Code != http.StatusOK {
				t.Fatalf("expected status 200 got %d", resp.Code)
			}
			var h health.Response
			if err := json.Unmarshal(resp.Body.Bytes(), &h); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if h.Status != health.StatusHealthy {
				t.Fatalf("expected status %q, got %s", health.StatusHealthy, h.Status)
			}
			if h.Checks["store"] != health.CheckOK || h.Checks["catalogs"] != health.CheckOK {
				t.Fatalf("unexpected checks %v", h.Checks)
			}
		})
	}
}

func testConfig(adminCountry string) *config.Config {
	return &config.Config{
		AdminCountry:         adminCountry,
		CatalogLocale:        "fi",
		EmailPattern:         yp.DefaultEmailPattern,
		PhonePattern:         yp.DefaultPhonePattern,
		PostalCodePattern:    yp.DefaultPostalCodePattern,
		BirthDateMaxAgeYears: yp.DefaultMaxAgeYears,
	}
}

func TestBuildValidation(t *testing.T) {
	countries, languages, validator, err := buildValidation(testConfig("FI"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !countries.Contains("FI") || languages.Len() != 3 || validator == nil {
		t.Fatal("expected loaded catalogs and a validator")
	}
}

func TestBuildValidationRejectsAdminCountryOutsideCatalog(t *testing.T) {
	_, _, _, err := buildValidation(testConfig("XX"))
	if !errors.Is(err, errUnknownAdminCountry) {
		t.Fatalf("expected errUnknownAdminCountry, got %v", err)
	}
}

func TestBuildValidationRejectsBadRules(t *testing.T) {
	cfg := testConfig("FI")
	cfg.PostalCodePattern = "(["
	if _, _, _, err := buildValidation(cfg); err == nil {
		t.Fatal("expected pattern error")
	}
}

func TestNotFoundReturnsProblemDetails(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected application/problem+json content type, got %q", ct)
	}
	var problem huma.ErrorModel
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal 404 response: %v", err)
	}
	if problem.Status != http.StatusNotFound || problem.Detail != "resource not found" {
		t.Fatalf("unexpected problem %+v", problem)
	}
}

func TestMethodNotAllowedReturnsProblemDetails(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", resp.Code)
	}
	if allow := resp.Header().Get("Allow"); !strings.Contains(allow, http.MethodGet) {
		t.Fatalf("expected Allow header to list GET, got %q", allow)
	}
}

func TestSecurityAndCORSHeaders(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "https://admin.example.com" {
		t.Errorf("expected allowed origin, got %q", got)
	}
	if got := resp.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected nosniff, got %q", got)
	}
	if resp.Header().Get(chimiddleware.RequestIDHeader) == "" {
		t.Error("expected a request id header")
	}
}

func TestYouthProfilesRequireAuth(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/youth-profiles/template", nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestValidateThroughFullStack(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodPost, "/youth-profiles/validate",
		strings.NewReader(`{"firstName":"","addresses":[{},{"address":"Kotikatu 2","postalCode":"00100","city":"Helsinki","countryCode":"FI"}]}`))
	req.Header.Set("Authorization", "Bearer valid-token")
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	var result struct {
		Valid  bool           `json:"valid"`
		Errors yp.ErrorReport `json:"errors"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid record")
	}
	if len(result.Errors.Addresses) != 2 || result.Errors.Addresses[0] == nil || result.Errors.Addresses[1] != nil {
		t.Fatalf("unexpected address errors %+v", result.Errors.Addresses)
	}
}

func TestOpenAPIDocumentsCBORAndBearerAuth(t *testing.T) {
	srv := testServer(t)
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	var doc struct {
		Paths      map[string]map[string]json.RawMessage `json:"paths"`
		Components struct {
			SecuritySchemes map[string]json.RawMessage `json:"securitySchemes"`
		} `json:"components"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &doc); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if _, ok := doc.Components.SecuritySchemes["bearerAuth"]; !ok {
		t.Fatal("expected bearerAuth security scheme")
	}
	post, ok := doc.Paths["/youth-profiles"]["post"]
	if !ok {
		t.Fatal("expected POST /youth-profiles")
	}
	if !strings.Contains(string(post), "application/cbor") {
		t.Fatal("expected application/cbor content on create operation")
	}
}

func TestAddCBORContent(t *testing.T) {
	op := &huma.Operation{
		RequestBody: &huma.RequestBody{Content: map[string]*huma.MediaType{"application/json": {}}},
		Responses: map[string]*huma.Response{
			"200": {Content: map[string]*huma.MediaType{"application/json": {}}},
			"204": {},
		},
	}
	addCBORContent(nil, op)

	if _, ok := op.RequestBody.Content["application/cbor"]; !ok {
		t.Error("expected cbor request body")
	}
	if _, ok := op.Responses["200"].Content["application/cbor"]; !ok {
		t.Error("expected cbor 200 response")
	}
	if op.Responses["204"].Content != nil {
		t.Error("expected 204 to stay without content")
	}
}

func TestServeShutsDownOnSignal(t *testing.T) {
	srv := &http.Server{
		Addr:              "127.0.0.1:0",
		Handler:           http.NotFoundHandler(),
		ReadHeaderTimeout: time.Second,
	}
	stop := make(chan os.Signal, 1)
	stop <- os.Interrupt

	done := make(chan error, 1)
	go func() { done <- serve(srv, stop) }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for shutdown")
	}
}

func TestServeReturnsListenError(t *testing.T) {
	srv := &http.Server{
		Addr:              "127.0.0.1:-1",
		Handler:           http.NotFoundHandler(),
		ReadHeaderTimeout: time.Second,
	}
	stop := make(chan os.Signal)

	done := make(chan error, 1)
	go func() { done <- serve(srv, stop) }()

	select {
	case err := <-done:
		if err == nil {
			t.Fatal("expected listen error")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for listen error")
	}
}
