package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/delta94/youth-membership-admin-ui/internal/config"
	"github.com/delta94/youth-membership-admin-ui/internal/http/health"
	"github.com/delta94/youth-membership-admin-ui/internal/http/v1/routes"
	"github.com/delta94/youth-membership-admin-ui/internal/platform/auth"
	"github.com/delta94/youth-membership-admin-ui/internal/platform/catalog"
	"github.com/delta94/youth-membership-admin-ui/internal/platform/firebase"
	applog "github.com/delta94/youth-membership-admin-ui/internal/platform/logging"
	appmiddleware "github.com/delta94/youth-membership-admin-ui/internal/platform/middleware"
	"github.com/delta94/youth-membership-admin-ui/internal/platform/respond"
	profilesvc "github.com/delta94/youth-membership-admin-ui/internal/service/youthprofile"
	yp "github.com/delta94/youth-membership-admin-ui/internal/youthprofile"
)

var errUnknownAdminCountry = errors.New("not in the country catalog")

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

// storeBackend is a profile store that also answers readiness checks.
type storeBackend interface {
	profilesvc.Service
	health.Pinger
}

// deps are the collaborators the HTTP surface is built from.
type deps struct {
	verifier       auth.Verifier
	service        profilesvc.Service
	store          health.Pinger
	validator      *yp.Validator
	countries      *catalog.Set
	languages      *catalog.Set
	adminCountry   string
	allowedOrigins []string
}

func main() {
	ctx := context.Background()
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(ctx, "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(ctx, "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(ctx, "load config", err)
	}
	if err := applog.SetLevel(cfg.LogLevel); err != nil {
		applog.LogFatal(ctx, "set log level", err)
	}
	applog.SetProjectID(cfg.ProjectID)

	countries, languages, validator, err := buildValidation(cfg)
	if err != nil {
		applog.LogFatal(ctx, "build validation", err)
	}

	clients, err := firebase.InitializeClients(ctx, firebase.Config{
		ProjectID:       cfg.ProjectID,
		CredentialsFile: cfg.CredentialsFile,
		Firestore:       cfg.Store == config.StoreFirestore,
	})
	if err != nil {
		applog.LogFatal(ctx, "initialize firebase", err)
	}
	defer func() {
		if err := clients.Close(); err != nil {
			applog.LogError(ctx, "close firebase clients", err)
		}
	}()

	var store storeBackend
	if cfg.Store == config.StoreFirestore {
		store = profilesvc.NewFirestoreStore(clients.Firestore)
	} else {
		applog.LogWarn(ctx, "using in-memory store; profiles are lost on restart")
		store = profilesvc.NewMemoryStore()
	}

	handler := newRouter(deps{
		verifier:       auth.NewFirebaseVerifier(clients.Auth),
		service:        profilesvc.NewGate(store, validator),
		store:          store,
		validator:      validator,
		countries:      countries,
		languages:      languages,
		adminCountry:   cfg.AdminCountry,
		allowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	if err := serve(srv, stop); err != nil {
		applog.LogError(ctx, "server error", err, zap.String("addr", srv.Addr))
		os.Exit(1)
	}
	applog.LogInfo(ctx, "server exited")
}

// buildValidation loads the catalogs for the configured locale and builds the
// record validator over them. The administering country seeds every new
// address, so it must be a member of the country catalog.
func buildValidation(cfg *config.Config) (countries, languages *catalog.Set, validator *yp.Validator, err error) {
	if countries, err = catalog.Countries(cfg.Locale()); err != nil {
		return nil, nil, nil, fmt.Errorf("country catalog: %w", err)
	}
	if !countries.Contains(cfg.AdminCountry) {
		return nil, nil, nil, fmt.Errorf("admin country %q: %w", cfg.AdminCountry, errUnknownAdminCountry)
	}
	if languages, err = catalog.Languages(cfg.Locale()); err != nil {
		return nil, nil, nil, fmt.Errorf("language catalog: %w", err)
	}
	if validator, err = yp.NewValidator(countries, languages, yp.WithRules(cfg.Rules())); err != nil {
		return nil, nil, nil, fmt.Errorf("validator: %w", err)
	}
	return countries, languages, validator, nil
}

// newRouter assembles the middleware stack, the health check and the API.
func newRouter(d deps) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	router.Use(
		appmiddleware.Security("/api-docs"),
		appmiddleware.Vary(),
		appmiddleware.CORS(d.allowedOrigins...),
		appmiddleware.RequestID(),
		// RealIP trusts X-Real-IP and X-Forwarded-For; only deploy behind a
		// proxy that overwrites them.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(1<<20), // 1 MB
		applog.RequestLogger(),
		applog.AccessLogger(),
		respond.Recoverer(),
	)

	router.Get("/health", health.Handler(
		health.Catalogs(d.countries, d.languages),
		health.Store(d.store),
	))

	api := humachi.New(router, newAPIConfig())
	routes.Register(api, d.verifier, d.service, d.validator, d.countries, d.languages, d.adminCountry)
	return router
}

func newAPIConfig() huma.Config {
	cfg := huma.DefaultConfig("Youth Membership Admin API", Version)
	cfg.DocsPath = "/api-docs"
	cfg.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearerAuth": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
			Description:  "Firebase ID token of a signed-in administrator.",
		},
	}
	// Wildcard Accept headers fall back to JSON: huma matches formats exactly
	// and RFC 9110 section 12.4.1 lets servers disregard Accept.
	cfg.OnAddOperation = append(cfg.OnAddOperation, addCBORContent)
	return cfg
}

// addCBORContent documents application/cbor next to every JSON body.
func addCBORContent(_ *huma.OpenAPI, op *huma.Operation) {
	if op.RequestBody != nil && op.RequestBody.Content != nil {
		if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
			op.RequestBody.Content["application/cbor"] = jsonContent
		}
	}
	for _, resp := range op.Responses {
		if resp.Content == nil {
			continue
		}
		if jsonContent, ok := resp.Content["application/json"]; ok {
			resp.Content["application/cbor"] = jsonContent
		}
	}
}

// serve runs srv until it fails or a signal arrives on stop, then shuts it
// down gracefully.
func serve(srv *http.Server, stop <-chan os.Signal) error {
	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		return err
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
