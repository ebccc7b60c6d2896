// Package health serves the readiness endpoint of the admin API.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/delta94/youth-membership-admin-ui/internal/platform/catalog"
	applog "github.com/delta94/youth-membership-admin-ui/internal/platform/logging"
)

// Overall and per-check states.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	CheckOK         = "ok"
	CheckFailed     = "unavailable"
)

const checkTimeout = 2 * time.Second

// Response is the payload for the health endpoint.
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Check is one dependency the API needs before it can serve profiles.
type Check struct {
	Name  string
	Ready func(ctx context.Context) error
}

// Pinger is a store that can prove it is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

var errEmptyCatalog = errors.New("catalog not loaded")

// Store checks that the profile store answers.
func Store(p Pinger) Check {
	return Check{Name: "store", Ready: p.Ping}
}

// Catalogs checks that the validation catalogs are loaded.
func Catalogs(countries, languages *catalog.Set) Check {
	return Check{Name: "catalogs", Ready: func(context.Context) error {
		if countries.Len() == 0 || languages.Len() == 0 {
			return errEmptyCatalog
		}
		return nil
	}}
}

// Handler runs every check and answers 200 when all pass, 503 otherwise.
// Failure details go to the log, not the response.
func Handler(checks ...Check) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
		defer cancel()

		resp := Response{Status: StatusHealthy, Checks: make(map[string]string, len(checks))}
		code := http.StatusOK
		for _, c := range checks {
			if err := c.Ready(ctx); err != nil {
				applog.LogWarn(ctx, "readiness check failed", zap.String("check", c.Name), zap.Error(err))
				resp.Checks[c.Name] = CheckFailed
				resp.Status = StatusUnhealthy
				code = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[c.Name] = CheckOK
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
	}
}
