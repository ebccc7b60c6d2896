package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"go.uber.org/zap"

	applog "github.com/delta94/youth-membership-admin-ui/internal/platform/logging"
)

type userContextKey struct{}

// NewAuthMiddleware guards every operation that declares a security
// requirement. The caller must present a valid Firebase ID token (401
// otherwise) whose user holds the admin claim (403 otherwise). The admin's UID
// becomes the actor of audit events and request logs.
func NewAuthMiddleware(api huma.API, verifier Verifier) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if len(ctx.Operation().Security) == 0 {
			next(ctx)
			return
		}

		token, err := ExtractBearerToken(ctx.Header("Authorization"))
		if err != nil {
			unauthorized(api, ctx, "no_token", "missing or invalid authorization header")
			return
		}

		user, err := verifier.Verify(ctx.Context(), token)
		switch {
		case errors.Is(err, ErrCertificateFetch):
			applog.LogWarn(ctx.Context(), "auth failed", zap.String("reason", categorizeAuthError(err)))
			ctx.SetHeader("Retry-After", "30")
			_ = huma.WriteErr(api, ctx, http.StatusServiceUnavailable, "authentication service temporarily unavailable")
			return
		case err != nil || user == nil:
			unauthorized(api, ctx, categorizeAuthError(err), "invalid or expired token")
			return
		case !user.Admin:
			applog.LogWarn(ctx.Context(), "auth failed",
				zap.String("reason", "not_admin"), zap.String("uid", user.UID))
			_ = huma.WriteErr(api, ctx, http.StatusForbidden, "administrator role required")
			return
		}

		ctx = huma.WithValue(ctx, userContextKey{}, user)
		ctx = huma.WithContext(ctx, applog.ContextWithActor(ctx.Context(), user.UID))
		next(ctx)
	}
}

func unauthorized(api huma.API, ctx huma.Context, reason, detail string) {
	applog.LogWarn(ctx.Context(), "auth failed", zap.String("reason", reason))
	ctx.SetHeader("WWW-Authenticate", "Bearer")
	_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, detail)
}

// categorizeAuthError returns an audit-safe reason for a verification error.
func categorizeAuthError(err error) string {
	switch {
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenRevoked):
		return "token_revoked"
	case errors.Is(err, ErrUserDisabled):
		return "user_disabled"
	case errors.Is(err, ErrCertificateFetch):
		return "certificate_fetch_failed"
	case errors.Is(err, ErrInvalidToken):
		return "invalid_token"
	default:
		return "unknown"
	}
}

// UserFromContext returns the administrator of an authenticated request, or
// nil on public operations.
func UserFromContext(ctx context.Context) *FirebaseUser {
	user, _ := ctx.Value(userContextKey{}).(*FirebaseUser)
	return user
}
