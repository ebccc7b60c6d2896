package logging

import (
	"context"

	"go.uber.org/zap"
)

// Audit results.
const (
	AuditSuccess = "success"
	AuditFailure = "failure"
)

// AuditEvent describes one administrative action on a stored resource.
type AuditEvent struct {
	Action       string // create, update, renew, delete
	ActorID      string // authenticated administrator, empty for system actions
	ResourceType string
	ResourceID   string
	Result       string
	Reason       string // audit-safe failure category, never raw error text
}

// LogAuditEvent writes a structured audit entry using the request-aware logger.
// Personal data from the resource must not be passed in; only identifiers.
func LogAuditEvent(ctx context.Context, ev AuditEvent) {
	fields := []zap.Field{
		zap.String("audit.action", ev.Action),
		zap.String("audit.actor_id", ev.ActorID),
		zap.String("audit.resource_type", ev.ResourceType),
		zap.String("audit.resource_id", ev.ResourceID),
		zap.String("audit.result", ev.Result),
	}
	if ev.Reason != "" {
		fields = append(fields, zap.String("audit.reason", ev.Reason))
	}
	LoggerFromContext(ctx).Info("audit event", fields...)
}

type ctxActorKey struct{}

// ContextWithActor stores the acting administrator's ID for audit entries and
// tags every later log line of the request with it.
func ContextWithActor(ctx context.Context, actorID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = context.WithValue(ctx, ctxActorKey{}, actorID)
	return ContextWithLogger(ctx, LoggerFromContext(ctx).With(zap.String("actor_id", actorID)))
}

// ActorFromContext returns the acting administrator's ID, or "" when unknown.
func ActorFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	actor, _ := ctx.Value(ctxActorKey{}).(string)
	return actor
}
