package youthprofile

import (
	"context"

	applog "github.com/delta94/youth-membership-admin-ui/internal/platform/logging"
	yp "github.com/delta94/youth-membership-admin-ui/internal/youthprofile"
)

// Gate validates records before handing them to the wrapped Service. An
// invalid record never reaches the store; the caller gets an
// *InvalidRecordError carrying the full report instead.
type Gate struct {
	next      Service
	validator *yp.Validator
}

// NewGate wraps next with validation by v.
func NewGate(next Service, v *yp.Validator) *Gate {
	return &Gate{next: next, validator: v}
}

func (g *Gate) check(ctx context.Context, action, id string, rec yp.ProfileRecord) error {
	report := g.validator.Validate(rec)
	if report.IsEmpty() {
		return nil
	}
	err := &InvalidRecordError{Report: report}
	applog.LogAuditEvent(ctx, applog.AuditEvent{
		Action:       action,
		ActorID:      applog.ActorFromContext(ctx),
		ResourceType: resourceType,
		ResourceID:   id,
		Result:       applog.AuditFailure,
		Reason:       categorizeError(err),
	})
	return err
}

func (g *Gate) Create(ctx context.Context, rec yp.ProfileRecord) (*YouthProfile, error) {
	if err := g.check(ctx, "create", "", rec); err != nil {
		return nil, err
	}
	return g.next.Create(ctx, rec)
}

func (g *Gate) Get(ctx context.Context, id string) (*YouthProfile, error) {
	return g.next.Get(ctx, id)
}

func (g *Gate) List(ctx context.Context, params ListParams) ([]*YouthProfile, error) {
	return g.next.List(ctx, params)
}

func (g *Gate) Update(ctx context.Context, id string, rec yp.ProfileRecord) (*YouthProfile, error) {
	if err := g.check(ctx, "update", id, rec); err != nil {
		return nil, err
	}
	return g.next.Update(ctx, id, rec)
}

func (g *Gate) Renew(ctx context.Context, id string, rec yp.ProfileRecord) (*YouthProfile, error) {
	if err := g.check(ctx, "renew", id, rec); err != nil {
		return nil, err
	}
	return g.next.Renew(ctx, id, rec)
}

func (g *Gate) Delete(ctx context.Context, id string) error {
	return g.next.Delete(ctx, id)
}

// Compile-time interface check
var _ Service = (*Gate)(nil)
