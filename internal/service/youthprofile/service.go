package youthprofile

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/delta94/youth-membership-admin-ui/internal/platform/timeutil"
	yp "github.com/delta94/youth-membership-admin-ui/internal/youthprofile"
)

// Service errors
var (
	ErrNotFound      = errors.New("youth profile not found")
	ErrAlreadyExists = errors.New("youth profile already exists")
)

// InvalidRecordError is returned when a record fails validation. Report holds
// every message; nothing was persisted.
type InvalidRecordError struct {
	Report yp.ErrorReport
}

func (e *InvalidRecordError) Error() string {
	return fmt.Sprintf("invalid youth profile record: %d field(s) rejected", len(e.Report.Issues()))
}

// Status is the membership state of a stored profile.
type Status string

// Membership states.
const (
	StatusActive   Status = "ACTIVE"
	StatusRenewing Status = "RENEWING"
	StatusExpired  Status = "EXPIRED"
)

// YouthProfile represents a stored membership.
type YouthProfile struct {
	ID               string
	MembershipNumber string
	Status           Status
	Expiration       time.Time // last day of membership, UTC midnight
	Record           yp.ProfileRecord
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ListParams filters List results. Empty fields match everything; names match
// case-insensitively and exactly.
type ListParams struct {
	FirstName string
	LastName  string
}

// Service defines youth profile operations.
//
// Implementations must normalize records before storing:
//   - Email and ApproverEmail: lowercase and trim whitespace
//   - Phone and ApproverPhone: trim whitespace
//
// They do not validate; wrap them in a Gate for that.
type Service interface {
	Create(ctx context.Context, rec yp.ProfileRecord) (*YouthProfile, error)
	Get(ctx context.Context, id string) (*YouthProfile, error)
	List(ctx context.Context, params ListParams) ([]*YouthProfile, error)
	Update(ctx context.Context, id string, rec yp.ProfileRecord) (*YouthProfile, error)
	Renew(ctx context.Context, id string, rec yp.ProfileRecord) (*YouthProfile, error)
	Delete(ctx context.Context, id string) error
}

// SeasonEnd returns the first 31 August strictly after d. Membership seasons
// end on that day.
func SeasonEnd(d time.Time) time.Time {
	day := timeutil.StartOfDay(d)
	end := time.Date(day.Year(), time.August, 31, 0, 0, 0, 0, time.UTC)
	if !end.After(day) {
		end = end.AddDate(1, 0, 0)
	}
	return end
}

// renewedExpiration extends a membership by one season, counting from the
// current expiration when it has not passed yet.
func renewedExpiration(current, now time.Time) time.Time {
	from := timeutil.StartOfDay(now)
	if current.After(from) {
		from = current
	}
	return SeasonEnd(from)
}

// StatusAt derives the membership status on the day of now. A membership
// already extended past the running season is RENEWING.
func StatusAt(expiration, now time.Time) Status {
	today := timeutil.StartOfDay(now)
	switch {
	case today.After(expiration):
		return StatusExpired
	case expiration.After(SeasonEnd(today)):
		return StatusRenewing
	default:
		return StatusActive
	}
}

func formatMembershipNumber(n int64) string {
	return fmt.Sprintf("%05d", n)
}

func normalize(rec yp.ProfileRecord) yp.ProfileRecord {
	rec.Email = strings.ToLower(strings.TrimSpace(rec.Email))
	rec.ApproverEmail = strings.ToLower(strings.TrimSpace(rec.ApproverEmail))
	rec.Phone = strings.TrimSpace(rec.Phone)
	rec.ApproverPhone = strings.TrimSpace(rec.ApproverPhone)
	rec.PrimaryAddress.Primary = true
	rec.Addresses = slices.Clone(rec.Addresses)
	if rec.Addresses == nil {
		rec.Addresses = []yp.AddressEntry{}
	}
	for i := range rec.Addresses {
		rec.Addresses[i].Primary = false
	}
	return rec
}

func nameKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func (p ListParams) matches(rec yp.ProfileRecord) bool {
	if p.FirstName != "" && nameKey(p.FirstName) != nameKey(rec.FirstName) {
		return false
	}
	if p.LastName != "" && nameKey(p.LastName) != nameKey(rec.LastName) {
		return false
	}
	return true
}

// compareProfiles orders by last name, first name, then ID.
func compareProfiles(a, b *YouthProfile) int {
	if c := strings.Compare(nameKey(a.Record.LastName), nameKey(b.Record.LastName)); c != 0 {
		return c
	}
	if c := strings.Compare(nameKey(a.Record.FirstName), nameKey(b.Record.FirstName)); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

// categorizeError converts errors to audit-safe categories.
func categorizeError(err error) string {
	var invalid *InvalidRecordError
	switch {
	case errors.As(err, &invalid):
		return "invalid_record"
	case errors.Is(err, ErrAlreadyExists):
		return "already_exists"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "internal_error"
	}
}
