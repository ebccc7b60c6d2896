package youthprofile

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/delta94/youth-membership-admin-ui/internal/platform/timeutil"
	yp "github.com/delta94/youth-membership-admin-ui/internal/youthprofile"
)

// MemoryStore implements Service in process memory. It backs tests and local
// runs without Firestore.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*YouthProfile
	lastSeq  int64
	now      func() time.Time
}

// NewMemoryStore creates an empty store using the wall clock.
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock creates an empty store reading today from now.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]*YouthProfile),
		now:      now,
	}
}

func (m *MemoryStore) Create(_ context.Context, rec yp.ProfileRecord) (*YouthProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	if _, exists := m.profiles[id]; exists {
		return nil, ErrAlreadyExists
	}

	now := m.now().UTC()
	m.lastSeq++
	p := &YouthProfile{
		ID:               id,
		MembershipNumber: formatMembershipNumber(m.lastSeq),
		Expiration:       SeasonEnd(now),
		Record:           normalize(rec),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	m.profiles[id] = p
	return m.snapshot(p), nil
}

func (m *MemoryStore) Get(_ context.Context, id string) (*YouthProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	p, exists := m.profiles[id]
	if !exists {
		return nil, ErrNotFound
	}
	return m.snapshot(p), nil
}

func (m *MemoryStore) List(_ context.Context, params ListParams) ([]*YouthProfile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*YouthProfile, 0, len(m.profiles))
	for _, p := range m.profiles {
		if params.matches(p.Record) {
			out = append(out, m.snapshot(p))
		}
	}
	slices.SortFunc(out, compareProfiles)
	return out, nil
}

func (m *MemoryStore) Update(_ context.Context, id string, rec yp.ProfileRecord) (*YouthProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.profiles[id]
	if !exists {
		return nil, ErrNotFound
	}
	p.Record = normalize(rec)
	p.UpdatedAt = m.now().UTC()
	return m.snapshot(p), nil
}

func (m *MemoryStore) Renew(_ context.Context, id string, rec yp.ProfileRecord) (*YouthProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, exists := m.profiles[id]
	if !exists {
		return nil, ErrNotFound
	}
	now := m.now().UTC()
	p.Record = normalize(rec)
	p.Expiration = renewedExpiration(p.Expiration, now)
	p.UpdatedAt = now
	return m.snapshot(p), nil
}

func (m *MemoryStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.profiles[id]; !exists {
		return ErrNotFound
	}
	delete(m.profiles, id)
	return nil
}

// Clear removes all profiles and resets the membership sequence.
func (m *MemoryStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles = make(map[string]*YouthProfile)
	m.lastSeq = 0
}

// snapshot copies p with its status derived for today, so callers cannot
// mutate stored state.
func (m *MemoryStore) snapshot(p *YouthProfile) *YouthProfile {
	out := *p
	out.Record.Addresses = slices.Clone(p.Record.Addresses)
	out.Status = StatusAt(p.Expiration, timeutil.StartOfDay(m.now()))
	return &out
}

// Compile-time interface check
var _ Service = (*MemoryStore)(nil)

// Ping always succeeds; the store lives in process.
func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}
