package youthprofile

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newTestMemoryStore() (*MemoryStore, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)}
	return NewMemoryStoreWithClock(clock.Now), clock
}

func TestMemoryCreate(t *testing.T) {
	store, _ := newTestMemoryStore()
	ctx := context.Background()

	rec := validRecord("Jane", "Doe")
	rec.Email = " JANE@EXAMPLE.COM"

	p, err := store.Create(ctx, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.ID == "" {
		t.Error("expected ID to be set")
	}
	if p.MembershipNumber != "00001" {
		t.Errorf("expected membership number 00001, got %s", p.MembershipNumber)
	}
	if p.Status != StatusActive {
		t.Errorf("expected ACTIVE, got %s", p.Status)
	}
	if !p.Expiration.Equal(date(2027, 8, 31)) {
		t.Errorf("expected expiration 2027-08-31, got %s", p.Expiration)
	}
	if p.Record.Email != "jane@example.com" {
		t.Errorf("expected email to be normalized, got %s", p.Record.Email)
	}
	if p.CreatedAt.IsZero() || !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Errorf("unexpected timestamps %s %s", p.CreatedAt, p.UpdatedAt)
	}
}

func TestMemoryCreateIssuesSequentialNumbers(t *testing.T) {
	store, _ := newTestMemoryStore()
	ctx := context.Background()

	var ids []string
	for i, want := range []string{"00001", "00002", "00003"} {
		p, err := store.Create(ctx, validRecord("Jane", "Doe"))
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if p.MembershipNumber != want {
			t.Errorf("create %d: got %s, want %s", i, p.MembershipNumber, want)
		}
		ids = append(ids, p.ID)
	}
	if ids[0] == ids[1] || ids[1] == ids[2] {
		t.Fatal("expected unique IDs")
	}
}

func TestMemoryGet(t *testing.T) {
	store, _ := newTestMemoryStore()
	ctx := context.Background()

	created, _ := store.Create(ctx, validRecord("Jane", "Doe"))

	p, err := store.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Record.FirstName != "Jane" || p.MembershipNumber != created.MembershipNumber {
		t.Fatalf("unexpected profile %+v", p)
	}
}

func TestMemoryGetNotFound(t *testing.T) {
	store, _ := newTestMemoryStore()

	_, err := store.Get(context.Background(), "missing")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryReturnsCopies(t *testing.T) {
	store, _ := newTestMemoryStore()
	ctx := context.Background()

	rec := validRecord("Jane", "Doe")
	rec.Addresses = append(rec.Addresses, validRecord("", "").PrimaryAddress)
	created, _ := store.Create(ctx, rec)

	created.Record.FirstName = "Mutated"
	created.Record.Addresses[0].City = "Mutated"
	rec.Addresses[0].Address = "Mutated"

	p, _ := store.Get(ctx, created.ID)
	if p.Record.FirstName != "Jane" || p.Record.Addresses[0].City != "Helsinki" || p.Record.Addresses[0].Address != "Mainstreet 1" {
		t.Fatalf("stored profile was mutated: %+v", p.Record)
	}
}

func TestMemoryList(t *testing.T) {
	store, _ := newTestMemoryStore()
	ctx := context.Background()

	for _, n := range [][2]string{{"Matti", "Virtanen"}, {"Anna", "Korhonen"}, {"Aino", "Virtanen"}, {"anna", "korhonen"}} {
		if _, err := store.Create(ctx, validRecord(n[0], n[1])); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	all, err := store.List(ctx, ListParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 profiles, got %d", len(all))
	}
	wantLast := []string{"korhonen", "korhonen", "virtanen", "virtanen"}
	for i, p := range all {
		if nameKey(p.Record.LastName) != wantLast[i] {
			t.Errorf("position %d: got %s", i, p.Record.LastName)
		}
	}
	if all[2].Record.FirstName != "Aino" || all[3].Record.FirstName != "Matti" {
		t.Errorf("expected first name order within last name, got %s, %s", all[2].Record.FirstName, all[3].Record.FirstName)
	}
	if all[0].ID > all[1].ID {
		t.Error("expected ID order for equal names")
	}

	tests := []struct {
		params ListParams
		want   int
	}{
		{ListParams{LastName: "VIRTANEN"}, 2},
		{ListParams{FirstName: "anna"}, 2},
		{ListParams{FirstName: "Anna", LastName: "Korhonen"}, 2},
		{ListParams{FirstName: "Ann"}, 0},
		{ListParams{FirstName: "Matti", LastName: "Korhonen"}, 0},
	}
	for _, tt := range tests {
		got, err := store.List(ctx, tt.params)
		if err != nil {
			t.Fatalf("list %+v: %v", tt.params, err)
		}
		if len(got) != tt.want {
			t.Errorf("list %+v: got %d, want %d", tt.params, len(got), tt.want)
		}
	}
}

func TestMemoryUpdate(t *testing.T) {
	store, clock := newTestMemoryStore()
	ctx := context.Background()

	created, _ := store.Create(ctx, validRecord("Jane", "Doe"))
	clock.Set(clock.Now().Add(time.Hour))

	rec := validRecord("Janet", "Doe")
	p, err := store.Update(ctx, created.ID, rec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Record.FirstName != "Janet" {
		t.Errorf("expected first name Janet, got %s", p.Record.FirstName)
	}
	if !p.Expiration.Equal(created.Expiration) || p.MembershipNumber != created.MembershipNumber {
		t.Error("update must not change membership data")
	}
	if !p.UpdatedAt.After(created.UpdatedAt) {
		t.Error("expected UpdatedAt to advance")
	}
	if !p.CreatedAt.Equal(created.CreatedAt) {
		t.Error("CreatedAt must not change")
	}
}

func TestMemoryUpdateNotFound(t *testing.T) {
	store, _ := newTestMemoryStore()

	_, err := store.Update(context.Background(), "missing", validRecord("A", "B"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryRenew(t *testing.T) {
	store, clock := newTestMemoryStore()
	ctx := context.Background()

	created, _ := store.Create(ctx, validRecord("Jane", "Doe"))

	renewed, err := store.Renew(ctx, created.ID, validRecord("Jane", "Doe"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !renewed.Expiration.Equal(date(2028, 8, 31)) {
		t.Fatalf("expected 2028-08-31, got %s", renewed.Expiration)
	}
	if renewed.Status != StatusRenewing {
		t.Fatalf("expected RENEWING, got %s", renewed.Status)
	}

	clock.Set(date(2027, 9, 1))
	p, _ := store.Get(ctx, created.ID)
	if p.Status != StatusActive {
		t.Fatalf("expected ACTIVE in the renewed season, got %s", p.Status)
	}

	clock.Set(date(2028, 9, 1))
	p, _ = store.Get(ctx, created.ID)
	if p.Status != StatusExpired {
		t.Fatalf("expected EXPIRED, got %s", p.Status)
	}

	p, err = store.Renew(ctx, created.ID, validRecord("Jane", "Doe"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.Expiration.Equal(date(2029, 8, 31)) || p.Status != StatusActive {
		t.Fatalf("expected ACTIVE until 2029-08-31, got %s %s", p.Status, p.Expiration)
	}
}

func TestMemoryRenewNotFound(t *testing.T) {
	store, _ := newTestMemoryStore()

	_, err := store.Renew(context.Background(), "missing", validRecord("A", "B"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryDelete(t *testing.T) {
	store, _ := newTestMemoryStore()
	ctx := context.Background()

	created, _ := store.Create(ctx, validRecord("Jane", "Doe"))

	if err := store.Delete(ctx, created.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := store.Get(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := store.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestMemoryClear(t *testing.T) {
	store, _ := newTestMemoryStore()
	ctx := context.Background()

	_, _ = store.Create(ctx, validRecord("Jane", "Doe"))
	store.Clear()

	all, _ := store.List(ctx, ListParams{})
	if len(all) != 0 {
		t.Fatalf("expected empty store, got %d", len(all))
	}
	p, _ := store.Create(ctx, validRecord("Jane", "Doe"))
	if p.MembershipNumber != "00001" {
		t.Fatalf("expected sequence reset, got %s", p.MembershipNumber)
	}
}

func TestMemoryConcurrentCreate(t *testing.T) {
	store, _ := newTestMemoryStore()
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	numbers := make(chan string, n)
	for range n {
		wg.Go(func() {
			p, err := store.Create(ctx, validRecord("Jane", "Doe"))
			if err != nil {
				t.Errorf("create: %v", err)
				return
			}
			numbers <- p.MembershipNumber
		})
	}
	wg.Wait()
	close(numbers)

	seen := make(map[string]bool)
	for num := range numbers {
		if seen[num] {
			t.Fatalf("duplicate membership number %s", num)
		}
		seen[num] = true
	}
	if len(seen) != n {
		t.Fatalf("expected %d numbers, got %d", n, len(seen))
	}
}
