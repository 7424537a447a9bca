package property

import (
	"testing"
	"time"
)

func TestCreateDefaults(t *testing.T) {
	s := NewStore()

	p := s.Create(NewProperty{Title: "A", Address: "B", Price: 100})

	if p.ID != 1 {
		t.Errorf("id = %d, want 1", p.ID)
	}
	if p.Status != StatusAvailable {
		t.Errorf("status = %q, want %q", p.Status, StatusAvailable)
	}
	if !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Errorf("createdAt %v != updatedAt %v", p.CreatedAt, p.UpdatedAt)
	}
	if p.CreatedAt.IsZero() {
		t.Error("expected createdAt to be set")
	}
}

func TestCreateKeepsStatus(t *testing.T) {
	s := NewStore()

	p := s.Create(NewProperty{Title: "A", Address: "B", Price: 1, Status: StatusPending})
	if p.Status != StatusPending {
		t.Errorf("status = %q, want %q", p.Status, StatusPending)
	}
}

func TestCreateSequentialIDs(t *testing.T) {
	s := NewStore()

	first := s.Create(NewProperty{Title: "one", Address: "1 St"})
	second := s.Create(NewProperty{Title: "two", Address: "2 St"})

	if first.ID != 1 || second.ID != 2 {
		t.Errorf("ids = %d, %d; want 1, 2", first.ID, second.ID)
	}
}

func TestIDsNotReusedAfterDelete(t *testing.T) {
	s := NewStore()

	s.Create(NewProperty{Title: "one", Address: "1 St"})
	s.Create(NewProperty{Title: "two", Address: "2 St"})
	if !s.Delete(1) {
		t.Fatal("expected delete to succeed")
	}

	p := s.Create(NewProperty{Title: "three", Address: "3 St"})
	if p.ID != 3 {
		t.Errorf("id = %d, want 3", p.ID)
	}
}

func TestStoresAreIndependent(t *testing.T) {
	a := NewStore()
	b := NewStore()

	a.Create(NewProperty{Title: "a", Address: "a"})
	a.Create(NewProperty{Title: "a", Address: "a"})

	p := b.Create(NewProperty{Title: "b", Address: "b"})
	if p.ID != 1 {
		t.Errorf("id = %d, want 1", p.ID)
	}
	if a.Len() != 2 || b.Len() != 1 {
		t.Errorf("len = %d, %d; want 2, 1", a.Len(), b.Len())
	}
}

func TestListFilterByStatus(t *testing.T) {
	s := seedStore(t, StatusSold, StatusAvailable, StatusSold, StatusPending)

	res := s.List(ListOptions{Status: StatusSold})

	if len(res.Properties) != 2 {
		t.Fatalf("got %d properties, want 2", len(res.Properties))
	}
	if res.Properties[0].ID != 1 || res.Properties[1].ID != 3 {
		t.Errorf("ids = %d, %d; want 1, 3", res.Properties[0].ID, res.Properties[1].ID)
	}
	if res.Pagination.Total != 2 {
		t.Errorf("total = %d, want 2", res.Pagination.Total)
	}
	if res.Pagination.Limit != nil || res.Pagination.Offset != nil || res.Pagination.HasMore != nil {
		t.Error("expected no page fields without limit/offset")
	}
}

func TestListPagination(t *testing.T) {
	tests := []struct {
		name        string
		limit       *int
		offset      *int
		wantIDs     []int64
		wantLimit   int
		wantOffset  int
		wantHasMore bool
	}{
		{"second of three", intPtr(1), intPtr(1), []int64{2}, 1, 1, true},
		{"tail page", intPtr(10), intPtr(2), []int64{3}, 10, 2, false},
		{"limit only", intPtr(2), nil, []int64{1, 2}, 2, 0, true},
		{"offset only", nil, intPtr(1), []int64{2, 3}, 10, 1, false},
		{"zero limit falls back", intPtr(0), intPtr(0), []int64{1, 2, 3}, 10, 0, false},
		{"offset past end", intPtr(5), intPtr(9), []int64{}, 5, 9, false},
		{"exact fit", intPtr(3), intPtr(0), []int64{1, 2, 3}, 3, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := seedStore(t, StatusAvailable, StatusAvailable, StatusAvailable)

			res := s.List(ListOptions{Limit: tt.limit, Offset: tt.offset})

			if got := ids(res.Properties); !equalIDs(got, tt.wantIDs) {
				t.Errorf("ids = %v, want %v", got, tt.wantIDs)
			}
			pg := res.Pagination
			if pg.Total != 3 {
				t.Errorf("total = %d, want 3", pg.Total)
			}
			if pg.Limit == nil || *pg.Limit != tt.wantLimit {
				t.Errorf("limit = %v, want %d", pg.Limit, tt.wantLimit)
			}
			if pg.Offset == nil || *pg.Offset != tt.wantOffset {
				t.Errorf("offset = %v, want %d", pg.Offset, tt.wantOffset)
			}
			if pg.HasMore == nil || *pg.HasMore != tt.wantHasMore {
				t.Errorf("hasMore = %v, want %v", pg.HasMore, tt.wantHasMore)
			}
		})
	}
}

func TestListFilterThenPaginate(t *testing.T) {
	s := seedStore(t, StatusSold, StatusAvailable, StatusSold, StatusSold)

	res := s.List(ListOptions{Status: StatusSold, Limit: intPtr(1), Offset: intPtr(1)})

	if got := ids(res.Properties); !equalIDs(got, []int64{3}) {
		t.Errorf("ids = %v, want [3]", got)
	}
	if res.Pagination.Total != 3 {
		t.Errorf("total = %d, want 3", res.Pagination.Total)
	}
}

func TestListOptionsFromQuery(t *testing.T) {
	tests := []struct {
		name       string
		limit      string
		offset     string
		wantLimit  *int
		wantOffset *int
	}{
		{"absent", "", "", nil, nil},
		{"numeric", "5", "2", intPtr(5), intPtr(2)},
		{"non-numeric limit", "abc", "", intPtr(DefaultLimit), nil},
		{"non-numeric offset", "", "xyz", nil, intPtr(DefaultOffset)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := ListOptionsFromQuery("sold", tt.limit, tt.offset)
			if opts.Status != StatusSold {
				t.Errorf("status = %q, want sold", opts.Status)
			}
			if !equalIntPtr(opts.Limit, tt.wantLimit) {
				t.Errorf("limit = %v, want %v", opts.Limit, tt.wantLimit)
			}
			if !equalIntPtr(opts.Offset, tt.wantOffset) {
				t.Errorf("offset = %v, want %v", opts.Offset, tt.wantOffset)
			}
		})
	}
}

func TestGetByIDRoundTrip(t *testing.T) {
	s := NewStore()

	created := s.Create(NewProperty{Title: "A", Description: "nice", Address: "B", Price: 5})

	got, ok := s.GetByID(created.ID)
	if !ok {
		t.Fatal("expected property to be found")
	}
	if got != created {
		t.Errorf("got %+v, want %+v", got, created)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	s := NewStore()

	if _, ok := s.GetByID(9999); ok {
		t.Fatal("expected not found")
	}
}

func TestReadsReturnCopies(t *testing.T) {
	s := NewStore()
	created := s.Create(NewProperty{Title: "A", Address: "B"})

	got, _ := s.GetByID(created.ID)
	got.Title = "mutated"

	res := s.List(ListOptions{})
	res.Properties[0].Address = "mutated"

	again, _ := s.GetByID(created.ID)
	if again.Title != "A" || again.Address != "B" {
		t.Errorf("store was mutated through a returned value: %+v", again)
	}
}

func TestUpdateMergesFields(t *testing.T) {
	clock := newFakeClock()
	s := NewStore(WithClock(clock.Now))

	created := s.Create(NewProperty{Title: "A", Description: "d", Address: "B", Price: 100})
	clock.Advance(time.Minute)

	sold := StatusSold
	updated, ok := s.Update(created.ID, Patch{Status: &sold})
	if !ok {
		t.Fatal("expected update to succeed")
	}

	if updated.Status != StatusSold {
		t.Errorf("status = %q, want sold", updated.Status)
	}
	if updated.Title != "A" || updated.Description != "d" || updated.Address != "B" || updated.Price != 100 {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if updated.ID != created.ID {
		t.Errorf("id = %d, want %d", updated.ID, created.ID)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt = %v, want %v", updated.CreatedAt, created.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(created.CreatedAt.Add(time.Minute)) {
		t.Errorf("updatedAt = %v, want one minute after creation", updated.UpdatedAt)
	}

	got, _ := s.GetByID(created.ID)
	if got != updated {
		t.Errorf("stored = %+v, want %+v", got, updated)
	}
}

func TestUpdateEmptyPatchRefreshesUpdatedAt(t *testing.T) {
	clock := newFakeClock()
	s := NewStore(WithClock(clock.Now))

	created := s.Create(NewProperty{Title: "A", Address: "B"})
	clock.Advance(time.Second)

	updated, ok := s.Update(created.ID, Patch{})
	if !ok {
		t.Fatal("expected update to succeed")
	}
	if updated.Title != "A" || updated.Address != "B" {
		t.Errorf("fields changed on empty patch: %+v", updated)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Error("expected updatedAt to move forward")
	}
}

func TestUpdateNeverMovesUpdatedAtBeforeCreatedAt(t *testing.T) {
	clock := newFakeClock()
	s := NewStore(WithClock(clock.Now))

	created := s.Create(NewProperty{Title: "A", Address: "B"})
	clock.Advance(-time.Hour)

	updated, _ := s.Update(created.ID, Patch{})
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Errorf("updatedAt %v before createdAt %v", updated.UpdatedAt, updated.CreatedAt)
	}
}

func TestUpdateNotFound(t *testing.T) {
	s := seedStore(t, StatusAvailable)

	title := "x"
	if _, ok := s.Update(42, Patch{Title: &title}); ok {
		t.Fatal("expected not found")
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}

func TestDelete(t *testing.T) {
	s := seedStore(t, StatusAvailable, StatusSold, StatusPending)

	if !s.Delete(2) {
		t.Fatal("expected delete to succeed")
	}
	if _, ok := s.GetByID(2); ok {
		t.Error("expected property to be gone")
	}

	res := s.List(ListOptions{})
	if got := ids(res.Properties); !equalIDs(got, []int64{1, 3}) {
		t.Errorf("ids = %v, want [1 3]", got)
	}
}

func TestDeleteNotFound(t *testing.T) {
	s := seedStore(t, StatusAvailable)

	if s.Delete(9999) {
		t.Fatal("expected delete to fail")
	}
	if s.Len() != 1 {
		t.Errorf("len = %d, want 1", s.Len())
	}
}

func TestReset(t *testing.T) {
	s := seedStore(t, StatusAvailable, StatusSold)

	s.Reset()

	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
	if p := s.Create(NewProperty{Title: "A", Address: "B"}); p.ID != 1 {
		t.Errorf("id = %d, want 1", p.ID)
	}
}

func seedStore(t *testing.T, statuses ...Status) *Store {
	t.Helper()
	s := NewStore()
	for i, st := range statuses {
		s.Create(NewProperty{
			Title:   "Listing",
			Address: string(rune('A'+i)) + " Street",
			Price:   float64(100 * (i + 1)),
			Status:  st,
		})
	}
	return s
}

type fakeClock struct {
	t time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func intPtr(n int) *int { return &n }

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func ids(props []Property) []int64 {
	out := make([]int64, 0, len(props))
	for _, p := range props {
		out = append(out, p.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
