package property

import (
	"strconv"
	"sync"
	"time"
)

const (
	// DefaultLimit is the page size used when pagination is requested
	// without a usable limit.
	DefaultLimit = 10
	// DefaultOffset is the offset used when pagination is requested
	// without a usable offset.
	DefaultOffset = 0
)

// Store holds property records in memory. The zero value is not usable;
// create one with NewStore.
type Store struct {
	mu     sync.Mutex
	items  []Property
	nextID int64
	now    func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates an empty store whose first id is 1.
func NewStore(opts ...StoreOption) *Store {
	s := &Store{
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a new property and returns it with its assigned ID.
func (s *Store) Create(np NewProperty) Property {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := np.Status
	if status == "" {
		status = StatusAvailable
	}

	now := s.now()
	p := Property{
		ID:          s.nextID,
		Title:       np.Title,
		Description: np.Description,
		Address:     np.Address,
		Price:       np.Price,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.items = append(s.items, p)

	return p
}

// ListOptions controls filtering and pagination for List.
type ListOptions struct {
	Status Status // empty = all
	Limit  *int
	Offset *int
}

// Paginated reports whether a page was requested.
func (o ListOptions) Paginated() bool {
	return o.Limit != nil || o.Offset != nil
}

// Pagination describes the page returned by List. Limit, Offset and
// HasMore are only set when a page was requested.
type Pagination struct {
	Total   int   `json:"total"`
	Limit   *int  `json:"limit,omitempty"`
	Offset  *int  `json:"offset,omitempty"`
	HasMore *bool `json:"hasMore,omitempty"`
}

// ListResult is the output of List.
type ListResult struct {
	Properties []Property
	Pagination Pagination
}

// List returns properties in insertion order, optionally filtered by
// status and sliced into a page.
func (s *Store) List(opts ListOptions) ListResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]Property, 0, len(s.items))
	for _, p := range s.items {
		if opts.Status != "" && p.Status != opts.Status {
			continue
		}
		matched = append(matched, p)
	}

	total := len(matched)
	if !opts.Paginated() {
		return ListResult{Properties: matched, Pagination: Pagination{Total: total}}
	}

	limit := DefaultLimit
	if opts.Limit != nil && *opts.Limit > 0 {
		limit = *opts.Limit
	}
	offset := DefaultOffset
	if opts.Offset != nil && *opts.Offset > 0 {
		offset = *opts.Offset
	}

	// Compare against the remaining count so huge values cannot overflow.
	start := min(offset, total)
	end := start + min(limit, total-start)
	hasMore := offset < total && limit < total-offset

	return ListResult{
		Properties: matched[start:end],
		Pagination: Pagination{
			Total:   total,
			Limit:   &limit,
			Offset:  &offset,
			HasMore: &hasMore,
		},
	}
}

// ListOptionsFromQuery builds ListOptions from raw query values. Empty
// values are treated as absent. A present value that is not an integer
// still requests pagination and falls back to the default.
func ListOptionsFromQuery(status, limit, offset string) ListOptions {
	opts := ListOptions{Status: Status(status)}
	if limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			n = DefaultLimit
		}
		opts.Limit = &n
	}
	if offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil {
			n = DefaultOffset
		}
		opts.Offset = &n
	}
	return opts
}

// GetByID returns the property with the given ID.
func (s *Store) GetByID(id int64) (Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Property{}, false
	}
	return s.items[i], true
}

// Update merges patch into the property with the given ID. ID and
// CreatedAt are never changed; UpdatedAt is refreshed.
func (s *Store) Update(id int64, patch Patch) (Property, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return Property{}, false
	}

	existing := s.items[i]
	updated := existing
	patch.apply(&updated)

	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = s.now()
	if updated.UpdatedAt.Before(existing.CreatedAt) {
		updated.UpdatedAt = existing.CreatedAt
	}

	s.items[i] = updated
	return updated, true
}

// Delete removes the property with the given ID. IDs are never reused.
func (s *Store) Delete(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false
	}
	s.items = append(s.items[:i], s.items[i+1:]...)
	return true
}

// Reset clears all properties and restarts IDs at 1.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.nextID = 1
}

// Len returns the number of stored properties.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.items)
}

// indexOf must be called with mu held.
func (s *Store) indexOf(id int64) int {
	for i, p := range s.items {
		if p.ID == id {
			return i
		}
	}
	return -1
}
