package immerse

import (
	"fmt"
	"sync"
)

// WidgetStore is the source of widget records. Implementations own the
// records; Snapshot returns copies in a stable order and the pipeline never
// writes back.
type WidgetStore interface {
	Snapshot() []WidgetRecord
}

// MemoryStore is an ordered, keyed, in-memory WidgetStore. Records are
// validated on write. Safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	order   []string
	records map[string]WidgetRecord
	version uint64
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]WidgetRecord)}
}

// Put validates r and inserts it, or replaces the record with the same ID
// while keeping its position in the order.
func (s *MemoryStore) Put(r WidgetRecord) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	s.records[r.ID] = r
	s.version++
	return nil
}

// Get returns the record with the given ID.
func (s *MemoryStore) Get(id string) (WidgetRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	return r, ok
}

// Remove deletes the record with the given ID.
func (s *MemoryStore) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return fmt.Errorf("remove %q: %w", id, ErrUnknownWidget)
	}
	delete(s.records, id)
	for i, o := range s.order {
		if o == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.version++
	return nil
}

// update applies fn to a copy of the record and stores it if it still
// validates.
func (s *MemoryStore) update(id string, fn func(*WidgetRecord)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return fmt.Errorf("update %q: %w", id, ErrUnknownWidget)
	}
	fn(&r)
	if err := r.Validate(); err != nil {
		return err
	}
	s.records[id] = r
	s.version++
	return nil
}

// Move sets the widget's canvas position.
func (s *MemoryStore) Move(id string, x, y float64) error {
	return s.update(id, func(r *WidgetRecord) { r.X, r.Y = x, y })
}

// Resize sets the widget's canvas size.
func (s *MemoryStore) Resize(id string, w, h float64) error {
	return s.update(id, func(r *WidgetRecord) { r.Width, r.Height = w, h })
}

// SetVisibility sets the widget's visibility flag.
func (s *MemoryStore) SetVisibility(id string, v Visibility) error {
	return s.update(id, func(r *WidgetRecord) { r.Visibility = v })
}

// Len returns the number of records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

// Version increases on every successful write.
func (s *MemoryStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Snapshot returns all records in insertion order.
func (s *MemoryStore) Snapshot() []WidgetRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]WidgetRecord, len(s.order))
	for i, id := range s.order {
		out[i] = s.records[id]
	}
	return out
}
