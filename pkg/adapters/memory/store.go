package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/flatexp/pkg/domain"
)

// Store implements ports.SnapshotStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.ExperimentSet
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.ExperimentSet),
	}
}

// Save keeps a deep copy of set.
func (s *Store) Save(ctx context.Context, id string, set *domain.ExperimentSet) error {
	if id == "" {
		return domain.ErrInvalidSnapshotID
	}
	copied := set.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = copied
	return nil
}

// Load returns a copy so callers cannot mutate the stored snapshot.
func (s *Store) Load(ctx context.Context, id string) (*domain.ExperimentSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.data[id]
	if !ok {
		return nil, domain.ErrSnapshotNotFound
	}
	return set.Clone(), nil
}

// Delete removes the snapshot.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns the stored IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
