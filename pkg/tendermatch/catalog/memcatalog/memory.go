// Package memcatalog is an in-memory catalog.Catalog for tests and for
// callers that load equipment from elsewhere.
package memcatalog

import (
	"context"
	"sort"
	"sync"

	"github.com/licitatech/tendermatch/pkg/tendermatch/catalog"
)

// Store is a mutex-guarded in-memory implementation of catalog.Catalog.
type Store struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]catalog.Equipment
}

// New creates an empty in-memory catalog.
func New() *Store {
	return &Store{
		nextID: 1,
		items:  make(map[int64]catalog.Equipment),
	}
}

// Add stores a record and returns its assigned ID.
func (s *Store) Add(e catalog.Equipment) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e.ID == 0 {
		e.ID = s.nextID
		s.nextID++
	} else if e.ID >= s.nextID {
		s.nextID = e.ID + 1
	}
	s.items[e.ID] = e
	return e.ID
}

// Find implements catalog.Catalog.
func (s *Store) Find(ctx context.Context, q catalog.Query) ([]catalog.Equipment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []catalog.Equipment
	for _, e := range s.items {
		if q.Matches(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}
