// Package memory is an in process row store for development and tests
package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"taxkaki/internal/adapters/rowstore"
)

// Store keeps sheets in memory
// LoadErr and AppendErr inject failures
type Store struct {
	mu     sync.RWMutex
	sheets map[string][]rowstore.Row

	LoadErr   error
	AppendErr error

	loads   atomic.Int64
	appends atomic.Int64
}

// New returns an empty store
func New() *Store { return &Store{sheets: map[string][]rowstore.Row{}} }

// Seed replaces the rows of sheetID
func (s *Store) Seed(sheetID string, rows ...rowstore.Row) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sheets == nil {
		s.sheets = map[string][]rowstore.Row{}
	}
	s.sheets[sheetID] = append([]rowstore.Row(nil), rows...)
	return s
}

// LoadAllRows returns a copy of the rows of sheetID, unknown sheets are empty
func (s *Store) LoadAllRows(_ context.Context, sheetID string) ([]rowstore.Row, error) {
	s.loads.Add(1)
	if s.LoadErr != nil {
		return nil, s.LoadErr
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.sheets[sheetID]
	out := make([]rowstore.Row, len(src))
	for i, r := range src {
		out[i] = append(rowstore.Row(nil), r...)
	}
	return out, nil
}

// AppendRow appends a copy of row to sheetID
func (s *Store) AppendRow(_ context.Context, sheetID string, row rowstore.Row) error {
	s.appends.Add(1)
	if s.AppendErr != nil {
		return s.AppendErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sheets == nil {
		s.sheets = map[string][]rowstore.Row{}
	}
	s.sheets[sheetID] = append(s.sheets[sheetID], append(rowstore.Row(nil), row...))
	return nil
}

// Loads counts LoadAllRows calls, failed ones included
func (s *Store) Loads() int64 { return s.loads.Load() }

// Appends counts AppendRow calls, failed ones included
func (s *Store) Appends() int64 { return s.appends.Load() }
