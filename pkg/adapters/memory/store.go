package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/automata/pkg/domain"
)

// Store implements ports.ReportStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Report
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Report),
	}
}

// Save persists the report in memory.
func (s *Store) Save(ctx context.Context, report *domain.Report) error {
	copied := copyReport(report)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[report.ID] = copied
	return nil
}

// Load retrieves the report from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	report, ok := s.data[id]
	if !ok {
		return nil, domain.ErrReportNotFound
	}

	// Copy on read so callers can't mutate the stored report through the pointer.
	return copyReport(report), nil
}

// Delete removes the report.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored report IDs.
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

func copyReport(r *domain.Report) *domain.Report {
	out := *r
	out.Results = make([]domain.Result, len(r.Results))
	for i, res := range r.Results {
		if res.Path != nil {
			res.Path = append([]string(nil), res.Path...)
		}
		out.Results[i] = res
	}
	if r.Sealed != nil {
		out.Sealed = append([]byte(nil), r.Sealed...)
	}
	return &out
}
