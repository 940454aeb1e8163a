package memory

import (
	"context"
	"fmt"
	"sync"

	"paystub/internal/core"
	ports "paystub/internal/sheets"
)

// Store is an in-memory export target used in tests and local runs.
type Store struct {
	mu      sync.Mutex
	records []core.PaycheckRecord
}

var _ ports.RecordWriter = (*Store)(nil)

func New() *Store {
	return &Store{}
}

// Append stores the record and returns a synthetic row reference.
func (s *Store) Append(_ context.Context, record core.PaycheckRecord) (string, error) {
	if err := record.Validate(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return fmt.Sprintf("mem:%d", len(s.records)), nil
}

// ListRecords returns the stored records for a year.
func (s *Store) ListRecords(_ context.Context, year int) ([]core.PaycheckRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.PaycheckRecord
	for _, record := range s.records {
		if record.StatementDate.Year() == year {
			out = append(out, record)
		}
	}
	return out, nil
}

// Len reports how many records have been appended.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
