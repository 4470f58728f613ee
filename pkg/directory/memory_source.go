package directory

import (
	"context"
	"strings"
	"sync"
)

// MemorySource implements Source using an in-memory map
type MemorySource struct {
	mu    sync.RWMutex
	staff map[string]*StaffRecord
}

// NewMemorySource creates a new MemorySource
func NewMemorySource() *MemorySource {
	return &MemorySource{
		staff: make(map[string]*StaffRecord),
	}
}

// LoadStaff implements Source
func (s *MemorySource) LoadStaff(_ context.Context, email string) (*StaffRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.staff[strings.ToLower(email)]
	if !ok {
		return nil, ErrStaffNotFound
	}
	return record, nil
}

// AddStaff adds a record to the memory source
func (s *MemorySource) AddStaff(record *StaffRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staff[strings.ToLower(record.Email)] = record
}

// RemoveStaff removes a record from memory
func (s *MemorySource) RemoveStaff(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.staff, strings.ToLower(email))
}

// All returns every record in the source
func (s *MemorySource) All() []*StaffRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]*StaffRecord, 0, len(s.staff))
	for _, record := range s.staff {
		records = append(records, record)
	}
	return records
}
