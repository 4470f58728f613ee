package hierarchy

import (
	"context"
	"strings"
	"sync"
)

// MemorySource implements Source using an in-memory edge map
type MemorySource struct {
	mu      sync.RWMutex
	reports map[string][]string
}

// NewMemorySource creates a new MemorySource
func NewMemorySource() *MemorySource {
	return &MemorySource{
		reports: make(map[string][]string),
	}
}

// DirectReports implements Source
func (s *MemorySource) DirectReports(_ context.Context, supervisorEmail string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.reports[strings.ToLower(supervisorEmail)]...), nil
}

// AddReport records that report reports to supervisor
func (s *MemorySource) AddReport(supervisor, report string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	supervisor = strings.ToLower(supervisor)
	s.reports[supervisor] = append(s.reports[supervisor], strings.ToLower(report))
}
