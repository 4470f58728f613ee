package acl

import (
	"context"
	"strings"
	"sync"
)

// MemorySource implements Source using an in-memory map
type MemorySource struct {
	mu     sync.RWMutex
	grants map[string][]Grant
	// Fail simulates an unreachable ACL table when non-nil
	fail error
}

// NewMemorySource creates a new MemorySource
func NewMemorySource() *MemorySource {
	return &MemorySource{
		grants: make(map[string][]Grant),
	}
}

// GrantsFor implements Source
func (s *MemorySource) GrantsFor(_ context.Context, email string) ([]Grant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.fail != nil {
		return nil, s.fail
	}
	return append([]Grant(nil), s.grants[strings.ToLower(email)]...), nil
}

// AddGrant adds an explicit grant for an email
func (s *MemorySource) AddGrant(email string, grant Grant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = strings.ToLower(email)
	s.grants[email] = append(s.grants[email], grant)
}

// SetFailure makes subsequent loads fail with err; nil restores service
func (s *MemorySource) SetFailure(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail = err
}
