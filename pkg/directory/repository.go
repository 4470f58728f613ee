package directory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/brightline/portald/pkg/logging"
)

// Repository provides cached access to staff directory data.
// Entries expire after cacheDuration; concurrent population of the same key
// is harmless since every populator writes the same source-of-truth row.
type Repository struct {
	source        Source
	cacheDuration time.Duration

	mu          sync.RWMutex
	cache       map[string]*StaffRecord
	lastRefresh map[string]time.Time
}

// NewRepository creates a new Repository
func NewRepository(source Source, cacheDuration time.Duration) *Repository {
	return &Repository{
		source:        source,
		cacheDuration: cacheDuration,
		cache:         make(map[string]*StaffRecord),
		lastRefresh:   make(map[string]time.Time),
	}
}

// GetStaff returns the staff record for a canonical email, using cache if fresh
func (r *Repository) GetStaff(ctx context.Context, email string) (*StaffRecord, error) {
	email = strings.ToLower(email)

	r.mu.RLock()
	record, exists := r.cache[email]
	lastRefresh := r.lastRefresh[email]
	r.mu.RUnlock()

	if exists && time.Since(lastRefresh) < r.cacheDuration {
		logging.App.Debugw("using cached staff record", "email", email, "cache_age", time.Since(lastRefresh))
		return record, nil
	}

	record, err := r.source.LoadStaff(ctx, email)
	if err != nil {
		logging.App.Debugw("failed to load staff record", "email", email, "error", err)
		return nil, err
	}

	r.mu.Lock()
	r.cache[email] = record
	r.lastRefresh[email] = time.Now()
	r.mu.Unlock()

	return record, nil
}

// RefreshStaff forces a refresh of a record from the source
func (r *Repository) RefreshStaff(ctx context.Context, email string) error {
	email = strings.ToLower(email)

	record, err := r.source.LoadStaff(ctx, email)
	if err != nil {
		return err
	}

	r.mu.Lock()
	r.cache[email] = record
	r.lastRefresh[email] = time.Now()
	r.mu.Unlock()

	return nil
}

// StaffExists checks if a directory record exists for the email
func (r *Repository) StaffExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetStaff(ctx, email)
	if errors.Is(err, ErrStaffNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
