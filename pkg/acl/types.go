package acl

import (
	"context"
	"errors"
)

// Grant is an explicit, externally managed (person, dashboard, school)
// access grant. An empty School means the grant is unscoped.
type Grant struct {
	Dashboard string `json:"dashboard"`
	School    string `json:"school,omitempty"`
}

// Source represents a source of explicit ACL grants
type Source interface {
	// GrantsFor returns every explicit grant for a canonical email.
	// No grants is an empty slice, not an error.
	GrantsFor(ctx context.Context, email string) ([]Grant, error)
}

// ErrUnavailable is returned when the ACL table cannot be reached. Callers
// must degrade to "no ACL grants" rather than failing resolution.
var ErrUnavailable = errors.New("acl store unavailable")
