package acl

import (
	"context"
	"strings"

	"github.com/brightline/portald/pkg/logging"
)

// Store fronts an ACL Source with the degradation policy the portal
// requires: the ACL table is the last-resort grant path, so an unreachable
// table must cost those grants for the request, never the whole resolution.
type Store struct {
	source Source
}

// NewStore creates a new Store
func NewStore(source Source) *Store {
	return &Store{source: source}
}

// GrantsFor returns the explicit grants for an email. On source failure it
// logs a warning and reports no grants plus degraded=true so callers can
// surface the soft-failure signal.
func (s *Store) GrantsFor(ctx context.Context, email string) (grants []Grant, degraded bool) {
	email = strings.ToLower(email)

	grants, err := s.source.GrantsFor(ctx, email)
	if err != nil {
		logging.App.Warnw("acl store unavailable, degrading to no grants", "email", email, "error", err)
		return nil, true
	}
	return grants, false
}

// GrantsForDashboard filters GrantsFor down to one dashboard
func (s *Store) GrantsForDashboard(ctx context.Context, email, dashboard string) (grants []Grant, degraded bool) {
	all, degraded := s.GrantsFor(ctx, email)
	for _, grant := range all {
		if grant.Dashboard == dashboard {
			grants = append(grants, grant)
		}
	}
	return grants, degraded
}
