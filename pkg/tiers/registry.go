package tiers

import (
	"fmt"
	"strings"
)

// Registry answers tier membership and tier grants for canonical emails.
// It is immutable once built; configuration reloads swap the whole Registry
// so in-flight resolutions never see a half-updated tier set.
type Registry struct {
	tiers    []Tier
	byMember map[string][]int
}

// NewRegistry builds a Registry from configured tiers. Member emails are
// lower-cased; duplicate tier names, grants without a dashboard, and grants
// with an unrecognized scope template are rejected.
func NewRegistry(configured []Tier) (*Registry, error) {
	seen := make(map[string]struct{}, len(configured))
	r := &Registry{
		tiers:    make([]Tier, len(configured)),
		byMember: make(map[string][]int),
	}

	for idx, tier := range configured {
		if tier.Name == "" {
			return nil, fmt.Errorf("tier %d has no name", idx)
		}
		if _, dup := seen[tier.Name]; dup {
			return nil, fmt.Errorf("duplicate tier %q", tier.Name)
		}
		seen[tier.Name] = struct{}{}

		// A misspelled scope must never load: downstream a grant with an
		// unrecognized template is treated as conferring nothing
		for _, grant := range tier.Grants {
			if grant.Dashboard == "" {
				return nil, fmt.Errorf("tier %q has a grant with no dashboard", tier.Name)
			}
			switch grant.Scope {
			case TemplateUnrestricted, TemplateOwnSchool:
			default:
				return nil, fmt.Errorf("tier %q: unknown scope %q for dashboard %q", tier.Name, grant.Scope, grant.Dashboard)
			}
		}

		r.tiers[idx] = tier
		for _, member := range tier.Members {
			member = strings.ToLower(member)
			r.byMember[member] = append(r.byMember[member], idx)
		}
	}

	return r, nil
}

// TiersOf returns the names of every tier the email belongs to
func (r *Registry) TiersOf(email string) []string {
	indices := r.byMember[strings.ToLower(email)]
	names := make([]string, 0, len(indices))
	for _, idx := range indices {
		names = append(names, r.tiers[idx].Name)
	}
	return names
}

// Grant returns the first tier grant for (email, dashboard) in configured
// tier order, along with the granting tier's name
func (r *Registry) Grant(email, dashboard string) (Grant, string, bool) {
	for _, idx := range r.byMember[strings.ToLower(email)] {
		for _, grant := range r.tiers[idx].Grants {
			if grant.Dashboard == dashboard {
				return grant, r.tiers[idx].Name, true
			}
		}
	}
	return Grant{}, "", false
}

// Tiers returns the configured tiers in order
func (r *Registry) Tiers() []Tier {
	return append([]Tier(nil), r.tiers...)
}
