package authorization

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brightline/portald/pkg/acl"
	"github.com/brightline/portald/pkg/directory"
	"github.com/brightline/portald/pkg/hierarchy"
	"github.com/brightline/portald/pkg/identity"
	"github.com/brightline/portald/pkg/logging"
	"github.com/brightline/portald/pkg/tiers"
	"github.com/brightline/portald/pkg/titles"
	"github.com/brightline/portald/pkg/workflows"
)

// ErrUnknownDashboard is returned when a requested dashboard name is not in
// the compile-time dashboard set
var ErrUnknownDashboard = errors.New("unknown dashboard")

// Config holds the collaborators and site data for creating a Resolver
type Config struct {
	Identity  *identity.Resolver
	Directory *directory.Repository
	Hierarchy *hierarchy.Index
	Tiers     *tiers.Registry
	Titles    *titles.Classifier
	ACL       *acl.Store
	Workflows *workflows.Registry

	// SchoolsByLocation maps a staff record's location to a school code
	// (e.g. "Langston Hughes Academy" → "LHA"). Locations absent from the
	// map contribute no school scope.
	SchoolsByLocation map[string]string
}

// Resolver is the access resolution engine: an ordered decision procedure
// evaluated fresh for every (identity, dashboard) pair.
//
// Precedence: directory veto, then named tiers, then title rules, then the
// org hierarchy for team-scoped dashboards, then the explicit ACL table.
// Tiers are the curated override path and always win; titles beat the
// automatic supervisor grant; the ACL is consulted only when every
// structural path came up empty. Hybrid dashboards instead union what the
// title, hierarchy and ACL paths each contribute. The workflow dashboards
// sit outside the chain: their configured role tables are the sole grant
// path, so tiers, titles and the ACL carry no authority over them.
type Resolver struct {
	identity  *identity.Resolver
	directory *directory.Repository
	hierarchy *hierarchy.Index
	tiers     *tiers.Registry
	titles    *titles.Classifier
	acl       *acl.Store
	workflows *workflows.Registry
	schools   map[string]string
}

// NewResolver creates a new Resolver
func NewResolver(config Config) (*Resolver, error) {
	if config.Directory == nil {
		return nil, fmt.Errorf("directory repository is required")
	}
	if config.Tiers == nil || config.Titles == nil {
		return nil, fmt.Errorf("tier registry and title classifier are required")
	}
	return &Resolver{
		identity:  config.Identity,
		directory: config.Directory,
		hierarchy: config.Hierarchy,
		tiers:     config.Tiers,
		titles:    config.Titles,
		acl:       config.ACL,
		workflows: config.Workflows,
		schools:   config.SchoolsByLocation,
	}, nil
}

// Identity exposes the identity resolver for callers that need canonical
// addresses outside of dashboard resolution
func (r *Resolver) Identity() *identity.Resolver {
	return r.identity
}

// ResolveAddress resolves a raw authenticated address through the identity
// resolver and then resolves access to the named dashboard. Identity errors
// (malformed address, foreign domain) pass through unchanged.
func (r *Resolver) ResolveAddress(ctx context.Context, rawEmail, dashboardName string) (AccessGrant, error) {
	dashboard, ok := DashboardByName(dashboardName)
	if !ok {
		return AccessGrant{}, fmt.Errorf("%w: %q", ErrUnknownDashboard, dashboardName)
	}

	email := rawEmail
	if r.identity != nil {
		var err error
		email, err = r.identity.Resolve(rawEmail)
		if err != nil {
			return denied(dashboard), err
		}
	}

	return r.Resolve(ctx, email, dashboard)
}

// Resolve computes the access grant for a canonical email and dashboard.
// The only returned errors are directory unavailability (retryable) and
// ErrUnknownDashboard; every policy outcome, including "no record" and
// "terminated", is a well-formed denied grant.
func (r *Resolver) Resolve(ctx context.Context, email string, dashboard Dashboard) (AccessGrant, error) {
	email = strings.ToLower(email)

	staff, err := r.directory.GetStaff(ctx, email)
	if errors.Is(err, directory.ErrStaffNotFound) {
		// Usually provisioning lag: the account exists, its staff row doesn't yet
		logging.App.Infow("no staff record for authenticated user", "email", email)
		logging.Access.LogDecision(dashboard.Name, email, "denied", "reason", "no_staff_record")
		return denied(dashboard), nil
	}
	if err != nil {
		return denied(dashboard), err
	}

	// The one hard veto: no tier, title, hierarchy or ACL state overrides it
	if !staff.Status.Working() {
		logging.Access.LogDecision(dashboard.Name, email, "denied", "reason", "employment_status", "status", string(staff.Status))
		return denied(dashboard), nil
	}

	if dashboard.ScopeKind == ScopeKindNone {
		grant := r.resolveWorkflow(email, dashboard)
		status := "denied"
		if grant.Granted {
			status = "granted"
		}
		logging.Access.LogDecision(dashboard.Name, email, status, "source", string(grant.Source), "label", grant.Label)
		return grant, nil
	}

	if grant, ok := r.resolveTier(email, staff, dashboard); ok {
		logging.Access.LogDecision(dashboard.Name, email, "granted", "source", string(grant.Source), "label", grant.Label)
		return grant, nil
	}

	var grant AccessGrant
	if dashboard.Hybrid {
		grant = r.resolveHybrid(ctx, email, staff, dashboard)
	} else {
		grant = r.resolveChain(ctx, email, staff, dashboard)
	}

	status := "denied"
	if grant.Granted {
		status = "granted"
	}
	logging.Access.LogDecision(dashboard.Name, email, status, "source", string(grant.Source), "degraded", grant.Degraded)
	return grant, nil
}

// resolveWorkflow answers the workflow dashboards from their configured role
// tables. A person is either in the table or denied; the detailed capability
// set is served by the workflow endpoints themselves.
func (r *Resolver) resolveWorkflow(email string, dashboard Dashboard) AccessGrant {
	if r.workflows == nil {
		return denied(dashboard)
	}

	var role string
	found := false
	switch dashboard.Name {
	case PositionControl.Name:
		if perms, ok := r.workflows.PositionPermissions(email); ok {
			role, found = perms.Role, true
		}
	case Onboarding.Name:
		if perms, ok := r.workflows.OnboardingPermissions(email); ok {
			role, found = perms.Role, true
		}
	}
	if !found {
		return denied(dashboard)
	}

	return AccessGrant{
		Dashboard: dashboard,
		Granted:   true,
		Source:    SourceWorkflowRole,
		Label:     role,
	}
}

// resolveTier evaluates the named tier registry
func (r *Resolver) resolveTier(email string, staff *directory.StaffRecord, dashboard Dashboard) (AccessGrant, bool) {
	tierGrant, tierName, ok := r.tiers.Grant(email, dashboard.Name)
	if !ok {
		return AccessGrant{}, false
	}

	scope, ok := r.tierScope(tierGrant.Scope, staff)
	if !ok {
		// Unmapped school or unrecognized scope template; fall through to
		// the structural paths rather than guessing a wider scope
		logging.App.Warnw("tier grant scope did not resolve",
			"email", email, "tier", tierName, "scope", string(tierGrant.Scope), "location", staff.Location)
		return AccessGrant{}, false
	}

	return AccessGrant{
		Dashboard: dashboard,
		Granted:   true,
		Scope:     scope,
		Source:    SourceNamedTier,
		Label:     tierName,
	}, true
}

// resolveChain is the strict precedence chain: titles, then hierarchy (for
// team-scoped dashboards), then the ACL; first grant wins
func (r *Resolver) resolveChain(ctx context.Context, email string, staff *directory.StaffRecord, dashboard Dashboard) AccessGrant {
	if scope, label, ok := r.titleScope(staff, dashboard); ok {
		return AccessGrant{
			Dashboard: dashboard,
			Granted:   true,
			Scope:     scope,
			Source:    SourceTitleRole,
			Label:     label,
		}
	}

	degraded := false
	if dashboard.ScopeKind == ScopeKindOwnTeam {
		team, ok := r.teamScope(ctx, email)
		if !ok {
			degraded = true
		} else if len(team) > 1 { // more than just self
			grant := AccessGrant{
				Dashboard: dashboard,
				Granted:   true,
				Source:    SourceOrgHierarchy,
				Label:     fmt.Sprintf("Supervisor (%d staff)", len(team)-1),
			}
			grant.Scope.addStaff(team)
			return grant
		}
	}

	if r.acl != nil {
		grants, aclDegraded := r.acl.GrantsForDashboard(ctx, email, dashboard.Name)
		degraded = degraded || aclDegraded
		if len(grants) > 0 {
			grant := AccessGrant{
				Dashboard: dashboard,
				Granted:   true,
				Source:    SourceACL,
				Label:     "ACL",
				Degraded:  degraded,
			}
			for _, g := range grants {
				if g.School != "" {
					grant.Scope.addSchool(g.School)
				} else {
					grant.Scope.Unrestricted = true
				}
			}
			return grant
		}
	}

	out := denied(dashboard)
	out.Degraded = degraded
	return out
}

// resolveHybrid unions the scopes contributed by titles, hierarchy and ACL.
// The reported source is the highest-precedence path that contributed.
// Composition is a product decision carried over from the source system's
// observed behavior for the school behavioral dashboard.
func (r *Resolver) resolveHybrid(ctx context.Context, email string, staff *directory.StaffRecord, dashboard Dashboard) AccessGrant {
	grant := denied(dashboard)
	var labels []string

	if scope, label, ok := r.titleScope(staff, dashboard); ok {
		grant.Granted = true
		grant.Source = SourceTitleRole
		grant.Scope.Unrestricted = grant.Scope.Unrestricted || scope.Unrestricted
		for _, school := range scope.Schools {
			grant.Scope.addSchool(school)
		}
		labels = append(labels, label)
	}

	if team, ok := r.teamScope(ctx, email); !ok {
		grant.Degraded = true
	} else if len(team) > 1 {
		grant.Granted = true
		if grant.Source == SourceNone {
			grant.Source = SourceOrgHierarchy
		}
		grant.Scope.addStaff(team)
		labels = append(labels, fmt.Sprintf("Supervisor (%d staff)", len(team)-1))
	}

	if r.acl != nil {
		grants, aclDegraded := r.acl.GrantsForDashboard(ctx, email, dashboard.Name)
		grant.Degraded = grant.Degraded || aclDegraded
		if len(grants) > 0 {
			grant.Granted = true
			if grant.Source == SourceNone {
				grant.Source = SourceACL
			}
			for _, g := range grants {
				if g.School != "" {
					grant.Scope.addSchool(g.School)
				} else {
					grant.Scope.Unrestricted = true
				}
			}
			labels = append(labels, "ACL")
		}
	}

	grant.Label = strings.Join(labels, " | ")
	return grant
}

// titleScope evaluates the title classifier for a dashboard, folding the
// union of matching rules into a single scope
func (r *Resolver) titleScope(staff *directory.StaffRecord, dashboard Dashboard) (Scope, string, bool) {
	roleGrants := r.titles.RolesForDashboard(staff.JobTitle, dashboard.Name)
	if len(roleGrants) == 0 {
		return Scope{}, "", false
	}

	var scope Scope
	var label string
	matched := false
	for _, role := range roleGrants {
		switch role.Scope {
		case titles.TemplateUnrestricted:
			scope.Unrestricted = true
			matched = true
		case titles.TemplateOwnSchool:
			code, ok := r.schools[staff.Location]
			if !ok {
				logging.App.Warnw("school-scoped title grant with unmapped location",
					"email", staff.Email, "location", staff.Location, "dashboard", dashboard.Name)
				continue
			}
			scope.addSchool(code)
			matched = true
		}
		if label == "" {
			if role.Label != "" {
				label = role.Label
			} else {
				label = staff.JobTitle
			}
		}
	}
	if !matched {
		return Scope{}, "", false
	}
	return scope, label, true
}

// teamScope returns downline ∪ {self}, or ok=false on hierarchy failure
func (r *Resolver) teamScope(ctx context.Context, email string) (map[string]struct{}, bool) {
	if r.hierarchy == nil {
		return map[string]struct{}{email: {}}, true
	}
	downline, err := r.hierarchy.Downline(ctx, email)
	if err != nil {
		logging.App.Warnw("org hierarchy unavailable, skipping supervisor grant", "email", email, "error", err)
		return nil, false
	}
	downline[email] = struct{}{}
	return downline, true
}

// tierScope resolves a tier grant's scope template against the staff record.
// Only the known templates resolve; anything else fails closed.
func (r *Resolver) tierScope(template tiers.ScopeTemplate, staff *directory.StaffRecord) (Scope, bool) {
	switch template {
	case tiers.TemplateUnrestricted:
		return Scope{Unrestricted: true}, true
	case tiers.TemplateOwnSchool:
		code, ok := r.schools[staff.Location]
		if !ok {
			return Scope{}, false
		}
		return Scope{Schools: []string{code}}, true
	default:
		return Scope{}, false
	}
}
