package authorization

import "sort"

// ScopeKind declares what data-visibility restriction a dashboard supports
type ScopeKind string

const (
	// ScopeKindNone means the dashboard has no row-level scoping
	ScopeKindNone ScopeKind = "none"
	// ScopeKindOwnTeam scopes rows to the viewer's downline
	ScopeKindOwnTeam ScopeKind = "own_team"
	// ScopeKindOwnSchool scopes rows to a school site
	ScopeKindOwnSchool ScopeKind = "own_school"
	// ScopeKindAll means granted viewers see the whole network
	ScopeKindAll ScopeKind = "all"
)

// Dashboard is a named capability target. The set is fixed at compile time;
// dashboards are not created at runtime.
type Dashboard struct {
	Name      string
	ScopeKind ScopeKind
	// Hybrid dashboards union scopes contributed by titles, hierarchy and
	// ACL instead of stopping at the first matching source
	Hybrid bool
}

// The portal's dashboards
var (
	// Compensation is the salary projection dashboard. Strictly title-gated:
	// named tiers deliberately do not bypass it.
	Compensation = Dashboard{Name: "compensation", ScopeKind: ScopeKindAll}
	// AcademicsNetwork is the network-wide academic performance dashboard
	AcademicsNetwork = Dashboard{Name: "academics-network", ScopeKind: ScopeKindAll}
	// BehavioralSchool is the per-school behavior interaction dashboard
	BehavioralSchool = Dashboard{Name: "behavioral-school", ScopeKind: ScopeKindOwnSchool, Hybrid: true}
	// Suspensions is the in/out-of-school suspension rate dashboard
	Suspensions = Dashboard{Name: "suspensions", ScopeKind: ScopeKindOwnSchool}
	// Team is the supervisor-facing staff dashboard
	Team = Dashboard{Name: "team", ScopeKind: ScopeKindOwnTeam}
	// PositionControl is the position request workflow
	PositionControl = Dashboard{Name: "position-control", ScopeKind: ScopeKindNone}
	// Onboarding is the onboarding tracking workflow
	Onboarding = Dashboard{Name: "onboarding", ScopeKind: ScopeKindNone}
)

var dashboards = []Dashboard{
	Compensation,
	AcademicsNetwork,
	BehavioralSchool,
	Suspensions,
	Team,
	PositionControl,
	Onboarding,
}

// Dashboards returns the full dashboard set
func Dashboards() []Dashboard {
	return append([]Dashboard(nil), dashboards...)
}

// DashboardByName looks up a dashboard by its wire name
func DashboardByName(name string) (Dashboard, bool) {
	for _, d := range dashboards {
		if d.Name == name {
			return d, true
		}
	}
	return Dashboard{}, false
}

// GrantSource identifies which resolution path produced a grant
type GrantSource string

const (
	SourceNone         GrantSource = "none"
	SourceNamedTier    GrantSource = "named_tier"
	SourceTitleRole    GrantSource = "title_role"
	SourceOrgHierarchy GrantSource = "org_hierarchy"
	SourceACL          GrantSource = "acl"
	SourceWorkflowRole GrantSource = "workflow_role"
)

// Scope is the data-visibility restriction attached to a grant: everything,
// a set of school codes, a set of staff emails, or a union of the latter two
type Scope struct {
	Unrestricted bool
	Schools      []string
	StaffIDs     []string
}

// Empty reports whether the scope restricts down to nothing
func (s Scope) Empty() bool {
	return !s.Unrestricted && len(s.Schools) == 0 && len(s.StaffIDs) == 0
}

func (s *Scope) addSchool(code string) {
	for _, existing := range s.Schools {
		if existing == code {
			return
		}
	}
	s.Schools = append(s.Schools, code)
	sort.Strings(s.Schools)
}

func (s *Scope) addStaff(ids map[string]struct{}) {
	seen := make(map[string]struct{}, len(s.StaffIDs)+len(ids))
	for _, id := range s.StaffIDs {
		seen[id] = struct{}{}
	}
	for id := range ids {
		seen[id] = struct{}{}
	}
	s.StaffIDs = s.StaffIDs[:0]
	for id := range seen {
		s.StaffIDs = append(s.StaffIDs, id)
	}
	sort.Strings(s.StaffIDs)
}

// AccessGrant is the outcome of resolving one (identity, dashboard) pair.
// Grants are computed fresh per request and never persisted.
type AccessGrant struct {
	Dashboard Dashboard
	Granted   bool
	Scope     Scope
	Source    GrantSource
	// Label is a short human-readable description of why access was granted
	Label string
	// Degraded is set when a soft-failing source (the ACL table) was
	// unreachable; the grant reflects the remaining sources
	Degraded bool
}

func denied(d Dashboard) AccessGrant {
	return AccessGrant{Dashboard: d, Source: SourceNone}
}
