package titles

// ScopeTemplate describes the data scope a title rule confers. Templates are
// resolved against the staff record by the caller (own_school → location).
type ScopeTemplate string

const (
	TemplateUnrestricted ScopeTemplate = "unrestricted"
	TemplateOwnSchool    ScopeTemplate = "own_school"
)

// MatchKind selects how a rule's pattern is applied to a job title
type MatchKind string

const (
	// MatchFragment is a case-insensitive substring match
	MatchFragment MatchKind = "fragment"
	// MatchExact is a case-insensitive whole-title match
	MatchExact MatchKind = "exact"
)

// Rule maps a job-title pattern to a dashboard grant
type Rule struct {
	Pattern   string        `json:"pattern"`
	Match     MatchKind     `json:"match"`
	Dashboard string        `json:"dashboard"`
	Scope     ScopeTemplate `json:"scope"`
	// Label is a human-readable name for the role, shown in the portal
	Label string `json:"label,omitempty"`
}

// RoleGrant is a dashboard capability derived from a job title
type RoleGrant struct {
	Dashboard string
	Scope     ScopeTemplate
	Label     string
}
