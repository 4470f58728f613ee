package tiers

// ScopeTemplate describes the data scope a tier grant confers, resolved
// against the member's staff record by the caller
type ScopeTemplate string

const (
	// TemplateUnrestricted grants visibility over the whole network
	TemplateUnrestricted ScopeTemplate = "unrestricted"
	// TemplateOwnSchool grants visibility scoped to the member's location
	TemplateOwnSchool ScopeTemplate = "own_school"
)

// Grant is a dashboard capability conferred by tier membership
type Grant struct {
	Dashboard string        `json:"dashboard"`
	Scope     ScopeTemplate `json:"scope"`
}

// Tier is a deployment-configured membership list mapped to a fixed grant
// set. Tiers exist for access that does not map cleanly to a job title;
// changing membership is deliberately a configuration change.
type Tier struct {
	Name    string   `json:"name"`
	Members []string `json:"members"`
	Grants  []Grant  `json:"grants"`
}
