package titles

import "strings"

// Classifier maps free-text job titles to role grants. Matching is
// case-insensitive; a title may satisfy several rules at once and receives
// the union of their grants, never just the first match. A title matching
// nothing yields an empty set, which is not an error.
type Classifier struct {
	rules []Rule
}

// NewClassifier creates a Classifier over the given rules. The rule set is
// immutable; reloading configuration builds a new Classifier.
func NewClassifier(rules []Rule) *Classifier {
	return &Classifier{rules: append([]Rule(nil), rules...)}
}

// RolesOf returns every role grant whose rule matches the job title
func (c *Classifier) RolesOf(jobTitle string) []RoleGrant {
	title := strings.ToLower(strings.TrimSpace(jobTitle))
	if title == "" {
		return nil
	}

	var grants []RoleGrant
	for _, rule := range c.rules {
		if rule.matches(title) {
			grants = append(grants, RoleGrant{
				Dashboard: rule.Dashboard,
				Scope:     rule.Scope,
				Label:     rule.Label,
			})
		}
	}
	return grants
}

// RolesForDashboard returns the grants from RolesOf that target dashboard
func (c *Classifier) RolesForDashboard(jobTitle, dashboard string) []RoleGrant {
	var grants []RoleGrant
	for _, grant := range c.RolesOf(jobTitle) {
		if grant.Dashboard == dashboard {
			grants = append(grants, grant)
		}
	}
	return grants
}

func (r Rule) matches(lowerTitle string) bool {
	pattern := strings.ToLower(r.Pattern)
	switch r.Match {
	case MatchExact:
		return lowerTitle == pattern
	default:
		return strings.Contains(lowerTitle, pattern)
	}
}
