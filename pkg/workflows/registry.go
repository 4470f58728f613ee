package workflows

import "strings"

// Registry answers per-person workflow roles. Like the tier registry it is
// immutable once loaded; membership changes are deployment configuration.
type Registry struct {
	position   map[string]PositionRole
	onboarding map[string]OnboardingRole
}

// NewRegistry builds a Registry from configured role tables
func NewRegistry(position map[string]PositionRole, onboarding map[string]OnboardingRole) *Registry {
	r := &Registry{
		position:   make(map[string]PositionRole, len(position)),
		onboarding: make(map[string]OnboardingRole, len(onboarding)),
	}
	for email, role := range position {
		r.position[strings.ToLower(email)] = role
	}
	for email, role := range onboarding {
		r.onboarding[strings.ToLower(email)] = role
	}
	return r
}

// HasPositionAccess reports whether the email appears in the position
// control role table
func (r *Registry) HasPositionAccess(email string) bool {
	_, ok := r.position[strings.ToLower(email)]
	return ok
}

// PositionPermissions expands the configured position role into the full
// capability set. The derived capabilities encode the workflow's rules:
// only super_admin deletes, only super_admin and hr edit dates, viewers
// change nothing.
func (r *Registry) PositionPermissions(email string) (*PositionPermissions, bool) {
	role, ok := r.position[strings.ToLower(email)]
	if !ok {
		return nil, false
	}
	return &PositionPermissions{
		Role:              role.Role,
		CanApprove:        role.CanApprove,
		CanEditFinal:      role.CanEditFinal,
		CanCreatePosition: role.CanCreatePosition,
		CanEditNotes:      role.Role != RoleViewer,
		CanEditDates:      role.Role == RoleSuperAdmin || role.Role == RoleHR,
		CanArchive:        role.Role != RoleViewer,
		CanDelete:         role.Role == RoleSuperAdmin,
		IsViewer:          role.Role == RoleViewer,
	}, true
}

// HasOnboardingAccess reports whether the email appears in the onboarding
// role table
func (r *Registry) HasOnboardingAccess(email string) bool {
	_, ok := r.onboarding[strings.ToLower(email)]
	return ok
}

// OnboardingPermissions expands the configured onboarding role into the
// full capability set
func (r *Registry) OnboardingPermissions(email string) (*OnboardingPermissions, bool) {
	role, ok := r.onboarding[strings.ToLower(email)]
	if !ok {
		return nil, false
	}
	return &OnboardingPermissions{
		Role:       role.Role,
		CanEdit:    role.CanEdit,
		CanDelete:  role.CanDelete,
		CanArchive: role.Role != RoleViewer,
		IsViewer:   role.Role == RoleViewer,
	}, true
}
