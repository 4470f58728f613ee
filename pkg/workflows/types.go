package workflows

// Role names used by the workflow role tables
const (
	RoleSuperAdmin = "super_admin"
	RoleHR         = "hr"
	RoleFinance    = "finance"
	RoleAdmin      = "admin"
	RoleViewer     = "viewer"
)

// PositionRole is a configured per-person role for the position control
// workflow
type PositionRole struct {
	Role              string `json:"role"`
	CanApprove        bool   `json:"can_approve"`
	CanEditFinal      bool   `json:"can_edit_final"`
	CanCreatePosition bool   `json:"can_create_position"`
}

// PositionPermissions is a PositionRole expanded into the full capability
// set the position control screens consult
type PositionPermissions struct {
	Role              string `json:"role"`
	CanApprove        bool   `json:"can_approve"`
	CanEditFinal      bool   `json:"can_edit_final"`
	CanCreatePosition bool   `json:"can_create_position"`
	CanEditNotes      bool   `json:"can_edit_notes"`
	CanEditDates      bool   `json:"can_edit_dates"`
	CanArchive        bool   `json:"can_archive"`
	CanDelete         bool   `json:"can_delete"`
	IsViewer          bool   `json:"is_viewer"`
}

// OnboardingRole is a configured per-person role for the onboarding
// tracking workflow
type OnboardingRole struct {
	Role      string `json:"role"`
	CanEdit   bool   `json:"can_edit"`
	CanDelete bool   `json:"can_delete"`
}

// OnboardingPermissions is an OnboardingRole expanded into the capability
// set the onboarding screens consult
type OnboardingPermissions struct {
	Role       string `json:"role"`
	CanEdit    bool   `json:"can_edit"`
	CanDelete  bool   `json:"can_delete"`
	CanArchive bool   `json:"can_archive"`
	IsViewer   bool   `json:"is_viewer"`
}
