package directory

import "context"

// EmploymentStatus is the staff directory's employment state for a record
type EmploymentStatus string

const (
	StatusActive         EmploymentStatus = "Active"
	StatusLeaveOfAbsence EmploymentStatus = "Leave of absence"
	StatusTerminated     EmploymentStatus = "Terminated"
)

// Working reports whether the status still counts as employed for access
// purposes. Leave of absence retains dashboard visibility; terminated and
// unknown statuses do not.
func (s EmploymentStatus) Working() bool {
	return s == StatusActive || s == StatusLeaveOfAbsence
}

// StaffRecord is a single row of the staff master list, keyed by canonical email
type StaffRecord struct {
	Email           string
	DisplayName     string
	JobTitle        string
	Location        string
	Status          EmploymentStatus
	SupervisorEmail string
	EmployeeNumber  string
}

// Source represents a source of staff directory data
type Source interface {
	// LoadStaff loads the staff record for a canonical email.
	// Returns ErrStaffNotFound when no record exists.
	LoadStaff(ctx context.Context, email string) (*StaffRecord, error)
}
