package model

import "strings"

const (
	RoleOrganizer = "ORGANIZER"
	RoleStaff     = "STAFF"
	RoleVolunteer = "VOLUNTEER"
	RoleSecurity  = "SECURITY"
)

// Scope identifies the authenticated caller of an operation.
// A session is bound to exactly one role at a time.
type Scope struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// IsOrganizer checks if the scope has the organizer role.
func (s Scope) IsOrganizer() bool {
	return strings.EqualFold(s.Role, RoleOrganizer)
}
