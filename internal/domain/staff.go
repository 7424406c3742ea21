package domain

import "time"

// StaffRole represents the role of a staff member.
type StaffRole string

const (
	RoleCleaner    StaffRole = "cleaner"
	RoleSupervisor StaffRole = "supervisor"
)

// Staff represents a staff member known to the staff service.
type Staff struct {
	ID        string
	Name      string
	Email     string
	Token     string
	Role      StaffRole
	IsActive  bool
	CreatedAt time.Time
}
