package domain

import "time"

// StaffStatus marks whether a staff member may be assigned tickets.
type StaffStatus string

const (
	StaffActive   StaffStatus = "active"
	StaffInactive StaffStatus = "inactive"
)

// Staff is an internal agent tickets can be assigned to.
type Staff struct {
	ID        int64
	Name      string
	Email     string
	Status    StaffStatus
	CreatedAt time.Time
}
