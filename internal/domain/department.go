package domain

import "time"

// Department represents a high-level organizational unit tickets route to.
type Department struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// Category is a triage label scoped to a department; names are unique per
// department, not globally.
type Category struct {
	ID           int64
	DepartmentID int64
	Name         string
	CreatedAt    time.Time
}
