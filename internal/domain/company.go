package domain

import "time"

// Company is the tenant/organization a client belongs to.
type Company struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
