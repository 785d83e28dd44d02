package domain

import "time"

// Specialty is a medical specialty referenced by doctors.
type Specialty struct {
	ID          int64
	Name        string
	Description *string
	Active      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}
