package domain

import "time"

// Doctor represents a physician. Inactive doctors keep their history but are
// rejected for new bookings.
type Doctor struct {
	ID          int64
	Name        string
	CRM         string // medical license number, unique
	Phone       *string
	Email       *string
	SpecialtyID int64
	Active      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DoctorsFilter narrows doctor listings.
type DoctorsFilter struct {
	SpecialtyID *int64
	Active      *bool
	Limit       int
	Offset      int
}
