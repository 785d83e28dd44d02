package domain

import "time"

// Patient represents a patient record. Phone and CPF are unique across
// patients; the chat platform identifies subscribers by phone number.
type Patient struct {
	ID        int64
	Name      string
	Phone     string
	Email     *string
	CPF       *string
	BirthDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}
