package get_open_slots

import "time"

// Request selects the doctors and the date range to search. Exactly one of
// DoctorID and SpecialtyID must be set. From defaults to now, To to
// now + 30 days.
type Request struct {
	DoctorID    *int64
	SpecialtyID *int64
	From        *time.Time
	To          *time.Time
}

// Slot is one bookable interval.
type Slot struct {
	Start           time.Time
	DurationMinutes int
}

// DoctorSlots groups the open slots of one doctor.
type DoctorSlots struct {
	DoctorID   int64
	DoctorName string
	Slots      []Slot
}

// Response lists open slots per doctor, doctors ordered by name.
type Response struct {
	From    time.Time
	To      time.Time
	Doctors []DoctorSlots
}
