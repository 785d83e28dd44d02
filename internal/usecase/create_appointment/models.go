package create_appointment

import (
	"time"

	"github.com/agendamed/scheduling-service/internal/domain"
)

// Request carries the fields to book an appointment. DurationMinutes falls
// back to the configured default consultation length when nil.
type Request struct {
	PatientID       int64
	DoctorID        int64
	StartsAt        time.Time
	DurationMinutes *int
	Notes           *string
}

// Response is the booked appointment.
type Response struct {
	ID              int64
	PatientID       int64
	DoctorID        int64
	StartsAt        time.Time
	EndsAt          time.Time
	DurationMinutes int
	Status          string
	Notes           *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func fromDomain(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		PatientID:       a.PatientID,
		DoctorID:        a.DoctorID,
		StartsAt:        a.StartsAt,
		EndsAt:          a.EndsAt(),
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}
