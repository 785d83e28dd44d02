package reschedule_appointment

import (
	"time"

	"github.com/agendamed/scheduling-service/internal/domain"
)

// Request carries the fields to move an appointment. DurationMinutes keeps
// the current duration when nil.
type Request struct {
	AppointmentID   int64
	NewStartsAt     time.Time
	DurationMinutes *int
	Reason          string
}

// Response is the rescheduled appointment.
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
