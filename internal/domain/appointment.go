package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusScheduled   AppointmentStatus = "scheduled"
	StatusConfirmed   AppointmentStatus = "confirmed"
	StatusRescheduled AppointmentStatus = "rescheduled"
	StatusCancelled   AppointmentStatus = "cancelled"
)

// ActiveStatuses are the statuses that occupy a doctor's time and therefore
// participate in conflict detection.
var ActiveStatuses = []AppointmentStatus{
	StatusScheduled,
	StatusConfirmed,
	StatusRescheduled,
}

// transitions is the full status machine. cancelled is terminal.
var transitions = map[AppointmentStatus][]AppointmentStatus{
	StatusScheduled:   {StatusConfirmed, StatusRescheduled, StatusCancelled},
	StatusConfirmed:   {StatusRescheduled, StatusCancelled},
	StatusRescheduled: {StatusConfirmed, StatusRescheduled, StatusCancelled},
	StatusCancelled:   {},
}

// IsValid reports whether s is one of the known statuses.
func (s AppointmentStatus) IsValid() bool {
	_, ok := transitions[s]
	return ok
}

// CanTransitionTo reports whether the status machine allows moving from s to
// target.
func (s AppointmentStatus) CanTransitionTo(target AppointmentStatus) bool {
	for _, t := range transitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

// Appointment represents a booked consultation.
type Appointment struct {
	ID              int64
	PatientID       int64
	DoctorID        int64
	StartsAt        time.Time
	DurationMinutes int
	Status          AppointmentStatus

	Notes              *string
	CancellationReason *string

	ConfirmedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// EndsAt returns the exclusive end of the appointment interval.
func (a *Appointment) EndsAt() time.Time {
	return a.StartsAt.Add(time.Duration(a.DurationMinutes) * time.Minute)
}

// IsActive reports whether the appointment occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled
}

// IsCancelled reports whether the appointment has been cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.Status == StatusCancelled
}

// CanBeConfirmed reports whether the confirm transition is allowed.
func (a *Appointment) CanBeConfirmed() bool {
	return a.Status.CanTransitionTo(StatusConfirmed)
}

// CanBeRescheduled reports whether the reschedule transition is allowed.
func (a *Appointment) CanBeRescheduled() bool {
	return a.Status.CanTransitionTo(StatusRescheduled)
}

// AppointmentsFilter narrows appointment listings.
type AppointmentsFilter struct {
	DoctorID  *int64
	PatientID *int64
	Status    *AppointmentStatus
	From      *time.Time // inclusive lower bound on StartsAt
	To        *time.Time // exclusive upper bound on StartsAt
	Limit     int        // 0 = no limit
	Offset    int

	// OnlyActive restricts the listing to statuses that occupy the doctor's
	// time. Set by the booking usecases when loading the conflict set.
	OnlyActive bool

	// LockForBooking asks the storage layer to lock the listed rows for the
	// duration of the surrounding transaction. Only the booking usecases set
	// it; read paths must leave it off, a read-only transaction cannot hold
	// row locks.
	LockForBooking bool
}
