package reschedule_appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist.
	ErrAppointmentNotFound = errors.New("reschedule_appointment: appointment not found")

	// ErrAlreadyCancelled is returned when rescheduling a cancelled appointment.
	ErrAlreadyCancelled = errors.New("reschedule_appointment: appointment is cancelled")

	// ErrDoctorInactive is returned when the doctor is not taking appointments.
	ErrDoctorInactive = errors.New("reschedule_appointment: doctor is inactive")

	// ErrOutsideBookingWindow is returned when the new start violates the
	// advance-booking bounds.
	ErrOutsideBookingWindow = errors.New("reschedule_appointment: start is outside the booking window")

	// ErrNoAvailabilityWindow is returned when no active window covers the slot.
	ErrNoAvailabilityWindow = errors.New("reschedule_appointment: doctor has no availability at this time")

	// ErrSlotConflict is returned when the slot overlaps another active appointment.
	ErrSlotConflict = errors.New("reschedule_appointment: slot conflicts with an existing appointment")

	// ErrInvalidInput is returned for malformed input data.
	ErrInvalidInput = errors.New("reschedule_appointment: invalid input data")

	// ErrInternal is returned for internal usecase errors.
	ErrInternal = errors.New("reschedule_appointment: internal error")
)
