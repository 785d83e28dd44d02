package create_appointment

import "errors"

var (
	// ErrPatientNotFound is returned when the patient does not exist.
	ErrPatientNotFound = errors.New("create_appointment: patient not found")

	// ErrDoctorNotFound is returned when the doctor does not exist.
	ErrDoctorNotFound = errors.New("create_appointment: doctor not found")

	// ErrDoctorInactive is returned when the doctor is not taking appointments.
	ErrDoctorInactive = errors.New("create_appointment: doctor is inactive")

	// ErrOutsideBookingWindow is returned when the start violates the
	// advance-booking bounds.
	ErrOutsideBookingWindow = errors.New("create_appointment: start is outside the booking window")

	// ErrNoAvailabilityWindow is returned when no active window covers the slot.
	ErrNoAvailabilityWindow = errors.New("create_appointment: doctor has no availability at this time")

	// ErrSlotConflict is returned when the slot overlaps an active appointment.
	ErrSlotConflict = errors.New("create_appointment: slot conflicts with an existing appointment")

	// ErrInvalidInput is returned for malformed input data.
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInternal is returned for internal usecase errors.
	ErrInternal = errors.New("create_appointment: internal error")
)
