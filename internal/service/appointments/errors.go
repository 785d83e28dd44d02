package appointments

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointment not found")

	// ErrAlreadyCancelled is returned when cancelling an appointment that is
	// already cancelled.
	ErrAlreadyCancelled = errors.New("appointment already cancelled")

	// ErrInvalidStateForConfirm is returned when confirming an appointment
	// whose status does not allow it.
	ErrInvalidStateForConfirm = errors.New("appointment cannot be confirmed in its current state")

	// ErrInvalidInput is returned for malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service errors.
	ErrInternal = errors.New("appointments service: internal error")
)
