package get_open_slots

import "errors"

var (
	// ErrDoctorNotFound is returned when the requested doctor does not exist.
	ErrDoctorNotFound = errors.New("get_open_slots: doctor not found")

	// ErrInvalidInput is returned for malformed input data.
	ErrInvalidInput = errors.New("get_open_slots: invalid input data")

	// ErrInternal is returned for internal usecase errors.
	ErrInternal = errors.New("get_open_slots: internal error")
)
