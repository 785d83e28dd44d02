package doctors

import "errors"

var (
	// ErrDoctorNotFound is returned when the doctor does not exist.
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrDoctorAlreadyExists is returned when the CRM is already registered.
	ErrDoctorAlreadyExists = errors.New("doctor already exists")

	// ErrSpecialtyNotFound is returned when the referenced specialty does not exist.
	ErrSpecialtyNotFound = errors.New("specialty not found")

	// ErrWindowNotFound is returned when the availability window does not exist.
	ErrWindowNotFound = errors.New("availability window not found")

	// ErrInvalidInput is returned for malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service errors.
	ErrInternal = errors.New("doctors service: internal error")
)
