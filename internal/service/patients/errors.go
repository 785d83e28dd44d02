package patients

import "errors"

var (
	// ErrPatientNotFound is returned when the patient does not exist.
	ErrPatientNotFound = errors.New("patient not found")

	// ErrPatientAlreadyExists is returned when the phone or CPF is already registered.
	ErrPatientAlreadyExists = errors.New("patient already exists")

	// ErrInvalidInput is returned for malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service errors.
	ErrInternal = errors.New("patients service: internal error")
)
