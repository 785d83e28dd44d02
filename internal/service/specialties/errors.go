package specialties

import "errors"

var (
	// ErrSpecialtyNotFound is returned when the specialty does not exist.
	ErrSpecialtyNotFound = errors.New("specialty not found")

	// ErrSpecialtyAlreadyExists is returned when the name is already taken.
	ErrSpecialtyAlreadyExists = errors.New("specialty already exists")

	// ErrInvalidInput is returned for malformed input data.
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal is returned for internal service errors.
	ErrInternal = errors.New("specialties service: internal error")
)
