package specialty

import "errors"

var (
	// ErrSpecialtyNotFound is returned when the specialty does not exist.
	ErrSpecialtyNotFound = errors.New("specialty.repository: specialty not found")

	// ErrSpecialtyAlreadyExists is returned when the name is already taken.
	ErrSpecialtyAlreadyExists = errors.New("specialty.repository: specialty already exists")

	// ErrBuildQuery is returned when building the SQL query fails.
	ErrBuildQuery = errors.New("specialty.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails.
	ErrExecQuery = errors.New("specialty.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("specialty.repository: failed to scan row")
)
