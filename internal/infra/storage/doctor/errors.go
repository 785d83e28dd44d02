package doctor

import "errors"

var (
	// ErrDoctorNotFound is returned when the doctor does not exist.
	ErrDoctorNotFound = errors.New("doctor.repository: doctor not found")

	// ErrDoctorAlreadyExists is returned when the CRM is already registered.
	ErrDoctorAlreadyExists = errors.New("doctor.repository: doctor already exists")

	// ErrBuildQuery is returned when building the SQL query fails.
	ErrBuildQuery = errors.New("doctor.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails.
	ErrExecQuery = errors.New("doctor.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("doctor.repository: failed to scan row")
)
