package appointment

import "errors"

var (
	// ErrAppointmentNotFound is returned when the appointment does not exist.
	ErrAppointmentNotFound = errors.New("appointment.repository: appointment not found")

	// ErrInvalidStatusTransition is returned when a conditional status update
	// matched the id but not the required current status.
	ErrInvalidStatusTransition = errors.New("appointment.repository: status does not allow this transition")

	// ErrBuildQuery is returned when building the SQL query fails.
	ErrBuildQuery = errors.New("appointment.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails.
	ErrExecQuery = errors.New("appointment.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("appointment.repository: failed to scan row")
)
