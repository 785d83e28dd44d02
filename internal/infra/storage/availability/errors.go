package availability

import "errors"

var (
	// ErrWindowNotFound is returned when the availability window does not exist.
	ErrWindowNotFound = errors.New("availability.repository: window not found")

	// ErrBuildQuery is returned when building the SQL query fails.
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery is returned when executing the SQL query fails.
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow is returned when scanning a result row fails.
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
