package availability

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/agendamed/scheduling-service/internal/domain"
	"github.com/agendamed/scheduling-service/pkg/psqlbuilder"
	"github.com/agendamed/scheduling-service/pkg/txmanager"
)

const table = "availability_windows"

var columns = []string{
	"id",
	"doctor_id",
	"weekday",
	"start_time",
	"end_time",
	"active",
	"created_at",
	"updated_at",
}

// Repository persists weekly availability windows.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a window for a doctor.
func (r *Repository) Create(ctx context.Context, w *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("doctor_id", "weekday", "start_time", "end_time", "active").
		Values(w.DoctorID, int(w.Weekday), w.StartTime, w.EndTime, w.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&w.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time
	return w, nil
}

// ListByDoctor returns the doctor's windows ordered by weekday and start time.
func (r *Repository) ListByDoctor(ctx context.Context, doctorID int64, activeOnly bool) ([]*domain.AvailabilityWindow, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	sb := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"doctor_id": doctorID}).
		OrderBy("weekday ASC, start_time ASC, id ASC")
	if activeOnly {
		sb = sb.Where(squirrel.Eq{"active": true})
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	windows := make([]*domain.AvailabilityWindow, 0)
	for rows.Next() {
		w, err := scanWindow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByDoctor - scan row: %v", ErrScanRow, err)
		}
		windows = append(windows, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByDoctor - rows error: %v", ErrScanRow, err)
	}
	return windows, nil
}

// Deactivate marks a window inactive. Windows are never deleted so past
// appointments keep their context.
func (r *Repository) Deactivate(ctx context.Context, doctorID, windowID int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": windowID, "doctor_id": doctorID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Deactivate - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Deactivate - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrWindowNotFound
	}
	return nil
}

func scanWindow(scan func(dest ...interface{}) error) (*domain.AvailabilityWindow, error) {
	var w domain.AvailabilityWindow
	var weekday int
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&w.ID,
		&w.DoctorID,
		&weekday,
		&w.StartTime,
		&w.EndTime,
		&w.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	w.Weekday = time.Weekday(weekday)
	w.CreatedAt = createdAt.Time
	w.UpdatedAt = updatedAt.Time
	return &w, nil
}
