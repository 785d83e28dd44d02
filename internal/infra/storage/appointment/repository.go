package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/agendamed/scheduling-service/internal/domain"
	"github.com/agendamed/scheduling-service/pkg/psqlbuilder"
	"github.com/agendamed/scheduling-service/pkg/txmanager"
)

const table = "appointments"

var columns = []string{
	"id",
	"patient_id",
	"doctor_id",
	"starts_at",
	"duration_minutes",
	"status",
	"notes",
	"cancellation_reason",
	"confirmed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository persists appointments.
type Repository struct {
	db DBExecutor
}

// NewRepository creates an appointment repository.
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a new appointment. When the context carries a managed
// transaction the insert joins it, which is how the booking usecase makes the
// conflict check and the write atomic.
func (r *Repository) Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"patient_id",
			"doctor_id",
			"starts_at",
			"duration_minutes",
			"status",
			"notes",
		).
		Values(
			a.PatientID,
			a.DoctorID,
			a.StartsAt,
			a.DurationMinutes,
			a.Status,
			a.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&a.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	return a, nil
}

// GetByID fetches one appointment.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	a, err := scanAppointment(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}
	return a, nil
}

// List returns appointments matching the filter ordered by start time
// ascending. When the filter asks to lock for booking and the context carries
// a managed transaction, FOR UPDATE is added so the doctor's rows stay locked
// for the duration of the booking transaction. The slot listing runs in a
// READ ONLY transaction and must not request the lock.
func (r *Repository) List(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	sb := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("starts_at ASC, id ASC")

	if filter.DoctorID != nil {
		sb = sb.Where(squirrel.Eq{"doctor_id": *filter.DoctorID})
	}
	if filter.PatientID != nil {
		sb = sb.Where(squirrel.Eq{"patient_id": *filter.PatientID})
	}
	if filter.Status != nil {
		sb = sb.Where(squirrel.Eq{"status": *filter.Status})
	} else if filter.OnlyActive {
		active := make([]string, len(domain.ActiveStatuses))
		for i, s := range domain.ActiveStatuses {
			active[i] = string(s)
		}
		sb = sb.Where(squirrel.Eq{"status": active})
	}
	if filter.From != nil {
		sb = sb.Where(squirrel.GtOrEq{"starts_at": *filter.From})
	}
	if filter.To != nil {
		sb = sb.Where(squirrel.Lt{"starts_at": *filter.To})
	}
	if filter.Limit > 0 {
		sb = sb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		sb = sb.Offset(uint64(filter.Offset))
	}

	if filter.LockForBooking && txmanager.IsInTransaction(ctx) {
		sb = sb.Suffix("FOR UPDATE")
	}

	query, args, err := sb.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// UpdateNotes replaces the free-form notes of an appointment.
func (r *Repository) UpdateNotes(ctx context.Context, id int64, notes *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateNotes - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateNotes", query, args, ErrAppointmentNotFound)
}

// Reschedule moves an appointment to a new start and duration, marks it
// rescheduled and stores the audit note built by the caller.
func (r *Repository) Reschedule(ctx context.Context, id int64, newStart time.Time, durationMinutes int, notes *string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("starts_at", newStart).
		Set("duration_minutes", durationMinutes).
		Set("status", domain.StatusRescheduled).
		Set("notes", notes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Reschedule", query, args, ErrAppointmentNotFound)
}

// Confirm transitions an appointment to confirmed and stamps confirmed_at.
// The status guard lives in the UPDATE itself so a concurrent cancel between
// the service's read and this write cannot resurrect the appointment; zero
// affected rows means the current status refuses the transition.
func (r *Repository) Confirm(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	confirmable := []string{
		string(domain.StatusScheduled),
		string(domain.StatusRescheduled),
	}

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusConfirmed).
		Set("confirmed_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": confirmable}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Confirm - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Confirm", query, args, ErrInvalidStatusTransition)
}

// Cancel transitions an appointment to cancelled, storing the reason and
// stamping cancelled_at. Cancelled is terminal, so the UPDATE refuses rows
// that are already cancelled regardless of what the service read before.
func (r *Repository) Cancel(ctx context.Context, id int64, reason string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Cancel", query, args, ErrInvalidStatusTransition)
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, op, query string, args []interface{}, zeroRowsErr error) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if affected == 0 {
		return zeroRowsErr
	}
	return nil
}

func scanAppointment(scan func(dest ...interface{}) error) (*domain.Appointment, error) {
	var a domain.Appointment
	var confirmedAt, cancelledAt, createdAt, updatedAt sql.NullTime

	err := scan(
		&a.ID,
		&a.PatientID,
		&a.DoctorID,
		&a.StartsAt,
		&a.DurationMinutes,
		&a.Status,
		&a.Notes,
		&a.CancellationReason,
		&confirmedAt,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if confirmedAt.Valid {
		a.ConfirmedAt = &confirmedAt.Time
	}
	if cancelledAt.Valid {
		a.CancelledAt = &cancelledAt.Time
	}
	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time
	return &a, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		a, err := scanAppointment(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}
		appointments = append(appointments, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}
	return appointments, nil
}
