package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/agendamed/scheduling-service/internal/domain"
	"github.com/agendamed/scheduling-service/pkg/psqlbuilder"
	"github.com/agendamed/scheduling-service/pkg/txmanager"
)

const table = "patients"

var columns = []string{
	"id",
	"name",
	"phone",
	"email",
	"cpf",
	"birth_date",
	"created_at",
	"updated_at",
}

// Repository persists patients.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a patient. Duplicate phone or CPF surfaces as
// ErrPatientAlreadyExists.
func (r *Repository) Create(ctx context.Context, p *domain.Patient) (*domain.Patient, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("name", "phone", "email", "cpf", "birth_date").
		Values(p.Name, p.Phone, p.Email, p.CPF, p.BirthDate).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &createdAt, &updatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create - phone or CPF taken: %v", ErrPatientAlreadyExists, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return p, nil
}

// GetByID fetches one patient.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Patient, error) {
	return r.getWhere(ctx, "GetByID", squirrel.Eq{"id": id})
}

// GetByPhone fetches a patient by phone number, how the chat platform
// identifies subscribers.
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*domain.Patient, error) {
	return r.getWhere(ctx, "GetByPhone", squirrel.Eq{"phone": phone})
}

func (r *Repository) getWhere(ctx context.Context, op string, cond squirrel.Eq) (*domain.Patient, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(cond).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	p, err := scanPatient(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan patient: %v", ErrScanRow, op, err)
	}
	return p, nil
}

// List returns patients ordered by name.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*domain.Patient, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	sb := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("name ASC, id ASC")
	if limit > 0 {
		sb = sb.Limit(uint64(limit))
	}
	if offset > 0 {
		sb = sb.Offset(uint64(offset))
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

	patients := make([]*domain.Patient, 0)
	for rows.Next() {
		p, err := scanPatient(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		patients = append(patients, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return patients, nil
}

// Update rewrites the mutable fields of a patient.
func (r *Repository) Update(ctx context.Context, p *domain.Patient) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", p.Name).
		Set("phone", p.Phone).
		Set("email", p.Email).
		Set("cpf", p.CPF).
		Set("birth_date", p.BirthDate).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: Update - phone or CPF taken: %v", ErrPatientAlreadyExists, err)
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrPatientNotFound
	}
	return nil
}

// Delete removes a patient.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrPatientNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

func scanPatient(scan func(dest ...interface{}) error) (*domain.Patient, error) {
	var p domain.Patient
	var birthDate, createdAt, updatedAt sql.NullTime

	err := scan(
		&p.ID,
		&p.Name,
		&p.Phone,
		&p.Email,
		&p.CPF,
		&birthDate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if birthDate.Valid {
		p.BirthDate = &birthDate.Time
	}
	p.CreatedAt = createdAt.Time
	p.UpdatedAt = updatedAt.Time
	return &p, nil
}
