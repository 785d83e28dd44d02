package doctor

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

const table = "doctors"

var columns = []string{
	"id",
	"name",
	"crm",
	"phone",
	"email",
	"specialty_id",
	"active",
	"created_at",
	"updated_at",
}

// Repository persists doctors.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a doctor. A duplicate CRM surfaces as ErrDoctorAlreadyExists.
func (r *Repository) Create(ctx context.Context, d *domain.Doctor) (*domain.Doctor, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("name", "crm", "phone", "email", "specialty_id", "active").
		Values(d.Name, d.CRM, d.Phone, d.Email, d.SpecialtyID, d.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&d.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: Create - CRM taken: %v", ErrDoctorAlreadyExists, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time
	return d, nil
}

// GetByID fetches one doctor.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Doctor, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	d, err := scanDoctor(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDoctorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan doctor: %v", ErrScanRow, err)
	}
	return d, nil
}

// List returns doctors matching the filter ordered by name.
func (r *Repository) List(ctx context.Context, filter domain.DoctorsFilter) ([]*domain.Doctor, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	sb := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("name ASC, id ASC")

	if filter.SpecialtyID != nil {
		sb = sb.Where(squirrel.Eq{"specialty_id": *filter.SpecialtyID})
	}
	if filter.Active != nil {
		sb = sb.Where(squirrel.Eq{"active": *filter.Active})
	}
	if filter.Limit > 0 {
		sb = sb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		sb = sb.Offset(uint64(filter.Offset))
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

	doctors := make([]*domain.Doctor, 0)
	for rows.Next() {
		d, err := scanDoctor(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		doctors = append(doctors, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return doctors, nil
}

// Update rewrites the mutable fields of a doctor, including the active flag.
func (r *Repository) Update(ctx context.Context, d *domain.Doctor) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update(table).
		Set("name", d.Name).
		Set("crm", d.CRM).
		Set("phone", d.Phone).
		Set("email", d.Email).
		Set("specialty_id", d.SpecialtyID).
		Set("active", d.Active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": d.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("%w: Update - CRM taken: %v", ErrDoctorAlreadyExists, err)
		}
		return fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Update - get rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrDoctorNotFound
	}
	return nil
}

func scanDoctor(scan func(dest ...interface{}) error) (*domain.Doctor, error) {
	var d domain.Doctor
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&d.ID,
		&d.Name,
		&d.CRM,
		&d.Phone,
		&d.Email,
		&d.SpecialtyID,
		&d.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	d.CreatedAt = createdAt.Time
	d.UpdatedAt = updatedAt.Time
	return &d, nil
}
