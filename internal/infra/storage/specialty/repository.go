package specialty

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

const table = "specialties"

var columns = []string{
	"id",
	"name",
	"description",
	"active",
	"created_at",
	"updated_at",
}

// Repository persists specialties.
type Repository struct {
	db DBExecutor
}

func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a specialty. A duplicate name surfaces as
// ErrSpecialtyAlreadyExists.
func (r *Repository) Create(ctx context.Context, s *domain.Specialty) (*domain.Specialty, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(table).
		Columns("name", "description", "active").
		Values(s.Name, s.Description, s.Active).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &createdAt, &updatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: Create - name taken: %v", ErrSpecialtyAlreadyExists, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return s, nil
}

// GetByID fetches one specialty.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Specialty, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	s, err := scanSpecialty(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSpecialtyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan specialty: %v", ErrScanRow, err)
	}
	return s, nil
}

// List returns specialties ordered by name. With activeOnly set only active
// ones are returned, which is what the chat menu shows.
func (r *Repository) List(ctx context.Context, activeOnly bool) ([]*domain.Specialty, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	sb := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("name ASC, id ASC")
	if activeOnly {
		sb = sb.Where(squirrel.Eq{"active": true})
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

	specialties := make([]*domain.Specialty, 0)
	for rows.Next() {
		s, err := scanSpecialty(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		specialties = append(specialties, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return specialties, nil
}

func scanSpecialty(scan func(dest ...interface{}) error) (*domain.Specialty, error) {
	var s domain.Specialty
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.Active,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time
	return &s, nil
}
