package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/peoplehub/user-access-service/internal/core/domain"
	"github.com/peoplehub/user-access-service/internal/core/port"
	"github.com/peoplehub/user-access-service/internal/repository"
)

// EnterpriseRepository implements port.EnterpriseRepository over PostgreSQL.
type EnterpriseRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewEnterpriseRepository constructs an enterprise repository instance.
func NewEnterpriseRepository(exec pgExecutor) *EnterpriseRepository {
	return &EnterpriseRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new enterprise row.
func (r *EnterpriseRepository) Create(ctx context.Context, enterprise domain.Enterprise) error {
	stmt, args, err := r.builder.Insert("uas.enterprises").
		Columns("id", "name", "is_active", "created_at").
		Values(enterprise.ID, enterprise.Name, enterprise.IsActive, enterprise.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert enterprise sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert enterprise: %w", err)
	}

	return nil
}

// GetByID retrieves an enterprise by identifier.
func (r *EnterpriseRepository) GetByID(ctx context.Context, id string) (*domain.Enterprise, error) {
	stmt, args, err := r.builder.Select("id", "name", "is_active", "created_at").
		From("uas.enterprises").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select enterprise sql: %w", err)
	}

	var enterprise domain.Enterprise
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(
		&enterprise.ID,
		&enterprise.Name,
		&enterprise.IsActive,
		&enterprise.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan enterprise: %w", err)
	}

	return &enterprise, nil
}

// List returns all enterprises ordered by creation time.
func (r *EnterpriseRepository) List(ctx context.Context) ([]domain.Enterprise, error) {
	stmt, args, err := r.builder.Select("id", "name", "is_active", "created_at").
		From("uas.enterprises").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list enterprises sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query enterprises: %w", err)
	}
	defer rows.Close()

	enterprises := make([]domain.Enterprise, 0)
	for rows.Next() {
		var enterprise domain.Enterprise
		if err := rows.Scan(&enterprise.ID, &enterprise.Name, &enterprise.IsActive, &enterprise.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan enterprise: %w", err)
		}
		enterprises = append(enterprises, enterprise)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate enterprises: %w", err)
	}

	return enterprises, nil
}

var _ port.EnterpriseRepository = (*EnterpriseRepository)(nil)
