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

var userColumns = []string{
	"id",
	"enterprise_id",
	"email",
	"first_name",
	"last_name",
	"password_hash",
	"role",
	"is_active",
	"manager_id",
	"created_at",
	"updated_at",
}

// UserRepository implements port.UserRepository using PostgreSQL. Role codes
// are persisted as text and parsed back through domain.ParseRole on every
// scan, so a row carrying a role outside the closed set surfaces as a
// data-integrity error instead of silently matching.
type UserRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewUserRepository wires a PostgreSQL-backed user repository.
func NewUserRepository(exec pgExecutor) *UserRepository {
	return &UserRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	stmt, args, err := r.builder.Insert("uas.users").
		Columns(userColumns...).
		Values(
			user.ID,
			user.EnterpriseID,
			user.Email,
			user.FirstName,
			user.LastName,
			user.PasswordHash,
			string(user.Role),
			user.IsActive,
			user.ManagerID,
			user.CreatedAt,
			user.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByEmailAndEnterprise retrieves a user by email scoped to an enterprise.
func (r *UserRepository) GetByEmailAndEnterprise(ctx context.Context, email, enterpriseID string) (*domain.User, error) {
	return r.getOne(ctx, squirrel.Eq{"email": email, "enterprise_id": enterpriseID})
}

func (r *UserRepository) getOne(ctx context.Context, where squirrel.Eq) (*domain.User, error) {
	stmt, args, err := r.builder.Select(userColumns...).
		From("uas.users").
		Where(where).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	user, err := scanUser(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return user, nil
}

// ListByEnterprise returns all active users in an enterprise.
func (r *UserRepository) ListByEnterprise(ctx context.Context, enterpriseID string) ([]domain.User, error) {
	return r.list(ctx, squirrel.Eq{"enterprise_id": enterpriseID, "is_active": true})
}

// ListByRoleInEnterprise returns active users with a role in an enterprise.
func (r *UserRepository) ListByRoleInEnterprise(ctx context.Context, enterpriseID string, role domain.Role) ([]domain.User, error) {
	return r.list(ctx, squirrel.Eq{"enterprise_id": enterpriseID, "role": string(role), "is_active": true})
}

// ListReports returns the active users whose manager reference matches.
func (r *UserRepository) ListReports(ctx context.Context, managerID, enterpriseID string) ([]domain.User, error) {
	return r.list(ctx, squirrel.Eq{"manager_id": managerID, "enterprise_id": enterpriseID, "is_active": true})
}

func (r *UserRepository) list(ctx context.Context, where squirrel.Eq) ([]domain.User, error) {
	stmt, args, err := r.builder.Select(userColumns...).
		From("uas.users").
		Where(where).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list users sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, *user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}

	return users, nil
}

// Deactivate marks a user as inactive (soft delete).
func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	stmt, args, err := r.builder.Update("uas.users").
		Set("is_active", false).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build deactivate user sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// SetManager updates the user's manager reference.
func (r *UserRepository) SetManager(ctx context.Context, id, managerID string) error {
	stmt, args, err := r.builder.Update("uas.users").
		Set("manager_id", managerID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build set manager sql: %w", err)
	}

	ct, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("set manager: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		user     domain.User
		roleCode string
	)

	if err := row.Scan(
		&user.ID,
		&user.EnterpriseID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&roleCode,
		&user.IsActive,
		&user.ManagerID,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}

	role, err := domain.ParseRole(roleCode)
	if err != nil {
		return nil, fmt.Errorf("role code %q: %w", roleCode, err)
	}
	user.Role = role

	return &user, nil
}

var _ port.UserRepository = (*UserRepository)(nil)
