package postgres

import (
	"context"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/peoplehub/user-access-service/internal/core/domain"
	"github.com/peoplehub/user-access-service/internal/core/port"
	"github.com/peoplehub/user-access-service/internal/repository"
)

const pageAccessColumns = "id, user_id, page_id, granted, granted_by, reason, created_at, modified_at"

// PageAccessRepository implements port.PageAccessRepository over PostgreSQL.
// The user_page_access table carries a UNIQUE (user_id, page_id) constraint;
// writes go through an atomic INSERT .. ON CONFLICT DO UPDATE so concurrent
// grant/revoke calls on the same pair serialize to a single record.
type PageAccessRepository struct {
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewPageAccessRepository constructs a page access repository instance.
func NewPageAccessRepository(exec pgExecutor) *PageAccessRepository {
	return &PageAccessRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Find retrieves the override for a (user, page) pair, if one exists.
func (r *PageAccessRepository) Find(ctx context.Context, userID string, page domain.Page) (*domain.PageAccess, error) {
	stmt, args, err := r.builder.
		Select("id", "user_id", "page_id", "granted", "granted_by", "reason", "created_at", "modified_at").
		From("uas.user_page_access").
		Where(squirrel.Eq{"user_id": userID, "page_id": string(page)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select page access sql: %w", err)
	}

	record, err := scanPageAccess(r.exec.QueryRow(ctx, stmt, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan page access: %w", err)
	}

	return record, nil
}

// UpsertGrant writes a granted=true decision for the pair, creating the record
// on first write and mutating it in place thereafter.
func (r *PageAccessRepository) UpsertGrant(ctx context.Context, write port.PageAccessWrite) (*domain.PageAccess, error) {
	return r.upsert(ctx, write, true)
}

// UpsertRevoke writes a granted=false decision for the pair.
func (r *PageAccessRepository) UpsertRevoke(ctx context.Context, write port.PageAccessWrite) (*domain.PageAccess, error) {
	return r.upsert(ctx, write, false)
}

func (r *PageAccessRepository) upsert(ctx context.Context, write port.PageAccessWrite, granted bool) (*domain.PageAccess, error) {
	stmt := `
		INSERT INTO uas.user_page_access (id, user_id, page_id, granted, granted_by, reason, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
		ON CONFLICT (user_id, page_id) DO UPDATE
		   SET granted     = EXCLUDED.granted,
		       granted_by  = EXCLUDED.granted_by,
		       reason      = EXCLUDED.reason,
		       modified_at = EXCLUDED.modified_at
		RETURNING ` + pageAccessColumns

	row := r.exec.QueryRow(ctx, stmt,
		uuid.NewString(),
		write.UserID,
		string(write.Page),
		granted,
		write.GrantedBy,
		write.Reason,
		write.At,
	)

	record, err := scanPageAccess(row)
	if err != nil {
		return nil, fmt.Errorf("upsert page access: %w", err)
	}

	return record, nil
}

// ListForUser returns every override for the user ordered by page id.
func (r *PageAccessRepository) ListForUser(ctx context.Context, userID string) ([]domain.PageAccess, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID})
}

// ListGranted returns the user's granted overrides ordered by page id.
func (r *PageAccessRepository) ListGranted(ctx context.Context, userID string) ([]domain.PageAccess, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID, "granted": true})
}

// ListRevoked returns the user's revoked overrides ordered by page id.
func (r *PageAccessRepository) ListRevoked(ctx context.Context, userID string) ([]domain.PageAccess, error) {
	return r.list(ctx, squirrel.Eq{"user_id": userID, "granted": false})
}

func (r *PageAccessRepository) list(ctx context.Context, where squirrel.Eq) ([]domain.PageAccess, error) {
	stmt, args, err := r.builder.
		Select("id", "user_id", "page_id", "granted", "granted_by", "reason", "created_at", "modified_at").
		From("uas.user_page_access").
		Where(where).
		OrderBy("page_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list page access sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query page access: %w", err)
	}
	defer rows.Close()

	records := make([]domain.PageAccess, 0)
	for rows.Next() {
		record, err := scanPageAccess(rows)
		if err != nil {
			return nil, fmt.Errorf("scan page access: %w", err)
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate page access: %w", err)
	}

	return records, nil
}

func scanPageAccess(row pgx.Row) (*domain.PageAccess, error) {
	var (
		record domain.PageAccess
		pageID string
	)

	if err := row.Scan(
		&record.ID,
		&record.UserID,
		&pageID,
		&record.Granted,
		&record.GrantedBy,
		&record.Reason,
		&record.CreatedAt,
		&record.ModifiedAt,
	); err != nil {
		return nil, err
	}

	page, err := domain.ParsePage(pageID)
	if err != nil {
		return nil, fmt.Errorf("page id %q: %w", pageID, err)
	}
	record.Page = page

	return &record, nil
}

var _ port.PageAccessRepository = (*PageAccessRepository)(nil)
