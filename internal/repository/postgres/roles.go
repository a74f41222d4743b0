package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/onmind/role-service/internal/core/domain"
	"github.com/onmind/role-service/internal/core/port"
	"github.com/onmind/role-service/internal/repository"
)

const uniqueViolationCode = "23505"

// RoleRepository implements role persistence operations against the roles table.
type RoleRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewRoleRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewRoleRepository(exec pgExecutor) *RoleRepository {
	repo := &RoleRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// WithTx returns a repository configured to execute within the provided transaction.
func (r *RoleRepository) WithTx(tx pgx.Tx) *RoleRepository {
	if tx == nil {
		return r
	}
	return &RoleRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new role and assigns the generated id in place. The unique
// constraint on name is the authoritative duplicate check; violations surface
// as repository.ErrDuplicate.
func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	if role == nil {
		return errors.New("role is required")
	}

	if role.CreatedAt.IsZero() {
		role.CreatedAt = time.Now().UTC()
	}

	stmt, args, err := r.builder.Insert("roles").
		Columns("name", "created_at").
		Values(role.Name, role.CreatedAt).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert role sql: %w", err)
	}

	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&role.ID); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("insert role: %w", err)
	}

	return nil
}

// Update rewrites the name of the row matched by id. Identity and creation
// timestamp are never touched.
func (r *RoleRepository) Update(ctx context.Context, role domain.Role) error {
	stmt, args, err := r.builder.Update("roles").
		Set("name", role.Name).
		Where(squirrel.Eq{"id": role.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update role sql: %w", err)
	}

	res, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrDuplicate
		}
		return fmt.Errorf("update role: %w", err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// GetByID retrieves a role by its generated identifier.
func (r *RoleRepository) GetByID(ctx context.Context, id int64) (*domain.Role, error) {
	stmt, args, err := r.builder.Select("id", "name", "created_at").
		From("roles").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select role by id sql: %w", err)
	}

	var role domain.Role
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan role by id: %w", err)
	}

	return &role, nil
}

// GetByName retrieves a role by its unique name, exact case-sensitive match.
func (r *RoleRepository) GetByName(ctx context.Context, name string) (*domain.Role, error) {
	stmt, args, err := r.builder.Select("id", "name", "created_at").
		From("roles").
		Where(squirrel.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select role by name sql: %w", err)
	}

	var role domain.Role
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan role by name: %w", err)
	}

	return &role, nil
}

// ExistsByName reports whether a role with the exact name exists.
func (r *RoleRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	stmt, args, err := r.builder.Select("1").
		From("roles").
		Where(squirrel.Eq{"name": name}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build exists by name sql: %w", err)
	}

	var one int
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&one); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("scan exists by name: %w", err)
	}

	return true, nil
}

// List retrieves all roles. No ordering is guaranteed.
func (r *RoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	stmt, args, err := r.builder.Select("id", "name", "created_at").
		From("roles").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list roles sql: %w", err)
	}

	return r.queryRoles(ctx, stmt, args)
}

// SearchByName retrieves roles whose name contains the pattern, case-insensitively.
func (r *RoleRepository) SearchByName(ctx context.Context, pattern string) ([]domain.Role, error) {
	stmt, args, err := r.builder.Select("id", "name", "created_at").
		From("roles").
		Where(squirrel.ILike{"name": "%" + pattern + "%"}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build search roles sql: %w", err)
	}

	return r.queryRoles(ctx, stmt, args)
}

// Delete removes a role by id. Deleting a missing id is not an error.
func (r *RoleRepository) Delete(ctx context.Context, id int64) error {
	stmt, args, err := r.builder.Delete("roles").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete role sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}

	return nil
}

// Count returns the total number of roles.
func (r *RoleRepository) Count(ctx context.Context) (int64, error) {
	stmt, args, err := r.builder.Select("COUNT(*)").
		From("roles").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count roles sql: %w", err)
	}

	var count int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("scan role count: %w", err)
	}

	return count, nil
}

func (r *RoleRepository) queryRoles(ctx context.Context, stmt string, args []any) ([]domain.Role, error) {
	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}
	defer rows.Close()

	roles := make([]domain.Role, 0)
	for rows.Next() {
		var role domain.Role
		if err := rows.Scan(&role.ID, &role.Name, &role.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan role: %w", err)
		}
		roles = append(roles, role)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate roles: %w", err)
	}

	return roles, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

var _ port.RoleRepository = (*RoleRepository)(nil)
