package port

import (
	"context"

	"github.com/onmind/role-service/internal/core/domain"
)

// RoleRepository handles role persistence. Implementations must be safe for
// concurrent use; the database unique constraint on name is the authoritative
// uniqueness guarantee.
type RoleRepository interface {
	// Create inserts the role and assigns its generated id in place. A
	// duplicate name surfaces as repository.ErrDuplicate.
	Create(ctx context.Context, role *domain.Role) error
	// Update rewrites the row matched by id. Missing rows surface as
	// repository.ErrNotFound.
	Update(ctx context.Context, role domain.Role) error
	GetByID(ctx context.Context, id int64) (*domain.Role, error)
	// GetByName performs an exact case-sensitive match.
	GetByName(ctx context.Context, name string) (*domain.Role, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]domain.Role, error)
	// SearchByName performs a case-insensitive substring match.
	SearchByName(ctx context.Context, pattern string) ([]domain.Role, error)
	// Delete is idempotent: removing a missing id is not an error.
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}
