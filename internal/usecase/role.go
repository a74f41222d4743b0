package usecase

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"
	"time"

	uuid "github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/onmind/role-service/internal/core/domain"
	"github.com/onmind/role-service/internal/core/port"
	"github.com/onmind/role-service/internal/repository"
)

var (
	// ErrRoleExists indicates a role with the provided name already exists.
	ErrRoleExists = errors.New("role already exists")
	// ErrRoleNotFound indicates the requested role does not exist.
	ErrRoleNotFound = errors.New("role not found")
	// ErrNilRole is returned when an operation requires an existing role and none was provided.
	ErrNilRole = errors.New("role is required")
	// ErrInvalidRoleID indicates a non-positive role identifier.
	ErrInvalidRoleID = errors.New("role id must be a positive number")
	// ErrSystemRoleProtected indicates the role is protected from deletion.
	ErrSystemRoleProtected = errors.New("system roles cannot be deleted")
	// ErrEmptyPattern indicates a blank search pattern.
	ErrEmptyPattern = errors.New("name pattern cannot be blank")
)

// RoleService orchestrates role creation, lookup, renaming, and deletion,
// enforcing the naming rules around the repository.
type RoleService struct {
	roles  port.RoleRepository
	events port.EventPublisher
	logger *zap.Logger
	now    func() time.Time
}

// NewRoleService constructs a RoleService.
func NewRoleService(roles port.RoleRepository, events port.EventPublisher) *RoleService {
	return &RoleService{
		roles:  roles,
		events: events,
		logger: zap.NewNop(),
		now:    time.Now,
	}
}

// WithLogger attaches a logger used for event publishing diagnostics.
func (s *RoleService) WithLogger(logger *zap.Logger) *RoleService {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// WithClock allows injection of a custom clock (primarily for testing).
func (s *RoleService) WithClock(now func() time.Time) *RoleService {
	if now != nil {
		s.now = now
	}
	return s
}

// CreateRole validates the candidate name, rejects duplicates, and persists a
// new role. The repository lookup is a fast-path only: two concurrent creates
// of the same name can both pass it, and the database unique constraint is
// what turns the losing insert into ErrRoleExists.
func (s *RoleService) CreateRole(ctx context.Context, rawName string) (domain.Role, error) {
	name, err := domain.ValidateName(rawName)
	if err != nil {
		return domain.Role{}, err
	}

	if existing, err := s.roles.GetByName(ctx, name); err == nil && existing != nil {
		return domain.Role{}, ErrRoleExists
	} else if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return domain.Role{}, fmt.Errorf("lookup role by name: %w", err)
	}

	role := domain.Role{Name: name, CreatedAt: s.now().UTC()}

	if err := s.roles.Create(ctx, &role); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return domain.Role{}, ErrRoleExists
		}
		return domain.Role{}, fmt.Errorf("create role: %w", err)
	}

	s.publishCreated(ctx, role)

	return role, nil
}

// UpdateRole validates the new name exactly as creation does and renames the
// role in place. Identity and creation timestamp are never modified.
func (s *RoleService) UpdateRole(ctx context.Context, role *domain.Role, newRawName string) (domain.Role, error) {
	if role == nil {
		return domain.Role{}, ErrNilRole
	}

	name, err := domain.ValidateName(newRawName)
	if err != nil {
		return domain.Role{}, err
	}

	previous := role.Name
	role.Name = name

	if role.ID > 0 {
		if err := s.roles.Update(ctx, *role); err != nil {
			role.Name = previous
			switch {
			case errors.Is(err, repository.ErrDuplicate):
				return domain.Role{}, ErrRoleExists
			case errors.Is(err, repository.ErrNotFound):
				return domain.Role{}, ErrRoleNotFound
			}
			return domain.Role{}, fmt.Errorf("update role: %w", err)
		}

		s.publishUpdated(ctx, *role, previous)
	}

	return *role, nil
}

// GetRoleByID retrieves a role by id. Absent roles surface as ErrRoleNotFound.
func (s *RoleService) GetRoleByID(ctx context.Context, id int64) (*domain.Role, error) {
	if id <= 0 {
		return nil, ErrInvalidRoleID
	}

	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("lookup role by id: %w", err)
	}

	return role, nil
}

// ListRoles returns all roles.
func (s *RoleService) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return s.roles.List(ctx)
}

// SearchRoles returns roles whose name contains the pattern, case-insensitively.
func (s *RoleService) SearchRoles(ctx context.Context, pattern string) ([]domain.Role, error) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return nil, ErrEmptyPattern
	}

	roles, err := s.roles.SearchByName(ctx, pattern)
	if err != nil {
		return nil, fmt.Errorf("search roles: %w", err)
	}

	return roles, nil
}

// CountRoles returns the total number of roles.
func (s *RoleService) CountRoles(ctx context.Context) (int64, error) {
	return s.roles.Count(ctx)
}

// ValidateForDeletion checks whether the role may be removed. Any name whose
// uppercase form contains "SYSTEM" is protected; this is intentionally looser
// than the exact reserved list applied at creation time.
func (s *RoleService) ValidateForDeletion(role *domain.Role) error {
	if role == nil {
		return ErrNilRole
	}

	if strings.Contains(strings.ToUpper(role.Name), "SYSTEM") {
		return ErrSystemRoleProtected
	}

	return nil
}

// DeleteRole removes a role by id. Deleting an id that does not exist is a
// no-op, not an error.
func (s *RoleService) DeleteRole(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidRoleID
	}

	role, err := s.roles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("lookup role by id: %w", err)
	}

	if err := s.ValidateForDeletion(role); err != nil {
		return err
	}

	if err := s.roles.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}

	s.publishDeleted(ctx, *role)

	return nil
}

// IsActive reports whether the role is usable: non-blank name and a set
// creation timestamp.
func (s *RoleService) IsActive(role *domain.Role) bool {
	return role != nil && role.IsActive()
}

// FilterActive yields only active roles, preserving input order.
func (s *RoleService) FilterActive(roles iter.Seq[domain.Role]) iter.Seq[domain.Role] {
	return domain.FilterActive(roles)
}

// Event publishing is fire-and-forget: a broken bus must never fail the
// operation that already committed.

func (s *RoleService) publishCreated(ctx context.Context, role domain.Role) {
	if s.events == nil {
		return
	}

	event := domain.RoleCreatedEvent{
		EventID:   uuid.NewString(),
		RoleID:    role.ID,
		Name:      role.Name,
		CreatedAt: role.CreatedAt,
	}

	if err := s.events.PublishRoleCreated(ctx, event); err != nil {
		s.logger.Warn("failed to publish role created event",
			zap.Int64("role_id", role.ID),
			zap.Error(err),
		)
	}
}

func (s *RoleService) publishUpdated(ctx context.Context, role domain.Role, previous string) {
	if s.events == nil {
		return
	}

	event := domain.RoleUpdatedEvent{
		EventID:      uuid.NewString(),
		RoleID:       role.ID,
		Name:         role.Name,
		PreviousName: previous,
		UpdatedAt:    s.now().UTC(),
	}

	if err := s.events.PublishRoleUpdated(ctx, event); err != nil {
		s.logger.Warn("failed to publish role updated event",
			zap.Int64("role_id", role.ID),
			zap.Error(err),
		)
	}
}

func (s *RoleService) publishDeleted(ctx context.Context, role domain.Role) {
	if s.events == nil {
		return
	}

	event := domain.RoleDeletedEvent{
		EventID:   uuid.NewString(),
		RoleID:    role.ID,
		Name:      role.Name,
		DeletedAt: s.now().UTC(),
	}

	if err := s.events.PublishRoleDeleted(ctx, event); err != nil {
		s.logger.Warn("failed to publish role deleted event",
			zap.Int64("role_id", role.ID),
			zap.Error(err),
		)
	}
}
