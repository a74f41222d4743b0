package domain

import (
	"fmt"
	"iter"
	"strings"
	"time"
)

// Role is the sole domain entity: a named, timestamped record. ID is zero
// until the repository assigns one on first save.
type Role struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// NewRole constructs an unpersisted role stamped with the current time.
func NewRole(name string) Role {
	return Role{Name: name, CreatedAt: time.Now().UTC()}
}

// Equal reports identity equality: two roles are the same when id and name match.
func (r Role) Equal(other Role) bool {
	return r.ID == other.ID && r.Name == other.Name
}

// IsActive reports whether the role is in a usable state. A role built without
// a creation timestamp (e.g. partially constructed) is inactive and fails
// business-rule validation.
func (r Role) IsActive() bool {
	return strings.TrimSpace(r.Name) != "" && !r.CreatedAt.IsZero()
}

func (r Role) String() string {
	return fmt.Sprintf("Role{id=%d, name=%q, created_at=%s}", r.ID, r.Name, r.CreatedAt.Format(time.RFC3339))
}

// FilterActive yields only active roles, preserving input order. The result is
// lazy and restartable exactly when the input sequence is.
func FilterActive(roles iter.Seq[Role]) iter.Seq[Role] {
	return func(yield func(Role) bool) {
		for role := range roles {
			if !role.IsActive() {
				continue
			}
			if !yield(role) {
				return
			}
		}
	}
}
