package domain

import "time"

// RoleCreatedEvent is emitted after a role has been persisted.
type RoleCreatedEvent struct {
	EventID   string
	RoleID    int64
	Name      string
	CreatedAt time.Time
}

// RoleUpdatedEvent is emitted after a role has been renamed.
type RoleUpdatedEvent struct {
	EventID      string
	RoleID       int64
	Name         string
	PreviousName string
	UpdatedAt    time.Time
}

// RoleDeletedEvent is emitted after a role has been removed.
type RoleDeletedEvent struct {
	EventID   string
	RoleID    int64
	Name      string
	DeletedAt time.Time
}
