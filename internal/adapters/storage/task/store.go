package task

import (
	"context"

	domain "opsdesk/internal/domain/task"
)

// Store persists Task state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Task, error)
	Save(ctx context.Context, value domain.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Task, error)
	ReassignAll(ctx context.Context, fromAssigneeID, toAssigneeID string) (int, error)
	DetachClient(ctx context.Context, clientID string) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit      int
	Offset     int
	Status     string
	Priority   string
	AssigneeID string
	ClientID   string
	Search     string
}
