package client

import (
	"context"

	domain "opsdesk/internal/domain/client"
)

// Store persists Client state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Client, error)
	Save(ctx context.Context, value domain.Client) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Client, error)
	SearchByName(ctx context.Context, query string, limit int) ([]domain.Client, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
	Status string
	Search string
}
