package kpi

import (
	"context"

	domain "opsdesk/internal/domain/kpi"
)

// Store persists Kpi state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Kpi, error)
	Save(ctx context.Context, value domain.Kpi) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Kpi, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
	Search string
}
