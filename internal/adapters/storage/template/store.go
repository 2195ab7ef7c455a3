package template

import (
	"context"

	domain "opsdesk/internal/domain/template"
)

// Store persists Template state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.Template, error)
	Save(ctx context.Context, value domain.Template) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.Template, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit    int
	Offset   int
	Category string
	Search   string
}
