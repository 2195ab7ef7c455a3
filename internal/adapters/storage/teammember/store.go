package teammember

import (
	"context"

	domain "opsdesk/internal/domain/teammember"
)

// Store persists TeamMember state.
type Store interface {
	GetByID(ctx context.Context, id string) (domain.TeamMember, error)
	Save(ctx context.Context, value domain.TeamMember) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.TeamMember, error)
	SearchByName(ctx context.Context, query string, limit int) ([]domain.TeamMember, error)
	UnassignKpi(ctx context.Context, kpiID string) (int, error)
}

// ListFilter carries filtering parameters for List operations.
type ListFilter struct {
	Limit  int
	Offset int
	Role   string
	Search string
}
