package coaching

import (
	"context"

	domain "opsdesk/internal/domain/coaching"
)

// SessionStore persists OneOnOneSession state.
type SessionStore interface {
	GetByID(ctx context.Context, id string) (domain.OneOnOneSession, error)
	Save(ctx context.Context, value domain.OneOnOneSession) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.OneOnOneSession, error)
	DeleteByMember(ctx context.Context, memberID string) (int, error)
}

// PtlStore persists PtlReport state.
type PtlStore interface {
	GetByID(ctx context.Context, id string) (domain.PtlReport, error)
	Save(ctx context.Context, value domain.PtlReport) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.PtlReport, error)
	DeleteByMember(ctx context.Context, memberID string) (int, error)
}

// FeedForwardStore persists FeedForward state.
type FeedForwardStore interface {
	GetByID(ctx context.Context, id string) (domain.FeedForward, error)
	Save(ctx context.Context, value domain.FeedForward) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter ListFilter) ([]domain.FeedForward, error)
	DeleteByMember(ctx context.Context, memberID string) (int, error)
}

// ListFilter carries filtering parameters shared by the coaching stores.
type ListFilter struct {
	Limit    int
	Offset   int
	MemberID string
}
