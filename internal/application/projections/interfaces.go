package projections

import (
	"context"

	clientStore "opsdesk/internal/adapters/storage/client"
	kpiStore "opsdesk/internal/adapters/storage/kpi"
	taskStore "opsdesk/internal/adapters/storage/task"
	memberStore "opsdesk/internal/adapters/storage/teammember"
	templateStore "opsdesk/internal/adapters/storage/template"
	domainClient "opsdesk/internal/domain/client"
	domainKpi "opsdesk/internal/domain/kpi"
	domainTask "opsdesk/internal/domain/task"
	domainMember "opsdesk/internal/domain/teammember"
	domainTemplate "opsdesk/internal/domain/template"
)

// ClientStore interface for client queries.
type ClientStore interface {
	GetByID(ctx context.Context, id string) (domainClient.Client, error)
	List(ctx context.Context, filter clientStore.ListFilter) ([]domainClient.Client, error)
}

// MemberStore interface for team member queries.
type MemberStore interface {
	List(ctx context.Context, filter memberStore.ListFilter) ([]domainMember.TeamMember, error)
}

// TaskStore interface for task queries.
type TaskStore interface {
	List(ctx context.Context, filter taskStore.ListFilter) ([]domainTask.Task, error)
}

// KpiStore interface for KPI queries.
type KpiStore interface {
	GetByID(ctx context.Context, id string) (domainKpi.Kpi, error)
	List(ctx context.Context, filter kpiStore.ListFilter) ([]domainKpi.Kpi, error)
}

// TemplateStore interface for template queries.
type TemplateStore interface {
	List(ctx context.Context, filter templateStore.ListFilter) ([]domainTemplate.Template, error)
}
