package projections

import (
	"context"
	"sort"
	"time"

	clientStore "opsdesk/internal/adapters/storage/client"
	kpiStore "opsdesk/internal/adapters/storage/kpi"
	taskStore "opsdesk/internal/adapters/storage/task"
	"opsdesk/internal/domain/task"
)

// GetDashboardQuery carries input for the dashboard projection.
type GetDashboardQuery struct {
	RecentPulseLimit int // 0 uses a default of 10
}

// GetDashboardDeps holds dependencies for the dashboard projection.
type GetDashboardDeps struct {
	ClientStore ClientStore
	TaskStore   TaskStore
	KpiStore    KpiStore
}

// RecentPulse is one pulse entry joined with its client for display.
type RecentPulse struct {
	ClientID   string    `json:"client_id"`
	ClientName string    `json:"client_name"`
	PulseID    string    `json:"pulse_id"`
	Date       time.Time `json:"date"`
	Note       string    `json:"note"`
	LoggedBy   string    `json:"logged_by,omitempty"`
}

// KpiHealth summarizes one KPI against its target.
type KpiHealth struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Target        float64 `json:"target"`
	Actual        float64 `json:"actual"`
	LowerIsBetter bool    `json:"lower_is_better"`
	MeetsTarget   bool    `json:"meets_target"`
}

// DashboardResult carries the output of the dashboard projection.
type DashboardResult struct {
	ClientTotal    int            `json:"client_total"`
	ClientByStatus map[string]int `json:"client_by_status"`

	TaskTotal     int `json:"task_total"`
	TaskOverdue   int `json:"task_overdue"`
	TaskCompleted int `json:"task_completed"`
	TaskOpen      int `json:"task_open"`

	Kpis         []KpiHealth   `json:"kpis"`
	KpisOnTarget int           `json:"kpis_on_target"`
	RecentPulses []RecentPulse `json:"recent_pulses"`
}

// QueryGetDashboard aggregates the landing-page numbers: client health
// counts, task state counts with overdue derived at read time, KPI
// target attainment, and the latest pulse entries across all clients.
func QueryGetDashboard(ctx context.Context, query GetDashboardQuery, deps GetDashboardDeps, now time.Time) (DashboardResult, error) {
	result := DashboardResult{ClientByStatus: make(map[string]int)}

	clients, err := deps.ClientStore.List(ctx, clientStore.ListFilter{})
	if err != nil {
		return DashboardResult{}, err
	}
	result.ClientTotal = len(clients)
	var pulses []RecentPulse
	for _, c := range clients {
		result.ClientByStatus[c.Status]++
		for _, p := range c.PulseLog {
			pulses = append(pulses, RecentPulse{
				ClientID:   c.ID,
				ClientName: c.Name,
				PulseID:    p.ID,
				Date:       p.Date,
				Note:       p.Note,
				LoggedBy:   p.LoggedBy,
			})
		}
	}
	sort.Slice(pulses, func(i, j int) bool { return pulses[i].Date.After(pulses[j].Date) })
	limit := query.RecentPulseLimit
	if limit <= 0 {
		limit = 10
	}
	if len(pulses) > limit {
		pulses = pulses[:limit]
	}
	result.RecentPulses = pulses

	tasks, err := deps.TaskStore.List(ctx, taskStore.ListFilter{})
	if err != nil {
		return DashboardResult{}, err
	}
	result.TaskTotal = len(tasks)
	for _, t := range tasks {
		switch t.EffectiveStatus(now) {
		case task.StatusCompleted:
			result.TaskCompleted++
		case task.StatusOverdue:
			result.TaskOverdue++
		default:
			result.TaskOpen++
		}
	}

	kpis, err := deps.KpiStore.List(ctx, kpiStore.ListFilter{})
	if err != nil {
		return DashboardResult{}, err
	}
	for _, k := range kpis {
		health := KpiHealth{
			ID:            k.ID,
			Name:          k.Name,
			Target:        k.Target,
			Actual:        k.Actual,
			LowerIsBetter: k.LowerIsBetter,
			MeetsTarget:   k.MeetsTarget(),
		}
		if health.MeetsTarget {
			result.KpisOnTarget++
		}
		result.Kpis = append(result.Kpis, health)
	}

	return result, nil
}
