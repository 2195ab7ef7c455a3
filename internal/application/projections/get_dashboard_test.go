package projections

import (
	"context"
	"testing"
	"time"

	domainClient "opsdesk/internal/domain/client"
	domainKpi "opsdesk/internal/domain/kpi"
	domainTask "opsdesk/internal/domain/task"
)

// TestQueryGetDashboard_Counts verifies status, task, and KPI aggregation.
func TestQueryGetDashboard_Counts(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	deps := GetDashboardDeps{
		ClientStore: &mockSearchClientStore{clients: []domainClient.Client{
			{ID: "c1", Name: "Acme Corp", Status: domainClient.StatusHealthy, PulseLog: []domainClient.PulseEntry{
				{ID: "p1", Date: now.Add(-48 * time.Hour), Note: "older"},
				{ID: "p2", Date: now.Add(-1 * time.Hour), Note: "newest"},
			}},
			{ID: "c2", Name: "Globex", Status: domainClient.StatusCritical},
			{ID: "c3", Name: "Initech", Status: domainClient.StatusHealthy},
		}},
		TaskStore: &mockSearchTaskStore{tasks: []domainTask.Task{
			{ID: "t1", Title: "Done", Status: domainTask.StatusCompleted, Priority: domainTask.PriorityLow},
			{ID: "t2", Title: "Late", Status: domainTask.StatusPending, Priority: domainTask.PriorityLow, DueDate: now.Add(-24 * time.Hour)},
			{ID: "t3", Title: "Open", Status: domainTask.StatusInProgress, Priority: domainTask.PriorityLow},
		}},
		KpiStore: &mockSearchKpiStore{kpis: []domainKpi.Kpi{
			{ID: "k1", Name: "CSAT", Target: 90, Actual: 92},
			{ID: "k2", Name: "AHT", Target: 300, Actual: 320, LowerIsBetter: true},
		}},
	}

	res, err := QueryGetDashboard(context.Background(), GetDashboardQuery{}, deps, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if res.ClientTotal != 3 {
		t.Errorf("ClientTotal=%d want 3", res.ClientTotal)
	}
	if res.ClientByStatus[domainClient.StatusHealthy] != 2 || res.ClientByStatus[domainClient.StatusCritical] != 1 {
		t.Errorf("ClientByStatus=%v", res.ClientByStatus)
	}

	if res.TaskTotal != 3 || res.TaskCompleted != 1 || res.TaskOverdue != 1 || res.TaskOpen != 1 {
		t.Errorf("tasks total/completed/overdue/open = %d/%d/%d/%d",
			res.TaskTotal, res.TaskCompleted, res.TaskOverdue, res.TaskOpen)
	}

	// k1 meets its target; k2 improves downward and misses.
	if res.KpisOnTarget != 1 {
		t.Errorf("KpisOnTarget=%d want 1", res.KpisOnTarget)
	}
	for _, k := range res.Kpis {
		if k.ID == "k2" && k.MeetsTarget {
			t.Error("lower-is-better KPI above target reported as met")
		}
	}

	if len(res.RecentPulses) != 2 || res.RecentPulses[0].Note != "newest" {
		t.Errorf("RecentPulses=%+v", res.RecentPulses)
	}
}

// TestQueryGetDashboard_PulseLimit verifies the recent pulse cap.
func TestQueryGetDashboard_PulseLimit(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	var entries []domainClient.PulseEntry
	for i := 0; i < 15; i++ {
		entries = append(entries, domainClient.PulseEntry{
			ID:   "p",
			Date: now.Add(-time.Duration(i) * time.Hour),
			Note: "entry",
		})
	}

	deps := GetDashboardDeps{
		ClientStore: &mockSearchClientStore{clients: []domainClient.Client{
			{ID: "c1", Name: "Acme Corp", Status: domainClient.StatusHealthy, PulseLog: entries},
		}},
		TaskStore: &mockSearchTaskStore{},
		KpiStore:  &mockSearchKpiStore{},
	}

	res, err := QueryGetDashboard(context.Background(), GetDashboardQuery{}, deps, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.RecentPulses) != 10 {
		t.Errorf("default limit: pulses=%d want 10", len(res.RecentPulses))
	}

	res, err = QueryGetDashboard(context.Background(), GetDashboardQuery{RecentPulseLimit: 3}, deps, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.RecentPulses) != 3 {
		t.Errorf("explicit limit: pulses=%d want 3", len(res.RecentPulses))
	}
}
