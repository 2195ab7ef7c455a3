package projections

import (
	"context"
	"testing"
	"time"

	domainKpi "opsdesk/internal/domain/kpi"
)

func trendKpi() domainKpi.Kpi {
	base := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	newTarget := 95.0
	return domainKpi.Kpi{
		ID: "k1", Name: "CSAT", Target: 95, Actual: 96,
		History: []domainKpi.HistoryPoint{
			{ID: "h1", Date: base, Actual: 88},
			{ID: "h2", Date: base.AddDate(0, 0, 7), Actual: 91, Target: &newTarget},
			{ID: "h3", Date: base.AddDate(0, 0, 14), Actual: 96},
		},
	}
}

// TestQueryGetKpiTrend_OrderedPoints verifies points come back sorted with targets rolled forward.
func TestQueryGetKpiTrend_OrderedPoints(t *testing.T) {
	deps := GetKpiTrendDeps{KpiStore: &mockSearchKpiStore{kpis: []domainKpi.Kpi{trendKpi()}}}

	res, err := QueryGetKpiTrend(context.Background(), GetKpiTrendQuery{KpiID: "k1"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Points) != 3 {
		t.Fatalf("points=%d want 3", len(res.Points))
	}
	for i := 1; i < len(res.Points); i++ {
		if res.Points[i].Date.Before(res.Points[i-1].Date) {
			t.Fatalf("points out of order: %+v", res.Points)
		}
	}
	// The explicit target at h2 carries forward to h3.
	if res.Points[2].Target != 95 {
		t.Errorf("point[2] target=%v want 95", res.Points[2].Target)
	}
}

// TestQueryGetKpiTrend_DateWindow verifies From/To bounds.
func TestQueryGetKpiTrend_DateWindow(t *testing.T) {
	deps := GetKpiTrendDeps{KpiStore: &mockSearchKpiStore{kpis: []domainKpi.Kpi{trendKpi()}}}

	res, err := QueryGetKpiTrend(context.Background(), GetKpiTrendQuery{
		KpiID: "k1",
		From:  time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC),
		To:    time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
	}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Points) != 1 || res.Points[0].Actual != 91 {
		t.Errorf("points=%+v want the single mid-window point", res.Points)
	}
}

// TestQueryGetKpiTrend_UnknownKpi verifies missing KPIs error.
func TestQueryGetKpiTrend_UnknownKpi(t *testing.T) {
	deps := GetKpiTrendDeps{KpiStore: &mockSearchKpiStore{}}
	if _, err := QueryGetKpiTrend(context.Background(), GetKpiTrendQuery{KpiID: "ghost"}, deps); err == nil {
		t.Fatal("expected error")
	}
	if _, err := QueryGetKpiTrend(context.Background(), GetKpiTrendQuery{}, deps); err == nil {
		t.Fatal("expected error for empty ID")
	}
}
