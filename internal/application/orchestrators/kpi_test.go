package orchestrators

import (
	"context"
	"testing"
	"time"

	"opsdesk/internal/domain/kpi"
	"opsdesk/internal/domain/teammember"
)

func TestExecuteCreateKpi(t *testing.T) {
	store := newMockKpiStore()

	got, err := ExecuteCreateKpi(context.Background(), CreateKpiInput{
		Name:          "Average Handle Time",
		Target:        300,
		LowerIsBetter: true,
	}, CreateKpiDeps{KpiStore: store, GenerateID: fixedID})
	if err != nil {
		t.Fatalf("ExecuteCreateKpi() error = %v", err)
	}
	if !got.LowerIsBetter {
		t.Error("LowerIsBetter not carried through")
	}
	if len(got.History) != 0 {
		t.Errorf("History = %v, want empty", got.History)
	}

	if _, err := ExecuteCreateKpi(context.Background(), CreateKpiInput{Name: " "},
		CreateKpiDeps{KpiStore: store, GenerateID: fixedID}); err == nil {
		t.Fatal("expected error for blank name")
	}
}

func TestExecuteLogKpiEntry(t *testing.T) {
	store := newMockKpiStore()
	store.kpis["k1"] = kpi.Kpi{ID: "k1", Name: "CSAT", Target: 90, Actual: 88}

	got, err := ExecuteLogKpiEntry(context.Background(), LogKpiEntryInput{
		KpiID:    "k1",
		Actual:   92,
		LoggedBy: "m1",
	}, LogKpiEntryDeps{KpiStore: store, GenerateID: fixedID, Now: fixedNow})
	if err != nil {
		t.Fatalf("ExecuteLogKpiEntry() error = %v", err)
	}

	if got.Actual != 92 {
		t.Errorf("Actual = %v, want 92", got.Actual)
	}
	if len(got.History) != 1 {
		t.Fatalf("History length = %d, want 1", len(got.History))
	}
	// Zero input date falls back to the clock.
	if !got.History[0].Date.Equal(fixedTime) {
		t.Errorf("History date = %v, want %v", got.History[0].Date, fixedTime)
	}
	if got.Target != 90 {
		t.Errorf("Target = %v, want unchanged 90", got.Target)
	}
}

func TestExecuteLogKpiEntry_NewTarget(t *testing.T) {
	store := newMockKpiStore()
	store.kpis["k1"] = kpi.Kpi{ID: "k1", Name: "CSAT", Target: 90}

	target := 95.0
	got, err := ExecuteLogKpiEntry(context.Background(), LogKpiEntryInput{
		KpiID:  "k1",
		Date:   fixedTime.Add(-48 * time.Hour),
		Actual: 93,
		Target: &target,
	}, LogKpiEntryDeps{KpiStore: store, GenerateID: fixedID, Now: fixedNow})
	if err != nil {
		t.Fatalf("ExecuteLogKpiEntry() error = %v", err)
	}
	if got.Target != 95 {
		t.Errorf("Target = %v, want rolled forward to 95", got.Target)
	}
	if got.History[0].Target == nil || *got.History[0].Target != 95 {
		t.Errorf("history point target = %v", got.History[0].Target)
	}
}

func TestExecuteDeleteKpi_UnassignsMembers(t *testing.T) {
	kpis := newMockKpiStore()
	kpis.kpis["k1"] = kpi.Kpi{ID: "k1", Name: "CSAT", Target: 90}

	members := newMockMemberStore()
	members.members["m1"] = teammember.TeamMember{
		ID: "m1", Name: "Dana Cole", Email: "dana@opsdesk.local",
		AssignedKpiIDs: []string{"k1", "k2"},
	}
	members.members["m2"] = teammember.TeamMember{
		ID: "m2", Name: "Sam Ortiz", Email: "sam@opsdesk.local",
		AssignedKpiIDs: []string{"k2"},
	}

	if err := ExecuteDeleteKpi(context.Background(), DeleteKpiInput{KpiID: "k1"}, DeleteKpiDeps{
		KpiStore: kpis,
		Members:  members,
	}); err != nil {
		t.Fatalf("ExecuteDeleteKpi() error = %v", err)
	}

	if _, ok := kpis.kpis["k1"]; ok {
		t.Error("kpi row still present")
	}
	m1 := members.members["m1"]
	if len(m1.AssignedKpiIDs) != 1 || m1.AssignedKpiIDs[0] != "k2" {
		t.Errorf("m1 AssignedKpiIDs = %v, want [k2]", m1.AssignedKpiIDs)
	}
	m2 := members.members["m2"]
	if len(m2.AssignedKpiIDs) != 1 || m2.AssignedKpiIDs[0] != "k2" {
		t.Errorf("m2 AssignedKpiIDs = %v, want [k2]", m2.AssignedKpiIDs)
	}
}

func TestExecuteDeleteKpi_MissingKpi(t *testing.T) {
	members := newMockMemberStore()
	members.members["m1"] = teammember.TeamMember{
		ID: "m1", Name: "Dana Cole", Email: "dana@opsdesk.local",
		AssignedKpiIDs: []string{"k1"},
	}

	err := ExecuteDeleteKpi(context.Background(), DeleteKpiInput{KpiID: "k1"}, DeleteKpiDeps{
		KpiStore: newMockKpiStore(),
		Members:  members,
	})
	if err == nil {
		t.Fatal("expected error for unknown kpi")
	}
	if len(members.members["m1"].AssignedKpiIDs) != 1 {
		t.Error("failed delete still unassigned members")
	}
}
