package projections

import (
	"context"
	"testing"
	"time"

	domainClient "opsdesk/internal/domain/client"
)

// TestQueryGetClientHealth_Score verifies the audit score components.
func TestQueryGetClientHealth_Score(t *testing.T) {
	reviewed := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	deps := GetClientHealthDeps{
		ClientStore: &mockSearchClientStore{clients: []domainClient.Client{
			{
				ID: "c1", Name: "Acme Corp", Status: domainClient.StatusHealthy,
				Audit: domainClient.Audit{
					SopExists:    true,
					KpiCadence:   domainClient.CadenceWeekly,
					FolderStatus: domainClient.FoldersOrganized,
					DocChecklist: map[string]bool{"contract": true, "runbook": true},
					LastReviewed: reviewed,
				},
				PulseLog: []domainClient.PulseEntry{
					{ID: "p1", Date: reviewed.AddDate(0, 0, 3), Note: "review done"},
				},
			},
			{ID: "c2", Name: "Globex", Status: domainClient.StatusAtRisk},
		}},
	}

	res, err := QueryGetClientHealth(context.Background(), GetClientHealthQuery{}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 2 {
		t.Fatalf("rows=%d want 2", len(res.Rows))
	}

	full := res.Rows[0]
	if full.AuditScore != 100 {
		t.Errorf("full audit score=%d want 100", full.AuditScore)
	}
	if full.DocsComplete != 2 || full.DocsTotal != 2 {
		t.Errorf("docs=%d/%d want 2/2", full.DocsComplete, full.DocsTotal)
	}
	if !full.LastPulse.Equal(reviewed.AddDate(0, 0, 3)) {
		t.Errorf("LastPulse=%v", full.LastPulse)
	}

	empty := res.Rows[1]
	if empty.AuditScore != 0 {
		t.Errorf("empty audit score=%d want 0", empty.AuditScore)
	}
}

// TestQueryGetClientHealth_PartialScore verifies mid-range scoring.
func TestQueryGetClientHealth_PartialScore(t *testing.T) {
	deps := GetClientHealthDeps{
		ClientStore: &mockSearchClientStore{clients: []domainClient.Client{
			{
				ID: "c1", Name: "Acme Corp", Status: domainClient.StatusHealthy,
				Audit: domainClient.Audit{
					SopExists:    true,
					FolderStatus: domainClient.FoldersPartial,
					DocChecklist: map[string]bool{"contract": true, "runbook": false},
				},
			},
		}},
	}

	res, err := QueryGetClientHealth(context.Background(), GetClientHealthQuery{ClientID: "c1"}, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Rows) != 1 {
		t.Fatalf("rows=%d want 1", len(res.Rows))
	}
	// 25 (sop) + 0 (no cadence) + 12 (partial folders) + 12 (half the docs).
	if got := res.Rows[0].AuditScore; got != 49 {
		t.Errorf("score=%d want 49", got)
	}
}

// TestQueryGetClientHealth_UnknownClient verifies missing clients error.
func TestQueryGetClientHealth_UnknownClient(t *testing.T) {
	deps := GetClientHealthDeps{ClientStore: &mockSearchClientStore{}}
	if _, err := QueryGetClientHealth(context.Background(), GetClientHealthQuery{ClientID: "ghost"}, deps); err == nil {
		t.Fatal("expected error")
	}
}
