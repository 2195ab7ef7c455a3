package orchestrators

import (
	"context"
	"testing"
	"time"

	"opsdesk/internal/domain/client"
	"opsdesk/internal/domain/task"
)

func TestExecuteCreateClient(t *testing.T) {
	tests := []struct {
		name       string
		input      CreateClientInput
		wantErr    bool
		wantStatus string
	}{
		{
			name:       "valid client",
			input:      CreateClientInput{Name: "Acme Corp", Status: client.StatusAtRisk},
			wantStatus: client.StatusAtRisk,
		},
		{
			name:       "blank status defaults to healthy",
			input:      CreateClientInput{Name: "Globex"},
			wantStatus: client.StatusHealthy,
		},
		{
			name:    "empty name rejected",
			input:   CreateClientInput{Name: "  "},
			wantErr: true,
		},
		{
			name:    "unknown status rejected",
			input:   CreateClientInput{Name: "Initech", Status: "on_fire"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockClientStore()
			got, err := ExecuteCreateClient(context.Background(), tt.input, CreateClientDeps{
				ClientStore: store,
				GenerateID:  fixedID,
			})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ExecuteCreateClient() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				if len(store.clients) != 0 {
					t.Errorf("invalid input persisted %d clients", len(store.clients))
				}
				return
			}
			if got.ID != fixedID() {
				t.Errorf("ID = %q, want %q", got.ID, fixedID())
			}
			if got.Status != tt.wantStatus {
				t.Errorf("Status = %q, want %q", got.Status, tt.wantStatus)
			}
			if _, ok := store.clients[got.ID]; !ok {
				t.Error("client not persisted")
			}
		})
	}
}

func TestExecuteUpdateClient_Idempotent(t *testing.T) {
	store := newMockClientStore()
	store.clients["c1"] = client.Client{
		ID:     "c1",
		Name:   "Acme Corp",
		Status: client.StatusHealthy,
		PulseLog: []client.PulseEntry{
			{ID: "p1", Date: fixedTime, Note: "kickoff call"},
		},
	}

	input := UpdateClientInput{
		ClientID:      "c1",
		Name:          "Acme Corporation",
		Status:        client.StatusAtRisk,
		ContactPerson: "Jordan Reyes",
		Tags:          []string{"enterprise"},
	}
	deps := UpdateClientDeps{ClientStore: store}

	first, err := ExecuteUpdateClient(context.Background(), input, deps)
	if err != nil {
		t.Fatalf("first update: %v", err)
	}
	second, err := ExecuteUpdateClient(context.Background(), input, deps)
	if err != nil {
		t.Fatalf("second update: %v", err)
	}

	if first.Name != second.Name || first.Status != second.Status || first.ContactPerson != second.ContactPerson {
		t.Errorf("repeated update diverged: first %+v, second %+v", first, second)
	}
	stored := store.clients["c1"]
	if stored.Name != "Acme Corporation" || stored.Status != client.StatusAtRisk {
		t.Errorf("stored state = %+v", stored)
	}
	if len(stored.PulseLog) != 1 || stored.PulseLog[0].Note != "kickoff call" {
		t.Errorf("update touched the pulse log: %+v", stored.PulseLog)
	}
}

func TestExecuteUpdateClient_MissingClient(t *testing.T) {
	store := newMockClientStore()
	_, err := ExecuteUpdateClient(context.Background(), UpdateClientInput{
		ClientID: "ghost",
		Name:     "Ghost",
		Status:   client.StatusHealthy,
	}, UpdateClientDeps{ClientStore: store})
	if err == nil {
		t.Fatal("expected error for unknown client")
	}
}

func TestExecuteDeleteClient_DetachesTasks(t *testing.T) {
	clients := newMockClientStore()
	clients.clients["c1"] = client.Client{ID: "c1", Name: "Acme Corp", Status: client.StatusHealthy}

	tasks := newMockTaskStore()
	tasks.tasks["t1"] = task.Task{ID: "t1", Title: "Weekly report", Status: task.StatusPending, Priority: task.PriorityMedium, ClientID: "c1"}
	tasks.tasks["t2"] = task.Task{ID: "t2", Title: "QA review", Status: task.StatusPending, Priority: task.PriorityMedium, ClientID: "c1"}
	tasks.tasks["t3"] = task.Task{ID: "t3", Title: "Other client", Status: task.StatusPending, Priority: task.PriorityMedium, ClientID: "c2"}

	result, err := ExecuteDeleteClient(context.Background(), DeleteClientInput{ClientID: "c1"}, DeleteClientDeps{
		ClientStore: clients,
		Tasks:       tasks,
	})
	if err != nil {
		t.Fatalf("ExecuteDeleteClient() error = %v", err)
	}

	if result.DetachedTasks != 2 {
		t.Errorf("DetachedTasks = %d, want 2", result.DetachedTasks)
	}
	if _, ok := clients.clients["c1"]; ok {
		t.Error("client row still present")
	}
	// Tasks survive the cascade with the reference cleared.
	if len(tasks.tasks) != 3 {
		t.Fatalf("cascade deleted tasks: %d remain, want 3", len(tasks.tasks))
	}
	if tasks.tasks["t1"].ClientID != "" || tasks.tasks["t2"].ClientID != "" {
		t.Error("task client references not cleared")
	}
	if tasks.tasks["t3"].ClientID != "c2" {
		t.Error("unrelated task was detached")
	}
}

func TestExecuteDeleteClient_MissingClient(t *testing.T) {
	clients := newMockClientStore()
	tasks := newMockTaskStore()
	tasks.tasks["t1"] = task.Task{ID: "t1", Title: "Weekly report", Status: task.StatusPending, Priority: task.PriorityMedium, ClientID: "ghost"}

	_, err := ExecuteDeleteClient(context.Background(), DeleteClientInput{ClientID: "ghost"}, DeleteClientDeps{
		ClientStore: clients,
		Tasks:       tasks,
	})
	if err == nil {
		t.Fatal("expected error for unknown client")
	}
	if tasks.tasks["t1"].ClientID != "ghost" {
		t.Error("failed delete still detached tasks")
	}
}

func TestExecuteLogPulse(t *testing.T) {
	store := newMockClientStore()
	store.clients["c1"] = client.Client{
		ID:       "c1",
		Name:     "Acme Corp",
		Status:   client.StatusHealthy,
		PulseLog: []client.PulseEntry{{ID: "p1", Date: fixedTime.Add(-24 * time.Hour), Note: "first"}},
	}

	entry, err := ExecuteLogPulse(context.Background(), LogPulseInput{
		ClientID: "c1",
		Note:     "escalation resolved",
		LoggedBy: "m1",
	}, LogPulseDeps{ClientStore: store, GenerateID: fixedID, Now: fixedNow})
	if err != nil {
		t.Fatalf("ExecuteLogPulse() error = %v", err)
	}

	if entry.ID != fixedID() || entry.Note != "escalation resolved" || !entry.Date.Equal(fixedTime) {
		t.Errorf("entry = %+v", entry)
	}
	stored := store.clients["c1"]
	if len(stored.PulseLog) != 2 {
		t.Fatalf("PulseLog length = %d, want 2", len(stored.PulseLog))
	}
	if stored.PulseLog[0].Note != "first" {
		t.Error("existing pulse entry was disturbed")
	}
}

func TestExecuteLogPulse_EmptyNote(t *testing.T) {
	store := newMockClientStore()
	store.clients["c1"] = client.Client{ID: "c1", Name: "Acme Corp", Status: client.StatusHealthy}

	_, err := ExecuteLogPulse(context.Background(), LogPulseInput{ClientID: "c1", Note: "  "},
		LogPulseDeps{ClientStore: store, GenerateID: fixedID, Now: fixedNow})
	if err == nil {
		t.Fatal("expected error for blank note")
	}
	if len(store.clients["c1"].PulseLog) != 0 {
		t.Error("blank note was appended")
	}
}
