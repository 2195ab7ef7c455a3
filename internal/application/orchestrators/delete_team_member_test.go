package orchestrators

import (
	"context"
	"testing"

	"opsdesk/internal/domain/client"
	"opsdesk/internal/domain/coaching"
	"opsdesk/internal/domain/task"
	"opsdesk/internal/domain/teammember"
)

func cascadeFixture() (*mockMemberStore, *mockClientStore, *mockTaskStore, *mockSessionStore, *mockPtlStore, *mockFeedForwardStore) {
	members := newMockMemberStore()
	members.members["m1"] = teammember.TeamMember{ID: "m1", Name: "Dana Cole", Email: "dana@opsdesk.local"}
	members.members["m2"] = teammember.TeamMember{ID: "m2", Name: "Sam Ortiz", Email: "sam@opsdesk.local"}

	clients := newMockClientStore()
	clients.clients["c1"] = client.Client{
		ID: "c1", Name: "Acme Corp", Status: client.StatusHealthy,
		AssignedMemberIDs: []string{"m1", "m2"},
	}
	clients.clients["c2"] = client.Client{
		ID: "c2", Name: "Globex", Status: client.StatusHealthy,
		AssignedMemberIDs: []string{"m2"},
	}

	tasks := newMockTaskStore()
	tasks.tasks["t1"] = task.Task{ID: "t1", Title: "Shift handover", Status: task.StatusPending, Priority: task.PriorityMedium, AssigneeID: "m1"}
	tasks.tasks["t2"] = task.Task{ID: "t2", Title: "QA audit", Status: task.StatusInProgress, Priority: task.PriorityHigh, AssigneeID: "m1"}
	tasks.tasks["t3"] = task.Task{ID: "t3", Title: "Roster update", Status: task.StatusPending, Priority: task.PriorityMedium, AssigneeID: "m2"}

	sessions := newMockSessionStore()
	sessions.sessions["s1"] = coaching.OneOnOneSession{ID: "s1", MemberID: "m1", SupervisorID: "m2"}
	sessions.sessions["s2"] = coaching.OneOnOneSession{ID: "s2", MemberID: "m2", SupervisorID: "m1"}

	ptl := newMockPtlStore()
	ptl.reports["r1"] = coaching.PtlReport{ID: "r1", MemberID: "m1", SupervisorID: "m2"}

	ff := newMockFeedForwardStore()
	ff.records["f1"] = coaching.FeedForward{ID: "f1", MemberID: "m1", SupervisorID: "m2"}
	ff.records["f2"] = coaching.FeedForward{ID: "f2", MemberID: "m1", SupervisorID: "m2"}

	return members, clients, tasks, sessions, ptl, ff
}

func TestExecuteDeleteMember_Cascade(t *testing.T) {
	members, clients, tasks, sessions, ptl, ff := cascadeFixture()

	result, err := ExecuteDeleteMember(context.Background(), DeleteMemberInput{
		MemberID:           "m1",
		FallbackAssigneeID: "m2",
	}, DeleteMemberDeps{
		MemberStore:  members,
		ClientStore:  clients,
		Tasks:        tasks,
		Sessions:     sessions,
		PtlReports:   ptl,
		FeedForwards: ff,
	})
	if err != nil {
		t.Fatalf("ExecuteDeleteMember() error = %v", err)
	}

	want := DeleteMemberResult{
		UnassignedClients:   1,
		ReassignedTasks:     2,
		DeletedSessions:     1,
		DeletedPtlReports:   1,
		DeletedFeedForwards: 2,
	}
	if result != want {
		t.Errorf("result = %+v, want %+v", result, want)
	}

	if _, ok := members.members["m1"]; ok {
		t.Error("member row still present")
	}
	if _, ok := members.members["m2"]; !ok {
		t.Error("unrelated member removed")
	}

	for _, ids := range [][]string{clients.clients["c1"].AssignedMemberIDs, clients.clients["c2"].AssignedMemberIDs} {
		for _, id := range ids {
			if id == "m1" {
				t.Error("client still references the deleted member")
			}
		}
	}

	// Tasks move to the fallback, never disappear.
	if len(tasks.tasks) != 3 {
		t.Fatalf("cascade deleted tasks: %d remain, want 3", len(tasks.tasks))
	}
	if tasks.tasks["t1"].AssigneeID != "m2" || tasks.tasks["t2"].AssigneeID != "m2" {
		t.Error("tasks not reassigned to fallback")
	}
	if tasks.tasks["t3"].AssigneeID != "m2" {
		t.Error("unrelated task changed assignee")
	}

	if len(sessions.sessions) != 1 {
		t.Errorf("sessions remaining = %d, want 1", len(sessions.sessions))
	}
	if _, ok := sessions.sessions["s2"]; !ok {
		t.Error("session for surviving member was deleted")
	}
	if len(ptl.reports) != 0 {
		t.Errorf("ptl reports remaining = %d, want 0", len(ptl.reports))
	}
	if len(ff.records) != 0 {
		t.Errorf("feed forwards remaining = %d, want 0", len(ff.records))
	}
}

func TestExecuteDeleteMember_FallbackIsSelf(t *testing.T) {
	members, clients, tasks, sessions, ptl, ff := cascadeFixture()

	_, err := ExecuteDeleteMember(context.Background(), DeleteMemberInput{
		MemberID:           "m1",
		FallbackAssigneeID: "m1",
	}, DeleteMemberDeps{
		MemberStore:  members,
		ClientStore:  clients,
		Tasks:        tasks,
		Sessions:     sessions,
		PtlReports:   ptl,
		FeedForwards: ff,
	})
	if err != nil {
		t.Fatalf("ExecuteDeleteMember() error = %v", err)
	}

	// A self-referencing fallback leaves the tasks unassigned.
	if got := tasks.tasks["t1"].AssigneeID; got != "" {
		t.Errorf("t1 assignee = %q, want empty", got)
	}
	if got := tasks.tasks["t2"].AssigneeID; got != "" {
		t.Errorf("t2 assignee = %q, want empty", got)
	}
}

func TestExecuteDeleteMember_MissingMember(t *testing.T) {
	members, clients, tasks, sessions, ptl, ff := cascadeFixture()

	_, err := ExecuteDeleteMember(context.Background(), DeleteMemberInput{MemberID: "ghost"}, DeleteMemberDeps{
		MemberStore:  members,
		ClientStore:  clients,
		Tasks:        tasks,
		Sessions:     sessions,
		PtlReports:   ptl,
		FeedForwards: ff,
	})
	if err == nil {
		t.Fatal("expected error for unknown member")
	}
	if len(members.members) != 2 || len(tasks.tasks) != 3 || len(sessions.sessions) != 2 {
		t.Error("failed delete mutated stores")
	}
}
