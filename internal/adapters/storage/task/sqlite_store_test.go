package task_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"opsdesk/internal/adapters/storage"
	store "opsdesk/internal/adapters/storage/task"
	domain "opsdesk/internal/domain/task"
)

func openTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("InitDB failed: %v", err)
	}
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("MigrateDB failed: %v", err)
	}
	return store.NewSQLiteStore(db)
}

// TestSQLiteStore_RoundTrip verifies optional fields survive a save/load cycle.
func TestSQLiteStore_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	due := time.Date(2026, 4, 1, 17, 0, 0, 0, time.UTC)
	entity := domain.Task{
		ID:             "t1",
		Title:          "Prepare QBR deck",
		Description:    "Slides for the quarterly review",
		Status:         domain.StatusInProgress,
		DueDate:        due,
		AssigneeID:     "tm-1",
		ClientID:       "c1",
		Priority:       domain.PriorityHigh,
		ElapsedSeconds: 1200,
	}
	if err := s.Save(ctx, entity); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.GetByID(ctx, "t1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.Title != entity.Title || got.ClientID != "c1" || got.ElapsedSeconds != 1200 {
		t.Errorf("fields mismatch: %+v", got)
	}
	if !got.DueDate.Equal(due) {
		t.Errorf("due date mismatch: %v", got.DueDate)
	}

	// No due date and no client reference round-trip as zero values.
	bare := domain.Task{ID: "t2", Title: "Untethered", Status: domain.StatusPending, Priority: domain.PriorityLow}
	if err := s.Save(ctx, bare); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err = s.GetByID(ctx, "t2")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.DueDate.IsZero() || got.ClientID != "" {
		t.Errorf("expected zero optional fields, got %+v", got)
	}
}

// TestSQLiteStore_ReassignAll verifies bulk reassignment moves only the
// named assignee's tasks.
func TestSQLiteStore_ReassignAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, task := range []domain.Task{
		{ID: "t1", Title: "a", Status: domain.StatusPending, Priority: domain.PriorityLow, AssigneeID: "tm-1"},
		{ID: "t2", Title: "b", Status: domain.StatusPending, Priority: domain.PriorityLow, AssigneeID: "tm-1"},
		{ID: "t3", Title: "c", Status: domain.StatusPending, Priority: domain.PriorityLow, AssigneeID: "tm-2"},
	} {
		if err := s.Save(ctx, task); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	moved, err := s.ReassignAll(ctx, "tm-1", "tm-9")
	if err != nil {
		t.Fatalf("ReassignAll failed: %v", err)
	}
	if moved != 2 {
		t.Errorf("moved = %d, want 2", moved)
	}

	remaining, err := s.List(ctx, store.ListFilter{AssigneeID: "tm-2"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != "t3" {
		t.Errorf("unrelated assignee touched: %v", remaining)
	}
}

// TestSQLiteStore_DetachClient verifies client references are cleared,
// not the tasks deleted.
func TestSQLiteStore_DetachClient(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, task := range []domain.Task{
		{ID: "t1", Title: "a", Status: domain.StatusPending, Priority: domain.PriorityLow, ClientID: "c1"},
		{ID: "t2", Title: "b", Status: domain.StatusPending, Priority: domain.PriorityLow, ClientID: "c2"},
	} {
		if err := s.Save(ctx, task); err != nil {
			t.Fatalf("Save failed: %v", err)
		}
	}

	detached, err := s.DetachClient(ctx, "c1")
	if err != nil {
		t.Fatalf("DetachClient failed: %v", err)
	}
	if detached != 1 {
		t.Errorf("detached = %d, want 1", detached)
	}

	got, err := s.GetByID(ctx, "t1")
	if err != nil {
		t.Fatalf("task deleted instead of detached: %v", err)
	}
	if got.ClientID != "" {
		t.Errorf("client reference not cleared: %q", got.ClientID)
	}

	other, err := s.GetByID(ctx, "t2")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if other.ClientID != "c2" {
		t.Errorf("unrelated task touched: %+v", other)
	}
}
