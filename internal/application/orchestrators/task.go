package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"opsdesk/internal/domain/task"
)

// TaskStore defines the store interface needed by the task orchestrators.
type TaskStore interface {
	GetByID(ctx context.Context, id string) (task.Task, error)
	Save(ctx context.Context, t task.Task) error
	Delete(ctx context.Context, id string) error
}

// CreateTaskInput carries input for the create orchestrator.
type CreateTaskInput struct {
	Title       string
	Description string
	DueDate     time.Time
	AssigneeID  string
	ClientID    string
	Priority    string
}

// CreateTaskDeps holds dependencies for CreateTask.
type CreateTaskDeps struct {
	TaskStore  TaskStore
	GenerateID func() string
}

// ExecuteCreateTask creates a new task in the pending state.
// PRE: Title is non-empty; Priority is a known constant (medium when blank)
// POST: Task is persisted with a fresh ID and zero elapsed time
func ExecuteCreateTask(ctx context.Context, input CreateTaskInput, deps CreateTaskDeps) (task.Task, error) {
	priority := input.Priority
	if priority == "" {
		priority = task.PriorityMedium
	}

	t := task.Task{
		ID:          deps.GenerateID(),
		Title:       input.Title,
		Description: input.Description,
		Status:      task.StatusPending,
		DueDate:     input.DueDate,
		AssigneeID:  input.AssigneeID,
		ClientID:    input.ClientID,
		Priority:    priority,
	}
	if err := t.Validate(); err != nil {
		return task.Task{}, err
	}
	if err := deps.TaskStore.Save(ctx, t); err != nil {
		return task.Task{}, err
	}

	slog.Info("task_event", "event", "task_created", "task_id", t.ID, "title", t.Title)
	return t, nil
}

// UpdateTaskInput carries the replacement state for a task.
type UpdateTaskInput struct {
	TaskID      string
	Title       string
	Description string
	Status      string
	DueDate     time.Time
	AssigneeID  string
	ClientID    string
	Priority    string
}

// UpdateTaskDeps holds dependencies for UpdateTask.
type UpdateTaskDeps struct {
	TaskStore TaskStore
}

// ExecuteUpdateTask updates a task's editable fields.
// PRE: TaskID names an existing task; new state validates
// POST: Task is persisted; ElapsedSeconds is untouched
// INVARIANT: applying the same input twice yields the same stored state
func ExecuteUpdateTask(ctx context.Context, input UpdateTaskInput, deps UpdateTaskDeps) (task.Task, error) {
	if input.TaskID == "" {
		return task.Task{}, errors.New("task ID is required")
	}

	t, err := deps.TaskStore.GetByID(ctx, input.TaskID)
	if err != nil {
		return task.Task{}, err
	}

	t.Title = input.Title
	t.Description = input.Description
	t.Status = input.Status
	t.DueDate = input.DueDate
	t.AssigneeID = input.AssigneeID
	t.ClientID = input.ClientID
	t.Priority = input.Priority

	if err := t.Validate(); err != nil {
		return task.Task{}, err
	}
	if err := deps.TaskStore.Save(ctx, t); err != nil {
		return task.Task{}, err
	}

	slog.Info("task_event", "event", "task_updated", "task_id", t.ID)
	return t, nil
}

// CompleteTaskInput carries input for the complete orchestrator.
// ExtraSeconds folds in timer seconds not yet flushed to the store.
type CompleteTaskInput struct {
	TaskID       string
	ExtraSeconds int
}

// CompleteTaskDeps holds dependencies for CompleteTask.
type CompleteTaskDeps struct {
	TaskStore TaskStore
}

// ExecuteCompleteTask marks a task completed.
// PRE: TaskID names an existing, not yet completed task
// POST: Status is completed; timer seconds are folded into ElapsedSeconds
func ExecuteCompleteTask(ctx context.Context, input CompleteTaskInput, deps CompleteTaskDeps) (task.Task, error) {
	if input.TaskID == "" {
		return task.Task{}, errors.New("task ID is required")
	}

	t, err := deps.TaskStore.GetByID(ctx, input.TaskID)
	if err != nil {
		return task.Task{}, err
	}
	if err := t.Complete(input.ExtraSeconds); err != nil {
		return task.Task{}, err
	}
	if err := deps.TaskStore.Save(ctx, t); err != nil {
		return task.Task{}, err
	}

	slog.Info("task_event", "event", "task_completed", "task_id", t.ID, "elapsed_seconds", t.ElapsedSeconds)
	return t, nil
}

// DeleteTaskInput carries input for the delete orchestrator.
type DeleteTaskInput struct {
	TaskID string
}

// DeleteTaskDeps holds dependencies for DeleteTask.
type DeleteTaskDeps struct {
	TaskStore TaskStore
}

// ExecuteDeleteTask removes a task. Tasks reference nothing that needs
// a cascade of its own.
// PRE: TaskID names an existing task
// POST: Task row is gone
func ExecuteDeleteTask(ctx context.Context, input DeleteTaskInput, deps DeleteTaskDeps) error {
	if input.TaskID == "" {
		return errors.New("task ID is required")
	}
	if _, err := deps.TaskStore.GetByID(ctx, input.TaskID); err != nil {
		return err
	}
	if err := deps.TaskStore.Delete(ctx, input.TaskID); err != nil {
		return err
	}

	slog.Info("task_event", "event", "task_deleted", "task_id", input.TaskID)
	return nil
}
