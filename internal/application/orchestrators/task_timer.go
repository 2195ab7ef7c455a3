package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrTimerNotRunning is returned when stopping an idle timer.
var ErrTimerNotRunning = errors.New("no task timer is running")

// TimerStatus describes the current timer slot.
type TimerStatus struct {
	Running        bool      `json:"running"`
	TaskID         string    `json:"task_id,omitempty"`
	StartedAt      time.Time `json:"started_at,omitempty"`
	RunningSeconds int       `json:"running_seconds"`
}

// TaskTimer tracks elapsed work time for at most one task at a time.
// Starting a timer while another task's timer runs flushes the running
// one first, so seconds are never lost or double-counted.
type TaskTimer struct {
	mu        sync.Mutex
	taskID    string
	startedAt time.Time

	store TaskStore
	now   func() time.Time
}

// NewTaskTimer creates an idle timer bound to a task store.
func NewTaskTimer(store TaskStore, now func() time.Time) *TaskTimer {
	if now == nil {
		now = time.Now
	}
	return &TaskTimer{store: store, now: now}
}

// Start begins timing a task, flushing any running timer first.
// PRE: taskID names an existing task
// POST: The slot holds taskID; a previously running task has its
// seconds persisted
// INVARIANT: at most one task accumulates time at any instant
func (tt *TaskTimer) Start(ctx context.Context, taskID string) (TimerStatus, error) {
	if taskID == "" {
		return TimerStatus{}, errors.New("task ID is required")
	}

	tt.mu.Lock()
	defer tt.mu.Unlock()

	if tt.taskID == taskID {
		return tt.statusLocked(), nil
	}

	if tt.taskID != "" {
		if err := tt.flushLocked(ctx); err != nil {
			return TimerStatus{}, err
		}
	}

	// Reject unknown tasks before occupying the slot.
	if _, err := tt.store.GetByID(ctx, taskID); err != nil {
		return TimerStatus{}, err
	}

	tt.taskID = taskID
	tt.startedAt = tt.now()
	slog.Info("task_event", "event", "timer_started", "task_id", taskID)
	return tt.statusLocked(), nil
}

// Stop halts the running timer and persists the elapsed seconds.
// PRE: a timer is running
// POST: The slot is empty; the task's ElapsedSeconds includes this run
func (tt *TaskTimer) Stop(ctx context.Context) (TimerStatus, error) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if tt.taskID == "" {
		return TimerStatus{}, ErrTimerNotRunning
	}
	if err := tt.flushLocked(ctx); err != nil {
		return TimerStatus{}, err
	}
	return tt.statusLocked(), nil
}

// Drain empties the slot without persisting, returning the unflushed
// seconds for the named task. Used when completing a task so the final
// run is folded in by the complete orchestrator instead.
// POST: The slot is empty when it held taskID
func (tt *TaskTimer) Drain(taskID string) int {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if tt.taskID != taskID {
		return 0
	}
	seconds := int(tt.now().Sub(tt.startedAt).Seconds())
	tt.taskID = ""
	tt.startedAt = time.Time{}
	return seconds
}

// Status reports the current slot without mutating it.
func (tt *TaskTimer) Status() TimerStatus {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	return tt.statusLocked()
}

// flushLocked persists the running task's seconds and empties the slot.
// Callers must hold mu.
func (tt *TaskTimer) flushLocked(ctx context.Context) error {
	seconds := int(tt.now().Sub(tt.startedAt).Seconds())

	t, err := tt.store.GetByID(ctx, tt.taskID)
	if err != nil {
		return err
	}
	t.ElapsedSeconds += seconds
	if err := tt.store.Save(ctx, t); err != nil {
		return err
	}

	slog.Info("task_event", "event", "timer_flushed", "task_id", tt.taskID, "seconds", seconds)
	tt.taskID = ""
	tt.startedAt = time.Time{}
	return nil
}

// statusLocked builds a TimerStatus. Callers must hold mu.
func (tt *TaskTimer) statusLocked() TimerStatus {
	if tt.taskID == "" {
		return TimerStatus{}
	}
	return TimerStatus{
		Running:        true,
		TaskID:         tt.taskID,
		StartedAt:      tt.startedAt,
		RunningSeconds: int(tt.now().Sub(tt.startedAt).Seconds()),
	}
}
