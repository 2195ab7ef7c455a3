package task

import (
	"errors"
	"strings"
	"time"
)

// Status constants for the task lifecycle.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusOverdue    = "overdue"
	StatusCompleted  = "completed"
)

// Priority constants.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
	PriorityUrgent = "urgent"
)

// Domain errors.
var (
	ErrEmptyTitle       = errors.New("task title cannot be empty")
	ErrInvalidStatus    = errors.New("task status must be 'pending', 'in_progress', 'overdue', or 'completed'")
	ErrInvalidPriority  = errors.New("task priority must be 'low', 'medium', 'high', or 'urgent'")
	ErrAlreadyCompleted = errors.New("task is already completed")
)

// Task holds state for one unit of work. Assignment is by team member
// ID; the client reference is optional.
type Task struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Status         string    `json:"status"`
	DueDate        time.Time `json:"due_date"`
	AssigneeID     string    `json:"assignee_id"`
	ClientID       string    `json:"client_id,omitempty"`
	Priority       string    `json:"priority"`
	ElapsedSeconds int       `json:"elapsed_seconds"`
}

// Validate checks if the Task has valid data.
// PRE: Task struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Title non-empty, Status and Priority are known constants
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if !ValidStatus(t.Status) {
		return ErrInvalidStatus
	}
	if !ValidPriority(t.Priority) {
		return ErrInvalidPriority
	}
	return nil
}

// Complete marks the task completed and folds in any unflushed timer
// seconds.
// PRE: task is not already completed
// POST: Status is completed, extraSeconds added to ElapsedSeconds
func (t *Task) Complete(extraSeconds int) error {
	if t.Status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	t.Status = StatusCompleted
	if extraSeconds > 0 {
		t.ElapsedSeconds += extraSeconds
	}
	return nil
}

// IsOverdue reports whether the task is past due and not completed.
// INVARIANT: Status field is not mutated
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Status == StatusCompleted {
		return false
	}
	return !t.DueDate.IsZero() && t.DueDate.Before(now)
}

// EffectiveStatus returns the status with the overdue state derived at
// read time rather than stored by a background sweep.
func (t *Task) EffectiveStatus(now time.Time) string {
	if t.IsOverdue(now) {
		return StatusOverdue
	}
	return t.Status
}

// ValidStatus reports whether s is a known task status.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusOverdue || s == StatusCompleted
}

// ValidPriority reports whether p is a known task priority.
func ValidPriority(p string) bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh || p == PriorityUrgent
}
