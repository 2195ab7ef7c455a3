package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"opsdesk/internal/adapters/ai"
	"opsdesk/internal/domain/task"
)

// draftSystemPrompt frames every drafting request. The model proposes;
// a person decides what, if anything, to apply.
const draftSystemPrompt = "You are an assistant for a BPO operations dashboard. " +
	"Produce concise, professional drafts for an operations manager to review. " +
	"Respond with JSON only, matching the requested shape exactly."

// DraftClientSummaryInput carries input for the client summary draft.
type DraftClientSummaryInput struct {
	ClientID string
}

// DraftClientSummaryDeps holds dependencies for DraftClientSummary.
type DraftClientSummaryDeps struct {
	ClientStore ClientStore
	Completer   ai.Completer
}

// ClientSummaryDraft is the decoded model proposal.
type ClientSummaryDraft struct {
	Summary    string   `json:"summary"`
	Highlights []string `json:"highlights"`
	Risks      []string `json:"risks"`
}

// ExecuteDraftClientSummary asks the model to summarize a client's
// recent pulse log.
// PRE: ClientID names an existing client
// POST: Returns a draft; nothing is persisted
func ExecuteDraftClientSummary(ctx context.Context, input DraftClientSummaryInput, deps DraftClientSummaryDeps) (ClientSummaryDraft, error) {
	if input.ClientID == "" {
		return ClientSummaryDraft{}, errors.New("client ID is required")
	}

	c, err := deps.ClientStore.GetByID(ctx, input.ClientID)
	if err != nil {
		return ClientSummaryDraft{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Client: %s (status: %s)\n", c.Name, c.Status)
	if c.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", c.Notes)
	}
	b.WriteString("Recent pulse log entries, newest last:\n")
	entries := c.PulseLog
	if len(entries) > 20 {
		entries = entries[len(entries)-20:]
	}
	for _, p := range entries {
		fmt.Fprintf(&b, "- %s: %s\n", p.Date.Format("2006-01-02"), p.Note)
	}
	b.WriteString("\nSummarize the engagement's current state. Respond as " +
		`{"summary": string, "highlights": [string], "risks": [string]}.`)

	raw, err := deps.Completer.Complete(ctx, ai.Request{
		System:    draftSystemPrompt,
		Prompt:    b.String(),
		WantsJSON: true,
	})
	if err != nil {
		return ClientSummaryDraft{}, err
	}

	var draft ClientSummaryDraft
	if err := ai.DecodeJSON(raw, &draft); err != nil {
		return ClientSummaryDraft{}, err
	}

	slog.Info("ai_event", "event", "client_summary_drafted", "client_id", c.ID)
	return draft, nil
}

// SuggestTaskPriorityInput carries input for the priority suggestion.
type SuggestTaskPriorityInput struct {
	TaskID string
}

// SuggestTaskPriorityDeps holds dependencies for SuggestTaskPriority.
type SuggestTaskPriorityDeps struct {
	TaskStore TaskStore
	Completer ai.Completer
}

// TaskPriorityDraft is the decoded model proposal.
type TaskPriorityDraft struct {
	Priority string `json:"priority"`
	Reason   string `json:"reason"`
}

// ExecuteSuggestTaskPriority asks the model to propose a priority for a
// task. An out-of-vocabulary suggestion is rejected here so callers
// only ever see a valid priority.
// PRE: TaskID names an existing task
// POST: Returns a draft with a known priority; nothing is persisted
func ExecuteSuggestTaskPriority(ctx context.Context, input SuggestTaskPriorityInput, deps SuggestTaskPriorityDeps) (TaskPriorityDraft, error) {
	if input.TaskID == "" {
		return TaskPriorityDraft{}, errors.New("task ID is required")
	}

	t, err := deps.TaskStore.GetByID(ctx, input.TaskID)
	if err != nil {
		return TaskPriorityDraft{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Task: %s\n", t.Title)
	if t.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", t.Description)
	}
	if !t.DueDate.IsZero() {
		fmt.Fprintf(&b, "Due: %s\n", t.DueDate.Format("2006-01-02"))
	}
	fmt.Fprintf(&b, "Current priority: %s\n", t.Priority)
	b.WriteString("\nSuggest a priority from: low, medium, high, urgent. Respond as " +
		`{"priority": string, "reason": string}.`)

	raw, err := deps.Completer.Complete(ctx, ai.Request{
		System:    draftSystemPrompt,
		Prompt:    b.String(),
		WantsJSON: true,
	})
	if err != nil {
		return TaskPriorityDraft{}, err
	}

	var draft TaskPriorityDraft
	if err := ai.DecodeJSON(raw, &draft); err != nil {
		return TaskPriorityDraft{}, err
	}
	if !task.ValidPriority(draft.Priority) {
		return TaskPriorityDraft{}, &ai.DecodeError{Raw: raw, Err: fmt.Errorf("unknown priority %q", draft.Priority)}
	}

	slog.Info("ai_event", "event", "task_priority_drafted", "task_id", t.ID, "priority", draft.Priority)
	return draft, nil
}

// ExpandSubtasksInput carries input for the sub-task expansion.
type ExpandSubtasksInput struct {
	TaskID string
}

// ExpandSubtasksDeps holds dependencies for ExpandSubtasks.
type ExpandSubtasksDeps struct {
	TaskStore TaskStore
	Completer ai.Completer
}

// SubtasksDraft is the decoded model proposal.
type SubtasksDraft struct {
	Subtasks []string `json:"subtasks"`
}

// ExecuteExpandSubtasks asks the model to break a task into sub-tasks.
// PRE: TaskID names an existing task
// POST: Returns a non-empty draft list; nothing is persisted
func ExecuteExpandSubtasks(ctx context.Context, input ExpandSubtasksInput, deps ExpandSubtasksDeps) (SubtasksDraft, error) {
	if input.TaskID == "" {
		return SubtasksDraft{}, errors.New("task ID is required")
	}

	t, err := deps.TaskStore.GetByID(ctx, input.TaskID)
	if err != nil {
		return SubtasksDraft{}, err
	}

	prompt := fmt.Sprintf("Task: %s\nDescription: %s\n\nBreak this into 3 to 7 concrete sub-tasks. Respond as "+
		`{"subtasks": [string]}.`, t.Title, t.Description)

	raw, err := deps.Completer.Complete(ctx, ai.Request{
		System:    draftSystemPrompt,
		Prompt:    prompt,
		WantsJSON: true,
	})
	if err != nil {
		return SubtasksDraft{}, err
	}

	var draft SubtasksDraft
	if err := ai.DecodeJSON(raw, &draft); err != nil {
		return SubtasksDraft{}, err
	}
	if len(draft.Subtasks) == 0 {
		return SubtasksDraft{}, &ai.DecodeError{Raw: raw, Err: errors.New("no subtasks in response")}
	}

	slog.Info("ai_event", "event", "subtasks_drafted", "task_id", t.ID, "count", len(draft.Subtasks))
	return draft, nil
}

// OptimizeTemplateInput carries input for the template rewrite.
type OptimizeTemplateInput struct {
	TemplateID string
	Goal       string // optional steer, e.g. "shorter" or "warmer tone"
}

// OptimizeTemplateDeps holds dependencies for OptimizeTemplate.
type OptimizeTemplateDeps struct {
	TemplateStore TemplateStore
	Completer     ai.Completer
}

// TemplateDraft is the decoded model proposal.
type TemplateDraft struct {
	Subject string `json:"subject,omitempty"`
	Content string `json:"content"`
	Notes   string `json:"notes,omitempty"`
}

// ExecuteOptimizeTemplate asks the model to rewrite a template. The
// stored template is never changed; the caller decides whether to apply
// the draft through a normal update.
// PRE: TemplateID names an existing template
// POST: Returns a draft with non-empty content; nothing is persisted
func ExecuteOptimizeTemplate(ctx context.Context, input OptimizeTemplateInput, deps OptimizeTemplateDeps) (TemplateDraft, error) {
	if input.TemplateID == "" {
		return TemplateDraft{}, errors.New("template ID is required")
	}

	t, err := deps.TemplateStore.GetByID(ctx, input.TemplateID)
	if err != nil {
		return TemplateDraft{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Template category: %s\n", t.Category)
	if t.Subject != "" {
		fmt.Fprintf(&b, "Subject: %s\n", t.Subject)
	}
	fmt.Fprintf(&b, "Content:\n%s\n", t.Content)
	goal := input.Goal
	if goal == "" {
		goal = "clearer and more professional"
	}
	fmt.Fprintf(&b, "\nRewrite it to be %s. Keep any {{placeholders}} intact. Respond as "+
		`{"subject": string, "content": string, "notes": string}.`, goal)

	raw, err := deps.Completer.Complete(ctx, ai.Request{
		System:    draftSystemPrompt,
		Prompt:    b.String(),
		WantsJSON: true,
	})
	if err != nil {
		return TemplateDraft{}, err
	}

	var draft TemplateDraft
	if err := ai.DecodeJSON(raw, &draft); err != nil {
		return TemplateDraft{}, err
	}
	if draft.Content == "" {
		return TemplateDraft{}, &ai.DecodeError{Raw: raw, Err: errors.New("empty content in response")}
	}

	slog.Info("ai_event", "event", "template_drafted", "template_id", t.ID)
	return draft, nil
}
