package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"opsdesk/internal/domain/template"
)

// TemplateStore defines the store interface needed by the template orchestrators.
type TemplateStore interface {
	GetByID(ctx context.Context, id string) (template.Template, error)
	Save(ctx context.Context, t template.Template) error
	Delete(ctx context.Context, id string) error
}

// CreateTemplateInput carries input for the create orchestrator.
type CreateTemplateInput struct {
	Name           string
	Category       string
	Content        string
	Tags           []string
	Subject        string
	TicketPriority string
	ReportFields   []string
}

// CreateTemplateDeps holds dependencies for CreateTemplate.
type CreateTemplateDeps struct {
	TemplateStore TemplateStore
	GenerateID    func() string
	Now           func() time.Time
}

// ExecuteCreateTemplate creates a new template.
// PRE: Name and Content are non-empty; variant fields match Category
// POST: Template is persisted with creation and update stamps set
func ExecuteCreateTemplate(ctx context.Context, input CreateTemplateInput, deps CreateTemplateDeps) (template.Template, error) {
	now := deps.Now()
	t := template.Template{
		ID:             deps.GenerateID(),
		Name:           input.Name,
		Category:       input.Category,
		Content:        input.Content,
		Tags:           input.Tags,
		Subject:        input.Subject,
		TicketPriority: input.TicketPriority,
		ReportFields:   input.ReportFields,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := t.Validate(); err != nil {
		return template.Template{}, err
	}
	if err := deps.TemplateStore.Save(ctx, t); err != nil {
		return template.Template{}, err
	}

	slog.Info("template_event", "event", "template_created", "template_id", t.ID, "category", t.Category)
	return t, nil
}

// UpdateTemplateInput carries the replacement state for a template.
type UpdateTemplateInput struct {
	TemplateID     string
	Name           string
	Category       string
	Content        string
	Tags           []string
	Subject        string
	TicketPriority string
	ReportFields   []string
}

// UpdateTemplateDeps holds dependencies for UpdateTemplate.
type UpdateTemplateDeps struct {
	TemplateStore TemplateStore
	Now           func() time.Time
}

// ExecuteUpdateTemplate updates a template's editable fields.
// PRE: TemplateID names an existing template; new state validates
// POST: Template is persisted with a fresh update stamp
func ExecuteUpdateTemplate(ctx context.Context, input UpdateTemplateInput, deps UpdateTemplateDeps) (template.Template, error) {
	if input.TemplateID == "" {
		return template.Template{}, errors.New("template ID is required")
	}

	t, err := deps.TemplateStore.GetByID(ctx, input.TemplateID)
	if err != nil {
		return template.Template{}, err
	}

	t.Name = input.Name
	t.Category = input.Category
	t.Content = input.Content
	t.Tags = input.Tags
	t.Subject = input.Subject
	t.TicketPriority = input.TicketPriority
	t.ReportFields = input.ReportFields
	t.Touch(deps.Now())

	if err := t.Validate(); err != nil {
		return template.Template{}, err
	}
	if err := deps.TemplateStore.Save(ctx, t); err != nil {
		return template.Template{}, err
	}

	slog.Info("template_event", "event", "template_updated", "template_id", t.ID)
	return t, nil
}

// DeleteTemplateInput carries input for the delete orchestrator.
type DeleteTemplateInput struct {
	TemplateID string
}

// DeleteTemplateDeps holds dependencies for DeleteTemplate.
type DeleteTemplateDeps struct {
	TemplateStore TemplateStore
}

// ExecuteDeleteTemplate removes a template. Nothing references
// templates, so no cascade is needed.
// PRE: TemplateID names an existing template
// POST: Template row is gone
func ExecuteDeleteTemplate(ctx context.Context, input DeleteTemplateInput, deps DeleteTemplateDeps) error {
	if input.TemplateID == "" {
		return errors.New("template ID is required")
	}
	if _, err := deps.TemplateStore.GetByID(ctx, input.TemplateID); err != nil {
		return err
	}
	if err := deps.TemplateStore.Delete(ctx, input.TemplateID); err != nil {
		return err
	}

	slog.Info("template_event", "event", "template_deleted", "template_id", input.TemplateID)
	return nil
}
