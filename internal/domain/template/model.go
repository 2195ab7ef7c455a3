package template

import (
	"errors"
	"strings"
	"time"
)

// Category constants. Each category is a variant of the template union
// and carries its own extra fields.
const (
	CategoryEmail    = "email"
	CategoryMessage  = "message"
	CategoryITTicket = "it_ticket"
	CategoryReport   = "report"
)

// Domain errors.
var (
	ErrEmptyName       = errors.New("template name cannot be empty")
	ErrEmptyContent    = errors.New("template content cannot be empty")
	ErrInvalidCategory = errors.New("template category must be 'email', 'message', 'it_ticket', or 'report'")
	ErrMissingSubject  = errors.New("email templates require a subject")
)

// Template is a reusable text snippet. Category decides which of the
// variant fields are meaningful: Subject for email, TicketPriority for
// IT tickets, ReportFields for reports.
type Template struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Category       string    `json:"category"`
	Content        string    `json:"content"`
	Tags           []string  `json:"tags"`
	Subject        string    `json:"subject,omitempty"`
	TicketPriority string    `json:"ticket_priority,omitempty"`
	ReportFields   []string  `json:"report_fields,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Validate checks if the Template has valid data.
// PRE: Template struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: variant fields match Category
func (t *Template) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(t.Content) == "" {
		return ErrEmptyContent
	}
	if !ValidCategory(t.Category) {
		return ErrInvalidCategory
	}
	if t.Category == CategoryEmail && strings.TrimSpace(t.Subject) == "" {
		return ErrMissingSubject
	}
	return nil
}

// Touch stamps UpdatedAt. Called on every update so consumers can sort
// by recency.
func (t *Template) Touch(at time.Time) {
	t.UpdatedAt = at
}

// ValidCategory reports whether c is a known template category.
func ValidCategory(c string) bool {
	return c == CategoryEmail || c == CategoryMessage || c == CategoryITTicket || c == CategoryReport
}
