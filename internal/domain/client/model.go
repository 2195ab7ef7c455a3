package client

import (
	"errors"
	"strings"
	"time"
)

// Max length constants for user-editable fields.
const (
	MaxNameLength = 120
)

// Status constants describe overall engagement health.
const (
	StatusHealthy  = "healthy"
	StatusAtRisk   = "at_risk"
	StatusCritical = "critical"
)

// SOP format constants for the audit sub-record.
const (
	SopFormatNone     = "none"
	SopFormatDocument = "document"
	SopFormatVideo    = "video"
	SopFormatMixed    = "mixed"
)

// KPI reporting cadence constants.
const (
	CadenceNone      = "none"
	CadenceWeekly    = "weekly"
	CadenceMonthly   = "monthly"
	CadenceQuarterly = "quarterly"
)

// Folder organization status constants.
const (
	FoldersOrganized  = "organized"
	FoldersPartial    = "partial"
	FoldersDisordered = "disordered"
)

// Domain errors.
var (
	ErrEmptyName     = errors.New("client name cannot be empty")
	ErrInvalidStatus = errors.New("client status must be 'healthy', 'at_risk', or 'critical'")
	ErrEmptyPulse    = errors.New("pulse note cannot be empty")
)

// PulseEntry is one append-only interaction note on a client.
type PulseEntry struct {
	ID       string    `json:"id"`
	Date     time.Time `json:"date"`
	Note     string    `json:"note"`
	LoggedBy string    `json:"logged_by"`
}

// EmailEntry is one append-only record of an email sent to a client.
type EmailEntry struct {
	ID        string    `json:"id"`
	SentAt    time.Time `json:"sent_at"`
	Subject   string    `json:"subject"`
	Snippet   string    `json:"snippet"`
	MessageID string    `json:"message_id"`
}

// Audit captures the operational-readiness review of an engagement.
type Audit struct {
	SopExists    bool            `json:"sop_exists"`
	SopFormat    string          `json:"sop_format"`
	SopLink      string          `json:"sop_link"`
	KpiCadence   string          `json:"kpi_cadence"`
	DocChecklist map[string]bool `json:"doc_checklist"`
	FolderStatus string          `json:"folder_status"`
	LastReviewed time.Time       `json:"last_reviewed"`
}

// Client holds state for one client engagement.
type Client struct {
	ID                string       `json:"id"`
	Name              string       `json:"name"`
	Status            string       `json:"status"`
	ContactPerson     string       `json:"contact_person"`
	ContactEmail      string       `json:"contact_email"`
	Notes             string       `json:"notes"`
	Tags              []string     `json:"tags"`
	AssignedMemberIDs []string     `json:"assigned_member_ids"`
	PulseLog          []PulseEntry `json:"pulse_log"`
	EmailLog          []EmailEntry `json:"email_log"`
	Audit             Audit        `json:"audit"`
}

// Validate checks if the Client has valid data.
// PRE: Client struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name non-empty, Status is a known constant
func (c *Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	if len(c.Name) > MaxNameLength {
		return errors.New("client name cannot exceed 120 characters")
	}
	if c.Status != StatusHealthy && c.Status != StatusAtRisk && c.Status != StatusCritical {
		return ErrInvalidStatus
	}
	if c.Audit.SopFormat != "" && !validSopFormat(c.Audit.SopFormat) {
		return errors.New("sop format must be 'none', 'document', 'video', or 'mixed'")
	}
	if c.Audit.KpiCadence != "" && !validCadence(c.Audit.KpiCadence) {
		return errors.New("kpi cadence must be 'none', 'weekly', 'monthly', or 'quarterly'")
	}
	return nil
}

// AddPulse appends an interaction note to the pulse log.
// PRE: note is non-empty; id is a fresh entity ID
// POST: entry appended; existing entries untouched
func (c *Client) AddPulse(id, note, loggedBy string, at time.Time) error {
	if strings.TrimSpace(note) == "" {
		return ErrEmptyPulse
	}
	c.PulseLog = append(c.PulseLog, PulseEntry{
		ID:       id,
		Date:     at,
		Note:     note,
		LoggedBy: loggedBy,
	})
	return nil
}

// AddEmail appends a sent-email record to the email log.
// PRE: id is a fresh entity ID
// POST: entry appended; existing entries untouched
func (c *Client) AddEmail(id, subject, snippet, messageID string, at time.Time) {
	c.EmailLog = append(c.EmailLog, EmailEntry{
		ID:        id,
		SentAt:    at,
		Subject:   subject,
		Snippet:   snippet,
		MessageID: messageID,
	})
}

// RemoveAssignedMember drops a team member ID from the assignment list.
// POST: returns true if the ID was present and removed
func (c *Client) RemoveAssignedMember(memberID string) bool {
	for i, id := range c.AssignedMemberIDs {
		if id == memberID {
			c.AssignedMemberIDs = append(c.AssignedMemberIDs[:i], c.AssignedMemberIDs[i+1:]...)
			return true
		}
	}
	return false
}

// IsCritical returns true if the engagement is in the critical state.
func (c *Client) IsCritical() bool {
	return c.Status == StatusCritical
}

func validSopFormat(f string) bool {
	return f == SopFormatNone || f == SopFormatDocument || f == SopFormatVideo || f == SopFormatMixed
}

func validCadence(c string) bool {
	return c == CadenceNone || c == CadenceWeekly || c == CadenceMonthly || c == CadenceQuarterly
}
