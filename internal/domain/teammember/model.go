package teammember

import (
	"errors"
	"strings"
	"time"
)

// Home office status constants.
const (
	HomeOfficeOnSite   = "on_site"
	HomeOfficePending  = "pending"
	HomeOfficeApproved = "approved"
	HomeOfficeRevoked  = "revoked"
)

// Domain errors.
var (
	ErrEmptyName       = errors.New("team member name cannot be empty")
	ErrInvalidEmail    = errors.New("team member email must be valid")
	ErrAlreadyApproved = errors.New("home office is already approved")
	ErrNotPending      = errors.New("home office approval is not pending")
)

// HomeOffice describes remote-work approval for a client engagement.
type HomeOffice struct {
	Status     string    `json:"status"`
	ClientID   string    `json:"client_id"`
	ApprovedAt time.Time `json:"approved_at"`
}

// TeamMember holds state for one staff member.
type TeamMember struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Role           string     `json:"role"`
	Email          string     `json:"email"`
	Skills         []string   `json:"skills"`
	AssignedKpiIDs []string   `json:"assigned_kpi_ids"`
	HomeOffice     HomeOffice `json:"home_office"`
}

// Validate checks if the TeamMember has valid data.
// PRE: TeamMember struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Name non-empty, Email contains '@', HomeOffice.Status is known
func (m *TeamMember) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return ErrEmptyName
	}
	if !strings.Contains(m.Email, "@") {
		return ErrInvalidEmail
	}
	if m.HomeOffice.Status != "" && !validHomeOfficeStatus(m.HomeOffice.Status) {
		return errors.New("home office status must be 'on_site', 'pending', 'approved', or 'revoked'")
	}
	return nil
}

// RequestHomeOffice marks a pending remote-work request for a client.
// PRE: member is not already approved for remote work
// POST: HomeOffice.Status is pending, scoped to clientID
func (m *TeamMember) RequestHomeOffice(clientID string) error {
	if m.HomeOffice.Status == HomeOfficeApproved {
		return ErrAlreadyApproved
	}
	m.HomeOffice = HomeOffice{Status: HomeOfficePending, ClientID: clientID}
	return nil
}

// ApproveHomeOffice approves a pending remote-work request.
// PRE: HomeOffice.Status is pending
// POST: Status is approved, ApprovedAt is set
func (m *TeamMember) ApproveHomeOffice(at time.Time) error {
	if m.HomeOffice.Status != HomeOfficePending {
		return ErrNotPending
	}
	m.HomeOffice.Status = HomeOfficeApproved
	m.HomeOffice.ApprovedAt = at
	return nil
}

// RevokeHomeOffice withdraws an existing approval.
// POST: Status is revoked; ClientID is retained for the audit trail
func (m *TeamMember) RevokeHomeOffice() {
	m.HomeOffice.Status = HomeOfficeRevoked
}

// HasSkill reports whether the member lists the given skill
// (case-insensitive).
func (m *TeamMember) HasSkill(skill string) bool {
	for _, s := range m.Skills {
		if strings.EqualFold(s, skill) {
			return true
		}
	}
	return false
}

func validHomeOfficeStatus(s string) bool {
	return s == HomeOfficeOnSite || s == HomeOfficePending || s == HomeOfficeApproved || s == HomeOfficeRevoked
}
