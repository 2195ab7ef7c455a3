package coaching

import (
	"errors"
	"strings"
	"time"
)

// Risk level constants for PTL risk assessments.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// Domain errors.
var (
	ErrEmptyMemberID     = errors.New("team member ID is required")
	ErrEmptySupervisorID = errors.New("supervisor ID is required")
	ErrInvalidRisk       = errors.New("risk level must be 'low', 'medium', or 'high'")
)

// RiskAssessment is the structured risk sub-record on a PTL report.
type RiskAssessment struct {
	Level      string   `json:"level"`
	Factors    []string `json:"factors"`
	Mitigation string   `json:"mitigation"`
}

// ActionItem is one agreed follow-up on a coaching record.
type ActionItem struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Done        bool   `json:"done"`
}

// OneOnOneSession is an append-only record of a supervisor/member
// one-on-one.
type OneOnOneSession struct {
	ID           string       `json:"id"`
	MemberID     string       `json:"member_id"`
	SupervisorID string       `json:"supervisor_id"`
	Date         time.Time    `json:"date"`
	Summary      string       `json:"summary"`
	ActionItems  []ActionItem `json:"action_items"`
}

// PtlReport is a performance/turnover-likelihood write-up for a member.
type PtlReport struct {
	ID           string          `json:"id"`
	MemberID     string          `json:"member_id"`
	SupervisorID string          `json:"supervisor_id"`
	Date         time.Time       `json:"date"`
	Summary      string          `json:"summary"`
	Risk         *RiskAssessment `json:"risk,omitempty"`
}

// FeedForward captures a coaching session's stated feelings, reasons,
// and agreed actions.
type FeedForward struct {
	ID           string       `json:"id"`
	MemberID     string       `json:"member_id"`
	SupervisorID string       `json:"supervisor_id"`
	Date         time.Time    `json:"date"`
	Feelings     string       `json:"feelings"`
	Reasons      string       `json:"reasons"`
	Actions      string       `json:"actions"`
	ActionItems  []ActionItem `json:"action_items"`
}

// Validate checks if the OneOnOneSession has valid data.
// PRE: struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (s *OneOnOneSession) Validate() error {
	return validateRefs(s.MemberID, s.SupervisorID)
}

// Validate checks if the PtlReport has valid data.
// PRE: struct is initialized
// POST: Returns error if validation fails, nil otherwise
// INVARIANT: Risk.Level, when present, is a known constant
func (r *PtlReport) Validate() error {
	if err := validateRefs(r.MemberID, r.SupervisorID); err != nil {
		return err
	}
	if r.Risk != nil && !ValidRiskLevel(r.Risk.Level) {
		return ErrInvalidRisk
	}
	return nil
}

// Validate checks if the FeedForward has valid data.
// PRE: struct is initialized
// POST: Returns error if validation fails, nil otherwise
func (f *FeedForward) Validate() error {
	return validateRefs(f.MemberID, f.SupervisorID)
}

// ValidRiskLevel reports whether l is a known risk level.
func ValidRiskLevel(l string) bool {
	return l == RiskLow || l == RiskMedium || l == RiskHigh
}

func validateRefs(memberID, supervisorID string) error {
	if strings.TrimSpace(memberID) == "" {
		return ErrEmptyMemberID
	}
	if strings.TrimSpace(supervisorID) == "" {
		return ErrEmptySupervisorID
	}
	return nil
}
