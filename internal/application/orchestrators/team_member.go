package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"opsdesk/internal/domain/teammember"
)

// MemberStore defines the store interface needed by the member orchestrators.
type MemberStore interface {
	GetByID(ctx context.Context, id string) (teammember.TeamMember, error)
	Save(ctx context.Context, m teammember.TeamMember) error
	Delete(ctx context.Context, id string) error
}

// CreateMemberInput carries input for the create orchestrator.
type CreateMemberInput struct {
	Name   string
	Role   string
	Email  string
	Skills []string
}

// CreateMemberDeps holds dependencies for CreateMember.
type CreateMemberDeps struct {
	MemberStore MemberStore
	GenerateID  func() string
}

// ExecuteCreateMember creates a new team member.
// PRE: Name is non-empty; Email contains '@'
// POST: Member is persisted with a fresh ID and on-site status
func ExecuteCreateMember(ctx context.Context, input CreateMemberInput, deps CreateMemberDeps) (teammember.TeamMember, error) {
	m := teammember.TeamMember{
		ID:     deps.GenerateID(),
		Name:   input.Name,
		Role:   input.Role,
		Email:  input.Email,
		Skills: input.Skills,
		HomeOffice: teammember.HomeOffice{
			Status: teammember.HomeOfficeOnSite,
		},
	}
	if err := m.Validate(); err != nil {
		return teammember.TeamMember{}, err
	}
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return teammember.TeamMember{}, err
	}

	slog.Info("member_event", "event", "member_created", "member_id", m.ID, "name", m.Name)
	return m, nil
}

// UpdateMemberInput carries the replacement state for a member.
type UpdateMemberInput struct {
	MemberID       string
	Name           string
	Role           string
	Email          string
	Skills         []string
	AssignedKpiIDs *[]string
}

// UpdateMemberDeps holds dependencies for UpdateMember.
type UpdateMemberDeps struct {
	MemberStore MemberStore
}

// ExecuteUpdateMember updates a member's editable fields.
// PRE: MemberID names an existing member; new state validates
// POST: Member is persisted; home office state is untouched
// INVARIANT: applying the same input twice yields the same stored state
func ExecuteUpdateMember(ctx context.Context, input UpdateMemberInput, deps UpdateMemberDeps) (teammember.TeamMember, error) {
	if input.MemberID == "" {
		return teammember.TeamMember{}, errors.New("member ID is required")
	}

	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return teammember.TeamMember{}, err
	}

	m.Name = input.Name
	m.Role = input.Role
	m.Email = input.Email
	m.Skills = input.Skills
	if input.AssignedKpiIDs != nil {
		m.AssignedKpiIDs = *input.AssignedKpiIDs
	}

	if err := m.Validate(); err != nil {
		return teammember.TeamMember{}, err
	}
	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return teammember.TeamMember{}, err
	}

	slog.Info("member_event", "event", "member_updated", "member_id", m.ID)
	return m, nil
}

// HomeOfficeInput carries input for the home office transitions.
type HomeOfficeInput struct {
	MemberID string
	ClientID string // required for request
	Action   string // "request", "approve", or "revoke"
}

// HomeOfficeDeps holds dependencies for the home office orchestrator.
type HomeOfficeDeps struct {
	MemberStore MemberStore
	Now         func() time.Time
}

// ExecuteHomeOffice applies a remote-work transition to a member.
// PRE: MemberID names an existing member; Action is a known transition
// POST: HomeOffice state reflects the transition
func ExecuteHomeOffice(ctx context.Context, input HomeOfficeInput, deps HomeOfficeDeps) (teammember.TeamMember, error) {
	if input.MemberID == "" {
		return teammember.TeamMember{}, errors.New("member ID is required")
	}

	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return teammember.TeamMember{}, err
	}

	switch input.Action {
	case "request":
		err = m.RequestHomeOffice(input.ClientID)
	case "approve":
		err = m.ApproveHomeOffice(deps.Now())
	case "revoke":
		m.RevokeHomeOffice()
	default:
		return teammember.TeamMember{}, errors.New("unknown home office action")
	}
	if err != nil {
		return teammember.TeamMember{}, err
	}

	if err := deps.MemberStore.Save(ctx, m); err != nil {
		return teammember.TeamMember{}, err
	}

	slog.Info("member_event", "event", "home_office_"+input.Action, "member_id", m.ID)
	return m, nil
}
