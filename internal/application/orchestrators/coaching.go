package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"opsdesk/internal/domain/coaching"
	"opsdesk/internal/domain/teammember"
)

// MemberLookup confirms referenced members exist before a coaching
// record is written.
type MemberLookup interface {
	GetByID(ctx context.Context, id string) (teammember.TeamMember, error)
}

// SessionWriter persists one-on-one sessions.
type SessionWriter interface {
	GetByID(ctx context.Context, id string) (coaching.OneOnOneSession, error)
	Save(ctx context.Context, s coaching.OneOnOneSession) error
	Delete(ctx context.Context, id string) error
}

// PtlWriter persists PTL reports.
type PtlWriter interface {
	GetByID(ctx context.Context, id string) (coaching.PtlReport, error)
	Save(ctx context.Context, r coaching.PtlReport) error
	Delete(ctx context.Context, id string) error
}

// FeedForwardWriter persists feed-forward records.
type FeedForwardWriter interface {
	GetByID(ctx context.Context, id string) (coaching.FeedForward, error)
	Save(ctx context.Context, f coaching.FeedForward) error
	Delete(ctx context.Context, id string) error
}

// checkMembers verifies both sides of a coaching record exist.
func checkMembers(ctx context.Context, members MemberLookup, memberID, supervisorID string) error {
	if _, err := members.GetByID(ctx, memberID); err != nil {
		return err
	}
	if _, err := members.GetByID(ctx, supervisorID); err != nil {
		return err
	}
	return nil
}

// RecordSessionInput carries input for the one-on-one orchestrator.
type RecordSessionInput struct {
	MemberID     string
	SupervisorID string
	Date         time.Time
	Summary      string
	ActionItems  []string
}

// RecordSessionDeps holds dependencies for RecordSession.
type RecordSessionDeps struct {
	Sessions   SessionWriter
	Members    MemberLookup
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteRecordSession records a one-on-one session.
// PRE: both member IDs name existing members
// POST: Session is persisted with fresh IDs for each action item
func ExecuteRecordSession(ctx context.Context, input RecordSessionInput, deps RecordSessionDeps) (coaching.OneOnOneSession, error) {
	if err := checkMembers(ctx, deps.Members, input.MemberID, input.SupervisorID); err != nil {
		return coaching.OneOnOneSession{}, err
	}

	date := input.Date
	if date.IsZero() {
		date = deps.Now()
	}
	s := coaching.OneOnOneSession{
		ID:           deps.GenerateID(),
		MemberID:     input.MemberID,
		SupervisorID: input.SupervisorID,
		Date:         date,
		Summary:      input.Summary,
		ActionItems:  buildActionItems(input.ActionItems, deps.GenerateID),
	}
	if err := s.Validate(); err != nil {
		return coaching.OneOnOneSession{}, err
	}
	if err := deps.Sessions.Save(ctx, s); err != nil {
		return coaching.OneOnOneSession{}, err
	}

	slog.Info("coaching_event", "event", "session_recorded", "session_id", s.ID, "member_id", s.MemberID)
	return s, nil
}

// RecordPtlInput carries input for the PTL report orchestrator.
type RecordPtlInput struct {
	MemberID     string
	SupervisorID string
	Date         time.Time
	Summary      string
	Risk         *coaching.RiskAssessment
}

// RecordPtlDeps holds dependencies for RecordPtl.
type RecordPtlDeps struct {
	Reports    PtlWriter
	Members    MemberLookup
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteRecordPtl records a PTL report.
// PRE: both member IDs name existing members; Risk.Level, when present,
// is a known constant
// POST: Report is persisted
func ExecuteRecordPtl(ctx context.Context, input RecordPtlInput, deps RecordPtlDeps) (coaching.PtlReport, error) {
	if err := checkMembers(ctx, deps.Members, input.MemberID, input.SupervisorID); err != nil {
		return coaching.PtlReport{}, err
	}

	date := input.Date
	if date.IsZero() {
		date = deps.Now()
	}
	r := coaching.PtlReport{
		ID:           deps.GenerateID(),
		MemberID:     input.MemberID,
		SupervisorID: input.SupervisorID,
		Date:         date,
		Summary:      input.Summary,
		Risk:         input.Risk,
	}
	if err := r.Validate(); err != nil {
		return coaching.PtlReport{}, err
	}
	if err := deps.Reports.Save(ctx, r); err != nil {
		return coaching.PtlReport{}, err
	}

	slog.Info("coaching_event", "event", "ptl_recorded", "report_id", r.ID, "member_id", r.MemberID)
	return r, nil
}

// RecordFeedForwardInput carries input for the feed-forward orchestrator.
type RecordFeedForwardInput struct {
	MemberID     string
	SupervisorID string
	Date         time.Time
	Feelings     string
	Reasons      string
	Actions      string
	ActionItems  []string
}

// RecordFeedForwardDeps holds dependencies for RecordFeedForward.
type RecordFeedForwardDeps struct {
	FeedForwards FeedForwardWriter
	Members      MemberLookup
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteRecordFeedForward records a feed-forward coaching session.
// PRE: both member IDs name existing members
// POST: Record is persisted with fresh IDs for each action item
func ExecuteRecordFeedForward(ctx context.Context, input RecordFeedForwardInput, deps RecordFeedForwardDeps) (coaching.FeedForward, error) {
	if err := checkMembers(ctx, deps.Members, input.MemberID, input.SupervisorID); err != nil {
		return coaching.FeedForward{}, err
	}

	date := input.Date
	if date.IsZero() {
		date = deps.Now()
	}
	f := coaching.FeedForward{
		ID:           deps.GenerateID(),
		MemberID:     input.MemberID,
		SupervisorID: input.SupervisorID,
		Date:         date,
		Feelings:     input.Feelings,
		Reasons:      input.Reasons,
		Actions:      input.Actions,
		ActionItems:  buildActionItems(input.ActionItems, deps.GenerateID),
	}
	if err := f.Validate(); err != nil {
		return coaching.FeedForward{}, err
	}
	if err := deps.FeedForwards.Save(ctx, f); err != nil {
		return coaching.FeedForward{}, err
	}

	slog.Info("coaching_event", "event", "feed_forward_recorded", "record_id", f.ID, "member_id", f.MemberID)
	return f, nil
}

// ToggleActionItemInput carries input for the action item toggle.
type ToggleActionItemInput struct {
	SessionID    string
	ActionItemID string
	Done         bool
}

// ToggleActionItemDeps holds dependencies for ToggleActionItem.
type ToggleActionItemDeps struct {
	Sessions SessionWriter
}

// ExecuteToggleActionItem marks a session action item done or not done.
// PRE: SessionID and ActionItemID name existing records
// POST: The item's Done flag matches the input
func ExecuteToggleActionItem(ctx context.Context, input ToggleActionItemInput, deps ToggleActionItemDeps) (coaching.OneOnOneSession, error) {
	if input.SessionID == "" {
		return coaching.OneOnOneSession{}, errors.New("session ID is required")
	}

	s, err := deps.Sessions.GetByID(ctx, input.SessionID)
	if err != nil {
		return coaching.OneOnOneSession{}, err
	}

	found := false
	for i := range s.ActionItems {
		if s.ActionItems[i].ID == input.ActionItemID {
			s.ActionItems[i].Done = input.Done
			found = true
			break
		}
	}
	if !found {
		return coaching.OneOnOneSession{}, errors.New("action item not found")
	}

	if err := deps.Sessions.Save(ctx, s); err != nil {
		return coaching.OneOnOneSession{}, err
	}

	slog.Info("coaching_event", "event", "action_item_toggled", "session_id", s.ID, "action_item_id", input.ActionItemID, "done", input.Done)
	return s, nil
}

// buildActionItems turns plain descriptions into ActionItem records.
func buildActionItems(descriptions []string, generateID func() string) []coaching.ActionItem {
	var items []coaching.ActionItem
	for _, d := range descriptions {
		if d == "" {
			continue
		}
		items = append(items, coaching.ActionItem{ID: generateID(), Description: d})
	}
	return items
}
