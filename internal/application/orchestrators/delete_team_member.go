package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	clientStore "opsdesk/internal/adapters/storage/client"
	"opsdesk/internal/domain/client"
)

// ClientListStore lists clients so the cascade can find assignments.
type ClientListStore interface {
	List(ctx context.Context, filter clientStore.ListFilter) ([]client.Client, error)
	Save(ctx context.Context, c client.Client) error
}

// TaskReassigner moves a member's tasks to another assignee.
type TaskReassigner interface {
	ReassignAll(ctx context.Context, fromAssigneeID, toAssigneeID string) (int, error)
}

// CoachingDeleter removes a member's coaching records.
type CoachingDeleter interface {
	DeleteByMember(ctx context.Context, memberID string) (int, error)
}

// DeleteMemberInput carries input for the member delete cascade.
// FallbackAssigneeID receives the member's open tasks; when blank or
// equal to the deleted member, tasks become unassigned.
type DeleteMemberInput struct {
	MemberID           string
	FallbackAssigneeID string
}

// DeleteMemberDeps holds dependencies for DeleteMember.
type DeleteMemberDeps struct {
	MemberStore  MemberStore
	ClientStore  ClientListStore
	Tasks        TaskReassigner
	Sessions     CoachingDeleter
	PtlReports   CoachingDeleter
	FeedForwards CoachingDeleter
}

// DeleteMemberResult reports what the cascade touched.
type DeleteMemberResult struct {
	UnassignedClients   int
	ReassignedTasks     int
	DeletedSessions     int
	DeletedPtlReports   int
	DeletedFeedForwards int
}

// ExecuteDeleteMember removes a team member and every dangling
// reference to them. The affected set is computed up front so a
// mid-cascade failure never leaves the member half-removed: the member
// row itself is deleted last.
// PRE: MemberID names an existing member
// POST: No client assignment, task, or coaching record references the member
// INVARIANT: tasks are reassigned, never deleted, by a member cascade
func ExecuteDeleteMember(ctx context.Context, input DeleteMemberInput, deps DeleteMemberDeps) (DeleteMemberResult, error) {
	if input.MemberID == "" {
		return DeleteMemberResult{}, errors.New("member ID is required")
	}
	if _, err := deps.MemberStore.GetByID(ctx, input.MemberID); err != nil {
		return DeleteMemberResult{}, err
	}

	fallback := input.FallbackAssigneeID
	if fallback == input.MemberID {
		fallback = ""
	}

	// Compute the affected clients before any write.
	all, err := deps.ClientStore.List(ctx, clientStore.ListFilter{})
	if err != nil {
		return DeleteMemberResult{}, err
	}
	var affected []client.Client
	for _, c := range all {
		if c.RemoveAssignedMember(input.MemberID) {
			affected = append(affected, c)
		}
	}

	var result DeleteMemberResult
	for _, c := range affected {
		if err := deps.ClientStore.Save(ctx, c); err != nil {
			return result, err
		}
		result.UnassignedClients++
	}

	result.ReassignedTasks, err = deps.Tasks.ReassignAll(ctx, input.MemberID, fallback)
	if err != nil {
		return result, err
	}
	result.DeletedSessions, err = deps.Sessions.DeleteByMember(ctx, input.MemberID)
	if err != nil {
		return result, err
	}
	result.DeletedPtlReports, err = deps.PtlReports.DeleteByMember(ctx, input.MemberID)
	if err != nil {
		return result, err
	}
	result.DeletedFeedForwards, err = deps.FeedForwards.DeleteByMember(ctx, input.MemberID)
	if err != nil {
		return result, err
	}

	if err := deps.MemberStore.Delete(ctx, input.MemberID); err != nil {
		return result, err
	}

	slog.Info("member_event", "event", "member_deleted",
		"member_id", input.MemberID,
		"unassigned_clients", result.UnassignedClients,
		"reassigned_tasks", result.ReassignedTasks,
		"deleted_sessions", result.DeletedSessions,
		"deleted_ptl_reports", result.DeletedPtlReports,
		"deleted_feed_forwards", result.DeletedFeedForwards,
	)
	return result, nil
}
