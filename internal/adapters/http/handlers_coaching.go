package web

import (
	"net/http"
	"strings"
	"time"

	coachingStore "opsdesk/internal/adapters/storage/coaching"
	"opsdesk/internal/application/orchestrators"
	coachingDomain "opsdesk/internal/domain/coaching"
)

// coachingFilter builds the shared list filter for the coaching stores.
func coachingFilter(r *http.Request) coachingStore.ListFilter {
	return coachingStore.ListFilter{
		Limit:    queryInt(r, "limit"),
		Offset:   queryInt(r, "offset"),
		MemberID: r.URL.Query().Get("member_id"),
	}
}

type recordSessionRequest struct {
	MemberID     string    `json:"member_id"`
	SupervisorID string    `json:"supervisor_id"`
	Date         time.Time `json:"date"`
	Summary      string    `json:"summary"`
	ActionItems  []string  `json:"action_items"`
}

// handleSessions handles GET (list) and POST (record) for /api/sessions.
func handleSessions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		list, err := stores.SessionStore.List(ctx, coachingFilter(r))
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case "POST":
		var req recordSessionRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		s, err := orchestrators.ExecuteRecordSession(ctx, orchestrators.RecordSessionInput{
			MemberID:     req.MemberID,
			SupervisorID: req.SupervisorID,
			Date:         req.Date,
			Summary:      req.Summary,
			ActionItems:  req.ActionItems,
		}, orchestrators.RecordSessionDeps{
			Sessions:   stores.SessionStore,
			Members:    stores.MemberStore,
			GenerateID: generateID,
			Now:        timeNow,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, s)

	default:
		methodNotAllowed(w)
	}
}

type toggleActionItemRequest struct {
	Done bool `json:"done"`
}

// handleSessionByID dispatches /api/sessions/{id} and the action item toggle.
func handleSessionByID(w http.ResponseWriter, r *http.Request) {
	id, sub := splitResource(r.URL.Path, "/api/sessions/")
	if id == "" {
		apiError(w, http.StatusBadRequest, "session ID is required")
		return
	}
	ctx := r.Context()

	if sub != "" {
		resource, itemID, _ := strings.Cut(sub, "/")
		if resource != "action-items" || itemID == "" {
			apiError(w, http.StatusNotFound, "not found")
			return
		}
		if r.Method != "POST" {
			methodNotAllowed(w)
			return
		}
		var req toggleActionItemRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		s, err := orchestrators.ExecuteToggleActionItem(ctx, orchestrators.ToggleActionItemInput{
			SessionID:    id,
			ActionItemID: itemID,
			Done:         req.Done,
		}, orchestrators.ToggleActionItemDeps{Sessions: stores.SessionStore})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)
		return
	}

	switch r.Method {
	case "GET":
		s, err := stores.SessionStore.GetByID(ctx, id)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, s)

	case "DELETE":
		if !confirmedDelete(w, r) {
			return
		}
		if _, err := stores.SessionStore.GetByID(ctx, id); err != nil {
			respondError(w, err)
			return
		}
		if err := stores.SessionStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}

type recordPtlRequest struct {
	MemberID     string                         `json:"member_id"`
	SupervisorID string                         `json:"supervisor_id"`
	Date         time.Time                      `json:"date"`
	Summary      string                         `json:"summary"`
	Risk         *coachingDomain.RiskAssessment `json:"risk"`
}

// handlePtlReports handles GET (list) and POST (record) for /api/ptl-reports.
func handlePtlReports(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		list, err := stores.PtlStore.List(ctx, coachingFilter(r))
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case "POST":
		var req recordPtlRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		report, err := orchestrators.ExecuteRecordPtl(ctx, orchestrators.RecordPtlInput{
			MemberID:     req.MemberID,
			SupervisorID: req.SupervisorID,
			Date:         req.Date,
			Summary:      req.Summary,
			Risk:         req.Risk,
		}, orchestrators.RecordPtlDeps{
			Reports:    stores.PtlStore,
			Members:    stores.MemberStore,
			GenerateID: generateID,
			Now:        timeNow,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, report)

	default:
		methodNotAllowed(w)
	}
}

// handlePtlReportByID handles GET and DELETE for /api/ptl-reports/{id}.
func handlePtlReportByID(w http.ResponseWriter, r *http.Request) {
	id, sub := splitResource(r.URL.Path, "/api/ptl-reports/")
	if id == "" || sub != "" {
		apiError(w, http.StatusNotFound, "not found")
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		report, err := stores.PtlStore.GetByID(ctx, id)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, report)

	case "DELETE":
		if !confirmedDelete(w, r) {
			return
		}
		if _, err := stores.PtlStore.GetByID(ctx, id); err != nil {
			respondError(w, err)
			return
		}
		if err := stores.PtlStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}

type recordFeedForwardRequest struct {
	MemberID     string    `json:"member_id"`
	SupervisorID string    `json:"supervisor_id"`
	Date         time.Time `json:"date"`
	Feelings     string    `json:"feelings"`
	Reasons      string    `json:"reasons"`
	Actions      string    `json:"actions"`
	ActionItems  []string  `json:"action_items"`
}

// handleFeedForwards handles GET (list) and POST (record) for /api/feed-forwards.
func handleFeedForwards(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		list, err := stores.FeedForwardStore.List(ctx, coachingFilter(r))
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case "POST":
		var req recordFeedForwardRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		f, err := orchestrators.ExecuteRecordFeedForward(ctx, orchestrators.RecordFeedForwardInput{
			MemberID:     req.MemberID,
			SupervisorID: req.SupervisorID,
			Date:         req.Date,
			Feelings:     req.Feelings,
			Reasons:      req.Reasons,
			Actions:      req.Actions,
			ActionItems:  req.ActionItems,
		}, orchestrators.RecordFeedForwardDeps{
			FeedForwards: stores.FeedForwardStore,
			Members:      stores.MemberStore,
			GenerateID:   generateID,
			Now:          timeNow,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, f)

	default:
		methodNotAllowed(w)
	}
}

// handleFeedForwardByID handles GET and DELETE for /api/feed-forwards/{id}.
func handleFeedForwardByID(w http.ResponseWriter, r *http.Request) {
	id, sub := splitResource(r.URL.Path, "/api/feed-forwards/")
	if id == "" || sub != "" {
		apiError(w, http.StatusNotFound, "not found")
		return
	}
	ctx := r.Context()

	switch r.Method {
	case "GET":
		f, err := stores.FeedForwardStore.GetByID(ctx, id)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, f)

	case "DELETE":
		if !confirmedDelete(w, r) {
			return
		}
		if _, err := stores.FeedForwardStore.GetByID(ctx, id); err != nil {
			respondError(w, err)
			return
		}
		if err := stores.FeedForwardStore.Delete(ctx, id); err != nil {
			internalError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}
