package web

import (
	"net/http"

	memberStore "opsdesk/internal/adapters/storage/teammember"
	"opsdesk/internal/application/orchestrators"
)

type createMemberRequest struct {
	Name   string   `json:"name"`
	Role   string   `json:"role"`
	Email  string   `json:"email"`
	Skills []string `json:"skills"`
}

type updateMemberRequest struct {
	Name           string    `json:"name"`
	Role           string    `json:"role"`
	Email          string    `json:"email"`
	Skills         []string  `json:"skills"`
	AssignedKpiIDs *[]string `json:"assigned_kpi_ids"`
}

// handleMembers handles GET (list) and POST (create) for /api/members.
func handleMembers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		list, err := stores.MemberStore.List(ctx, memberStore.ListFilter{
			Limit:  queryInt(r, "limit"),
			Offset: queryInt(r, "offset"),
			Role:   r.URL.Query().Get("role"),
			Search: r.URL.Query().Get("q"),
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case "POST":
		var req createMemberRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		m, err := orchestrators.ExecuteCreateMember(ctx, orchestrators.CreateMemberInput{
			Name:   req.Name,
			Role:   req.Role,
			Email:  req.Email,
			Skills: req.Skills,
		}, orchestrators.CreateMemberDeps{
			MemberStore: stores.MemberStore,
			GenerateID:  generateID,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, m)

	default:
		methodNotAllowed(w)
	}
}

// handleMemberByID dispatches /api/members/{id} and its sub-resources.
func handleMemberByID(w http.ResponseWriter, r *http.Request) {
	id, sub := splitResource(r.URL.Path, "/api/members/")
	if id == "" {
		apiError(w, http.StatusBadRequest, "member ID is required")
		return
	}

	switch sub {
	case "":
		handleMember(w, r, id)
	case "home-office":
		handleMemberHomeOffice(w, r, id)
	default:
		apiError(w, http.StatusNotFound, "not found")
	}
}

func handleMember(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		m, err := stores.MemberStore.GetByID(ctx, id)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)

	case "PUT":
		var req updateMemberRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		m, err := orchestrators.ExecuteUpdateMember(ctx, orchestrators.UpdateMemberInput{
			MemberID:       id,
			Name:           req.Name,
			Role:           req.Role,
			Email:          req.Email,
			Skills:         req.Skills,
			AssignedKpiIDs: req.AssignedKpiIDs,
		}, orchestrators.UpdateMemberDeps{MemberStore: stores.MemberStore})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, m)

	case "DELETE":
		if !confirmedDelete(w, r) {
			return
		}
		// The fallback receives the member's open tasks. When the caller
		// names none, the active profile steps in; the orchestrator still
		// unassigns when the fallback is the member being deleted.
		fallback := r.URL.Query().Get("fallback_assignee_id")
		if fallback == "" {
			profile, err := orchestrators.GetActiveProfile(ctx, stores.SettingsStore)
			if err != nil {
				internalError(w, err)
				return
			}
			fallback = profile.MemberID
		}
		result, err := orchestrators.ExecuteDeleteMember(ctx, orchestrators.DeleteMemberInput{
			MemberID:           id,
			FallbackAssigneeID: fallback,
		}, orchestrators.DeleteMemberDeps{
			MemberStore:  stores.MemberStore,
			ClientStore:  stores.ClientStore,
			Tasks:        stores.TaskStore,
			Sessions:     stores.SessionStore,
			PtlReports:   stores.PtlStore,
			FeedForwards: stores.FeedForwardStore,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{
			"unassigned_clients":    result.UnassignedClients,
			"reassigned_tasks":      result.ReassignedTasks,
			"deleted_sessions":      result.DeletedSessions,
			"deleted_ptl_reports":   result.DeletedPtlReports,
			"deleted_feed_forwards": result.DeletedFeedForwards,
		})

	default:
		methodNotAllowed(w)
	}
}

type homeOfficeRequest struct {
	Action   string `json:"action"`
	ClientID string `json:"client_id"`
}

func handleMemberHomeOffice(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}
	var req homeOfficeRequest
	if err := strictDecode(r, &req); err != nil {
		apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	m, err := orchestrators.ExecuteHomeOffice(r.Context(), orchestrators.HomeOfficeInput{
		MemberID: id,
		ClientID: req.ClientID,
		Action:   req.Action,
	}, orchestrators.HomeOfficeDeps{
		MemberStore: stores.MemberStore,
		Now:         timeNow,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}
