package web

import (
	"net/http"

	clientStore "opsdesk/internal/adapters/storage/client"
	"opsdesk/internal/application/orchestrators"
	"opsdesk/internal/application/projections"
	clientDomain "opsdesk/internal/domain/client"
)

type createClientRequest struct {
	Name          string   `json:"name"`
	Status        string   `json:"status"`
	ContactPerson string   `json:"contact_person"`
	ContactEmail  string   `json:"contact_email"`
	Notes         string   `json:"notes"`
	Tags          []string `json:"tags"`
}

type updateClientRequest struct {
	Name              string              `json:"name"`
	Status            string              `json:"status"`
	ContactPerson     string              `json:"contact_person"`
	ContactEmail      string              `json:"contact_email"`
	Notes             string              `json:"notes"`
	Tags              []string            `json:"tags"`
	Audit             *clientDomain.Audit `json:"audit"`
	AssignedMemberIDs *[]string           `json:"assigned_member_ids"`
}

// clientDetail wraps a client with the rendered notes for detail views.
type clientDetail struct {
	clientDomain.Client
	NotesHTML string `json:"notes_html,omitempty"`
}

// handleClients handles GET (list) and POST (create) for /api/clients.
func handleClients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		list, err := stores.ClientStore.List(ctx, clientStore.ListFilter{
			Limit:  queryInt(r, "limit"),
			Offset: queryInt(r, "offset"),
			Status: r.URL.Query().Get("status"),
			Search: r.URL.Query().Get("q"),
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case "POST":
		var req createClientRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		c, err := orchestrators.ExecuteCreateClient(ctx, orchestrators.CreateClientInput{
			Name:          req.Name,
			Status:        req.Status,
			ContactPerson: req.ContactPerson,
			ContactEmail:  req.ContactEmail,
			Notes:         req.Notes,
			Tags:          req.Tags,
		}, orchestrators.CreateClientDeps{
			ClientStore: stores.ClientStore,
			GenerateID:  generateID,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, c)

	default:
		methodNotAllowed(w)
	}
}

// handleClientByID dispatches /api/clients/{id} and its sub-resources.
func handleClientByID(w http.ResponseWriter, r *http.Request) {
	id, sub := splitResource(r.URL.Path, "/api/clients/")
	if id == "" {
		apiError(w, http.StatusBadRequest, "client ID is required")
		return
	}

	switch sub {
	case "":
		handleClient(w, r, id)
	case "pulse":
		handleClientPulse(w, r, id)
	case "email":
		handleClientEmail(w, r, id)
	case "summary-draft":
		handleClientSummaryDraft(w, r, id)
	default:
		apiError(w, http.StatusNotFound, "not found")
	}
}

func handleClient(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		c, err := stores.ClientStore.GetByID(ctx, id)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, clientDetail{Client: c, NotesHTML: renderMarkdown(c.Notes)})

	case "PUT":
		var req updateClientRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		c, err := orchestrators.ExecuteUpdateClient(ctx, orchestrators.UpdateClientInput{
			ClientID:      id,
			Name:          req.Name,
			Status:        req.Status,
			ContactPerson: req.ContactPerson,
			ContactEmail:  req.ContactEmail,
			Notes:         req.Notes,
			Tags:          req.Tags,
			Audit:         req.Audit,
			AssignedIDs:   req.AssignedMemberIDs,
		}, orchestrators.UpdateClientDeps{ClientStore: stores.ClientStore})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, c)

	case "DELETE":
		if !confirmedDelete(w, r) {
			return
		}
		result, err := orchestrators.ExecuteDeleteClient(ctx, orchestrators.DeleteClientInput{ClientID: id},
			orchestrators.DeleteClientDeps{
				ClientStore: stores.ClientStore,
				Tasks:       stores.TaskStore,
			})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"detached_tasks": result.DetachedTasks})

	default:
		methodNotAllowed(w)
	}
}

type logPulseRequest struct {
	Note     string `json:"note"`
	LoggedBy string `json:"logged_by"`
}

func handleClientPulse(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}
	var req logPulseRequest
	if err := strictDecode(r, &req); err != nil {
		apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	entry, err := orchestrators.ExecuteLogPulse(r.Context(), orchestrators.LogPulseInput{
		ClientID: id,
		Note:     req.Note,
		LoggedBy: req.LoggedBy,
	}, orchestrators.LogPulseDeps{
		ClientStore: stores.ClientStore,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

type sendClientEmailRequest struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Snippet string `json:"snippet"`
}

func handleClientEmail(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}
	if emailSender == nil {
		apiError(w, http.StatusServiceUnavailable, "email delivery is not configured")
		return
	}
	var req sendClientEmailRequest
	if err := strictDecode(r, &req); err != nil {
		apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	entry, err := orchestrators.ExecuteSendClientEmail(r.Context(), orchestrators.SendClientEmailInput{
		ClientID: id,
		Subject:  req.Subject,
		HTML:     req.HTML,
		Snippet:  req.Snippet,
	}, orchestrators.SendClientEmailDeps{
		ClientStore: stores.ClientStore,
		Sender:      emailSender,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

type broadcastEmailRequest struct {
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Status  string `json:"status"`
}

// handleClientBroadcastEmail mails every matching client in one batch.
func handleClientBroadcastEmail(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}
	if emailSender == nil {
		apiError(w, http.StatusServiceUnavailable, "email delivery is not configured")
		return
	}
	var req broadcastEmailRequest
	if err := strictDecode(r, &req); err != nil {
		apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	result, err := orchestrators.ExecuteBroadcastClientEmail(r.Context(), orchestrators.BroadcastClientEmailInput{
		Subject: req.Subject,
		HTML:    req.HTML,
		Status:  req.Status,
	}, orchestrators.BroadcastClientEmailDeps{
		ClientStore: stores.ClientStore,
		Sender:      emailSender,
		GenerateID:  generateID,
		Now:         timeNow,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func handleClientSummaryDraft(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}
	draft, err := orchestrators.ExecuteDraftClientSummary(r.Context(),
		orchestrators.DraftClientSummaryInput{ClientID: id},
		orchestrators.DraftClientSummaryDeps{
			ClientStore: stores.ClientStore,
			Completer:   aiCompleter,
		})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// handleClientHealth serves the audit readiness projection, optionally
// narrowed to one client via ?client_id=.
func handleClientHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		methodNotAllowed(w)
		return
	}
	res, err := projections.QueryGetClientHealth(r.Context(), projections.GetClientHealthQuery{
		ClientID: r.URL.Query().Get("client_id"),
	}, projections.GetClientHealthDeps{ClientStore: stores.ClientStore})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Rows)
}
