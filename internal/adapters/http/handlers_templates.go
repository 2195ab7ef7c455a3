package web

import (
	"net/http"

	templateStore "opsdesk/internal/adapters/storage/template"
	"opsdesk/internal/application/orchestrators"
	templateDomain "opsdesk/internal/domain/template"
)

type templateRequest struct {
	Name           string   `json:"name"`
	Category       string   `json:"category"`
	Content        string   `json:"content"`
	Tags           []string `json:"tags"`
	Subject        string   `json:"subject"`
	TicketPriority string   `json:"ticket_priority"`
	ReportFields   []string `json:"report_fields"`
}

// templateDetail wraps a template with the rendered content for detail views.
type templateDetail struct {
	templateDomain.Template
	ContentHTML string `json:"content_html,omitempty"`
}

// handleTemplates handles GET (list) and POST (create) for /api/templates.
func handleTemplates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		list, err := stores.TemplateStore.List(ctx, templateStore.ListFilter{
			Limit:    queryInt(r, "limit"),
			Offset:   queryInt(r, "offset"),
			Category: r.URL.Query().Get("category"),
			Search:   r.URL.Query().Get("q"),
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case "POST":
		var req templateRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		t, err := orchestrators.ExecuteCreateTemplate(ctx, orchestrators.CreateTemplateInput{
			Name:           req.Name,
			Category:       req.Category,
			Content:        req.Content,
			Tags:           req.Tags,
			Subject:        req.Subject,
			TicketPriority: req.TicketPriority,
			ReportFields:   req.ReportFields,
		}, orchestrators.CreateTemplateDeps{
			TemplateStore: stores.TemplateStore,
			GenerateID:    generateID,
			Now:           timeNow,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, t)

	default:
		methodNotAllowed(w)
	}
}

// handleTemplateByID dispatches /api/templates/{id} and its sub-resources.
func handleTemplateByID(w http.ResponseWriter, r *http.Request) {
	id, sub := splitResource(r.URL.Path, "/api/templates/")
	if id == "" {
		apiError(w, http.StatusBadRequest, "template ID is required")
		return
	}

	switch sub {
	case "":
		handleTemplate(w, r, id)
	case "optimize-draft":
		handleTemplateOptimizeDraft(w, r, id)
	default:
		apiError(w, http.StatusNotFound, "not found")
	}
}

func handleTemplate(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		t, err := stores.TemplateStore.GetByID(ctx, id)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, templateDetail{Template: t, ContentHTML: renderMarkdown(t.Content)})

	case "PUT":
		var req templateRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		t, err := orchestrators.ExecuteUpdateTemplate(ctx, orchestrators.UpdateTemplateInput{
			TemplateID:     id,
			Name:           req.Name,
			Category:       req.Category,
			Content:        req.Content,
			Tags:           req.Tags,
			Subject:        req.Subject,
			TicketPriority: req.TicketPriority,
			ReportFields:   req.ReportFields,
		}, orchestrators.UpdateTemplateDeps{
			TemplateStore: stores.TemplateStore,
			Now:           timeNow,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, t)

	case "DELETE":
		if !confirmedDelete(w, r) {
			return
		}
		if err := orchestrators.ExecuteDeleteTemplate(ctx, orchestrators.DeleteTemplateInput{TemplateID: id},
			orchestrators.DeleteTemplateDeps{TemplateStore: stores.TemplateStore}); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}

type optimizeTemplateRequest struct {
	Goal string `json:"goal"`
}

func handleTemplateOptimizeDraft(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}
	var req optimizeTemplateRequest
	if err := strictDecode(r, &req); err != nil {
		apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	draft, err := orchestrators.ExecuteOptimizeTemplate(r.Context(), orchestrators.OptimizeTemplateInput{
		TemplateID: id,
		Goal:       req.Goal,
	}, orchestrators.OptimizeTemplateDeps{
		TemplateStore: stores.TemplateStore,
		Completer:     aiCompleter,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}
