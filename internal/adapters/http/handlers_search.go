package web

import (
	"net/http"

	"opsdesk/internal/application/projections"
)

// handleSearch serves the cross-collection search box.
func handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		methodNotAllowed(w)
		return
	}
	res, err := projections.QuerySearch(r.Context(), projections.SearchQuery{
		Term:  r.URL.Query().Get("q"),
		Limit: queryInt(r, "limit"),
	}, projections.SearchDeps{
		ClientStore:   stores.ClientStore,
		MemberStore:   stores.MemberStore,
		TaskStore:     stores.TaskStore,
		TemplateStore: stores.TemplateStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res.Hits)
}

// handleDashboard serves the aggregate counts for the landing view.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		methodNotAllowed(w)
		return
	}
	res, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardQuery{
		RecentPulseLimit: queryInt(r, "pulse_limit"),
	}, projections.GetDashboardDeps{
		ClientStore: stores.ClientStore,
		TaskStore:   stores.TaskStore,
		KpiStore:    stores.KpiStore,
	}, timeNow())
	if err != nil {
		internalError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
