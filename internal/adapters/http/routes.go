package web

import "net/http"

// registerRoutes attaches every API handler to the mux. Collection
// roots take list and create; the trailing-slash variants dispatch on
// the ID and an optional sub-resource.
func registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/csrf", handleCSRFToken)
	mux.HandleFunc("/api/perf", handlePerf)

	mux.HandleFunc("/api/dashboard", handleDashboard)
	mux.HandleFunc("/api/search", handleSearch)
	mux.HandleFunc("/api/client-health", handleClientHealth)

	mux.HandleFunc("/api/clients", handleClients)
	mux.HandleFunc("/api/clients/broadcast-email", handleClientBroadcastEmail)
	mux.HandleFunc("/api/clients/", handleClientByID)

	mux.HandleFunc("/api/members", handleMembers)
	mux.HandleFunc("/api/members/", handleMemberByID)

	mux.HandleFunc("/api/tasks", handleTasks)
	mux.HandleFunc("/api/tasks/", handleTaskByID)
	mux.HandleFunc("/api/timer", handleTimerStatus)
	mux.HandleFunc("/api/timer/start", handleTimerStart)
	mux.HandleFunc("/api/timer/stop", handleTimerStop)

	mux.HandleFunc("/api/kpis", handleKpis)
	mux.HandleFunc("/api/kpis/", handleKpiByID)

	mux.HandleFunc("/api/templates", handleTemplates)
	mux.HandleFunc("/api/templates/", handleTemplateByID)

	mux.HandleFunc("/api/sessions", handleSessions)
	mux.HandleFunc("/api/sessions/", handleSessionByID)
	mux.HandleFunc("/api/ptl-reports", handlePtlReports)
	mux.HandleFunc("/api/ptl-reports/", handlePtlReportByID)
	mux.HandleFunc("/api/feed-forwards", handleFeedForwards)
	mux.HandleFunc("/api/feed-forwards/", handleFeedForwardByID)

	mux.HandleFunc("/api/snapshot/export", handleSnapshotExport)
	mux.HandleFunc("/api/snapshot/import", handleSnapshotImport)

	mux.HandleFunc("/api/settings/active-profile", handleActiveProfile)
	mux.HandleFunc("/api/settings/landing", handleLanding)
	mux.HandleFunc("/api/settings/app-version", handleAppVersion)
	mux.HandleFunc("/api/settings/page-prefs/", handlePagePrefs)
}

// splitResource separates "{id}" or "{id}/{sub...}" after the given prefix.
func splitResource(path, prefix string) (id, sub string) {
	rest := path[len(prefix):]
	for i := 0; i < len(rest); i++ {
		if rest[i] == '/' {
			return rest[:i], rest[i+1:]
		}
	}
	return rest, ""
}
