package web

import (
	"encoding/json"
	"net/http"

	"opsdesk/internal/application/orchestrators"
)

// handleSnapshotExport streams the full dataset as a JSON download.
func handleSnapshotExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "GET" {
		methodNotAllowed(w)
		return
	}
	snap, err := orchestrators.ExecuteExportSnapshot(r.Context(), orchestrators.ExportSnapshotDeps{
		Stores:     stores.snapshotStores(),
		Now:        timeNow,
		AppVersion: AppVersion,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="opsdesk-snapshot.json"`)
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		internalError(w, err)
	}
}

// handleSnapshotImport replaces the entire dataset with the posted
// snapshot. The caller must confirm the destructive intent explicitly.
func handleSnapshotImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}
	if r.URL.Query().Get("confirm") != "true" {
		apiError(w, http.StatusConflict, "import replaces all data; retry with confirm=true")
		return
	}
	result, err := orchestrators.ExecuteImportSnapshot(r.Context(), orchestrators.ImportSnapshotInput{
		Reader: r.Body,
	}, orchestrators.ImportSnapshotDeps{
		Stores:     stores.snapshotStores(),
		GenerateID: generateID,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
