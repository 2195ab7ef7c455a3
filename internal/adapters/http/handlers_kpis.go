package web

import (
	"net/http"
	"time"

	kpiStore "opsdesk/internal/adapters/storage/kpi"
	"opsdesk/internal/application/orchestrators"
	"opsdesk/internal/application/projections"
)

type createKpiRequest struct {
	Name          string  `json:"name"`
	Target        float64 `json:"target"`
	Actual        float64 `json:"actual"`
	LowerIsBetter bool    `json:"lower_is_better"`
}

type logKpiEntryRequest struct {
	Date     time.Time `json:"date"`
	Actual   float64   `json:"actual"`
	Target   *float64  `json:"target"`
	LoggedBy string    `json:"logged_by"`
}

// handleKpis handles GET (list) and POST (create) for /api/kpis.
func handleKpis(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		list, err := stores.KpiStore.List(ctx, kpiStore.ListFilter{
			Limit:  queryInt(r, "limit"),
			Offset: queryInt(r, "offset"),
			Search: r.URL.Query().Get("q"),
		})
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, list)

	case "POST":
		var req createKpiRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		k, err := orchestrators.ExecuteCreateKpi(ctx, orchestrators.CreateKpiInput{
			Name:          req.Name,
			Target:        req.Target,
			Actual:        req.Actual,
			LowerIsBetter: req.LowerIsBetter,
		}, orchestrators.CreateKpiDeps{
			KpiStore:   stores.KpiStore,
			GenerateID: generateID,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, k)

	default:
		methodNotAllowed(w)
	}
}

// handleKpiByID dispatches /api/kpis/{id} and its sub-resources.
func handleKpiByID(w http.ResponseWriter, r *http.Request) {
	id, sub := splitResource(r.URL.Path, "/api/kpis/")
	if id == "" {
		apiError(w, http.StatusBadRequest, "kpi ID is required")
		return
	}

	switch sub {
	case "":
		handleKpi(w, r, id)
	case "entries":
		handleKpiEntries(w, r, id)
	case "trend":
		handleKpiTrend(w, r, id)
	default:
		apiError(w, http.StatusNotFound, "not found")
	}
}

func handleKpi(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		k, err := stores.KpiStore.GetByID(ctx, id)
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, k)

	case "PUT":
		var req createKpiRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		k, err := orchestrators.ExecuteUpdateKpi(ctx, orchestrators.UpdateKpiInput{
			KpiID:         id,
			Name:          req.Name,
			Target:        req.Target,
			Actual:        req.Actual,
			LowerIsBetter: req.LowerIsBetter,
		}, orchestrators.UpdateKpiDeps{KpiStore: stores.KpiStore})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, k)

	case "DELETE":
		if !confirmedDelete(w, r) {
			return
		}
		if err := orchestrators.ExecuteDeleteKpi(ctx, orchestrators.DeleteKpiInput{KpiID: id},
			orchestrators.DeleteKpiDeps{
				KpiStore: stores.KpiStore,
				Members:  stores.MemberStore,
			}); err != nil {
			respondError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		methodNotAllowed(w)
	}
}

func handleKpiEntries(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "POST" {
		methodNotAllowed(w)
		return
	}
	var req logKpiEntryRequest
	if err := strictDecode(r, &req); err != nil {
		apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	k, err := orchestrators.ExecuteLogKpiEntry(r.Context(), orchestrators.LogKpiEntryInput{
		KpiID:    id,
		Date:     req.Date,
		Actual:   req.Actual,
		Target:   req.Target,
		LoggedBy: req.LoggedBy,
	}, orchestrators.LogKpiEntryDeps{
		KpiStore:   stores.KpiStore,
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, k)
}

func handleKpiTrend(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != "GET" {
		methodNotAllowed(w)
		return
	}
	res, err := projections.QueryGetKpiTrend(r.Context(), projections.GetKpiTrendQuery{
		KpiID: id,
		From:  queryDate(r, "from"),
		To:    queryDate(r, "to"),
	}, projections.GetKpiTrendDeps{KpiStore: stores.KpiStore})
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
