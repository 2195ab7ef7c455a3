package projections

import (
	"context"
	"errors"
	"sort"
	"time"
)

// GetKpiTrendQuery carries query parameters.
type GetKpiTrendQuery struct {
	KpiID string
	From  time.Time // zero means no lower bound
	To    time.Time // zero means no upper bound
}

// TrendPoint is one charted measurement.
type TrendPoint struct {
	Date   time.Time `json:"date"`
	Actual float64   `json:"actual"`
	Target float64   `json:"target"`
}

// KpiTrendResult carries the query result.
type KpiTrendResult struct {
	KpiID         string       `json:"kpi_id"`
	Name          string       `json:"name"`
	LowerIsBetter bool         `json:"lower_is_better"`
	Points        []TrendPoint `json:"points"`
}

// GetKpiTrendDeps holds dependencies for GetKpiTrend.
type GetKpiTrendDeps struct {
	KpiStore KpiStore
}

// QueryGetKpiTrend returns a KPI's history ordered by date for
// charting. Points without an explicit target inherit the target in
// effect when they were logged, walking the history in order.
// PRE: KpiID names an existing KPI
// POST: Points are sorted ascending by date
func QueryGetKpiTrend(ctx context.Context, query GetKpiTrendQuery, deps GetKpiTrendDeps) (KpiTrendResult, error) {
	if query.KpiID == "" {
		return KpiTrendResult{}, errors.New("kpi ID is required")
	}

	k, err := deps.KpiStore.GetByID(ctx, query.KpiID)
	if err != nil {
		return KpiTrendResult{}, err
	}

	result := KpiTrendResult{
		KpiID:         k.ID,
		Name:          k.Name,
		LowerIsBetter: k.LowerIsBetter,
	}

	// History is append-ordered; targets roll forward through it.
	target := k.Target
	if len(k.History) > 0 {
		// Rewind to the earliest explicit target so points before it
		// still chart against something sensible.
		for _, p := range k.History {
			if p.Target != nil {
				target = *p.Target
				break
			}
		}
	}
	for _, p := range k.History {
		if p.Target != nil {
			target = *p.Target
		}
		if !query.From.IsZero() && p.Date.Before(query.From) {
			continue
		}
		if !query.To.IsZero() && p.Date.After(query.To) {
			continue
		}
		result.Points = append(result.Points, TrendPoint{
			Date:   p.Date,
			Actual: p.Actual,
			Target: target,
		})
	}
	sort.Slice(result.Points, func(i, j int) bool { return result.Points[i].Date.Before(result.Points[j].Date) })

	return result, nil
}
