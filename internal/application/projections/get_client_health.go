package projections

import (
	"context"
	"time"

	clientStore "opsdesk/internal/adapters/storage/client"
	"opsdesk/internal/domain/client"
)

// GetClientHealthQuery carries query parameters.
type GetClientHealthQuery struct {
	ClientID string // empty means all clients
}

// ClientHealthRow summarizes one engagement's operational readiness.
type ClientHealthRow struct {
	ClientID     string    `json:"client_id"`
	Name         string    `json:"name"`
	Status       string    `json:"status"`
	SopExists    bool      `json:"sop_exists"`
	KpiCadence   string    `json:"kpi_cadence"`
	FolderStatus string    `json:"folder_status"`
	DocsComplete int       `json:"docs_complete"`
	DocsTotal    int       `json:"docs_total"`
	AuditScore   int       `json:"audit_score"` // 0-100
	LastReviewed time.Time `json:"last_reviewed"`
	LastPulse    time.Time `json:"last_pulse"`
}

// ClientHealthResult carries the query result.
type ClientHealthResult struct {
	Rows []ClientHealthRow
}

// GetClientHealthDeps holds dependencies for GetClientHealth.
type GetClientHealthDeps struct {
	ClientStore ClientStore
}

// QueryGetClientHealth summarizes audit completeness per client. The
// score weighs SOP presence, KPI cadence, folder organization, and the
// documentation checklist equally.
// POST: AuditScore is between 0 and 100
func QueryGetClientHealth(ctx context.Context, query GetClientHealthQuery, deps GetClientHealthDeps) (ClientHealthResult, error) {
	var clients []client.Client
	if query.ClientID != "" {
		c, err := deps.ClientStore.GetByID(ctx, query.ClientID)
		if err != nil {
			return ClientHealthResult{}, err
		}
		clients = []client.Client{c}
	} else {
		var err error
		clients, err = deps.ClientStore.List(ctx, clientStore.ListFilter{})
		if err != nil {
			return ClientHealthResult{}, err
		}
	}

	var result ClientHealthResult
	for _, c := range clients {
		row := ClientHealthRow{
			ClientID:     c.ID,
			Name:         c.Name,
			Status:       c.Status,
			SopExists:    c.Audit.SopExists,
			KpiCadence:   c.Audit.KpiCadence,
			FolderStatus: c.Audit.FolderStatus,
			LastReviewed: c.Audit.LastReviewed,
		}
		for _, done := range c.Audit.DocChecklist {
			row.DocsTotal++
			if done {
				row.DocsComplete++
			}
		}
		if n := len(c.PulseLog); n > 0 {
			row.LastPulse = c.PulseLog[n-1].Date
		}
		row.AuditScore = auditScore(c.Audit, row.DocsComplete, row.DocsTotal)
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

// auditScore maps an audit sub-record to 0-100 across four equally
// weighted components.
func auditScore(a client.Audit, docsComplete, docsTotal int) int {
	score := 0
	if a.SopExists {
		score += 25
	}
	if a.KpiCadence != "" && a.KpiCadence != client.CadenceNone {
		score += 25
	}
	switch a.FolderStatus {
	case client.FoldersOrganized:
		score += 25
	case client.FoldersPartial:
		score += 12
	}
	if docsTotal > 0 {
		score += docsComplete * 25 / docsTotal
	}
	return score
}
