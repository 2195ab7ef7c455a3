package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"opsdesk/internal/domain/kpi"
)

// KpiStore defines the store interface needed by the KPI orchestrators.
type KpiStore interface {
	GetByID(ctx context.Context, id string) (kpi.Kpi, error)
	Save(ctx context.Context, k kpi.Kpi) error
	Delete(ctx context.Context, id string) error
}

// CreateKpiInput carries input for the create orchestrator.
type CreateKpiInput struct {
	Name          string
	Target        float64
	Actual        float64
	LowerIsBetter bool
}

// CreateKpiDeps holds dependencies for CreateKpi.
type CreateKpiDeps struct {
	KpiStore   KpiStore
	GenerateID func() string
}

// ExecuteCreateKpi creates a new tracked indicator.
// PRE: Name is non-empty
// POST: Kpi is persisted with a fresh ID and empty history
func ExecuteCreateKpi(ctx context.Context, input CreateKpiInput, deps CreateKpiDeps) (kpi.Kpi, error) {
	k := kpi.Kpi{
		ID:            deps.GenerateID(),
		Name:          input.Name,
		Target:        input.Target,
		Actual:        input.Actual,
		LowerIsBetter: input.LowerIsBetter,
	}
	if err := k.Validate(); err != nil {
		return kpi.Kpi{}, err
	}
	if err := deps.KpiStore.Save(ctx, k); err != nil {
		return kpi.Kpi{}, err
	}

	slog.Info("kpi_event", "event", "kpi_created", "kpi_id", k.ID, "name", k.Name)
	return k, nil
}

// UpdateKpiInput carries the replacement state for a KPI.
type UpdateKpiInput struct {
	KpiID         string
	Name          string
	Target        float64
	Actual        float64
	LowerIsBetter bool
}

// UpdateKpiDeps holds dependencies for UpdateKpi.
type UpdateKpiDeps struct {
	KpiStore KpiStore
}

// ExecuteUpdateKpi updates a KPI's editable fields.
// PRE: KpiID names an existing KPI; new state validates
// POST: Kpi is persisted; history is untouched
func ExecuteUpdateKpi(ctx context.Context, input UpdateKpiInput, deps UpdateKpiDeps) (kpi.Kpi, error) {
	if input.KpiID == "" {
		return kpi.Kpi{}, errors.New("kpi ID is required")
	}

	k, err := deps.KpiStore.GetByID(ctx, input.KpiID)
	if err != nil {
		return kpi.Kpi{}, err
	}

	k.Name = input.Name
	k.Target = input.Target
	k.Actual = input.Actual
	k.LowerIsBetter = input.LowerIsBetter

	if err := k.Validate(); err != nil {
		return kpi.Kpi{}, err
	}
	if err := deps.KpiStore.Save(ctx, k); err != nil {
		return kpi.Kpi{}, err
	}

	slog.Info("kpi_event", "event", "kpi_updated", "kpi_id", k.ID)
	return k, nil
}

// LogKpiEntryInput carries input for the measurement orchestrator.
type LogKpiEntryInput struct {
	KpiID    string
	Date     time.Time
	Actual   float64
	Target   *float64 // optional new target taking effect from this entry
	LoggedBy string
}

// LogKpiEntryDeps holds dependencies for LogKpiEntry.
type LogKpiEntryDeps struct {
	KpiStore   KpiStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteLogKpiEntry appends a measurement to a KPI's history.
// PRE: KpiID names an existing KPI
// POST: One history point appended; Actual (and Target, when given)
// rolled forward
func ExecuteLogKpiEntry(ctx context.Context, input LogKpiEntryInput, deps LogKpiEntryDeps) (kpi.Kpi, error) {
	if input.KpiID == "" {
		return kpi.Kpi{}, errors.New("kpi ID is required")
	}

	k, err := deps.KpiStore.GetByID(ctx, input.KpiID)
	if err != nil {
		return kpi.Kpi{}, err
	}

	date := input.Date
	if date.IsZero() {
		date = deps.Now()
	}
	k.AddHistory(deps.GenerateID(), date, input.Actual, input.Target, input.LoggedBy)

	if err := deps.KpiStore.Save(ctx, k); err != nil {
		return kpi.Kpi{}, err
	}

	slog.Info("kpi_event", "event", "kpi_entry_logged", "kpi_id", k.ID, "actual", input.Actual)
	return k, nil
}

// DeleteKpiInput carries input for the delete orchestrator.
type DeleteKpiInput struct {
	KpiID string
}

// KpiUnassigner drops a KPI from every member's assignment list.
type KpiUnassigner interface {
	UnassignKpi(ctx context.Context, kpiID string) (int, error)
}

// DeleteKpiDeps holds dependencies for DeleteKpi.
type DeleteKpiDeps struct {
	KpiStore KpiStore
	Members  KpiUnassigner
}

// ExecuteDeleteKpi removes a KPI and drops it from member assignments.
// PRE: KpiID names an existing KPI
// POST: KPI row is gone; no member assignment references it
func ExecuteDeleteKpi(ctx context.Context, input DeleteKpiInput, deps DeleteKpiDeps) error {
	if input.KpiID == "" {
		return errors.New("kpi ID is required")
	}
	if _, err := deps.KpiStore.GetByID(ctx, input.KpiID); err != nil {
		return err
	}

	unassigned, err := deps.Members.UnassignKpi(ctx, input.KpiID)
	if err != nil {
		return err
	}
	if err := deps.KpiStore.Delete(ctx, input.KpiID); err != nil {
		return err
	}

	slog.Info("kpi_event", "event", "kpi_deleted", "kpi_id", input.KpiID, "unassigned_members", unassigned)
	return nil
}
