package orchestrators

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	clientStore "opsdesk/internal/adapters/storage/client"
	coachingStore "opsdesk/internal/adapters/storage/coaching"
	kpiStore "opsdesk/internal/adapters/storage/kpi"
	taskStore "opsdesk/internal/adapters/storage/task"
	memberStore "opsdesk/internal/adapters/storage/teammember"
	templateStore "opsdesk/internal/adapters/storage/template"
	"opsdesk/internal/domain/snapshot"
)

// SnapshotStores bundles every collection store touched by export and import.
type SnapshotStores struct {
	Clients      clientStore.Store
	Members      memberStore.Store
	Tasks        taskStore.Store
	Kpis         kpiStore.Store
	Templates    templateStore.Store
	Sessions     coachingStore.SessionStore
	PtlReports   coachingStore.PtlStore
	FeedForwards coachingStore.FeedForwardStore
}

// ExportSnapshotDeps holds dependencies for ExportSnapshot.
type ExportSnapshotDeps struct {
	Stores     SnapshotStores
	Now        func() time.Time
	AppVersion string
}

// ExecuteExportSnapshot collects the full dataset into one snapshot.
// POST: Returns every record of every collection
func ExecuteExportSnapshot(ctx context.Context, deps ExportSnapshotDeps) (snapshot.Snapshot, error) {
	var snap snapshot.Snapshot
	var err error

	snap.Metadata = snapshot.Metadata{
		Version:    snapshot.Version,
		ExportedAt: deps.Now(),
		AppVersion: deps.AppVersion,
	}

	if snap.Clients, err = deps.Stores.Clients.List(ctx, clientStore.ListFilter{}); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("export clients: %w", err)
	}
	if snap.TeamMembers, err = deps.Stores.Members.List(ctx, memberStore.ListFilter{}); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("export team members: %w", err)
	}
	if snap.Tasks, err = deps.Stores.Tasks.List(ctx, taskStore.ListFilter{}); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("export tasks: %w", err)
	}
	if snap.Kpis, err = deps.Stores.Kpis.List(ctx, kpiStore.ListFilter{}); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("export kpis: %w", err)
	}
	if snap.Templates, err = deps.Stores.Templates.List(ctx, templateStore.ListFilter{}); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("export templates: %w", err)
	}
	if snap.Sessions, err = deps.Stores.Sessions.List(ctx, coachingStore.ListFilter{}); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("export sessions: %w", err)
	}
	if snap.PtlReports, err = deps.Stores.PtlReports.List(ctx, coachingStore.ListFilter{}); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("export ptl reports: %w", err)
	}
	if snap.FeedForwards, err = deps.Stores.FeedForwards.List(ctx, coachingStore.ListFilter{}); err != nil {
		return snapshot.Snapshot{}, fmt.Errorf("export feed forwards: %w", err)
	}

	slog.Info("snapshot_event", "event", "snapshot_exported",
		"clients", len(snap.Clients), "members", len(snap.TeamMembers),
		"tasks", len(snap.Tasks), "kpis", len(snap.Kpis))
	return snap, nil
}

// ImportSnapshotInput carries the incoming snapshot stream.
type ImportSnapshotInput struct {
	Reader io.Reader
}

// ImportSnapshotDeps holds dependencies for ImportSnapshot.
type ImportSnapshotDeps struct {
	Stores     SnapshotStores
	GenerateID func() string
}

// ImportSnapshotResult holds aggregate counts and per-record errors
// from an import run.
type ImportSnapshotResult struct {
	Imported int
	Skipped  int
	Errors   []ImportRecordError
}

// ImportRecordError describes a validation failure for one record.
type ImportRecordError struct {
	Collection string
	ID         string
	Message    string
}

// ExecuteImportSnapshot replaces the entire dataset with a snapshot.
// The payload's shape is checked before any record is written; a
// malformed document never destroys existing data.
// PRE: Reader holds a JSON snapshot
// POST: Stored collections match the snapshot's valid records; invalid
// records are reported and skipped
// INVARIANT: a shape-check failure leaves every collection untouched
func ExecuteImportSnapshot(ctx context.Context, input ImportSnapshotInput, deps ImportSnapshotDeps) (ImportSnapshotResult, error) {
	var snap snapshot.Snapshot
	dec := json.NewDecoder(input.Reader)
	if err := dec.Decode(&snap); err != nil {
		return ImportSnapshotResult{}, fmt.Errorf("snapshot is not valid JSON: %w", err)
	}
	if err := snap.CheckShape(); err != nil {
		return ImportSnapshotResult{}, err
	}
	snap.Normalize()

	if err := wipeAll(ctx, deps.Stores); err != nil {
		return ImportSnapshotResult{}, err
	}

	var result ImportSnapshotResult
	record := func(collection, id string, validateErr error, save func() error) {
		if validateErr != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ImportRecordError{Collection: collection, ID: id, Message: validateErr.Error()})
			return
		}
		if err := save(); err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, ImportRecordError{Collection: collection, ID: id, Message: err.Error()})
			return
		}
		result.Imported++
	}

	for i := range snap.TeamMembers {
		m := snap.TeamMembers[i]
		if m.ID == "" {
			m.ID = deps.GenerateID()
		}
		record("team_members", m.ID, m.Validate(), func() error { return deps.Stores.Members.Save(ctx, m) })
	}
	for i := range snap.Clients {
		c := snap.Clients[i]
		if c.ID == "" {
			c.ID = deps.GenerateID()
		}
		record("clients", c.ID, c.Validate(), func() error { return deps.Stores.Clients.Save(ctx, c) })
	}
	for i := range snap.Tasks {
		t := snap.Tasks[i]
		if t.ID == "" {
			t.ID = deps.GenerateID()
		}
		record("tasks", t.ID, t.Validate(), func() error { return deps.Stores.Tasks.Save(ctx, t) })
	}
	for i := range snap.Kpis {
		k := snap.Kpis[i]
		if k.ID == "" {
			k.ID = deps.GenerateID()
		}
		record("kpis", k.ID, k.Validate(), func() error { return deps.Stores.Kpis.Save(ctx, k) })
	}
	for i := range snap.Templates {
		t := snap.Templates[i]
		if t.ID == "" {
			t.ID = deps.GenerateID()
		}
		record("templates", t.ID, t.Validate(), func() error { return deps.Stores.Templates.Save(ctx, t) })
	}
	for i := range snap.Sessions {
		s := snap.Sessions[i]
		if s.ID == "" {
			s.ID = deps.GenerateID()
		}
		record("one_on_one_sessions", s.ID, s.Validate(), func() error { return deps.Stores.Sessions.Save(ctx, s) })
	}
	for i := range snap.PtlReports {
		r := snap.PtlReports[i]
		if r.ID == "" {
			r.ID = deps.GenerateID()
		}
		record("ptl_reports", r.ID, r.Validate(), func() error { return deps.Stores.PtlReports.Save(ctx, r) })
	}
	for i := range snap.FeedForwards {
		f := snap.FeedForwards[i]
		if f.ID == "" {
			f.ID = deps.GenerateID()
		}
		record("feed_forwards", f.ID, f.Validate(), func() error { return deps.Stores.FeedForwards.Save(ctx, f) })
	}

	slog.Info("snapshot_event", "event", "snapshot_imported",
		"imported", result.Imported, "skipped", result.Skipped)
	return result, nil
}

// wipeAll clears every collection ahead of an import.
func wipeAll(ctx context.Context, stores SnapshotStores) error {
	clients, err := stores.Clients.List(ctx, clientStore.ListFilter{})
	if err != nil {
		return err
	}
	for _, c := range clients {
		if err := stores.Clients.Delete(ctx, c.ID); err != nil {
			return err
		}
	}

	members, err := stores.Members.List(ctx, memberStore.ListFilter{})
	if err != nil {
		return err
	}
	for _, m := range members {
		if err := stores.Members.Delete(ctx, m.ID); err != nil {
			return err
		}
	}

	tasks, err := stores.Tasks.List(ctx, taskStore.ListFilter{})
	if err != nil {
		return err
	}
	for _, t := range tasks {
		if err := stores.Tasks.Delete(ctx, t.ID); err != nil {
			return err
		}
	}

	kpis, err := stores.Kpis.List(ctx, kpiStore.ListFilter{})
	if err != nil {
		return err
	}
	for _, k := range kpis {
		if err := stores.Kpis.Delete(ctx, k.ID); err != nil {
			return err
		}
	}

	templates, err := stores.Templates.List(ctx, templateStore.ListFilter{})
	if err != nil {
		return err
	}
	for _, t := range templates {
		if err := stores.Templates.Delete(ctx, t.ID); err != nil {
			return err
		}
	}

	sessions, err := stores.Sessions.List(ctx, coachingStore.ListFilter{})
	if err != nil {
		return err
	}
	for _, s := range sessions {
		if err := stores.Sessions.Delete(ctx, s.ID); err != nil {
			return err
		}
	}

	reports, err := stores.PtlReports.List(ctx, coachingStore.ListFilter{})
	if err != nil {
		return err
	}
	for _, r := range reports {
		if err := stores.PtlReports.Delete(ctx, r.ID); err != nil {
			return err
		}
	}

	feedForwards, err := stores.FeedForwards.List(ctx, coachingStore.ListFilter{})
	if err != nil {
		return err
	}
	for _, f := range feedForwards {
		if err := stores.FeedForwards.Delete(ctx, f.ID); err != nil {
			return err
		}
	}

	return nil
}
