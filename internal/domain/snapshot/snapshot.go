// Package snapshot defines the full-dataset payload used by export and
// import. A snapshot is the complete dashboard state in one JSON
// document, suitable for backup or moving between instances.
package snapshot

import (
	"errors"
	"time"

	"opsdesk/internal/domain/client"
	"opsdesk/internal/domain/coaching"
	"opsdesk/internal/domain/kpi"
	"opsdesk/internal/domain/task"
	"opsdesk/internal/domain/teammember"
	"opsdesk/internal/domain/template"
)

// Version is the current snapshot format version.
const Version = 1

// Domain errors.
var (
	ErrUnknownVersion = errors.New("unsupported snapshot version")
	ErrEmptySnapshot  = errors.New("snapshot contains no collections")
)

// Metadata describes when and by what a snapshot was produced.
type Metadata struct {
	Version    int       `json:"version"`
	ExportedAt time.Time `json:"exported_at"`
	AppVersion string    `json:"app_version,omitempty"`
}

// Snapshot is the complete dashboard dataset.
type Snapshot struct {
	Metadata     Metadata                   `json:"metadata"`
	Clients      []client.Client            `json:"clients"`
	TeamMembers  []teammember.TeamMember    `json:"team_members"`
	Tasks        []task.Task                `json:"tasks"`
	Kpis         []kpi.Kpi                  `json:"kpis"`
	Templates    []template.Template        `json:"templates"`
	Sessions     []coaching.OneOnOneSession `json:"one_on_one_sessions"`
	PtlReports   []coaching.PtlReport       `json:"ptl_reports"`
	FeedForwards []coaching.FeedForward     `json:"feed_forwards"`
}

// CheckShape rejects payloads that are not a usable snapshot before any
// write happens.
// POST: Returns nil only for a version this build can read that carries
// at least one collection
func (s *Snapshot) CheckShape() error {
	if s.Metadata.Version != 0 && s.Metadata.Version != Version {
		return ErrUnknownVersion
	}
	if len(s.Clients) == 0 && len(s.TeamMembers) == 0 && len(s.Tasks) == 0 &&
		len(s.Kpis) == 0 && len(s.Templates) == 0 && len(s.Sessions) == 0 &&
		len(s.PtlReports) == 0 && len(s.FeedForwards) == 0 {
		return ErrEmptySnapshot
	}
	return nil
}

// Normalize repairs fields an external snapshot may omit or corrupt so
// imported records satisfy the same invariants as created ones. Tasks
// from older exports carry no elapsed time; they start at zero.
func (s *Snapshot) Normalize() {
	for i := range s.Tasks {
		t := &s.Tasks[i]
		if t.Status == "" {
			t.Status = task.StatusPending
		}
		if t.Priority == "" {
			t.Priority = task.PriorityMedium
		}
		if t.ElapsedSeconds < 0 {
			t.ElapsedSeconds = 0
		}
	}
	for i := range s.Clients {
		if s.Clients[i].Status == "" {
			s.Clients[i].Status = client.StatusHealthy
		}
	}
}
