package orchestrators

import (
	"context"
	"log/slog"
	"time"

	memberStore "opsdesk/internal/adapters/storage/teammember"
	"opsdesk/internal/domain/kpi"
	"opsdesk/internal/domain/settings"
	"opsdesk/internal/domain/teammember"
	"opsdesk/internal/domain/template"
	"opsdesk/internal/idgen"
)

// MemberStoreForSeed defines the store interface needed by Seed.
type MemberStoreForSeed interface {
	Save(ctx context.Context, m teammember.TeamMember) error
	List(ctx context.Context, filter memberStore.ListFilter) ([]teammember.TeamMember, error)
}

// KpiStoreForSeed defines the store interface needed by Seed.
type KpiStoreForSeed interface {
	Save(ctx context.Context, k kpi.Kpi) error
}

// TemplateStoreForSeed defines the store interface needed by Seed.
type TemplateStoreForSeed interface {
	Save(ctx context.Context, t template.Template) error
}

// SettingsStoreForSeed defines the store interface needed by Seed.
type SettingsStoreForSeed interface {
	Set(ctx context.Context, key string, value any) error
}

// SeedDeps holds dependencies for Seed. Settings may be nil; the
// default profile selection is skipped then.
type SeedDeps struct {
	MemberStore   MemberStoreForSeed
	KpiStore      KpiStoreForSeed
	TemplateStore TemplateStoreForSeed
	Settings      SettingsStoreForSeed
	Now           func() time.Time
}

// ExecuteSeed creates a starter dataset if the database is empty: a
// default operator, the KPIs every BPO team tracks, and a few common
// templates. Clients and tasks start empty.
func ExecuteSeed(ctx context.Context, deps SeedDeps) error {
	existing, err := deps.MemberStore.List(ctx, memberStore.ListFilter{Limit: 1})
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil // Already seeded
	}

	operator := teammember.TeamMember{
		ID:    idgen.New(),
		Name:  "Operations Manager",
		Role:  "Manager",
		Email: "manager@opsdesk.local",
		HomeOffice: teammember.HomeOffice{
			Status: teammember.HomeOfficeOnSite,
		},
	}
	if err := deps.MemberStore.Save(ctx, operator); err != nil {
		return err
	}
	if deps.Settings != nil {
		profile := settings.ActiveProfile{MemberID: operator.ID, Name: operator.Name}
		if err := deps.Settings.Set(ctx, settings.KeyActiveProfile, profile); err != nil {
			return err
		}
	}

	kpis := []kpi.Kpi{
		{ID: idgen.New(), Name: "CSAT", Target: 90},
		{ID: idgen.New(), Name: "First Response Time (min)", Target: 15, LowerIsBetter: true},
		{ID: idgen.New(), Name: "Attrition %", Target: 5, LowerIsBetter: true},
		{ID: idgen.New(), Name: "QA Score", Target: 85},
	}
	for _, k := range kpis {
		if err := deps.KpiStore.Save(ctx, k); err != nil {
			return err
		}
	}

	now := deps.Now()
	templates := []template.Template{
		{
			ID:        idgen.New(),
			Name:      "Weekly Client Update",
			Category:  template.CategoryEmail,
			Subject:   "Weekly update for {{client_name}}",
			Content:   "Hi {{contact_name}},\n\nHere is this week's summary for {{client_name}}:\n\n{{summary}}\n\nBest regards,\n{{sender_name}}",
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:             idgen.New(),
			Name:           "Agent Workstation Issue",
			Category:       template.CategoryITTicket,
			TicketPriority: "high",
			Content:        "Agent: {{agent_name}}\nIssue: {{issue}}\nImpact: {{impact}}",
			CreatedAt:      now,
			UpdatedAt:      now,
		},
		{
			ID:           idgen.New(),
			Name:         "End of Day Report",
			Category:     template.CategoryReport,
			ReportFields: []string{"wins", "blockers", "tomorrow"},
			Content:      "Wins: {{wins}}\nBlockers: {{blockers}}\nTomorrow: {{tomorrow}}",
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
	for _, t := range templates {
		if err := deps.TemplateStore.Save(ctx, t); err != nil {
			return err
		}
	}

	slog.Info("seed_event", "event", "seeded", "members", 1, "kpis", len(kpis), "templates", len(templates))
	return nil
}
