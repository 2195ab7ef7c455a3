package orchestrators

import (
	"context"
	"testing"

	"opsdesk/internal/domain/kpi"
	"opsdesk/internal/domain/settings"
)

func TestExecuteSeed_EmptyDatabase(t *testing.T) {
	members := newMockMemberStore()
	kpis := newMockKpiStore()
	templates := newMockTemplateStore()
	settingsMock := newMockSettingsStore()

	if err := ExecuteSeed(context.Background(), SeedDeps{
		MemberStore:   members,
		KpiStore:      kpis,
		TemplateStore: templates,
		Settings:      settingsMock,
		Now:           fixedNow,
	}); err != nil {
		t.Fatalf("ExecuteSeed() error = %v", err)
	}

	if len(members.members) != 1 {
		t.Errorf("members = %d, want 1", len(members.members))
	}
	if len(kpis.kpis) != 4 {
		t.Errorf("kpis = %d, want 4", len(kpis.kpis))
	}
	if len(templates.templates) != 3 {
		t.Errorf("templates = %d, want 3", len(templates.templates))
	}

	// Seeded templates all validate.
	for _, tpl := range templates.templates {
		if err := tpl.Validate(); err != nil {
			t.Errorf("seeded template %q invalid: %v", tpl.Name, err)
		}
	}

	// Direction flags: time and attrition improve downward.
	lowerCount := 0
	for _, k := range kpis.kpis {
		if k.LowerIsBetter {
			lowerCount++
		}
	}
	if lowerCount != 2 {
		t.Errorf("LowerIsBetter kpis = %d, want 2", lowerCount)
	}

	// The seeded operator becomes the default active profile.
	var profile settings.ActiveProfile
	found, err := settingsMock.Get(context.Background(), settings.KeyActiveProfile, &profile)
	if err != nil || !found {
		t.Fatalf("active profile not seeded (found=%v err=%v)", found, err)
	}
	if profile.Name != "Operations Manager" {
		t.Errorf("active profile name = %q", profile.Name)
	}
}

func TestExecuteSeed_SkipsWhenMembersExist(t *testing.T) {
	members := newMockMemberStore()
	if err := ExecuteSeed(context.Background(), SeedDeps{
		MemberStore:   members,
		KpiStore:      newMockKpiStore(),
		TemplateStore: newMockTemplateStore(),
		Now:           fixedNow,
	}); err != nil {
		t.Fatalf("first seed: %v", err)
	}
	before := len(members.members)

	kpis := newMockKpiStore()
	kpis.kpis["k1"] = kpi.Kpi{ID: "k1", Name: "Existing", Target: 1}
	if err := ExecuteSeed(context.Background(), SeedDeps{
		MemberStore:   members,
		KpiStore:      kpis,
		TemplateStore: newMockTemplateStore(),
		Now:           fixedNow,
	}); err != nil {
		t.Fatalf("second seed: %v", err)
	}

	if len(members.members) != before {
		t.Error("reseed added members")
	}
	if len(kpis.kpis) != 1 {
		t.Errorf("reseed added kpis: %d", len(kpis.kpis))
	}
}
