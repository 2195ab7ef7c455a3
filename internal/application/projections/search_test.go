package projections

import (
	"context"
	"testing"

	clientStore "opsdesk/internal/adapters/storage/client"
	kpiStore "opsdesk/internal/adapters/storage/kpi"
	taskStore "opsdesk/internal/adapters/storage/task"
	memberStore "opsdesk/internal/adapters/storage/teammember"
	templateStore "opsdesk/internal/adapters/storage/template"
	domainClient "opsdesk/internal/domain/client"
	domainKpi "opsdesk/internal/domain/kpi"
	domainTask "opsdesk/internal/domain/task"
	domainMember "opsdesk/internal/domain/teammember"
	domainTemplate "opsdesk/internal/domain/template"
)

type mockSearchClientStore struct {
	clients []domainClient.Client
}

// GetByID returns a seeded client by ID.
// PRE: id is non-empty
// POST: Returns the seeded client or an error
func (m *mockSearchClientStore) GetByID(_ context.Context, id string) (domainClient.Client, error) {
	for _, c := range m.clients {
		if c.ID == id {
			return c, nil
		}
	}
	return domainClient.Client{}, context.DeadlineExceeded
}

// List returns all seeded clients.
// PRE: filter is valid
// POST: Returns all seeded clients
func (m *mockSearchClientStore) List(_ context.Context, _ clientStore.ListFilter) ([]domainClient.Client, error) {
	return m.clients, nil
}

type mockSearchMemberStore struct {
	members []domainMember.TeamMember
}

// List returns all seeded members.
// PRE: filter is valid
// POST: Returns all seeded members
func (m *mockSearchMemberStore) List(_ context.Context, _ memberStore.ListFilter) ([]domainMember.TeamMember, error) {
	return m.members, nil
}

type mockSearchTaskStore struct {
	tasks []domainTask.Task
}

// List returns all seeded tasks.
// PRE: filter is valid
// POST: Returns all seeded tasks
func (m *mockSearchTaskStore) List(_ context.Context, _ taskStore.ListFilter) ([]domainTask.Task, error) {
	return m.tasks, nil
}

type mockSearchKpiStore struct {
	kpis []domainKpi.Kpi
}

// GetByID returns a seeded KPI by ID.
// PRE: id is non-empty
// POST: Returns the seeded KPI or an error
func (m *mockSearchKpiStore) GetByID(_ context.Context, id string) (domainKpi.Kpi, error) {
	for _, k := range m.kpis {
		if k.ID == id {
			return k, nil
		}
	}
	return domainKpi.Kpi{}, context.DeadlineExceeded
}

// List returns all seeded KPIs.
// PRE: filter is valid
// POST: Returns all seeded KPIs
func (m *mockSearchKpiStore) List(_ context.Context, _ kpiStore.ListFilter) ([]domainKpi.Kpi, error) {
	return m.kpis, nil
}

type mockSearchTemplateStore struct {
	templates []domainTemplate.Template
}

// List returns all seeded templates.
// PRE: filter is valid
// POST: Returns all seeded templates
func (m *mockSearchTemplateStore) List(_ context.Context, _ templateStore.ListFilter) ([]domainTemplate.Template, error) {
	return m.templates, nil
}

func searchDeps() SearchDeps {
	return SearchDeps{
		ClientStore: &mockSearchClientStore{clients: []domainClient.Client{
			{ID: "c1", Name: "Acme Corp", Status: "healthy", Tags: []string{"enterprise"}},
			{ID: "c2", Name: "Globex", Status: "at_risk", Notes: "migration to acme tooling"},
		}},
		MemberStore: &mockSearchMemberStore{members: []domainMember.TeamMember{
			{ID: "m1", Name: "Dana Cole", Role: "Team Lead", Skills: []string{"escalations"}},
		}},
		TaskStore: &mockSearchTaskStore{tasks: []domainTask.Task{
			{ID: "t1", Title: "Acme QBR prep", Status: "pending"},
			{ID: "t2", Title: "Roster update", Description: "cover escalations desk", Status: "pending"},
		}},
		TemplateStore: &mockSearchTemplateStore{templates: []domainTemplate.Template{
			{ID: "tpl1", Name: "Escalation Email", Category: "email", Content: "We are on it"},
		}},
	}
}

// TestQuerySearch_AcrossCollections verifies hits come back tagged and in collection order.
func TestQuerySearch_AcrossCollections(t *testing.T) {
	res, err := QuerySearch(context.Background(), SearchQuery{Term: "acme"}, searchDeps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(res.Hits) != 3 {
		t.Fatalf("hits=%d want 3: %+v", len(res.Hits), res.Hits)
	}
	// c1 by name, c2 by notes, t1 by title; collection order holds.
	if res.Hits[0].Type != SearchTypeClient || res.Hits[0].ID != "c1" {
		t.Errorf("hit[0]=%+v", res.Hits[0])
	}
	if res.Hits[1].Type != SearchTypeClient || res.Hits[1].ID != "c2" {
		t.Errorf("hit[1]=%+v", res.Hits[1])
	}
	if res.Hits[2].Type != SearchTypeTask || res.Hits[2].ID != "t1" {
		t.Errorf("hit[2]=%+v", res.Hits[2])
	}
}

// TestQuerySearch_CaseInsensitive verifies matching ignores case.
func TestQuerySearch_CaseInsensitive(t *testing.T) {
	res, err := QuerySearch(context.Background(), SearchQuery{Term: "ESCALATION"}, searchDeps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// m1 by skill, t2 by description, tpl1 by name.
	if len(res.Hits) != 3 {
		t.Fatalf("hits=%d want 3: %+v", len(res.Hits), res.Hits)
	}
	if res.Hits[0].Type != SearchTypeMember || res.Hits[2].Type != SearchTypeTemplate {
		t.Errorf("hits=%+v", res.Hits)
	}
}

// TestQuerySearch_BlankTerm verifies a blank term returns nothing.
func TestQuerySearch_BlankTerm(t *testing.T) {
	for _, term := range []string{"", "   "} {
		res, err := QuerySearch(context.Background(), SearchQuery{Term: term}, searchDeps())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(res.Hits) != 0 {
			t.Errorf("term %q: hits=%d want 0", term, len(res.Hits))
		}
	}
}

// TestQuerySearch_PerCollectionLimit verifies the limit caps each collection separately.
func TestQuerySearch_PerCollectionLimit(t *testing.T) {
	res, err := QuerySearch(context.Background(), SearchQuery{Term: "e", Limit: 1}, searchDeps())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	counts := map[string]int{}
	for _, h := range res.Hits {
		counts[h.Type]++
		if counts[h.Type] > 1 {
			t.Fatalf("collection %s exceeded limit: %+v", h.Type, res.Hits)
		}
	}
}
