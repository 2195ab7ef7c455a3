package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"opsdesk/internal/adapters/ai"
	clientStore "opsdesk/internal/adapters/storage/client"
	coachingStore "opsdesk/internal/adapters/storage/coaching"
	kpiStore "opsdesk/internal/adapters/storage/kpi"
	taskStore "opsdesk/internal/adapters/storage/task"
	memberStore "opsdesk/internal/adapters/storage/teammember"
	templateStore "opsdesk/internal/adapters/storage/template"
	"opsdesk/internal/domain/client"
	"opsdesk/internal/domain/coaching"
	"opsdesk/internal/domain/kpi"
	"opsdesk/internal/domain/task"
	"opsdesk/internal/domain/teammember"
	"opsdesk/internal/domain/template"
)

var fixedTime = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return fixedTime }

func fixedID() string { return "test-id-001" }

// seqID returns a generator producing id-1, id-2, ...
func seqID() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// mockClientStore implements ClientStore and ClientListStore for testing.
type mockClientStore struct {
	clients map[string]client.Client
	saves   int
}

func newMockClientStore() *mockClientStore {
	return &mockClientStore{clients: make(map[string]client.Client)}
}

func (m *mockClientStore) GetByID(_ context.Context, id string) (client.Client, error) {
	c, ok := m.clients[id]
	if !ok {
		return client.Client{}, errors.New("client not found")
	}
	return c, nil
}

func (m *mockClientStore) Save(_ context.Context, c client.Client) error {
	m.clients[c.ID] = c
	m.saves++
	return nil
}

func (m *mockClientStore) Delete(_ context.Context, id string) error {
	delete(m.clients, id)
	return nil
}

func (m *mockClientStore) List(_ context.Context, _ clientStore.ListFilter) ([]client.Client, error) {
	var out []client.Client
	for _, c := range m.clients {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockClientStore) SearchByName(_ context.Context, query string, limit int) ([]client.Client, error) {
	var out []client.Client
	for _, c := range m.clients {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(query)) {
			out = append(out, c)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// mockTaskStore implements TaskStore, TaskDetacher and TaskReassigner for testing.
type mockTaskStore struct {
	tasks map[string]task.Task
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{tasks: make(map[string]task.Task)}
}

func (m *mockTaskStore) GetByID(_ context.Context, id string) (task.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return task.Task{}, errors.New("task not found")
	}
	return t, nil
}

func (m *mockTaskStore) Save(_ context.Context, t task.Task) error {
	m.tasks[t.ID] = t
	return nil
}

func (m *mockTaskStore) Delete(_ context.Context, id string) error {
	delete(m.tasks, id)
	return nil
}

func (m *mockTaskStore) DetachClient(_ context.Context, clientID string) (int, error) {
	n := 0
	for id, t := range m.tasks {
		if t.ClientID == clientID {
			t.ClientID = ""
			m.tasks[id] = t
			n++
		}
	}
	return n, nil
}

func (m *mockTaskStore) ReassignAll(_ context.Context, from, to string) (int, error) {
	n := 0
	for id, t := range m.tasks {
		if t.AssigneeID == from {
			t.AssigneeID = to
			m.tasks[id] = t
			n++
		}
	}
	return n, nil
}

func (m *mockTaskStore) List(_ context.Context, _ taskStore.ListFilter) ([]task.Task, error) {
	var out []task.Task
	for _, t := range m.tasks {
		out = append(out, t)
	}
	return out, nil
}

// mockMemberStore implements MemberStore and MemberLookup for testing.
type mockMemberStore struct {
	members map[string]teammember.TeamMember
}

func newMockMemberStore() *mockMemberStore {
	return &mockMemberStore{members: make(map[string]teammember.TeamMember)}
}

func (m *mockMemberStore) GetByID(_ context.Context, id string) (teammember.TeamMember, error) {
	tm, ok := m.members[id]
	if !ok {
		return teammember.TeamMember{}, errors.New("member not found")
	}
	return tm, nil
}

func (m *mockMemberStore) Save(_ context.Context, tm teammember.TeamMember) error {
	m.members[tm.ID] = tm
	return nil
}

func (m *mockMemberStore) Delete(_ context.Context, id string) error {
	delete(m.members, id)
	return nil
}

func (m *mockMemberStore) List(_ context.Context, _ memberStore.ListFilter) ([]teammember.TeamMember, error) {
	var out []teammember.TeamMember
	for _, tm := range m.members {
		out = append(out, tm)
	}
	return out, nil
}

func (m *mockMemberStore) SearchByName(_ context.Context, query string, limit int) ([]teammember.TeamMember, error) {
	var out []teammember.TeamMember
	for _, tm := range m.members {
		if strings.Contains(strings.ToLower(tm.Name), strings.ToLower(query)) {
			out = append(out, tm)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockMemberStore) UnassignKpi(_ context.Context, kpiID string) (int, error) {
	n := 0
	for id, tm := range m.members {
		kept := tm.AssignedKpiIDs[:0]
		for _, kid := range tm.AssignedKpiIDs {
			if kid == kpiID {
				n++
				continue
			}
			kept = append(kept, kid)
		}
		tm.AssignedKpiIDs = kept
		m.members[id] = tm
	}
	return n, nil
}

// mockCoachingDeleter implements CoachingDeleter for testing.
type mockCoachingDeleter struct {
	byMember map[string]int
	deleted  []string
}

func (m *mockCoachingDeleter) DeleteByMember(_ context.Context, memberID string) (int, error) {
	m.deleted = append(m.deleted, memberID)
	return m.byMember[memberID], nil
}

// mockKpiStore implements KpiStore for testing.
type mockKpiStore struct {
	kpis map[string]kpi.Kpi
}

func newMockKpiStore() *mockKpiStore {
	return &mockKpiStore{kpis: make(map[string]kpi.Kpi)}
}

func (m *mockKpiStore) GetByID(_ context.Context, id string) (kpi.Kpi, error) {
	k, ok := m.kpis[id]
	if !ok {
		return kpi.Kpi{}, errors.New("kpi not found")
	}
	return k, nil
}

func (m *mockKpiStore) Save(_ context.Context, k kpi.Kpi) error {
	m.kpis[k.ID] = k
	return nil
}

func (m *mockKpiStore) Delete(_ context.Context, id string) error {
	delete(m.kpis, id)
	return nil
}

func (m *mockKpiStore) List(_ context.Context, _ kpiStore.ListFilter) ([]kpi.Kpi, error) {
	var out []kpi.Kpi
	for _, k := range m.kpis {
		out = append(out, k)
	}
	return out, nil
}

// mockTemplateStore implements TemplateStore for testing.
type mockTemplateStore struct {
	templates map[string]template.Template
}

func newMockTemplateStore() *mockTemplateStore {
	return &mockTemplateStore{templates: make(map[string]template.Template)}
}

func (m *mockTemplateStore) GetByID(_ context.Context, id string) (template.Template, error) {
	t, ok := m.templates[id]
	if !ok {
		return template.Template{}, errors.New("template not found")
	}
	return t, nil
}

func (m *mockTemplateStore) Save(_ context.Context, t template.Template) error {
	m.templates[t.ID] = t
	return nil
}

func (m *mockTemplateStore) Delete(_ context.Context, id string) error {
	delete(m.templates, id)
	return nil
}

func (m *mockTemplateStore) List(_ context.Context, _ templateStore.ListFilter) ([]template.Template, error) {
	var out []template.Template
	for _, t := range m.templates {
		out = append(out, t)
	}
	return out, nil
}

// mockSessionStore implements the coaching SessionStore for testing.
type mockSessionStore struct {
	sessions map[string]coaching.OneOnOneSession
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]coaching.OneOnOneSession)}
}

func (m *mockSessionStore) GetByID(_ context.Context, id string) (coaching.OneOnOneSession, error) {
	s, ok := m.sessions[id]
	if !ok {
		return coaching.OneOnOneSession{}, errors.New("session not found")
	}
	return s, nil
}

func (m *mockSessionStore) Save(_ context.Context, s coaching.OneOnOneSession) error {
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionStore) Delete(_ context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionStore) List(_ context.Context, _ coachingStore.ListFilter) ([]coaching.OneOnOneSession, error) {
	var out []coaching.OneOnOneSession
	for _, s := range m.sessions {
		out = append(out, s)
	}
	return out, nil
}

func (m *mockSessionStore) DeleteByMember(_ context.Context, memberID string) (int, error) {
	n := 0
	for id, s := range m.sessions {
		if s.MemberID == memberID {
			delete(m.sessions, id)
			n++
		}
	}
	return n, nil
}

// mockPtlStore implements the coaching PtlStore for testing.
type mockPtlStore struct {
	reports map[string]coaching.PtlReport
}

func newMockPtlStore() *mockPtlStore {
	return &mockPtlStore{reports: make(map[string]coaching.PtlReport)}
}

func (m *mockPtlStore) GetByID(_ context.Context, id string) (coaching.PtlReport, error) {
	r, ok := m.reports[id]
	if !ok {
		return coaching.PtlReport{}, errors.New("ptl report not found")
	}
	return r, nil
}

func (m *mockPtlStore) Save(_ context.Context, r coaching.PtlReport) error {
	m.reports[r.ID] = r
	return nil
}

func (m *mockPtlStore) Delete(_ context.Context, id string) error {
	delete(m.reports, id)
	return nil
}

func (m *mockPtlStore) List(_ context.Context, _ coachingStore.ListFilter) ([]coaching.PtlReport, error) {
	var out []coaching.PtlReport
	for _, r := range m.reports {
		out = append(out, r)
	}
	return out, nil
}

func (m *mockPtlStore) DeleteByMember(_ context.Context, memberID string) (int, error) {
	n := 0
	for id, r := range m.reports {
		if r.MemberID == memberID {
			delete(m.reports, id)
			n++
		}
	}
	return n, nil
}

// mockFeedForwardStore implements the coaching FeedForwardStore for testing.
type mockFeedForwardStore struct {
	records map[string]coaching.FeedForward
}

func newMockFeedForwardStore() *mockFeedForwardStore {
	return &mockFeedForwardStore{records: make(map[string]coaching.FeedForward)}
}

func (m *mockFeedForwardStore) GetByID(_ context.Context, id string) (coaching.FeedForward, error) {
	f, ok := m.records[id]
	if !ok {
		return coaching.FeedForward{}, errors.New("feed forward not found")
	}
	return f, nil
}

func (m *mockFeedForwardStore) Save(_ context.Context, f coaching.FeedForward) error {
	m.records[f.ID] = f
	return nil
}

func (m *mockFeedForwardStore) Delete(_ context.Context, id string) error {
	delete(m.records, id)
	return nil
}

func (m *mockFeedForwardStore) List(_ context.Context, _ coachingStore.ListFilter) ([]coaching.FeedForward, error) {
	var out []coaching.FeedForward
	for _, f := range m.records {
		out = append(out, f)
	}
	return out, nil
}

func (m *mockFeedForwardStore) DeleteByMember(_ context.Context, memberID string) (int, error) {
	n := 0
	for id, f := range m.records {
		if f.MemberID == memberID {
			delete(m.records, id)
			n++
		}
	}
	return n, nil
}

// stubCompleter implements ai.Completer, returning a canned response.
type stubCompleter struct {
	response string
	err      error
	requests []ai.Request
}

func (s *stubCompleter) Complete(_ context.Context, req ai.Request) (string, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}
