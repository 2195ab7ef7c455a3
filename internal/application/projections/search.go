package projections

import (
	"context"
	"strings"

	clientStore "opsdesk/internal/adapters/storage/client"
	taskStore "opsdesk/internal/adapters/storage/task"
	memberStore "opsdesk/internal/adapters/storage/teammember"
	templateStore "opsdesk/internal/adapters/storage/template"
)

// Search result type tags, in collection order.
const (
	SearchTypeClient   = "client"
	SearchTypeMember   = "team_member"
	SearchTypeTask     = "task"
	SearchTypeTemplate = "template"
)

// SearchQuery carries query parameters.
type SearchQuery struct {
	Term  string
	Limit int // per-collection cap; 0 means no cap
}

// SearchHit is one match tagged with its source collection.
type SearchHit struct {
	Type     string `json:"type"`
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// SearchResult carries the query result.
type SearchResult struct {
	Hits []SearchHit
}

// SearchDeps holds dependencies for Search.
type SearchDeps struct {
	ClientStore   ClientStore
	MemberStore   MemberStore
	TaskStore     TaskStore
	TemplateStore TemplateStore
}

// QuerySearch matches a term across clients, team members, tasks, and
// templates. Matching is case-insensitive substring; hits come back in
// collection order with no ranking.
// PRE: none
// POST: Returns no hits for a blank term
func QuerySearch(ctx context.Context, query SearchQuery, deps SearchDeps) (SearchResult, error) {
	term := strings.ToLower(strings.TrimSpace(query.Term))
	if term == "" {
		return SearchResult{}, nil
	}

	var hits []SearchHit
	matches := func(fields ...string) bool {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(f), term) {
				return true
			}
		}
		return false
	}
	capped := func(n int) bool {
		return query.Limit > 0 && n >= query.Limit
	}

	clients, err := deps.ClientStore.List(ctx, clientStore.ListFilter{})
	if err != nil {
		return SearchResult{}, err
	}
	n := 0
	for _, c := range clients {
		if capped(n) {
			break
		}
		if matches(append([]string{c.Name, c.Notes}, c.Tags...)...) {
			hits = append(hits, SearchHit{Type: SearchTypeClient, ID: c.ID, Title: c.Name, Subtitle: c.Status})
			n++
		}
	}

	members, err := deps.MemberStore.List(ctx, memberStore.ListFilter{})
	if err != nil {
		return SearchResult{}, err
	}
	n = 0
	for _, m := range members {
		if capped(n) {
			break
		}
		if matches(append([]string{m.Name, m.Role}, m.Skills...)...) {
			hits = append(hits, SearchHit{Type: SearchTypeMember, ID: m.ID, Title: m.Name, Subtitle: m.Role})
			n++
		}
	}

	tasks, err := deps.TaskStore.List(ctx, taskStore.ListFilter{})
	if err != nil {
		return SearchResult{}, err
	}
	n = 0
	for _, t := range tasks {
		if capped(n) {
			break
		}
		if matches(t.Title, t.Description) {
			hits = append(hits, SearchHit{Type: SearchTypeTask, ID: t.ID, Title: t.Title, Subtitle: t.Status})
			n++
		}
	}

	templates, err := deps.TemplateStore.List(ctx, templateStore.ListFilter{})
	if err != nil {
		return SearchResult{}, err
	}
	n = 0
	for _, tpl := range templates {
		if capped(n) {
			break
		}
		if matches(append([]string{tpl.Name, tpl.Content}, tpl.Tags...)...) {
			hits = append(hits, SearchHit{Type: SearchTypeTemplate, ID: tpl.ID, Title: tpl.Name, Subtitle: tpl.Category})
			n++
		}
	}

	return SearchResult{Hits: hits}, nil
}
