package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"opsdesk/internal/adapters/email"
	clientStore "opsdesk/internal/adapters/storage/client"
	"opsdesk/internal/domain/client"
)

// SendClientEmailInput carries input for the client email orchestrator.
type SendClientEmailInput struct {
	ClientID string
	Subject  string
	HTML     string
	Snippet  string // short preview stored in the log; derived from HTML when blank
}

// SendClientEmailDeps holds dependencies for SendClientEmail.
type SendClientEmailDeps struct {
	ClientStore ClientStore
	Sender      email.Sender
	GenerateID  func() string
	Now         func() time.Time
}

// maxSnippetLen caps the stored preview text.
const maxSnippetLen = 140

// ExecuteSendClientEmail sends an email to a client's contact address
// and records it in the client's email log.
// PRE: client exists and has a contact email; Subject is non-empty
// POST: Email queued with the provider; one log entry appended
// INVARIANT: the log entry is written only after the provider accepts the send
func ExecuteSendClientEmail(ctx context.Context, input SendClientEmailInput, deps SendClientEmailDeps) (client.EmailEntry, error) {
	if input.ClientID == "" {
		return client.EmailEntry{}, errors.New("client ID is required")
	}
	if input.Subject == "" {
		return client.EmailEntry{}, errors.New("subject is required")
	}

	c, err := deps.ClientStore.GetByID(ctx, input.ClientID)
	if err != nil {
		return client.EmailEntry{}, err
	}
	if c.ContactEmail == "" {
		return client.EmailEntry{}, errors.New("client has no contact email")
	}

	result, err := deps.Sender.Send(ctx, email.SendRequest{
		To:      []string{c.ContactEmail},
		Subject: input.Subject,
		HTML:    input.HTML,
	})
	if err != nil {
		return client.EmailEntry{}, err
	}

	snippet := input.Snippet
	if snippet == "" {
		snippet = input.HTML
	}
	if len(snippet) > maxSnippetLen {
		snippet = snippet[:maxSnippetLen]
	}

	c.AddEmail(deps.GenerateID(), input.Subject, snippet, result.MessageID, deps.Now())
	if err := deps.ClientStore.Save(ctx, c); err != nil {
		return client.EmailEntry{}, err
	}

	entry := c.EmailLog[len(c.EmailLog)-1]
	slog.Info("client_event", "event", "client_email_sent", "client_id", c.ID, "message_id", result.MessageID)
	return entry, nil
}

// BroadcastClientEmailInput carries input for the broadcast orchestrator.
type BroadcastClientEmailInput struct {
	Subject string
	HTML    string
	Status  string // optional client status filter; blank addresses everyone
}

// BroadcastClientEmailDeps holds dependencies for BroadcastClientEmail.
type BroadcastClientEmailDeps struct {
	ClientStore ClientListStore
	Sender      email.Sender
	GenerateID  func() string
	Now         func() time.Time
}

// BroadcastClientEmailResult reports how the broadcast went.
type BroadcastClientEmailResult struct {
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"` // clients without a contact email
}

// ExecuteBroadcastClientEmail sends one email to every matching client's
// contact address in a single provider batch and records it per client.
// PRE: Subject is non-empty
// POST: one log entry appended per addressed client; clients without a
// contact email are counted as skipped and left untouched
func ExecuteBroadcastClientEmail(ctx context.Context, input BroadcastClientEmailInput, deps BroadcastClientEmailDeps) (BroadcastClientEmailResult, error) {
	if input.Subject == "" {
		return BroadcastClientEmailResult{}, errors.New("subject is required")
	}

	clients, err := deps.ClientStore.List(ctx, clientStore.ListFilter{Status: input.Status})
	if err != nil {
		return BroadcastClientEmailResult{}, err
	}

	var recipients []client.Client
	var reqs []email.SendRequest
	skipped := 0
	for _, c := range clients {
		if c.ContactEmail == "" {
			skipped++
			continue
		}
		recipients = append(recipients, c)
		reqs = append(reqs, email.SendRequest{
			To:      []string{c.ContactEmail},
			Subject: input.Subject,
			HTML:    input.HTML,
		})
	}
	if len(reqs) == 0 {
		return BroadcastClientEmailResult{Skipped: skipped}, nil
	}

	results, err := deps.Sender.SendBatch(ctx, reqs)
	if err != nil {
		return BroadcastClientEmailResult{}, err
	}

	snippet := input.HTML
	if len(snippet) > maxSnippetLen {
		snippet = snippet[:maxSnippetLen]
	}
	now := deps.Now()
	for i, c := range recipients {
		messageID := ""
		if i < len(results) {
			messageID = results[i].MessageID
		}
		c.AddEmail(deps.GenerateID(), input.Subject, snippet, messageID, now)
		if err := deps.ClientStore.Save(ctx, c); err != nil {
			return BroadcastClientEmailResult{}, err
		}
	}

	slog.Info("client_event", "event", "client_email_broadcast", "sent", len(recipients), "skipped", skipped)
	return BroadcastClientEmailResult{Sent: len(recipients), Skipped: skipped}, nil
}
