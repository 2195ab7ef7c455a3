package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"opsdesk/internal/domain/client"
)

// ClientStore defines the store interface needed by the client orchestrators.
type ClientStore interface {
	GetByID(ctx context.Context, id string) (client.Client, error)
	Save(ctx context.Context, c client.Client) error
	Delete(ctx context.Context, id string) error
}

// TaskDetacher clears client references on tasks during a client delete.
type TaskDetacher interface {
	DetachClient(ctx context.Context, clientID string) (int, error)
}

// CreateClientInput carries input for the create orchestrator.
type CreateClientInput struct {
	Name          string
	Status        string
	ContactPerson string
	ContactEmail  string
	Notes         string
	Tags          []string
}

// CreateClientDeps holds dependencies for CreateClient.
type CreateClientDeps struct {
	ClientStore ClientStore
	GenerateID  func() string
}

// ExecuteCreateClient creates a new client engagement.
// PRE: Name is non-empty; Status is a known constant (healthy when blank)
// POST: Client is persisted with a fresh ID and empty logs
func ExecuteCreateClient(ctx context.Context, input CreateClientInput, deps CreateClientDeps) (client.Client, error) {
	status := input.Status
	if status == "" {
		status = client.StatusHealthy
	}

	c := client.Client{
		ID:            deps.GenerateID(),
		Name:          input.Name,
		Status:        status,
		ContactPerson: input.ContactPerson,
		ContactEmail:  input.ContactEmail,
		Notes:         input.Notes,
		Tags:          input.Tags,
	}
	if err := c.Validate(); err != nil {
		return client.Client{}, err
	}
	if err := deps.ClientStore.Save(ctx, c); err != nil {
		return client.Client{}, err
	}

	slog.Info("client_event", "event", "client_created", "client_id", c.ID, "name", c.Name)
	return c, nil
}

// UpdateClientInput carries the full replacement state for a client.
// Sub-record logs are not updatable here; they only grow through the
// pulse and email orchestrators.
type UpdateClientInput struct {
	ClientID      string
	Name          string
	Status        string
	ContactPerson string
	ContactEmail  string
	Notes         string
	Tags          []string
	Audit         *client.Audit
	AssignedIDs   *[]string
}

// UpdateClientDeps holds dependencies for UpdateClient.
type UpdateClientDeps struct {
	ClientStore ClientStore
}

// ExecuteUpdateClient updates a client's editable fields.
// PRE: ClientID names an existing client; new state validates
// POST: Client is persisted; pulse and email logs are untouched
// INVARIANT: applying the same input twice yields the same stored state
func ExecuteUpdateClient(ctx context.Context, input UpdateClientInput, deps UpdateClientDeps) (client.Client, error) {
	if input.ClientID == "" {
		return client.Client{}, errors.New("client ID is required")
	}

	c, err := deps.ClientStore.GetByID(ctx, input.ClientID)
	if err != nil {
		return client.Client{}, err
	}

	c.Name = input.Name
	c.Status = input.Status
	c.ContactPerson = input.ContactPerson
	c.ContactEmail = input.ContactEmail
	c.Notes = input.Notes
	c.Tags = input.Tags
	if input.Audit != nil {
		c.Audit = *input.Audit
	}
	if input.AssignedIDs != nil {
		c.AssignedMemberIDs = *input.AssignedIDs
	}

	if err := c.Validate(); err != nil {
		return client.Client{}, err
	}
	if err := deps.ClientStore.Save(ctx, c); err != nil {
		return client.Client{}, err
	}

	slog.Info("client_event", "event", "client_updated", "client_id", c.ID)
	return c, nil
}

// DeleteClientInput carries input for the delete orchestrator.
type DeleteClientInput struct {
	ClientID string
}

// DeleteClientDeps holds dependencies for DeleteClient.
type DeleteClientDeps struct {
	ClientStore ClientStore
	Tasks       TaskDetacher
}

// DeleteClientResult reports what the cascade touched.
type DeleteClientResult struct {
	DetachedTasks int
}

// ExecuteDeleteClient removes a client and detaches its tasks.
// PRE: ClientID names an existing client
// POST: Client row is gone; linked tasks survive with no client reference
// INVARIANT: tasks are never deleted by a client cascade
func ExecuteDeleteClient(ctx context.Context, input DeleteClientInput, deps DeleteClientDeps) (DeleteClientResult, error) {
	if input.ClientID == "" {
		return DeleteClientResult{}, errors.New("client ID is required")
	}

	// Confirm existence before touching anything else.
	if _, err := deps.ClientStore.GetByID(ctx, input.ClientID); err != nil {
		return DeleteClientResult{}, err
	}

	detached, err := deps.Tasks.DetachClient(ctx, input.ClientID)
	if err != nil {
		return DeleteClientResult{}, err
	}
	if err := deps.ClientStore.Delete(ctx, input.ClientID); err != nil {
		return DeleteClientResult{}, err
	}

	slog.Info("client_event", "event", "client_deleted", "client_id", input.ClientID, "detached_tasks", detached)
	return DeleteClientResult{DetachedTasks: detached}, nil
}

// LogPulseInput carries input for the pulse orchestrator.
type LogPulseInput struct {
	ClientID string
	Note     string
	LoggedBy string
}

// LogPulseDeps holds dependencies for LogPulse.
type LogPulseDeps struct {
	ClientStore ClientStore
	GenerateID  func() string
	Now         func() time.Time
}

// ExecuteLogPulse appends an interaction note to a client's pulse log.
// PRE: ClientID names an existing client; Note is non-empty
// POST: One entry appended; existing entries untouched
func ExecuteLogPulse(ctx context.Context, input LogPulseInput, deps LogPulseDeps) (client.PulseEntry, error) {
	if input.ClientID == "" {
		return client.PulseEntry{}, errors.New("client ID is required")
	}

	c, err := deps.ClientStore.GetByID(ctx, input.ClientID)
	if err != nil {
		return client.PulseEntry{}, err
	}

	if err := c.AddPulse(deps.GenerateID(), input.Note, input.LoggedBy, deps.Now()); err != nil {
		return client.PulseEntry{}, err
	}
	if err := deps.ClientStore.Save(ctx, c); err != nil {
		return client.PulseEntry{}, err
	}

	entry := c.PulseLog[len(c.PulseLog)-1]
	slog.Info("client_event", "event", "pulse_logged", "client_id", c.ID, "pulse_id", entry.ID)
	return entry, nil
}
