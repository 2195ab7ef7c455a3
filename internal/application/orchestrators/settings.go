package orchestrators

import (
	"context"
	"errors"
	"log/slog"

	settingsStore "opsdesk/internal/adapters/storage/settings"
	"opsdesk/internal/domain/settings"
)

// SetActiveProfileInput carries input for the profile switch.
type SetActiveProfileInput struct {
	MemberID string
}

// SetActiveProfileDeps holds dependencies for SetActiveProfile.
type SetActiveProfileDeps struct {
	MemberStore MemberLookup
	Settings    settingsStore.Store
}

// ExecuteSetActiveProfile records which team member operates the app.
// PRE: MemberID names an existing member
// POST: The active profile setting holds the member's ID and name
func ExecuteSetActiveProfile(ctx context.Context, input SetActiveProfileInput, deps SetActiveProfileDeps) (settings.ActiveProfile, error) {
	if input.MemberID == "" {
		return settings.ActiveProfile{}, errors.New("member ID is required")
	}

	m, err := deps.MemberStore.GetByID(ctx, input.MemberID)
	if err != nil {
		return settings.ActiveProfile{}, err
	}

	profile := settings.ActiveProfile{MemberID: m.ID, Name: m.Name}
	if err := deps.Settings.Set(ctx, settings.KeyActiveProfile, profile); err != nil {
		return settings.ActiveProfile{}, err
	}

	slog.Info("settings_event", "event", "active_profile_set", "member_id", m.ID)
	return profile, nil
}

// GetActiveProfile loads the active profile, falling back to an empty
// selection when none is stored.
func GetActiveProfile(ctx context.Context, store settingsStore.Store) (settings.ActiveProfile, error) {
	var profile settings.ActiveProfile
	_, err := store.Get(ctx, settings.KeyActiveProfile, &profile)
	return profile, err
}
