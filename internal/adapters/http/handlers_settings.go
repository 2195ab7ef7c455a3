package web

import (
	"net/http"
	"strings"

	"opsdesk/internal/application/orchestrators"
	"opsdesk/internal/domain/settings"
)

type setActiveProfileRequest struct {
	MemberID string `json:"member_id"`
}

// handleActiveProfile reads or switches the operating profile.
func handleActiveProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		profile, err := orchestrators.GetActiveProfile(ctx, stores.SettingsStore)
		if err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)

	case "PUT":
		var req setActiveProfileRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		profile, err := orchestrators.ExecuteSetActiveProfile(ctx, orchestrators.SetActiveProfileInput{
			MemberID: req.MemberID,
		}, orchestrators.SetActiveProfileDeps{
			MemberStore: stores.MemberStore,
			Settings:    stores.SettingsStore,
		})
		if err != nil {
			respondError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, profile)

	default:
		methodNotAllowed(w)
	}
}

type landingRequest struct {
	HasSeenLanding bool `json:"has_seen_landing"`
}

// handleLanding reads or records the first-run landing flag.
func handleLanding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		var seen bool
		if _, err := stores.SettingsStore.Get(ctx, settings.KeyHasSeenLanding, &seen); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, landingRequest{HasSeenLanding: seen})

	case "PUT":
		var req landingRequest
		if err := strictDecode(r, &req); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		if err := stores.SettingsStore.Set(ctx, settings.KeyHasSeenLanding, req.HasSeenLanding); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, req)

	default:
		methodNotAllowed(w)
	}
}

// handleAppVersion reports the running version next to the last one the
// operator acknowledged; PUT marks the running version as seen.
func handleAppVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case "GET":
		var lastSeen string
		if _, err := stores.SettingsStore.Get(ctx, settings.KeyLastSeenAppVer, &lastSeen); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"current": AppVersion, "last_seen": lastSeen})

	case "PUT":
		if err := stores.SettingsStore.Set(ctx, settings.KeyLastSeenAppVer, AppVersion); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"current": AppVersion, "last_seen": AppVersion})

	default:
		methodNotAllowed(w)
	}
}

// handlePagePrefs reads or writes per-page UI preference flags.
func handlePagePrefs(w http.ResponseWriter, r *http.Request) {
	page := strings.TrimPrefix(r.URL.Path, "/api/settings/page-prefs/")
	if page == "" || strings.Contains(page, "/") {
		apiError(w, http.StatusBadRequest, "page name is required")
		return
	}
	ctx := r.Context()
	key := settings.KeyPagePrefPrefix + page

	switch r.Method {
	case "GET":
		var pref settings.PagePref
		if _, err := stores.SettingsStore.Get(ctx, key, &pref); err != nil {
			internalError(w, err)
			return
		}
		if pref.Flags == nil {
			pref.Flags = map[string]bool{}
		}
		writeJSON(w, http.StatusOK, pref)

	case "PUT":
		var pref settings.PagePref
		if err := strictDecode(r, &pref); err != nil {
			apiError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		if err := stores.SettingsStore.Set(ctx, key, pref); err != nil {
			internalError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pref)

	default:
		methodNotAllowed(w)
	}
}
