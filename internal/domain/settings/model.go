// Package settings defines the small, non-collection values the
// dashboard persists alongside the entity collections: the active
// profile selection and a handful of UI flags. Each value is stored as
// JSON under a well-known key.
package settings

// Well-known setting keys.
const (
	KeyActiveProfile  = "active_profile"
	KeyHasSeenLanding = "has_seen_landing"
	KeyLastSeenAppVer = "last_seen_app_version"
	KeyPagePrefPrefix = "page_pref:" // followed by a page name
)

// ActiveProfile identifies which team member is operating the app.
// There is no authentication behind it; it is a local selection.
type ActiveProfile struct {
	MemberID string `json:"member_id"`
	Name     string `json:"name"`
}

// PagePref holds per-page UI preference flags keyed by flag name.
type PagePref struct {
	Flags map[string]bool `json:"flags"`
}
