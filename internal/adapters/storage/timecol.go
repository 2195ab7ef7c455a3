package storage

import "time"

// FormatTime serializes a timestamp for a TEXT column. The zero time
// becomes the empty string so it round-trips as zero.
func FormatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime deserializes a TEXT column timestamp. Blank or malformed
// values yield the zero time.
func ParseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
