// Package idgen generates entity identifiers: a base-36 millisecond
// timestamp followed by a random suffix. The suffix keeps IDs unique
// even when several records are created within the same millisecond.
package idgen

import (
	"crypto/rand"
	"strconv"
	"time"
)

const suffixLen = 7

const alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// New returns a fresh entity ID.
// PRE: none
// POST: returns a non-empty ID of the form <millis base36>-<random suffix>
func New() string {
	return At(time.Now())
}

// At returns an ID stamped with the given time. Exposed so tests can
// force timestamp collisions.
// PRE: t is a valid time
// POST: returns a non-empty ID; two calls with the same t differ in suffix
func At(t time.Time) string {
	buf := make([]byte, suffixLen)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand failing is unrecoverable for ID generation
		panic("idgen: rand.Read failed: " + err.Error())
	}
	for i, b := range buf {
		buf[i] = alphabet[int(b)%len(alphabet)]
	}
	return strconv.FormatInt(t.UnixMilli(), 36) + "-" + string(buf)
}
