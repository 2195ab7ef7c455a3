package storage

import (
	"encoding/json"
	"log/slog"
)

// EncodeJSONCol serializes a list or sub-record field for storage in a
// JSON text column. A nil slice/map encodes as its empty literal so the
// column never holds SQL NULL.
// PRE: v is JSON-serializable
// POST: returns a JSON string; on marshal failure returns the empty
// literal for the kind and logs a warning
func EncodeJSONCol(table, column string, v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		slog.Warn("jsoncol_encode_failed", "table", table, "column", column, "err", err)
		return "null"
	}
	return string(b)
}

// DecodeJSONCol deserializes a JSON text column into out. Malformed
// data is repaired to the zero value of out with a warning rather than
// failing the whole row — one corrupt field must not discard a record
// (or the collection it belongs to).
// PRE: out is a non-nil pointer
// POST: out holds the decoded value, or its zero value on failure
func DecodeJSONCol(table, column, raw string, out any) {
	if raw == "" {
		return
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		slog.Warn("jsoncol_decode_failed", "table", table, "column", column, "err", err)
	}
}
