package llmutils

import "encoding/json"

// TruncationMarker terminates any truncated payload so the agent can
// tell a bounded response from a complete one.
const TruncationMarker = "...[truncated]"

// Truncate bounds s to limit bytes. Payloads within the limit are
// returned unchanged, without a marker. Truncated payloads end with
// TruncationMarker, whose own length counts against the budget, so the
// result never exceeds the limit. Limits smaller than the marker yield
// a marker prefix of exactly limit bytes.
func Truncate(s string, limit int) string {
	if limit < 0 {
		limit = 0
	}
	if len(s) <= limit {
		return s
	}
	if limit <= len(TruncationMarker) {
		return TruncationMarker[:limit]
	}
	return s[:limit-len(TruncationMarker)] + TruncationMarker
}

// Shape serializes a JSON-compatible value and bounds it to limit
// bytes. Monitoring queries can return unbounded collections; without a
// hard ceiling the host LLM's context window overflows. The returned
// bool reports whether truncation occurred.
func Shape(val any, limit int) (string, bool) {
	var s string
	switch v := val.(type) {
	case string:
		s = v
	case json.RawMessage:
		s = string(v)
	default:
		s = ToJSON(val)
	}
	if len(s) <= limit {
		return s, false
	}
	return Truncate(s, limit), true
}
