package ratelimit

import (
	"net/http"
	"strings"
)

// ClientKey derives the rate-limit partition key from the proxying headers
// on the request. It always returns a non-empty string: the first hop of
// X-Forwarded-For when present, then X-Real-IP, then the edge proxy header,
// then the literal "unknown".
func ClientKey(r *http.Request) string {

	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if first := strings.TrimSpace(strings.Split(fwd, ",")[0]); first != "" {
			return first
		}
	}
	if rip := r.Header.Get("X-Real-IP"); rip != "" {
		return rip
	}
	if cip := r.Header.Get("CF-Connecting-IP"); cip != "" {
		return cip
	}
	return "unknown"
}
