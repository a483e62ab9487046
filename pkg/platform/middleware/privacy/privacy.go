// Package privacy sets response headers for payloads that are materialized
// per viewer and must not be shared across users or archived by crawlers.
package privacy

import (
	"fmt"
	"net/http"
	"time"
)

// DefaultMaxAge is used when NoShare is given a non-positive max age.
const DefaultMaxAge = 60 * time.Second

// NoShare marks responses as private to the requesting user with a short
// max-age and asks crawlers not to index or archive them.
func NoShare(maxAge time.Duration) func(http.Handler) http.Handler {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	cacheControl := fmt.Sprintf("private, max-age=%d", int(maxAge.Seconds()))
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Cache-Control", cacheControl)
			h.Set("Vary", "Authorization, Cookie")
			h.Set("X-Robots-Tag", "noindex, noarchive")
			next.ServeHTTP(w, r)
		})
	}
}
