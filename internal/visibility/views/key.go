package views

import (
	"context"
	"encoding/hex"
	"strings"

	"github.com/mssola/useragent"
	"golang.org/x/crypto/blake2b"

	"talentnet/internal/visibility"
	"talentnet/pkg/requestcontext"
)

const (
	userKeyPrefix      = "user:"
	anonymousKeyPrefix = "anon:"
)

// ViewerKey is the idempotency key for a viewer: the user ID when signed in,
// otherwise a hash of the client address and user agent. It returns "" when
// an anonymous request has no client address.
func ViewerKey(ctx context.Context, viewer visibility.Viewer) string {
	if !viewer.IsAnonymous() {
		return userKeyPrefix + viewer.ID.String()
	}
	ip := requestcontext.ClientIP(ctx)
	if ip == "" {
		return ""
	}
	ua := requestcontext.UserAgent(ctx)
	sum := blake2b.Sum256([]byte(ip + "\x00" + ua))
	return anonymousKeyPrefix + hex.EncodeToString(sum[:16])
}

// IsCrawler reports whether the user agent belongs to a bot. A blank user
// agent is not a crawler by itself.
func IsCrawler(userAgent string) bool {
	if strings.TrimSpace(userAgent) == "" {
		return false
	}
	return useragent.New(userAgent).Bot()
}

// isAutomated decides whether a view comes from automation. Anonymous
// requests without a user agent count as automated; signed-in API clients
// that send none are still counted.
func isAutomated(userAgent string, viewer visibility.Viewer) bool {
	if IsCrawler(userAgent) {
		return true
	}
	return viewer.IsAnonymous() && strings.TrimSpace(userAgent) == ""
}
