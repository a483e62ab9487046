package testutil

import (
	"net/http"

	id "talentnet/pkg/domain"
	"talentnet/pkg/requestcontext"
)

// WithViewer sets what the auth middleware resolves for a signed-in viewer.
// An unparsable user ID leaves the request anonymous.
func WithViewer(req *http.Request, userID string, role id.Role) *http.Request {
	parsed, err := id.ParseUserID(userID)
	if err != nil {
		return req
	}
	ctx := requestcontext.WithUserID(req.Context(), parsed)
	ctx = requestcontext.WithRole(ctx, role)
	return req.WithContext(ctx)
}
