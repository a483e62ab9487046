// Package requestcontext carries request-scoped values from middleware to
// services without importing net/http. Getters return zero values when a
// value was never set, so services work the same outside a request.
package requestcontext

import (
	"context"
	"time"

	id "talentnet/pkg/domain"
)

type (
	userIDKey    struct{}
	roleKey      struct{}
	sessionIDKey struct{}
	clientKey    struct{}
	requestIDKey struct{}
	timeKey      struct{}
)

// client is the caller metadata anonymous viewer keys are derived from.
type client struct {
	ip        string
	userAgent string
}

// UserID is the signed-in viewer, or the nil ID for anonymous requests.
func UserID(ctx context.Context) id.UserID {
	userID, _ := ctx.Value(userIDKey{}).(id.UserID)
	return userID
}

func WithUserID(ctx context.Context, userID id.UserID) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

func SessionID(ctx context.Context) id.SessionID {
	sessionID, _ := ctx.Value(sessionIDKey{}).(id.SessionID)
	return sessionID
}

func WithSessionID(ctx context.Context, sessionID id.SessionID) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

// Role is the viewer role. Missing or unsupported values read as anonymous.
func Role(ctx context.Context) id.Role {
	if role, ok := ctx.Value(roleKey{}).(id.Role); ok && role.IsValid() {
		return role
	}
	return id.RoleAnonymous
}

func WithRole(ctx context.Context, role id.Role) context.Context {
	return context.WithValue(ctx, roleKey{}, role)
}

func ClientIP(ctx context.Context) string {
	c, _ := ctx.Value(clientKey{}).(client)
	return c.ip
}

func UserAgent(ctx context.Context) string {
	c, _ := ctx.Value(clientKey{}).(client)
	return c.userAgent
}

// WithClientMetadata stores the caller address and User-Agent.
func WithClientMetadata(ctx context.Context, clientIP, userAgent string) context.Context {
	return context.WithValue(ctx, clientKey{}, client{ip: clientIP, userAgent: userAgent})
}

func RequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(requestIDKey{}).(string)
	return requestID
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Now is the instant captured when the request started, so a view event and
// its window check agree. Outside a request it is the wall clock.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(timeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, timeKey{}, t)
}
