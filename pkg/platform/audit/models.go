package audit

import (
	"context"
	"time"

	id "talentnet/pkg/domain"
)

// EventCategory classifies audit events for routing and retention.
type EventCategory string

const (
	// CategorySecurity covers access to data that a rule would normally hide,
	// such as an administrator reading an anonymous profile in full.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity that may be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory `json:"category"`
	Timestamp time.Time     `json:"timestamp"`
	// UserID is the user the event is about (the profile owner).
	UserID    id.UserID `json:"user_id"`
	Subject   string    `json:"subject,omitempty"`
	Action    string    `json:"action"`
	Decision  string    `json:"decision,omitempty"`
	Reason    string    `json:"reason,omitempty"`
	RequestID string    `json:"request_id,omitempty"`
	// ActorID is the viewer who caused the event; empty for anonymous viewers.
	ActorID string `json:"actor_id,omitempty"`
}

type AuditEvent string

const (
	EventProfileViewed            AuditEvent = "profile_viewed"
	EventAnonymousProfileRevealed AuditEvent = "anonymous_profile_revealed"
	EventVisibilityFactFailed     AuditEvent = "visibility_fact_failed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventAnonymousProfileRevealed: CategorySecurity,
	EventVisibilityFactFailed:     CategorySecurity,
	EventProfileViewed:            CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists or forwards audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}
