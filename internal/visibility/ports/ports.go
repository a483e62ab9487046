// Package ports declares the narrow, typed interfaces the visibility service
// reads its facts through.
package ports

import (
	"context"

	"talentnet/internal/visibility"
	id "talentnet/pkg/domain"
	"talentnet/pkg/platform/audit"
)

//go:generate mockgen -source=ports.go -destination=../mocks/ports_mock.go -package=mocks

// ProfileStore loads candidate profiles. Lookups of a missing profile return
// sentinel.ErrNotFound.
type ProfileStore interface {
	FindByUserID(ctx context.Context, userID id.UserID) (*visibility.TargetProfile, error)
	FindBySlug(ctx context.Context, slug string) (*visibility.TargetProfile, error)
	FindByUserIDs(ctx context.Context, userIDs []id.UserID) ([]*visibility.TargetProfile, error)
	ListApproved(ctx context.Context, limit, offset int) ([]*visibility.TargetProfile, error)
}

// NetworkAccessLookup reports whether an employer or agency currently holds
// network access.
type NetworkAccessLookup interface {
	HasNetworkAccess(ctx context.Context, employerID id.UserID) (bool, error)
}

// RelationshipLookup reports whether candidates applied to jobs owned by an
// employer.
type RelationshipLookup interface {
	HasApplied(ctx context.Context, employerID, candidateID id.UserID) (bool, error)
	// AppliedCandidates returns the subset of candidateIDs that applied.
	AppliedCandidates(ctx context.Context, employerID id.UserID, candidateIDs []id.UserID) (map[id.UserID]bool, error)
}

// ConversationStore loads direct-message conversations.
type ConversationStore interface {
	FindByID(ctx context.Context, conversationID id.ConversationID) (*visibility.Conversation, error)
	ListByParticipant(ctx context.Context, userID id.UserID) ([]*visibility.Conversation, error)
}

// ViewRecorder records profile-detail views. It never returns an error.
type ViewRecorder interface {
	RecordView(ctx context.Context, targetUserID id.UserID, viewer visibility.Viewer)
}

// AuditPort emits audit events.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
