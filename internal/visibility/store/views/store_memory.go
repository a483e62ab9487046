package views

import (
	"context"
	"sync"
	"time"

	"talentnet/internal/visibility"
	id "talentnet/pkg/domain"
)

// Counter increments a profile's denormalized view counter.
type Counter interface {
	IncrementViews(ctx context.Context, userID id.UserID) error
}

type pairKey struct {
	target    id.UserID
	viewerKey string
}

// InMemoryStore mirrors the transactional store under a single mutex: the
// window check, the counter increment and the event append happen together
// or not at all.
type InMemoryStore struct {
	mu      sync.Mutex
	counter Counter
	events  []visibility.ViewEvent
	last    map[pairKey]time.Time
}

func NewInMemoryStore(counter Counter) *InMemoryStore {
	return &InMemoryStore{counter: counter, last: make(map[pairKey]time.Time)}
}

func (s *InMemoryStore) RecordView(ctx context.Context, event visibility.ViewEvent, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := pairKey{target: event.TargetUserID, viewerKey: event.ViewerKey}
	if last, ok := s.last[key]; ok && event.OccurredAt.Sub(last) < window {
		return false, nil
	}
	if err := s.counter.IncrementViews(ctx, event.TargetUserID); err != nil {
		return false, err
	}
	s.last[key] = event.OccurredAt
	s.events = append(s.events, event)
	return true, nil
}

// Events returns the recorded events for a target.
func (s *InMemoryStore) Events(targetUserID id.UserID) []visibility.ViewEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []visibility.ViewEvent
	for _, e := range s.events {
		if e.TargetUserID == targetUserID {
			out = append(out, e)
		}
	}
	return out
}
