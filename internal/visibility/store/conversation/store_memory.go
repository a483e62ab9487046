package conversation

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"talentnet/internal/visibility"
	id "talentnet/pkg/domain"
	"talentnet/pkg/platform/sentinel"
)

type InMemoryStore struct {
	mu            sync.RWMutex
	conversations map[id.ConversationID]visibility.Conversation
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{conversations: make(map[id.ConversationID]visibility.Conversation)}
}

func (s *InMemoryStore) Save(_ context.Context, c *visibility.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations[c.ID] = *c
	return nil
}

func (s *InMemoryStore) FindByID(_ context.Context, conversationID id.ConversationID) (*visibility.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.conversations[conversationID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return &c, nil
}

func (s *InMemoryStore) ListByParticipant(_ context.Context, userID id.UserID) ([]*visibility.Conversation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []*visibility.Conversation{}
	for _, c := range s.conversations {
		if c.HasParticipant(userID) {
			out = append(out, &c)
		}
	}
	slices.SortFunc(out, func(a, b *visibility.Conversation) int {
		if c := b.LastMessageAt.Compare(a.LastMessageAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}
