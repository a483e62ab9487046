package access

import (
	"context"
	"sync"

	id "talentnet/pkg/domain"
)

// InMemoryStore holds network-access entitlements set directly by callers.
type InMemoryStore struct {
	mu      sync.RWMutex
	holders map[id.UserID]bool
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{holders: make(map[id.UserID]bool)}
}

// Grant sets whether employerID currently holds network access.
func (s *InMemoryStore) Grant(employerID id.UserID, has bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.holders[employerID] = has
}

func (s *InMemoryStore) HasNetworkAccess(_ context.Context, employerID id.UserID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.holders[employerID], nil
}
