package relationship

import (
	"context"
	"sync"

	id "talentnet/pkg/domain"
)

type pair struct {
	employer  id.UserID
	candidate id.UserID
}

// InMemoryStore records applications as employer/candidate pairs. Applications
// are append-only.
type InMemoryStore struct {
	mu           sync.RWMutex
	applications map[pair]struct{}
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{applications: make(map[pair]struct{})}
}

// RecordApplication links candidateID to a job owned by employerID.
func (s *InMemoryStore) RecordApplication(employerID, candidateID id.UserID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applications[pair{employer: employerID, candidate: candidateID}] = struct{}{}
}

func (s *InMemoryStore) HasApplied(_ context.Context, employerID, candidateID id.UserID) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.applications[pair{employer: employerID, candidate: candidateID}]
	return ok, nil
}

func (s *InMemoryStore) AppliedCandidates(_ context.Context, employerID id.UserID, candidateIDs []id.UserID) (map[id.UserID]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[id.UserID]bool, len(candidateIDs))
	for _, c := range candidateIDs {
		if _, ok := s.applications[pair{employer: employerID, candidate: c}]; ok {
			out[c] = true
		}
	}
	return out, nil
}
