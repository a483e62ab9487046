package profile

import (
	"context"
	"slices"
	"sync"

	"talentnet/internal/visibility"
	id "talentnet/pkg/domain"
	"talentnet/pkg/platform/sentinel"
)

// InMemoryStore keeps profiles in memory. Reads return copies so callers can
// never mutate stored state.
type InMemoryStore struct {
	mu     sync.RWMutex
	byUser map[id.UserID]*visibility.TargetProfile
	bySlug map[string]id.UserID
	order  []id.UserID
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		byUser: make(map[id.UserID]*visibility.TargetProfile),
		bySlug: make(map[string]id.UserID),
	}
}

// Save inserts or replaces a profile.
func (s *InMemoryStore) Save(_ context.Context, p *visibility.TargetProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.byUser[p.UserID]; ok {
		delete(s.bySlug, existing.Slug)
	} else {
		s.order = append(s.order, p.UserID)
	}
	s.byUser[p.UserID] = clone(p)
	if p.Slug != "" {
		s.bySlug[p.Slug] = p.UserID
	}
	return nil
}

func (s *InMemoryStore) FindByUserID(_ context.Context, userID id.UserID) (*visibility.TargetProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.byUser[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(p), nil
}

func (s *InMemoryStore) FindBySlug(_ context.Context, slug string) (*visibility.TargetProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.bySlug[slug]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return clone(s.byUser[userID]), nil
}

// FindByUserIDs returns the profiles that exist, in the order requested.
func (s *InMemoryStore) FindByUserIDs(_ context.Context, userIDs []id.UserID) ([]*visibility.TargetProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*visibility.TargetProfile, 0, len(userIDs))
	for _, userID := range userIDs {
		if p, ok := s.byUser[userID]; ok {
			out = append(out, clone(p))
		}
	}
	return out, nil
}

// ListApproved pages through approved profiles in insertion order.
func (s *InMemoryStore) ListApproved(_ context.Context, limit, offset int) ([]*visibility.TargetProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*visibility.TargetProfile, 0, limit)
	skipped := 0
	for _, userID := range s.order {
		p := s.byUser[userID]
		if !p.Approved {
			continue
		}
		if skipped < offset {
			skipped++
			continue
		}
		if len(out) == limit {
			break
		}
		out = append(out, clone(p))
	}
	return out, nil
}

// IncrementViews adds one to the profile's view counter.
func (s *InMemoryStore) IncrementViews(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.byUser[userID]
	if !ok {
		return sentinel.ErrNotFound
	}
	p.ProfileViews++
	return nil
}

func clone(p *visibility.TargetProfile) *visibility.TargetProfile {
	c := *p
	c.AdditionalPhotos = slices.Clone(p.AdditionalPhotos)
	c.MediaURLs = slices.Clone(p.MediaURLs)
	c.Skills = slices.Clone(p.Skills)
	c.Experience = slices.Clone(p.Experience)
	c.Certifications = slices.Clone(p.Certifications)
	c.WorkLocations = slices.Clone(p.WorkLocations)
	if p.PayRangeMin != nil {
		v := *p.PayRangeMin
		c.PayRangeMin = &v
	}
	if p.PayRangeMax != nil {
		v := *p.PayRangeMax
		c.PayRangeMax = &v
	}
	return &c
}
