package facts

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"talentnet/internal/visibility"
	"talentnet/internal/visibility/metrics"
	"talentnet/internal/visibility/mocks"
	id "talentnet/pkg/domain"
	"talentnet/pkg/platform/audit"
	"talentnet/pkg/platform/circuit"
)

type ScopeSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	access        *mocks.MockNetworkAccessLookup
	relationships *mocks.MockRelationshipLookup
	gate          *Gate
	ctx           context.Context
	employer      visibility.Viewer
	candidate     *visibility.TargetProfile
}

func TestScopeSuite(t *testing.T) {
	suite.Run(t, new(ScopeSuite))
}

func (s *ScopeSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.access = mocks.NewMockNetworkAccessLookup(s.ctrl)
	s.relationships = mocks.NewMockRelationshipLookup(s.ctrl)
	s.gate = NewGate(s.access, s.relationships,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(metrics.New(prometheus.NewRegistry())),
	)
	s.ctx = context.Background()
	s.employer = visibility.Viewer{ID: id.UserID(uuid.New()), Role: id.RoleEmployer}
	s.candidate = &visibility.TargetProfile{UserID: id.UserID(uuid.New())}
}

func (s *ScopeSuite) TearDownTest() {
	s.ctrl.Finish()
}

// =============================================================================
// Per-request caching
// =============================================================================

func (s *ScopeSuite) TestNetworkAccessCachedWithinScope() {
	s.access.EXPECT().HasNetworkAccess(gomock.Any(), s.employer.ID).Return(true, nil).Times(1)

	scope := s.gate.NewScope()
	first := scope.NetworkAccess(s.ctx, s.employer)
	second := scope.NetworkAccess(s.ctx, s.employer)

	s.True(first.HasNetworkAccess)
	s.Equal(first, second)
	s.Equal(s.employer.ID, first.EmployerID)
}

func (s *ScopeSuite) TestNewScopeDoesNotReusePreviousAnswers() {
	gomock.InOrder(
		s.access.EXPECT().HasNetworkAccess(gomock.Any(), s.employer.ID).Return(true, nil),
		s.access.EXPECT().HasNetworkAccess(gomock.Any(), s.employer.ID).Return(false, nil),
	)

	s.True(s.gate.NewScope().NetworkAccess(s.ctx, s.employer).HasNetworkAccess)
	s.False(s.gate.NewScope().NetworkAccess(s.ctx, s.employer).HasNetworkAccess,
		"subscription changes are visible to the next request")
}

// =============================================================================
// Fail closed
// =============================================================================

func (s *ScopeSuite) TestLookupErrorsFailClosed() {
	s.access.EXPECT().HasNetworkAccess(gomock.Any(), s.employer.ID).Return(true, errors.New("db down"))
	s.relationships.EXPECT().HasApplied(gomock.Any(), s.employer.ID, s.candidate.UserID).Return(true, errors.New("db down"))

	access, rel := s.gate.NewScope().Resolve(s.ctx, s.employer, s.candidate)
	s.False(access.HasNetworkAccess)
	s.False(rel.HasApplied)
}

func (s *ScopeSuite) TestOpenCircuitSkipsLookup() {
	breaker := circuit.New(FactNetworkAccess, circuit.WithFailureThreshold(1))
	gate := NewGate(s.access, s.relationships, WithBreakers(breaker, nil))

	s.access.EXPECT().HasNetworkAccess(gomock.Any(), s.employer.ID).Return(false, errors.New("timeout")).Times(1)

	s.False(gate.NewScope().NetworkAccess(s.ctx, s.employer).HasNetworkAccess)
	s.True(breaker.IsOpen())

	// second request must not reach the lookup
	s.False(gate.NewScope().NetworkAccess(s.ctx, s.employer).HasNetworkAccess)
}

func (s *ScopeSuite) TestCircuitOpenEmitsSecurityEvent() {
	auditor := mocks.NewMockAuditPort(s.ctrl)
	breaker := circuit.New(FactRelationship, circuit.WithFailureThreshold(1))
	gate := NewGate(s.access, s.relationships, WithBreakers(nil, breaker), WithAuditor(auditor))

	s.relationships.EXPECT().HasApplied(gomock.Any(), s.employer.ID, s.candidate.UserID).
		Return(false, errors.New("db down"))
	auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e audit.Event) error {
			s.Equal(string(audit.EventVisibilityFactFailed), e.Action)
			s.Equal(FactRelationship, e.Subject)
			s.Equal("db down", e.Reason)
			return nil
		}).Times(1)

	s.False(gate.NewScope().Relationship(s.ctx, s.employer, s.candidate.UserID).HasApplied)
	// already open: no second event
	s.False(gate.NewScope().Relationship(s.ctx, s.employer, s.candidate.UserID).HasApplied)
}

func (s *ScopeSuite) TestLookupTimeoutApplied() {
	gate := NewGate(s.access, s.relationships, WithLookupTimeout(20*time.Millisecond), WithBreakers(nil, nil))

	s.access.EXPECT().HasNetworkAccess(gomock.Any(), s.employer.ID).DoAndReturn(
		func(ctx context.Context, _ id.UserID) (bool, error) {
			<-ctx.Done()
			return true, ctx.Err()
		})

	s.False(gate.NewScope().NetworkAccess(s.ctx, s.employer).HasNetworkAccess)
}

// =============================================================================
// Lookups skipped when facts cannot matter
// =============================================================================

func (s *ScopeSuite) TestNoLookupsForNonHiringViewers() {
	scope := s.gate.NewScope()
	viewers := []visibility.Viewer{
		{ID: id.UserID(uuid.New()), Role: id.RoleProfessional},
		{ID: id.UserID(uuid.New()), Role: id.RoleAdmin},
		{Role: id.RoleAnonymous},
		{Role: id.RoleEmployer},
		{ID: s.candidate.UserID, Role: id.RoleEmployer, IsOwnerOfTarget: true},
	}
	for _, v := range viewers {
		access, rel := scope.Resolve(s.ctx, v, s.candidate)
		s.False(access.HasNetworkAccess)
		s.False(rel.HasApplied)
	}
}

// =============================================================================
// Batch relationships
// =============================================================================

func (s *ScopeSuite) TestPrimeRelationshipsAnswersFromCache() {
	a, b := id.UserID(uuid.New()), id.UserID(uuid.New())
	s.relationships.EXPECT().
		AppliedCandidates(gomock.Any(), s.employer.ID, gomock.InAnyOrder([]id.UserID{a, b})).
		Return(map[id.UserID]bool{a: true}, nil)

	scope := s.gate.NewScope()
	scope.PrimeRelationships(s.ctx, s.employer, []id.UserID{a, b, s.employer.ID})

	s.True(scope.Relationship(s.ctx, s.employer, a).HasApplied)
	s.False(scope.Relationship(s.ctx, s.employer, b).HasApplied)

	// already primed: no second batch call
	scope.PrimeRelationships(s.ctx, s.employer, []id.UserID{a, b})
}

func (s *ScopeSuite) TestPrimeRelationshipsFailureCachesFalse() {
	a := id.UserID(uuid.New())
	s.relationships.EXPECT().AppliedCandidates(gomock.Any(), s.employer.ID, []id.UserID{a}).
		Return(map[id.UserID]bool{a: true}, errors.New("partial read"))

	scope := s.gate.NewScope()
	scope.PrimeRelationships(s.ctx, s.employer, []id.UserID{a})
	s.False(scope.Relationship(s.ctx, s.employer, a).HasApplied)
}

func (s *ScopeSuite) TestResolveConcurrentCallsShareCache() {
	var calls atomic.Int32
	s.access.EXPECT().HasNetworkAccess(gomock.Any(), s.employer.ID).DoAndReturn(
		func(context.Context, id.UserID) (bool, error) {
			calls.Add(1)
			return true, nil
		}).MinTimes(1)
	s.relationships.EXPECT().HasApplied(gomock.Any(), s.employer.ID, s.candidate.UserID).Return(true, nil).MinTimes(1)

	scope := s.gate.NewScope()
	access, rel := scope.Resolve(s.ctx, s.employer, s.candidate)
	s.True(access.HasNetworkAccess)
	s.True(rel.HasApplied)

	access, _ = scope.Resolve(s.ctx, s.employer, s.candidate)
	s.True(access.HasNetworkAccess)
	s.Equal(int32(1), calls.Load())
}
