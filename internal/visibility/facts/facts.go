// Package facts resolves the network-access and relationship facts a
// redaction decision depends on. Lookups are cached for one request only and
// every failure resolves to the most restrictive value.
package facts

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"talentnet/internal/visibility"
	"talentnet/internal/visibility/metrics"
	"talentnet/internal/visibility/ports"
	id "talentnet/pkg/domain"
	"talentnet/pkg/platform/audit"
	"talentnet/pkg/platform/circuit"
	"talentnet/pkg/requestcontext"
)

const (
	FactNetworkAccess = "network_access"
	FactRelationship  = "relationship"

	defaultLookupTimeout = 2 * time.Second
)

// Gate owns the lookups and their circuit breakers for the life of the
// process. Call NewScope once per request.
type Gate struct {
	access        ports.NetworkAccessLookup
	relationships ports.RelationshipLookup
	accessBreaker *circuit.Breaker
	relBreaker    *circuit.Breaker
	auditor       ports.AuditPort
	logger        *slog.Logger
	metrics       *metrics.Metrics
	timeout       time.Duration
}

type Option func(*Gate)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) {
		if logger != nil {
			g.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) {
		g.metrics = m
	}
}

// WithAuditor emits a security event whenever a fact circuit opens, since
// every decision then falls back to full redaction.
func WithAuditor(auditor ports.AuditPort) Option {
	return func(g *Gate) {
		g.auditor = auditor
	}
}

// WithLookupTimeout bounds each individual lookup.
func WithLookupTimeout(d time.Duration) Option {
	return func(g *Gate) {
		if d > 0 {
			g.timeout = d
		}
	}
}

// WithBreakers replaces the default breakers. A nil breaker disables
// short-circuiting for that fact.
func WithBreakers(access, relationships *circuit.Breaker) Option {
	return func(g *Gate) {
		g.accessBreaker = access
		g.relBreaker = relationships
	}
}

func NewGate(access ports.NetworkAccessLookup, relationships ports.RelationshipLookup, opts ...Option) *Gate {
	g := &Gate{
		access:        access,
		relationships: relationships,
		accessBreaker: circuit.New(FactNetworkAccess, circuit.WithCooldown(10*time.Second)),
		relBreaker:    circuit.New(FactRelationship, circuit.WithCooldown(10*time.Second)),
		logger:        slog.Default(),
		timeout:       defaultLookupTimeout,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewScope starts an empty per-request fact cache.
func (g *Gate) NewScope() *Scope {
	return &Scope{
		gate:    g,
		access:  make(map[id.UserID]bool),
		applied: make(map[pairKey]bool),
	}
}

// guard runs fn behind the fact's breaker. It returns false when the lookup
// was skipped or failed; callers then use the restrictive value.
func (g *Gate) guard(ctx context.Context, fact string, breaker *circuit.Breaker, fn func(context.Context) error) bool {
	if breaker != nil && !breaker.Allow() {
		g.metrics.IncrementFactFailure(fact, "circuit_open")
		g.logger.DebugContext(ctx, "fact lookup short-circuited",
			"fact", fact,
			"request_id", requestcontext.RequestID(ctx),
		)
		return false
	}

	lookupCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	start := time.Now()
	err := fn(lookupCtx)
	g.metrics.ObserveFactLatency(fact, time.Since(start))

	if err != nil {
		g.metrics.IncrementFactFailure(fact, "error")
		g.logger.WarnContext(ctx, "fact lookup failed, using restrictive value",
			"fact", fact,
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		if breaker != nil {
			if _, change := breaker.RecordFailure(); change.Opened {
				g.logger.ErrorContext(ctx, "fact circuit opened",
					"fact", fact,
					"request_id", requestcontext.RequestID(ctx),
				)
				g.emitCircuitOpened(ctx, fact, err)
			}
		}
		return false
	}

	if breaker != nil {
		if _, change := breaker.RecordSuccess(); change.Closed {
			g.logger.InfoContext(ctx, "fact circuit closed",
				"fact", fact,
				"request_id", requestcontext.RequestID(ctx),
			)
		}
	}
	return true
}

func (g *Gate) emitCircuitOpened(ctx context.Context, fact string, cause error) {
	if g.auditor == nil {
		return
	}
	event := audit.Event{
		Timestamp: requestcontext.Now(ctx),
		Subject:   fact,
		Action:    string(audit.EventVisibilityFactFailed),
		Decision:  "fail_closed",
		Reason:    cause.Error(),
		RequestID: requestcontext.RequestID(ctx),
	}
	if err := g.auditor.Emit(ctx, event); err != nil {
		g.logger.WarnContext(ctx, "failed to emit fact failure audit event",
			"fact", fact,
			"error", err,
			"request_id", event.RequestID,
		)
	}
}

type pairKey struct {
	employer  id.UserID
	candidate id.UserID
}

// Scope caches facts for a single request. It is safe for concurrent use.
type Scope struct {
	gate *Gate

	mu      sync.Mutex
	access  map[id.UserID]bool
	applied map[pairKey]bool
}

// needsFacts reports whether the viewer's decision can depend on facts at all.
func needsFacts(viewer visibility.Viewer) bool {
	return viewer.Role.IsHiring() && !viewer.ID.IsNil() && !viewer.IsOwnerOfTarget
}

// NetworkAccess returns the viewer's network-access fact.
func (s *Scope) NetworkAccess(ctx context.Context, viewer visibility.Viewer) visibility.NetworkAccessFact {
	fact := visibility.NetworkAccessFact{EmployerID: viewer.ID}
	if !viewer.Role.IsHiring() || viewer.ID.IsNil() {
		return fact
	}

	s.mu.Lock()
	has, ok := s.access[viewer.ID]
	s.mu.Unlock()
	if ok {
		fact.HasNetworkAccess = has
		return fact
	}

	var result bool
	if s.gate.guard(ctx, FactNetworkAccess, s.gate.accessBreaker, func(ctx context.Context) error {
		var err error
		result, err = s.gate.access.HasNetworkAccess(ctx, viewer.ID)
		return err
	}) {
		fact.HasNetworkAccess = result
	}

	s.mu.Lock()
	s.access[viewer.ID] = fact.HasNetworkAccess
	s.mu.Unlock()
	return fact
}

// Relationship returns whether candidateID applied to one of the viewer's jobs.
func (s *Scope) Relationship(ctx context.Context, viewer visibility.Viewer, candidateID id.UserID) visibility.RelationshipFact {
	fact := visibility.RelationshipFact{EmployerID: viewer.ID, CandidateID: candidateID}
	if !viewer.Role.IsHiring() || viewer.ID.IsNil() || candidateID.IsNil() {
		return fact
	}

	key := pairKey{employer: viewer.ID, candidate: candidateID}
	s.mu.Lock()
	has, ok := s.applied[key]
	s.mu.Unlock()
	if ok {
		fact.HasApplied = has
		return fact
	}

	var result bool
	if s.gate.guard(ctx, FactRelationship, s.gate.relBreaker, func(ctx context.Context) error {
		var err error
		result, err = s.gate.relationships.HasApplied(ctx, viewer.ID, candidateID)
		return err
	}) {
		fact.HasApplied = result
	}

	s.mu.Lock()
	s.applied[key] = fact.HasApplied
	s.mu.Unlock()
	return fact
}

// PrimeRelationships answers the relationship fact for many candidates with
// one lookup. Later Relationship calls for these candidates hit the cache.
func (s *Scope) PrimeRelationships(ctx context.Context, viewer visibility.Viewer, candidateIDs []id.UserID) {
	if !viewer.Role.IsHiring() || viewer.ID.IsNil() || len(candidateIDs) == 0 {
		return
	}

	s.mu.Lock()
	missing := make([]id.UserID, 0, len(candidateIDs))
	for _, c := range candidateIDs {
		if c.IsNil() || c == viewer.ID {
			continue
		}
		if _, ok := s.applied[pairKey{employer: viewer.ID, candidate: c}]; !ok {
			missing = append(missing, c)
		}
	}
	s.mu.Unlock()
	if len(missing) == 0 {
		return
	}

	var applied map[id.UserID]bool
	ok := s.gate.guard(ctx, FactRelationship, s.gate.relBreaker, func(ctx context.Context) error {
		var err error
		applied, err = s.gate.relationships.AppliedCandidates(ctx, viewer.ID, missing)
		return err
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range missing {
		s.applied[pairKey{employer: viewer.ID, candidate: c}] = ok && applied[c]
	}
}

// Resolve returns both facts for viewer and target, fetching them in
// parallel. Viewers whose decision cannot depend on facts trigger no lookups.
func (s *Scope) Resolve(ctx context.Context, viewer visibility.Viewer, target *visibility.TargetProfile) (visibility.NetworkAccessFact, visibility.RelationshipFact) {
	access := visibility.NetworkAccessFact{EmployerID: viewer.ID}
	rel := visibility.RelationshipFact{EmployerID: viewer.ID}
	if target == nil || !needsFacts(viewer) {
		return access, rel
	}
	rel.CandidateID = target.UserID

	var g errgroup.Group
	g.Go(func() error {
		access = s.NetworkAccess(ctx, viewer)
		return nil
	})
	g.Go(func() error {
		rel = s.Relationship(ctx, viewer, target.UserID)
		return nil
	})
	_ = g.Wait()
	return access, rel
}
