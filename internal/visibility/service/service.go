// Package service resolves what a viewer may see of a candidate profile on
// every surface that shows one. Each surface loads the target, resolves the
// facts for the request, evaluates the redaction policy and materializes the
// result; detail surfaces also record a view.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"talentnet/internal/visibility"
	"talentnet/internal/visibility/facts"
	"talentnet/internal/visibility/metrics"
	"talentnet/internal/visibility/ports"
	id "talentnet/pkg/domain"
	dErrors "talentnet/pkg/domain-errors"
	"talentnet/pkg/platform/audit"
	"talentnet/pkg/platform/sentinel"
	"talentnet/pkg/requestcontext"
)

// Surfaces label metrics and spans.
const (
	SurfaceProfile       = "profile"
	SurfaceDashboard     = "dashboard"
	SurfaceCandidates    = "candidates"
	SurfaceConversation  = "conversation"
	SurfaceConversations = "conversations"
	SurfaceAuthor        = "author"

	DefaultPageSize = 20
	MaxPageSize     = 100

	tracerName = "talentnet/visibility"
)

// Service is the single entry point for profile visibility. Handlers never
// call the policy or the stores directly.
type Service struct {
	profiles      ports.ProfileStore
	conversations ports.ConversationStore
	gate          *facts.Gate
	recorder      ports.ViewRecorder
	auditor       ports.AuditPort
	logger        *slog.Logger
	metrics       *metrics.Metrics
	tracer        trace.Tracer
}

type Option func(*Service)

// WithRecorder enables view recording on detail surfaces.
func WithRecorder(recorder ports.ViewRecorder) Option {
	return func(s *Service) {
		s.recorder = recorder
	}
}

func WithAuditor(auditor ports.AuditPort) Option {
	return func(s *Service) {
		s.auditor = auditor
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

func New(profiles ports.ProfileStore, conversations ports.ConversationStore, gate *facts.Gate, opts ...Option) *Service {
	s := &Service{
		profiles:      profiles,
		conversations: conversations,
		gate:          gate,
		logger:        slog.Default(),
		tracer:        otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProfileBySlug is the public profile page. Anonymous viewers are allowed.
func (s *Service) ProfileBySlug(ctx context.Context, viewer visibility.Viewer, slug string) (*visibility.RedactedProfile, error) {
	ctx, span := s.startSpan(ctx, SurfaceProfile, viewer)
	defer span.End()
	defer s.observe(SurfaceProfile, time.Now())

	target, err := s.profiles.FindBySlug(ctx, slug)
	if err != nil {
		return nil, s.spanError(span, s.translateLookup(ctx, err, "profile not found"))
	}
	return s.detail(ctx, span, viewer, target)
}

// DashboardProfile is the hiring dashboard's candidate view. Only hiring
// roles, admins and the candidate themselves may open it.
func (s *Service) DashboardProfile(ctx context.Context, viewer visibility.Viewer, userID id.UserID) (*visibility.RedactedProfile, error) {
	ctx, span := s.startSpan(ctx, SurfaceDashboard, viewer)
	defer span.End()
	defer s.observe(SurfaceDashboard, time.Now())

	if viewer.IsAnonymous() {
		return nil, s.spanError(span, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
	}
	if !canBrowseCandidates(viewer) && viewer.ID != userID {
		return nil, s.spanError(span, dErrors.New(dErrors.CodeForbidden, "role may not view candidate dashboards"))
	}

	target, err := s.profiles.FindByUserID(ctx, userID)
	if err != nil {
		return nil, s.spanError(span, s.translateLookup(ctx, err, "profile not found"))
	}
	return s.detail(ctx, span, viewer, target)
}

// detail resolves a single profile and records the view.
func (s *Service) detail(ctx context.Context, span trace.Span, viewer visibility.Viewer, target *visibility.TargetProfile) (*visibility.RedactedProfile, error) {
	viewer = viewer.For(target)
	if !visibleListing(viewer, target) {
		return nil, s.spanError(span, dErrors.New(dErrors.CodeNotFound, "profile not found"))
	}

	decision := s.resolve(ctx, s.gate.NewScope(), viewer, target)
	span.SetAttributes(attribute.String("visibility.rule", string(decision.Rule)))
	out := visibility.Materialize(target, decision)

	if s.recorder != nil {
		s.recorder.RecordView(ctx, target.UserID, viewer)
	}
	return &out, nil
}

// CandidateCards lists approved profiles for hiring roles. Relationship facts
// for the whole page are fetched with one lookup.
func (s *Service) CandidateCards(ctx context.Context, viewer visibility.Viewer, limit, offset int) ([]visibility.RedactedProfile, error) {
	ctx, span := s.startSpan(ctx, SurfaceCandidates, viewer)
	defer span.End()
	defer s.observe(SurfaceCandidates, time.Now())

	if viewer.IsAnonymous() {
		return nil, s.spanError(span, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
	}
	if !canBrowseCandidates(viewer) {
		return nil, s.spanError(span, dErrors.New(dErrors.CodeForbidden, "role may not browse candidates"))
	}
	limit, offset = normalizePage(limit, offset)

	targets, err := s.profiles.ListApproved(ctx, limit, offset)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list candidates",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, s.spanError(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list candidates"))
	}

	scope := s.gate.NewScope()
	scope.PrimeRelationships(ctx, viewer, userIDs(targets))

	cards := make([]visibility.RedactedProfile, 0, len(targets))
	for _, target := range targets {
		decision := s.resolve(ctx, scope, viewer.For(target), target)
		cards = append(cards, visibility.Materialize(target, decision))
	}
	span.SetAttributes(attribute.Int("visibility.count", len(cards)))
	return cards, nil
}

// Conversation returns one conversation with its candidate materialized for
// the viewer. Non-participants get NotFound so conversation IDs cannot be
// probed.
func (s *Service) Conversation(ctx context.Context, viewer visibility.Viewer, conversationID id.ConversationID) (*visibility.ConversationView, error) {
	ctx, span := s.startSpan(ctx, SurfaceConversation, viewer)
	defer span.End()
	defer s.observe(SurfaceConversation, time.Now())

	if viewer.IsAnonymous() {
		return nil, s.spanError(span, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
	}
	conv, err := s.conversations.FindByID(ctx, conversationID)
	if err != nil {
		return nil, s.spanError(span, s.translateLookup(ctx, err, "conversation not found"))
	}
	if !conv.HasParticipant(viewer.ID) {
		return nil, s.spanError(span, dErrors.New(dErrors.CodeNotFound, "conversation not found"))
	}

	views, err := s.conversationViews(ctx, viewer, []*visibility.Conversation{conv})
	if err != nil {
		return nil, s.spanError(span, err)
	}
	return &views[0], nil
}

// Conversations lists the viewer's conversations, newest first.
func (s *Service) Conversations(ctx context.Context, viewer visibility.Viewer) ([]visibility.ConversationView, error) {
	ctx, span := s.startSpan(ctx, SurfaceConversations, viewer)
	defer span.End()
	defer s.observe(SurfaceConversations, time.Now())

	if viewer.IsAnonymous() {
		return nil, s.spanError(span, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
	}
	convs, err := s.conversations.ListByParticipant(ctx, viewer.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to list conversations",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, s.spanError(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list conversations"))
	}
	views, err := s.conversationViews(ctx, viewer, convs)
	if err != nil {
		return nil, s.spanError(span, err)
	}
	span.SetAttributes(attribute.Int("visibility.count", len(views)))
	return views, nil
}

func (s *Service) conversationViews(ctx context.Context, viewer visibility.Viewer, convs []*visibility.Conversation) ([]visibility.ConversationView, error) {
	views := make([]visibility.ConversationView, 0, len(convs))
	if len(convs) == 0 {
		return views, nil
	}

	candidateIDs := make([]id.UserID, 0, len(convs))
	for _, c := range convs {
		candidateIDs = append(candidateIDs, c.CandidateID)
	}
	targets, err := s.profiles.FindByUserIDs(ctx, candidateIDs)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to load conversation candidates",
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load conversations")
	}
	byUser := make(map[id.UserID]*visibility.TargetProfile, len(targets))
	for _, t := range targets {
		byUser[t.UserID] = t
	}

	scope := s.gate.NewScope()
	scope.PrimeRelationships(ctx, viewer, userIDs(targets))

	for _, c := range convs {
		view := visibility.ConversationView{
			ID:            c.ID,
			Subject:       c.Subject,
			EmployerID:    c.EmployerID,
			LastMessageAt: c.LastMessageAt,
			CreatedAt:     c.CreatedAt,
		}
		if target, ok := byUser[c.CandidateID]; ok {
			decision := s.resolve(ctx, scope, viewer.For(target), target)
			candidate := visibility.Materialize(target, decision)
			view.Candidate = &candidate
		}
		views = append(views, view)
	}
	return views, nil
}

// AuthorDisplay derives the name shown next to a message-board post by
// authorID, honouring the author's anonymity preference for this viewer.
func (s *Service) AuthorDisplay(ctx context.Context, viewer visibility.Viewer, authorID id.UserID) (visibility.AuthorDisplay, error) {
	ctx, span := s.startSpan(ctx, SurfaceAuthor, viewer)
	defer span.End()
	defer s.observe(SurfaceAuthor, time.Now())

	target, err := s.profiles.FindByUserID(ctx, authorID)
	if err != nil {
		return visibility.AuthorDisplay{}, s.spanError(span, s.translateLookup(ctx, err, "author not found"))
	}
	viewer = viewer.For(target)
	if !visibleListing(viewer, target) {
		return visibility.AuthorDisplay{}, s.spanError(span, dErrors.New(dErrors.CodeNotFound, "author not found"))
	}
	decision := s.resolve(ctx, s.gate.NewScope(), viewer, target)
	return visibility.DisplayName(target, decision), nil
}

// resolve evaluates the policy for one target. viewer must already carry
// ownership for target.
func (s *Service) resolve(ctx context.Context, scope *facts.Scope, viewer visibility.Viewer, target *visibility.TargetProfile) visibility.RedactionDecision {
	access, rel := scope.Resolve(ctx, viewer, target)
	decision := visibility.Evaluate(viewer, target, access, rel)
	s.metrics.IncrementDecision(string(decision.Rule))

	if decision.Rule == visibility.RuleAdmin && target.IsAnonymous {
		s.emitReveal(ctx, viewer, target)
	}
	return decision
}

func (s *Service) emitReveal(ctx context.Context, viewer visibility.Viewer, target *visibility.TargetProfile) {
	if s.auditor == nil {
		return
	}
	event := audit.Event{
		Timestamp: requestcontext.Now(ctx),
		UserID:    target.UserID,
		Subject:   target.Slug,
		Action:    string(audit.EventAnonymousProfileRevealed),
		Decision:  string(visibility.RuleAdmin),
		RequestID: requestcontext.RequestID(ctx),
		ActorID:   viewer.ID.String(),
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "failed to emit reveal audit event",
			"error", err,
			"request_id", event.RequestID,
		)
	}
}

// translateLookup maps a store error to a domain error. Missing rows become
// NotFound with msg; anything else is logged and reported as internal.
func (s *Service) translateLookup(ctx context.Context, err error, msg string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, msg)
	}
	s.logger.ErrorContext(ctx, "visibility lookup failed",
		"error", err,
		"request_id", requestcontext.RequestID(ctx),
	)
	return dErrors.Wrap(err, dErrors.CodeInternal, "lookup failed")
}

func (s *Service) startSpan(ctx context.Context, surface string, viewer visibility.Viewer) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "visibility."+surface, trace.WithAttributes(
		attribute.String("visibility.surface", surface),
		attribute.String("visibility.viewer_role", string(viewer.Role)),
	))
}

func (s *Service) spanError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	return err
}

func (s *Service) observe(surface string, start time.Time) {
	s.metrics.ObserveResolveLatency(surface, time.Since(start))
}

// visibleListing hides unapproved profiles from everyone but the owner and
// admins.
func visibleListing(viewer visibility.Viewer, target *visibility.TargetProfile) bool {
	if target.Approved || viewer.IsOwnerOfTarget {
		return true
	}
	return viewer.Role == id.RoleAdmin && !viewer.ID.IsNil()
}

func canBrowseCandidates(viewer visibility.Viewer) bool {
	return viewer.Role.IsHiring() || viewer.Role == id.RoleAdmin
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

func userIDs(targets []*visibility.TargetProfile) []id.UserID {
	out := make([]id.UserID, 0, len(targets))
	for _, t := range targets {
		out = append(out, t.UserID)
	}
	return out
}
