// Package views records profile-detail views: one counted view per viewer and
// profile per rolling window, with the counter increment and the event row
// written together.
package views

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"talentnet/internal/visibility"
	"talentnet/internal/visibility/metrics"
	id "talentnet/pkg/domain"
	"talentnet/pkg/platform/audit"
	"talentnet/pkg/requestcontext"
)

//go:generate mockgen -source=recorder.go -destination=../mocks/views_mock.go -package=mocks

const (
	DefaultWindow  = 24 * time.Hour
	defaultTimeout = 5 * time.Second
	releaseTimeout = time.Second

	ResultCounted      = "counted"
	ResultDeduped      = "deduped"
	ResultSkippedOwner = "skipped_owner"
	ResultSkippedBot   = "skipped_bot"
	ResultSkippedNoKey = "skipped_no_key"
	ResultFailed       = "failed"
)

// Store persists a view event and increments the profile's counter in one
// transaction, unless the same viewer key already has a counted view of the
// target inside window. counted is false for the duplicate case.
type Store interface {
	RecordView(ctx context.Context, event visibility.ViewEvent, window time.Duration) (counted bool, err error)
}

// Guard is a best-effort pre-check that filters repeat views before they reach
// the store. Acquire reports whether the key was newly claimed.
type Guard interface {
	Acquire(ctx context.Context, targetUserID id.UserID, viewerKey string, window time.Duration) (bool, error)
	Release(ctx context.Context, targetUserID id.UserID, viewerKey string) error
}

// AuditPublisher emits audit events.
type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Recorder implements the profile view side effect. RecordView never returns
// an error to its caller.
type Recorder struct {
	store   Store
	guard   Guard
	auditor AuditPublisher
	logger  *slog.Logger
	metrics *metrics.Metrics
	window  time.Duration
	timeout time.Duration
	now     func() time.Time
}

type Option func(*Recorder)

func WithGuard(guard Guard) Option {
	return func(r *Recorder) {
		r.guard = guard
	}
}

func WithAuditor(auditor AuditPublisher) Option {
	return func(r *Recorder) {
		r.auditor = auditor
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(r *Recorder) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(r *Recorder) {
		r.metrics = m
	}
}

// WithWindow sets the idempotency window.
func WithWindow(d time.Duration) Option {
	return func(r *Recorder) {
		if d > 0 {
			r.window = d
		}
	}
}

// WithTimeout bounds the store write.
func WithTimeout(d time.Duration) Option {
	return func(r *Recorder) {
		if d > 0 {
			r.timeout = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(r *Recorder) {
		if now != nil {
			r.now = now
		}
	}
}

func New(store Store, opts ...Option) *Recorder {
	r := &Recorder{
		store:   store,
		logger:  slog.Default(),
		window:  DefaultWindow,
		timeout: defaultTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// RecordView counts a view of targetUserID by viewer. Owners, crawlers and
// repeat views inside the window are not counted. Failures are logged and
// dropped.
func (r *Recorder) RecordView(ctx context.Context, targetUserID id.UserID, viewer visibility.Viewer) {
	result := r.record(ctx, targetUserID, viewer)
	r.metrics.IncrementView(result)
}

func (r *Recorder) record(ctx context.Context, targetUserID id.UserID, viewer visibility.Viewer) string {
	if viewer.IsOwnerOfTarget || (!viewer.ID.IsNil() && viewer.ID == targetUserID) {
		return ResultSkippedOwner
	}
	if isAutomated(requestcontext.UserAgent(ctx), viewer) {
		return ResultSkippedBot
	}
	key := ViewerKey(ctx, viewer)
	if key == "" {
		return ResultSkippedNoKey
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	claimed := false
	if r.guard != nil {
		fresh, err := r.guard.Acquire(ctx, targetUserID, key, r.window)
		switch {
		case err != nil:
			r.logger.DebugContext(ctx, "view guard unavailable, falling back to store",
				"error", err,
				"request_id", requestcontext.RequestID(ctx),
			)
		case !fresh:
			return ResultDeduped
		default:
			claimed = true
		}
	}

	event := visibility.ViewEvent{
		ID:           uuid.New(),
		TargetUserID: targetUserID,
		ViewerKey:    key,
		OccurredAt:   r.now().UTC(),
	}
	if !viewer.IsAnonymous() {
		viewerID := viewer.ID
		event.ViewerID = &viewerID
	}

	counted, err := r.store.RecordView(ctx, event, r.window)
	if err != nil {
		r.logger.ErrorContext(ctx, "failed to record profile view",
			"target_user_id", targetUserID.String(),
			"error", err,
			"request_id", requestcontext.RequestID(ctx),
		)
		if claimed {
			// ctx may already be past its deadline; the claim must still go.
			relCtx, relCancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
			relErr := r.guard.Release(relCtx, targetUserID, key)
			relCancel()
			if relErr != nil {
				r.logger.WarnContext(ctx, "failed to release view guard",
					"error", relErr,
					"request_id", requestcontext.RequestID(ctx),
				)
			}
		}
		return ResultFailed
	}
	if !counted {
		return ResultDeduped
	}

	r.emitViewed(ctx, event, viewer)
	return ResultCounted
}

func (r *Recorder) emitViewed(ctx context.Context, event visibility.ViewEvent, viewer visibility.Viewer) {
	if r.auditor == nil {
		return
	}
	e := audit.Event{
		Timestamp: event.OccurredAt,
		UserID:    event.TargetUserID,
		Subject:   event.ViewerKey,
		Action:    string(audit.EventProfileViewed),
		RequestID: requestcontext.RequestID(ctx),
	}
	if event.ViewerID != nil {
		e.ActorID = event.ViewerID.String()
		e.Reason = string(viewer.Role)
	}
	if err := r.auditor.Emit(ctx, e); err != nil {
		r.logger.WarnContext(ctx, "failed to emit profile view audit event",
			"error", err,
			"request_id", e.RequestID,
		)
	}
}
