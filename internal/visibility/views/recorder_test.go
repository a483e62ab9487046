package views

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"talentnet/internal/visibility"
	"talentnet/internal/visibility/metrics"
	"talentnet/internal/visibility/mocks"
	"talentnet/internal/visibility/store/profile"
	viewstore "talentnet/internal/visibility/store/views"
	id "talentnet/pkg/domain"
	"talentnet/pkg/platform/audit"
	"talentnet/pkg/platform/middleware/metadata"
	"talentnet/pkg/requestcontext"
	"talentnet/pkg/testutil"
)

type RecorderSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	store    *mocks.MockStore
	guard    *mocks.MockGuard
	auditor  *mocks.MockAuditPublisher
	metrics  *metrics.Metrics
	recorder *Recorder
	ctx      context.Context
	target   id.UserID
	employer visibility.Viewer
	now      time.Time
}

func TestRecorderSuite(t *testing.T) {
	suite.Run(t, new(RecorderSuite))
}

func (s *RecorderSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.guard = mocks.NewMockGuard(s.ctrl)
	s.auditor = mocks.NewMockAuditPublisher(s.ctrl)
	s.metrics = metrics.New(prometheus.NewRegistry())
	s.now = time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	s.recorder = New(s.store,
		WithGuard(s.guard),
		WithAuditor(s.auditor),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
		WithClock(func() time.Time { return s.now }),
	)
	s.ctx = requestcontext.WithClientMetadata(context.Background(), "203.0.113.7", testutil.BrowserUserAgent)
	s.ctx = requestcontext.WithRequestID(s.ctx, "req-1")
	s.target = id.UserID(uuid.New())
	s.employer = visibility.Viewer{ID: id.UserID(uuid.New()), Role: id.RoleEmployer}
}

func (s *RecorderSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RecorderSuite) result(name string) float64 {
	return promtest.ToFloat64(s.metrics.Views.WithLabelValues(name))
}

// =============================================================================
// Skipped views
// =============================================================================

func (s *RecorderSuite) TestOwnerViewIsNotCounted() {
	owner := visibility.Viewer{ID: s.target, Role: id.RoleProfessional}.For(&visibility.TargetProfile{UserID: s.target})

	s.recorder.RecordView(s.ctx, s.target, owner)

	s.Equal(1.0, s.result(ResultSkippedOwner))
}

func (s *RecorderSuite) TestCrawlerIsNotCounted() {
	ctx := requestcontext.WithClientMetadata(context.Background(), "66.249.66.1",
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)")

	s.recorder.RecordView(ctx, s.target, s.employer)

	s.Equal(1.0, s.result(ResultSkippedBot))
}

func (s *RecorderSuite) TestMissingUserAgentIsTreatedAsCrawler() {
	ctx := requestcontext.WithClientMetadata(context.Background(), "203.0.113.7", "")

	s.recorder.RecordView(ctx, s.target, visibility.Viewer{Role: id.RoleAnonymous})

	s.Equal(1.0, s.result(ResultSkippedBot))
}

func (s *RecorderSuite) TestAnonymousWithoutAddressIsNotCounted() {
	ctx := requestcontext.WithClientMetadata(context.Background(), "", testutil.BrowserUserAgent)

	s.recorder.RecordView(ctx, s.target, visibility.Viewer{Role: id.RoleAnonymous})

	s.Equal(1.0, s.result(ResultSkippedNoKey))
}

// =============================================================================
// Counting and deduplication
// =============================================================================

// Justification: API clients often send no User-Agent; a signed-in viewer is
// identified by user ID, so the view still counts.
func (s *RecorderSuite) TestSignedInClientWithoutUserAgentIsCounted() {
	ctx := requestcontext.WithClientMetadata(context.Background(), "203.0.113.7", "")
	s.guard.EXPECT().Acquire(gomock.Any(), s.target, "user:"+s.employer.ID.String(), DefaultWindow).Return(true, nil)
	s.store.EXPECT().RecordView(gomock.Any(), gomock.Any(), DefaultWindow).Return(true, nil)
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	s.recorder.RecordView(ctx, s.target, s.employer)

	s.Equal(1.0, s.result(ResultCounted))
}

func (s *RecorderSuite) TestCountedViewEmitsAudit() {
	key := "user:" + s.employer.ID.String()
	s.guard.EXPECT().Acquire(gomock.Any(), s.target, key, DefaultWindow).Return(true, nil)
	s.store.EXPECT().RecordView(gomock.Any(), gomock.Any(), DefaultWindow).
		DoAndReturn(func(_ context.Context, e visibility.ViewEvent, _ time.Duration) (bool, error) {
			s.Equal(s.target, e.TargetUserID)
			s.Equal(key, e.ViewerKey)
			s.Require().NotNil(e.ViewerID)
			s.Equal(s.employer.ID, *e.ViewerID)
			s.Equal(s.now, e.OccurredAt)
			return true, nil
		})
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e audit.Event) error {
			s.Equal(string(audit.EventProfileViewed), e.Action)
			s.Equal(s.target, e.UserID)
			s.Equal(s.employer.ID.String(), e.ActorID)
			s.Equal(string(id.RoleEmployer), e.Reason)
			s.Equal("req-1", e.RequestID)
			return nil
		})

	s.recorder.RecordView(s.ctx, s.target, s.employer)

	s.Equal(1.0, s.result(ResultCounted))
}

func (s *RecorderSuite) TestAnonymousViewHasNoViewerID() {
	s.guard.EXPECT().Acquire(gomock.Any(), s.target, gomock.Any(), DefaultWindow).Return(true, nil)
	s.store.EXPECT().RecordView(gomock.Any(), gomock.Any(), DefaultWindow).
		DoAndReturn(func(_ context.Context, e visibility.ViewEvent, _ time.Duration) (bool, error) {
			s.Nil(e.ViewerID)
			s.Contains(e.ViewerKey, anonymousKeyPrefix)
			return true, nil
		})
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, e audit.Event) error {
			s.Empty(e.ActorID)
			return nil
		})

	s.recorder.RecordView(s.ctx, s.target, visibility.Viewer{Role: id.RoleAnonymous})

	s.Equal(1.0, s.result(ResultCounted))
}

func (s *RecorderSuite) TestGuardHitSkipsStore() {
	s.guard.EXPECT().Acquire(gomock.Any(), s.target, gomock.Any(), DefaultWindow).Return(false, nil)

	s.recorder.RecordView(s.ctx, s.target, s.employer)

	s.Equal(1.0, s.result(ResultDeduped))
}

func (s *RecorderSuite) TestStoreDedupeDoesNotAudit() {
	s.guard.EXPECT().Acquire(gomock.Any(), s.target, gomock.Any(), DefaultWindow).Return(true, nil)
	s.store.EXPECT().RecordView(gomock.Any(), gomock.Any(), DefaultWindow).Return(false, nil)

	s.recorder.RecordView(s.ctx, s.target, s.employer)

	s.Equal(1.0, s.result(ResultDeduped))
}

// =============================================================================
// Failure handling
// =============================================================================

func (s *RecorderSuite) TestGuardErrorFallsThroughToStore() {
	s.guard.EXPECT().Acquire(gomock.Any(), s.target, gomock.Any(), DefaultWindow).
		Return(false, errors.New("redis: connection refused"))
	s.store.EXPECT().RecordView(gomock.Any(), gomock.Any(), DefaultWindow).Return(true, nil)
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)

	s.recorder.RecordView(s.ctx, s.target, s.employer)

	s.Equal(1.0, s.result(ResultCounted))
}

func (s *RecorderSuite) TestStoreFailureReleasesGuard() {
	key := "user:" + s.employer.ID.String()
	s.guard.EXPECT().Acquire(gomock.Any(), s.target, key, DefaultWindow).Return(true, nil)
	s.store.EXPECT().RecordView(gomock.Any(), gomock.Any(), DefaultWindow).
		Return(false, errors.New("connection reset"))
	s.guard.EXPECT().Release(gomock.Any(), s.target, key).Return(nil)

	s.NotPanics(func() {
		s.recorder.RecordView(s.ctx, s.target, s.employer)
	})

	s.Equal(1.0, s.result(ResultFailed))
}

func (s *RecorderSuite) TestAuditFailureStillCounts() {
	s.guard.EXPECT().Acquire(gomock.Any(), s.target, gomock.Any(), DefaultWindow).Return(true, nil)
	s.store.EXPECT().RecordView(gomock.Any(), gomock.Any(), DefaultWindow).Return(true, nil)
	s.auditor.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("audit buffer full"))

	s.recorder.RecordView(s.ctx, s.target, s.employer)

	s.Equal(1.0, s.result(ResultCounted))
}

func (s *RecorderSuite) TestStoreWriteIsBoundedByTimeout() {
	recorder := New(s.store,
		WithTimeout(20*time.Millisecond),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)
	s.store.EXPECT().RecordView(gomock.Any(), gomock.Any(), DefaultWindow).
		DoAndReturn(func(ctx context.Context, _ visibility.ViewEvent, _ time.Duration) (bool, error) {
			<-ctx.Done()
			return false, ctx.Err()
		})

	recorder.RecordView(s.ctx, s.target, s.employer)

	s.Equal(1.0, s.result(ResultFailed))
}

// Justification: a store timeout is the usual failure; the guard claim must
// still be released or the viewer stays deduped against a view never stored.
func (s *RecorderSuite) TestTimedOutStoreReleasesGuardWithLiveContext() {
	recorder := New(s.store,
		WithGuard(s.guard),
		WithTimeout(20*time.Millisecond),
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithMetrics(s.metrics),
	)
	key := "user:" + s.employer.ID.String()
	s.guard.EXPECT().Acquire(gomock.Any(), s.target, key, DefaultWindow).Return(true, nil)
	s.store.EXPECT().RecordView(gomock.Any(), gomock.Any(), DefaultWindow).
		DoAndReturn(func(ctx context.Context, _ visibility.ViewEvent, _ time.Duration) (bool, error) {
			<-ctx.Done()
			return false, ctx.Err()
		})
	s.guard.EXPECT().Release(gomock.Any(), s.target, key).
		DoAndReturn(func(ctx context.Context, _ id.UserID, _ string) error {
			s.NoError(ctx.Err())
			_, hasDeadline := ctx.Deadline()
			s.True(hasDeadline)
			return nil
		})

	recorder.RecordView(s.ctx, s.target, s.employer)

	s.Equal(1.0, s.result(ResultFailed))
}

// =============================================================================
// End to end with in-memory stores
// =============================================================================

// Justification: two rapid fetches by the same viewer are the motivating case
// for the idempotency window; this runs them through the real recorder and
// store rather than mocks.
func TestRecordView_RapidRepeatCountsOnce(t *testing.T) {
	ctx := requestcontext.WithClientMetadata(context.Background(), "198.51.100.4", testutil.BrowserUserAgent)
	profiles := profile.NewInMemoryStore()
	target := id.UserID(uuid.New())
	if err := profiles.Save(ctx, &visibility.TargetProfile{UserID: target, Slug: "rapid"}); err != nil {
		t.Fatal(err)
	}
	store := viewstore.NewInMemoryStore(profiles)
	recorder := New(store, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	anon := visibility.Viewer{Role: id.RoleAnonymous}

	recorder.RecordView(ctx, target, anon)
	recorder.RecordView(ctx, target, anon)

	p, err := profiles.FindByUserID(ctx, target)
	if err != nil {
		t.Fatal(err)
	}
	if p.ProfileViews != 1 {
		t.Fatalf("expected 1 counted view, got %d", p.ProfileViews)
	}
	if n := len(store.Events(target)); n != 1 {
		t.Fatalf("expected 1 view event, got %d", n)
	}
}

// Justification: an anonymous client controls its forwarding headers; rotating
// X-Forwarded-For from the same connection must not mint new viewer keys.
func TestRecordView_RotatedForwardedForCountsOnce(t *testing.T) {
	profiles := profile.NewInMemoryStore()
	target := id.UserID(uuid.New())
	if err := profiles.Save(context.Background(), &visibility.TargetProfile{UserID: target, Slug: "rotated"}); err != nil {
		t.Fatal(err)
	}
	store := viewstore.NewInMemoryStore(profiles)
	recorder := New(store, WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))))
	anon := visibility.Viewer{Role: id.RoleAnonymous}
	h := metadata.ClientMetadata(nil)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		recorder.RecordView(r.Context(), target, anon)
	}))

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/profiles/rotated", nil)
		req.RemoteAddr = "198.51.100.9:40000"
		req.Header.Set("User-Agent", testutil.BrowserUserAgent)
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("10.0.0.%d", i))
		h.ServeHTTP(httptest.NewRecorder(), req)
	}

	p, err := profiles.FindByUserID(context.Background(), target)
	if err != nil {
		t.Fatal(err)
	}
	if p.ProfileViews != 1 {
		t.Fatalf("expected 1 counted view, got %d", p.ProfileViews)
	}
}
