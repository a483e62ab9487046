package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"talentnet/internal/platform/metrics"
	"talentnet/internal/session"
	"talentnet/internal/visibility"
	"talentnet/internal/visibility/handler"
	"talentnet/internal/visibility/handler/mocks"
	id "talentnet/pkg/domain"
	"talentnet/pkg/platform/middleware/metadata"
	request "talentnet/pkg/platform/middleware/request"
	"talentnet/pkg/requestcontext"
	"talentnet/pkg/testutil"
)

type RouterSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	service  *mocks.MockService
	jwt      *session.JWTService
	registry *prometheus.Registry
	redisErr error
	proxies  *metadata.TrustedProxies
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.jwt = session.NewJWTService("test-key", "talentnet")
	s.registry = prometheus.NewRegistry()
	s.redisErr = nil
	s.proxies = nil
}

func (s *RouterSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *RouterSuite) router() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewRouter(Dependencies{
		Logger:   logger,
		Tokens:   session.NewJWTServiceAdapter(s.jwt),
		Metrics:  metrics.New(s.registry),
		Gatherer: s.registry,
		Checks: map[string]HealthCheck{
			"redis": func(context.Context) error { return s.redisErr },
		},
		TrustedProxies: s.proxies,
		CacheMaxAge:    time.Minute,
		Modules:        []Registrar{handler.New(s.service, logger, time.Minute)},
	})
}

// =============================================================================
// Middleware chain
// =============================================================================

func (s *RouterSuite) TestBearerTokenBecomesViewer() {
	userID := id.UserID(uuid.New())
	token, err := s.jwt.GenerateToken(userID, id.SessionID(uuid.New()), id.RoleEmployer, time.Hour)
	s.Require().NoError(err)

	s.service.EXPECT().ProfileBySlug(gomock.Any(), gomock.Any(), "rita-jones").
		DoAndReturn(func(_ context.Context, viewer visibility.Viewer, _ string) (*visibility.RedactedProfile, error) {
			s.Equal(userID, viewer.ID)
			s.Equal(id.RoleEmployer, viewer.Role)
			return &visibility.RedactedProfile{}, nil
		})

	req := testutil.NewBrowserRequest(s.T(), "/profiles/rita-jones")
	req.Header.Set("Authorization", "Bearer "+token)
	rr := testutil.DoRequest(s.router(), req)

	testutil.AssertStatusOK(s.T(), rr)
	s.NotEmpty(rr.Header().Get(request.HeaderRequestID))
}

func (s *RouterSuite) TestClientMetadataReachesService() {
	s.service.EXPECT().ProfileBySlug(gomock.Any(), gomock.Any(), "rita-jones").
		DoAndReturn(func(ctx context.Context, viewer visibility.Viewer, _ string) (*visibility.RedactedProfile, error) {
			s.True(viewer.IsAnonymous())
			s.NotEmpty(requestcontext.UserAgent(ctx))
			return &visibility.RedactedProfile{}, nil
		})

	rr := testutil.DoRequest(s.router(), testutil.NewBrowserRequest(s.T(), "/profiles/rita-jones"))

	testutil.AssertStatusOK(s.T(), rr)
}

// Justification: an expired or forged session must not fall back to the
// anonymous projection silently.
func (s *RouterSuite) TestInvalidTokenRejected() {
	req := testutil.NewBrowserRequest(s.T(), "/profiles/rita-jones")
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := testutil.DoRequest(s.router(), req)

	testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	testutil.AssertNoShareHeaders(s.T(), rr)
}

func (s *RouterSuite) TestForwardedForIgnoredFromUntrustedPeer() {
	s.service.EXPECT().ProfileBySlug(gomock.Any(), gomock.Any(), "rita-jones").
		DoAndReturn(func(ctx context.Context, _ visibility.Viewer, _ string) (*visibility.RedactedProfile, error) {
			s.Equal("198.51.100.9", requestcontext.ClientIP(ctx))
			return &visibility.RedactedProfile{}, nil
		})

	req := testutil.NewBrowserRequest(s.T(), "/profiles/rita-jones")
	req.RemoteAddr = "198.51.100.9:40000"
	req.Header.Set("X-Forwarded-For", "10.0.0.3")
	rr := testutil.DoRequest(s.router(), req)

	testutil.AssertStatusOK(s.T(), rr)
}

func (s *RouterSuite) TestForwardedForHonouredFromTrustedProxy() {
	proxies, err := metadata.ParseTrustedProxies([]string{"10.0.0.0/8"})
	s.Require().NoError(err)
	s.proxies = proxies
	s.service.EXPECT().ProfileBySlug(gomock.Any(), gomock.Any(), "rita-jones").
		DoAndReturn(func(ctx context.Context, _ visibility.Viewer, _ string) (*visibility.RedactedProfile, error) {
			s.Equal("203.0.113.7", requestcontext.ClientIP(ctx))
			return &visibility.RedactedProfile{}, nil
		})

	req := testutil.NewBrowserRequest(s.T(), "/profiles/rita-jones")
	req.RemoteAddr = "10.0.0.2:40000"
	req.Header.Set("X-Forwarded-For", "203.0.113.7")
	rr := testutil.DoRequest(s.router(), req)

	testutil.AssertStatusOK(s.T(), rr)
}

// =============================================================================
// Operational endpoints
// =============================================================================

func (s *RouterSuite) TestHealthz() {
	rr := testutil.DoRequest(s.router(), testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))

	testutil.AssertStatusOK(s.T(), rr)
	s.JSONEq(`{"status":"ok","checks":{"redis":"ok"}}`, rr.Body.String())
}

func (s *RouterSuite) TestHealthzDegraded() {
	s.redisErr = errors.New("dial tcp: connection refused")

	rr := testutil.DoRequest(s.router(), testutil.NewRequest(s.T(), http.MethodGet, "/healthz"))

	testutil.AssertStatus(s.T(), rr, http.StatusServiceUnavailable)
	s.JSONEq(`{"status":"degraded","checks":{"redis":"unavailable"}}`, rr.Body.String())
}

func (s *RouterSuite) TestMetricsUseRoutePattern() {
	s.service.EXPECT().ProfileBySlug(gomock.Any(), gomock.Any(), "rita-jones").
		Return(&visibility.RedactedProfile{}, nil)
	router := s.router()

	testutil.DoRequest(router, testutil.NewBrowserRequest(s.T(), "/profiles/rita-jones"))
	rr := testutil.DoRequest(router, testutil.NewRequest(s.T(), http.MethodGet, "/metrics"))

	testutil.AssertStatusOK(s.T(), rr)
	s.Contains(rr.Body.String(), `talentnet_http_requests_total{route="/profiles/{slug}",status="200"} 1`)
	s.NotContains(rr.Body.String(), "rita-jones")
}
