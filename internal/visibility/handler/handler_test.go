package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"talentnet/internal/visibility"
	"talentnet/internal/visibility/handler/mocks"
	id "talentnet/pkg/domain"
	dErrors "talentnet/pkg/domain-errors"
	"talentnet/pkg/testutil"
)

//go:generate mockgen -source=handler.go -destination=mocks/service_mock.go -package=mocks Service
type VisibilityHandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  http.Handler
	userID  string
}

func TestVisibilityHandlerSuite(t *testing.T) {
	suite.Run(t, new(VisibilityHandlerSuite))
}

func (s *VisibilityHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	r := chi.NewRouter()
	New(s.service, logger, 60*time.Second).Register(r)
	s.router = r
	s.userID = uuid.NewString()
}

func (s *VisibilityHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *VisibilityHandlerSuite) signedIn(req *http.Request, role id.Role) *http.Request {
	return testutil.WithViewer(req, s.userID, role)
}

// =============================================================================
// Public surfaces
// =============================================================================

func (s *VisibilityHandlerSuite) TestProfileBySlugAnonymous() {
	s.service.EXPECT().ProfileBySlug(gomock.Any(), gomock.Any(), "rita-jones").
		DoAndReturn(func(_ context.Context, viewer visibility.Viewer, _ string) (*visibility.RedactedProfile, error) {
			s.True(viewer.IsAnonymous())
			return &visibility.RedactedProfile{
				Skills: []string{"go"},
				User:   visibility.RedactedUser{FirstName: "R.J.", IsAnonymous: true},
			}, nil
		})

	rr := testutil.DoRequest(s.router, testutil.NewBrowserRequest(s.T(), "/profiles/rita-jones"))

	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertNoShareHeaders(s.T(), rr)
	s.Contains(rr.Body.String(), `"firstName":"R.J."`)
	s.Contains(rr.Body.String(), `"resumeUrl":null`)
}

func (s *VisibilityHandlerSuite) TestProfileBySlugPassesViewer() {
	s.service.EXPECT().ProfileBySlug(gomock.Any(), gomock.Any(), "rita-jones").
		DoAndReturn(func(_ context.Context, viewer visibility.Viewer, _ string) (*visibility.RedactedProfile, error) {
			s.Equal(s.userID, viewer.ID.String())
			s.Equal(id.RoleEmployer, viewer.Role)
			return &visibility.RedactedProfile{}, nil
		})

	req := s.signedIn(testutil.NewBrowserRequest(s.T(), "/profiles/rita-jones"), id.RoleEmployer)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatusOK(s.T(), rr)
}

func (s *VisibilityHandlerSuite) TestProfileBySlugNotFound() {
	s.service.EXPECT().ProfileBySlug(gomock.Any(), gomock.Any(), "nobody").
		Return(nil, dErrors.New(dErrors.CodeNotFound, "profile not found"))

	rr := testutil.DoRequest(s.router, testutil.NewBrowserRequest(s.T(), "/profiles/nobody"))

	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, string(dErrors.CodeNotFound))
	testutil.AssertNoShareHeaders(s.T(), rr)
}

func (s *VisibilityHandlerSuite) TestInternalErrorsCarryNoDetail() {
	s.service.EXPECT().ProfileBySlug(gomock.Any(), gomock.Any(), "rita-jones").
		Return(nil, dErrors.Wrap(errors.New("pq: relation does not exist"), dErrors.CodeInternal, "lookup failed"))

	rr := testutil.DoRequest(s.router, testutil.NewBrowserRequest(s.T(), "/profiles/rita-jones"))

	testutil.AssertStatus(s.T(), rr, http.StatusInternalServerError)
	s.NotContains(rr.Body.String(), "pq:")
	s.NotContains(rr.Body.String(), "lookup failed")
}

func (s *VisibilityHandlerSuite) TestAuthorDisplay() {
	authorID := uuid.New()
	s.service.EXPECT().AuthorDisplay(gomock.Any(), gomock.Any(), id.UserID(authorID)).
		Return(visibility.AuthorDisplay{UserID: id.UserID(authorID), DisplayName: "J.A.", IsAnonymous: true}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewBrowserRequest(s.T(), "/message-board/authors/"+authorID.String()))

	testutil.AssertStatusOK(s.T(), rr)
	s.Contains(rr.Body.String(), `"display_name":"J.A."`)
	s.Contains(rr.Body.String(), `"is_anonymous":true`)
}

func (s *VisibilityHandlerSuite) TestAuthorDisplayMalformedID() {
	rr := testutil.DoRequest(s.router, testutil.NewBrowserRequest(s.T(), "/message-board/authors/not-a-uuid"))

	testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
}

// =============================================================================
// Session-only surfaces
// =============================================================================

func (s *VisibilityHandlerSuite) TestSessionRequired() {
	paths := []string{
		"/dashboard/profiles/" + uuid.NewString(),
		"/candidates",
		"/conversations",
		"/conversations/" + uuid.NewString(),
	}
	for _, path := range paths {
		rr := testutil.DoRequest(s.router, testutil.NewBrowserRequest(s.T(), path))
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	}
}

func (s *VisibilityHandlerSuite) TestDashboardForbidden() {
	target := uuid.New()
	s.service.EXPECT().DashboardProfile(gomock.Any(), gomock.Any(), id.UserID(target)).
		Return(nil, dErrors.New(dErrors.CodeForbidden, "role may not view candidate dashboards"))

	req := s.signedIn(testutil.NewBrowserRequest(s.T(), "/dashboard/profiles/"+target.String()), id.RoleProfessional)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, string(dErrors.CodeForbidden))
}

func (s *VisibilityHandlerSuite) TestCandidatesPagination() {
	s.service.EXPECT().CandidateCards(gomock.Any(), gomock.Any(), 10, 20).
		Return([]visibility.RedactedProfile{{Title: "Engineer"}}, nil)

	req := s.signedIn(testutil.NewBrowserRequest(s.T(), "/candidates?limit=10&offset=20"), id.RoleAgency)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatusOK(s.T(), rr)
	resp := testutil.UnmarshalResponse[CandidatesResponse](s.T(), rr)
	s.Len(resp.Candidates, 1)
	s.Equal(10, resp.Limit)
}

func (s *VisibilityHandlerSuite) TestCandidatesBadPagination() {
	req := s.signedIn(testutil.NewBrowserRequest(s.T(), "/candidates?limit=abc"), id.RoleEmployer)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, string(dErrors.CodeBadRequest))
}

func (s *VisibilityHandlerSuite) TestConversation() {
	convID := uuid.New()
	s.service.EXPECT().Conversation(gomock.Any(), gomock.Any(), id.ConversationID(convID)).
		Return(&visibility.ConversationView{ID: id.ConversationID(convID), Subject: "Platform role"}, nil)

	req := s.signedIn(testutil.NewBrowserRequest(s.T(), "/conversations/"+convID.String()), id.RoleEmployer)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatusOK(s.T(), rr)
	s.Contains(rr.Body.String(), `"candidate":null`)
}

func (s *VisibilityHandlerSuite) TestConversations() {
	s.service.EXPECT().Conversations(gomock.Any(), gomock.Any()).
		Return([]visibility.ConversationView{}, nil)

	req := s.signedIn(testutil.NewBrowserRequest(s.T(), "/conversations"), id.RoleProfessional)
	rr := testutil.DoRequest(s.router, req)

	testutil.AssertStatusOK(s.T(), rr)
	s.JSONEq(`{"conversations":[]}`, rr.Body.String())
}
