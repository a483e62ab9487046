package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"talentnet/internal/visibility"
	id "talentnet/pkg/domain"
	dErrors "talentnet/pkg/domain-errors"
	"talentnet/pkg/platform/httputil"
	"talentnet/pkg/platform/middleware/auth"
	"talentnet/pkg/platform/middleware/privacy"
	"talentnet/pkg/requestcontext"
)

// Service defines the visibility operations the handlers expose.
type Service interface {
	ProfileBySlug(ctx context.Context, viewer visibility.Viewer, slug string) (*visibility.RedactedProfile, error)
	DashboardProfile(ctx context.Context, viewer visibility.Viewer, userID id.UserID) (*visibility.RedactedProfile, error)
	CandidateCards(ctx context.Context, viewer visibility.Viewer, limit, offset int) ([]visibility.RedactedProfile, error)
	Conversation(ctx context.Context, viewer visibility.Viewer, conversationID id.ConversationID) (*visibility.ConversationView, error)
	Conversations(ctx context.Context, viewer visibility.Viewer) ([]visibility.ConversationView, error)
	AuthorDisplay(ctx context.Context, viewer visibility.Viewer, authorID id.UserID) (visibility.AuthorDisplay, error)
}

// Handler wires the profile surfaces to the visibility service.
type Handler struct {
	service Service
	logger  *slog.Logger
	maxAge  time.Duration
}

// New constructs a visibility handler. maxAge is the private cache lifetime
// advertised on every response.
func New(service Service, logger *slog.Logger, maxAge time.Duration) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		maxAge:  maxAge,
	}
}

// Register mounts the visibility endpoints on the router. Every response is
// materialized per viewer, so all of them are marked private.
func (h *Handler) Register(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(privacy.NoShare(h.maxAge))

		r.Get("/profiles/{slug}", h.HandleProfileBySlug)
		r.Get("/message-board/authors/{userID}", h.HandleAuthorDisplay)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireSession(h.logger))
			r.Get("/dashboard/profiles/{userID}", h.HandleDashboardProfile)
			r.Get("/candidates", h.HandleCandidates)
			r.Get("/conversations", h.HandleConversations)
			r.Get("/conversations/{conversationID}", h.HandleConversation)
		})
	})
}

// viewerFrom builds the viewer from what the auth middleware resolved.
func viewerFrom(ctx context.Context) visibility.Viewer {
	return visibility.NewViewer(
		requestcontext.UserID(ctx),
		requestcontext.Role(ctx),
		requestcontext.SessionID(ctx),
	)
}

// HandleProfileBySlug handles GET /profiles/{slug}.
func (h *Handler) HandleProfileBySlug(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	viewer := viewerFrom(ctx)

	out, err := h.service.ProfileBySlug(ctx, viewer, chi.URLParam(r, "slug"))
	if err != nil {
		h.writeError(ctx, w, "profile fetch failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleDashboardProfile handles GET /dashboard/profiles/{userID}.
func (h *Handler) HandleDashboardProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID, err := userIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out, err := h.service.DashboardProfile(ctx, viewerFrom(ctx), userID)
	if err != nil {
		h.writeError(ctx, w, "dashboard profile fetch failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleCandidates handles GET /candidates.
func (h *Handler) HandleCandidates(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()
	page, err := parsePage(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	cards, err := h.service.CandidateCards(ctx, viewerFrom(ctx), page.Limit, page.Offset)
	if err != nil {
		h.writeError(ctx, w, "candidate list failed", err)
		return
	}

	h.logger.InfoContext(ctx, "candidates listed",
		"request_id", requestcontext.RequestID(ctx),
		"count", len(cards),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, CandidatesResponse{
		Candidates: cards,
		Limit:      page.Limit,
		Offset:     page.Offset,
	})
}

// HandleConversation handles GET /conversations/{conversationID}.
func (h *Handler) HandleConversation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	conversationID, err := conversationIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out, err := h.service.Conversation(ctx, viewerFrom(ctx), conversationID)
	if err != nil {
		h.writeError(ctx, w, "conversation fetch failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// HandleConversations handles GET /conversations.
func (h *Handler) HandleConversations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	out, err := h.service.Conversations(ctx, viewerFrom(ctx))
	if err != nil {
		h.writeError(ctx, w, "conversation list failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ConversationsResponse{Conversations: out})
}

// HandleAuthorDisplay handles GET /message-board/authors/{userID}.
func (h *Handler) HandleAuthorDisplay(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	authorID, err := userIDParam(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	out, err := h.service.AuthorDisplay(ctx, viewerFrom(ctx), authorID)
	if err != nil {
		h.writeError(ctx, w, "author display failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, out)
}

// writeError logs internal failures and writes the mapped response. Client
// errors are expected and logged at debug.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if dErrors.CodeOf(err) == dErrors.CodeInternal {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	} else {
		h.logger.DebugContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
