package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	id "talentnet/pkg/domain"
	dErrors "talentnet/pkg/domain-errors"
)

// PageRequest is the pagination query of GET /candidates.
type PageRequest struct {
	Limit  int
	Offset int
}

// parsePage reads limit and offset. Missing values are zero and left for the
// service to default.
func parsePage(r *http.Request) (PageRequest, error) {
	var page PageRequest
	q := r.URL.Query()
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return page, dErrors.New(dErrors.CodeBadRequest, "limit must be a non-negative integer")
		}
		page.Limit = n
	}
	if raw := q.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return page, dErrors.New(dErrors.CodeBadRequest, "offset must be a non-negative integer")
		}
		page.Offset = n
	}
	return page, nil
}

func userIDParam(r *http.Request) (id.UserID, error) {
	return id.ParseUserID(chi.URLParam(r, "userID"))
}

func conversationIDParam(r *http.Request) (id.ConversationID, error) {
	return id.ParseConversationID(chi.URLParam(r, "conversationID"))
}
