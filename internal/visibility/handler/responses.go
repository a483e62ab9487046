package handler

import "talentnet/internal/visibility"

// CandidatesResponse is the HTTP response for GET /candidates.
type CandidatesResponse struct {
	Candidates []visibility.RedactedProfile `json:"candidates"`
	Limit      int                          `json:"limit"`
	Offset     int                          `json:"offset"`
}

// ConversationsResponse is the HTTP response for GET /conversations.
type ConversationsResponse struct {
	Conversations []visibility.ConversationView `json:"conversations"`
}
