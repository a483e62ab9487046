package conversation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"talentnet/internal/visibility"
	id "talentnet/pkg/domain"
	"talentnet/pkg/platform/sentinel"
)

type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const conversationColumns = `id, candidate_user_id, employer_user_id, subject, last_message_at, created_at`

func (s *PostgresStore) FindByID(ctx context.Context, conversationID id.ConversationID) (*visibility.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations WHERE id = $1`
	c, err := scanConversation(s.db.QueryRowContext(ctx, query, conversationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find conversation: %w", err)
	}
	return c, nil
}

// ListByParticipant returns the user's conversations, most recent first.
func (s *PostgresStore) ListByParticipant(ctx context.Context, userID id.UserID) ([]*visibility.Conversation, error) {
	query := `SELECT ` + conversationColumns + ` FROM conversations
		WHERE candidate_user_id = $1 OR employer_user_id = $1
		ORDER BY last_message_at DESC, id`
	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	out := []*visibility.Conversation{}
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate conversations: %w", err)
	}
	return out, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversation(row rowScanner) (*visibility.Conversation, error) {
	var c visibility.Conversation
	if err := row.Scan(&c.ID, &c.CandidateID, &c.EmployerID, &c.Subject, &c.LastMessageAt, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
