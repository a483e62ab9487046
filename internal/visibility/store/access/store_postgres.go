package access

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	id "talentnet/pkg/domain"
)

// PostgresStore derives network access from the employer's subscription rows.
// It is a read-through query with no caching.
type PostgresStore struct {
	db  *sql.DB
	now func() time.Time
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db, now: time.Now}
}

func (s *PostgresStore) HasNetworkAccess(ctx context.Context, employerID id.UserID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM subscriptions
			WHERE owner_user_id = $1
			  AND network_access = TRUE
			  AND status IN ('active', 'trialing')
			  AND (current_period_end IS NULL OR current_period_end > $2)
		)
	`
	var has bool
	if err := s.db.QueryRowContext(ctx, query, employerID, s.now().UTC()).Scan(&has); err != nil {
		return false, fmt.Errorf("check network access: %w", err)
	}
	return has, nil
}
