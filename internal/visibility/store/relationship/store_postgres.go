package relationship

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	id "talentnet/pkg/domain"
)

// PostgresStore answers relationship facts from job applications joined to
// the jobs an employer owns.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) HasApplied(ctx context.Context, employerID, candidateID id.UserID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM job_applications a
			JOIN jobs j ON j.id = a.job_id
			WHERE j.employer_user_id = $1 AND a.candidate_user_id = $2
		)
	`
	var applied bool
	if err := s.db.QueryRowContext(ctx, query, employerID, candidateID).Scan(&applied); err != nil {
		return false, fmt.Errorf("check application: %w", err)
	}
	return applied, nil
}

func (s *PostgresStore) AppliedCandidates(ctx context.Context, employerID id.UserID, candidateIDs []id.UserID) (map[id.UserID]bool, error) {
	out := make(map[id.UserID]bool, len(candidateIDs))
	if len(candidateIDs) == 0 {
		return out, nil
	}
	ids := make([]string, len(candidateIDs))
	for i, c := range candidateIDs {
		ids[i] = c.String()
	}

	query := `
		SELECT DISTINCT a.candidate_user_id
		FROM job_applications a
		JOIN jobs j ON j.id = a.job_id
		WHERE j.employer_user_id = $1 AND a.candidate_user_id = ANY($2::uuid[])
	`
	rows, err := s.db.QueryContext(ctx, query, employerID, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("list applied candidates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var candidate id.UserID
		if err := rows.Scan(&candidate); err != nil {
			return nil, fmt.Errorf("scan applied candidate: %w", err)
		}
		out[candidate] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate applied candidates: %w", err)
	}
	return out, nil
}
