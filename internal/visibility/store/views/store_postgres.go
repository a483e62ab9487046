package views

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"talentnet/internal/visibility"
	"talentnet/pkg/platform/sentinel"
	"talentnet/pkg/platform/tx"
)

// PostgresStore writes view events and the denormalized counter in one
// transaction. A transaction-scoped advisory lock on the (target, viewer key)
// pair serialises the window check with the insert, so two concurrent views
// by the same viewer count once.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) RecordView(ctx context.Context, event visibility.ViewEvent, window time.Duration) (bool, error) {
	var counted bool
	err := s.runInTx(ctx, func(ctx context.Context) error {
		if err := s.lockPair(ctx, event); err != nil {
			return err
		}
		seen, err := s.seenWithin(ctx, event, window)
		if err != nil || seen {
			return err
		}
		if err := s.insertEvent(ctx, event); err != nil {
			return err
		}
		if err := s.incrementViews(ctx, event); err != nil {
			return err
		}
		counted = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return counted, nil
}

// runInTx commits when fn succeeds and rolls back otherwise. Statements
// inside fn reach the transaction through the context.
func (s *PostgresStore) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin view tx: %w", err)
	}
	defer func() {
		_ = sqlTx.Rollback()
	}()

	if err := fn(tx.WithTx(ctx, sqlTx)); err != nil {
		return err
	}
	if err := sqlTx.Commit(); err != nil {
		return fmt.Errorf("commit view tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) lockPair(ctx context.Context, event visibility.ViewEvent) error {
	lockKey := event.TargetUserID.String() + "|" + event.ViewerKey
	if _, err := tx.Executor(ctx, s.db).ExecContext(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, lockKey); err != nil {
		return fmt.Errorf("lock view pair: %w", err)
	}
	return nil
}

func (s *PostgresStore) seenWithin(ctx context.Context, event visibility.ViewEvent, window time.Duration) (bool, error) {
	var seen bool
	err := tx.Executor(ctx, s.db).QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM profile_view_events
			WHERE target_user_id = $1 AND viewer_key = $2 AND occurred_at > $3
		)`,
		event.TargetUserID, event.ViewerKey, event.OccurredAt.Add(-window),
	).Scan(&seen)
	if err != nil {
		return false, fmt.Errorf("check view window: %w", err)
	}
	return seen, nil
}

func (s *PostgresStore) insertEvent(ctx context.Context, event visibility.ViewEvent) error {
	var viewerID any
	if event.ViewerID != nil {
		viewerID = event.ViewerID.String()
	}
	_, err := tx.Executor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO profile_view_events (id, target_user_id, viewer_user_id, viewer_key, occurred_at)
		VALUES ($1, $2, $3, $4, $5)`,
		event.ID, event.TargetUserID, viewerID, event.ViewerKey, event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert view event: %w", err)
	}
	return nil
}

func (s *PostgresStore) incrementViews(ctx context.Context, event visibility.ViewEvent) error {
	res, err := tx.Executor(ctx, s.db).ExecContext(ctx,
		`UPDATE professional_profiles SET profile_views = profile_views + 1 WHERE user_id = $1`,
		event.TargetUserID,
	)
	if err != nil {
		return fmt.Errorf("increment profile views: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("increment profile views rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("increment profile views: %w", sentinel.ErrNotFound)
	}
	return nil
}
