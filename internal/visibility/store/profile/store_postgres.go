package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"talentnet/internal/visibility"
	id "talentnet/pkg/domain"
	"talentnet/pkg/platform/sentinel"
)

// PostgresStore reads candidate profiles joined with their owning user.
// Only the columns the visibility engine needs are selected.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const profileColumns = `
	p.id, p.user_id, p.slug, p.approved,
	u.first_name, u.last_name, u.email, COALESCE(u.phone_number, ''), COALESCE(u.image, ''),
	u.role, u.created_at,
	COALESCE(p.resume_url, ''), p.additional_photos, p.media_urls,
	COALESCE(p.custom_initials, ''), p.is_anonymous,
	p.bio, p.title, p.skills, p.experience, p.certifications, p.location, p.availability,
	p.profile_views, p.work_locations, p.open_to_relocation, p.years_of_experience,
	p.pay_range_min, p.pay_range_max, p.pay_type, p.open_to_work`

const profileFrom = `
	FROM professional_profiles p
	JOIN users u ON u.id = p.user_id`

func (s *PostgresStore) FindByUserID(ctx context.Context, userID id.UserID) (*visibility.TargetProfile, error) {
	query := `SELECT ` + profileColumns + profileFrom + ` WHERE p.user_id = $1`
	p, err := scanProfile(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find profile by user: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) FindBySlug(ctx context.Context, slug string) (*visibility.TargetProfile, error) {
	query := `SELECT ` + profileColumns + profileFrom + ` WHERE p.slug = $1`
	p, err := scanProfile(s.db.QueryRowContext(ctx, query, slug))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find profile by slug: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) FindByUserIDs(ctx context.Context, userIDs []id.UserID) ([]*visibility.TargetProfile, error) {
	if len(userIDs) == 0 {
		return []*visibility.TargetProfile{}, nil
	}
	ids := make([]string, len(userIDs))
	for i, u := range userIDs {
		ids[i] = u.String()
	}
	query := `SELECT ` + profileColumns + profileFrom + ` WHERE p.user_id = ANY($1::uuid[])`
	rows, err := s.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("find profiles by users: %w", err)
	}
	defer rows.Close()
	return scanProfiles(rows)
}

func (s *PostgresStore) ListApproved(ctx context.Context, limit, offset int) ([]*visibility.TargetProfile, error) {
	query := `SELECT ` + profileColumns + profileFrom + `
		WHERE p.approved = TRUE
		ORDER BY p.created_at DESC, p.id
		LIMIT $1 OFFSET $2`
	rows, err := s.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list approved profiles: %w", err)
	}
	defer rows.Close()
	return scanProfiles(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfiles(rows *sql.Rows) ([]*visibility.TargetProfile, error) {
	out := []*visibility.TargetProfile{}
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan profile: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate profiles: %w", err)
	}
	return out, nil
}

func scanProfile(row rowScanner) (*visibility.TargetProfile, error) {
	var (
		p              visibility.TargetProfile
		role           string
		experience     []byte
		payMin, payMax sql.NullInt64
	)
	err := row.Scan(
		&p.ID, &p.UserID, &p.Slug, &p.Approved,
		&p.FirstName, &p.LastName, &p.Email, &p.PhoneNumber, &p.Image,
		&role, &p.UserCreatedAt,
		&p.ResumeURL, pq.Array(&p.AdditionalPhotos), pq.Array(&p.MediaURLs),
		&p.CustomInitials, &p.IsAnonymous,
		&p.Bio, &p.Title, pq.Array(&p.Skills), &experience, pq.Array(&p.Certifications),
		&p.Location, &p.Availability,
		&p.ProfileViews, pq.Array(&p.WorkLocations), &p.OpenToRelocation, &p.YearsOfExperience,
		&payMin, &payMax, &p.PayType, &p.OpenToWork,
	)
	if err != nil {
		return nil, err
	}
	p.Role = id.Role(role)
	if len(experience) > 0 {
		if err := json.Unmarshal(experience, &p.Experience); err != nil {
			return nil, fmt.Errorf("decode experience: %w", err)
		}
	}
	if payMin.Valid {
		v := int(payMin.Int64)
		p.PayRangeMin = &v
	}
	if payMax.Valid {
		v := int(payMax.Int64)
		p.PayRangeMax = &v
	}
	return &p, nil
}
