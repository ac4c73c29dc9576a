package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"critvue/internal/models"
)

const userColumns = `id, sub, email, name, picture, tier, specialties, created_at, updated_at`

func scanUser(row pgx.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Sub,
		&user.Email,
		&user.Name,
		&user.Picture,
		&user.Tier,
		&user.Specialties,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpsertUser creates or updates a user by OIDC subject. Profile fields from
// the identity provider are refreshed on every login; tier and specialties
// are preserved.
func (d *DB) UpsertUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (sub, email, name, picture)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (sub) DO UPDATE
		SET email = EXCLUDED.email, name = EXCLUDED.name,
			picture = EXCLUDED.picture, updated_at = NOW()
		RETURNING id, tier, specialties, created_at, updated_at
	`
	return d.Pool.QueryRow(ctx, query,
		user.Sub,
		user.Email,
		user.Name,
		user.Picture,
	).Scan(&user.ID, &user.Tier, &user.Specialties, &user.CreatedAt, &user.UpdatedAt)
}

// GetUserBySub looks up a user by OIDC subject identifier.
func (d *DB) GetUserBySub(ctx context.Context, sub string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE sub = $1`
	return scanUser(d.Pool.QueryRow(ctx, query, sub))
}

// GetUserByID looks up a user by ID.
func (d *DB) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(d.Pool.QueryRow(ctx, query, id))
}

// UpdateUserTier sets a user's reviewer tier.
func (d *DB) UpdateUserTier(ctx context.Context, id uuid.UUID, tier string) error {
	result, err := d.Pool.Exec(ctx,
		`UPDATE users SET tier = $1, updated_at = NOW() WHERE id = $2`, tier, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

// tierForAcceptedCount maps a reviewer's accepted-review count to their
// reputation bracket.
func tierForAcceptedCount(n int64) string {
	switch {
	case n >= 150:
		return models.TierMaster
	case n >= 50:
		return models.TierExpert
	case n >= 20:
		return models.TierAdvanced
	case n >= 5:
		return models.TierIntermediate
	default:
		return models.TierNovice
	}
}

// RefreshReviewerTier recomputes a reviewer's tier from their accepted
// review count. Called after every accept; tiers only move when a
// threshold is crossed. Returns the (possibly unchanged) tier.
func (d *DB) RefreshReviewerTier(ctx context.Context, reviewerID uuid.UUID) (string, error) {
	var accepted int64
	err := d.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM review_slots WHERE reviewer_id = $1 AND status = 'accepted'`,
		reviewerID).Scan(&accepted)
	if err != nil {
		return "", err
	}

	tier := tierForAcceptedCount(accepted)
	user, err := d.GetUserByID(ctx, reviewerID)
	if err != nil {
		return "", err
	}
	if user.Tier == tier {
		return tier, nil
	}
	return tier, d.UpdateUserTier(ctx, reviewerID, tier)
}

// UpdateUserSpecialties replaces a user's specialty list.
func (d *DB) UpdateUserSpecialties(ctx context.Context, id uuid.UUID, specialties []string) error {
	result, err := d.Pool.Exec(ctx,
		`UPDATE users SET specialties = $1, updated_at = NOW() WHERE id = $2`, specialties, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}
