package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"critvue/internal/models"
)

const requestColumns = `id, creator_id, title, description, total_slots, open_slots,
	payment_amount, status, created_at, updated_at`

func scanRequest(row pgx.Row) (*models.ReviewRequest, error) {
	var req models.ReviewRequest
	err := row.Scan(
		&req.ID,
		&req.CreatorID,
		&req.Title,
		&req.Description,
		&req.TotalSlots,
		&req.OpenSlots,
		&req.PaymentAmount,
		&req.Status,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

func scanRequests(rows pgx.Rows) ([]models.ReviewRequest, error) {
	defer rows.Close()

	var requests []models.ReviewRequest
	for rows.Next() {
		var req models.ReviewRequest
		if err := rows.Scan(
			&req.ID,
			&req.CreatorID,
			&req.Title,
			&req.Description,
			&req.TotalSlots,
			&req.OpenSlots,
			&req.PaymentAmount,
			&req.Status,
			&req.CreatedAt,
			&req.UpdatedAt,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

// CreateRequest creates a new review request with all slots open.
func (d *DB) CreateRequest(ctx context.Context, req *models.ReviewRequest) error {
	query := `
		INSERT INTO review_requests (creator_id, title, description, total_slots, open_slots, payment_amount)
		VALUES ($1, $2, $3, $4, $4, $5)
		RETURNING id, open_slots, status, created_at, updated_at
	`
	return d.Pool.QueryRow(ctx, query,
		req.CreatorID,
		req.Title,
		req.Description,
		req.TotalSlots,
		req.PaymentAmount,
	).Scan(&req.ID, &req.OpenSlots, &req.Status, &req.CreatedAt, &req.UpdatedAt)
}

// GetRequestByID fetches a single review request.
func (d *DB) GetRequestByID(ctx context.Context, id uuid.UUID) (*models.ReviewRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM review_requests WHERE id = $1`
	return scanRequest(d.Pool.QueryRow(ctx, query, id))
}

// ListOpenRequests returns requests with at least one open slot, newest first.
func (d *DB) ListOpenRequests(ctx context.Context, limit, offset int) ([]models.ReviewRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM review_requests
		WHERE status = 'open' AND open_slots > 0
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := d.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}

// ListRequestsByCreator returns all requests a creator owns, newest first.
func (d *DB) ListRequestsByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.ReviewRequest, error) {
	query := `
		SELECT ` + requestColumns + `
		FROM review_requests
		WHERE creator_id = $1
		ORDER BY created_at DESC
	`
	rows, err := d.Pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	return scanRequests(rows)
}

// CancelRequest cancels an open request that has no live slots.
func (d *DB) CancelRequest(ctx context.Context, id uuid.UUID, creatorID uuid.UUID) error {
	req, err := d.GetRequestByID(ctx, id)
	if err != nil {
		return err
	}
	if req.CreatorID != creatorID {
		return ErrNotRequestOwner
	}

	query := `
		UPDATE review_requests
		SET status = 'cancelled', open_slots = 0, updated_at = NOW()
		WHERE id = $1 AND status = 'open'
		  AND NOT EXISTS (
			SELECT 1 FROM review_slots
			WHERE review_request_id = $1 AND status IN ('claimed', 'submitted')
		  )
	`
	result, err := d.Pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrInvalidState
	}
	return nil
}
