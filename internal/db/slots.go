package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"critvue/internal/lifecycle"
	"critvue/internal/models"
)

// slotColumns is the standard column list for slot queries.
const slotColumns = `id, review_request_id, reviewer_id, status, review_text, rating,
	payment_amount, auto_accept_at, rejection_reason, rejection_notes,
	quality_rating, professionalism_rating, helpfulness_rating, is_anonymous,
	claimed_at, reviewed_at, created_at, updated_at`

func scanSlotFields(row pgx.Row, slot *models.ReviewSlot) error {
	return row.Scan(
		&slot.ID,
		&slot.ReviewRequestID,
		&slot.ReviewerID,
		&slot.Status,
		&slot.ReviewText,
		&slot.Rating,
		&slot.PaymentAmount,
		&slot.AutoAcceptAt,
		&slot.RejectionReason,
		&slot.RejectionNotes,
		&slot.QualityRating,
		&slot.ProfessionalismRating,
		&slot.HelpfulnessRating,
		&slot.IsAnonymous,
		&slot.ClaimedAt,
		&slot.ReviewedAt,
		&slot.CreatedAt,
		&slot.UpdatedAt,
	)
}

// scanSlot scans a row into a ReviewSlot struct.
func scanSlot(row pgx.Row) (*models.ReviewSlot, error) {
	var slot models.ReviewSlot
	err := scanSlotFields(row, &slot)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// scanSlots scans multiple rows into a slice of ReviewSlots.
func scanSlots(rows pgx.Rows) ([]models.ReviewSlot, error) {
	defer rows.Close()

	var slots []models.ReviewSlot
	for rows.Next() {
		var slot models.ReviewSlot
		if err := scanSlotFields(rows, &slot); err != nil {
			return nil, err
		}
		slots = append(slots, slot)
	}

	return slots, rows.Err()
}

// GetSlotByID fetches a single slot.
func (d *DB) GetSlotByID(ctx context.Context, id uuid.UUID) (*models.ReviewSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM review_slots WHERE id = $1`
	return scanSlot(d.Pool.QueryRow(ctx, query, id))
}

// ListSlotsByReviewer returns a reviewer's slots, optionally filtered by
// status, newest claim first.
func (d *DB) ListSlotsByReviewer(ctx context.Context, reviewerID uuid.UUID, statuses []models.SlotStatus) ([]models.ReviewSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM review_slots WHERE reviewer_id = $1`
	args := []any{reviewerID}
	if len(statuses) > 0 {
		query += ` AND status = ANY($2)`
		args = append(args, statuses)
	}
	query += ` ORDER BY claimed_at DESC`

	rows, err := d.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	return scanSlots(rows)
}

// ListSlotsByRequest returns all slots on a request, oldest claim first.
func (d *DB) ListSlotsByRequest(ctx context.Context, requestID uuid.UUID) ([]models.ReviewSlot, error) {
	query := `SELECT ` + slotColumns + ` FROM review_slots WHERE review_request_id = $1 ORDER BY claimed_at`
	rows, err := d.Pool.Query(ctx, query, requestID)
	if err != nil {
		return nil, err
	}
	return scanSlots(rows)
}

// ListPendingForCreator returns submitted slots awaiting the creator's
// decision across all of their requests, oldest deadline first.
func (d *DB) ListPendingForCreator(ctx context.Context, creatorID uuid.UUID) ([]models.ReviewSlot, error) {
	query := `
		SELECT ` + qualifiedSlotColumns("s") + `
		FROM review_slots s
		JOIN review_requests r ON r.id = s.review_request_id
		WHERE r.creator_id = $1 AND s.status = 'submitted'
		ORDER BY s.auto_accept_at
	`
	rows, err := d.Pool.Query(ctx, query, creatorID)
	if err != nil {
		return nil, err
	}
	return scanSlots(rows)
}

// ClaimSlot claims an open slot on a request for a reviewer. The open-slot
// decrement is guarded so two concurrent claims cannot oversubscribe.
func (d *DB) ClaimSlot(ctx context.Context, requestID, reviewerID uuid.UUID) (*models.ReviewSlot, error) {
	req, err := d.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.CreatorID == reviewerID {
		return nil, ErrOwnRequest
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE review_requests
		SET open_slots = open_slots - 1,
			status = CASE WHEN open_slots - 1 = 0 THEN 'in_review' ELSE status END,
			updated_at = NOW()
		WHERE id = $1 AND status = 'open' AND open_slots > 0
	`, requestID)
	if err != nil {
		return nil, err
	}
	if result.RowsAffected() == 0 {
		return nil, ErrSlotUnavailable
	}

	var slot models.ReviewSlot
	err = scanSlotFields(tx.QueryRow(ctx, `
		INSERT INTO review_slots (review_request_id, reviewer_id, payment_amount)
		VALUES ($1, $2, $3)
		RETURNING `+slotColumns, requestID, reviewerID, req.PaymentAmount), &slot)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrAlreadyClaimed
		}
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &slot, nil
}

// SubmitSlot moves a claimed slot to submitted and starts the auto-accept
// clock. Only the claiming reviewer may submit.
func (d *DB) SubmitSlot(ctx context.Context, slotID, reviewerID uuid.UUID, reviewText string, rating int, window time.Duration) (*models.ReviewSlot, error) {
	autoAcceptAt := time.Now().Add(window)

	slot, err := scanSlot(d.Pool.QueryRow(ctx, `
		UPDATE review_slots
		SET status = $1, review_text = $2, rating = $3, auto_accept_at = $4,
			reviewed_at = NOW(), updated_at = NOW()
		WHERE id = $5 AND status = $6 AND reviewer_id = $7
		RETURNING `+slotColumns,
		models.SlotSubmitted, reviewText, rating, autoAcceptAt,
		slotID, models.SlotClaimed, reviewerID))
	if errors.Is(err, ErrSlotNotFound) {
		return nil, d.diagnoseSlotFailure(ctx, slotID, reviewerID, models.SlotSubmitted)
	}
	return slot, err
}

// AbandonSlot releases a claimed slot back to the request. Only legal
// before submission; a submitted slot must be accepted or rejected.
func (d *DB) AbandonSlot(ctx context.Context, slotID, reviewerID uuid.UUID) (*models.ReviewSlot, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	slot, err := scanSlot(tx.QueryRow(ctx, `
		UPDATE review_slots
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3 AND reviewer_id = $4
		RETURNING `+slotColumns,
		models.SlotAbandoned, slotID, models.SlotClaimed, reviewerID))
	if errors.Is(err, ErrSlotNotFound) {
		return nil, d.diagnoseSlotFailure(ctx, slotID, reviewerID, models.SlotAbandoned)
	}
	if err != nil {
		return nil, err
	}

	if err := reopenRequestSlot(ctx, tx, slot.ReviewRequestID); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return slot, nil
}

// AcceptOptions carries the creator's optional ratings of the reviewer.
type AcceptOptions struct {
	QualityRating         *int
	ProfessionalismRating *int
	HelpfulnessRating     *int
	IsAnonymous           bool
}

// AcceptSlot moves a submitted slot to accepted and releases payment. Only
// the request owner may accept. The status guard makes the transition
// first-commit-wins against a concurrent reject or auto-accept.
func (d *DB) AcceptSlot(ctx context.Context, slotID, creatorID uuid.UUID, opts AcceptOptions) (*models.ReviewSlot, error) {
	if err := d.checkRequestOwner(ctx, slotID, creatorID); err != nil {
		return nil, err
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	slot, err := acceptSlotTx(ctx, tx, slotID, opts)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return slot, nil
}

// RejectSlot moves a submitted slot to rejected, reopens the slot on the
// request, and refunds any payment to the creator.
func (d *DB) RejectSlot(ctx context.Context, slotID, creatorID uuid.UUID, reason, notes string) (*models.ReviewSlot, error) {
	if err := d.checkRequestOwner(ctx, slotID, creatorID); err != nil {
		return nil, err
	}

	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var notesParam *string
	if notes != "" {
		notesParam = &notes
	}

	slot, err := scanSlot(tx.QueryRow(ctx, `
		UPDATE review_slots
		SET status = $1, rejection_reason = $2, rejection_notes = $3,
			auto_accept_at = NULL, updated_at = NOW()
		WHERE id = $4 AND status = $5
		RETURNING `+slotColumns,
		models.SlotRejected, reason, notesParam, slotID, models.SlotSubmitted))
	if errors.Is(err, ErrSlotNotFound) {
		// The slot exists (ownership check passed), so the guard lost:
		// another terminal transition already committed.
		return nil, ErrInvalidState
	}
	if err != nil {
		return nil, err
	}

	if err := reopenRequestSlot(ctx, tx, slot.ReviewRequestID); err != nil {
		return nil, err
	}

	if slot.PaymentAmount != nil {
		if err := insertPayment(ctx, tx, slot.ID, models.PaymentRefund, *slot.PaymentAmount); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return slot, nil
}

// AutoAcceptDueSlots transitions every submitted slot whose deadline has
// passed to accepted, with the same side effects as a manual accept.
// Each slot commits independently; a slot that loses the race to a manual
// decision is skipped. Returns the slots that were auto-accepted.
func (d *DB) AutoAcceptDueSlots(ctx context.Context, limit int) ([]models.ReviewSlot, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id FROM review_slots
		WHERE status = $1 AND auto_accept_at <= NOW()
		ORDER BY auto_accept_at
		LIMIT $2
	`, models.SlotSubmitted, limit)
	if err != nil {
		return nil, err
	}

	var due []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		due = append(due, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var accepted []models.ReviewSlot
	for _, id := range due {
		slot, err := d.autoAcceptOne(ctx, id)
		if err != nil {
			if errors.Is(err, ErrInvalidState) {
				continue // manual accept/reject won the race
			}
			return accepted, fmt.Errorf("auto-accept slot %s: %w", id, err)
		}
		accepted = append(accepted, *slot)
	}
	return accepted, nil
}

func (d *DB) autoAcceptOne(ctx context.Context, slotID uuid.UUID) (*models.ReviewSlot, error) {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	slot, err := acceptSlotTx(ctx, tx, slotID, AcceptOptions{})
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return slot, nil
}

// acceptSlotTx performs the shared accepted-transition work: the status-guarded
// update, the payment release, and request completion. Used by both manual
// accept and the auto-accept sweep so side effects cannot diverge.
func acceptSlotTx(ctx context.Context, tx pgx.Tx, slotID uuid.UUID, opts AcceptOptions) (*models.ReviewSlot, error) {
	slot, err := scanSlot(tx.QueryRow(ctx, `
		UPDATE review_slots
		SET status = $1, quality_rating = $2, professionalism_rating = $3,
			helpfulness_rating = $4, is_anonymous = $5,
			auto_accept_at = NULL, updated_at = NOW()
		WHERE id = $6 AND status = $7
		RETURNING `+slotColumns,
		models.SlotAccepted, opts.QualityRating, opts.ProfessionalismRating,
		opts.HelpfulnessRating, opts.IsAnonymous, slotID, models.SlotSubmitted))
	if errors.Is(err, ErrSlotNotFound) {
		return nil, ErrInvalidState
	}
	if err != nil {
		return nil, err
	}

	if slot.PaymentAmount != nil {
		if err := insertPayment(ctx, tx, slot.ID, models.PaymentRelease, *slot.PaymentAmount); err != nil {
			return nil, err
		}
	}

	if err := maybeCompleteRequest(ctx, tx, slot.ReviewRequestID); err != nil {
		return nil, err
	}

	return slot, nil
}

// reopenRequestSlot returns one slot to the request's open pool.
func reopenRequestSlot(ctx context.Context, tx pgx.Tx, requestID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		UPDATE review_requests
		SET open_slots = open_slots + 1,
			status = CASE WHEN status = 'in_review' THEN 'open' ELSE status END,
			updated_at = NOW()
		WHERE id = $1
	`, requestID)
	return err
}

// maybeCompleteRequest marks a request completed once no slots are open and
// none are still in flight.
func maybeCompleteRequest(ctx context.Context, tx pgx.Tx, requestID uuid.UUID) error {
	_, err := tx.Exec(ctx, `
		UPDATE review_requests
		SET status = 'completed', updated_at = NOW()
		WHERE id = $1 AND open_slots = 0 AND status = 'in_review'
		  AND NOT EXISTS (
			SELECT 1 FROM review_slots
			WHERE review_request_id = $1 AND status IN ('claimed', 'submitted')
		  )
	`, requestID)
	return err
}

// checkRequestOwner verifies the acting user owns the request behind a slot.
func (d *DB) checkRequestOwner(ctx context.Context, slotID, userID uuid.UUID) error {
	var creatorID uuid.UUID
	err := d.Pool.QueryRow(ctx, `
		SELECT r.creator_id
		FROM review_slots s
		JOIN review_requests r ON r.id = s.review_request_id
		WHERE s.id = $1
	`, slotID).Scan(&creatorID)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrSlotNotFound
	}
	if err != nil {
		return err
	}
	if creatorID != userID {
		return ErrNotRequestOwner
	}
	return nil
}

// diagnoseSlotFailure turns a zero-row guarded update into the precise
// sentinel: missing slot, wrong owner, or an illegal transition.
func (d *DB) diagnoseSlotFailure(ctx context.Context, slotID, reviewerID uuid.UUID, target models.SlotStatus) error {
	slot, err := d.GetSlotByID(ctx, slotID)
	if err != nil {
		return err
	}
	if slot.ReviewerID != reviewerID {
		return ErrNotSlotOwner
	}
	if !lifecycle.CanTransition(slot.Status, target) {
		return ErrInvalidState
	}
	// Edge exists and owner matches; the row changed between the update
	// and this read. Treat it as a lost race.
	return ErrInvalidState
}

// qualifiedSlotColumns prefixes the slot column list with a table alias for
// joined queries.
func qualifiedSlotColumns(alias string) string {
	return alias + `.id, ` + alias + `.review_request_id, ` + alias + `.reviewer_id, ` +
		alias + `.status, ` + alias + `.review_text, ` + alias + `.rating, ` +
		alias + `.payment_amount, ` + alias + `.auto_accept_at, ` + alias + `.rejection_reason, ` +
		alias + `.rejection_notes, ` + alias + `.quality_rating, ` + alias + `.professionalism_rating, ` +
		alias + `.helpfulness_rating, ` + alias + `.is_anonymous, ` + alias + `.claimed_at, ` +
		alias + `.reviewed_at, ` + alias + `.created_at, ` + alias + `.updated_at`
}
