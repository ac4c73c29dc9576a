package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"critvue/internal/models"
)

// insertPayment records a ledger entry inside a transition transaction.
// The (slot_id, kind) uniqueness plus ON CONFLICT DO NOTHING makes the
// write idempotent, so a slot can never be paid or refunded twice.
func insertPayment(ctx context.Context, tx pgx.Tx, slotID uuid.UUID, kind string, amount float64) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO payments (slot_id, kind, amount)
		VALUES ($1, $2, $3)
		ON CONFLICT (slot_id, kind) DO NOTHING
	`, slotID, kind, amount)
	return err
}

// GetPaymentsBySlot returns all ledger entries for a slot.
func (d *DB) GetPaymentsBySlot(ctx context.Context, slotID uuid.UUID) ([]models.Payment, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id, slot_id, kind, amount, created_at
		FROM payments
		WHERE slot_id = $1
		ORDER BY created_at
	`, slotID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.Payment
	for rows.Next() {
		var p models.Payment
		if err := rows.Scan(&p.ID, &p.SlotID, &p.Kind, &p.Amount, &p.CreatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

// CountSlotsByStatus returns slot counts grouped by status, for metrics.
func (d *DB) CountSlotsByStatus(ctx context.Context) (map[models.SlotStatus]int64, error) {
	rows, err := d.Pool.Query(ctx, `SELECT status, COUNT(*) FROM review_slots GROUP BY status`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[models.SlotStatus]int64)
	for rows.Next() {
		var status models.SlotStatus
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
