package jobs

import (
	"context"
	"log/slog"
	"time"

	"critvue/internal/db"
	"critvue/internal/email"
	"critvue/internal/lifecycle"
	"critvue/internal/metrics"
)

// AutoAcceptSweeper enforces the auto-accept deadline on submitted reviews.
// The sweep is the only place deadlines take effect; API reads never mutate
// slot state.
type AutoAcceptSweeper struct {
	db        *db.DB
	notifier  *email.Notifier
	interval  time.Duration
	batchSize int
}

// NewAutoAcceptSweeper creates a new deadline sweeper.
func NewAutoAcceptSweeper(database *db.DB, notifier *email.Notifier, interval time.Duration, batchSize int) *AutoAcceptSweeper {
	return &AutoAcceptSweeper{
		db:        database,
		notifier:  notifier,
		interval:  interval,
		batchSize: batchSize,
	}
}

// Start begins the background sweep loop. Blocks until ctx is cancelled.
func (s *AutoAcceptSweeper) Start(ctx context.Context) {
	slog.Info("auto-accept sweeper started", "interval", s.interval, "batch_size", s.batchSize)

	// Run immediately on start to catch deadlines missed during downtime.
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("auto-accept sweeper stopped")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// sweep accepts every submitted slot whose deadline has passed. Batches
// repeat until a short batch, so a backlog drains in one cycle.
func (s *AutoAcceptSweeper) sweep(ctx context.Context) {
	total := 0
	for {
		accepted, err := s.db.AutoAcceptDueSlots(ctx, s.batchSize)
		if err != nil {
			slog.Error("auto-accept sweep failed", "error", err, "accepted_so_far", total+len(accepted))
			break
		}
		total += len(accepted)

		for _, slot := range accepted {
			metrics.RecordTransition(string(slot.Status), string(lifecycle.TriggerAutoAccept))
			if _, err := s.db.RefreshReviewerTier(ctx, slot.ReviewerID); err != nil {
				slog.Error("failed to refresh reviewer tier", "reviewer_id", slot.ReviewerID, "error", err)
			}
			if s.notifier != nil {
				go s.notifier.NotifyReviewAccepted(context.Background(), &slot, true)
			}
		}

		if len(accepted) < s.batchSize {
			break
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}

	metrics.RecordSweep(total)
	if total > 0 {
		slog.Info("auto-accept sweep complete", "accepted", total)
	}
}
