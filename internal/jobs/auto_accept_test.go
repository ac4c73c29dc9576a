package jobs

import (
	"context"
	"testing"
	"time"

	"critvue/internal/models"
	"critvue/internal/testutil"
)

func TestSweeperAcceptsOverdueSlots(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	creator := testutil.CreateTestUser(t, database, "sweep-creator", "Creator")
	reviewer := testutil.CreateTestUser(t, database, "sweep-reviewer", "Reviewer")
	amount := 25.0
	req := testutil.CreateTestRequest(t, database, creator.ID, 2, &amount)

	overdue := testutil.SubmitTestSlot(t, database, req.ID, reviewer.ID, time.Hour)
	testutil.ForceDeadline(t, database, overdue.ID, time.Now().Add(-time.Minute))

	other := testutil.CreateTestUser(t, database, "sweep-reviewer-2", "Reviewer Two")
	fresh := testutil.SubmitTestSlot(t, database, req.ID, other.ID, 72*time.Hour)

	sweeper := NewAutoAcceptSweeper(database, nil, time.Minute, 100)
	sweeper.sweep(ctx)

	got, err := database.GetSlotByID(ctx, overdue.ID)
	if err != nil {
		t.Fatalf("GetSlotByID() error = %v", err)
	}
	if got.Status != models.SlotAccepted {
		t.Errorf("overdue slot status = %q, want %q", got.Status, models.SlotAccepted)
	}
	if got.AutoAcceptAt != nil {
		t.Errorf("accepted slot still carries a deadline: %v", got.AutoAcceptAt)
	}

	untouched, err := database.GetSlotByID(ctx, fresh.ID)
	if err != nil {
		t.Fatalf("GetSlotByID() error = %v", err)
	}
	if untouched.Status != models.SlotSubmitted {
		t.Errorf("fresh slot status = %q, want %q", untouched.Status, models.SlotSubmitted)
	}
}

func TestSweeperDrainsBacklogAcrossBatches(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	creator := testutil.CreateTestUser(t, database, "backlog-creator", "Creator")
	req := testutil.CreateTestRequest(t, database, creator.ID, 3, nil)

	for i, sub := range []string{"backlog-r1", "backlog-r2", "backlog-r3"} {
		reviewer := testutil.CreateTestUser(t, database, sub, "Reviewer")
		slot := testutil.SubmitTestSlot(t, database, req.ID, reviewer.ID, time.Hour)
		testutil.ForceDeadline(t, database, slot.ID, time.Now().Add(-time.Duration(i+1)*time.Minute))
	}

	// Batch size 1 forces three passes within a single sweep.
	sweeper := NewAutoAcceptSweeper(database, nil, time.Minute, 1)
	sweeper.sweep(ctx)

	counts, err := database.CountSlotsByStatus(ctx)
	if err != nil {
		t.Fatalf("CountSlotsByStatus() error = %v", err)
	}
	if counts[models.SlotAccepted] != 3 {
		t.Errorf("accepted count = %d, want 3", counts[models.SlotAccepted])
	}
	if counts[models.SlotSubmitted] != 0 {
		t.Errorf("submitted count = %d, want 0", counts[models.SlotSubmitted])
	}
}

func TestSweeperStopsOnContextCancel(t *testing.T) {
	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	sweeper := NewAutoAcceptSweeper(database, nil, 10*time.Millisecond, 100)

	done := make(chan struct{})
	go func() {
		sweeper.Start(ctx)
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}
