package db

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"

	"critvue/internal/models"
)

func TestUpsertUser(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	user := &models.User{Sub: "upsert-sub", Email: "first@example.com", Name: "First"}
	if err := db.UpsertUser(ctx, user); err != nil {
		t.Fatalf("UpsertUser() error = %v", err)
	}
	if user.ID == uuid.Nil {
		t.Error("UpsertUser() did not set ID")
	}
	if user.Tier != models.TierNovice {
		t.Errorf("new user tier = %q, want %q", user.Tier, models.TierNovice)
	}

	// Tier survives a profile refresh on re-login.
	if err := db.UpdateUserTier(ctx, user.ID, models.TierExpert); err != nil {
		t.Fatalf("UpdateUserTier() error = %v", err)
	}
	again := &models.User{Sub: "upsert-sub", Email: "second@example.com", Name: "Second"}
	if err := db.UpsertUser(ctx, again); err != nil {
		t.Fatalf("UpsertUser() second call error = %v", err)
	}
	if again.ID != user.ID {
		t.Error("UpsertUser() created a new row for an existing sub")
	}
	if again.Tier != models.TierExpert {
		t.Errorf("tier after re-login = %q, want %q", again.Tier, models.TierExpert)
	}
}

func TestSearchReviewers(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	alice := createUser(t, db, "search-alice")
	bob := createUser(t, db, "search-bob")
	createUser(t, db, "search-carol")

	if err := db.UpdateUserTier(ctx, alice.ID, models.TierMaster); err != nil {
		t.Fatalf("UpdateUserTier() error = %v", err)
	}
	if err := db.UpdateUserSpecialties(ctx, bob.ID, []string{"photography", "ux"}); err != nil {
		t.Fatalf("UpdateUserSpecialties() error = %v", err)
	}

	byTier, total, err := db.SearchReviewers(ctx, ReviewerSearchOpts{Tier: models.TierMaster})
	if err != nil {
		t.Fatalf("SearchReviewers() error = %v", err)
	}
	if total != 1 || len(byTier) != 1 || byTier[0].ID != alice.ID {
		t.Errorf("tier filter = %d/%d results, want just alice", len(byTier), total)
	}

	bySpecialty, total, err := db.SearchReviewers(ctx, ReviewerSearchOpts{Specialty: "ux"})
	if err != nil {
		t.Fatalf("SearchReviewers() error = %v", err)
	}
	if total != 1 || len(bySpecialty) != 1 || bySpecialty[0].ID != bob.ID {
		t.Errorf("specialty filter = %d/%d results, want just bob", len(bySpecialty), total)
	}

	paged, total, err := db.SearchReviewers(ctx, ReviewerSearchOpts{
		Search: "search-", SortBy: "name", SortOrder: "asc", Limit: 2, Offset: 0,
	})
	if err != nil {
		t.Fatalf("SearchReviewers() error = %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(paged) != 2 || paged[0].ID != alice.ID {
		t.Errorf("page = %d results starting with %v, want 2 starting with alice", len(paged), paged)
	}
}

func TestTierForAcceptedCount(t *testing.T) {
	tests := []struct {
		accepted int64
		want     string
	}{
		{0, models.TierNovice},
		{4, models.TierNovice},
		{5, models.TierIntermediate},
		{19, models.TierIntermediate},
		{20, models.TierAdvanced},
		{50, models.TierExpert},
		{149, models.TierExpert},
		{150, models.TierMaster},
	}
	for _, tt := range tests {
		if got := tierForAcceptedCount(tt.accepted); got != tt.want {
			t.Errorf("tierForAcceptedCount(%d) = %q, want %q", tt.accepted, got, tt.want)
		}
	}
}

func TestRefreshReviewerTier(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	reviewer := createUser(t, db, "tier-reviewer")

	// No accepted reviews yet: stays novice.
	tier, err := db.RefreshReviewerTier(ctx, reviewer.ID)
	if err != nil {
		t.Fatalf("RefreshReviewerTier() error = %v", err)
	}
	if tier != models.TierNovice {
		t.Errorf("tier = %q, want %q", tier, models.TierNovice)
	}

	// Cross the first threshold with five accepted reviews.
	for i := 0; i < 5; i++ {
		creator := createUser(t, db, fmt.Sprintf("tier-creator-%d", i))
		req := createRequest(t, db, creator.ID, 1, nil)
		slot, err := db.ClaimSlot(ctx, req.ID, reviewer.ID)
		if err != nil {
			t.Fatalf("ClaimSlot() error = %v", err)
		}
		if _, err := db.SubmitSlot(ctx, slot.ID, reviewer.ID, "Thorough notes.", 4, time.Hour); err != nil {
			t.Fatalf("SubmitSlot() error = %v", err)
		}
		if _, err := db.AcceptSlot(ctx, slot.ID, creator.ID, AcceptOptions{}); err != nil {
			t.Fatalf("AcceptSlot() error = %v", err)
		}
	}

	tier, err = db.RefreshReviewerTier(ctx, reviewer.ID)
	if err != nil {
		t.Fatalf("RefreshReviewerTier() error = %v", err)
	}
	if tier != models.TierIntermediate {
		t.Errorf("tier after 5 accepts = %q, want %q", tier, models.TierIntermediate)
	}

	persisted, err := db.GetUserByID(ctx, reviewer.ID)
	if err != nil {
		t.Fatalf("GetUserByID() error = %v", err)
	}
	if persisted.Tier != models.TierIntermediate {
		t.Errorf("persisted tier = %q, want %q", persisted.Tier, models.TierIntermediate)
	}
}
