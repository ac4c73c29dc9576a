package api

import (
	"context"
	"time"

	"github.com/google/uuid"

	"critvue/internal/db"
	"critvue/internal/models"
)

// Store is the slice of the data layer the API handlers consume.
// *db.DB satisfies it; tests substitute a mock.
type Store interface {
	// Slot lifecycle
	ClaimSlot(ctx context.Context, requestID, reviewerID uuid.UUID) (*models.ReviewSlot, error)
	SubmitSlot(ctx context.Context, slotID, reviewerID uuid.UUID, reviewText string, rating int, window time.Duration) (*models.ReviewSlot, error)
	AbandonSlot(ctx context.Context, slotID, reviewerID uuid.UUID) (*models.ReviewSlot, error)
	AcceptSlot(ctx context.Context, slotID, creatorID uuid.UUID, opts db.AcceptOptions) (*models.ReviewSlot, error)
	RejectSlot(ctx context.Context, slotID, creatorID uuid.UUID, reason, notes string) (*models.ReviewSlot, error)

	// Slot reads
	GetSlotByID(ctx context.Context, id uuid.UUID) (*models.ReviewSlot, error)
	ListSlotsByReviewer(ctx context.Context, reviewerID uuid.UUID, statuses []models.SlotStatus) ([]models.ReviewSlot, error)
	ListSlotsByRequest(ctx context.Context, requestID uuid.UUID) ([]models.ReviewSlot, error)
	ListPendingForCreator(ctx context.Context, creatorID uuid.UUID) ([]models.ReviewSlot, error)

	// Requests
	CreateRequest(ctx context.Context, req *models.ReviewRequest) error
	GetRequestByID(ctx context.Context, id uuid.UUID) (*models.ReviewRequest, error)
	ListOpenRequests(ctx context.Context, limit, offset int) ([]models.ReviewRequest, error)
	ListRequestsByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.ReviewRequest, error)
	CancelRequest(ctx context.Context, id, creatorID uuid.UUID) error

	// Directory and profiles
	SearchReviewers(ctx context.Context, opts db.ReviewerSearchOpts) ([]models.User, int, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateUserSpecialties(ctx context.Context, id uuid.UUID, specialties []string) error
	RefreshReviewerTier(ctx context.Context, reviewerID uuid.UUID) (string, error)
}
