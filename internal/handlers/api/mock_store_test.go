package api

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"critvue/internal/db"
	"critvue/internal/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) ClaimSlot(ctx context.Context, requestID, reviewerID uuid.UUID) (*models.ReviewSlot, error) {
	args := m.Called(ctx, requestID, reviewerID)
	slot, _ := args.Get(0).(*models.ReviewSlot)
	return slot, args.Error(1)
}

func (m *MockStore) SubmitSlot(ctx context.Context, slotID, reviewerID uuid.UUID, reviewText string, rating int, window time.Duration) (*models.ReviewSlot, error) {
	args := m.Called(ctx, slotID, reviewerID, reviewText, rating, window)
	slot, _ := args.Get(0).(*models.ReviewSlot)
	return slot, args.Error(1)
}

func (m *MockStore) AbandonSlot(ctx context.Context, slotID, reviewerID uuid.UUID) (*models.ReviewSlot, error) {
	args := m.Called(ctx, slotID, reviewerID)
	slot, _ := args.Get(0).(*models.ReviewSlot)
	return slot, args.Error(1)
}

func (m *MockStore) AcceptSlot(ctx context.Context, slotID, creatorID uuid.UUID, opts db.AcceptOptions) (*models.ReviewSlot, error) {
	args := m.Called(ctx, slotID, creatorID, opts)
	slot, _ := args.Get(0).(*models.ReviewSlot)
	return slot, args.Error(1)
}

func (m *MockStore) RejectSlot(ctx context.Context, slotID, creatorID uuid.UUID, reason, notes string) (*models.ReviewSlot, error) {
	args := m.Called(ctx, slotID, creatorID, reason, notes)
	slot, _ := args.Get(0).(*models.ReviewSlot)
	return slot, args.Error(1)
}

func (m *MockStore) GetSlotByID(ctx context.Context, id uuid.UUID) (*models.ReviewSlot, error) {
	args := m.Called(ctx, id)
	slot, _ := args.Get(0).(*models.ReviewSlot)
	return slot, args.Error(1)
}

func (m *MockStore) ListSlotsByReviewer(ctx context.Context, reviewerID uuid.UUID, statuses []models.SlotStatus) ([]models.ReviewSlot, error) {
	args := m.Called(ctx, reviewerID, statuses)
	slots, _ := args.Get(0).([]models.ReviewSlot)
	return slots, args.Error(1)
}

func (m *MockStore) ListSlotsByRequest(ctx context.Context, requestID uuid.UUID) ([]models.ReviewSlot, error) {
	args := m.Called(ctx, requestID)
	slots, _ := args.Get(0).([]models.ReviewSlot)
	return slots, args.Error(1)
}

func (m *MockStore) ListPendingForCreator(ctx context.Context, creatorID uuid.UUID) ([]models.ReviewSlot, error) {
	args := m.Called(ctx, creatorID)
	slots, _ := args.Get(0).([]models.ReviewSlot)
	return slots, args.Error(1)
}

func (m *MockStore) CreateRequest(ctx context.Context, req *models.ReviewRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

func (m *MockStore) GetRequestByID(ctx context.Context, id uuid.UUID) (*models.ReviewRequest, error) {
	args := m.Called(ctx, id)
	req, _ := args.Get(0).(*models.ReviewRequest)
	return req, args.Error(1)
}

func (m *MockStore) ListOpenRequests(ctx context.Context, limit, offset int) ([]models.ReviewRequest, error) {
	args := m.Called(ctx, limit, offset)
	reqs, _ := args.Get(0).([]models.ReviewRequest)
	return reqs, args.Error(1)
}

func (m *MockStore) ListRequestsByCreator(ctx context.Context, creatorID uuid.UUID) ([]models.ReviewRequest, error) {
	args := m.Called(ctx, creatorID)
	reqs, _ := args.Get(0).([]models.ReviewRequest)
	return reqs, args.Error(1)
}

func (m *MockStore) CancelRequest(ctx context.Context, id, creatorID uuid.UUID) error {
	args := m.Called(ctx, id, creatorID)
	return args.Error(0)
}

func (m *MockStore) SearchReviewers(ctx context.Context, opts db.ReviewerSearchOpts) ([]models.User, int, error) {
	args := m.Called(ctx, opts)
	users, _ := args.Get(0).([]models.User)
	return users, args.Int(1), args.Error(2)
}

func (m *MockStore) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *MockStore) UpdateUserSpecialties(ctx context.Context, id uuid.UUID, specialties []string) error {
	args := m.Called(ctx, id, specialties)
	return args.Error(0)
}

func (m *MockStore) RefreshReviewerTier(ctx context.Context, reviewerID uuid.UUID) (string, error) {
	args := m.Called(ctx, reviewerID)
	return args.String(0), args.Error(1)
}
