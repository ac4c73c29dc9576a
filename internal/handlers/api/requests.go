package api

import (
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"critvue/internal/models"
	"critvue/internal/validation"
)

// RequestHandler handles review request CRUD via JSON API.
type RequestHandler struct {
	store Store
}

// NewRequestHandler creates a new API request handler.
func NewRequestHandler(store Store) *RequestHandler {
	return &RequestHandler{store: store}
}

// List returns open requests with at least one claimable slot.
func (h *RequestHandler) List(c fiber.Ctx) error {
	limit := fiber.Query(c, "limit", 50)
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	offset := fiber.Query(c, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	requests, err := h.store.ListOpenRequests(c.Context(), limit, offset)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch requests")
	}
	if requests == nil {
		requests = []models.ReviewRequest{}
	}

	return jsonSuccess(c, requests)
}

// Mine returns the current user's own requests.
func (h *RequestHandler) Mine(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	requests, err := h.store.ListRequestsByCreator(c.Context(), user.ID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch requests")
	}
	if requests == nil {
		requests = []models.ReviewRequest{}
	}

	return jsonSuccess(c, requests)
}

// Create posts a new review request with all slots open.
func (h *RequestHandler) Create(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var body struct {
		Title         string   `json:"title"`
		Description   string   `json:"description"`
		TotalSlots    int      `json:"total_slots"`
		PaymentAmount *float64 `json:"payment_amount"`
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if body.TotalSlots == 0 {
		body.TotalSlots = 1
	}

	if valid, msg := validation.ValidateRequest(body.Title, body.TotalSlots, body.PaymentAmount); !valid {
		return jsonError(c, fiber.StatusBadRequest, msg)
	}

	req := &models.ReviewRequest{
		CreatorID:     user.ID,
		Title:         body.Title,
		Description:   body.Description,
		TotalSlots:    body.TotalSlots,
		PaymentAmount: body.PaymentAmount,
	}
	if err := h.store.CreateRequest(c.Context(), req); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create request")
	}

	return jsonSuccess(c, req)
}

// Get returns a single request with its slots.
func (h *RequestHandler) Get(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	request, err := h.store.GetRequestByID(c.Context(), id)
	if err != nil {
		return jsonStoreError(c, err, "failed to fetch request")
	}

	slots, err := h.store.ListSlotsByRequest(c.Context(), id)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch request slots")
	}

	now := time.Now()
	out := make([]models.SlotAPIResponse, 0, len(slots))
	for _, slot := range slots {
		out = append(out, models.NewSlotAPIResponse(slot, now))
	}

	return jsonSuccess(c, models.RequestWithSlots{ReviewRequest: *request, Slots: out})
}

// Cancel cancels an open request that has no live slots.
func (h *RequestHandler) Cancel(c fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return jsonError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request id")
	}

	if err := h.store.CancelRequest(c.Context(), id, user.ID); err != nil {
		return jsonStoreError(c, err, "failed to cancel request")
	}

	return jsonSuccess(c, fiber.Map{"cancelled": true})
}
