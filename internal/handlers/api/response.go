package api

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"critvue/internal/db"
)

// jsonSuccess returns a 200 response with data wrapped in the standard envelope.
func jsonSuccess(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"data":   data,
	})
}

// jsonError returns an error response with the given HTTP status code.
func jsonError(c fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status": "error",
		"error":  message,
	})
}

// jsonStoreError maps data-layer sentinels onto the API error taxonomy:
// missing records are 404, illegal or raced transitions are 409,
// ownership violations are 403, everything else is the fallback 500.
func jsonStoreError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, db.ErrSlotNotFound),
		errors.Is(err, db.ErrRequestNotFound),
		errors.Is(err, db.ErrUserNotFound):
		return jsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, db.ErrInvalidState),
		errors.Is(err, db.ErrSlotUnavailable),
		errors.Is(err, db.ErrAlreadyClaimed):
		return jsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, db.ErrOwnRequest):
		return jsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, db.ErrNotSlotOwner),
		errors.Is(err, db.ErrNotRequestOwner):
		return jsonError(c, fiber.StatusForbidden, err.Error())
	default:
		return jsonError(c, fiber.StatusInternalServerError, fallback)
	}
}
