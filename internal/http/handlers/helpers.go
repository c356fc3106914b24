package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/waitumusic/backend/internal/http/dto"
	"github.com/waitumusic/backend/internal/middleware"
	"github.com/waitumusic/backend/internal/services"
)

func actorIdentity(c *fiber.Ctx) services.Identity {
	return services.Identity{
		UserID: middleware.GetUserID(c),
		Role:   middleware.GetUserRole(c),
	}
}

// serviceError maps service-layer failures onto the response envelope:
// 403 policy denials, 400 validation, 404 unknown entities, 500 otherwise.
func serviceError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := "internal error"

	switch {
	case errors.Is(err, services.ErrAccessDenied):
		status = fiber.StatusForbidden
		msg = err.Error()
	case errors.Is(err, services.ErrValidation):
		status = fiber.StatusBadRequest
		msg = err.Error()
	case errors.Is(err, services.ErrNotFound):
		status = fiber.StatusNotFound
		msg = err.Error()
	}

	return c.Status(status).JSON(dto.ErrorResponse{Error: msg})
}

func errorStatusIsInternal(err error) bool {
	return !errors.Is(err, services.ErrAccessDenied) &&
		!errors.Is(err, services.ErrValidation) &&
		!errors.Is(err, services.ErrNotFound)
}
