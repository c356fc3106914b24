package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/waitumusic/backend/internal/http/dto"
	"github.com/waitumusic/backend/internal/middleware"
	"github.com/waitumusic/backend/internal/models"
	"github.com/waitumusic/backend/internal/rbac"
	"github.com/waitumusic/backend/internal/repositories"
	"go.uber.org/zap"
)

type UserHandler struct {
	userRepo  *repositories.UserRepo
	auditRepo *repositories.AuditRepo
	log       *zap.Logger
}

func NewUserHandler(userRepo *repositories.UserRepo, auditRepo *repositories.AuditRepo, log *zap.Logger) *UserHandler {
	return &UserHandler{userRepo: userRepo, auditRepo: auditRepo, log: log}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	user, err := h.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "user not found"})
	}
	return c.JSON(dto.SuccessResponse{Success: true, Data: user})
}

func (h *UserHandler) Ping(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if err := h.userRepo.UpdateLastActive(c.Context(), userID); err != nil {
		h.log.Error("failed to update last_active", zap.Error(err))
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}

// UpdateRole assigns a role to a user. This is the only path to staff and
// managed roles; the new role takes effect on the user's next login.
func (h *UserHandler) UpdateRole(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid user id"})
	}

	var req dto.UpdateUserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}
	if !rbac.IsKnownRole(req.Role) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "unknown role"})
	}

	if _, err := h.userRepo.GetByID(c.Context(), targetID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "user not found"})
	}
	if err := h.userRepo.UpdateRole(c.Context(), targetID, req.Role); err != nil {
		h.log.Error("failed to update role", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	actorID := middleware.GetUserID(c)
	_ = h.auditRepo.Log(c.Context(), models.AuditLog{
		ActorUserID: &actorID,
		ActorType:   "admin",
		Action:      "user_role_changed",
		EntityType:  "user",
		EntityID:    &targetID,
		Meta:        map[string]any{"role": req.Role},
	})

	return c.JSON(dto.SuccessResponse{Success: true})
}
