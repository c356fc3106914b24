package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/waitumusic/backend/internal/auth"
	"github.com/waitumusic/backend/internal/config"
	"github.com/waitumusic/backend/internal/http/dto"
	"github.com/waitumusic/backend/internal/models"
	"github.com/waitumusic/backend/internal/rbac"
	"github.com/waitumusic/backend/internal/repositories"
	"go.uber.org/zap"
)

type AuthHandler struct {
	userRepo *repositories.UserRepo
	cfg      *config.Config
	log      *zap.Logger
}

func NewAuthHandler(userRepo *repositories.UserRepo, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{userRepo: userRepo, cfg: cfg, log: log}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "valid email is required"})
	}
	if req.FullName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "full_name is required"})
	}

	role := req.Role
	if role == "" {
		role = rbac.RoleFan
	}
	// Staff and managed roles are granted by admins, never self-selected.
	if !rbac.CanSelfRegister(role) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "role cannot be self-assigned"})
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: err.Error()})
	}

	user := &models.User{
		Email:        req.Email,
		PasswordHash: hash,
		FullName:     req.FullName,
		Role:         role,
	}
	if err := h.userRepo.Create(c.Context(), user); err != nil {
		h.log.Debug("user create failed", zap.Error(err))
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: "email already registered"})
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID, user.Role, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("failed to generate jwt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AuthResponse{Success: true, Token: token, User: user})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request body"})
	}

	user, err := h.userRepo.GetByEmail(c.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid email or password"})
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user.ID, user.Role, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("failed to generate jwt", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
	}

	_ = h.userRepo.UpdateLastActive(c.Context(), user.ID)

	return c.JSON(dto.AuthResponse{Success: true, Token: token, User: user})
}
