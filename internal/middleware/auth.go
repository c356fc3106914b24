package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/waitumusic/backend/internal/auth"
	"github.com/waitumusic/backend/internal/config"
	"github.com/waitumusic/backend/internal/http/dto"
	"github.com/waitumusic/backend/internal/rbac"
	"go.uber.org/zap"
)

const (
	CtxUserID   = "user_id"
	CtxUserRole = "user_role"
)

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "authentication required"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: "invalid or expired token"})
		}

		c.Locals(CtxUserID, claims.UserID)
		c.Locals(CtxUserRole, claims.Role)

		return c.Next()
	}
}

func GetUserID(c *fiber.Ctx) uuid.UUID {
	id, _ := c.Locals(CtxUserID).(uuid.UUID)
	return id
}

func GetUserRole(c *fiber.Ctx) string {
	role, _ := c.Locals(CtxUserRole).(string)
	return role
}

// RequirePermission gates a route group on the same rbac policy the services
// consult, so transport and service layers can never disagree.
func RequirePermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !rbac.HasPermission(GetUserRole(c), permission) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: "insufficient permissions"})
		}
		return c.Next()
	}
}
