package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/waitumusic/backend/internal/http/dto"
	"github.com/waitumusic/backend/internal/presskit"
	"github.com/waitumusic/backend/internal/services"
	"go.uber.org/zap"
)

type DevelopmentHandler struct {
	developmentService *services.DevelopmentService
	scanner            *presskit.Scanner
	log                *zap.Logger
}

func NewDevelopmentHandler(developmentService *services.DevelopmentService, scanner *presskit.Scanner, log *zap.Logger) *DevelopmentHandler {
	return &DevelopmentHandler{developmentService: developmentService, scanner: scanner, log: log}
}

func (h *DevelopmentHandler) ListAnalyses(c *fiber.Ctx) error {
	analyses, err := h.developmentService.ListAnalyses(c.Context(), actorIdentity(c))
	if err != nil {
		if errorStatusIsInternal(err) {
			h.log.Error("list analyses failed", zap.Error(err))
		}
		return serviceError(c, err)
	}
	return c.JSON(analyses)
}

func (h *DevelopmentHandler) GetPlan(c *fiber.Ctx) error {
	artistID, err := uuid.Parse(c.Params("artistId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid artist id"})
	}

	plan, err := h.developmentService.GetPlan(c.Context(), artistID, actorIdentity(c))
	if err != nil {
		if errorStatusIsInternal(err) {
			h.log.Error("get plan failed", zap.Error(err))
		}
		return serviceError(c, err)
	}
	return c.JSON(plan)
}

func (h *DevelopmentHandler) GeneratePlan(c *fiber.Ctx) error {
	var req dto.GeneratePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.ArtistID == uuid.Nil || req.Timeframe == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "artist_id and timeframe are required"})
	}

	plan, err := h.developmentService.GeneratePlan(c.Context(), req.ArtistID, req.Timeframe, actorIdentity(c))
	if err != nil {
		if errorStatusIsInternal(err) {
			h.log.Error("generate plan failed", zap.Error(err))
		}
		return serviceError(c, err)
	}

	return c.JSON(dto.PlanResponse{
		Success: true,
		Message: "Development plan generated successfully",
		Plan:    plan,
	})
}

func (h *DevelopmentHandler) UpdateMilestone(c *fiber.Ctx) error {
	milestoneID, err := uuid.Parse(c.Params("milestoneId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid milestone id"})
	}

	var req dto.UpdateMilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "status is required"})
	}

	milestone, err := h.developmentService.UpdateMilestone(c.Context(), milestoneID, req.Status, req.Notes, actorIdentity(c))
	if err != nil {
		if errorStatusIsInternal(err) {
			h.log.Error("update milestone failed", zap.Error(err))
		}
		return serviceError(c, err)
	}

	return c.JSON(dto.MilestoneResponse{
		Success:   true,
		Message:   "Milestone updated successfully",
		Milestone: milestone,
	})
}

func (h *DevelopmentHandler) Analytics(c *fiber.Ctx) error {
	analytics, err := h.developmentService.Analytics(c.Context(), actorIdentity(c))
	if err != nil {
		if errorStatusIsInternal(err) {
			h.log.Error("development analytics failed", zap.Error(err))
		}
		return serviceError(c, err)
	}
	return c.JSON(analytics)
}

func (h *DevelopmentHandler) PredictTrajectory(c *fiber.Ctx) error {
	var req dto.GeneratePlanRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.ArtistID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "artist_id is required"})
	}

	prediction, err := h.developmentService.PredictTrajectory(c.Context(), req.ArtistID, actorIdentity(c))
	if err != nil {
		if errorStatusIsInternal(err) {
			h.log.Error("predict trajectory failed", zap.Error(err))
		}
		return serviceError(c, err)
	}
	return c.JSON(prediction)
}

func (h *DevelopmentHandler) ScanPressKit(c *fiber.Ctx) error {
	var req dto.ScanPressKitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "url must be http or https"})
	}

	kit, err := h.scanner.FetchAndParse(c.Context(), req.URL)
	if err != nil {
		h.log.Warn("press kit scan failed", zap.String("url", req.URL), zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{Error: "failed to fetch press page"})
	}

	return c.JSON(dto.SuccessResponse{Success: true, Data: kit})
}
