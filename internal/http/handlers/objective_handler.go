package handlers

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/waitumusic/backend/internal/http/dto"
	"github.com/waitumusic/backend/internal/services"
	"go.uber.org/zap"
)

const confidentialNote = "These objectives are confidential and hidden from bookers"

type ObjectiveHandler struct {
	objectiveService *services.ObjectiveService
	log              *zap.Logger
}

func NewObjectiveHandler(objectiveService *services.ObjectiveService, log *zap.Logger) *ObjectiveHandler {
	return &ObjectiveHandler{objectiveService: objectiveService, log: log}
}

func (h *ObjectiveHandler) ListForBooking(c *fiber.Ctx) error {
	bookingID, err := strconv.ParseInt(c.Params("bookingId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid booking id"})
	}

	objectives, err := h.objectiveService.ListForBooking(c.Context(), bookingID, actorIdentity(c))
	if err != nil {
		h.logIfInternal("list objectives failed", err)
		return serviceError(c, err)
	}

	return c.JSON(dto.ObjectivesResponse{
		Success:    true,
		Objectives: objectives,
		Note:       confidentialNote,
	})
}

func (h *ObjectiveHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateObjectiveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	input := services.CreateObjectiveInput{
		BookingID:            req.BookingID,
		ObjectiveType:        req.ObjectiveType,
		Title:                req.Title,
		Description:          req.Description,
		Priority:             req.Priority,
		TargetDeadline:       req.TargetDeadline,
		AssignedTo:           req.AssignedTo,
		Tags:                 req.Tags,
		RelatedProfessionals: req.RelatedProfessionals,
	}

	objective, err := h.objectiveService.Create(c.Context(), input, actorIdentity(c))
	if err != nil {
		h.logIfInternal("create objective failed", err)
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.ObjectiveResponse{
		Success:   true,
		Objective: objective,
		Message:   "Internal objective created successfully",
	})
}

func (h *ObjectiveHandler) UpdateStatus(c *fiber.Ctx) error {
	objectiveID, err := uuid.Parse(c.Params("objectiveId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid objective id"})
	}

	var req dto.UpdateObjectiveStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "status is required"})
	}

	objective, err := h.objectiveService.UpdateStatus(c.Context(), objectiveID, req.Status, actorIdentity(c))
	if err != nil {
		h.logIfInternal("update objective status failed", err)
		return serviceError(c, err)
	}

	return c.JSON(dto.ObjectiveResponse{
		Success:   true,
		Objective: objective,
		Message:   "Objective status updated successfully",
	})
}

func (h *ObjectiveHandler) Templates(c *fiber.Ctx) error {
	return c.JSON(dto.TemplatesResponse{
		Success:   true,
		Templates: h.objectiveService.Templates(),
	})
}

func (h *ObjectiveHandler) AutoGenerate(c *fiber.Ctx) error {
	var req dto.AutoGenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}

	objectives, err := h.objectiveService.AutoGenerate(
		c.Context(), req.BookingID, req.ArtistUserID, req.BookingType, req.ArtistManagedStatus, actorIdentity(c))
	if err != nil {
		h.logIfInternal("auto-generate objectives failed", err)
		return serviceError(c, err)
	}

	return c.JSON(dto.ObjectivesResponse{
		Success:    true,
		Objectives: objectives,
		Message:    fmt.Sprintf("Generated %d automatic objectives for managed artist", len(objectives)),
	})
}

func (h *ObjectiveHandler) Report(c *fiber.Ctx) error {
	bookingID, err := strconv.ParseInt(c.Params("bookingId"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid booking id"})
	}

	report, err := h.objectiveService.Report(c.Context(), bookingID, actorIdentity(c))
	if err != nil {
		h.logIfInternal("objectives report failed", err)
		return serviceError(c, err)
	}

	return c.JSON(dto.ReportResponse{
		Success:   true,
		Report:    report,
		BookingID: bookingID,
	})
}

func (h *ObjectiveHandler) logIfInternal(msg string, err error) {
	if errorStatusIsInternal(err) {
		h.log.Error(msg, zap.Error(err))
	}
}
