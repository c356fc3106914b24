package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/waitumusic/backend/internal/http/dto"
	"github.com/waitumusic/backend/internal/models"
	"github.com/waitumusic/backend/internal/repositories"
	"go.uber.org/zap"
)

type ArtistHandler struct {
	artistRepo *repositories.ArtistRepo
	log        *zap.Logger
}

func NewArtistHandler(artistRepo *repositories.ArtistRepo, log *zap.Logger) *ArtistHandler {
	return &ArtistHandler{artistRepo: artistRepo, log: log}
}

func (h *ArtistHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateArtistRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid request"})
	}
	if req.StageName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "stage_name is required"})
	}

	artist := &models.ArtistProfile{
		UserID:       req.UserID,
		StageName:    req.StageName,
		Genre:        req.Genre,
		Managed:      req.Managed,
		PressPageURL: req.PressPageURL,
	}
	if err := h.artistRepo.Create(c.Context(), artist); err != nil {
		h.log.Error("create artist failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{Success: true, Data: artist})
}

func (h *ArtistHandler) List(c *fiber.Ctx) error {
	filter := repositories.ArtistFilter{Limit: 50}

	if v := c.Query("managed"); v != "" {
		managed := v == "true"
		filter.Managed = &managed
	}
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := c.Query("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	artists, err := h.artistRepo.List(c.Context(), filter)
	if err != nil {
		h.log.Error("list artists failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal error"})
	}

	return c.JSON(dto.SuccessResponse{Success: true, Data: artists})
}

func (h *ArtistHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: "invalid artist id"})
	}

	artist, err := h.artistRepo.GetByID(c.Context(), id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: "artist not found"})
	}

	return c.JSON(dto.SuccessResponse{Success: true, Data: artist})
}
