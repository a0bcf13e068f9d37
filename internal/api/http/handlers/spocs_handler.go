package handlers

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/spoc-booking/internal/api/dto"
	"github.com/spec-kit/spoc-booking/internal/repository"
	"github.com/spec-kit/spoc-booking/internal/service"
	apperrors "github.com/spec-kit/spoc-booking/pkg/util"
)

// SpocsHandler serves the SPOC directory endpoints.
type SpocsHandler struct {
	service *service.SpocService
}

// NewSpocsHandler constructs handler.
func NewSpocsHandler(spocService *service.SpocService) *SpocsHandler {
	return &SpocsHandler{service: spocService}
}

// ListSpocs GET /api/v1/spocs.
func (h *SpocsHandler) ListSpocs(c *fiber.Ctx) error {
	filter := repository.SpocFilter{}
	if solutionType := c.Query("solution_type"); solutionType != "" {
		filter.SolutionType = &solutionType
	}
	if expertise := c.Query("expertise"); expertise != "" {
		filter.Expertise = &expertise
	}

	spocs, err := h.service.ListSpocs(c.Context(), filter)
	if err != nil {
		return err
	}
	items := make([]dto.SpocResponse, 0, len(spocs))
	for i := range spocs {
		items = append(items, dto.NewSpocResponse(&spocs[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// GetSpoc GET /api/v1/spocs/:id.
func (h *SpocsHandler) GetSpoc(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid spoc id", nil)
	}
	spoc, err := h.service.GetSpoc(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSpocResponse(spoc)})
}

// GetAvailability GET /api/v1/spocs/:id/availability.
func (h *SpocsHandler) GetAvailability(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return apperrors.NewValidationError("invalid spoc id", nil)
	}

	var from, to *time.Time
	if raw := c.Query("start_date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return apperrors.NewValidationError("invalid start_date", map[string]any{"start_date": raw})
		}
		from = &parsed
	}
	if raw := c.Query("end_date"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return apperrors.NewValidationError("invalid end_date", map[string]any{"end_date": raw})
		}
		to = &parsed
	}

	availability, err := h.service.GetAvailability(c.Context(), id, from, to)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewSpocAvailabilityResponse(availability)})
}
