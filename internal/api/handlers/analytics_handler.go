package handlers

import (
	"crm-insight/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	analyticsService *service.AnalyticsService
	logger           *zap.Logger
}

func NewAnalyticsHandler(analyticsService *service.AnalyticsService, logger *zap.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// Segments godoc
// @Summary RFM customer segmentation
// @Description Compute recency/frequency/monetary segments over the current transaction set.
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.SegmentsResponse
// @Failure 500 {object} map[string]string
// @Router /api/v1/segments [get]
func (h *AnalyticsHandler) Segments(c *fiber.Ctx) error {
	resp, err := h.analyticsService.Segments(c.Context())
	if err != nil {
		h.logger.Error("Failed to compute segments", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute segments",
		})
	}

	return c.JSON(resp)
}

// Integrity godoc
// @Summary Transaction set integrity digest
// @Description Report the data artifact hash and the Merkle root of the persisted transaction set.
// @Tags analytics
// @Produce json
// @Success 200 {object} dto.IntegrityResponse
// @Failure 500 {object} map[string]string
// @Router /api/v1/integrity [get]
func (h *AnalyticsHandler) Integrity(c *fiber.Ctx) error {
	resp, err := h.analyticsService.Integrity(c.Context())
	if err != nil {
		h.logger.Error("Failed to compute integrity digest", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to compute integrity digest",
		})
	}

	return c.JSON(resp)
}
