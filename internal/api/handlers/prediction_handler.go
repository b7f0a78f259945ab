package handlers

import (
	"errors"

	"crm-insight/internal/dto"
	"crm-insight/internal/schema"
	"crm-insight/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type PredictionHandler struct {
	predictionService *service.PredictionService
	logger            *zap.Logger
}

func NewPredictionHandler(predictionService *service.PredictionService, logger *zap.Logger) *PredictionHandler {
	return &PredictionHandler{
		predictionService: predictionService,
		logger:            logger,
	}
}

// Predict godoc
// @Summary Predict revenue for transaction records
// @Description Forward normalized records to the external regression model server.
// @Tags ai
// @Accept json
// @Produce json
// @Success 200 {object} dto.PredictionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 502 {object} map[string]string
// @Router /api/v1/ai/predict [post]
func (h *PredictionHandler) Predict(c *fiber.Ctx) error {
	var records dto.RecordList
	if err := records.UnmarshalJSON(c.Body()); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false,
			Errors:  []string{err.Error()},
		})
	}

	resp, err := h.predictionService.Predict(c.Context(), records)
	if err != nil {
		var validationErr *schema.ValidationError
		if errors.As(err, &validationErr) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Success: false,
				Errors:  validationErr.Messages(),
			})
		}
		h.logger.Error("Prediction failed", zap.Error(err))
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": "Failed to run prediction model",
		})
	}

	return c.JSON(resp)
}
