package handlers

import (
	"errors"

	"crm-insight/internal/dto"
	"crm-insight/internal/ratelimit"
	"crm-insight/internal/schema"
	"crm-insight/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type UploadHandler struct {
	uploadService *service.UploadService
	columns       []schema.ColumnSpec
	logger        *zap.Logger
}

func NewUploadHandler(uploadService *service.UploadService, columns []schema.ColumnSpec, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		columns:       columns,
		logger:        logger,
	}
}

// Upload godoc
// @Summary Ingest a batch of transaction rows
// @Description Validate, sanitize and persist an uploaded batch. Rejections return the complete error list.
// @Tags uploads
// @Accept json
// @Produce json
// @Param request body dto.UploadRequest true "Batch payload"
// @Success 201 {object} dto.UploadResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/v1/uploads [post]
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	var req dto.UploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Success: false,
			Errors:  []string{err.Error()},
		})
	}

	resp, err := h.uploadService.Ingest(c.Context(), c.IP(), req)
	if err != nil {
		status, messages := uploadErrorStatus(err)
		if status == fiber.StatusInternalServerError {
			h.logger.Error("Upload failed", zap.Error(err))
		}
		return c.Status(status).JSON(dto.ErrorResponse{
			Success: false,
			Errors:  messages,
		})
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Template godoc
// @Summary Download a sample row in the expected schema
// @Tags uploads
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1/uploads/template [get]
func (h *UploadHandler) Template(c *fiber.Ctx) error {
	columns := make([]string, len(h.columns))
	for i, col := range h.columns {
		columns[i] = col.Key
	}

	return c.JSON(fiber.Map{
		"columns": columns,
		"sample": fiber.Map{
			"Invoice":      123456,
			"CustomerID":   7890,
			"CustomerName": "Ada Lovelace",
			"Amount":       1250.75,
			"Currency":     "USD",
			"InvoiceDate":  "2024-01-01",
			"Status":       "Paid",
		},
	})
}

// uploadErrorStatus maps the ingestion error taxonomy to HTTP status
// codes: structural and field errors are the caller's to fix, a rate
// limit is backpressure, a storage failure means the data was valid.
func uploadErrorStatus(err error) (int, []string) {
	var rateErr *ratelimit.Error
	var structuralErr *schema.StructuralError
	var validationErr *schema.ValidationError
	var storageErr *service.StorageError

	switch {
	case errors.As(err, &rateErr):
		return fiber.StatusTooManyRequests, []string{rateErr.Error()}
	case errors.As(err, &structuralErr):
		return fiber.StatusBadRequest, []string{structuralErr.Error()}
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, validationErr.Messages()
	case errors.As(err, &storageErr):
		return fiber.StatusBadGateway, []string{storageErr.Error()}
	default:
		return fiber.StatusInternalServerError, []string{"internal server error"}
	}
}
