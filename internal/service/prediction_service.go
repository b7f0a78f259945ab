package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"crm-insight/internal/dto"
	"crm-insight/internal/schema"
	"crm-insight/pkg/config"

	"go.uber.org/zap"
)

// predictionRequiredColumns is the feature schema the external model
// server expects. The model itself is an opaque collaborator; this
// service only normalizes records and forwards them.
var predictionRequiredColumns = []string{
	"Invoice",
	"StockCode",
	"Description",
	"Quantity",
	"InvoiceDate",
	"Price",
	"Customer ID",
	"Country",
}

var predictionFieldAliases = map[string]string{
	"customer_id": "Customer ID",
	"CustomerID":  "Customer ID",
	"invoice_no":  "Invoice",
	"InvoiceNo":   "Invoice",
	"InvoiceNo.":  "Invoice",
	"invoice":     "Invoice",
	"UnitPrice":   "Price",
	"unit_price":  "Price",
}

var predictionDateAliases = []string{"invoice_date", "Invoice Timestamp", "InvoiceDateTime"}

type PredictionService struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

func NewPredictionService(cfg *config.ModelConfig, logger *zap.Logger) *PredictionService {
	return &PredictionService{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		logger:  logger,
	}
}

type modelPrediction struct {
	Invoice          any     `json:"Invoice"`
	PredictedRevenue float64 `json:"predicted_revenue"`
}

type modelResponse struct {
	Predictions []modelPrediction `json:"predictions"`
	Error       string            `json:"error"`
}

// Predict normalizes the records and forwards them to the model server.
func (s *PredictionService) Predict(ctx context.Context, records dto.RecordList) (*dto.PredictionResponse, error) {
	normalized, err := normalizePredictionRecords(records)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(map[string]any{"records": normalized})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"/predict", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model server unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read model response: %w", err)
	}

	var decoded modelResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return nil, fmt.Errorf("invalid model response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		if decoded.Error != "" {
			return nil, fmt.Errorf("model server rejected request: %s", decoded.Error)
		}
		return nil, fmt.Errorf("model server returned status %d", resp.StatusCode)
	}

	result := &dto.PredictionResponse{
		Predictions: make([]dto.Prediction, 0, len(decoded.Predictions)),
	}
	var total float64
	for i, p := range decoded.Predictions {
		prediction := dto.Prediction{
			Invoice:          p.Invoice,
			PredictedRevenue: p.PredictedRevenue,
		}
		if i < len(normalized) {
			prediction.CustomerID = normalized[i]["Customer ID"]
		}
		result.Predictions = append(result.Predictions, prediction)
		total += p.PredictedRevenue
	}
	result.Metadata = dto.PredictionMetadata{
		Count:        len(result.Predictions),
		TotalRevenue: total,
	}

	s.logger.Info("Prediction completed",
		zap.Int("records", len(result.Predictions)),
		zap.Float64("total_revenue", total),
	)
	return result, nil
}

// normalizePredictionRecords applies the historical field aliases each
// client variant uses, then checks the required feature columns. Every
// missing field across every record is reported together.
func normalizePredictionRecords(records dto.RecordList) ([]map[string]any, error) {
	normalized := make([]map[string]any, 0, len(records))
	var fieldErrs []schema.FieldError

	for i, record := range records {
		clean := make(map[string]any, len(record))
		for k, v := range record {
			clean[k] = v
		}

		for alias, canonical := range predictionFieldAliases {
			if value, ok := clean[alias]; ok {
				if _, exists := clean[canonical]; !exists {
					clean[canonical] = value
				}
			}
		}
		if _, ok := clean["InvoiceDate"]; !ok {
			for _, alias := range predictionDateAliases {
				if value, ok := clean[alias]; ok && value != nil {
					clean["InvoiceDate"] = value
					break
				}
			}
		}
		if _, ok := clean["Description"]; !ok {
			clean["Description"] = ""
		}

		for _, col := range predictionRequiredColumns {
			if _, ok := clean[col]; !ok {
				fieldErrs = append(fieldErrs, schema.FieldError{Row: i + 1, Column: col, Detail: "is required for prediction"})
			}
		}
		normalized = append(normalized, clean)
	}

	if len(fieldErrs) > 0 {
		return nil, &schema.ValidationError{Fields: fieldErrs}
	}
	return normalized, nil
}
