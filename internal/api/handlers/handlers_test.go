package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"crm-insight/internal/api"
	"crm-insight/internal/api/handlers"
	"crm-insight/internal/models"
	"crm-insight/internal/ratelimit"
	"crm-insight/internal/schema"
	"crm-insight/internal/service"
	"crm-insight/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeStore struct {
	createErr error
	batches   []*models.UploadBatch
}

func (f *fakeStore) CreateBatch(_ context.Context, batch *models.UploadBatch) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.batches = append(f.batches, batch)
	return nil
}

type fakeSource struct {
	transactions []models.Transaction
}

func (f *fakeSource) ListAll(_ context.Context) ([]models.Transaction, error) {
	return f.transactions, nil
}

func newTestApp(store *fakeStore, source *fakeSource, rateLimit int) *fiber.App {
	log := zap.NewNop()
	columns := schema.DefaultColumns()
	validator := schema.NewValidator(columns, 5000, 255)
	limiter := ratelimit.NewLimiter(rateLimit, time.Minute)

	uploadService := service.NewUploadService(limiter, validator, store, log)
	analyticsService := service.NewAnalyticsService(source, "", log)
	predictionService := service.NewPredictionService(&config.ModelConfig{
		BaseURL: "http://localhost:0",
		Timeout: time.Second,
	}, log)

	return api.SetupRouter(
		handlers.NewUploadHandler(uploadService, columns, log),
		handlers.NewAnalyticsHandler(analyticsService, log),
		handlers.NewPredictionHandler(predictionService, log),
	)
}

func uploadBody(t *testing.T, date string) *bytes.Reader {
	t.Helper()
	payload := map[string]any{
		"columns": []string{"Invoice", "CustomerID", "CustomerName", "Amount", "Currency", "InvoiceDate", "Status"},
		"data": []map[string]any{{
			"Invoice":      123456,
			"CustomerID":   7890,
			"CustomerName": "Ada Lovelace",
			"Amount":       1250.75,
			"Currency":     "USD",
			"InvoiceDate":  date,
			"Status":       "Paid",
		}},
		"meta": map[string]any{"originalFilename": "invoices.csv"},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(body, out))
}

func TestUploadEndpoint_Success(t *testing.T) {
	store := &fakeStore{}
	app := newTestApp(store, &fakeSource{}, 10)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/uploads", uploadBody(t, "2024-01-01"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	var body struct {
		Success  bool             `json:"success"`
		UploadID string           `json:"uploadId"`
		RowCount int              `json:"rowCount"`
		Preview  []map[string]any `json:"preview"`
	}
	decodeBody(t, resp, &body)

	assert.True(t, body.Success)
	assert.NotEmpty(t, body.UploadID)
	assert.Equal(t, 1, body.RowCount)
	require.Len(t, body.Preview, 1)
	assert.Equal(t, float64(123456), body.Preview[0]["Invoice"])
	assert.Len(t, store.batches, 1)
}

func TestUploadEndpoint_ValidationErrors(t *testing.T) {
	app := newTestApp(&fakeStore{}, &fakeSource{}, 10)

	req, _ := http.NewRequest(http.MethodPost, "/api/v1/uploads", uploadBody(t, "2024-13-45"))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var body struct {
		Success bool     `json:"success"`
		Errors  []string `json:"errors"`
	}
	decodeBody(t, resp, &body)

	assert.False(t, body.Success)
	require.Len(t, body.Errors, 1)
	assert.Contains(t, body.Errors[0], "row 1")
	assert.Contains(t, body.Errors[0], "InvoiceDate")
}

func TestUploadEndpoint_RateLimited(t *testing.T) {
	app := newTestApp(&fakeStore{}, &fakeSource{}, 1)

	first, _ := http.NewRequest(http.MethodPost, "/api/v1/uploads", uploadBody(t, "2024-01-01"))
	first.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(first)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	second, _ := http.NewRequest(http.MethodPost, "/api/v1/uploads", uploadBody(t, "2024-01-01"))
	second.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(second)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
}

func TestTemplateEndpoint(t *testing.T) {
	app := newTestApp(&fakeStore{}, &fakeSource{}, 10)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/uploads/template", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Columns []string       `json:"columns"`
		Sample  map[string]any `json:"sample"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, []string{"Invoice", "CustomerID", "CustomerName", "Amount", "Currency", "InvoiceDate", "Status"}, body.Columns)
	assert.Equal(t, "Ada Lovelace", body.Sample["CustomerName"])
}

func TestSegmentsEndpoint(t *testing.T) {
	date := time.Now().UTC().AddDate(0, 0, -3)
	source := &fakeSource{transactions: []models.Transaction{
		{InvoiceDate: date, CustomerID: "7890", TotalAmount: 1250.75},
	}}
	app := newTestApp(&fakeStore{}, source, 10)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/segments", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Customers []map[string]any `json:"customers"`
		Summary   []map[string]any `json:"summary"`
	}
	decodeBody(t, resp, &body)
	require.Len(t, body.Customers, 1)
	assert.Equal(t, "7890", body.Customers[0]["CustomerID"])
	require.Len(t, body.Summary, 1)
	assert.NotEmpty(t, body.Summary[0]["suggested_offer"])
}

func TestIntegrityEndpoint(t *testing.T) {
	app := newTestApp(&fakeStore{}, &fakeSource{}, 10)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/integrity", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		FileHash   string `json:"file_hash"`
		MerkleRoot string `json:"merkle_root"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "", body.FileHash)
	assert.Equal(t, "", body.MerkleRoot)
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(&fakeStore{}, &fakeSource{}, 10)

	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
