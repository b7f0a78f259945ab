package main

import (
	"context"
	"log"
	"time"

	"crm-insight/internal/models"
	"crm-insight/internal/repository"
	"crm-insight/internal/schema"
	"crm-insight/pkg/config"
	"crm-insight/pkg/logger"
	"crm-insight/pkg/postgres"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Seeds one sample upload batch so the segmentation and integrity
// endpoints have data to work with on a fresh database.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Logger.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()
	appLogger := logger.Get()

	ctx := context.Background()
	db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	uploadRepo := repository.NewUploadRepository(db, appLogger)

	appLogger.Info("Seeding sample upload batch...")

	columns := schema.DefaultColumns()
	validator := schema.NewValidator(columns, cfg.Upload.MaxRows, cfg.Upload.MaxFieldLen)

	headers := make([]string, len(columns))
	for i, col := range columns {
		headers[i] = col.Key
	}

	now := time.Now().UTC()
	daysAgo := func(d int) string {
		return now.AddDate(0, 0, -d).Format("2006-01-02")
	}

	rawRows := []map[string]any{
		{"Invoice": 123456, "CustomerID": 7890, "CustomerName": "Ada Lovelace", "Amount": 1250.75, "Currency": "USD", "InvoiceDate": daysAgo(5), "Status": "Paid"},
		{"Invoice": 123457, "CustomerID": 7891, "CustomerName": "Alan Turing", "Amount": 890.50, "Currency": "USD", "InvoiceDate": daysAgo(10), "Status": "Paid"},
		{"Invoice": 123458, "CustomerID": 7892, "CustomerName": "Grace Hopper", "Amount": 2100.00, "Currency": "USD", "InvoiceDate": daysAgo(2), "Status": "Pending"},
		{"Invoice": 123459, "CustomerID": 7890, "CustomerName": "Ada Lovelace", "Amount": 650.25, "Currency": "USD", "InvoiceDate": daysAgo(15), "Status": "Paid"},
		{"Invoice": 123460, "CustomerID": 7893, "CustomerName": "John von Neumann", "Amount": 3200.00, "Currency": "USD", "InvoiceDate": daysAgo(1), "Status": "Paid"},
	}

	rows, err := validator.ValidateBatch(headers, rawRows)
	if err != nil {
		appLogger.Fatal("Sample data failed validation", zap.Error(err))
	}

	batch := &models.UploadBatch{
		ID:   uuid.New(),
		Rows: rows,
		Meta: models.BatchMeta{
			OriginalFilename: "sample_data.xlsx",
			Warnings:         []string{},
			ServerReceivedAt: now,
			RowCount:         len(rows),
		},
		CreatedAt: now,
	}

	if err := uploadRepo.CreateBatch(ctx, batch); err != nil {
		appLogger.Fatal("Failed to persist sample batch", zap.Error(err))
	}

	appLogger.Info("Seeding completed", zap.String("batch_id", batch.ID.String()))
}
