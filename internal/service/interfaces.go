package service

import (
	"context"

	"crm-insight/internal/models"
)

// BatchStore is the persistence collaborator the ingestion pipeline
// makes exactly one call to per accepted batch.
type BatchStore interface {
	CreateBatch(ctx context.Context, batch *models.UploadBatch) error
}

// TransactionSource supplies the ordered transaction set the analytic
// views are derived from.
type TransactionSource interface {
	ListAll(ctx context.Context) ([]models.Transaction, error)
}
