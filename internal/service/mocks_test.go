package service

import (
	"context"

	"crm-insight/internal/models"
)

type mockStore struct {
	createErr error
	batches   []*models.UploadBatch
}

func (m *mockStore) CreateBatch(_ context.Context, batch *models.UploadBatch) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.batches = append(m.batches, batch)
	return nil
}

type mockSource struct {
	transactions []models.Transaction
	err          error
}

func (m *mockSource) ListAll(_ context.Context) ([]models.Transaction, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.transactions, nil
}
