package service

import (
	"context"
	"time"

	"crm-insight/internal/dto"
	"crm-insight/internal/models"
	"crm-insight/internal/ratelimit"
	"crm-insight/internal/schema"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ingestBucket = "ingest"
	previewRows  = 10
)

// UploadService orchestrates the ingestion pipeline: rate limiter,
// then validator, then exactly one persistence call to the store.
type UploadService struct {
	limiter   *ratelimit.Limiter
	validator *schema.Validator
	store     BatchStore
	logger    *zap.Logger
	now       func() time.Time
}

func NewUploadService(
	limiter *ratelimit.Limiter,
	validator *schema.Validator,
	store BatchStore,
	logger *zap.Logger,
) *UploadService {
	return &UploadService{
		limiter:   limiter,
		validator: validator,
		store:     store,
		logger:    logger,
		now:       time.Now,
	}
}

// Ingest admits, validates, and persists one raw batch. A rate-limit
// rejection aborts before any validation work. A validation rejection
// returns the complete accumulated error list and persists nothing.
// A storage failure after successful validation returns a StorageError;
// the rate-limit token stays consumed and the caller must resubmit
// (no idempotency token exists across retries).
func (s *UploadService) Ingest(ctx context.Context, clientID string, req dto.UploadRequest) (*dto.UploadResponse, error) {
	if err := s.limiter.Allow(ingestBucket, clientID); err != nil {
		s.logger.Warn("Upload rejected by rate limiter", zap.String("client", clientID))
		return nil, err
	}

	rows, err := s.validator.ValidateBatch(req.Columns, req.Data)
	if err != nil {
		return nil, err
	}

	meta, err := schema.SanitizeMeta(req.Meta, len(rows), s.now())
	if err != nil {
		return nil, err
	}

	batch := &models.UploadBatch{
		ID:        uuid.New(),
		Rows:      rows,
		Meta:      meta,
		CreatedAt: meta.ServerReceivedAt,
	}

	if err := s.store.CreateBatch(ctx, batch); err != nil {
		s.logger.Error("Batch persistence failed",
			zap.String("batch_id", batch.ID.String()),
			zap.Error(err),
		)
		return nil, &StorageError{Err: err}
	}

	s.logger.Info("Batch ingested",
		zap.String("batch_id", batch.ID.String()),
		zap.Int("rows", len(rows)),
		zap.String("filename", meta.OriginalFilename),
	)

	return &dto.UploadResponse{
		Success:  true,
		UploadID: batch.ID.String(),
		RowCount: len(rows),
		Preview:  rows[:min(previewRows, len(rows))],
		Meta: dto.UploadMetaResponse{
			OriginalFilename: meta.OriginalFilename,
			UploadTime:       meta.UploadTime,
			Warnings:         meta.Warnings,
			ServerReceivedAt: meta.ServerReceivedAt.Format(time.RFC3339),
			RowCount:         meta.RowCount,
		},
	}, nil
}
