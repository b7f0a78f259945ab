package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"crm-insight/internal/dto"
	"crm-insight/internal/merkle"
	"crm-insight/internal/models"
	"crm-insight/internal/rfm"

	"go.uber.org/zap"
)

// AnalyticsService derives the two analytic views from the current
// transaction set. Both are pure functions of a fresh store snapshot,
// recomputed on every query.
type AnalyticsService struct {
	source   TransactionSource
	dataFile string
	logger   *zap.Logger
	now      func() time.Time
}

func NewAnalyticsService(source TransactionSource, dataFile string, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{
		source:   source,
		dataFile: dataFile,
		logger:   logger,
		now:      time.Now,
	}
}

// Segments computes the RFM customer segmentation over the current
// transaction set.
func (s *AnalyticsService) Segments(ctx context.Context) (*dto.SegmentsResponse, error) {
	transactions, err := s.source.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	customers := rfm.Compute(transactions, s.now().UTC())
	summary := rfm.Summarize(customers)

	resp := &dto.SegmentsResponse{
		Customers: make([]dto.CustomerRFMResponse, 0, len(customers)),
		Summary:   make([]dto.SegmentSummary, 0, len(summary)),
	}
	for _, c := range customers {
		resp.Customers = append(resp.Customers, dto.CustomerRFMResponse{
			CustomerID: c.CustomerID,
			Recency:    c.Recency,
			Frequency:  c.Frequency,
			Monetary:   c.Monetary,
			Segment:    string(c.Segment),
			Offer:      c.Offer,
		})
	}
	for _, entry := range summary {
		resp.Summary = append(resp.Summary, dto.SegmentSummary{
			Segment:        string(entry.Segment),
			Count:          entry.Count,
			SuggestedOffer: models.SegmentOffers[entry.Segment],
		})
	}

	return resp, nil
}

// Integrity reports two independent tamper-evidence signals: the
// streaming hash of the raw data artifact and the Merkle root of the
// persisted transaction set.
func (s *AnalyticsService) Integrity(ctx context.Context) (*dto.IntegrityResponse, error) {
	transactions, err := s.source.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}

	fileHash, err := merkle.HashFile(s.dataFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to hash data artifact: %w", err)
		}
		s.logger.Warn("Data artifact not found, reporting empty file hash",
			zap.String("path", s.dataFile),
		)
		fileHash = ""
	}

	return &dto.IntegrityResponse{
		FileHash:   fileHash,
		MerkleRoot: merkle.Root(transactions),
	}, nil
}
