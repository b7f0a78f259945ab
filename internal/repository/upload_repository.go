package repository

import (
	"context"
	"encoding/json"

	"crm-insight/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UploadRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUploadRepository(db *pgxpool.Pool, logger *zap.Logger) *UploadRepository {
	return &UploadRepository{
		db:     db,
		logger: logger,
	}
}

// CreateBatch persists an upload batch in a single insert. Batches are
// append-only; there is no update or delete path.
func (r *UploadRepository) CreateBatch(ctx context.Context, batch *models.UploadBatch) error {
	rowsJSON, err := json.Marshal(batch.Rows)
	if err != nil {
		return err
	}
	metaJSON, err := json.Marshal(batch.Meta)
	if err != nil {
		return err
	}

	query := squirrel.Insert("upload_batches").
		Columns("id", "original_filename", "row_count", "rows", "meta", "created_at").
		Values(batch.ID, batch.Meta.OriginalFilename, batch.Meta.RowCount, rowsJSON, metaJSON, batch.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err = r.db.Exec(ctx, sql, args...); err != nil {
		return err
	}

	r.logger.Info("Upload batch persisted",
		zap.String("batch_id", batch.ID.String()),
		zap.Int("rows", batch.Meta.RowCount),
	)
	return nil
}
