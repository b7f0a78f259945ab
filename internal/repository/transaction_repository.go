package repository

import (
	"context"
	"encoding/json"

	"crm-insight/internal/models"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

// ListAll flattens every persisted batch into the transaction shape the
// analytic views consume: batches oldest first, rows in stored order.
// Rows without a parseable InvoiceDate or CustomerID are skipped, the
// same cleaning the segmentation input requires.
func (r *TransactionRepository) ListAll(ctx context.Context) ([]models.Transaction, error) {
	query := squirrel.Select("rows").
		From("upload_batches").
		OrderBy("created_at ASC", "id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transactions []models.Transaction
	var skipped int
	for rows.Next() {
		var rowsJSON []byte
		if err := rows.Scan(&rowsJSON); err != nil {
			return nil, err
		}

		var batchRows []map[string]any
		if err := json.Unmarshal(rowsJSON, &batchRows); err != nil {
			return nil, err
		}

		for _, raw := range batchRows {
			tx, ok := models.TransactionFromRow(raw)
			if !ok {
				skipped++
				continue
			}
			transactions = append(transactions, tx)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if skipped > 0 {
		r.logger.Debug("Skipped rows without transaction shape", zap.Int("count", skipped))
	}
	return transactions, nil
}
