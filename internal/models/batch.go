package models

import (
	"time"

	"github.com/google/uuid"
)

// BatchMeta is the sanitized metadata stored with every upload batch.
// ServerReceivedAt and RowCount are always stamped server-side.
type BatchMeta struct {
	OriginalFilename string    `json:"originalFilename"`
	UploadTime       string    `json:"uploadTime,omitempty"`
	Warnings         []string  `json:"warnings"`
	ServerReceivedAt time.Time `json:"serverReceivedAt"`
	RowCount         int       `json:"rowCount"`
}

// UploadBatch is one accepted upload. Batches are append-only: once
// persisted they are never mutated or deleted.
type UploadBatch struct {
	ID        uuid.UUID        `db:"id"`
	Rows      []map[string]any `db:"rows"`
	Meta      BatchMeta        `db:"meta"`
	CreatedAt time.Time        `db:"created_at"`
}
