package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ukydev/fleet-records/internal/models"
)

// SQL backends keep one row per collection in a state(bucket, payload) table
// and rewrite every row inside a single transaction on save.

func loadBuckets(ctx context.Context, db *sql.DB) (*models.Document, error) {
	rows, err := db.QueryContext(ctx, `SELECT bucket, payload FROM state`)
	if err != nil {
		return nil, fmt.Errorf("%w: select state: %w", ErrStoreRead, err)
	}
	defer func() { _ = rows.Close() }()

	buckets := make(map[string][]byte, len(models.Collections))
	for rows.Next() {
		var bucket string
		var payload []byte
		if err := rows.Scan(&bucket, &payload); err != nil {
			return nil, fmt.Errorf("%w: scan state: %w", ErrStoreRead, err)
		}
		buckets[bucket] = payload
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate state: %w", ErrStoreRead, err)
	}

	doc, err := models.DecodeBuckets(buckets)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreRead, err)
	}
	return doc, nil
}

func saveBuckets(ctx context.Context, db *sql.DB, upsert string, doc *models.Document) error {
	buckets, err := doc.EncodeBuckets()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %w", ErrStoreWrite, err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	for _, name := range models.Collections {
		if _, err := tx.ExecContext(ctx, upsert, name, buckets[name]); err != nil {
			return fmt.Errorf("%w: upsert %s: %w", ErrStoreWrite, name, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %w", ErrStoreWrite, err)
	}
	committed = true
	return nil
}
