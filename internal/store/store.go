// Package store is the optional Postgres-backed processing ledger. Batch
// runs with --track record every processed image keyed by a content hash and
// the settings fingerprint, so re-runs over large photo trees only touch
// what changed.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Store manages the PostgreSQL connection for the processing ledger.
type Store struct {
	conn *pgx.Conn
}

// Record is one ledger row.
type Record struct {
	ID           string
	SourcePath   string
	OutputPath   string
	Width        int
	Height       int
	SettingsHash string
	ProcessedAt  time.Time
}

// New establishes a connection and ensures the schema is initialized.
func New(ctx context.Context, connString string) (*Store, error) {
	conn, err := pgx.Connect(ctx, connString)
	if err != nil {
		return nil, err
	}

	if err := initSchema(ctx, conn); err != nil {
		conn.Close(ctx)
		return nil, fmt.Errorf("failed to initialize database schema: %w", err)
	}

	return &Store{conn: conn}, nil
}

// initSchema creates the ledger table if it doesn't exist (Auto-Migration).
func initSchema(ctx context.Context, conn *pgx.Conn) error {
	query := `
		CREATE TABLE IF NOT EXISTS processed_images (
			id TEXT PRIMARY KEY,
			source_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			width INT NOT NULL,
			height INT NOT NULL,
			settings_hash TEXT NOT NULL,
			processed_at TIMESTAMPTZ DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS processed_images_source_idx ON processed_images (source_path);
	`
	_, err := conn.Exec(ctx, query)
	return err
}

// Close terminates the database connection.
func (s *Store) Close(ctx context.Context) {
	s.conn.Close(ctx)
}

// MarkProcessed records a successful run for the image. Re-processing the
// same source updates the row in place.
func (s *Store) MarkProcessed(ctx context.Context, rec Record) error {
	_, err := s.conn.Exec(ctx, `
		INSERT INTO processed_images (id, source_path, output_path, width, height, settings_hash, processed_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		ON CONFLICT (id) DO UPDATE SET
			output_path = EXCLUDED.output_path,
			width = EXCLUDED.width,
			height = EXCLUDED.height,
			settings_hash = EXCLUDED.settings_hash,
			processed_at = NOW()
	`, rec.ID, rec.SourcePath, rec.OutputPath, rec.Width, rec.Height, rec.SettingsHash)
	return err
}

// IsProcessed reports whether the image (content hash) was already processed
// with the same settings fingerprint.
func (s *Store) IsProcessed(ctx context.Context, id, settingsHash string) (bool, error) {
	var found string
	err := s.conn.QueryRow(ctx,
		"SELECT id FROM processed_images WHERE id = $1 AND settings_hash = $2", id, settingsHash,
	).Scan(&found)
	if err == pgx.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// History returns the most recent ledger entries, newest first.
func (s *Store) History(ctx context.Context, limit int) ([]Record, error) {
	if limit < 1 {
		limit = 1
	}
	rows, err := s.conn.Query(ctx, `
		SELECT id, source_path, output_path, width, height, settings_hash, processed_at
		FROM processed_images
		ORDER BY processed_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []Record
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.ID, &r.SourcePath, &r.OutputPath, &r.Width, &r.Height, &r.SettingsHash, &r.ProcessedAt); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Reset drops the ledger table to clear all processing history.
func (s *Store) Reset(ctx context.Context) error {
	_, err := s.conn.Exec(ctx, "DROP TABLE IF EXISTS processed_images CASCADE")
	return err
}
