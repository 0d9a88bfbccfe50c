package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// FileByFilename returns the file record with the given filename, or nil
// when no such record exists.
func (s *Store) FileByFilename(ctx context.Context, filename string) (*File, error) {
	const q = `
		SELECT id, filename, fingerprint, processed_at
		FROM files
		WHERE filename = $1`

	var f File
	err := s.db.QueryRow(ctx, q, filename).
		Scan(&f.ID, &f.Filename, &f.Fingerprint, &f.ProcessedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file by filename: %w", err)
	}
	return &f, nil
}

// CreateFile inserts a new file record. A fingerprint already registered
// under another filename surfaces as a conflict.
func (s *Store) CreateFile(ctx context.Context, f File) error {
	const q = `
		INSERT INTO files (id, filename, fingerprint, processed_at)
		VALUES ($1, $2, $3, $4)`

	if _, err := s.db.Exec(ctx, q, f.ID, f.Filename, f.Fingerprint, f.ProcessedAt); err != nil {
		return fmt.Errorf("create file: %w", mapConstraint(err))
	}
	return nil
}

// RefreshFile updates an existing file's fingerprint and processing
// timestamp after a re-upload under the same filename.
func (s *Store) RefreshFile(ctx context.Context, id uuid.UUID, fingerprint string, processedAt time.Time) error {
	const q = `
		UPDATE files
		SET fingerprint = $2, processed_at = $3
		WHERE id = $1`

	if _, err := s.db.Exec(ctx, q, id, fingerprint, processedAt); err != nil {
		return fmt.Errorf("refresh file: %w", mapConstraint(err))
	}
	return nil
}

// ListFiles returns all file records, most recently processed first.
func (s *Store) ListFiles(ctx context.Context) ([]File, error) {
	const q = `
		SELECT id, filename, fingerprint, processed_at
		FROM files
		ORDER BY processed_at DESC`

	rows, err := s.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	defer rows.Close()

	files := make([]File, 0)
	for rows.Next() {
		var f File
		if err := rows.Scan(&f.ID, &f.Filename, &f.Fingerprint, &f.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan file: %w", err)
		}
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	return files, nil
}
