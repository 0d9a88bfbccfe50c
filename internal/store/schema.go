package store

import (
	"context"
	"fmt"
)

// schema is applied idempotently at startup. The unique indexes carry the
// reconciliation guarantees: duplicate filenames and fingerprints, repeated
// check identifiers, and repeated (check, name) product pairs are all
// rejected at commit time regardless of what the application layer missed.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS files (
		id           UUID PRIMARY KEY,
		filename     TEXT NOT NULL UNIQUE,
		fingerprint  TEXT NOT NULL UNIQUE,
		processed_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS checks (
		id               UUID PRIMARY KEY,
		check_identifier TEXT NOT NULL UNIQUE,
		occurred_at      TIMESTAMPTZ,
		operation_kind   TEXT,
		file_id          UUID NOT NULL REFERENCES files (id)
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id       UUID PRIMARY KEY,
		name     TEXT NOT NULL,
		quantity BIGINT NOT NULL DEFAULT 0 CHECK (quantity >= 0),
		price    DOUBLE PRECISION NOT NULL DEFAULT 0 CHECK (price >= 0),
		check_id UUID NOT NULL REFERENCES checks (id),
		UNIQUE (check_id, name)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_checks_file_id ON checks (file_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_check_id ON products (check_id)`,
	`CREATE INDEX IF NOT EXISTS idx_products_name ON products (name)`,
}

// Migrate creates the schema if it does not exist yet.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
