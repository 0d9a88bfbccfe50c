package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CheckByIdentifier returns the check with the given marker text, or nil
// when none exists. The lookup is global, not scoped to a file: the same
// check appearing in two uploads must resolve to one record.
func (s *Store) CheckByIdentifier(ctx context.Context, identifier string) (*Check, error) {
	const q = `
		SELECT id, check_identifier, occurred_at, operation_kind, file_id
		FROM checks
		WHERE check_identifier = $1`

	var c Check
	err := s.db.QueryRow(ctx, q, identifier).
		Scan(&c.ID, &c.Identifier, &c.OccurredAt, &c.OperationKind, &c.FileID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("check by identifier: %w", err)
	}
	return &c, nil
}

// CreateCheck inserts a new check record. A concurrent insert of the same
// identifier surfaces as a conflict.
func (s *Store) CreateCheck(ctx context.Context, c Check) error {
	const q = `
		INSERT INTO checks (id, check_identifier, occurred_at, operation_kind, file_id)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := s.db.Exec(ctx, q, c.ID, c.Identifier, c.OccurredAt, c.OperationKind, c.FileID); err != nil {
		return fmt.Errorf("create check: %w", mapConstraint(err))
	}
	return nil
}
