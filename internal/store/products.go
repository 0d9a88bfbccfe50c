package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ProductExists reports whether a product with this name is already recorded
// under the check.
func (s *Store) ProductExists(ctx context.Context, checkID uuid.UUID, name string) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM products WHERE check_id = $1 AND name = $2
		)`

	var exists bool
	if err := s.db.QueryRow(ctx, q, checkID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("product exists: %w", err)
	}
	return exists, nil
}

// CreateProduct inserts a new product record. A concurrent insert of the
// same (check, name) pair surfaces as a conflict.
func (s *Store) CreateProduct(ctx context.Context, p Product) error {
	const q = `
		INSERT INTO products (id, name, quantity, price, check_id)
		VALUES ($1, $2, $3, $4, $5)`

	if _, err := s.db.Exec(ctx, q, p.ID, p.Name, p.Quantity, p.Price, p.CheckID); err != nil {
		return fmt.Errorf("create product: %w", mapConstraint(err))
	}
	return nil
}
