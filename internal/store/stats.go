package store

import (
	"context"
	"fmt"
)

// CountFiles returns the total number of file records.
func (s *Store) CountFiles(ctx context.Context) (int64, error) {
	return s.countQuery(ctx, `SELECT COUNT(*) FROM files`)
}

// CountChecks returns the total number of check records.
func (s *Store) CountChecks(ctx context.Context) (int64, error) {
	return s.countQuery(ctx, `SELECT COUNT(*) FROM checks`)
}

// CountDistinctProductNames returns the number of distinct product names.
func (s *Store) CountDistinctProductNames(ctx context.Context) (int64, error) {
	return s.countQuery(ctx, `SELECT COUNT(DISTINCT name) FROM products`)
}

// SumProductQuantities returns the total quantity across all products,
// 0 when there are none.
func (s *Store) SumProductQuantities(ctx context.Context) (int64, error) {
	return s.countQuery(ctx, `SELECT COALESCE(SUM(quantity), 0) FROM products`)
}

func (s *Store) countQuery(ctx context.Context, q string) (int64, error) {
	var n int64
	if err := s.db.QueryRow(ctx, q).Scan(&n); err != nil {
		return 0, fmt.Errorf("count query: %w", err)
	}
	return n, nil
}

// SumProductPrices returns the sum of all product prices, 0 when there are
// no products.
func (s *Store) SumProductPrices(ctx context.Context) (float64, error) {
	var sum float64
	err := s.db.QueryRow(ctx, `SELECT COALESCE(SUM(price), 0) FROM products`).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum product prices: %w", err)
	}
	return sum, nil
}

// ProductPrices returns every recorded product price. The median is computed
// in-process, so the full list is needed.
func (s *Store) ProductPrices(ctx context.Context) ([]float64, error) {
	rows, err := s.db.Query(ctx, `SELECT price FROM products`)
	if err != nil {
		return nil, fmt.Errorf("product prices: %w", err)
	}
	defer rows.Close()

	var prices []float64
	for rows.Next() {
		var p float64
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("product prices: %w", err)
	}
	return prices, nil
}

// TopProductsByQuantity returns up to limit products ranked by quantity
// summed across all checks, descending. Ties break by name ascending so the
// ranking is stable.
func (s *Store) TopProductsByQuantity(ctx context.Context, limit int) ([]TopProduct, error) {
	const q = `
		SELECT name, SUM(quantity) AS total_quantity
		FROM products
		GROUP BY name
		ORDER BY total_quantity DESC, name ASC
		LIMIT $1`

	rows, err := s.db.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	top := make([]TopProduct, 0, limit)
	for rows.Next() {
		var tp TopProduct
		if err := rows.Scan(&tp.Name, &tp.TotalQuantity); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		top = append(top, tp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	return top, nil
}
