// Package stats computes the summary metrics served by the stats endpoint.
// Every metric is read directly from current persisted state on each call;
// there is no cached intermediate.
package stats

import (
	"context"
	"fmt"
	"sort"

	"github.com/mkovtun/receiptd/internal/store"
)

// topProductsLimit is how many entries the top-sellers ranking returns.
const topProductsLimit = 5

// Store is the read-only aggregate surface the summary is computed from.
// *store.Store satisfies it.
type Store interface {
	CountFiles(ctx context.Context) (int64, error)
	CountChecks(ctx context.Context) (int64, error)
	SumProductPrices(ctx context.Context) (float64, error)
	ProductPrices(ctx context.Context) ([]float64, error)
	CountDistinctProductNames(ctx context.Context) (int64, error)
	SumProductQuantities(ctx context.Context) (int64, error)
	TopProductsByQuantity(ctx context.Context, limit int) ([]store.TopProduct, error)
}

// Summary is the composed statistics payload.
//
// AvgCheckSum divides the sum of all product prices by the number of checks.
// It is not a per-check subtotal average: item-level prices are mixed with
// the check-level count. Downstream reporting depends on this definition, so
// it is kept as-is.
type Summary struct {
	TotalFiles          int64              `json:"total_files"`
	TotalChecks         int64              `json:"total_checks"`
	AvgCheckSum         float64            `json:"avg_check_sum"`
	MedianProductPrice  float64            `json:"median_product_price"`
	TotalUniqueProducts int64              `json:"total_unique_products"`
	TotalSoldQuantity   int64              `json:"total_sold_quantity"`
	TopProducts         []store.TopProduct `json:"top_5_products"`
}

// Service computes summaries over st.
type Service struct {
	store Store
}

// NewService creates a stats service over st.
func NewService(st Store) *Service {
	return &Service{store: st}
}

// Summary computes all metrics over the current persisted state.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	totalFiles, err := s.store.CountFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("count files: %w", err)
	}

	totalChecks, err := s.store.CountChecks(ctx)
	if err != nil {
		return nil, fmt.Errorf("count checks: %w", err)
	}

	priceSum, err := s.store.SumProductPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum prices: %w", err)
	}
	var avgCheckSum float64
	if totalChecks > 0 {
		avgCheckSum = priceSum / float64(totalChecks)
	}

	prices, err := s.store.ProductPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}

	uniqueProducts, err := s.store.CountDistinctProductNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("count distinct products: %w", err)
	}

	soldQuantity, err := s.store.SumProductQuantities(ctx)
	if err != nil {
		return nil, fmt.Errorf("sum quantities: %w", err)
	}

	top, err := s.store.TopProductsByQuantity(ctx, topProductsLimit)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}

	return &Summary{
		TotalFiles:          totalFiles,
		TotalChecks:         totalChecks,
		AvgCheckSum:         avgCheckSum,
		MedianProductPrice:  median(prices),
		TotalUniqueProducts: uniqueProducts,
		TotalSoldQuantity:   soldQuantity,
		TopProducts:         top,
	}, nil
}

// median returns the median of values, 0 when the slice is empty. The input
// is copied before sorting.
func median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}
