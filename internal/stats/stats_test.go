package stats

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/mkovtun/receiptd/internal/store"
)

// fakeStore serves aggregates computed from literal fixture data.
type fakeStore struct {
	files  int64
	checks int64
	prices []float64
	// name -> summed quantity
	quantities map[string]int64

	err error // when set, every method fails with it
}

func (f *fakeStore) CountFiles(context.Context) (int64, error) {
	return f.files, f.err
}

func (f *fakeStore) CountChecks(context.Context) (int64, error) {
	return f.checks, f.err
}

func (f *fakeStore) SumProductPrices(context.Context) (float64, error) {
	var sum float64
	for _, p := range f.prices {
		sum += p
	}
	return sum, f.err
}

func (f *fakeStore) ProductPrices(context.Context) ([]float64, error) {
	return f.prices, f.err
}

func (f *fakeStore) CountDistinctProductNames(context.Context) (int64, error) {
	return int64(len(f.quantities)), f.err
}

func (f *fakeStore) SumProductQuantities(context.Context) (int64, error) {
	var sum int64
	for _, q := range f.quantities {
		sum += q
	}
	return sum, f.err
}

func (f *fakeStore) TopProductsByQuantity(_ context.Context, limit int) ([]store.TopProduct, error) {
	if f.err != nil {
		return nil, f.err
	}
	top := make([]store.TopProduct, 0, len(f.quantities))
	for name, q := range f.quantities {
		top = append(top, store.TopProduct{Name: name, TotalQuantity: q})
	}
	sort.Slice(top, func(i, j int) bool {
		if top[i].TotalQuantity != top[j].TotalQuantity {
			return top[i].TotalQuantity > top[j].TotalQuantity
		}
		return top[i].Name < top[j].Name
	})
	if len(top) > limit {
		top = top[:limit]
	}
	return top, nil
}

func TestSummary(t *testing.T) {
	svc := NewService(&fakeStore{
		files:  1,
		checks: 2,
		prices: []float64{10.0, 20.0, 30.0},
		quantities: map[string]int64{
			"A": 5,
			"B": 12,
			"C": 3,
		},
	})

	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if got.TotalFiles != 1 {
		t.Errorf("TotalFiles = %d", got.TotalFiles)
	}
	if got.TotalChecks != 2 {
		t.Errorf("TotalChecks = %d", got.TotalChecks)
	}
	// Sum of all prices over the check count, not a per-check average.
	if got.AvgCheckSum != 30.0 {
		t.Errorf("AvgCheckSum = %v, want 30.0", got.AvgCheckSum)
	}
	if got.MedianProductPrice != 20.0 {
		t.Errorf("MedianProductPrice = %v, want 20.0", got.MedianProductPrice)
	}
	if got.TotalUniqueProducts != 3 {
		t.Errorf("TotalUniqueProducts = %d", got.TotalUniqueProducts)
	}
	if got.TotalSoldQuantity != 20 {
		t.Errorf("TotalSoldQuantity = %d", got.TotalSoldQuantity)
	}

	wantTop := []store.TopProduct{
		{Name: "B", TotalQuantity: 12},
		{Name: "A", TotalQuantity: 5},
		{Name: "C", TotalQuantity: 3},
	}
	if len(got.TopProducts) != len(wantTop) {
		t.Fatalf("TopProducts has %d entries, want %d", len(got.TopProducts), len(wantTop))
	}
	for i, want := range wantTop {
		if got.TopProducts[i] != want {
			t.Errorf("TopProducts[%d] = %+v, want %+v", i, got.TopProducts[i], want)
		}
	}
}

func TestSummaryEmptyStore(t *testing.T) {
	svc := NewService(&fakeStore{quantities: map[string]int64{}})

	got, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if got.AvgCheckSum != 0 {
		t.Errorf("AvgCheckSum = %v, want 0 when there are no checks", got.AvgCheckSum)
	}
	if got.MedianProductPrice != 0 {
		t.Errorf("MedianProductPrice = %v, want 0 when there are no products", got.MedianProductPrice)
	}
	if got.TotalSoldQuantity != 0 {
		t.Errorf("TotalSoldQuantity = %v, want 0", got.TotalSoldQuantity)
	}
	if len(got.TopProducts) != 0 {
		t.Errorf("TopProducts = %v, want empty", got.TopProducts)
	}
}

func TestSummaryPropagatesStoreErrors(t *testing.T) {
	svc := NewService(&fakeStore{err: errors.New("connection refused")})

	if _, err := svc.Summary(context.Background()); err == nil {
		t.Error("Summary should fail when the store fails")
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7}, 7},
		{"odd count", []float64{30, 10, 20}, 20},
		{"even count", []float64{1, 2, 3, 4}, 2.5},
		{"duplicates", []float64{5, 5, 5, 1}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := median(tt.values); got != tt.want {
				t.Errorf("median(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestMedianDoesNotMutateInput(t *testing.T) {
	values := []float64{3, 1, 2}
	median(values)
	if values[0] != 3 || values[1] != 1 || values[2] != 2 {
		t.Errorf("median mutated its input: %v", values)
	}
}
