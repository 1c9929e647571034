// internal/catalog/top.go
package catalog

import (
	"context"
	"errors"

	"franchise-catalog/internal/models"
	"franchise-catalog/internal/store"
)

// TopProductsPerBranch returns, in branch order, the highest-stock product
// of each branch. Branches without products are skipped and ties keep the
// first product in branch order. An unknown franchise yields an empty slice.
func (e *Engine) TopProductsPerBranch(ctx context.Context, franchiseID string) ([]models.BranchTopProduct, error) {
	out := []models.BranchTopProduct{}
	err := e.observe(ctx, opTopProducts, franchiseID, func(ctx context.Context) error {
		f, err := e.store.Get(ctx, franchiseID)
		if errors.Is(err, store.ErrDocumentNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		out = TopProducts(f)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// TopProducts is the pure aggregation behind TopProductsPerBranch.
func TopProducts(f *models.Franchise) []models.BranchTopProduct {
	out := []models.BranchTopProduct{}
	for _, b := range f.Branches() {
		products := b.Products()
		if len(products) == 0 {
			continue
		}
		top := products[0]
		for _, p := range products[1:] {
			if p.Stock() > top.Stock() {
				top = p
			}
		}
		out = append(out, models.BranchTopProduct{BranchName: b.Name(), Product: top})
	}
	return out
}
