package ranking

import (
	"context"
	"fmt"

	"github.com/relatedbrands/generator/internal/domain"
)

// Raw counts every product a brand has in any anchor category
type Raw struct {
	source domain.ProductSource
}

// NewRaw creates a raw-count ranker
func NewRaw(source domain.ProductSource) *Raw {
	return &Raw{source: source}
}

// Rank implements Ranker
func (r *Raw) Rank(ctx context.Context, anchorCategoryIDs []int, excludeBrandID int) ([]domain.RankedCandidate, error) {
	if len(anchorCategoryIDs) == 0 {
		return nil, nil
	}

	products, err := r.source.ProductsInCategories(ctx, anchorCategoryIDs)
	if err != nil {
		return nil, fmt.Errorf("raw ranking: %w", err)
	}

	t := newTally()
	for _, p := range products {
		if !attributable(p, excludeBrandID) {
			continue
		}
		t.add(p.BrandID, 1)
	}
	return t.ranked(nil), nil
}
