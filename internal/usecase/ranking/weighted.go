package ranking

import (
	"context"
	"fmt"
	"math"

	"github.com/relatedbrands/generator/internal/domain"
)

// Weighted discounts matches in broad categories: a shared category c
// contributes 1/ln(1+total(c)) where total(c) is its catalog-wide product count
type Weighted struct {
	source domain.ProductSource
}

// NewWeighted creates a weighted ranker
func NewWeighted(source domain.ProductSource) *Weighted {
	return &Weighted{source: source}
}

// CategoryWeight is the contribution of one match in a category of the given size.
// Sizes below one count as one.
func CategoryWeight(total int) float64 {
	if total < 1 {
		total = 1
	}
	return 1 / math.Log(1+float64(total))
}

// Rank implements Ranker
func (w *Weighted) Rank(ctx context.Context, anchorCategoryIDs []int, excludeBrandID int) ([]domain.RankedCandidate, error) {
	if len(anchorCategoryIDs) == 0 {
		return nil, nil
	}

	weights := make(map[int]float64, len(anchorCategoryIDs))
	for _, cid := range anchorCategoryIDs {
		total, err := w.source.CategoryProductCount(ctx, cid)
		if err != nil {
			return nil, fmt.Errorf("weighted ranking: category %d total: %w", cid, err)
		}
		weights[cid] = CategoryWeight(total)
	}

	products, err := w.source.ProductsInCategories(ctx, anchorCategoryIDs)
	if err != nil {
		return nil, fmt.Errorf("weighted ranking: %w", err)
	}

	t := newTally()
	for _, p := range products {
		if !attributable(p, excludeBrandID) {
			continue
		}
		var add float64
		for _, cid := range p.Categories {
			if weight, ok := weights[cid]; ok {
				add += weight
			}
		}
		t.add(p.BrandID, add)
	}
	return t.ranked(nil), nil
}
