package ranking

import (
	"context"
	"fmt"

	"github.com/relatedbrands/generator/internal/domain"
)

// KOfN scores a brand by the number of distinct anchor categories it has at
// least one product in, keeping only brands present in MinMatches or more
type KOfN struct {
	source     domain.ProductSource
	minMatches int
}

// NewKOfN creates a K-of-N ranker
func NewKOfN(source domain.ProductSource, minMatches int) *KOfN {
	return &KOfN{source: source, minMatches: minMatches}
}

// MinMatches returns the qualifying threshold
func (k *KOfN) MinMatches() int {
	return k.minMatches
}

// Rank implements Ranker
func (k *KOfN) Rank(ctx context.Context, anchorCategoryIDs []int, excludeBrandID int) ([]domain.RankedCandidate, error) {
	if len(anchorCategoryIDs) == 0 {
		return nil, nil
	}

	seen := make(map[int]map[int]struct{})
	t := newTally()
	for _, cid := range anchorCategoryIDs {
		products, err := k.source.ProductsInCategories(ctx, []int{cid})
		if err != nil {
			return nil, fmt.Errorf("k-of-n ranking: category %d: %w", cid, err)
		}
		for _, p := range products {
			if !attributable(p, excludeBrandID) {
				continue
			}
			cats, ok := seen[p.BrandID]
			if !ok {
				cats = make(map[int]struct{})
				seen[p.BrandID] = cats
			}
			if _, dup := cats[cid]; dup {
				continue
			}
			cats[cid] = struct{}{}
			t.add(p.BrandID, 1)
		}
	}

	threshold := float64(k.minMatches)
	return t.ranked(func(score float64) bool { return score >= threshold }), nil
}
