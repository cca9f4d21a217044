package usecase

import (
	"sort"

	"github.com/relatedbrands/generator/internal/domain"
)

// CategoryAggregator finds the dominant categories of a brand's products
type CategoryAggregator struct {
	excluded map[int]struct{}
}

// NewCategoryAggregator creates an aggregator that ignores the given categories
func NewCategoryAggregator(excludedCategoryIDs []int) *CategoryAggregator {
	excluded := make(map[int]struct{}, len(excludedCategoryIDs))
	for _, id := range excludedCategoryIDs {
		excluded[id] = struct{}{}
	}
	return &CategoryAggregator{excluded: excluded}
}

// TopCategories counts category occurrences across products and returns the
// topN most frequent, highest first. Equal counts keep discovery order.
func (a *CategoryAggregator) TopCategories(products []domain.Product, topN int) []domain.AnchorCategory {
	if topN <= 0 {
		return nil
	}

	counts := make(map[int]int)
	var order []int
	for _, p := range products {
		for _, cid := range p.Categories {
			if _, skip := a.excluded[cid]; skip {
				continue
			}
			if _, seen := counts[cid]; !seen {
				order = append(order, cid)
			}
			counts[cid]++
		}
	}

	anchors := make([]domain.AnchorCategory, len(order))
	for i, cid := range order {
		anchors[i] = domain.AnchorCategory{CategoryID: cid, Count: counts[cid]}
	}
	sort.SliceStable(anchors, func(i, j int) bool {
		return anchors[i].Count > anchors[j].Count
	})

	if len(anchors) > topN {
		anchors = anchors[:topN]
	}
	return anchors
}
