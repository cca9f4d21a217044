package domain

// Product represents the catalog fields the ranking needs.
// BrandID is zero when the product has no brand assigned.
type Product struct {
	ID         int   `json:"id"`
	BrandID    int   `json:"brand_id"`
	Categories []int `json:"categories,omitempty"`
}

// AnchorCategory is one of a brand's dominant categories with its product count
type AnchorCategory struct {
	CategoryID int `json:"categoryId"`
	Count      int `json:"count"`
}

// AnchorIDs extracts the category identifiers in rank order
func AnchorIDs(anchors []AnchorCategory) []int {
	ids := make([]int, len(anchors))
	for i, a := range anchors {
		ids[i] = a.CategoryID
	}
	return ids
}

// RankedCandidate is a brand scored against a set of anchor categories.
// Score semantics depend on the ranking mode.
type RankedCandidate struct {
	BrandID int     `json:"brandId"`
	Score   float64 `json:"score"`
}
