package ranking

import (
	"sort"

	"github.com/relatedbrands/generator/internal/domain"
)

// tally accumulates per-brand scores remembering first-encountered order
type tally struct {
	scores map[int]float64
	order  []int
}

func newTally() *tally {
	return &tally{scores: make(map[int]float64)}
}

func (t *tally) add(brandID int, delta float64) {
	if _, seen := t.scores[brandID]; !seen {
		t.order = append(t.order, brandID)
	}
	t.scores[brandID] += delta
}

// ranked returns candidates passing keep, highest score first
func (t *tally) ranked(keep func(score float64) bool) []domain.RankedCandidate {
	out := make([]domain.RankedCandidate, 0, len(t.order))
	for _, id := range t.order {
		score := t.scores[id]
		if keep != nil && !keep(score) {
			continue
		}
		out = append(out, domain.RankedCandidate{BrandID: id, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

// attributable reports whether a product can be credited to a candidate brand
func attributable(p domain.Product, excludeBrandID int) bool {
	return p.BrandID != 0 && p.BrandID != excludeBrandID
}
