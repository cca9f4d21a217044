package ranking

import (
	"context"
	"errors"
	"testing"

	"github.com/relatedbrands/generator/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource is an in-memory catalog that records the queries it receives
type fakeSource struct {
	products   []domain.Product
	totals     map[int]int
	err        error
	queries    [][]int
	totalCalls []int
}

func (f *fakeSource) ProductsInCategories(ctx context.Context, categoryIDs []int) ([]domain.Product, error) {
	f.queries = append(f.queries, categoryIDs)
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[int]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		want[id] = true
	}
	var out []domain.Product
	for _, p := range f.products {
		for _, c := range p.Categories {
			if want[c] {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeSource) CategoryProductCount(ctx context.Context, categoryID int) (int, error) {
	f.totalCalls = append(f.totalCalls, categoryID)
	if f.err != nil {
		return 0, f.err
	}
	return f.totals[categoryID], nil
}

func product(id, brand int, cats ...int) domain.Product {
	return domain.Product{ID: id, BrandID: brand, Categories: cats}
}

func allModes() []Strategy {
	return []Strategy{
		{Mode: ModeRaw},
		{Mode: ModeWeighted},
		{Mode: ModeKOfN, MinCategoryMatches: 1},
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"RAW", ModeRaw, false},
		{"raw", ModeRaw, false},
		{" Weighted ", ModeWeighted, false},
		{"KOFN", ModeKOfN, false},
		{"", ModeKOfN, false},
		{"POPULAR", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrInvalidRankingMode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) Mode {
	t.Helper()
	m, err := ParseMode(s)
	require.NoError(t, err)
	return m
}

func TestNew(t *testing.T) {
	src := &fakeSource{}

	r, err := New(Strategy{Mode: ModeRaw}, src)
	require.NoError(t, err)
	assert.IsType(t, &Raw{}, r)

	r, err = New(Strategy{Mode: ModeWeighted}, src)
	require.NoError(t, err)
	assert.IsType(t, &Weighted{}, r)

	r, err = New(Strategy{Mode: ModeKOfN}, src)
	require.NoError(t, err)
	require.IsType(t, &KOfN{}, r)
	assert.Equal(t, DefaultMinCategoryMatches, r.(*KOfN).MinMatches())

	_, err = New(Strategy{Mode: Mode(99)}, src)
	assert.ErrorIs(t, err, domain.ErrInvalidRankingMode)
}

func TestRank_EmptyAnchorsIssueNoQuery(t *testing.T) {
	for _, s := range allModes() {
		t.Run(s.Mode.String(), func(t *testing.T) {
			src := &fakeSource{products: []domain.Product{product(1, 2, 5)}}
			r, err := New(s, src)
			require.NoError(t, err)

			got, err := r.Rank(context.Background(), nil, 9)

			require.NoError(t, err)
			assert.Empty(t, got)
			assert.Empty(t, src.queries)
			assert.Empty(t, src.totalCalls)
		})
	}
}

func TestRank_ExcludedBrandNeverReturned(t *testing.T) {
	products := []domain.Product{
		product(1, 9, 5, 6),
		product(2, 9, 5),
		product(3, 9, 6),
		product(4, 7, 5, 6),
		product(5, 8, 6),
		product(6, 0, 5, 6),
	}

	for _, s := range allModes() {
		t.Run(s.Mode.String(), func(t *testing.T) {
			src := &fakeSource{products: products, totals: map[int]int{5: 10, 6: 20}}
			r, err := New(s, src)
			require.NoError(t, err)

			got, err := r.Rank(context.Background(), []int{5, 6}, 9)
			require.NoError(t, err)

			require.NotEmpty(t, got)
			for _, c := range got {
				assert.NotEqual(t, 9, c.BrandID)
				assert.NotEqual(t, 0, c.BrandID, "products without a brand cannot be attributed")
			}
			for i := 1; i < len(got); i++ {
				assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
			}
		})
	}
}

func TestRaw_Scenario(t *testing.T) {
	src := &fakeSource{products: []domain.Product{
		product(1, 9, 5),
		product(2, 9, 5),
		product(3, 7, 5),
	}}

	got, err := NewRaw(src).Rank(context.Background(), []int{5}, 9)

	require.NoError(t, err)
	assert.Equal(t, []domain.RankedCandidate{{BrandID: 7, Score: 1}}, got)
	assert.Equal(t, [][]int{{5}}, src.queries, "raw mode queries all anchors at once")
}

func TestRaw_CountsProductsAndKeepsEncounterOrderOnTies(t *testing.T) {
	src := &fakeSource{products: []domain.Product{
		product(1, 3, 1),
		product(2, 4, 2),
		product(3, 5, 1),
		product(4, 5, 2),
		product(5, 4, 1, 2),
	}}

	got, err := NewRaw(src).Rank(context.Background(), []int{1, 2}, 0)

	require.NoError(t, err)
	assert.Equal(t, []domain.RankedCandidate{
		{BrandID: 4, Score: 2},
		{BrandID: 5, Score: 2},
		{BrandID: 3, Score: 1},
	}, got)
}

func TestWeighted_NicheCategoryOutweighsBroad(t *testing.T) {
	src := &fakeSource{
		products: []domain.Product{
			product(1, 7, 10), // niche match
			product(2, 8, 20), // broad match
		},
		totals: map[int]int{10: 10, 20: 1000},
	}

	got, err := NewWeighted(src).Rank(context.Background(), []int{10, 20}, 0)

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, 7, got[0].BrandID)
	assert.Equal(t, 8, got[1].BrandID)
	assert.Greater(t, got[0].Score, got[1].Score)
	assert.InDelta(t, CategoryWeight(10), got[0].Score, 1e-12)
	assert.InDelta(t, CategoryWeight(1000), got[1].Score, 1e-12)
	assert.Equal(t, []int{10, 20}, src.totalCalls, "one total query per anchor category")
}

func TestWeighted_SumsEveryAnchorOnAProduct(t *testing.T) {
	src := &fakeSource{
		products: []domain.Product{
			product(1, 7, 10, 20, 99),
		},
		totals: map[int]int{10: 10, 20: 1000},
	}

	got, err := NewWeighted(src).Rank(context.Background(), []int{10, 20}, 0)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, CategoryWeight(10)+CategoryWeight(1000), got[0].Score, 1e-12)
}

func TestCategoryWeight(t *testing.T) {
	assert.Greater(t, CategoryWeight(10), CategoryWeight(1000))
	assert.Equal(t, CategoryWeight(1), CategoryWeight(0), "empty categories count as size one")
	assert.InDelta(t, 1/0.6931471805599453, CategoryWeight(1), 1e-12)
}

func TestKOfN_Threshold(t *testing.T) {
	src := &fakeSource{products: []domain.Product{
		product(1, 7, 1),
		product(2, 7, 2),
		product(3, 7, 3),
		product(4, 8, 1),
		product(5, 8, 1),
		product(6, 8, 1),
		product(7, 6, 2),
		product(8, 6, 3),
	}}

	got, err := NewKOfN(src, 2).Rank(context.Background(), []int{1, 2, 3}, 0)

	require.NoError(t, err)
	assert.Equal(t, []domain.RankedCandidate{
		{BrandID: 7, Score: 3},
		{BrandID: 6, Score: 2},
	}, got, "brand 8 is present in only one anchor category")
	for _, c := range got {
		assert.GreaterOrEqual(t, c.Score, float64(2))
	}
	assert.Equal(t, [][]int{{1}, {2}, {3}}, src.queries, "k-of-n queries each anchor separately")
}

func TestKOfN_ProductInSeveralAnchorsCountsEachOnce(t *testing.T) {
	src := &fakeSource{products: []domain.Product{
		product(1, 7, 1, 2),
		product(2, 7, 1, 2),
	}}

	got, err := NewKOfN(src, 2).Rank(context.Background(), []int{1, 2}, 0)

	require.NoError(t, err)
	assert.Equal(t, []domain.RankedCandidate{{BrandID: 7, Score: 2}}, got)
}

func TestRank_PropagatesSourceErrors(t *testing.T) {
	boom := errors.New("upstream down")

	for _, s := range allModes() {
		t.Run(s.Mode.String(), func(t *testing.T) {
			r, err := New(s, &fakeSource{err: boom})
			require.NoError(t, err)

			got, err := r.Rank(context.Background(), []int{1}, 0)

			assert.Nil(t, got)
			assert.ErrorIs(t, err, boom)
		})
	}
}
