package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/relatedbrands/generator/internal/domain"
	"github.com/relatedbrands/generator/internal/logger"
)

// BrandBatchSize is the number of identifiers sent per id:in lookup
const BrandBatchSize = 50

// BrandResolver turns ranked brand identifiers into brands, batching lookups
// and remembering brands already fetched during the run
type BrandResolver struct {
	lookup    domain.BrandLookup
	cache     domain.CacheRepository
	cacheTTL  time.Duration
	batchSize int
	logger    logger.Logger
}

// NewBrandResolver creates a resolver. cache may be nil.
func NewBrandResolver(lookup domain.BrandLookup, cache domain.CacheRepository, cacheTTL time.Duration, log logger.Logger) *BrandResolver {
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &BrandResolver{
		lookup:    lookup,
		cache:     cache,
		cacheTTL:  cacheTTL,
		batchSize: BrandBatchSize,
		logger:    log,
	}
}

// Resolve returns the brands found for ids. Unknown identifiers are simply
// absent from the result.
func (r *BrandResolver) Resolve(ctx context.Context, ids []int) (map[int]domain.Brand, error) {
	found := make(map[int]domain.Brand, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	seen := make(map[int]struct{}, len(ids))
	var misses []int
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if b, ok := r.fromCache(ctx, id); ok {
			found[id] = b
			continue
		}
		misses = append(misses, id)
	}

	for start := 0; start < len(misses); start += r.batchSize {
		end := min(start+r.batchSize, len(misses))
		brands, err := r.lookup.BrandsByIDs(ctx, misses[start:end])
		if err != nil {
			return nil, fmt.Errorf("resolve brands: %w", err)
		}
		for _, b := range brands {
			found[b.ID] = b
			r.toCache(ctx, b)
		}
	}

	return found, nil
}

func brandCacheKey(id int) string {
	return "brand:" + strconv.Itoa(id)
}

func (r *BrandResolver) fromCache(ctx context.Context, id int) (domain.Brand, bool) {
	if r.cache == nil {
		return domain.Brand{}, false
	}
	raw, err := r.cache.Get(ctx, brandCacheKey(id))
	if err != nil {
		return domain.Brand{}, false
	}
	var b domain.Brand
	if err := json.Unmarshal(raw, &b); err != nil {
		r.logger.Warn("discarding unreadable cached brand", map[string]interface{}{"brandId": id, "error": err.Error()})
		return domain.Brand{}, false
	}
	return b, true
}

// toCache stores a brand; failures only cost a later lookup
func (r *BrandResolver) toCache(ctx context.Context, b domain.Brand) {
	if r.cache == nil {
		return
	}
	raw, err := json.Marshal(b)
	if err == nil {
		err = r.cache.Set(ctx, brandCacheKey(b.ID), raw, r.cacheTTL)
	}
	if err != nil {
		r.logger.Warn("brand cache write failed", map[string]interface{}{"brandId": b.ID, "error": err.Error()})
	}
}
