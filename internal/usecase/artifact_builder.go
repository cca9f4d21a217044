package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/relatedbrands/generator/internal/domain"
	"github.com/relatedbrands/generator/internal/logger"
	"github.com/relatedbrands/generator/internal/metrics"
	"github.com/relatedbrands/generator/internal/usecase/ranking"
)

// ArtifactBuilderConfig holds the tunables of a build run
type ArtifactBuilderConfig struct {
	TopCategoryCount int
	MaxBrands        int
	RunID            string
}

// ArtifactBuilder computes the related-brand lists of every brand and writes the artifact
type ArtifactBuilder struct {
	catalog    domain.CatalogClient
	aggregator *CategoryAggregator
	ranker     ranking.Ranker
	resolver   *BrandResolver
	writer     domain.ArtifactWriter
	pacer      domain.Pacer
	logger     logger.Logger
	config     ArtifactBuilderConfig
}

// BuildResult summarises a finished run
type BuildResult struct {
	RunID         string
	Path          string
	BrandsSeen    int
	BrandsWritten int
	Duration      time.Duration
}

// NewArtifactBuilder wires the builder. A missing RunID is generated.
func NewArtifactBuilder(
	catalog domain.CatalogClient,
	aggregator *CategoryAggregator,
	ranker ranking.Ranker,
	resolver *BrandResolver,
	writer domain.ArtifactWriter,
	pacer domain.Pacer,
	log logger.Logger,
	config ArtifactBuilderConfig,
) *ArtifactBuilder {
	if config.RunID == "" {
		config.RunID = uuid.NewString()
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &ArtifactBuilder{
		catalog:    catalog,
		aggregator: aggregator,
		ranker:     ranker,
		resolver:   resolver,
		writer:     writer,
		pacer:      pacer,
		logger:     log.WithFields(map[string]interface{}{"runId": config.RunID}),
		config:     config,
	}
}

// Run builds the artifact and persists it. Nothing is written if any step fails.
func (b *ArtifactBuilder) Run(ctx context.Context) (*BuildResult, error) {
	start := time.Now()

	artifact, seen, err := b.Build(ctx)
	if err != nil {
		return nil, err
	}

	path, err := b.writer.Write(ctx, artifact)
	if err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}

	result := &BuildResult{
		RunID:         b.config.RunID,
		Path:          path,
		BrandsSeen:    seen,
		BrandsWritten: len(artifact.ByBrandID),
		Duration:      time.Since(start),
	}
	metrics.RunDuration.Set(result.Duration.Seconds())
	metrics.LastRunSuccess.SetToCurrentTime()

	b.logger.Info("artifact written", map[string]interface{}{
		"path":          result.Path,
		"brandsSeen":    result.BrandsSeen,
		"brandsWritten": result.BrandsWritten,
		"durationMs":    result.Duration.Milliseconds(),
	})
	return result, nil
}

// Build walks every brand in catalog order and accumulates the artifact in memory.
// It returns the artifact and the number of brands visited.
func (b *ArtifactBuilder) Build(ctx context.Context) (*domain.Artifact, int, error) {
	brands, err := b.catalog.ListBrands(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("list brands: %w", err)
	}
	b.logger.Info("building related brands", map[string]interface{}{"brands": len(brands)})

	artifact := domain.NewArtifact()
	for _, brand := range brands {
		if err := b.pacer.Wait(ctx); err != nil {
			return nil, 0, err
		}

		records, reason, err := b.RelatedBrands(ctx, brand)
		if err != nil {
			return nil, 0, fmt.Errorf("brand %d: %w", brand.ID, err)
		}
		metrics.BrandsProcessed.Inc()

		if reason != "" {
			metrics.BrandsSkipped.WithLabelValues(reason).Inc()
			b.logger.Debug("brand skipped", map[string]interface{}{"brandId": brand.ID, "reason": reason})
			continue
		}

		artifact.ByBrandID[strconv.Itoa(brand.ID)] = records
		metrics.BrandsWritten.Inc()
		b.logger.Debug("brand ranked", map[string]interface{}{"brandId": brand.ID, "related": len(records)})
	}

	return artifact, len(brands), nil
}

// RelatedBrands computes one brand's related list. When the brand must be
// omitted from the artifact the returned reason names why.
func (b *ArtifactBuilder) RelatedBrands(ctx context.Context, brand domain.Brand) ([]domain.RelatedBrandRecord, string, error) {
	products, err := b.catalog.ProductsByBrand(ctx, brand.ID)
	if err != nil {
		return nil, "", fmt.Errorf("fetch products: %w", err)
	}
	if len(products) == 0 {
		return nil, metrics.SkipNoProducts, nil
	}

	anchors := b.aggregator.TopCategories(products, b.config.TopCategoryCount)
	if len(anchors) == 0 {
		return nil, metrics.SkipNoAnchors, nil
	}

	ranked, err := b.ranker.Rank(ctx, domain.AnchorIDs(anchors), brand.ID)
	if err != nil {
		return nil, "", err
	}
	if len(ranked) == 0 {
		return nil, metrics.SkipNoCandidates, nil
	}

	top := ranked
	if len(top) > b.config.MaxBrands {
		top = top[:b.config.MaxBrands]
	}
	ids := make([]int, len(top))
	for i, c := range top {
		ids[i] = c.BrandID
	}

	resolved, err := b.resolver.Resolve(ctx, ids)
	if err != nil {
		return nil, "", err
	}

	records := make([]domain.RelatedBrandRecord, 0, len(top))
	for _, c := range top {
		rb, ok := resolved[c.BrandID]
		if !ok {
			continue
		}
		records = append(records, domain.NewRelatedBrandRecord(rb))
		if len(records) == b.config.MaxBrands {
			break
		}
	}
	if len(records) == 0 {
		return nil, metrics.SkipNoResolved, nil
	}
	return records, "", nil
}
