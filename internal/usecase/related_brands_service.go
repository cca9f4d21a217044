package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/relatedbrands/generator/internal/domain"
)

// RelatedBrandsService answers per-brand lookups against the published artifact
type RelatedBrandsService struct {
	reader domain.ArtifactReader
}

// NewRelatedBrandsService creates a lookup service over reader
func NewRelatedBrandsService(reader domain.ArtifactReader) *RelatedBrandsService {
	return &RelatedBrandsService{reader: reader}
}

// RelatedBrands returns the related list of a brand. A brand missing from the
// artifact yields ErrBrandNotFound.
func (s *RelatedBrandsService) RelatedBrands(ctx context.Context, brandID int) ([]domain.RelatedBrandRecord, error) {
	a, err := s.reader.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("load artifact: %w", err)
	}
	records, ok := a.ByBrandID[strconv.Itoa(brandID)]
	if !ok {
		return nil, domain.ErrBrandNotFound
	}
	return records, nil
}
