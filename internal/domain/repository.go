package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// ProductSource is the part of the catalog the ranking strategies query
type ProductSource interface {
	// ProductsInCategories returns every product assigned to any of the given categories
	ProductsInCategories(ctx context.Context, categoryIDs []int) ([]Product, error)
	// CategoryProductCount returns the catalog-wide product total of a category
	CategoryProductCount(ctx context.Context, categoryID int) (int, error)
}

// BrandLookup fetches brands by identifier
type BrandLookup interface {
	BrandsByIDs(ctx context.Context, ids []int) ([]Brand, error)
}

// CatalogClient defines the interface for interacting with the catalog API
type CatalogClient interface {
	ProductSource
	BrandLookup
	ListBrands(ctx context.Context) ([]Brand, error)
	ProductsByBrand(ctx context.Context, brandID int) ([]Product, error)
}

// WidgetClient registers storefront widgets
type WidgetClient interface {
	CreateWidgetTemplate(ctx context.Context, req *WidgetTemplateRequest) (*WidgetTemplate, error)
	CreateWidget(ctx context.Context, req *WidgetRequest) (*Widget, error)
}

// ArtifactWriter persists the finished artifact
type ArtifactWriter interface {
	Write(ctx context.Context, artifact *Artifact) (string, error)
}

// ArtifactReader loads the most recently published artifact
type ArtifactReader interface {
	Read(ctx context.Context) (*Artifact, error)
}

// Pacer gates loop iterations against the upstream rate budget
type Pacer interface {
	Wait(ctx context.Context) error
}
