package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/relatedbrands/generator/internal/domain"
)

// MockCacheRepository is a mock implementation of domain.CacheRepository
type MockCacheRepository struct {
	data     map[string][]byte
	getError error
	setError error
	gets     int
	sets     int
}

func NewMockCacheRepository() *MockCacheRepository {
	return &MockCacheRepository{
		data: make(map[string][]byte),
	}
}

func (m *MockCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	m.gets++
	if m.getError != nil {
		return nil, m.getError
	}
	if value, ok := m.data[key]; ok {
		return value, nil
	}
	return nil, domain.ErrCacheMiss
}

func (m *MockCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.sets++
	if m.setError != nil {
		return m.setError
	}
	m.data[key] = value
	return nil
}

func (m *MockCacheRepository) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *MockCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.data[key]
	return ok, nil
}

// MockCatalogClient is an in-memory catalog implementing domain.CatalogClient
type MockCatalogClient struct {
	brands    []domain.Brand
	products  []domain.Product
	unknown   map[int]bool // brands hidden from id lookups
	listError error
	prodError error
	lookupErr error

	brandBatches [][]int
}

func (m *MockCatalogClient) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	if m.listError != nil {
		return nil, m.listError
	}
	return m.brands, nil
}

func (m *MockCatalogClient) ProductsByBrand(ctx context.Context, brandID int) ([]domain.Product, error) {
	if m.prodError != nil {
		return nil, m.prodError
	}
	var out []domain.Product
	for _, p := range m.products {
		if p.BrandID == brandID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *MockCatalogClient) ProductsInCategories(ctx context.Context, categoryIDs []int) ([]domain.Product, error) {
	want := make(map[int]bool, len(categoryIDs))
	for _, id := range categoryIDs {
		want[id] = true
	}
	var out []domain.Product
	for _, p := range m.products {
		for _, c := range p.Categories {
			if want[c] {
				out = append(out, p)
				break
			}
		}
	}
	return out, nil
}

func (m *MockCatalogClient) CategoryProductCount(ctx context.Context, categoryID int) (int, error) {
	products, _ := m.ProductsInCategories(ctx, []int{categoryID})
	return len(products), nil
}

func (m *MockCatalogClient) BrandsByIDs(ctx context.Context, ids []int) ([]domain.Brand, error) {
	m.brandBatches = append(m.brandBatches, append([]int(nil), ids...))
	if m.lookupErr != nil {
		return nil, m.lookupErr
	}
	want := make(map[int]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []domain.Brand
	for _, b := range m.brands {
		if want[b.ID] && !m.unknown[b.ID] {
			out = append(out, b)
		}
	}
	return out, nil
}

// MockPacer counts waits without sleeping
type MockPacer struct {
	mu    sync.Mutex
	waits int
	err   error
}

func (p *MockPacer) Wait(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.waits++
	return p.err
}

// MockArtifactWriter keeps written artifacts in memory
type MockArtifactWriter struct {
	written []*domain.Artifact
	err     error
}

func (w *MockArtifactWriter) Write(ctx context.Context, a *domain.Artifact) (string, error) {
	if w.err != nil {
		return "", w.err
	}
	w.written = append(w.written, a)
	return "mem://related-brands.json", nil
}
