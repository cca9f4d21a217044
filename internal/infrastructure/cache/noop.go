package cache

import (
	"context"
	"time"

	"github.com/relatedbrands/generator/internal/domain"
)

// NoopCache never stores anything
type NoopCache struct{}

func (NoopCache) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, domain.ErrCacheMiss
}

func (NoopCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (NoopCache) Delete(ctx context.Context, key string) error {
	return nil
}

func (NoopCache) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}
