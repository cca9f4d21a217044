package bigcommerce

import (
	"context"

	"github.com/relatedbrands/generator/internal/domain"
)

// FetchPage retrieves one page of a list endpoint. Pages are 1-based.
type FetchPage[T any] func(ctx context.Context, page int) ([]T, *domain.Pagination, error)

// Pager walks a paginated list lazily, one page per Next call.
// It stops once the current page reaches total_pages or the response
// carries no pagination metadata. Reset rewinds it to the first page.
type Pager[T any] struct {
	fetch FetchPage[T]
	page  int
	done  bool
}

// NewPager creates a pager positioned on the first page
func NewPager[T any](fetch FetchPage[T]) *Pager[T] {
	return &Pager[T]{fetch: fetch, page: 1}
}

// Done reports whether the last page has been consumed
func (p *Pager[T]) Done() bool {
	return p.done
}

// Page returns the page the next call to Next will fetch
func (p *Pager[T]) Page() int {
	return p.page
}

// Next fetches the current page and advances. It returns nil once Done.
func (p *Pager[T]) Next(ctx context.Context) ([]T, error) {
	if p.done {
		return nil, nil
	}

	items, meta, err := p.fetch(ctx, p.page)
	if err != nil {
		return nil, err
	}

	if meta == nil || p.page >= meta.TotalPages {
		p.done = true
	} else {
		p.page++
	}
	return items, nil
}

// Reset rewinds the pager so the sequence can be walked again
func (p *Pager[T]) Reset() {
	p.page = 1
	p.done = false
}

// All drains the remaining pages into one slice
func (p *Pager[T]) All(ctx context.Context) ([]T, error) {
	var results []T
	for !p.Done() {
		items, err := p.Next(ctx)
		if err != nil {
			return nil, err
		}
		results = append(results, items...)
	}
	return results, nil
}
