package bigcommerce

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/relatedbrands/generator/internal/domain"
	"github.com/relatedbrands/generator/internal/logger"
	"github.com/relatedbrands/generator/internal/metrics"
	"golang.org/x/time/rate"
)

// DefaultPageLimit is the largest page size the catalog API accepts
const DefaultPageLimit = 250

// Client handles communication with the BigCommerce v3 API of one store
type Client struct {
	httpClient  *http.Client
	baseURL     string
	accessToken string
	pageLimit   int
	rateLimiter *rate.Limiter
	logger      logger.Logger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithRateLimit limits outgoing requests. A non-positive rps means unlimited.
func WithRateLimit(rps float64, burst int) ClientOption {
	return func(c *Client) {
		if rps <= 0 {
			c.rateLimiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		if burst < 1 {
			burst = 1
		}
		c.rateLimiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithPageLimit sets the page size used by list requests
func WithPageLimit(limit int) ClientOption {
	return func(c *Client) {
		if limit > 0 {
			c.pageLimit = limit
		}
	}
}

// WithLogger attaches a logger for request tracing
func WithLogger(l logger.Logger) ClientOption {
	return func(c *Client) {
		c.logger = l.WithFields(map[string]interface{}{"component": "bigcommerce"})
	}
}

// NewClient creates a client for the store API rooted at baseURL
// (https://api.bigcommerce.com/stores/<hash>/v3)
func NewClient(baseURL, accessToken string, opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL:     baseURL,
		accessToken: accessToken,
		pageLimit:   DefaultPageLimit,
		rateLimiter: rate.NewLimiter(rate.Inf, 0),
		logger:      logger.NewNoOpLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// doRequest executes one API call and decodes a successful response into out
func (c *Client) doRequest(ctx context.Context, method, path string, params query, payload, out interface{}) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter error: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.encode()
	}

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Auth-Token", c.accessToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("catalog request", map[string]interface{}{"method": method, "url": reqURL})

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.UpstreamRequestDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.UpstreamRequests.WithLabelValues(path, "error").Inc()
		return fmt.Errorf("%w: %s %s: %v", domain.ErrUpstreamFailure, method, reqURL, err)
	}
	defer resp.Body.Close()

	metrics.UpstreamRequests.WithLabelValues(path, strconv.Itoa(resp.StatusCode)).Inc()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %v", domain.ErrUpstreamFailure, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &domain.UpstreamError{
			Method:     method,
			URL:        reqURL,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Paginate returns a lazy pager over a list endpoint. params must not set page.
func Paginate[T any](c *Client, path string, params query) *Pager[T] {
	return NewPager(func(ctx context.Context, page int) ([]T, *domain.Pagination, error) {
		q := query{
			"limit": strconv.Itoa(c.pageLimit),
			"page":  strconv.Itoa(page),
		}
		for k, v := range params {
			q[k] = v
		}

		var resp domain.ListResponse[T]
		if err := c.doRequest(ctx, http.MethodGet, path, q, nil, &resp); err != nil {
			return nil, nil, err
		}
		return resp.Data, resp.Meta.Pagination, nil
	})
}

// ListBrands returns every brand of the store in API order
func (c *Client) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	return Paginate[domain.Brand](c, brandsPath, query{"include_fields": BrandFields}).All(ctx)
}

// ProductsByBrand returns every product assigned to a brand
func (c *Client) ProductsByBrand(ctx context.Context, brandID int) ([]domain.Product, error) {
	return Paginate[domain.Product](c, productsPath, query{
		"brand_id":       strconv.Itoa(brandID),
		"include_fields": BrandProductFields,
	}).All(ctx)
}

// ProductsInCategories returns every product in any of the given categories.
// No request is made for an empty category list.
func (c *Client) ProductsInCategories(ctx context.Context, categoryIDs []int) ([]domain.Product, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	return Paginate[domain.Product](c, productsPath, query{
		"categories:in":  joinIDs(categoryIDs),
		"include_fields": CategoryProductFields,
	}).All(ctx)
}

// CategoryProductCount reads the catalog-wide product total of a category from
// the pagination metadata of a single-item page. It returns 0 when the
// response carries no metadata.
func (c *Client) CategoryProductCount(ctx context.Context, categoryID int) (int, error) {
	var resp domain.ListResponse[domain.Product]
	q := query{
		"categories:in": strconv.Itoa(categoryID),
		"limit":         "1",
		"page":          "1",
	}
	if err := c.doRequest(ctx, http.MethodGet, productsPath, q, nil, &resp); err != nil {
		return 0, err
	}
	if resp.Meta.Pagination == nil {
		return 0, nil
	}
	return resp.Meta.Pagination.Total, nil
}

// BrandsByIDs looks up brands by identifier in a single request.
// Callers are expected to keep batches within the API's id:in limit.
func (c *Client) BrandsByIDs(ctx context.Context, ids []int) ([]domain.Brand, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	limit := min(len(ids), DefaultPageLimit)

	var resp domain.ListResponse[domain.Brand]
	q := query{
		"id:in":          joinIDs(ids),
		"limit":          strconv.Itoa(limit),
		"include_fields": BrandFields,
	}
	if err := c.doRequest(ctx, http.MethodGet, brandsPath, q, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

type itemResponse[T any] struct {
	Data T `json:"data"`
}

// CreateWidgetTemplate registers a widget template
func (c *Client) CreateWidgetTemplate(ctx context.Context, req *domain.WidgetTemplateRequest) (*domain.WidgetTemplate, error) {
	var resp itemResponse[domain.WidgetTemplate]
	if err := c.doRequest(ctx, http.MethodPost, widgetTemplatesPath, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// CreateWidget creates a widget instance from a registered template
func (c *Client) CreateWidget(ctx context.Context, req *domain.WidgetRequest) (*domain.Widget, error) {
	var resp itemResponse[domain.Widget]
	if err := c.doRequest(ctx, http.MethodPost, widgetsPath, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
