package bigcommerce

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// Field projections sent as include_fields
const (
	BrandFields           = "id,name,custom_url,image_url"
	BrandProductFields    = "id,categories,brand_id"
	CategoryProductFields = "id,brand_id,categories"
)

// Catalog endpoints relative to the store v3 root
const (
	brandsPath          = "/catalog/brands"
	productsPath        = "/catalog/products"
	widgetTemplatesPath = "/content/widget-templates"
	widgetsPath         = "/content/widgets"
)

// query is an ordered set of catalog query parameters
type query map[string]string

// encode renders the query with sorted keys. Filter operators such as
// "categories:in" and comma-separated id lists are kept readable.
func (q query) encode() string {
	keys := make([]string, 0, len(q))
	for k := range q {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(escape(k))
		b.WriteByte('=')
		b.WriteString(escape(q[k]))
	}
	return b.String()
}

func escape(s string) string {
	s = url.QueryEscape(s)
	s = strings.ReplaceAll(s, "%3A", ":")
	return strings.ReplaceAll(s, "%2C", ",")
}

// joinIDs renders identifiers as a comma-separated filter value
func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
