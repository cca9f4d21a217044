package domain

// Pagination mirrors the meta.pagination block of catalog list responses
type Pagination struct {
	Total       int `json:"total"`
	Count       int `json:"count"`
	PerPage     int `json:"per_page"`
	CurrentPage int `json:"current_page"`
	TotalPages  int `json:"total_pages"`
}

// ListMeta is the meta block of a catalog list response
type ListMeta struct {
	Pagination *Pagination `json:"pagination,omitempty"`
}

// ListResponse is the envelope every catalog list endpoint returns
type ListResponse[T any] struct {
	Data []T      `json:"data"`
	Meta ListMeta `json:"meta"`
}
