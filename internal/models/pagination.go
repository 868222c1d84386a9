package models

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type PaginatedResponse struct {
	Data     any `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// NormalizePage falls back to the first page and the default size for
// out-of-range values.
func NormalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}

	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}

	return page, size
}
