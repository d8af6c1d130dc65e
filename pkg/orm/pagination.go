package orm

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Pagination is the metadata attached to every paged listing.
// TotalPages is always ceil(Total / Limit); an empty result has zero pages.
type Pagination struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// Normalize applies the defaults for missing or non-positive page/limit.
// There is no upper bound on limit at this layer.
func Normalize(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	return page, limit
}

// Offset is the row offset of page for the given limit.
func Offset(page, limit int) int {
	page, limit = Normalize(page, limit)
	return (page - 1) * limit
}

func NewPagination(total int64, page, limit int) Pagination {
	page, limit = Normalize(page, limit)
	pages := int((total + int64(limit) - 1) / int64(limit))
	if total <= 0 {
		total, pages = 0, 0
	}
	return Pagination{Total: total, Page: page, Limit: limit, TotalPages: pages}
}
