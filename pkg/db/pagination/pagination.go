package pagination

// Pagination is the caller-supplied page window for list queries.
type Pagination struct {
	PageSize int32  `json:"page_size" form:"page_size"`
	Offset   int32  `json:"-"`
	OrderBy  string `json:"order_by" form:"order_by"`
}

// PageInfo describes the returned page.
type PageInfo struct {
	TotalCount int64 `json:"total_count"`
	PageSize   int32 `json:"page_size"`
	HasMore    bool  `json:"has_more"`
}

const defaultPageSize = 50

func (p Pagination) Limit() int {
	if p.PageSize <= 0 || p.PageSize > 200 {
		return defaultPageSize
	}
	return int(p.PageSize)
}
