package types

// Pagination is the list metadata returned next to every paginated payload.
type Pagination struct {
	Total   uint64 `json:"total"`
	Pages   uint64 `json:"pages"`
	Current int    `json:"current"`
	Limit   int    `json:"limit"`
}

func NewPagination(total uint64, page, limit int) Pagination {
	p := Pagination{Total: total, Current: page, Limit: limit}
	if limit > 0 {
		p.Pages = (total + uint64(limit) - 1) / uint64(limit)
	}
	return p
}
