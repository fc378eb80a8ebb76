package types

// Filter represents query parameters for filtering, sorting and pagination.
// Field names in Sort and Filter are API names; repositories map them through an allow-list.
type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"with_pagination"`
}

// http://localhost:8080/api/equipment?search=tread&sort=name&order=asc&filter[status]=Available&page=2&limit=20
