package dto

type ReportColumnDTO struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// ReportPreviewDTO is the JSON rendition of a report: formatted cell values in column order.
type ReportPreviewDTO struct {
	Kind     string            `json:"kind"`
	Title    string            `json:"title"`
	Subtitle string            `json:"subtitle,omitempty"`
	Columns  []ReportColumnDTO `json:"columns"`
	Rows     [][]string        `json:"rows"`
	Total    int               `json:"total"`
}
