package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "equipment-dashboard/pkg/errors"
)

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
)

// ParseFormat is case-insensitive and accepts "excel" for xlsx.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "xlsx", "excel":
		return FormatXLSX, nil
	case "pdf":
		return FormatPDF, nil
	case "csv":
		return FormatCSV, nil
	default:
		return "", &apperrors.UnsupportedFormatError{Format: raw}
	}
}

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatPDF:
		return "application/pdf"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	default:
		return "application/octet-stream"
	}
}

func (f Format) Extension() string { return string(f) }

// Streams reports whether the format is written row by row straight to the response.
func (f Format) Streams() bool { return f == FormatCSV }

// Filename follows {kind}_{YYYY-MM-DD}.{ext}.
func Filename(kind string, f Format, now time.Time) string {
	return fmt.Sprintf("%s_%s.%s", kind, now.Format("2006-01-02"), f.Extension())
}

// Document is a renderer-neutral report: ordered columns plus field-name keyed rows.
type Document struct {
	Title       string
	Subtitle    string
	Columns     []Column
	Rows        []map[string]any
	GeneratedAt time.Time
}

// Cells returns every row formatted in column order.
func (d Document) Cells() [][]string {
	out := make([][]string, len(d.Rows))
	for i, row := range d.Rows {
		out[i] = d.RowCells(row)
	}
	return out
}

func (d Document) RowCells(row map[string]any) []string {
	cells := make([]string, len(d.Columns))
	for j, col := range d.Columns {
		cells[j] = col.Format(row)
	}
	return cells
}

// Render writes doc to w in format f.
func Render(w io.Writer, doc Document, f Format) error {
	if doc.GeneratedAt.IsZero() {
		doc.GeneratedAt = time.Now()
	}
	switch f {
	case FormatCSV:
		return RenderCSV(w, doc)
	case FormatXLSX:
		return RenderXLSX(w, doc)
	case FormatPDF:
		return RenderPDF(w, doc)
	default:
		return &apperrors.UnsupportedFormatError{Format: string(f)}
	}
}
