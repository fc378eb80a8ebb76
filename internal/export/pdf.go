package export

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 10.0
	pdfRowHeight  = 7.0
	pdfFontSize   = 8.0
	pdfMaxWeight  = 40
	pdfMinWeight  = 6
	pdfFooterSize = 10.0
)

// RenderPDF lays the report out on landscape A4 pages, repeating the header row after
// each page break.
func RenderPDF(w io.Writer, doc Document) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	generated := doc.GeneratedAt.Format("Jan 02, 2006 15:04")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-pdfFooterSize)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.SetTextColor(110, 110, 110)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("Generated %s", generated)), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	pageWidth, pageHeight := pdf.GetPageSize()
	usable := pageWidth - 2*pdfMargin
	bottom := pageHeight - pdfMargin - pdfFooterSize

	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 10, tr(doc.Title), "", 1, "L", false, 0, "")
	if doc.Subtitle != "" {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetTextColor(90, 90, 90)
		pdf.CellFormat(0, 6, tr(doc.Subtitle), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	if len(doc.Columns) == 0 {
		return pdf.Output(w)
	}

	cells := doc.Cells()
	widths := pdfColumnWidths(doc.Columns, cells, usable)

	drawHeader := func() {
		pdf.SetFont("Helvetica", "B", pdfFontSize)
		pdf.SetFillColor(68, 114, 196)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetDrawColor(0, 0, 0)
		for i, col := range doc.Columns {
			pdf.CellFormat(widths[i], pdfRowHeight, fitText(pdf, tr, col.Label, widths[i]), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", pdfFontSize)
		pdf.SetTextColor(0, 0, 0)
	}

	drawHeader()
	if len(cells) == 0 {
		pdf.CellFormat(usable, pdfRowHeight, "No data for the selected period", "1", 1, "C", false, 0, "")
	}
	for r, row := range cells {
		if pdf.GetY()+pdfRowHeight > bottom {
			pdf.AddPage()
			drawHeader()
		}
		fill := r%2 == 1
		pdf.SetFillColor(242, 242, 242)
		for i, value := range row {
			pdf.CellFormat(widths[i], pdfRowHeight, fitText(pdf, tr, value, widths[i]), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if pdf.Err() {
		return fmt.Errorf("render pdf: %w", pdf.Error())
	}
	return pdf.Output(w)
}

// pdfColumnWidths splits usable proportionally to each column's longest value, with the
// weight clamped so one long text column cannot starve the rest.
func pdfColumnWidths(columns []Column, cells [][]string, usable float64) []float64 {
	weights := make([]int, len(columns))
	for i, c := range columns {
		weights[i] = utf8.RuneCountInString(c.Label)
	}
	for _, row := range cells {
		for i, v := range row {
			if n := utf8.RuneCountInString(v); n > weights[i] {
				weights[i] = n
			}
		}
	}

	total := 0
	for i, w := range weights {
		if w < pdfMinWeight {
			w = pdfMinWeight
		}
		if w > pdfMaxWeight {
			w = pdfMaxWeight
		}
		weights[i] = w
		total += w
	}

	widths := make([]float64, len(columns))
	for i, w := range weights {
		widths[i] = usable * float64(w) / float64(total)
	}
	return widths
}

// fitText trims s with an ellipsis until it fits inside width minus cell padding, and
// returns it translated for the core fonts. The cut point is binary searched because
// string width grows monotonically with the prefix length.
func fitText(pdf *fpdf.Fpdf, tr func(string) string, s string, width float64) string {
	limit := width - 2*pdf.GetCellMargin()
	if pdf.GetStringWidth(tr(s)) <= limit {
		return tr(s)
	}
	runes := []rune(s)
	fits := func(n int) bool {
		return pdf.GetStringWidth(tr(string(runes[:n])+"...")) <= limit
	}
	if !fits(0) {
		return ""
	}
	lo, hi := 0, len(runes)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if fits(mid) {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return tr(string(runes[:lo]) + "...")
}
