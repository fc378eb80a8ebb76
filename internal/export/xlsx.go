package export

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	sheetName = "Report"

	minColWidth = 8
	maxColWidth = 60
)

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

type xlsxStyles struct {
	title, subtitle, header, cell int
}

func newXLSXStyles(f *excelize.File) (xlsxStyles, error) {
	var s xlsxStyles
	var err error

	if s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	}); err != nil {
		return s, err
	}
	if s.subtitle, err = f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Italic: true, Color: "595959"},
	}); err != nil {
		return s, err
	}
	if s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Border:    thinBorder,
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	}); err != nil {
		return s, err
	}
	if s.cell, err = f.NewStyle(&excelize.Style{
		Border:    thinBorder,
		Alignment: &excelize.Alignment{Vertical: "top"},
	}); err != nil {
		return s, err
	}
	return s, nil
}

// RenderXLSX builds the workbook in memory and writes it once complete.
func RenderXLSX(w io.Writer, doc Document) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	styles, err := newXLSXStyles(f)
	if err != nil {
		return fmt.Errorf("create styles: %w", err)
	}

	colCount := len(doc.Columns)
	if colCount == 0 {
		colCount = 1
	}
	lastCol, err := excelize.ColumnNumberToName(colCount)
	if err != nil {
		return err
	}

	row := 1
	if err := f.SetCellValue(sheetName, "A1", doc.Title); err != nil {
		return err
	}
	if colCount > 1 {
		if err := f.MergeCell(sheetName, "A1", lastCol+"1"); err != nil {
			return fmt.Errorf("merge title: %w", err)
		}
	}
	if err := f.SetCellStyle(sheetName, "A1", lastCol+"1", styles.title); err != nil {
		return err
	}
	if err := f.SetRowHeight(sheetName, 1, 22); err != nil {
		return err
	}

	if doc.Subtitle != "" {
		row++
		cell := fmt.Sprintf("A%d", row)
		if err := f.SetCellValue(sheetName, cell, doc.Subtitle); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, cell, cell, styles.subtitle); err != nil {
			return err
		}
	}

	row++
	headerRow := row
	widths := make([]int, len(doc.Columns))
	for i, col := range doc.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		if err := f.SetCellValue(sheetName, cell, col.Label); err != nil {
			return fmt.Errorf("set header cell %s: %w", cell, err)
		}
		widths[i] = utf8.RuneCountInString(col.Label)
	}
	if len(doc.Columns) > 0 {
		if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", headerRow), fmt.Sprintf("%s%d", lastCol, headerRow), styles.header); err != nil {
			return err
		}
	}

	for _, record := range doc.Rows {
		row++
		cells := doc.RowCells(record)
		values := make([]interface{}, len(cells))
		for i, v := range cells {
			values[i] = v
			if n := utf8.RuneCountInString(v); n > widths[i] {
				widths[i] = n
			}
		}
		start := fmt.Sprintf("A%d", row)
		if err := f.SetSheetRow(sheetName, start, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}
	}
	if len(doc.Rows) > 0 && len(doc.Columns) > 0 {
		if err := f.SetCellStyle(sheetName, fmt.Sprintf("A%d", headerRow+1), fmt.Sprintf("%s%d", lastCol, row), styles.cell); err != nil {
			return err
		}
	}

	for i, width := range widths {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheetName, name, name, ColumnWidth(width)); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}

	if err := f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	_, err = f.WriteTo(w)
	return err
}

// ColumnWidth pads the longest value and clamps it to a readable range.
func ColumnWidth(longest int) float64 {
	w := longest + 2
	if w < minColWidth {
		w = minColWidth
	}
	if w > maxColWidth {
		w = maxColWidth
	}
	return float64(w)
}
