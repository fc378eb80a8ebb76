package export

import (
	"encoding/csv"
	"fmt"
	"io"
)

// RenderCSV writes a label header followed by one line per row, flushing as it goes.
func RenderCSV(w io.Writer, doc Document) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Labels(doc.Columns)); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, row := range doc.Rows {
		if err := cw.Write(doc.RowCells(row)); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
		if i%500 == 499 {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return fmt.Errorf("flush csv: %w", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}
