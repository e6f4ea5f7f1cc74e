package extract

import (
	"context"
	"strings"

	"github.com/xuri/excelize/v2"
)

// readXLSX reads the first rows of the first sheet. Spreadsheets carry no title.
func readXLSX(ctx context.Context, doc document, _ int64, limits Limits) (Metadata, error) {
	book, err := excelize.OpenReader(doc)
	if err != nil {
		return Metadata{}, err
	}
	defer book.Close()

	sheets := book.GetSheetList()
	if len(sheets) == 0 {
		return Metadata{}, nil
	}
	rows, err := book.Rows(sheets[0])
	if err != nil {
		return Metadata{}, err
	}
	defer rows.Close()

	lines := make([]string, 0, limits.XLSXMaxRows)
	for read := 0; rows.Next(); read++ {
		if limits.XLSXMaxRows > 0 && read >= limits.XLSXMaxRows {
			break
		}
		if err := ctx.Err(); err != nil {
			return Metadata{}, err
		}
		cells, err := rows.Columns()
		if err != nil {
			return Metadata{}, err
		}
		values := make([]string, 0, len(cells))
		for _, cell := range cells {
			if cell = strings.TrimSpace(cell); cell != "" {
				values = append(values, cell)
			}
		}
		if len(values) > 0 {
			lines = append(lines, strings.Join(values, " "))
		}
	}
	if err := rows.Error(); err != nil {
		return Metadata{}, err
	}
	return Metadata{SampleText: joinLines(lines)}, nil
}
