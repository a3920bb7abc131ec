package sheets

import (
	"context"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/georgiaharvey/club-reports/internal/model"
)

// Workbook reads the reporting workbook from a local XLSX file. Used for
// offline runs against an exported copy of the spreadsheet.
type Workbook struct {
	path string
}

// NewWorkbook creates a workbook source for the given file path.
func NewWorkbook(path string) *Workbook {
	return &Workbook{path: path}
}

// FetchAll opens the file and returns every sheet as a grid of
// stringified cells.
func (w *Workbook) FetchAll(ctx context.Context) (model.SheetSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, eris.Wrap(err, "workbook: context cancelled")
	}

	f, err := xlsx.OpenFile(w.path)
	if err != nil {
		return nil, eris.Wrap(err, "workbook: open file")
	}

	set := make(model.SheetSet, len(f.Sheets))
	for _, sheet := range f.Sheets {
		grid := make(model.Grid, len(sheet.Rows))
		for i, row := range sheet.Rows {
			cells := make([]string, len(row.Cells))
			for j, cell := range row.Cells {
				cells[j] = cell.String()
			}
			grid[i] = cells
		}
		set[sheet.Name] = grid
	}
	return set, nil
}
