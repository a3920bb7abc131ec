package parse

import (
	"fmt"
	"strings"

	"github.com/georgiaharvey/club-reports/internal/model"
)

// RowsToRecords converts a row-oriented grid into records using row 0 as
// the header row. Blank headers are named "col{c}". Rows where every cell
// is empty are skipped entirely; short rows are padded with "".
// Always returns a (possibly empty) slice, never an error.
func RowsToRecords(g model.Grid) []model.NormalizedRecord {
	if len(g) == 0 {
		return nil
	}

	headers := make([]string, len(g[0]))
	for c, h := range g[0] {
		headers[c] = strings.TrimSpace(h)
	}

	var out []model.NormalizedRecord
	for r := 1; r < len(g); r++ {
		if g.IsBlankRow(r) {
			continue
		}
		rec := make(model.NormalizedRecord, len(headers))
		for c, h := range headers {
			key := h
			if key == "" {
				key = fmt.Sprintf("col%d", c)
			}
			rec[key] = g.Cell(r, c)
		}
		out = append(out, rec)
	}
	return out
}

// PivotLabeledColumns converts a column-oriented grid (column 0 holds row
// labels like "Date:" or "Total Sales:", columns 1..N hold one observation
// per date) into one record per date column.
//
// The date row is the first row whose trimmed label contains "date",
// case-insensitively; without one the sheet is unusable and the result is
// empty. Output follows source column order, not date order — downstream
// aggregation re-sorts by parsed date.
func PivotLabeledColumns(g model.Grid) []model.NormalizedRecord {
	if len(g) == 0 {
		return nil
	}

	dateRow := -1
	for r := range g {
		if strings.Contains(strings.ToLower(strings.TrimSpace(g.Cell(r, 0))), "date") {
			dateRow = r
			break
		}
	}
	if dateRow == -1 {
		return nil
	}

	var out []model.NormalizedRecord
	for c := 1; c < len(g[dateRow]); c++ {
		date := strings.TrimSpace(g.Cell(dateRow, c))
		if date == "" {
			continue
		}
		rec := model.NormalizedRecord{"Date": date}
		for r := range g {
			label := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(g.Cell(r, 0)), ":"))
			if label == "" {
				continue
			}
			rec[label] = g.Cell(r, c)
		}
		out = append(out, rec)
	}
	return out
}
