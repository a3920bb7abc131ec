package extract

import (
	"github.com/georgiaharvey/club-reports/internal/model"
	"github.com/georgiaharvey/club-reports/internal/parse"
)

// CashierRecords pivots a cashier-style sheet into one record per date
// column. No validation happens here: a malformed date string simply
// fails to parse during aggregation and the record is dropped there.
func CashierRecords(g model.Grid) []model.CashierRecord {
	return parse.PivotLabeledColumns(g)
}
