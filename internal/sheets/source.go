// Package sheets abstracts where the reporting workbook comes from: the
// Google Sheets API in production, a local XLSX file offline and in tests.
package sheets

import (
	"context"

	"github.com/georgiaharvey/club-reports/internal/model"
)

// Source provides the full workbook for one pipeline run. FetchAll must
// return every sheet before any extraction starts; implementations may
// fetch individual sheets concurrently.
type Source interface {
	FetchAll(ctx context.Context) (model.SheetSet, error)
}
