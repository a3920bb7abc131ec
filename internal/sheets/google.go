package sheets

import (
	"context"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/georgiaharvey/club-reports/internal/model"
	"github.com/georgiaharvey/club-reports/pkg/gsheets"
)

// fetchConcurrency bounds parallel per-sheet value requests.
const fetchConcurrency = 4

// GoogleSource fetches the workbook from the Google Sheets API.
type GoogleSource struct {
	client gsheets.Client
}

// NewGoogleSource wraps a Sheets client as a Source.
func NewGoogleSource(client gsheets.Client) *GoogleSource {
	return &GoogleSource{client: client}
}

// FetchAll lists the spreadsheet's sheet titles, then fetches every
// sheet's values concurrently. It returns only once all fetches have
// completed, so extractors never see a partial workbook.
func (s *GoogleSource) FetchAll(ctx context.Context) (model.SheetSet, error) {
	titles, err := s.client.SheetTitles(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "sheets: list titles")
	}

	set := make(model.SheetSet, len(titles))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)

	for _, title := range titles {
		title := title
		g.Go(func() error {
			values, err := s.client.Values(gctx, title)
			if err != nil {
				return eris.Wrapf(err, "sheets: fetch %q", title)
			}
			grid := make(model.Grid, len(values))
			for i, row := range values {
				grid[i] = row
			}

			mu.Lock()
			set[title] = grid
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	zap.L().Debug("workbook fetched", zap.Int("sheets", len(set)))
	return set, nil
}
