// Package report ties the pipeline together: fetch the workbook, run the
// extractors, aggregate, and assemble one Report. Every stage is a pure
// fold over already-fetched data; one call handles one request and
// nothing persists between calls.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/georgiaharvey/club-reports/internal/aggregate"
	"github.com/georgiaharvey/club-reports/internal/extract"
	"github.com/georgiaharvey/club-reports/internal/model"
	"github.com/georgiaharvey/club-reports/internal/sheets"
)

// Options configures one pipeline run. Zero values fall back to the
// defaults below.
type Options struct {
	// Granularity of the sales series. Defaults to biweekly, the current
	// reporting cadence; monthly remains selectable.
	Granularity model.Granularity

	// TableStrategy selects how table sales are attributed to dates.
	// Defaults to the prose scan.
	TableStrategy model.TableStrategy

	// Year completes sheet dates that carry no year ("8/1"). Injected so
	// runs are deterministic; defaults to the current wall-clock year.
	Year int

	// SheetRules dispatches sheet titles to extractors.
	SheetRules []extract.Rule

	// PromoterRules drives guest-list name canonicalization.
	PromoterRules *aggregate.PromoterRules

	// Diagnostics attaches per-stage skip counts to the Report. The
	// default output shape is unchanged when false.
	Diagnostics bool
}

func (o Options) withDefaults() Options {
	if o.Granularity == "" {
		o.Granularity = model.GranularityBiweekly
	}
	if o.TableStrategy == "" {
		o.TableStrategy = model.TableStrategyProse
	}
	if o.Year == 0 {
		o.Year = time.Now().UTC().Year()
	}
	if o.SheetRules == nil {
		o.SheetRules = extract.DefaultRules
	}
	if o.PromoterRules == nil {
		rules := aggregate.DefaultPromoterRules()
		o.PromoterRules = &rules
	}
	return o
}

// Build fetches the workbook from the source and runs the full pipeline.
// Missing sheets and malformed cells degrade to empty sections, never to
// an error; only the fetch itself can fail.
func Build(ctx context.Context, src sheets.Source, opts Options) (*model.Report, error) {
	opts = opts.withDefaults()

	set, err := src.FetchAll(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "report: fetch workbook")
	}

	return FromSheets(set, opts), nil
}

// FromSheets runs the pipeline over an already-fetched workbook.
func FromSheets(set model.SheetSet, opts Options) *model.Report {
	opts = opts.withDefaults()

	var diag model.Diagnostics

	cashierGrid := firstMatch(set, opts.SheetRules, extract.KindCashier)
	tableGrid := firstMatch(set, opts.SheetRules, extract.KindTables)

	cashierRecords := extract.CashierRecords(cashierGrid)
	cashierSales, cashierDropped := aggregate.CashierSales(cashierRecords, opts.Granularity, opts.Year)
	diag.CashierDropped = cashierDropped

	receipts, tableDropped := extract.TableReceipts(tableGrid)
	diag.TableDropped = tableDropped
	tableSales := aggregate.TableSales(tableGrid, opts.TableStrategy, opts.Granularity, opts.Year)

	freeCover, fcDropped := extract.FreeCoverEntries(set, opts.SheetRules)
	diag.FreeCoverDropped = fcDropped
	promoters := aggregate.RankPromoters(freeCover, *opts.PromoterRules)

	rep := &model.Report{
		GeneratedAt:     time.Now().UTC(),
		Granularity:     opts.Granularity,
		CashierRecords:  cashierRecords,
		CashierSales:    cashierSales,
		TableSales:      tableSales,
		TableReceipts:   receipts,
		FreeCoverSheets: freeCover,
		Promoters:       promoters,
	}
	if total, ok := extract.DeclaredTableTotal(tableGrid); ok {
		rep.TableDeclaredTotal = &total
	}
	if opts.Diagnostics {
		rep.Diagnostics = &diag
	}

	zap.L().Info("report built",
		zap.Int("cashier_records", len(cashierRecords)),
		zap.Int("cashier_buckets", len(cashierSales)),
		zap.Int("table_buckets", len(tableSales)),
		zap.Int("table_receipts", len(receipts)),
		zap.Int("free_cover_sheets", len(freeCover)),
		zap.Int("promoters", len(promoters)),
	)
	return rep
}

// firstMatch returns the grid of the alphabetically-first sheet of the
// given kind, or nil when the workbook has none. The extractors all
// treat a nil grid as "produce nothing".
func firstMatch(set model.SheetSet, rules []extract.Rule, kind extract.SheetKind) model.Grid {
	var titles []string
	for title := range set {
		if extract.Classify(rules, title) == kind {
			titles = append(titles, title)
		}
	}
	if len(titles) == 0 {
		return nil
	}
	sort.Strings(titles)
	return set[titles[0]]
}
