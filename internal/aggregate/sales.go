package aggregate

import (
	"sort"
	"time"

	"github.com/georgiaharvey/club-reports/internal/extract"
	"github.com/georgiaharvey/club-reports/internal/model"
	"github.com/georgiaharvey/club-reports/internal/parse"
)

// Field names the cashier sheet has used for its sales row across
// revisions, in lookup order.
var cashierSalesFields = []string{"Total Sales $", "Total Sales"}

// PeriodStart maps a date to its bucket key for the granularity.
func PeriodStart(g model.Granularity, d time.Time) time.Time {
	if g == model.GranularityBiweekly {
		return BiweekStart(d)
	}
	return MonthStart(d)
}

// PeriodLabel renders a bucket key for the granularity.
func PeriodLabel(g model.Granularity, start time.Time) string {
	if g == model.GranularityBiweekly {
		return BiweekLabel(start)
	}
	return MonthLabel(start)
}

// CashierSales folds pivoted cashier records into period buckets. The
// amount comes from the first present sales field; the date cell carries
// no year, so the injected reference year completes it. Records whose
// amount or date fails to parse are dropped and counted, never fatal.
// The returned series is ascending by period start.
func CashierSales(records []model.CashierRecord, g model.Granularity, year int) (series []model.SalesBucket, dropped int) {
	items := make([]extract.DatedAmount, 0, len(records))
	for _, rec := range records {
		var raw string
		for _, f := range cashierSalesFields {
			if v, ok := rec[f]; ok && v != "" {
				raw = v
				break
			}
		}

		amount, ok := parse.Money(raw)
		if !ok {
			dropped++
			continue
		}
		date, ok := parse.DateWithYear(rec["Date"], year)
		if !ok {
			dropped++
			continue
		}
		items = append(items, extract.DatedAmount{Date: date, Amount: amount})
	}
	return DatedAmounts(items, g), dropped
}

// TableSales folds a table-report grid into period buckets using the
// selected extraction strategy and granularity.
func TableSales(grid model.Grid, strategy model.TableStrategy, g model.Granularity, year int) []model.SalesBucket {
	var items []extract.DatedAmount
	if strategy == model.TableStrategyColumns {
		items = extract.ColumnPeriodReceipts(grid, year)
	} else {
		items = extract.ProsePeriodReceipts(grid, year)
	}
	return DatedAmounts(items, g)
}

// DatedAmounts sums dated amounts into period buckets, ascending by
// period start. Two dates land in the same bucket iff their computed
// period starts are equal.
func DatedAmounts(items []extract.DatedAmount, g model.Granularity) []model.SalesBucket {
	totals := make(map[time.Time]float64)
	for _, it := range items {
		totals[PeriodStart(g, it.Date)] += it.Amount
	}

	series := make([]model.SalesBucket, 0, len(totals))
	for start, total := range totals {
		series = append(series, model.SalesBucket{
			PeriodStart: start,
			Label:       PeriodLabel(g, start),
			Total:       total,
		})
	}
	sort.Slice(series, func(i, j int) bool {
		return series[i].PeriodStart.Before(series[j].PeriodStart)
	})
	return series
}
