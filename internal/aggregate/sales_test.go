package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgiaharvey/club-reports/internal/extract"
	"github.com/georgiaharvey/club-reports/internal/model"
	"github.com/georgiaharvey/club-reports/internal/parse"
)

func TestCashierSales_MonthlyBucket(t *testing.T) {
	grid := model.Grid{
		{"Date:", "8/1", "8/2"},
		{"Total Sales:", "100.00", "200.50"},
	}
	records := parse.PivotLabeledColumns(grid)
	require.Len(t, records, 2)

	series, dropped := CashierSales(records, model.GranularityMonthly, 2025)
	assert.Zero(t, dropped)
	require.Len(t, series, 1)
	assert.Equal(t, date(2025, time.August, 1), series[0].PeriodStart)
	assert.Equal(t, "August 2025", series[0].Label)
	assert.InDelta(t, 300.50, series[0].Total, 0.001)
}

func TestCashierSales_FieldFallback(t *testing.T) {
	records := []model.CashierRecord{
		{"Date": "8/1", "Total Sales $": "150"},
		{"Date": "8/2", "Total Sales": "50"},
		// The dollar-suffixed field wins when both are present.
		{"Date": "8/3", "Total Sales $": "10", "Total Sales": "999"},
	}

	series, dropped := CashierSales(records, model.GranularityMonthly, 2025)
	assert.Zero(t, dropped)
	require.Len(t, series, 1)
	assert.InDelta(t, 210, series[0].Total, 0.001)
}

func TestCashierSales_DropsUnparsable(t *testing.T) {
	records := []model.CashierRecord{
		{"Date": "8/1", "Total Sales": "100"},
		{"Date": "8/2", "Total Sales": "n/a"},
		{"Date": "not a date", "Total Sales": "50"},
		{"Date": "8/4"},
	}

	series, dropped := CashierSales(records, model.GranularityMonthly, 2025)
	assert.Equal(t, 3, dropped)
	require.Len(t, series, 1)
	assert.InDelta(t, 100, series[0].Total, 0.001)
}

func TestCashierSales_AscendingOrder(t *testing.T) {
	records := []model.CashierRecord{
		{"Date": "9/5", "Total Sales": "30"},
		{"Date": "7/1", "Total Sales": "10"},
		{"Date": "8/15", "Total Sales": "20"},
	}

	series, dropped := CashierSales(records, model.GranularityMonthly, 2025)
	assert.Zero(t, dropped)
	require.Len(t, series, 3)
	assert.Equal(t, "July 2025", series[0].Label)
	assert.Equal(t, "August 2025", series[1].Label)
	assert.Equal(t, "September 2025", series[2].Label)
}

func TestDatedAmounts_BiweeklyCollision(t *testing.T) {
	// Aug 3 2025 is a Sunday starting an odd-numbered week; all 14 days
	// of the period collapse into one bucket.
	items := []extract.DatedAmount{
		{Date: date(2025, time.August, 3), Amount: 1},
		{Date: date(2025, time.August, 10), Amount: 2},
		{Date: date(2025, time.August, 16), Amount: 4},
		{Date: date(2025, time.August, 17), Amount: 8},
	}

	series := DatedAmounts(items, model.GranularityBiweekly)
	require.Len(t, series, 2)
	assert.Equal(t, "8/3 - 8/16", series[0].Label)
	assert.InDelta(t, 7, series[0].Total, 0.001)
	assert.Equal(t, "8/17 - 8/30", series[1].Label)
	assert.InDelta(t, 8, series[1].Total, 0.001)
}

func TestTableSales_ProseStrategy(t *testing.T) {
	grid := model.Grid{
		{"Summary"},
		{"Table receipts from Saturday (August 9) = $4,000.00"},
		{"Table receipts from Friday (August 15) = $1,250"},
	}

	series := TableSales(grid, model.TableStrategyProse, model.GranularityMonthly, 2025)
	require.Len(t, series, 1)
	assert.Equal(t, "August 2025", series[0].Label)
	assert.InDelta(t, 5250, series[0].Total, 0.001)
}

func TestTableSales_ColumnsStrategy(t *testing.T) {
	grid := model.Grid{
		{"Table", "Aug 9", "Aug 15"},
		{"4", "$100.00", "$50"},
		{"9", "200", ""},
	}

	series := TableSales(grid, model.TableStrategyColumns, model.GranularityMonthly, 2025)
	require.Len(t, series, 1)
	assert.InDelta(t, 350, series[0].Total, 0.001)
}

func TestDatedAmounts_Empty(t *testing.T) {
	assert.Empty(t, DatedAmounts(nil, model.GranularityBiweekly))
}
