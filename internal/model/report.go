package model

import "time"

// Granularity selects the period used for sales bucketing.
type Granularity string

const (
	GranularityMonthly  Granularity = "monthly"
	GranularityBiweekly Granularity = "biweekly"
)

// TableStrategy selects how gross table sales are attributed to dates.
type TableStrategy string

const (
	// TableStrategyProse scans free-text "Table receipts from ... = $x"
	// sentences anywhere in the grid.
	TableStrategyProse TableStrategy = "prose"
	// TableStrategyColumns treats row 0 as "Month Day" column headers and
	// sums the currency cells beneath each.
	TableStrategyColumns TableStrategy = "columns"
)

// CashierRecord is a pivoted cashier-sheet column: a record with a
// guaranteed Date field plus whatever labels the sheet carried
// ("Total Sales", "Card", "Cash", ...).
type CashierRecord = NormalizedRecord

// FreeCoverEntry is one kept guest-list row.
type FreeCoverEntry struct {
	Name       string `json:"name"`
	GuestCount int    `json:"guestCount"`
}

// FreeCoverSheet holds the entries of one guest-list sheet together with
// the total the sheet itself declares in its footer, when one was found.
type FreeCoverSheet struct {
	Title         string           `json:"title"`
	Entries       []FreeCoverEntry `json:"entries"`
	DeclaredTotal *int             `json:"declaredTotal,omitempty"`
}

// TableReceipt is one table-number/gross pair found by adjacency scanning.
type TableReceipt struct {
	TableNumber string  `json:"tableNumber"`
	Gross       float64 `json:"gross"`
	Notes       string  `json:"notes,omitempty"`
}

// SalesBucket is one aggregation period. Buckets are keyed by the start
// instant of the period containing a date; series are ordered ascending
// by PeriodStart.
type SalesBucket struct {
	PeriodStart time.Time `json:"periodStart"`
	Label       string    `json:"label"`
	Total       float64   `json:"total"`
}

// PromoterTotal is one row of the promoter ranking, descending by Guests.
type PromoterTotal struct {
	Name   string `json:"name"`
	Guests int    `json:"guests"`
}

// Diagnostics counts items each stage silently skipped. Populated only
// when a run requests it; the default output shape is unchanged.
type Diagnostics struct {
	CashierDropped   int `json:"cashierDropped"`
	FreeCoverDropped int `json:"freeCoverDropped"`
	TableDropped     int `json:"tableDropped"`
}

// Report is the assembled output of one pipeline run.
type Report struct {
	GeneratedAt        time.Time        `json:"generatedAt"`
	Granularity        Granularity      `json:"granularity"`
	CashierRecords     []CashierRecord  `json:"cashierRecords"`
	CashierSales       []SalesBucket    `json:"cashierSales"`
	TableSales         []SalesBucket    `json:"tableSales"`
	TableReceipts      []TableReceipt   `json:"tableReceipts"`
	TableDeclaredTotal *float64         `json:"tableDeclaredTotal,omitempty"`
	FreeCoverSheets    []FreeCoverSheet `json:"freeCoverSheets"`
	Promoters          []PromoterTotal  `json:"promoters"`
	Diagnostics        *Diagnostics     `json:"diagnostics,omitempty"`
}
