package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/georgiaharvey/club-reports/internal/model"
	"github.com/georgiaharvey/club-reports/internal/parse"
)

// tableHeaderRows is how many layout rows precede the data blocks in the
// table-report sheet.
const tableHeaderRows = 2

// DatedAmount is a dollar amount attributed to a single day, before
// period bucketing.
type DatedAmount struct {
	Date   time.Time
	Amount float64
}

// TableReceipts scans a table-report grid for adjacent
// table-number/currency cell pairs. The sheet lays several blocks
// side-by-side, so every cell of every row is inspected rather than fixed
// columns. Cells that look like a table number but whose neighbor fails
// currency parsing still emit a receipt with gross 0, matching the
// sheet's own bookkeeping; dropped counts those parse failures.
func TableReceipts(g model.Grid) (out []model.TableReceipt, dropped int) {
	for r := tableHeaderRows; r < len(g); r++ {
		for c := range g[r] {
			cell := g[r][c]
			if cell == "" || !parse.IsAllDigits(cell) {
				continue
			}
			next := g.Cell(r, c+1)
			if next == "" || !parse.IsCurrencyLike(next) {
				continue
			}
			gross, ok := parse.Money(next)
			if !ok {
				gross = 0
				dropped++
			}
			out = append(out, model.TableReceipt{
				TableNumber: strings.TrimSpace(cell),
				Gross:       gross,
				Notes:       g.Cell(r, c+2),
			})
		}
	}
	return out, dropped
}

// DeclaredTableTotal scans rows bottom-to-top for the grand-total row
// (contains "total" and at least one digit) and extracts its first
// number-looking token, preferring the "1,234.56" shape.
func DeclaredTableTotal(g model.Grid) (float64, bool) {
	for r := len(g) - 1; r >= 0; r-- {
		joined := strings.Join(g[r], " ")
		if !strings.Contains(strings.ToLower(joined), "total") || !strings.ContainsAny(joined, "0123456789") {
			continue
		}
		return parse.FirstAmount(joined)
	}
	return 0, false
}

// proseReceiptRe matches sentences like
// "Table receipts from Saturday (August 9) = $4,000.00" anywhere in the
// flattened sheet text. The month token is validated by parse.MonthDay,
// so a stray word/number pair before the date does not produce a hit.
var proseReceiptRe = regexp.MustCompile(`(?i)table receipts from[^=]*?([A-Za-z]{3,9})\.?\s+(\d{1,2})[^=]*?=\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`)

// ProsePeriodReceipts flattens the grid into one text blob and extracts
// every "Table receipts from ... (Month Day) ... = $amount" sentence,
// dating each amount in the injected reference year.
func ProsePeriodReceipts(g model.Grid, year int) []DatedAmount {
	var sb strings.Builder
	for _, row := range g {
		sb.WriteString(strings.Join(row, " "))
		sb.WriteString(" ")
	}

	var out []DatedAmount
	for _, m := range proseReceiptRe.FindAllStringSubmatch(sb.String(), -1) {
		date, ok := parse.MonthDay(m[1]+" "+m[2], year)
		if !ok {
			continue
		}
		amount, ok := parse.FirstAmount(m[3])
		if !ok {
			continue
		}
		out = append(out, DatedAmount{Date: date, Amount: amount})
	}
	return out
}

var monthDayTokenRe = regexp.MustCompile(`([A-Za-z]{3,9})\.?\s+(\d{1,2})`)

// ColumnPeriodReceipts treats row 0 as column headers each carrying a
// "Month Day" token; for every column whose header parses to a valid
// date, the currency-like cells beneath it are summed into one gross
// figure for that date. Columns with unparseable headers are ignored.
func ColumnPeriodReceipts(g model.Grid, year int) []DatedAmount {
	if len(g) == 0 {
		return nil
	}

	var out []DatedAmount
	for c, header := range g[0] {
		m := monthDayTokenRe.FindStringSubmatch(header)
		if m == nil {
			continue
		}
		date, ok := parse.MonthDay(m[1]+" "+m[2], year)
		if !ok {
			continue
		}

		var sum float64
		for r := 1; r < len(g); r++ {
			cell := g.Cell(r, c)
			if cell == "" || !parse.IsCurrencyLike(cell) {
				continue
			}
			if v, ok := parse.Money(cell); ok {
				sum += v
			}
		}
		out = append(out, DatedAmount{Date: date, Amount: sum})
	}
	return out
}
