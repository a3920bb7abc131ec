package extract

import (
	"sort"
	"strings"

	"github.com/georgiaharvey/club-reports/internal/model"
	"github.com/georgiaharvey/club-reports/internal/parse"
)

// Field names the guest-list sheets use for their two data columns.
const (
	freeCoverNameField  = "Name"
	freeCoverCountField = "Count of guests"
)

// FreeCoverEntries collects every sheet matched to KindFreeCover by the
// rules and extracts its guest-list rows. A row is kept only when the
// name is non-empty after trimming, the guest count parses as an integer,
// and the name does not contain "total" — that last check drops the
// summary/footer rows that share the data columns.
//
// Sheets come back sorted by title so output is deterministic regardless
// of map iteration order. dropped counts rows that failed a keep check.
func FreeCoverEntries(sheets model.SheetSet, rules []Rule) (out []model.FreeCoverSheet, dropped int) {
	titles := make([]string, 0, len(sheets))
	for title := range sheets {
		if Classify(rules, title) == KindFreeCover {
			titles = append(titles, title)
		}
	}
	sort.Strings(titles)

	for _, title := range titles {
		g := sheets[title]
		sheet := model.FreeCoverSheet{Title: title}

		for _, rec := range parse.RowsToRecords(g) {
			name := strings.TrimSpace(rec[freeCoverNameField])
			count, ok := parse.Count(rec[freeCoverCountField])
			if name == "" || !ok || strings.Contains(strings.ToLower(name), "total") {
				dropped++
				continue
			}
			sheet.Entries = append(sheet.Entries, model.FreeCoverEntry{
				Name:       name,
				GuestCount: count,
			})
		}

		if total, ok := declaredGuestTotal(g); ok {
			sheet.DeclaredTotal = &total
		}

		out = append(out, sheet)
	}
	return out, dropped
}

// declaredGuestTotal scans rows bottom-to-top for a footer like
// "Total Count 183" and returns its first small integer.
func declaredGuestTotal(g model.Grid) (int, bool) {
	for r := len(g) - 1; r >= 0; r-- {
		joined := strings.Join(g[r], " ")
		if !strings.Contains(strings.ToLower(joined), "total") {
			continue
		}
		if n, ok := parse.FirstSmallInt(joined); ok {
			return n, true
		}
	}
	return 0, false
}
