package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Scalar extraction helpers shared by every extractor. Spreadsheet
// formatting is operator-controlled, so these are deliberately permissive:
// they report ok=false instead of returning errors.

var (
	allDigitsRe    = regexp.MustCompile(`^\d+$`)
	currencyLikeRe = regexp.MustCompile(`[\d,.]+\$?`)
	moneyStripRe   = regexp.MustCompile(`[^0-9.\-]`)
	digitStripRe   = regexp.MustCompile(`[^0-9]`)
	centsTokenRe   = regexp.MustCompile(`[\d,]+\.\d{2}`)
	intTokenRe     = regexp.MustCompile(`[\d,]+`)
	smallIntRe     = regexp.MustCompile(`\d{1,5}`)
)

// IsAllDigits reports whether the trimmed cell is one unbroken run of
// digits — the shape of a table number.
func IsAllDigits(s string) bool {
	return allDigitsRe.MatchString(strings.TrimSpace(s))
}

// IsCurrencyLike reports whether the cell contains a digits/commas/dot run
// with an optional trailing dollar sign.
func IsCurrencyLike(s string) bool {
	return currencyLikeRe.MatchString(s)
}

// Money strips everything except digits, "." and "-" from the cell and
// parses the remainder as a float. ok is false when nothing parseable is
// left.
func Money(s string) (float64, bool) {
	cleaned := moneyStripRe.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Count strips non-digit characters and parses the remainder as an
// integer, the way guest counts are read off free-cover rows.
func Count(s string) (int, bool) {
	cleaned := digitStripRe.ReplaceAllString(s, "")
	if cleaned == "" {
		return 0, false
	}
	n, err := strconv.Atoi(cleaned)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FirstAmount extracts the first number-looking token from free text,
// preferring a "1,234.56" shape and falling back to plain integer groups.
func FirstAmount(s string) (float64, bool) {
	tok := centsTokenRe.FindString(s)
	if tok == "" {
		tok = intTokenRe.FindString(s)
	}
	if tok == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(tok, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// FirstSmallInt extracts the first 1-5 digit group from free text. Used
// for declared guest totals in sheet footers.
func FirstSmallInt(s string) (int, bool) {
	tok := smallIntRe.FindString(s)
	if tok == "" {
		return 0, false
	}
	n, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return n, true
}

// MonthDay parses a bare "August 5" or "Aug 5" token into a date in the
// given year, at midnight UTC.
func MonthDay(s string, year int) (time.Time, bool) {
	s = strings.Join(strings.Fields(s), " ")
	for _, layout := range []string{"January 2", "Jan 2"} {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// DateWithYear parses a sheet date cell that carries no year ("8/1") by
// appending the injected reference year. A "Month Day" cell is accepted
// too. The year is an explicit parameter so runs are deterministic rather
// than depending on wall-clock time.
func DateWithYear(s string, year int) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if t, err := time.Parse("1/2/2006", fmt.Sprintf("%s/%d", s, year)); err == nil {
		return t, true
	}
	return MonthDay(s, year)
}
