package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/georgiaharvey/club-reports/internal/model"
)

func TestFreeCoverEntries(t *testing.T) {
	sheets := model.SheetSet{
		"Free Cover": {
			{"Name", "Count of guests"},
			{"DJ Mike", "12"},
			{"Sara (birthday)", "4"},
			{"", "9"},             // no name
			{"Walk-ins", "lots"},  // count does not parse
			{"Total Count", "25"}, // summary row
		},
		"Cashier Reporting": {
			{"Name", "Count of guests"},
			{"ignored", "99"},
		},
	}

	out, dropped := FreeCoverEntries(sheets, DefaultRules)
	require.Len(t, out, 1)
	assert.Equal(t, 3, dropped)

	sheet := out[0]
	assert.Equal(t, "Free Cover", sheet.Title)
	require.Len(t, sheet.Entries, 2)
	assert.Equal(t, model.FreeCoverEntry{Name: "DJ Mike", GuestCount: 12}, sheet.Entries[0])
	assert.Equal(t, model.FreeCoverEntry{Name: "Sara (birthday)", GuestCount: 4}, sheet.Entries[1])

	require.NotNil(t, sheet.DeclaredTotal)
	assert.Equal(t, 25, *sheet.DeclaredTotal)
}

func TestFreeCoverEntries_MultipleSheetsSortedByTitle(t *testing.T) {
	sheets := model.SheetSet{
		"Free Cover Sat": {{"Name", "Count of guests"}, {"B", "1"}},
		"Free Cover Fri": {{"Name", "Count of guests"}, {"A", "2"}},
	}

	out, _ := FreeCoverEntries(sheets, DefaultRules)
	require.Len(t, out, 2)
	assert.Equal(t, "Free Cover Fri", out[0].Title)
	assert.Equal(t, "Free Cover Sat", out[1].Title)
}

func TestFreeCoverEntries_NoMatchingSheets(t *testing.T) {
	out, dropped := FreeCoverEntries(model.SheetSet{"Other": {{"a"}}}, DefaultRules)
	assert.Empty(t, out)
	assert.Zero(t, dropped)
}

func TestDeclaredGuestTotal_NoFooter(t *testing.T) {
	g := model.Grid{
		{"Name", "Count of guests"},
		{"Mike", "2"},
	}
	_, ok := declaredGuestTotal(g)
	assert.False(t, ok)
}
