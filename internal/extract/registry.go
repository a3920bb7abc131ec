package extract

import "strings"

// SheetKind tags which extractor handles a sheet.
type SheetKind string

const (
	KindCashier   SheetKind = "cashier"
	KindFreeCover SheetKind = "free_cover"
	KindTables    SheetKind = "table_report"
	KindUnknown   SheetKind = "unknown"
)

// Rule maps a case-insensitive title substring to a sheet kind. The
// workbook's operators rename tabs freely ("Free Cover June", "Free Cover
// - Sat"), so matching is substring-based on purpose.
type Rule struct {
	Substring string    `yaml:"substring"`
	Kind      SheetKind `yaml:"kind"`
}

// DefaultRules covers the three sheets of the reporting workbook.
var DefaultRules = []Rule{
	{Substring: "cashier reporting", Kind: KindCashier},
	{Substring: "free cover", Kind: KindFreeCover},
	{Substring: "bg table report", Kind: KindTables},
}

// Classify returns the kind of the first rule whose substring occurs in
// the title, or KindUnknown.
func Classify(rules []Rule, title string) SheetKind {
	lower := strings.ToLower(title)
	for _, r := range rules {
		if strings.Contains(lower, strings.ToLower(r.Substring)) {
			return r.Kind
		}
	}
	return KindUnknown
}
