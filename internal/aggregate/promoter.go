package aggregate

import (
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/georgiaharvey/club-reports/internal/model"
)

// CanonicalRule folds promoter names containing any of the substrings
// into one fixed bucket label. Rules apply in order; first match wins.
type CanonicalRule struct {
	Contains  []string `yaml:"contains"`
	Canonical string   `yaml:"canonical"`
}

// MergeRule is a one-off post-pass: the From bucket's total is added to
// Into and the From key removed. Not a general merge mechanism — these
// encode workbook-specific knowledge about who is who.
type MergeRule struct {
	From string `yaml:"from"`
	Into string `yaml:"into"`
}

// PromoterRules is the full canonicalization rule table.
type PromoterRules struct {
	Canonical []CanonicalRule `yaml:"canonical"`
	Merge     []MergeRule     `yaml:"merge"`
}

// DefaultPromoterRules reflects what the workbook's operators actually
// write in the Name column. Known to be workbook-specific and likely to
// change; override with a rules file rather than editing code.
func DefaultPromoterRules() PromoterRules {
	return PromoterRules{
		Canonical: []CanonicalRule{
			{Contains: []string{"dj", "guest list"}, Canonical: "DJ"},
			{Contains: []string{"girls"}, Canonical: "Free Girls/Girls"},
		},
		Merge: []MergeRule{
			{From: "Navid's Brother", Into: "Navid"},
		},
	}
}

// LoadPromoterRules reads a rule table from a YAML file.
func LoadPromoterRules(path string) (PromoterRules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PromoterRules{}, eris.Wrap(err, "aggregate: read promoter rules")
	}
	var rules PromoterRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return PromoterRules{}, eris.Wrap(err, "aggregate: parse promoter rules")
	}
	return rules, nil
}

var parentheticalRe = regexp.MustCompile(`\s*\([^)]*\)\s*$`)

// CleanName strips a trailing parenthesized note ("Mike (VIP)" → "Mike")
// and trims whitespace.
func CleanName(name string) string {
	return strings.TrimSpace(parentheticalRe.ReplaceAllString(name, ""))
}

// Canonicalize maps a raw promoter name to its canonical bucket label.
func (r PromoterRules) Canonicalize(name string) string {
	clean := CleanName(name)
	lower := strings.ToLower(clean)
	for _, rule := range r.Canonical {
		for _, sub := range rule.Contains {
			if strings.Contains(lower, sub) {
				return rule.Canonical
			}
		}
	}
	return clean
}

// RankPromoters folds every kept guest-list entry across all sheets into
// per-canonical-name totals, applies the merge post-pass, and returns the
// ranking sorted descending by guest count. Ties keep the insertion order
// of each name's first occurrence.
func RankPromoters(sheets []model.FreeCoverSheet, rules PromoterRules) []model.PromoterTotal {
	totals := make(map[string]int)
	var order []string

	add := func(name string, guests int) {
		if _, seen := totals[name]; !seen {
			order = append(order, name)
		}
		totals[name] += guests
	}

	for _, sheet := range sheets {
		for _, e := range sheet.Entries {
			add(rules.Canonicalize(e.Name), e.GuestCount)
		}
	}

	for _, m := range rules.Merge {
		guests, ok := totals[m.From]
		if !ok {
			continue
		}
		add(m.Into, guests)
		delete(totals, m.From)
	}

	ranking := make([]model.PromoterTotal, 0, len(totals))
	for _, name := range order {
		guests, ok := totals[name]
		if !ok {
			continue // removed by a merge rule
		}
		ranking = append(ranking, model.PromoterTotal{Name: name, Guests: guests})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Guests > ranking[j].Guests
	})
	return ranking
}
