package payslip

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"paystub/internal/core"
)

type (
	// LabelRule maps label text to a category. Match entries are lowercase
	// substrings; the first rule whose entry appears in the line wins, so
	// rule order is significant (longer labels before their prefixes).
	LabelRule struct {
		Match    []string      `yaml:"match"`
		Category core.Category `yaml:"category"`
	}

	// LabelSet is the recognized label vocabulary of one institution. It is
	// data, not code: a new institution is a new set, loadable from YAML.
	LabelSet struct {
		// Localities combine with "income tax" to form a local-tax label
		// ("Brooklyn Income Tax", "Cleveland Income Tax").
		Localities []string    `yaml:"localities"`
		Rules      []LabelRule `yaml:"rules"`
	}
)

// Classification is the result of matching a line against a label set:
// the category and the remainder of the line after the label, which holds
// the amount tokens.
type Classification struct {
	Category core.Category
	Rest     string
}

// Classify maps a line's label to its category, case-insensitively. Two
// vocabulary-wide conventions are applied before the rule table: "Checking"
// directly followed by a digit is a checking-account label whatever the
// digit, and "income tax" combined with a known locality token is a
// local-tax label. Unmatched lines classify as ignored.
func (ls *LabelSet) Classify(line string) Classification {
	lower := strings.ToLower(line)

	if idx := checkingLabelEnd(lower); idx >= 0 {
		return Classification{Category: core.CategoryCheckingAccount, Rest: line[idx:]}
	}

	if idx := strings.Index(lower, "income tax"); idx >= 0 {
		for _, loc := range ls.Localities {
			if strings.Contains(lower, strings.ToLower(loc)) {
				return Classification{Category: core.CategoryLocalTax, Rest: line[idx+len("income tax"):]}
			}
		}
	}

	for _, rule := range ls.Rules {
		for _, m := range rule.Match {
			if idx := strings.Index(lower, m); idx >= 0 {
				return Classification{Category: rule.Category, Rest: line[idx+len(m):]}
			}
		}
	}

	return Classification{Category: core.CategoryIgnored}
}

// checkingLabelEnd returns the index just past a "checking<digits>" label,
// or -1 when the line holds no such label.
func checkingLabelEnd(lower string) int {
	idx := strings.Index(lower, "checking")
	if idx < 0 {
		return -1
	}
	end := idx + len("checking")
	if end >= len(lower) || !unicode.IsDigit(rune(lower[end])) {
		return -1
	}
	for end < len(lower) && unicode.IsDigit(rune(lower[end])) {
		end++
	}
	return end
}

// LoadLabelSet reads a label set from a YAML file.
func LoadLabelSet(path string) (*LabelSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read label set: %w", err)
	}
	var ls LabelSet
	if err := yaml.Unmarshal(data, &ls); err != nil {
		return nil, fmt.Errorf("parse label set: %w", err)
	}
	if len(ls.Rules) == 0 {
		return nil, fmt.Errorf("label set %s declares no rules", path)
	}
	return &ls, nil
}

// DefaultLabelSet returns the built-in ADP iPay vocabulary.
func DefaultLabelSet() *LabelSet {
	return &LabelSet{
		Localities: []string{"brooklyn", "cleveland"},
		Rules: []LabelRule{
			// Taxes first: their labels embed words like "income" that
			// must not fall through to looser rules.
			{Match: []string{"federal income tax"}, Category: core.CategoryFederalTax},
			{Match: []string{"social security tax"}, Category: core.CategorySocialSecurityTax},
			{Match: []string{"medicare tax"}, Category: core.CategoryMedicareTax},
			{Match: []string{"state income tax"}, Category: core.CategoryStateTax},

			// Income.
			{Match: []string{"regular"}, Category: core.CategoryRegularPay},
			{Match: []string{"bonus", "performance"}, Category: core.CategoryBonus},
			{Match: []string{"vacation"}, Category: core.CategoryVacation},
			{Match: []string{
				"retro cola", "cola",
				"retro contribution", "retro contribtn", "contribution",
				"award", "skillpay allow",
			}, Category: core.CategoryOtherIncome},

			// Other deductions.
			{Match: []string{"hsa plan"}, Category: core.CategoryHSA},
			{Match: []string{"illness plan lo", "illness plan"}, Category: core.CategoryIllness},
			{Match: []string{"legal"}, Category: core.CategoryLegal},
			{Match: []string{"vol acc 40/20", "vol acc 20/10"}, Category: core.CategoryVolAcc},
			{Match: []string{"vol child life"}, Category: core.CategoryVolChildLife},
			{Match: []string{"vol spousl life", "vol spousal life"}, Category: core.CategoryVolSpousalLife},
			{Match: []string{"life ins", "life insurance"}, Category: core.CategoryLifeInsurance},
			{Match: []string{"pretax dental"}, Category: core.CategoryPretaxDental},
			{Match: []string{"pretax medical"}, Category: core.CategoryPretaxMedical},
			{Match: []string{"pretax vision"}, Category: core.CategoryPretaxVision},
			{Match: []string{"dep care"}, Category: core.CategoryDepCare},
			{Match: []string{"401k pretax"}, Category: core.Category401KPretax},
			{Match: []string{"401k loan"}, Category: core.Category401KLoan},
			{Match: []string{"espp"}, Category: core.CategoryESPP},
			{Match: []string{"taxable off"}, Category: core.CategoryTaxableOff},

			// Totals. Gross pay is recomputed by the assembler, so the
			// printed figure is deliberately dropped.
			{Match: []string{"net pay"}, Category: core.CategoryNetPay},
			{Match: []string{"gross pay"}, Category: core.CategoryIgnored},
		},
	}
}
