package payslip

import (
	"time"

	"paystub/internal/core"
)

// KindPolicy declares which categories contribute to a kind's totals.
// Parsing and business-rule filtering are deliberately separated: the
// interpreter extracts every fact, the policy decides what counts.
type KindPolicy struct {
	// Gross lists the income categories contributing to gross pay. A
	// vacation check stores its pay under other_income, so its policy maps
	// the vacation fact there via StoreVacationAsOtherIncome.
	Gross []core.Category
	// Other lists the deduction categories contributing to the other-
	// deduction total; categories outside the list are excluded even when
	// extracted.
	Other []core.Category
	// StoreVacationAsOtherIncome routes vacation facts into the
	// other_income slot of the record map.
	StoreVacationAsOtherIncome bool
}

func (p KindPolicy) admitsGross(c core.Category) bool {
	for _, g := range p.Gross {
		if g == c {
			return true
		}
	}
	return false
}

func (p KindPolicy) admitsOther(c core.Category) bool {
	for _, o := range p.Other {
		if o == c {
			return true
		}
	}
	return false
}

// PolicyFor returns the aggregation policy for a kind. Statutory
// deductions contribute for every kind, so they are not part of the policy
// record.
func PolicyFor(kind core.PaycheckKind) KindPolicy {
	switch kind {
	case core.KindBonus:
		return KindPolicy{
			Gross: []core.Category{core.CategoryBonus},
			Other: []core.Category{core.CategoryESPP},
		}
	case core.KindVacation:
		return KindPolicy{
			Gross:                      []core.Category{core.CategoryOtherIncome},
			Other:                      []core.Category{core.Category401KPretax},
			StoreVacationAsOtherIncome: true,
		}
	default:
		return KindPolicy{
			Gross: []core.Category{core.CategoryRegularPay, core.CategoryOtherIncome},
			Other: core.OtherDeductionCategories,
		}
	}
}

// Assemble collects all facts for one statement into a PaycheckRecord.
// Deductions enter the map and the totals signed per the category polarity
// table; the record comes out fully computed, pending validation, and is
// never mutated afterwards.
func Assemble(facts []core.LineFact, kind core.PaycheckKind, date time.Time, sourceFile string) core.PaycheckRecord {
	record := core.NewRecord(kind, date, sourceFile)
	if kind == core.KindYTDSummary {
		// A year-end summary carries no per-period money; nothing to
		// aggregate and nothing to validate.
		return record
	}

	policy := PolicyFor(kind)
	var checkingTotal core.Money

	for _, fact := range facts {
		category := fact.Category
		if policy.StoreVacationAsOtherIncome {
			// Only the remapped vacation pay may occupy the other_income
			// slot; genuine other-income lines do not count on a vacation
			// check.
			if category == core.CategoryOtherIncome {
				continue
			}
			if category == core.CategoryVacation {
				category = core.CategoryOtherIncome
			}
		}

		switch {
		case category == core.CategoryCheckingAccount:
			// Statements list one line per destination account; keep the
			// sum across however many appear.
			checkingTotal = checkingTotal.Add(fact.Current)
			record.Amounts[category] = checkingTotal
		case category == core.CategoryNetPay:
			if _, seen := record.Amounts[category]; !seen {
				record.Amounts[category] = fact.Current
			}
		case category.IsStatutory():
			if _, seen := record.Amounts[category]; !seen {
				record.Amounts[category] = fact.Current.Neg()
			}
		case category.IsOtherDeduction():
			if !policy.admitsOther(category) {
				continue
			}
			if _, seen := record.Amounts[category]; !seen {
				record.Amounts[category] = fact.Current.Neg()
			}
		case category.IsIncome():
			if !policy.admitsGross(category) {
				continue
			}
			if category == core.CategoryOtherIncome {
				// Several other-income labels may appear on one statement.
				record.Amounts[category] = record.Amounts[category].Add(fact.Current)
			} else if _, seen := record.Amounts[category]; !seen {
				record.Amounts[category] = fact.Current
			}
		}
	}

	for _, c := range policy.Gross {
		record.GrossPay = record.GrossPay.Add(record.Amounts[c])
	}
	for _, c := range core.StatutoryCategories {
		record.StatutoryTotal = record.StatutoryTotal.Add(record.Amounts[c])
	}
	for _, c := range policy.Other {
		record.OtherDeductionTotal = record.OtherDeductionTotal.Add(record.Amounts[c])
	}

	record.NetPay = record.Amounts[core.CategoryNetPay]
	if record.NetPay.IsZero() {
		// The net-pay line prints only a year-to-date figure on direct-
		// deposit statements; the current-period net is the sum of the
		// checking-account disbursements.
		record.NetPay = checkingTotal
	}

	return record
}
