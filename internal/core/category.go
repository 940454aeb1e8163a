package core

const (
	CategoryRegularPay  Category = "regular_pay"
	CategoryBonus       Category = "bonus"
	CategoryVacation    Category = "vacation"
	CategoryOtherIncome Category = "other_income"

	CategoryFederalTax        Category = "federal_tax"
	CategoryStateTax          Category = "state_tax"
	CategoryLocalTax          Category = "local_tax"
	CategorySocialSecurityTax Category = "social_security_tax"
	CategoryMedicareTax       Category = "medicare_tax"

	CategoryHSA           Category = "hsa"
	CategoryIllness       Category = "illness"
	CategoryLegal         Category = "legal"
	CategoryLifeInsurance Category = "life_insurance"
	CategoryPretaxDental  Category = "pretax_dental"
	CategoryPretaxMedical Category = "pretax_medical"
	CategoryPretaxVision  Category = "pretax_vision"
	CategoryDepCare       Category = "dep_care"
	CategoryVolAcc        Category = "vol_acc"
	CategoryVolChildLife  Category = "vol_child_life"
	CategoryVolSpousalLife Category = "vol_spousal_life"
	Category401KPretax    Category = "k401_pretax"
	Category401KLoan      Category = "k401_loan"
	CategoryESPP          Category = "espp"
	CategoryTaxableOff    Category = "taxable_off"

	CategoryCheckingAccount Category = "checking_account"
	CategoryNetPay          Category = "net_pay"
	CategoryIgnored         Category = "ignored"
)

// Category is a closed tag for the semantic meaning of a statement line.
type Category string

// Polarity constants: how a category contributes to net pay.
const (
	PolarityIncome    = 1
	PolarityNeutral   = 0
	PolarityDeduction = -1
)

// StatutoryCategories lists the government-mandated withholdings in report order.
var StatutoryCategories = []Category{
	CategoryFederalTax,
	CategorySocialSecurityTax,
	CategoryMedicareTax,
	CategoryStateTax,
	CategoryLocalTax,
}

// OtherDeductionCategories lists the non-statutory withholdings in report order.
var OtherDeductionCategories = []Category{
	CategoryHSA,
	CategoryIllness,
	CategoryLegal,
	CategoryLifeInsurance,
	CategoryPretaxDental,
	CategoryPretaxMedical,
	CategoryPretaxVision,
	CategoryDepCare,
	CategoryVolAcc,
	CategoryVolChildLife,
	CategoryVolSpousalLife,
	Category401KPretax,
	CategoryESPP,
	Category401KLoan,
	CategoryTaxableOff,
}

// IncomeCategories lists the income-increasing categories in report order.
var IncomeCategories = []Category{
	CategoryRegularPay,
	CategoryBonus,
	CategoryVacation,
	CategoryOtherIncome,
}

// IsStatutory reports whether c is a statutory (tax) deduction.
func (c Category) IsStatutory() bool {
	switch c {
	case CategoryFederalTax, CategoryStateTax, CategoryLocalTax,
		CategorySocialSecurityTax, CategoryMedicareTax:
		return true
	}
	return false
}

// IsOtherDeduction reports whether c is a non-statutory deduction.
func (c Category) IsOtherDeduction() bool {
	switch c {
	case CategoryHSA, CategoryIllness, CategoryLegal, CategoryLifeInsurance,
		CategoryPretaxDental, CategoryPretaxMedical, CategoryPretaxVision,
		CategoryDepCare, CategoryVolAcc, CategoryVolChildLife,
		CategoryVolSpousalLife, Category401KPretax, Category401KLoan,
		CategoryESPP, CategoryTaxableOff:
		return true
	}
	return false
}

// IsIncome reports whether c increases gross pay.
func (c Category) IsIncome() bool {
	switch c {
	case CategoryRegularPay, CategoryBonus, CategoryVacation, CategoryOtherIncome:
		return true
	}
	return false
}

// Polarity returns the fixed sign contribution of the category. The polarity
// table, not any sign parsed from a line, is the source of truth for how an
// amount enters a record.
func (c Category) Polarity() int {
	switch {
	case c.IsIncome():
		return PolarityIncome
	case c.IsStatutory(), c.IsOtherDeduction():
		return PolarityDeduction
	default:
		return PolarityNeutral
	}
}

// DisplayName returns the human-readable name used in reports.
func (c Category) DisplayName() string {
	names := map[Category]string{
		CategoryRegularPay:        "Regular Pay",
		CategoryBonus:             "Bonus",
		CategoryVacation:          "Vacation",
		CategoryOtherIncome:       "Other Income",
		CategoryFederalTax:        "Federal Income Tax",
		CategoryStateTax:          "State Income Tax",
		CategoryLocalTax:          "Local Income Tax",
		CategorySocialSecurityTax: "Social Security Tax",
		CategoryMedicareTax:       "Medicare Tax",
		CategoryHSA:               "HSA Plan",
		CategoryIllness:           "Illness Plan",
		CategoryLegal:             "Legal",
		CategoryLifeInsurance:     "Life Insurance",
		CategoryPretaxDental:      "Pretax Dental",
		CategoryPretaxMedical:     "Pretax Medical",
		CategoryPretaxVision:      "Pretax Vision",
		CategoryDepCare:           "Dep Care",
		CategoryVolAcc:            "Vol Acc",
		CategoryVolChildLife:      "Vol Child Life",
		CategoryVolSpousalLife:    "Vol Spousal Life",
		Category401KPretax:        "401K Pretax",
		Category401KLoan:          "401K Loan",
		CategoryESPP:              "ESPP",
		CategoryTaxableOff:        "Taxable Off",
		CategoryCheckingAccount:   "Checking Account",
		CategoryNetPay:            "Net Pay",
	}
	if n, ok := names[c]; ok {
		return n
	}
	return string(c)
}
