package payslip

import (
	"fmt"

	"paystub/internal/core"
)

// Range bounds a reconciliation run. Month 0 covers the whole year;
// otherwise records dated through the end of Month are included.
type Range struct {
	Year  int
	Month int
}

func (r Range) covers(record core.PaycheckRecord) bool {
	if record.StatementDate.Year() != r.Year {
		return false
	}
	if r.Month == 0 {
		return true
	}
	return int(record.StatementDate.Month()) <= r.Month
}

// Label renders the period for report headings, "2024" or "06-2024".
func (r Range) Label() string {
	if r.Month == 0 {
		return fmt.Sprintf("%d", r.Year)
	}
	return fmt.Sprintf("%02d-%d", r.Month, r.Year)
}

// Reconcile aggregates validated records for a period and checks the
// accounting identities at year-to-date level. Mismatches land in the
// report as deltas, never as errors; a reconciliation run always produces
// a report.
func Reconcile(records []core.PaycheckRecord, period Range) core.ReconciliationReport {
	report := core.ReconciliationReport{
		Period:       period.Label(),
		CategorySums: make(map[core.Category]core.Money),
	}

	for _, record := range records {
		if record.Kind == core.KindYTDSummary || !period.covers(record) {
			continue
		}
		report.RecordCount++
		for category, amount := range record.Amounts {
			report.CategorySums[category] = report.CategorySums[category].Add(amount)
		}
		report.StoredGross = report.StoredGross.Add(record.GrossPay)
		report.StatutoryTotal = report.StatutoryTotal.Add(record.StatutoryTotal)
		report.OtherTotal = report.OtherTotal.Add(record.OtherDeductionTotal)
		report.StoredNet = report.StoredNet.Add(record.NetPay)
	}

	for _, c := range core.IncomeCategories {
		report.ComputedGross = report.ComputedGross.Add(report.CategorySums[c])
	}
	report.ComputedNet = report.ComputedGross.Add(report.StatutoryTotal).Add(report.OtherTotal)

	report.GrossDelta = report.ComputedGross.Sub(report.StoredGross).Abs()
	report.GrossMatched = report.GrossDelta.IsZero()
	report.NetDelta = report.ComputedNet.Sub(report.StoredNet).Abs()
	report.NetMatched = report.NetDelta.IsZero()

	return report
}
