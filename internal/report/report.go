// Package report renders reconciliation results for the terminal. The
// reconciler computes, this package formats; neither knows about the other's
// collaborators.
package report

import (
	"fmt"
	"io"
	"strings"

	"paystub/internal/core"
)

const (
	labelWidth  = 30
	amountWidth = 15
)

// WriteReconciliation renders the earnings, deductions, and net pay
// sections of a reconciliation report, with Matched?/Difference lines after
// the gross and net comparisons.
func WriteReconciliation(w io.Writer, r core.ReconciliationReport) error {
	var b strings.Builder

	fmt.Fprintf(&b, "\nSum of Earnings YTD for %s are:\n", r.Period)
	b.WriteString(strings.Repeat("=", 50) + "\n")
	for _, c := range core.IncomeCategories {
		writeAmount(&b, c.DisplayName(), r.CategorySums[c])
	}
	writeAmount(&b, "Gross Pay (stored)", r.StoredGross)
	writeAmount(&b, "Gross Pay (calculated sum)", r.ComputedGross)
	writeMatch(&b, r.GrossMatched, r.GrossDelta)

	b.WriteString("\nDeductions:\n")
	b.WriteString(strings.Repeat("=", 50) + "\n")
	b.WriteString("Deductions Statutory\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	for _, c := range core.StatutoryCategories {
		writeDeduction(&b, c.DisplayName(), r.CategorySums[c])
	}
	b.WriteString("\n")
	writeDeduction(&b, "Total Statutory Deductions", r.StatutoryTotal)
	b.WriteString(strings.Repeat("-", 50) + "\n\n")

	b.WriteString("Other Deductions\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
	for _, c := range core.OtherDeductionCategories {
		writeDeduction(&b, c.DisplayName(), r.CategorySums[c])
	}
	b.WriteString("\n")
	writeDeduction(&b, "Total Other Deductions", r.OtherTotal)
	b.WriteString(strings.Repeat("-", 50) + "\n\n")

	writeAmount(&b, "Net Pay (calculated)", r.ComputedNet)
	writeAmount(&b, "Net Pay (stored)", r.StoredNet)
	writeMatch(&b, r.NetMatched, r.NetDelta)

	b.WriteString("\n" + strings.Repeat("=", 50) + "\n")
	fmt.Fprintf(&b, "Summary: %d payslip(s) considered for %s\n", r.RecordCount, r.Period)
	b.WriteString(strings.Repeat("=", 50) + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeAmount(b *strings.Builder, label string, amount core.Money) {
	fmt.Fprintf(b, "%-*s $%*s\n", labelWidth, label, amountWidth, amount.String())
}

// writeDeduction prints a deduction as an explicit negative magnitude.
func writeDeduction(b *strings.Builder, label string, amount core.Money) {
	fmt.Fprintf(b, "%-*s -$%*s\n", labelWidth, label, amountWidth-1, amount.Abs().String())
}

func writeMatch(b *strings.Builder, matched bool, delta core.Money) {
	if matched {
		fmt.Fprintf(b, "%-*s %*s\n", labelWidth, "Matched?", amountWidth, "Yes")
		return
	}
	fmt.Fprintf(b, "%-*s %*s\n", labelWidth, "Matched?", amountWidth, "No")
	fmt.Fprintf(b, "%-*s $%*s\n", labelWidth, "Difference", amountWidth, delta.String())
}
