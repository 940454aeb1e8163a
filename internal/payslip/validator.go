package payslip

import (
	"fmt"

	"paystub/internal/core"
)

// ValidationError reports an arithmetic identity that did not hold for a
// record. Amounts are exact cents, so there is no tolerance.
type ValidationError struct {
	SourceFile string
	Identity   string
	Want       core.Money
	Got        core.Money
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validate %s: %s: want %s, got %s", e.SourceFile, e.Identity, e.Want, e.Got)
}

// Validate checks the net-pay identity for a record and moves it from
// pending to validated or failed. Year-end summaries carry no identity and
// pass through unchanged.
func Validate(record *core.PaycheckRecord) error {
	if record.Kind == core.KindYTDSummary {
		return nil
	}
	if record.Status != core.StatusPending {
		return fmt.Errorf("validate %s: record is %s, not pending", record.SourceFile, record.Status)
	}

	computed := record.GrossPay.Add(record.StatutoryTotal)
	if record.Kind != core.KindBonus {
		// A bonus check nets out after statutory withholding alone; the
		// ESPP figure is tracked but settles outside the check.
		computed = computed.Add(record.OtherDeductionTotal)
	}
	if computed != record.NetPay {
		record.Status = core.StatusFailed
		return &ValidationError{
			SourceFile: record.SourceFile,
			Identity:   "net pay equals gross plus deductions",
			Want:       record.NetPay,
			Got:        computed,
		}
	}

	record.Status = core.StatusValidated
	return nil
}
