package core

import (
	"errors"
	"time"
)

const (
	KindRegular    PaycheckKind = "regular"
	KindBonus      PaycheckKind = "bonus"
	KindVacation   PaycheckKind = "vacation"
	KindYTDSummary PaycheckKind = "ytd_summary"
)

const (
	StatusPending   RecordStatus = "pending"
	StatusValidated RecordStatus = "validated"
	StatusFailed    RecordStatus = "failed"
)

type (
	// PaycheckKind identifies the structural variety of a pay statement.
	PaycheckKind string

	// RecordStatus tracks the validation state machine of a record:
	// pending -> validated | failed.
	RecordStatus string

	Money struct {
		Cents int64
	}

	// LineFact is one recognized monetary fact extracted from a statement line.
	// Both amounts are stored as non-negative magnitudes; sign semantics belong
	// to the category, not the fact.
	LineFact struct {
		Category Category
		Current  Money
		YTD      Money
	}

	// PaycheckRecord is the fully assembled result for one statement.
	// Deduction amounts in Amounts and in the totals are stored signed
	// (negative), so every accounting identity is an addition.
	PaycheckRecord struct {
		ID                  int64
		Kind                PaycheckKind
		StatementDate       time.Time
		SourceFile          string
		Amounts             map[Category]Money
		GrossPay            Money
		StatutoryTotal      Money
		OtherDeductionTotal Money
		NetPay              Money
		Status              RecordStatus
	}

	// ReconciliationReport is the derived, never-persisted result of an
	// aggregate check over a set of validated records.
	ReconciliationReport struct {
		Period         string
		RecordCount    int
		CategorySums   map[Category]Money
		ComputedGross  Money
		StoredGross    Money
		GrossMatched   bool
		GrossDelta     Money
		StatutoryTotal Money
		OtherTotal     Money
		ComputedNet    Money
		StoredNet      Money
		NetMatched     bool
		NetDelta       Money
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidKind   = errors.New("invalid paycheck kind")
	ErrZeroDate      = errors.New("statement date cannot be zero")
	ErrEmptySource   = errors.New("empty source file name")
)

// Valid reports whether k is one of the known paycheck kinds.
func (k PaycheckKind) Valid() bool {
	switch k {
	case KindRegular, KindBonus, KindVacation, KindYTDSummary:
		return true
	}
	return false
}

func (f LineFact) Validate() error {
	if f.Current.Cents < 0 || f.YTD.Cents < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (r PaycheckRecord) Validate() error {
	if !r.Kind.Valid() {
		return ErrInvalidKind
	}
	if r.StatementDate.IsZero() {
		return ErrZeroDate
	}
	if r.SourceFile == "" {
		return ErrEmptySource
	}
	return nil
}

// Amount returns the current-period amount recorded for a category, zero
// when the category was not present on the statement.
func (r PaycheckRecord) Amount(c Category) Money {
	return r.Amounts[c]
}

// NewRecord creates a pending record for one statement with an empty
// amount map.
func NewRecord(kind PaycheckKind, date time.Time, sourceFile string) PaycheckRecord {
	return PaycheckRecord{
		Kind:          kind,
		StatementDate: date,
		SourceFile:    sourceFile,
		Amounts:       make(map[Category]Money),
		Status:        StatusPending,
	}
}
