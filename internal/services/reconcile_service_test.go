package services

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"paystub/internal/core"
	"paystub/internal/log"
	"paystub/internal/payslip"
	"paystub/internal/storage"
)

func TestParsePeriod(t *testing.T) {
	tests := []struct {
		arg     string
		want    payslip.Range
		wantErr bool
	}{
		{"2024", payslip.Range{Year: 2024}, false},
		{"06-2024", payslip.Range{Year: 2024, Month: 6}, false},
		{"13-2024", payslip.Range{}, true},
		{"june", payslip.Range{}, true},
		{"00-2024", payslip.Range{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := ParsePeriod(tt.arg)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePeriod: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParsePeriod(%q) = %+v, want %+v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestReconcileFromStore(t *testing.T) {
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "paystub.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	ctx := context.Background()
	for _, month := range []time.Month{time.May, time.June, time.July} {
		record := core.NewRecord(core.KindRegular, time.Date(2024, month, 28, 0, 0, 0, 0, time.UTC), "r.pdf")
		record.Amounts[core.CategoryRegularPay] = core.Money{Cents: 621800}
		record.Amounts[core.CategoryFederalTax] = core.Money{Cents: -172234}
		record.GrossPay = core.Money{Cents: 621800}
		record.StatutoryTotal = core.Money{Cents: -172234}
		record.NetPay = core.Money{Cents: 449566}
		record.Status = core.StatusValidated
		if _, err := repo.Put(ctx, record); err != nil {
			t.Fatalf("Put: %v", err)
		}
	}

	service := NewReconcileService(repo, log.New(log.DefaultConfig()))

	var sb strings.Builder
	rep, err := service.Reconcile(ctx, payslip.Range{Year: 2024, Month: 6}, &sb)
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}

	if rep.RecordCount != 2 {
		t.Errorf("record count = %d, want 2 (May and June)", rep.RecordCount)
	}
	if !rep.GrossMatched || !rep.NetMatched {
		t.Errorf("expected matched report: %+v", rep)
	}
	if !strings.Contains(sb.String(), "06-2024") {
		t.Error("report output missing period label")
	}
}
