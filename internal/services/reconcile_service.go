package services

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"paystub/internal/core"
	"paystub/internal/log"
	"paystub/internal/payslip"
	"paystub/internal/report"
	"paystub/internal/storage"
)

// ReconcileService aggregates persisted records for a period and renders
// the reconciliation report.
type ReconcileService struct {
	storage *storage.SQLiteRepository
	logger  *log.Logger
}

func NewReconcileService(repo *storage.SQLiteRepository, logger *log.Logger) *ReconcileService {
	return &ReconcileService{
		storage: repo,
		logger:  logger.WithComponent(log.ComponentReconcile),
	}
}

// ParsePeriod reads a "YYYY" or "MM-YYYY" period argument.
func ParsePeriod(arg string) (payslip.Range, error) {
	if month, year, ok := strings.Cut(arg, "-"); ok {
		m, err := strconv.Atoi(month)
		if err != nil || m < 1 || m > 12 {
			return payslip.Range{}, fmt.Errorf("invalid month in period %q: expected MM-YYYY", arg)
		}
		y, err := strconv.Atoi(year)
		if err != nil {
			return payslip.Range{}, fmt.Errorf("invalid year in period %q: expected MM-YYYY", arg)
		}
		return payslip.Range{Year: y, Month: m}, nil
	}

	y, err := strconv.Atoi(arg)
	if err != nil {
		return payslip.Range{}, fmt.Errorf("invalid period %q: expected YYYY or MM-YYYY", arg)
	}
	return payslip.Range{Year: y}, nil
}

// Reconcile runs the year-to-date check for a period and writes the report.
func (s *ReconcileService) Reconcile(ctx context.Context, period payslip.Range, w io.Writer) (core.ReconciliationReport, error) {
	var (
		records []core.PaycheckRecord
		err     error
	)
	if period.Month == 0 {
		records, err = s.storage.GetByYear(ctx, period.Year)
	} else {
		records, err = s.storage.GetByMonthYear(ctx, period.Year, period.Month)
	}
	if err != nil {
		return core.ReconciliationReport{}, fmt.Errorf("load records: %w", err)
	}

	rep := payslip.Reconcile(records, period)
	s.logger.Info("reconciliation completed",
		log.FieldYear, period.Year,
		log.FieldMonth, period.Month,
		"records", rep.RecordCount,
		"gross_matched", rep.GrossMatched,
		"net_matched", rep.NetMatched)

	if err := report.WriteReconciliation(w, rep); err != nil {
		return rep, fmt.Errorf("write report: %w", err)
	}
	return rep, nil
}
