package worker

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"paystub/internal/amqp"
	"paystub/internal/core"
	"paystub/internal/log"
	"paystub/internal/sheets/memory"
	"paystub/internal/storage"
)

func newTestWorker(t *testing.T) (*SyncWorker, *storage.SQLiteRepository, *memory.Store) {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "paystub.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	store := memory.New()
	w := NewSyncWorker(repo, store, 10, log.New(log.DefaultConfig()))
	return w, repo, store
}

func validatedRecord(date time.Time) core.PaycheckRecord {
	record := core.NewRecord(core.KindRegular, date, "statement.pdf")
	record.Amounts[core.CategoryRegularPay] = core.Money{Cents: 621800}
	record.Amounts[core.CategoryFederalTax] = core.Money{Cents: -101186}
	record.GrossPay = core.Money{Cents: 621800}
	record.StatutoryTotal = core.Money{Cents: -101186}
	record.NetPay = core.Money{Cents: 520614}
	record.Status = core.StatusValidated
	return record
}

func TestProcessPendingRecordsExports(t *testing.T) {
	w, repo, store := newTestWorker(t)
	ctx := context.Background()
	date := time.Date(2024, time.June, 28, 0, 0, 0, 0, time.UTC)

	if _, err := repo.Put(ctx, validatedRecord(date)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := w.ProcessPendingRecords(ctx); err != nil {
		t.Fatalf("ProcessPendingRecords: %v", err)
	}

	exported, err := store.ListRecords(ctx, 2024)
	if err != nil {
		t.Fatalf("ListRecords: %v", err)
	}
	if len(exported) != 1 {
		t.Fatalf("exported %d records, want 1", len(exported))
	}
	if exported[0].NetPay.Cents != 520614 {
		t.Errorf("exported net = %d, want 520614", exported[0].NetPay.Cents)
	}

	pending, err := repo.GetPendingSyncRecords(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSyncRecords: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("%d records still pending after export, want 0", len(pending))
	}
}

func TestProcessPendingRecordsSkipsUnvalidated(t *testing.T) {
	w, repo, store := newTestWorker(t)
	ctx := context.Background()

	record := validatedRecord(time.Date(2024, time.June, 28, 0, 0, 0, 0, time.UTC))
	record.Status = core.StatusFailed
	if _, err := repo.Put(ctx, record); err != nil {
		t.Fatalf("Put: %v", err)
	}

	if err := w.ProcessPendingRecords(ctx); err != nil {
		t.Fatalf("ProcessPendingRecords: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("exported %d records, want none for a failed record", store.Len())
	}
}

func TestHandleSyncMessage(t *testing.T) {
	w, repo, store := newTestWorker(t)
	ctx := context.Background()

	id, err := repo.Put(ctx, validatedRecord(time.Date(2024, time.July, 12, 0, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	msg := amqp.NewRecordSyncMessage(id, 1)
	if err := w.HandleSyncMessage(ctx, msg); err != nil {
		t.Fatalf("HandleSyncMessage: %v", err)
	}
	if store.Len() != 1 {
		t.Errorf("exported %d records, want 1", store.Len())
	}

	pending, err := repo.GetPendingSyncRecords(ctx, 10)
	if err != nil {
		t.Fatalf("GetPendingSyncRecords: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("%d records still pending after message, want 0", len(pending))
	}
}
