package worker

import (
	"context"
	"fmt"

	"paystub/internal/amqp"
	"paystub/internal/log"
	"paystub/internal/sheets"
	"paystub/internal/storage"
)

// SyncWorker exports validated paycheck records from SQLite to the
// configured export target, driven by AMQP messages with a polling backstop
// for messages lost while the worker was down.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	sheets    sheets.RecordWriter
	batchSize int
	logger    *log.Logger
}

func NewSyncWorker(repo *storage.SQLiteRepository, writer sheets.RecordWriter, batchSize int, logger *log.Logger) *SyncWorker {
	return &SyncWorker{
		storage:   repo,
		sheets:    writer,
		batchSize: batchSize,
		logger:    logger.WithComponent(log.ComponentWorker),
	}
}

// HandleSyncMessage processes a single record sync message from AMQP
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.RecordSyncMessage) error {
	w.logger.InfoContext(ctx, "processing sync message",
		log.FieldRecordID, msg.ID,
		"version", msg.Version)

	return w.exportRecord(ctx, msg.ID)
}

// ProcessPendingRecords exports any validated records that have not been
// synced yet. This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPendingRecords(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncRecords(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending records: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	w.logger.InfoContext(ctx, "processing pending records", log.FieldBatchSize, len(pending))

	for _, p := range pending {
		if err := w.exportRecord(ctx, p.ID); err != nil {
			w.logger.ErrorContext(ctx, "failed to export record",
				log.FieldRecordID, p.ID,
				log.FieldError, err)
		}
	}
	return nil
}

// StartupSyncCheck exports records left pending from a previous run. A
// larger batch is used since downtime can accumulate a backlog.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncRecords(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending records for startup check: %w", err)
	}
	if len(pending) == 0 {
		w.logger.InfoContext(ctx, "no pending records found on startup")
		return nil
	}

	w.logger.InfoContext(ctx, "found pending records on startup", log.FieldBatchSize, len(pending))

	synced := 0
	failed := 0
	for _, p := range pending {
		if err := w.exportRecord(ctx, p.ID); err != nil {
			w.logger.ErrorContext(ctx, "startup export failed",
				log.FieldRecordID, p.ID,
				log.FieldError, err)
			failed++
			continue
		}
		synced++
	}

	w.logger.InfoContext(ctx, "startup sync completed",
		"total", len(pending),
		"synced", synced,
		"errors", failed)
	return nil
}

func (w *SyncWorker) exportRecord(ctx context.Context, id int64) error {
	record, err := w.storage.GetRecord(ctx, id)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			w.logger.ErrorContext(ctx, "failed to mark sync error",
				log.FieldRecordID, id,
				log.FieldError, markErr)
		}
		return fmt.Errorf("get record from storage: %w", err)
	}

	ref, err := w.sheets.Append(ctx, *record)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, id); markErr != nil {
			w.logger.ErrorContext(ctx, "failed to mark sync error",
				log.FieldRecordID, id,
				log.FieldError, markErr)
		}
		return fmt.Errorf("append to export target: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, id); err != nil {
		// The export itself succeeded; log and move on.
		w.logger.ErrorContext(ctx, "failed to mark record synced",
			log.FieldRecordID, id,
			log.FieldError, err)
	}

	w.logger.InfoContext(ctx, "exported record",
		log.FieldRecordID, id,
		log.FieldSheetsRef, ref)
	return nil
}
