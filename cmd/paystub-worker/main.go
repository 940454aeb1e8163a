package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"paystub/internal/amqp"
	"paystub/internal/cli"
	"paystub/internal/log"
	"paystub/internal/sheets"
	gsheet "paystub/internal/sheets/google"
	"paystub/internal/sheets/memory"
	"paystub/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	logger.Info("starting paystub-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Without a spreadsheet the worker still runs, exporting into an
	// in-memory sink for local development.
	var writer sheets.RecordWriter
	if cfg.GoogleSpreadsheetID != "" {
		client, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, cfg.GoogleCredentialsFile)
		if err != nil {
			logger.Error("failed to initialize Google Sheets client", log.FieldError, err)
			os.Exit(1)
		}
		writer = client
		logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		writer = memory.New()
		logger.Info("no GOOGLE_SPREADSHEET_ID provided, using in-memory export sink")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("failed to initialize AMQP client", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(repo, writer, cfg.SyncBatchSize, logger)

	if err := syncWorker.StartupSyncCheck(ctx); err != nil {
		logger.Error("startup sync check failed", log.FieldError, err)
	}

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		return amqpClient.ConsumeRecordSync(ctx, func(msg *amqp.RecordSyncMessage) error {
			return syncWorker.HandleSyncMessage(ctx, msg)
		})
	})

	group.Go(func() error {
		ticker := time.NewTicker(cfg.SyncInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := syncWorker.ProcessPendingRecords(ctx); err != nil {
					logger.Error("periodic sync failed", log.FieldError, err)
				}
			}
		}
	})

	if err := group.Wait(); err != nil && err != context.Canceled {
		logger.Error("worker stopped", log.FieldError, err)
		os.Exit(1)
	}
	logger.Info("worker stopped gracefully")
}
