package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"paystub/internal/amqp"
	"paystub/internal/cli"
	"paystub/internal/config"
	"paystub/internal/core"
	"paystub/internal/log"
	"paystub/internal/payslip"
	"paystub/internal/services"
	gsheet "paystub/internal/sheets/google"
	"paystub/internal/textsource"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	var (
		feature = flag.String("feature", "", "feature to run: rename-files | extract | reconcile | export-sheets")
		input   = flag.String("input", "", "input statements folder (overrides INPUT_STATEMENTS_FOLDER)")
		target  = flag.String("target", "", "organized statements folder (overrides TARGET_STATEMENTS_FOLDER)")
		period  = flag.String("period", "", "period for extract/reconcile/export: YYYY or MM-YYYY")
	)
	flag.Parse()

	cfg := cli.LoadAndValidateConfig(logger)
	if *input != "" {
		cfg.InputStatementsFolder = *input
	}
	if *target != "" {
		cfg.TargetStatementsFolder = *target
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch *feature {
	case "rename-files":
		err = runRenameFiles(cfg, logger)
	case "extract":
		err = runExtract(ctx, cfg, logger, *period)
	case "reconcile":
		err = runReconcile(ctx, cfg, logger, *period)
	case "export-sheets":
		err = runExportSheets(ctx, cfg, logger, *period)
	default:
		fmt.Fprintln(os.Stderr, "usage: paystub -feature rename-files|extract|reconcile|export-sheets [-period YYYY|MM-YYYY]")
		os.Exit(2)
	}

	if err != nil {
		logger.Error("feature failed", "feature", *feature, log.FieldError, err)
		os.Exit(1)
	}
}

func runRenameFiles(cfg *config.Config, logger *log.Logger) error {
	organizer := textsource.NewOrganizer(logger)
	return organizer.RenameFiles(cfg.InputStatementsFolder, cfg.TargetStatementsFolder)
}

func runExtract(ctx context.Context, cfg *config.Config, logger *log.Logger, period string) error {
	rng, err := services.ParsePeriod(period)
	if err != nil {
		return err
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	labels, err := loadLabels(cfg)
	if err != nil {
		return err
	}

	// Extraction proceeds without a broker; the worker's polling backstop
	// picks the records up.
	var publisher *amqp.Client
	if cfg.AMQPURL != "" {
		publisher, err = amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("AMQP unavailable, extraction will not publish sync messages", log.FieldError, err)
		} else {
			defer publisher.Close()
		}
	}

	interpreter := payslip.NewInterpreter(labels, logger.WithComponent(log.ComponentInterpret))
	service := services.NewExtractionService(interpreter, repo, publisher, logger)

	processed, err := service.ExtractYear(ctx, cfg.TargetStatementsFolder, rng.Year)
	if err != nil {
		return err
	}
	logger.Info("extraction finished", log.FieldYear, rng.Year, "statements", processed)
	return nil
}

func runReconcile(ctx context.Context, cfg *config.Config, logger *log.Logger, period string) error {
	rng, err := services.ParsePeriod(period)
	if err != nil {
		return err
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	service := services.NewReconcileService(repo, logger)
	_, err = service.Reconcile(ctx, rng, os.Stdout)
	return err
}

func runExportSheets(ctx context.Context, cfg *config.Config, logger *log.Logger, period string) error {
	rng, err := services.ParsePeriod(period)
	if err != nil {
		return err
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	client, err := gsheet.New(ctx, cfg.GoogleSpreadsheetID, cfg.GoogleSheetName, cfg.GoogleCredentialsFile)
	if err != nil {
		return fmt.Errorf("initialize sheets client: %w", err)
	}

	records, err := repo.GetByYear(ctx, rng.Year)
	if err != nil {
		return err
	}

	exported := 0
	for _, record := range records {
		if record.Status != core.StatusValidated {
			continue
		}
		ref, err := client.Append(ctx, record)
		if err != nil {
			return fmt.Errorf("export record %d: %w", record.ID, err)
		}
		if err := repo.MarkSynced(ctx, record.ID); err != nil {
			logger.Warn("could not mark record synced", log.FieldRecordID, record.ID, log.FieldError, err)
		}
		logger.Info("exported record", log.FieldRecordID, record.ID, log.FieldSheetsRef, ref)
		exported++
	}

	logger.Info("export finished", log.FieldYear, rng.Year, "records", exported)
	return nil
}

func loadLabels(cfg *config.Config) (*payslip.LabelSet, error) {
	if cfg.LabelSetFile == "" {
		return nil, nil
	}
	return payslip.LoadLabelSet(cfg.LabelSetFile)
}
