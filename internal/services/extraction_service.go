package services

import (
	"context"
	"fmt"
	"path/filepath"

	"paystub/internal/amqp"
	"paystub/internal/core"
	"paystub/internal/log"
	"paystub/internal/payslip"
	"paystub/internal/storage"
	"paystub/internal/textsource"
)

// ExtractionService drives the statement pipeline: text lines in, a
// validated and persisted PaycheckRecord out. A validation failure aborts
// the whole run so no partial data enters the store.
type ExtractionService struct {
	interpreter *payslip.Interpreter
	storage     *storage.SQLiteRepository
	publisher   *amqp.Client
	logger      *log.Logger
}

// NewExtractionService wires the pipeline. The publisher may be nil; the
// sync worker's polling backstop picks the records up later.
func NewExtractionService(interpreter *payslip.Interpreter, repo *storage.SQLiteRepository, publisher *amqp.Client, logger *log.Logger) *ExtractionService {
	return &ExtractionService{
		interpreter: interpreter,
		storage:     repo,
		publisher:   publisher,
		logger:      logger.WithComponent(log.ComponentExtraction),
	}
}

// ExtractStatement processes one statement's lines into a persisted record.
func (s *ExtractionService) ExtractStatement(ctx context.Context, st textsource.Statement) (*core.PaycheckRecord, error) {
	lines, err := textsource.ReadLines(st.Path)
	if err != nil {
		return nil, err
	}

	// A suffixless file name defaults to regular; content detection can
	// still upgrade it when a dedicated bonus or vacation check was filed
	// without its marker.
	kind := st.Kind
	if kind == "" || kind == core.KindRegular {
		detected, source := payslip.DetectKind(filepath.Base(st.Path), lines)
		switch source {
		case payslip.KindFromContent:
			s.logger.Info("kind determined from statement content",
				log.FieldSourceFile, st.Path,
				log.FieldKind, string(detected),
				log.FieldKindSource, source.String())
			kind = detected
		case payslip.KindByDefault:
			if kind == "" {
				s.logger.Warn("no kind signal, assuming regular paycheck",
					log.FieldSourceFile, st.Path,
					log.FieldKindSource, source.String())
				kind = detected
			}
		default:
			kind = detected
		}
	}

	var record core.PaycheckRecord
	if kind == core.KindYTDSummary {
		// Year-end summaries carry no per-period money; store the marker
		// record and skip interpretation and validation.
		record = payslip.Assemble(nil, kind, st.Date, st.Path)
	} else {
		facts := s.interpreter.Interpret(lines)
		record = payslip.Assemble(facts, kind, st.Date, st.Path)
		if err := payslip.Validate(&record); err != nil {
			s.logger.Error("statement failed validation",
				log.FieldSourceFile, st.Path,
				log.FieldKind, string(kind),
				log.FieldError, err)
			return nil, err
		}
	}

	id, err := s.storage.Put(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("persist record: %w", err)
	}
	record.ID = id

	s.logger.Info("extracted statement",
		log.FieldSourceFile, st.Path,
		log.FieldKind, string(record.Kind),
		log.FieldRecordID, id,
		log.FieldStatus, string(record.Status))

	if s.publisher != nil && record.Status == core.StatusValidated {
		// Export trouble must not fail the extraction; the worker sweeps
		// pending records on its own schedule.
		if err := s.publisher.PublishRecordSync(ctx, id, 1); err != nil {
			s.logger.Warn("could not publish sync message",
				log.FieldRecordID, id,
				log.FieldError, err)
		}
	}

	return &record, nil
}

// ExtractYear walks the organized statements for a year in date order,
// stopping at the first failure.
func (s *ExtractionService) ExtractYear(ctx context.Context, targetDir string, year int) (int, error) {
	statements, err := textsource.ListOrganized(targetDir, year)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, st := range statements {
		if _, err := s.ExtractStatement(ctx, st); err != nil {
			return processed, fmt.Errorf("extract %s: %w", st.Path, err)
		}
		processed++
	}

	s.logger.Info("extraction run completed",
		log.FieldYear, year,
		"statements", processed)
	return processed, nil
}
