package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"paystub/internal/core"

	_ "modernc.org/sqlite"
)

const dateLayout = "2006-01-02"

// PendingSyncRecord identifies a validated record awaiting export.
type PendingSyncRecord struct {
	ID        int64
	Version   int64
	CreatedAt time.Time
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Put persists a record, keyed on (statement_date, kind). Re-extracting the
// same statement overwrites the previous row instead of duplicating it, so
// extraction runs are safe to repeat.
func (r *SQLiteRepository) Put(ctx context.Context, record core.PaycheckRecord) (int64, error) {
	amounts, err := marshalAmounts(record.Amounts)
	if err != nil {
		return 0, fmt.Errorf("encode amounts: %w", err)
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO paycheck_records
			(kind, statement_date, source_file, amounts,
			 gross_cents, statutory_cents, other_cents, net_cents, status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (statement_date, kind) DO UPDATE SET
			source_file = excluded.source_file,
			amounts = excluded.amounts,
			gross_cents = excluded.gross_cents,
			statutory_cents = excluded.statutory_cents,
			other_cents = excluded.other_cents,
			net_cents = excluded.net_cents,
			status = excluded.status,
			version = paycheck_records.version + 1,
			sync_status = 'pending',
			updated_at = CURRENT_TIMESTAMP
		RETURNING id`,
		string(record.Kind),
		record.StatementDate.Format(dateLayout),
		record.SourceFile,
		amounts,
		record.GrossPay.Cents,
		record.StatutoryTotal.Cents,
		record.OtherDeductionTotal.Cents,
		record.NetPay.Cents,
		string(record.Status),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("put paycheck record: %w", err)
	}
	return id, nil
}

// GetRecord retrieves a single record by ID.
func (r *SQLiteRepository) GetRecord(ctx context.Context, id int64) (*core.PaycheckRecord, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+` WHERE id = ?`, id)
	record, err := scanRecord(row)
	if err != nil {
		return nil, fmt.Errorf("get paycheck record %d: %w", id, err)
	}
	return record, nil
}

// GetByYear returns all records dated within the year, oldest first.
func (r *SQLiteRepository) GetByYear(ctx context.Context, year int) ([]core.PaycheckRecord, error) {
	from := fmt.Sprintf("%04d-01-01", year)
	to := fmt.Sprintf("%04d-12-31", year)
	return r.listBetween(ctx, from, to)
}

// GetByMonthYear returns all records dated from the start of the year
// through the end of the given month, oldest first.
func (r *SQLiteRepository) GetByMonthYear(ctx context.Context, year int, month int) ([]core.PaycheckRecord, error) {
	from := fmt.Sprintf("%04d-01-01", year)
	lastDay := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return r.listBetween(ctx, from, lastDay.Format(dateLayout))
}

func (r *SQLiteRepository) listBetween(ctx context.Context, from, to string) ([]core.PaycheckRecord, error) {
	rows, err := r.db.QueryContext(ctx, selectColumns+`
		WHERE statement_date BETWEEN ? AND ?
		ORDER BY statement_date, id`, from, to)
	if err != nil {
		return nil, fmt.Errorf("list paycheck records: %w", err)
	}
	defer rows.Close()

	var records []core.PaycheckRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan paycheck record: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// GetPendingSyncRecords returns validated records not yet exported.
func (r *SQLiteRepository) GetPendingSyncRecords(ctx context.Context, limit int) ([]PendingSyncRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, version, created_at FROM paycheck_records
		WHERE sync_status = 'pending' AND status = 'validated'
		ORDER BY created_at
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync records: %w", err)
	}
	defer rows.Close()

	var pending []PendingSyncRecord
	for rows.Next() {
		var p PendingSyncRecord
		if err := rows.Scan(&p.ID, &p.Version, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending sync record: %w", err)
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

// MarkSynced marks a record as successfully exported.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE paycheck_records
		SET sync_status = 'synced', updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark record synced: %w", err)
	}
	return nil
}

// MarkSyncError marks a record whose export failed.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id int64) error {
	if _, err := r.db.ExecContext(ctx, `
		UPDATE paycheck_records
		SET sync_status = 'error', updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark record sync error: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT id, kind, statement_date, source_file, amounts,
	       gross_cents, statutory_cents, other_cents, net_cents, status
	FROM paycheck_records`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*core.PaycheckRecord, error) {
	var (
		record   core.PaycheckRecord
		kind     string
		date     string
		amounts  string
		gross    int64
		statut   int64
		other    int64
		net      int64
		status   string
	)
	if err := row.Scan(&record.ID, &kind, &date, &record.SourceFile, &amounts,
		&gross, &statut, &other, &net, &status); err != nil {
		return nil, err
	}

	parsed, err := time.Parse(dateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("parse statement date %q: %w", date, err)
	}

	record.Kind = core.PaycheckKind(kind)
	record.StatementDate = parsed
	record.GrossPay = core.Money{Cents: gross}
	record.StatutoryTotal = core.Money{Cents: statut}
	record.OtherDeductionTotal = core.Money{Cents: other}
	record.NetPay = core.Money{Cents: net}
	record.Status = core.RecordStatus(status)
	record.Amounts, err = unmarshalAmounts(amounts)
	if err != nil {
		return nil, fmt.Errorf("decode amounts: %w", err)
	}
	return &record, nil
}

func marshalAmounts(amounts map[core.Category]core.Money) (string, error) {
	cents := make(map[string]int64, len(amounts))
	for category, amount := range amounts {
		cents[string(category)] = amount.Cents
	}
	data, err := json.Marshal(cents)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalAmounts(data string) (map[core.Category]core.Money, error) {
	var cents map[string]int64
	if err := json.Unmarshal([]byte(data), &cents); err != nil {
		return nil, err
	}
	amounts := make(map[core.Category]core.Money, len(cents))
	for category, c := range cents {
		amounts[core.Category(category)] = core.Money{Cents: c}
	}
	return amounts, nil
}
