package textsource

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"paystub/internal/core"
	"paystub/internal/log"
)

func TestExtractPayDate(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		want    string
		wantErr bool
	}{
		{
			name:  "pay date with colon",
			lines: []string{"Earnings Statement", "Pay Date: 06/28/2024"},
			want:  "2024-06-28",
		},
		{
			name:  "pay date without colon",
			lines: []string{"Pay date 03/15/2024"},
			want:  "2024-03-15",
		},
		{
			name:    "no pay date line",
			lines:   []string{"Earnings Statement", "Regular 6 218 00"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, err := ExtractPayDate(tt.lines)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ExtractPayDate: %v", err)
			}
			if got := date.Format("2006-01-02"); got != tt.want {
				t.Errorf("date = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseFileName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		wantKind core.PaycheckKind
		wantErr  bool
	}{
		{"regular", "2024-06-28.txt", core.KindRegular, false},
		{"bonus", "2024-03-15-bonus.txt", core.KindBonus, false},
		{"vacation", "2024-07-01-vacation.txt", core.KindVacation, false},
		{"year end summary", "2024-12-31-ye-summary.txt", core.KindYTDSummary, false},
		{"unknown suffix", "2024-06-28-overtime.txt", "", true},
		{"not a statement name", "notes.txt", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, kind, err := ParseFileName(tt.fileName)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFileName: %v", err)
			}
			if kind != tt.wantKind {
				t.Errorf("kind = %s, want %s", kind, tt.wantKind)
			}
		})
	}
}

func writeStatement(t *testing.T, dir, name string, lines string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(lines), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestRenameFiles(t *testing.T) {
	input := t.TempDir()
	target := t.TempDir()

	writeStatement(t, input, "statement-download.txt", "Earnings Statement\nPay Date: 06/28/2024\n")
	writeStatement(t, input, "bonus-statement.txt", "Earnings Statement\nPay Date: 03/15/2024\n")
	writeStatement(t, input, "manual_entry-fix.txt", "Pay Date: 01/01/2024\n")
	writeStatement(t, input, "no-date.txt", "Earnings Statement\n")

	organizer := NewOrganizer(log.New(log.DefaultConfig()))
	if err := organizer.RenameFiles(input, target); err != nil {
		t.Fatalf("RenameFiles: %v", err)
	}

	for _, want := range []string{
		filepath.Join(target, "2024", "2024-06-28.txt"),
		filepath.Join(target, "2024", "2024-03-15-bonus.txt"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Errorf("expected organized file %s: %v", want, err)
		}
	}

	// Manual entries and undated files stay in the input folder.
	for _, stay := range []string{"manual_entry-fix.txt", "no-date.txt"} {
		if _, err := os.Stat(filepath.Join(input, stay)); err != nil {
			t.Errorf("file %s should remain in input folder: %v", stay, err)
		}
	}
}

func TestRenameFilesNeverOverwrites(t *testing.T) {
	input := t.TempDir()
	target := t.TempDir()

	if err := os.MkdirAll(filepath.Join(target, "2024"), 0755); err != nil {
		t.Fatal(err)
	}
	writeStatement(t, filepath.Join(target, "2024"), "2024-06-28.txt", "existing\n")
	writeStatement(t, input, "duplicate.txt", "Pay Date: 06/28/2024\n")

	organizer := NewOrganizer(log.New(log.DefaultConfig()))
	if err := organizer.RenameFiles(input, target); err != nil {
		t.Fatalf("RenameFiles: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(target, "2024", "2024-06-28.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "existing\n" {
		t.Error("existing target file was overwritten")
	}
	if _, err := os.Stat(filepath.Join(input, "duplicate.txt")); err != nil {
		t.Errorf("source file should remain when target exists: %v", err)
	}
}

func TestListOrganizedSortsByDate(t *testing.T) {
	target := t.TempDir()
	yearDir := filepath.Join(target, "2024")
	if err := os.MkdirAll(yearDir, 0755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{
		"2024-07-12.txt",
		"2024-03-15-bonus.txt",
		"2024-12-31-ye-summary.txt",
		"notes.txt",
	} {
		writeStatement(t, yearDir, name, "x\n")
	}

	statements, err := ListOrganized(target, 2024)
	if err != nil {
		t.Fatalf("ListOrganized: %v", err)
	}
	if len(statements) != 3 {
		t.Fatalf("got %d statements, want 3", len(statements))
	}
	if statements[0].Kind != core.KindBonus {
		t.Errorf("first statement kind = %s, want bonus", statements[0].Kind)
	}
	if !statements[0].Date.Before(statements[1].Date) {
		t.Error("statements not in date order")
	}
	if statements[2].Kind != core.KindYTDSummary {
		t.Errorf("last statement kind = %s, want ytd_summary", statements[2].Kind)
	}
}

func TestListOrganizedDateParse(t *testing.T) {
	date, kind, err := ParseFileName("2024-06-28.txt")
	if err != nil {
		t.Fatal(err)
	}
	if !date.Equal(time.Date(2024, time.June, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date = %v", date)
	}
	if kind != core.KindRegular {
		t.Errorf("kind = %s", kind)
	}
}
