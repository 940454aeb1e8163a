// Package textsource locates and organizes statement text files. Statement
// text arrives as one .txt file per pay document; files are renamed to
// YYYY-MM-DD[-kind].txt and filed by year so extraction can walk them in
// statement order.
package textsource

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"paystub/internal/core"
	"paystub/internal/log"
)

const statementExt = ".txt"

var payDatePattern = regexp.MustCompile(`(?i)pay\s+date[:\s]*(\d{2}/\d{2}/\d{4})`)

// ReadLines reads one statement file into its text lines.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open statement: %w", err)
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read statement: %w", err)
	}
	return lines, nil
}

// ExtractPayDate finds the statement's pay date line, "Pay Date: 06/28/2024".
func ExtractPayDate(lines []string) (time.Time, error) {
	for _, line := range lines {
		m := payDatePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		date, err := time.Parse("01/02/2006", m[1])
		if err != nil {
			return time.Time{}, fmt.Errorf("parse pay date %q: %w", m[1], err)
		}
		return date, nil
	}
	return time.Time{}, fmt.Errorf("no pay date line found")
}

// Statement is one organized statement file, named for its date and kind.
type Statement struct {
	Path string
	Date time.Time
	Kind core.PaycheckKind
}

var fileNamePattern = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2})(?:-([a-z-]+))?\.txt$`)

// ParseFileName reads the date and kind out of an organized file name,
// "2024-06-28.txt" or "2024-03-15-bonus.txt".
func ParseFileName(name string) (time.Time, core.PaycheckKind, error) {
	m := fileNamePattern.FindStringSubmatch(filepath.Base(name))
	if m == nil {
		return time.Time{}, "", fmt.Errorf("unrecognized statement file name %q", name)
	}
	date, err := time.Parse("2006-01-02", m[1])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("parse date in file name %q: %w", name, err)
	}

	switch m[2] {
	case "":
		return date, core.KindRegular, nil
	case "bonus":
		return date, core.KindBonus, nil
	case "vacation":
		return date, core.KindVacation, nil
	case "ye-summary":
		return date, core.KindYTDSummary, nil
	default:
		return time.Time{}, "", fmt.Errorf("unknown kind suffix %q in file name %q", m[2], name)
	}
}

// kindSuffix maps input file-name tokens to the organized name suffix.
func kindSuffix(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "ytd"), strings.Contains(lower, "ye-summary"):
		return "ye-summary"
	case strings.Contains(lower, "bonus"):
		return "bonus"
	case strings.Contains(lower, "vacation"):
		return "vacation"
	}
	return ""
}

// Organizer renames raw statement files into the target folder tree.
type Organizer struct {
	logger *log.Logger
}

func NewOrganizer(logger *log.Logger) *Organizer {
	return &Organizer{logger: logger.WithComponent(log.ComponentFiles)}
}

// RenameFiles moves each statement from inputDir into targetDir/<year>/,
// named by pay date and kind suffix. Files with manual_entry in the name
// are left alone, and an existing target file is never overwritten.
func (o *Organizer) RenameFiles(inputDir, targetDir string) error {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("read input folder: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != statementExt {
			continue
		}
		if strings.Contains(strings.ToLower(name), "manual_entry") {
			o.logger.Info("skipping manual entry file", log.FieldSourceFile, name)
			continue
		}

		src := filepath.Join(inputDir, name)
		lines, err := ReadLines(src)
		if err != nil {
			o.logger.Error("cannot read statement", log.FieldSourceFile, name, log.FieldError, err)
			continue
		}

		date, err := ExtractPayDate(lines)
		if err != nil {
			o.logger.Warn("cannot determine pay date", log.FieldSourceFile, name, log.FieldError, err)
			continue
		}

		newName := date.Format("2006-01-02")
		if suffix := kindSuffix(name); suffix != "" {
			newName += "-" + suffix
		}
		newName += statementExt

		yearDir := filepath.Join(targetDir, fmt.Sprintf("%d", date.Year()))
		if err := os.MkdirAll(yearDir, 0755); err != nil {
			return fmt.Errorf("create year folder: %w", err)
		}

		dst := filepath.Join(yearDir, newName)
		if _, err := os.Stat(dst); err == nil {
			o.logger.Warn("target file already exists, skipping",
				log.FieldSourceFile, name,
				"target", dst)
			continue
		}

		if err := os.Rename(src, dst); err != nil {
			return fmt.Errorf("move %s: %w", name, err)
		}
		o.logger.Info("organized statement",
			log.FieldSourceFile, name,
			"target", dst)
	}

	return nil
}

// ListOrganized returns the organized statements for a year in statement
// order. File names carry the date, so ordering is lexical.
func ListOrganized(targetDir string, year int) ([]Statement, error) {
	yearDir := filepath.Join(targetDir, fmt.Sprintf("%d", year))
	entries, err := os.ReadDir(yearDir)
	if err != nil {
		return nil, fmt.Errorf("read year folder: %w", err)
	}

	var statements []Statement
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != statementExt {
			continue
		}
		date, kind, err := ParseFileName(entry.Name())
		if err != nil {
			continue
		}
		statements = append(statements, Statement{
			Path: filepath.Join(yearDir, entry.Name()),
			Date: date,
			Kind: kind,
		})
	}

	sort.Slice(statements, func(i, j int) bool {
		if !statements[i].Date.Equal(statements[j].Date) {
			return statements[i].Date.Before(statements[j].Date)
		}
		return statements[i].Path < statements[j].Path
	})
	return statements, nil
}
