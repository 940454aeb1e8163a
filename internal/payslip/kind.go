package payslip

import (
	"strings"

	"paystub/internal/core"
)

// KindSource records where a paycheck kind determination came from.
type KindSource int

const (
	KindFromFileName KindSource = iota
	KindFromContent
	KindByDefault
)

func (s KindSource) String() string {
	switch s {
	case KindFromFileName:
		return "file_name"
	case KindFromContent:
		return "content"
	default:
		return "default"
	}
}

// DetectKind determines the paycheck kind for one statement. File-name
// tokens are authoritative and are checked in fixed priority: ytd, then
// bonus, then vacation, then an explicit regular marker. Content
// heuristics run only when the name carries no signal; when neither
// yields a kind the result is regular with KindByDefault so the caller
// can log the fallback.
func DetectKind(fileName string, lines []string) (core.PaycheckKind, KindSource) {
	name := strings.ToLower(fileName)
	switch {
	case strings.Contains(name, "ytd"), strings.Contains(name, "ye-summary"):
		return core.KindYTDSummary, KindFromFileName
	case strings.Contains(name, "bonus"):
		return core.KindBonus, KindFromFileName
	case strings.Contains(name, "vacation"):
		return core.KindVacation, KindFromFileName
	case strings.Contains(name, "regular"):
		return core.KindRegular, KindFromFileName
	}

	if contentSignals(lines, "bonus") {
		return core.KindBonus, KindFromContent
	}
	if contentSignals(lines, "vacation") {
		return core.KindVacation, KindFromContent
	}

	return core.KindRegular, KindByDefault
}

// contentSignals reports whether a line carries the keyword together with
// two equal amount runs, the shape a dedicated bonus or vacation check
// prints when the current-period figure equals the year-to-date figure.
func contentSignals(lines []string, keyword string) bool {
	for _, line := range lines {
		lower := strings.ToLower(line)
		idx := strings.Index(lower, keyword)
		if idx < 0 {
			continue
		}
		tokens, err := Tokenize(line[idx+len(keyword):])
		if err != nil || len(tokens) < 2 {
			continue
		}
		if tokens[0].Amount == tokens[1].Amount && !tokens[0].Amount.IsZero() {
			return true
		}
	}
	return false
}
