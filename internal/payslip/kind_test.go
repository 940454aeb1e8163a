package payslip

import (
	"testing"

	"paystub/internal/core"
)

func TestDetectKindFromFileName(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		want     core.PaycheckKind
	}{
		{"ytd token", "2024-ytd.pdf", core.KindYTDSummary},
		{"year end summary", "ye-summary-2024.pdf", core.KindYTDSummary},
		{"bonus token", "2024-03-15-bonus.pdf", core.KindBonus},
		{"vacation token", "2024-07-01-vacation.pdf", core.KindVacation},
		{"explicit regular", "2024-06-28-regular.pdf", core.KindRegular},
		{"ytd beats bonus", "ytd-bonus-2024.pdf", core.KindYTDSummary},
		{"upper case", "2024-BONUS.PDF", core.KindBonus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, source := DetectKind(tt.fileName, nil)
			if kind != tt.want {
				t.Errorf("DetectKind(%q) = %s, want %s", tt.fileName, kind, tt.want)
			}
			if source != KindFromFileName {
				t.Errorf("DetectKind(%q) source = %d, want KindFromFileName", tt.fileName, source)
			}
		})
	}
}

func TestDetectKindFromContent(t *testing.T) {
	lines := []string{
		"Earnings rate hours this period year to date",
		"Bonus 12 000 00 12 000 00",
		"Federal Income Tax -3 104 19 3 104 19",
	}
	kind, source := DetectKind("2024-03-15.pdf", lines)
	if kind != core.KindBonus {
		t.Errorf("kind = %s, want bonus", kind)
	}
	if source != KindFromContent {
		t.Errorf("source = %d, want KindFromContent", source)
	}
}

func TestDetectKindContentRequiresEqualRuns(t *testing.T) {
	// A bonus mention with differing current and year-to-date figures is a
	// mid-year statement that happens to include a bonus line, not a
	// dedicated bonus check.
	lines := []string{"Bonus 1 000 00 5 000 00"}
	kind, source := DetectKind("2024-06-28.pdf", lines)
	if kind != core.KindRegular || source != KindByDefault {
		t.Errorf("got (%s, %d), want (regular, KindByDefault)", kind, source)
	}
}

func TestDetectKindDefault(t *testing.T) {
	kind, source := DetectKind("2024-06-28.pdf", []string{"Regular 6 218 00 74 026 80"})
	if kind != core.KindRegular {
		t.Errorf("kind = %s, want regular", kind)
	}
	if source != KindByDefault {
		t.Errorf("source = %d, want KindByDefault", source)
	}
}
