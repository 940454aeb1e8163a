// Package payslip turns raw statement text lines into typed monetary facts
// and enforces the payroll accounting identities over them: tokenizer,
// label classifier, line interpreter, paycheck assembler, statement
// validator, and year-to-date reconciler.
package payslip

import (
	"paystub/internal/core"
	"paystub/internal/log"
)

// Interpreter combines the tokenizer and the label classifier to produce
// line facts. It is kind-agnostic: kind-conditioned filtering belongs to
// the assembler.
type Interpreter struct {
	labels *LabelSet
	logger *log.Logger
}

func NewInterpreter(labels *LabelSet, logger *log.Logger) *Interpreter {
	if labels == nil {
		labels = DefaultLabelSet()
	}
	return &Interpreter{labels: labels, logger: logger}
}

// Interpret produces at most one fact per recognized line. Unrecognized
// lines and lines whose amount run is garbled are skipped, never fatal:
// free-text sections and footnoted lines are expected in statement text.
func (it *Interpreter) Interpret(lines []string) []core.LineFact {
	var facts []core.LineFact
	for i, line := range lines {
		fact, ok := it.interpretLine(line)
		if !ok {
			continue
		}
		if it.logger != nil {
			it.logger.Debug("interpreted line",
				log.FieldLine, i,
				log.FieldCategory, string(fact.Category),
				log.FieldCurrentCents, fact.Current.Cents,
				log.FieldYTDCents, fact.YTD.Cents)
		}
		facts = append(facts, fact)
	}
	return facts
}

func (it *Interpreter) interpretLine(line string) (core.LineFact, bool) {
	cls := it.labels.Classify(line)
	if cls.Category == core.CategoryIgnored {
		return core.LineFact{}, false
	}

	tokens, err := Tokenize(cls.Rest)
	if err != nil {
		// A garbled amount run demotes the line to unrecognized.
		if it.logger != nil {
			it.logger.Warn("unparseable amount run, line skipped",
				log.FieldCategory, string(cls.Category),
				log.FieldError, err)
		}
		return core.LineFact{}, false
	}
	if len(tokens) == 0 {
		return core.LineFact{}, false
	}

	it.checkSigns(cls.Category, tokens)

	fact := core.LineFact{Category: cls.Category}
	switch {
	case len(tokens) >= 2:
		fact.Current = tokens[0].Amount
		fact.YTD = tokens[1].Amount
	case cls.Category == core.CategoryCheckingAccount:
		// Checking lines invert the sole-figure convention: one amount is
		// a current-period disbursement, not a running total.
		fact.Current = tokens[0].Amount
	default:
		// The sole figure on a payroll line is the year-to-date total.
		fact.YTD = tokens[0].Amount
	}
	return fact, true
}

// checkSigns flags explicit line-level signs that disagree with the
// category's polarity (ESPP is printed with "+" despite being a
// deduction). The polarity table wins; the disagreement is only logged.
func (it *Interpreter) checkSigns(c core.Category, tokens []Token) {
	if it.logger == nil {
		return
	}
	for _, tok := range tokens {
		if tok.Sign == SignNone {
			continue
		}
		if tok.Sign != c.Polarity() && c.Polarity() != core.PolarityNeutral {
			it.logger.Warn("line sign disagrees with category polarity, keeping polarity",
				log.FieldCategory, string(c),
				log.FieldSign, tok.Sign)
		}
	}
}
