package payslip

import (
	"fmt"
	"strings"

	"paystub/internal/core"
)

// Sign values carried by a token. The polarity table in core decides how an
// amount enters a record; an explicit sign is only recorded so the
// interpreter can flag disagreements.
const (
	SignNone     = 0
	SignPositive = 1
	SignNegative = -1
)

// Token is one monetary amount parsed from a run of space-grouped digit
// clusters, e.g. "1 625 00" -> 1625.00. The amount is always a magnitude.
type Token struct {
	Amount core.Money
	Sign   int
}

// TokenParseError reports a digit-group run that cannot form an amount,
// such as a run with no two-digit cents cluster.
type TokenParseError struct {
	Input   string
	Cluster string
}

func (e *TokenParseError) Error() string {
	return fmt.Sprintf("malformed amount run %q: cluster %q", e.Input, e.Cluster)
}

// maxTokensPerLine bounds how many amount runs a statement line carries:
// current-period and year-to-date. Anything beyond the second run is
// annotation noise ("Your federal taxable wages this period are ...").
const maxTokensPerLine = 2

// Tokenize parses the text following a recognized label into its ordered
// amount tokens. A token is a run of digit clusters terminated by a
// two-digit cents cluster; clusters between the first and the cents cluster
// are thousands groups. A lone "*" footnote marker is skipped, a trailing
// "*" on a cluster is stripped, and the first non-numeric word ends the
// scan: everything after it is annotation text, not an error.
func Tokenize(s string) ([]Token, error) {
	fields := strings.Fields(s)

	var tokens []Token
	i := 0
	for i < len(fields) && len(tokens) < maxTokensPerLine {
		f := fields[i]
		if f == "*" {
			i++
			continue
		}

		sign := SignNone
		switch {
		case strings.HasPrefix(f, "-"):
			sign = SignNegative
			f = f[1:]
		case strings.HasPrefix(f, "+"):
			sign = SignPositive
			f = f[1:]
		}

		first, ok := cleanCluster(f)
		if !ok {
			// Annotation text; the amount runs are over.
			break
		}

		// The first cluster starts the run regardless of width; the run ends
		// at the first two-digit cluster after it.
		run := []string{first}
		j := i + 1
		terminated := false
		for !terminated && j < len(fields) {
			c, ok := cleanCluster(fields[j])
			if !ok {
				break
			}
			run = append(run, c)
			j++
			if len(c) == 2 {
				terminated = true
			}
		}

		// The cents cluster must exist and must be exactly two digits.
		last := run[len(run)-1]
		if len(run) < 2 || len(last) != 2 {
			return nil, &TokenParseError{Input: s, Cluster: last}
		}

		cents, err := clustersToCents(run)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, Token{Amount: core.Money{Cents: cents}, Sign: sign})
		i = j
	}

	return tokens, nil
}

// cleanCluster strips a trailing footnote marker and reports whether the
// field is a pure digit cluster.
func cleanCluster(f string) (string, bool) {
	f = strings.TrimSuffix(f, "*")
	if f == "" {
		return "", false
	}
	for i := 0; i < len(f); i++ {
		if f[i] < '0' || f[i] > '9' {
			return "", false
		}
	}
	return f, true
}

func clustersToCents(run []string) (int64, error) {
	dollars := strings.Join(run[:len(run)-1], "")
	centsPart := run[len(run)-1]

	var value int64
	for i := 0; i < len(dollars); i++ {
		d := int64(dollars[i] - '0')
		if value > ((1<<63-1)-d)/10 {
			return 0, &TokenParseError{Input: dollars, Cluster: dollars}
		}
		value = value*10 + d
	}
	cents := int64(centsPart[0]-'0')*10 + int64(centsPart[1]-'0')
	const maxSafe = (1<<63 - 1) / 100
	if value > maxSafe {
		return 0, &TokenParseError{Input: dollars, Cluster: dollars}
	}
	return value*100 + cents, nil
}
