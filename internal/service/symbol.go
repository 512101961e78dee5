package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/guttosm/smartinvest/internal/quote"
	"github.com/guttosm/smartinvest/internal/upstream"
)

// symbolPattern accepts exchange tickers such as AAPL, BRK.B, PETR4.SA, ^GSPC and EURUSD=X.
var symbolPattern = regexp.MustCompile(`^[A-Z0-9^][A-Z0-9.\-^=]{0,14}$`)

// ErrMalformedSymbol marks a symbol that cannot be a ticker. It matches
// upstream.ErrInvalidSymbol too.
var ErrMalformedSymbol = fmt.Errorf("malformed symbol: %w", upstream.ErrInvalidSymbol)

// NormalizeSymbol trims and uppercases symbol and rejects anything that is
// not shaped like a ticker.
func NormalizeSymbol(symbol string) (string, error) {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolPattern.MatchString(s) {
		return "", fmt.Errorf("%w: %q", ErrMalformedSymbol, symbol)
	}
	return s, nil
}

// NormalizeSymbols splits a comma separated list, normalizing each entry and
// dropping blanks and duplicates. Malformed entries are returned in rejected,
// one per entry, with the raw text as Symbol.
func NormalizeSymbols(csv string) (valid []string, rejected []quote.SymbolError) {
	seen := map[string]bool{}
	for _, part := range strings.Split(csv, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		s, err := NormalizeSymbol(part)
		if err != nil {
			rejected = append(rejected, quote.SymbolError{Symbol: strings.TrimSpace(part), Err: err})
			continue
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		valid = append(valid, s)
	}
	return valid, rejected
}
