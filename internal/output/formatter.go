package output

import (
	"strings"

	"github.com/rgehrsitz/plrgo/internal/calculation"
	"github.com/shopspring/decimal"
)

var cent = decimal.New(1, -2)

// Formatter renders engine results for one output format.
type Formatter interface {
	Name() string
	FormatPlr(result *calculation.PlrResult) ([]byte, error)
	FormatDiscovery(result *calculation.DiscoverMultiplierResult) ([]byte, error)
}

// GetFormatterByName returns the formatter for name, or nil when unknown.
func GetFormatterByName(name string) Formatter {
	switch strings.ToLower(name) {
	case "console", "":
		return ConsoleFormatter{}
	case "json":
		return JSONFormatter{}
	case "csv":
		return CSVFormatter{}
	default:
		return nil
	}
}

// FormatNames lists the accepted formatter names.
func FormatNames() []string {
	return []string{"console", "json", "csv"}
}

// FormatCurrency renders an amount in Brazilian notation: R$ 1.234,56.
func FormatCurrency(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	s := amount.Abs().StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]

	var b strings.Builder
	if neg {
		b.WriteString("-")
	}
	b.WriteString("R$ ")
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// FormatPercent renders a rate such as 0.225 as 22,5%.
func FormatPercent(rate decimal.Decimal) string {
	p := rate.Mul(decimal.NewFromInt(100))
	return strings.Replace(p.String(), ".", ",", 1) + "%"
}

// FormatMultiplier renders a multiplier such as 2.2 as 2,2x.
func FormatMultiplier(m decimal.Decimal) string {
	return strings.Replace(m.StringFixed(1), ".", ",", 1) + "x"
}
