package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

var (
	half    = decimal.NewFromFloat(0.5)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// RoundHalfUp rounds d to the given number of decimal places, resolving ties
// towards positive infinity (floor(d·10^places + 0.5) / 10^places).
func RoundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}

// Round2 rounds a monetary amount to the cent. Every stored or compared
// money value goes through this function.
func Round2(d decimal.Decimal) decimal.Decimal {
	return RoundHalfUp(d, 2)
}

// Money converts a float literal into a cent-rounded decimal.
func Money(f float64) decimal.Decimal {
	return Round2(decimal.NewFromFloat(f))
}

// Prorate scales an amount by months/12 and rounds the result to the cent.
// The multiplication happens before the division so that exact twelfths do
// not accumulate a repeating-decimal error.
func Prorate(amount decimal.Decimal, months int) decimal.Decimal {
	return Round2(amount.Mul(decimal.NewFromInt(int64(months))).Div(twelve))
}

// SumMoney adds already-rounded amounts. Sums of 2-place decimals are exact.
func SumMoney(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}

// Percent renders a rate such as 0.225 as 22.5.
func Percent(rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(hundred)
}

// IsFinite reports whether f is neither NaN nor an infinity.
func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
