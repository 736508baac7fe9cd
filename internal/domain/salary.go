package domain

import (
	"github.com/shopspring/decimal"
)

// Salary is a positive monetary amount rounded to the cent at construction.
type Salary struct {
	value decimal.Decimal
}

// NewSalary validates a raw salary coming from the presentation layer.
func NewSalary(raw float64) (Salary, error) {
	if !IsFinite(raw) || raw <= 0 {
		return Salary{}, NewInvalidSalaryError(raw)
	}
	return NewSalaryFromDecimal(decimal.NewFromFloat(raw))
}

// NewSalaryFromDecimal validates an already-decimal salary.
func NewSalaryFromDecimal(d decimal.Decimal) (Salary, error) {
	rounded := Round2(d)
	if !rounded.IsPositive() {
		return Salary{}, NewInvalidSalaryError(d.String())
	}
	return Salary{value: rounded}, nil
}

// Value returns the rounded amount.
func (s Salary) Value() decimal.Decimal {
	return s.value
}

func (s Salary) String() string {
	return s.value.StringFixed(2)
}
