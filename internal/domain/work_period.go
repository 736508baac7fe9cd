package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// WorkPeriod is the number of months worked in the reference year (1..12).
type WorkPeriod struct {
	months int
}

// NewWorkPeriod validates an integral month count.
func NewWorkPeriod(months int) (WorkPeriod, error) {
	if months < 1 || months > 12 {
		return WorkPeriod{}, NewInvalidPeriodError(months)
	}
	return WorkPeriod{months: months}, nil
}

// ParseWorkPeriod validates a raw numeric month count, rejecting fractional
// and non-finite values before the range check.
func ParseWorkPeriod(raw float64) (WorkPeriod, error) {
	if !IsFinite(raw) || raw != math.Trunc(raw) {
		return WorkPeriod{}, NewInvalidPeriodError(raw)
	}
	if raw < 1 || raw > 12 {
		return WorkPeriod{}, NewInvalidPeriodError(raw)
	}
	return WorkPeriod{months: int(raw)}, nil
}

func (p WorkPeriod) Months() int { return p.months }

// Proportion is months/12, the factor applied to every prorated component.
func (p WorkPeriod) Proportion() decimal.Decimal {
	return decimal.NewFromInt(int64(p.months)).Div(twelve)
}

func (p WorkPeriod) IsFullYear() bool { return p.months == 12 }
