package calculation

import (
	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// IRRF on PLR is taxed exclusively at source with its own table, separate
// from the monthly payroll table. Each bracket applies one flat rate to the
// whole amount minus a fixed deduction; the deductions keep the tax
// continuous across bracket boundaries.

// FaixaIsento labels a non-positive amount, which skips the bracket lookup.
const FaixaIsento = "Isento"

// IrrfCalculator evaluates the PLR withholding table.
type IrrfCalculator struct {
	Brackets []domain.IRRFBracket
}

// NewIrrfCalculator2024 creates a calculator with the compiled-in table.
func NewIrrfCalculator2024() *IrrfCalculator {
	return NewIrrfCalculatorWithConfig(domain.DefaultCCT().IRRF)
}

// NewIrrfCalculatorWithConfig creates a calculator over the given brackets,
// which must be sorted ascending by limit. An empty table falls back to the
// compiled-in one.
func NewIrrfCalculatorWithConfig(brackets []domain.IRRFBracket) *IrrfCalculator {
	if len(brackets) == 0 {
		brackets = domain.DefaultCCT().IRRF
	}
	out := make([]domain.IRRFBracket, len(brackets))
	copy(out, brackets)
	return &IrrfCalculator{Brackets: out}
}

// Calculate returns the withholding on totalPlr. A value equal to a bracket's
// limit belongs to that bracket.
func (ic *IrrfCalculator) Calculate(totalPlr decimal.Decimal) domain.TaxResult {
	if !totalPlr.IsPositive() {
		return domain.TaxResult{
			TotalPlr: totalPlr,
			Aliquota: decimal.Zero,
			Deducao:  decimal.Zero,
			IRRF:     decimal.Zero,
			Faixa:    FaixaIsento,
		}
	}

	bracket := ic.bracketFor(totalPlr)
	result := domain.TaxResult{
		TotalPlr: totalPlr,
		Aliquota: bracket.Aliquota,
		Deducao:  bracket.Deducao,
		IRRF:     decimal.Zero,
		Faixa:    bracket.Faixa,
	}
	if bracket.Aliquota.IsZero() {
		return result
	}

	irrf := domain.Round2(totalPlr.Mul(bracket.Aliquota).Sub(bracket.Deducao))
	if irrf.IsPositive() {
		result.IRRF = irrf
	}
	return result
}

func (ic *IrrfCalculator) bracketFor(amount decimal.Decimal) domain.IRRFBracket {
	last := len(ic.Brackets) - 1
	for _, b := range ic.Brackets[:last] {
		if amount.LessThanOrEqual(b.Limite) {
			return b
		}
	}
	return ic.Brackets[last]
}
