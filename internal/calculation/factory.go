package calculation

import (
	"github.com/rgehrsitz/plrgo/internal/domain"
)

// CalculatorFactory maps a bank identifier to its configured strategy.
type CalculatorFactory struct {
	Rules domain.CCTConfig
}

// NewCalculatorFactory creates a factory over the compiled-in CCT table.
func NewCalculatorFactory() *CalculatorFactory {
	return &CalculatorFactory{Rules: domain.DefaultCCT()}
}

// NewCalculatorFactoryWithConfig creates a factory for another CCT vintage.
func NewCalculatorFactoryWithConfig(rules domain.CCTConfig) *CalculatorFactory {
	return &CalculatorFactory{Rules: rules}
}

// Create returns the strategy for id. Unknown identifiers fail with an
// *domain.UnknownBankError; there is no fallback strategy.
func (f *CalculatorFactory) Create(id domain.BankID, opts Options) (Calculator, error) {
	switch id {
	case domain.BankItau:
		return NewItauCalculator(f.Rules, opts), nil
	case domain.BankSantander:
		return NewSantanderCalculator(f.Rules, opts), nil
	case domain.BankBradesco:
		return NewBradescoCalculator(f.Rules, opts), nil
	case domain.BankBB:
		return NewBBCalculator(f.Rules, opts), nil
	case domain.BankCaixa:
		return NewCaixaCalculator(f.Rules, opts), nil
	case domain.BankBTG:
		return f.fenaban(true, opts), nil
	case domain.BankSafra:
		return f.fenaban(false, opts), nil
	default:
		return nil, &domain.UnknownBankError{ID: string(id)}
	}
}

func (f *CalculatorFactory) fenaban(majoracao bool, opts Options) *FenabanCalculator {
	c := NewFenabanCalculatorWithConfig(f.Rules, majoracao)
	if opts.TetoMajoracao != nil {
		c.TetoMajoracao = *opts.TetoMajoracao
	}
	return c
}
