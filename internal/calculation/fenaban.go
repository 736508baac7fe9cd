package calculation

import (
	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Calculator is the capability every bank strategy provides. Antecipacao,
// Exercicio and ProgramaComplementar return full-year values; Breakdown
// prorates them over the work period.
type Calculator interface {
	Antecipacao(salario domain.Salary) domain.Component
	Exercicio(salario domain.Salary) domain.Component
	ProgramaComplementar(salario domain.Salary) domain.Program
	Breakdown(salario domain.Salary, period domain.WorkPeriod) domain.PlrBreakdown
}

// FenabanCalculator applies the sector-wide CCT rule with no bank program.
// It is used as-is for BTG (with majoração) and Safra (without), and is
// embedded by every bank-specific strategy.
type FenabanCalculator struct {
	Rules         domain.CCTConfig
	Majoracao     bool
	TetoMajoracao decimal.Decimal
}

// NewFenabanCalculator creates the base rule with the compiled-in CCT table.
func NewFenabanCalculator(majoracao bool) *FenabanCalculator {
	return NewFenabanCalculatorWithConfig(domain.DefaultCCT(), majoracao)
}

// NewFenabanCalculatorWithConfig creates the base rule for a given CCT vintage.
// The majoração cap defaults to the statutory one.
func NewFenabanCalculatorWithConfig(rules domain.CCTConfig, majoracao bool) *FenabanCalculator {
	return &FenabanCalculator{
		Rules:         rules,
		Majoracao:     majoracao,
		TetoMajoracao: rules.Majoracao.Teto,
	}
}

// Antecipacao computes the first installment. Majoração never applies here.
func (f *FenabanCalculator) Antecipacao(salario domain.Salary) domain.Component {
	return domain.Component{
		RegraBasica:      regraBasica(salario.Value(), f.Rules.Antecipacao),
		ParcelaAdicional: domain.Round2(f.Rules.Antecipacao.ParcelaAdicional),
	}
}

// Exercicio computes the second installment before the antecipação discount.
// With majoração enabled the regra básica is the greater of the standard
// formula and Multiplicador × salário capped at TetoMajoracao.
func (f *FenabanCalculator) Exercicio(salario domain.Salary) domain.Component {
	rb := regraBasica(salario.Value(), f.Rules.Exercicio)
	if f.Majoracao {
		majorada := domain.Round2(decimal.Min(
			salario.Value().Mul(f.Rules.Majoracao.Multiplicador),
			f.TetoMajoracao,
		))
		rb = decimal.Max(rb, majorada)
	}
	return domain.Component{
		RegraBasica:      rb,
		ParcelaAdicional: domain.Round2(f.Rules.Exercicio.ParcelaAdicional),
	}
}

// ProgramaComplementar is zero with no label for the plain CCT rule.
func (f *FenabanCalculator) ProgramaComplementar(domain.Salary) domain.Program {
	return domain.Program{Value: decimal.Zero}
}

func (f *FenabanCalculator) Breakdown(salario domain.Salary, period domain.WorkPeriod) domain.PlrBreakdown {
	return buildBreakdown(f, salario, period)
}

// regraBasica is min(salário × percentual + fixo, teto), rounded to the cent.
func regraBasica(salario decimal.Decimal, rule domain.RegraBasica) decimal.Decimal {
	return domain.Round2(decimal.Min(
		salario.Mul(rule.Percentual).Add(rule.ValorFixo),
		rule.Teto,
	))
}

// buildBreakdown prorates each line item independently, then sums the rounded
// items. It calls back through c so embedding strategies see their overrides.
func buildBreakdown(c Calculator, salario domain.Salary, period domain.WorkPeriod) domain.PlrBreakdown {
	months := period.Months()
	ant := c.Antecipacao(salario)
	ex := c.Exercicio(salario)
	prog := c.ProgramaComplementar(salario)

	b := domain.PlrBreakdown{
		RegraBasicaAntecipacao:      domain.Prorate(ant.RegraBasica, months),
		ParcelaAdicionalAntecipacao: domain.Prorate(ant.ParcelaAdicional, months),
		RegraBasicaExercicio:        domain.Prorate(ex.RegraBasica, months),
		ParcelaAdicionalExercicio:   domain.Prorate(ex.ParcelaAdicional, months),
		ProgramaComplementar:        domain.Prorate(prog.Value, months),
	}
	b.TotalAntecipacao = domain.SumMoney(b.RegraBasicaAntecipacao, b.ParcelaAdicionalAntecipacao)
	b.TotalExercicioSemDesconto = domain.SumMoney(b.RegraBasicaExercicio, b.ParcelaAdicionalExercicio)
	b.DescontoAntecipacao = b.TotalAntecipacao
	b.TotalExercicio = domain.Round2(b.TotalExercicioSemDesconto.Sub(b.DescontoAntecipacao))
	if prog.Name != "" {
		name := prog.Name
		b.ProgramaComplementarNome = &name
	}
	return b
}
