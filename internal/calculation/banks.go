package calculation

import (
	"fmt"

	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// Options tunes a bank strategy. Nil fields fall back to the CCT defaults.
type Options struct {
	// ValorPrograma replaces the bank program's flat default amount.
	ValorPrograma *decimal.Decimal
	// Multiplicador computes the program as reference base × multiplier.
	// Only Itaú and Santander publish a reference base; ValorPrograma wins
	// when both are set.
	Multiplicador *decimal.Decimal
	// TetoMajoracao overrides the statutory majoração cap.
	TetoMajoracao *decimal.Decimal
}

// programCalculator is the CCT rule plus a flat supplemental program.
type programCalculator struct {
	*FenabanCalculator
	program domain.Program
}

func newProgramCalculator(rules domain.CCTConfig, majoracao bool, program domain.Program, opts Options) programCalculator {
	base := NewFenabanCalculatorWithConfig(rules, majoracao)
	if opts.TetoMajoracao != nil {
		base.TetoMajoracao = *opts.TetoMajoracao
	}
	return programCalculator{FenabanCalculator: base, program: program}
}

func (c *programCalculator) ProgramaComplementar(domain.Salary) domain.Program {
	return c.program
}

func (c *programCalculator) Breakdown(salario domain.Salary, period domain.WorkPeriod) domain.PlrBreakdown {
	return buildBreakdown(c, salario, period)
}

// resolveProgram picks the program amount: explicit value, then base ×
// multiplier when the bank has a base, then the published default.
func resolveProgram(rule domain.ProgramRule, shortName string, opts Options) domain.Program {
	switch {
	case opts.ValorPrograma != nil:
		return domain.Program{Value: domain.Round2(*opts.ValorPrograma), Name: rule.Nome}
	case opts.Multiplicador != nil && rule.ValorBase.IsPositive():
		m := *opts.Multiplicador
		return domain.Program{
			Value: domain.Round2(rule.ValorBase.Mul(m)),
			Name:  fmt.Sprintf("%s (%sx)", shortName, m.String()),
		}
	default:
		return domain.Program{Value: domain.Round2(rule.ValorPadrao), Name: rule.Nome}
	}
}

// ItauCalculator adds the PCR to the CCT rule with majoração.
type ItauCalculator struct {
	programCalculator
}

func NewItauCalculator(rules domain.CCTConfig, opts Options) *ItauCalculator {
	p := resolveProgram(rules.Bancos.Itau, "PCR", opts)
	return &ItauCalculator{newProgramCalculator(rules, true, p, opts)}
}

// SantanderCalculator adds the PPRS to the CCT rule with majoração.
type SantanderCalculator struct {
	programCalculator
}

func NewSantanderCalculator(rules domain.CCTConfig, opts Options) *SantanderCalculator {
	p := resolveProgram(rules.Bancos.Santander, "PPRS", opts)
	return &SantanderCalculator{newProgramCalculator(rules, true, p, opts)}
}

// BradescoCalculator adds the PRB to the CCT rule with majoração.
type BradescoCalculator struct {
	programCalculator
}

func NewBradescoCalculator(rules domain.CCTConfig, opts Options) *BradescoCalculator {
	p := resolveProgram(rules.Bancos.Bradesco, "PRB", opts)
	return &BradescoCalculator{newProgramCalculator(rules, true, p, opts)}
}

// BBCalculator adds the Módulo BB. Banco do Brasil runs its own structure,
// so majoração is off.
type BBCalculator struct {
	programCalculator
}

func NewBBCalculator(rules domain.CCTConfig, opts Options) *BBCalculator {
	p := resolveProgram(rules.Bancos.BB, "Módulo BB", opts)
	return &BBCalculator{newProgramCalculator(rules, false, p, opts)}
}

// CaixaCalculator models the federal savings bank: its own antecipação
// formula, PLR Social as the program, no majoração, and a total payout cap
// of TetoMultiplicador × salário.
type CaixaCalculator struct {
	programCalculator
}

func NewCaixaCalculator(rules domain.CCTConfig, opts Options) *CaixaCalculator {
	p := resolveProgram(rules.Bancos.Caixa.PLRSocial, "PLR Social", opts)
	return &CaixaCalculator{newProgramCalculator(rules, false, p, opts)}
}

// Antecipacao uses the Caixa percentage, fixed amount and cap. The parcela
// adicional is the sector one.
func (c *CaixaCalculator) Antecipacao(salario domain.Salary) domain.Component {
	return domain.Component{
		RegraBasica:      regraBasica(salario.Value(), c.Rules.Bancos.Caixa.Antecipacao),
		ParcelaAdicional: c.FenabanCalculator.Antecipacao(salario).ParcelaAdicional,
	}
}

// Teto is the payout cap for a salary. It is not prorated.
func (c *CaixaCalculator) Teto(salario domain.Salary) decimal.Decimal {
	return domain.Round2(salario.Value().Mul(c.Rules.Bancos.Caixa.TetoMultiplicador))
}

// Breakdown applies the payout cap after proration. When the three totals
// exceed the cap, each one is scaled by teto/total so their proportions hold.
// The exercício absorbs the cent left over by rounding.
func (c *CaixaCalculator) Breakdown(salario domain.Salary, period domain.WorkPeriod) domain.PlrBreakdown {
	b := buildBreakdown(c, salario, period)

	teto := c.Teto(salario)
	totalSemTeto := b.Total()
	if !totalSemTeto.GreaterThan(teto) {
		return b
	}

	fator := teto.Div(totalSemTeto)
	scale := func(d decimal.Decimal) decimal.Decimal { return domain.Round2(d.Mul(fator)) }

	ant := scale(b.TotalAntecipacao)
	prog := scale(b.ProgramaComplementar)
	ex := decimal.Min(scale(b.TotalExercicio), teto.Sub(ant).Sub(prog))

	rbAnt := scale(b.RegraBasicaAntecipacao)
	rbEx := scale(b.RegraBasicaExercicio)
	semDesconto := ant.Add(ex)

	b.RegraBasicaAntecipacao = rbAnt
	b.ParcelaAdicionalAntecipacao = ant.Sub(rbAnt)
	b.TotalAntecipacao = ant
	b.RegraBasicaExercicio = rbEx
	b.ParcelaAdicionalExercicio = semDesconto.Sub(rbEx)
	b.TotalExercicioSemDesconto = semDesconto
	b.DescontoAntecipacao = ant
	b.TotalExercicio = ex
	b.ProgramaComplementar = prog

	f := domain.RoundHalfUp(fator, 6)
	b.TetoAplicado = true
	b.FatorTeto = &f
	return b
}
