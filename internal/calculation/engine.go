package calculation

import (
	"fmt"

	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/shopspring/decimal"
)

// PlrInput is one calculation request as it arrives from a presentation
// shell. Numbers stay raw so non-finite and fractional values can be
// rejected by the value objects.
type PlrInput struct {
	BankID                      string   `json:"bank_id" yaml:"bank_id"`
	Salario                     float64  `json:"salario" yaml:"salario"`
	MesesTrabalhados            float64  `json:"meses_trabalhados" yaml:"meses_trabalhados"`
	IncluirContribuicaoSindical bool     `json:"incluir_contribuicao_sindical" yaml:"incluir_contribuicao_sindical"`
	Parcela                     string   `json:"parcela,omitempty" yaml:"parcela,omitempty"`
	ValorPrograma               *float64 `json:"valor_programa,omitempty" yaml:"valor_programa,omitempty"`
	Multiplicador               *float64 `json:"multiplicador,omitempty" yaml:"multiplicador,omitempty"`
	// ValorPrimeiraParcela is the gross already received as 1ª parcela.
	// When set, the annual withholding is apportioned between the payments.
	ValorPrimeiraParcela *float64 `json:"valor_primeira_parcela,omitempty" yaml:"valor_primeira_parcela,omitempty"`
}

// PlrResult pairs the calculation with the tax evaluation behind it. For the
// segunda parcela, Tax describes the annual total while Calculation.IRRF holds
// the differential withholding.
type PlrResult struct {
	Calculation domain.PlrCalculation `json:"calculation"`
	Tax         domain.TaxResult      `json:"tax"`
}

// DiscoverMultiplierInput carries the gross installments read off payslips.
type DiscoverMultiplierInput struct {
	Salario              float64 `json:"salario" yaml:"salario"`
	BrutoPrimeiraParcela float64 `json:"bruto_primeira_parcela" yaml:"bruto_primeira_parcela"`
	BrutoSegundaParcela  float64 `json:"bruto_segunda_parcela" yaml:"bruto_segunda_parcela"`
}

// DiscoverMultiplierResult is the effective multiplier and the annual tax
// apportioned to each installment by its share of the gross.
type DiscoverMultiplierResult struct {
	Salario                decimal.Decimal `json:"salario"`
	BrutoPrimeiraParcela   decimal.Decimal `json:"bruto_primeira_parcela"`
	BrutoSegundaParcela    decimal.Decimal `json:"bruto_segunda_parcela"`
	TotalBruto             decimal.Decimal `json:"total_bruto"`
	Multiplicador          decimal.Decimal `json:"multiplicador"`
	IrrfPrimeiraParcela    decimal.Decimal `json:"irrf_primeira_parcela"`
	LiquidoPrimeiraParcela decimal.Decimal `json:"liquido_primeira_parcela"`
	IrrfSegundaParcela     decimal.Decimal `json:"irrf_segunda_parcela"`
	LiquidoSegundaParcela  decimal.Decimal `json:"liquido_segunda_parcela"`
	IrrfTotal              decimal.Decimal `json:"irrf_total"`
	TotalLiquido           decimal.Decimal `json:"total_liquido"`
	Faixa                  string          `json:"faixa"`
	Aliquota               decimal.Decimal `json:"aliquota"`
}

// CalculationEngine orchestrates bank strategies, the IRRF table and the
// union due into a final PLR calculation.
type CalculationEngine struct {
	Factory              *CalculatorFactory
	TaxCalc              *IrrfCalculator
	ContribuicaoSindical decimal.Decimal
	Logger               Logger
}

// NewCalculationEngine creates an engine over the compiled-in CCT table.
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithConfig(domain.DefaultCCT())
}

// NewCalculationEngineWithConfig creates an engine for a given CCT vintage.
func NewCalculationEngineWithConfig(rules domain.CCTConfig) *CalculationEngine {
	return &CalculationEngine{
		Factory:              NewCalculatorFactoryWithConfig(rules),
		TaxCalc:              NewIrrfCalculatorWithConfig(rules.IRRF),
		ContribuicaoSindical: rules.ContribuicaoSindical,
		Logger:               NopLogger{},
	}
}

// SetLogger sets the logger; nil installs a no-op logger.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// request is a PlrInput after validation.
type request struct {
	salario     domain.Salary
	period      domain.WorkPeriod
	parcela     domain.Installment
	bank        domain.BankInfo
	options     Options
	sindicalOpt bool
	primeira    *decimal.Decimal
}

// Validate checks an input without running the calculation.
func (in PlrInput) Validate() error {
	_, err := parseInput(in)
	return err
}

func parseInput(in PlrInput) (request, error) {
	salario, err := domain.NewSalary(in.Salario)
	if err != nil {
		return request{}, err
	}
	period, err := domain.ParseWorkPeriod(in.MesesTrabalhados)
	if err != nil {
		return request{}, err
	}
	parcela, err := domain.ParseInstallment(in.Parcela)
	if err != nil {
		return request{}, err
	}
	id, err := domain.ParseBankID(in.BankID)
	if err != nil {
		return request{}, err
	}
	bank, err := domain.GetBankInfo(id)
	if err != nil {
		return request{}, err
	}

	var opts Options
	if in.ValorPrograma != nil {
		v := *in.ValorPrograma
		if !domain.IsFinite(v) || v < 0 {
			return request{}, &domain.ValidationError{Field: "valor do programa", Value: v, Reason: "must be zero or a positive finite amount"}
		}
		d := decimal.NewFromFloat(v)
		opts.ValorPrograma = &d
	}
	if in.Multiplicador != nil {
		m := *in.Multiplicador
		if !domain.IsFinite(m) || m <= 0 || m > 100 {
			return request{}, &domain.ValidationError{Field: "multiplicador", Value: m, Reason: "must be a positive number up to 100"}
		}
		d := decimal.NewFromFloat(m)
		opts.Multiplicador = &d
	}
	var primeira *decimal.Decimal
	if in.ValorPrimeiraParcela != nil {
		v, err := observedAmount("valor da 1ª parcela", *in.ValorPrimeiraParcela)
		if err != nil {
			return request{}, err
		}
		primeira = &v
	}

	return request{
		salario:     salario,
		period:      period,
		parcela:     parcela,
		bank:        bank,
		options:     opts,
		sindicalOpt: in.IncluirContribuicaoSindical,
		primeira:    primeira,
	}, nil
}

// CalculatePlr runs one PLR calculation. Any validation or lookup failure
// aborts with a nil result; the failure is logged and returned.
func (ce *CalculationEngine) CalculatePlr(input PlrInput) (*PlrResult, error) {
	ce.Logger.Info("iniciando cálculo PLR", "bank", input.BankID, "salario", input.Salario)

	result, err := ce.calculatePlr(input)
	if err != nil {
		ce.Logger.Error("erro no cálculo PLR", "bank", input.BankID, "error", err)
		return nil, err
	}

	c := result.Calculation
	ce.Logger.Info("cálculo PLR concluído",
		"bank", c.BankID,
		"parcela", c.Parcela,
		"bruto", c.TotalBruto.StringFixed(2),
		"liquido", c.TotalLiquido.StringFixed(2))
	return result, nil
}

func (ce *CalculationEngine) calculatePlr(input PlrInput) (*PlrResult, error) {
	req, err := parseInput(input)
	if err != nil {
		return nil, err
	}

	calc, err := ce.Factory.Create(req.bank.ID, req.options)
	if err != nil {
		return nil, fmt.Errorf("failed to create calculator: %w", err)
	}
	breakdown := calc.Breakdown(req.salario, req.period)

	var gross, irrf decimal.Decimal
	var tax domain.TaxResult
	switch req.parcela {
	case domain.InstallmentPrimeira:
		gross = breakdown.TotalAntecipacao
		tax = ce.TaxCalc.Calculate(gross)
		irrf = tax.IRRF
	case domain.InstallmentSegunda:
		gross = breakdown.SegundaParcela()
		tax = ce.TaxCalc.Calculate(breakdown.Total())
		first := ce.TaxCalc.Calculate(breakdown.TotalAntecipacao)
		irrf = decimal.Max(decimal.Zero, domain.Round2(tax.IRRF.Sub(first.IRRF)))
	default:
		gross = breakdown.Total()
		tax = ce.TaxCalc.Calculate(gross)
		irrf = tax.IRRF
	}

	sindical := decimal.Zero
	if req.sindicalOpt {
		sindical = domain.Round2(gross.Mul(ce.ContribuicaoSindical))
	}

	record := domain.PlrCalculation{
		BankID:               req.bank.ID,
		BankName:             req.bank.Name,
		Salario:              req.salario.Value(),
		MesesTrabalhados:     req.period.Months(),
		Parcela:              req.parcela,
		TotalBruto:           gross,
		IRRF:                 irrf,
		ContribuicaoSindical: sindical,
		TotalLiquido:         domain.Round2(gross.Sub(irrf).Sub(sindical)),
		Breakdown:            breakdown,
	}
	if req.primeira != nil {
		ce.splitInformedPrimeira(&record, *req.primeira, req.sindicalOpt)
	}
	return &PlrResult{Calculation: record, Tax: tax}, nil
}

// splitInformedPrimeira fills the second-payment fields when the gross of the
// 1ª parcela is known. The annual withholding is apportioned by each
// payment's share of the annual gross; the union due applies to the 2ª gross.
func (ce *CalculationEngine) splitInformedPrimeira(c *domain.PlrCalculation, primeira decimal.Decimal, sindicalOpt bool) {
	total := c.Breakdown.Total()
	annual := ce.TaxCalc.Calculate(total)
	segunda := decimal.Max(decimal.Zero, domain.Round2(total.Sub(primeira)))
	irrfPrimeira, irrfSegunda := apportion(annual.IRRF, primeira, total)

	sindical := decimal.Zero
	if sindicalOpt {
		sindical = domain.Round2(segunda.Mul(ce.ContribuicaoSindical))
	}

	c.ValorPrimeiraParcela = &primeira
	c.BrutoSegundaParcela = segunda
	c.IrrfPrimeiraParcela = irrfPrimeira
	c.IrrfSegundaParcela = irrfSegunda
	c.LiquidoSegundaParcela = domain.Round2(segunda.Sub(irrfSegunda).Sub(sindical))
}

// apportion splits an annual withholding by the first payment's share of the
// annual gross. The first share never exceeds the total; the second is the
// remainder, floored at zero.
func apportion(irrf, primeira, total decimal.Decimal) (first, second decimal.Decimal) {
	first = decimal.Zero
	if total.IsPositive() {
		first = decimal.Min(irrf, domain.Round2(irrf.Mul(primeira).Div(total)))
	}
	second = decimal.Max(decimal.Zero, domain.Round2(irrf.Sub(first)))
	return first, second
}

// DiscoverMultiplier derives the effective multiplier from observed gross
// installments and apportions the annual tax between them proportionally.
// Both installments at zero is valid and yields an all-zero result.
func (ce *CalculationEngine) DiscoverMultiplier(input DiscoverMultiplierInput) (*DiscoverMultiplierResult, error) {
	salario, primeira, segunda, err := parseDiscovery(input)
	if err != nil {
		ce.Logger.Warn("descoberta de multiplicador rejeitada", "error", err)
		return nil, err
	}

	total := domain.Round2(primeira.Add(segunda))
	multiplicador := domain.RoundHalfUp(total.Div(salario.Value()), 1)
	taxTotal := ce.TaxCalc.Calculate(total)

	irrfPrimeira, irrfSegunda := apportion(taxTotal.IRRF, primeira, total)

	liqPrimeira := domain.Round2(primeira.Sub(irrfPrimeira))
	liqSegunda := domain.Round2(segunda.Sub(irrfSegunda))

	result := &DiscoverMultiplierResult{
		Salario:                salario.Value(),
		BrutoPrimeiraParcela:   primeira,
		BrutoSegundaParcela:    segunda,
		TotalBruto:             total,
		Multiplicador:          multiplicador,
		IrrfPrimeiraParcela:    irrfPrimeira,
		LiquidoPrimeiraParcela: liqPrimeira,
		IrrfSegundaParcela:     irrfSegunda,
		LiquidoSegundaParcela:  liqSegunda,
		IrrfTotal:              taxTotal.IRRF,
		TotalLiquido:           domain.SumMoney(liqPrimeira, liqSegunda),
		Faixa:                  taxTotal.Faixa,
		Aliquota:               taxTotal.Aliquota,
	}
	ce.Logger.Info("multiplicador descoberto",
		"multiplicador", multiplicador.String(),
		"bruto", total.StringFixed(2),
		"irrf", taxTotal.IRRF.StringFixed(2))
	return result, nil
}

// Validate checks a discovery request without running it.
func (in DiscoverMultiplierInput) Validate() error {
	_, _, _, err := parseDiscovery(in)
	return err
}

func parseDiscovery(in DiscoverMultiplierInput) (domain.Salary, decimal.Decimal, decimal.Decimal, error) {
	if !domain.IsFinite(in.Salario) || in.Salario <= 0 {
		return domain.Salary{}, decimal.Zero, decimal.Zero, domain.NewNonPositiveSalaryError(in.Salario)
	}
	salario, err := domain.NewSalary(in.Salario)
	if err != nil {
		return domain.Salary{}, decimal.Zero, decimal.Zero, err
	}
	primeira, err := observedAmount("bruto da 1ª parcela", in.BrutoPrimeiraParcela)
	if err != nil {
		return domain.Salary{}, decimal.Zero, decimal.Zero, err
	}
	segunda, err := observedAmount("bruto da 2ª parcela", in.BrutoSegundaParcela)
	if err != nil {
		return domain.Salary{}, decimal.Zero, decimal.Zero, err
	}
	return salario, primeira, segunda, nil
}

func observedAmount(field string, raw float64) (decimal.Decimal, error) {
	if !domain.IsFinite(raw) || raw < 0 {
		return decimal.Zero, domain.NewInvalidApportionmentError(field, raw)
	}
	return domain.Money(raw), nil
}
