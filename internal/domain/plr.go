package domain

import (
	"github.com/shopspring/decimal"
)

// Installment selects which view of the annual payout a calculation reports.
type Installment string

const (
	InstallmentTotal    Installment = "total"
	InstallmentPrimeira Installment = "primeira"
	InstallmentSegunda  Installment = "segunda"
)

// ParseInstallment accepts the three selectors; empty means total.
func ParseInstallment(s string) (Installment, error) {
	switch Installment(s) {
	case "", InstallmentTotal:
		return InstallmentTotal, nil
	case InstallmentPrimeira:
		return InstallmentPrimeira, nil
	case InstallmentSegunda:
		return InstallmentSegunda, nil
	default:
		return "", NewInvalidInstallmentError(s)
	}
}

// Component is a rule's un-prorated output for one installment.
type Component struct {
	RegraBasica      decimal.Decimal
	ParcelaAdicional decimal.Decimal
}

// Program is a bank's supplemental payment and its label. Name is empty when
// the bank has no program.
type Program struct {
	Value decimal.Decimal
	Name  string
}

// PlrBreakdown itemizes one calculator run over a salary and work period.
type PlrBreakdown struct {
	RegraBasicaAntecipacao      decimal.Decimal `json:"regra_basica_antecipacao"`
	ParcelaAdicionalAntecipacao decimal.Decimal `json:"parcela_adicional_antecipacao"`
	TotalAntecipacao            decimal.Decimal `json:"total_antecipacao"`
	RegraBasicaExercicio        decimal.Decimal `json:"regra_basica_exercicio"`
	ParcelaAdicionalExercicio   decimal.Decimal `json:"parcela_adicional_exercicio"`
	TotalExercicioSemDesconto   decimal.Decimal `json:"total_exercicio_sem_desconto"`
	DescontoAntecipacao         decimal.Decimal `json:"desconto_antecipacao"`
	TotalExercicio              decimal.Decimal `json:"total_exercicio"`
	ProgramaComplementar        decimal.Decimal `json:"programa_complementar"`
	ProgramaComplementarNome    *string         `json:"programa_complementar_nome"`

	// Set when a bank payout cap scaled the components down.
	TetoAplicado bool             `json:"teto_aplicado"`
	FatorTeto    *decimal.Decimal `json:"fator_teto,omitempty"`
}

// Total is antecipação + exercício + programa complementar.
func (b PlrBreakdown) Total() decimal.Decimal {
	return SumMoney(b.TotalAntecipacao, b.TotalExercicio, b.ProgramaComplementar)
}

// SegundaParcela is the gross of the second payment: exercício + programa.
func (b PlrBreakdown) SegundaParcela() decimal.Decimal {
	return SumMoney(b.TotalExercicio, b.ProgramaComplementar)
}

// ProgramName returns the program label or "" when there is none.
func (b PlrBreakdown) ProgramName() string {
	if b.ProgramaComplementarNome == nil {
		return ""
	}
	return *b.ProgramaComplementarNome
}

// TaxResult is the withholding evaluated on one gross amount.
type TaxResult struct {
	TotalPlr decimal.Decimal `json:"total_plr"`
	Aliquota decimal.Decimal `json:"aliquota"`
	Deducao  decimal.Decimal `json:"deducao"`
	IRRF     decimal.Decimal `json:"irrf"`
	Faixa    string          `json:"faixa"`
}

// PlrCalculation is the final user-facing record of one request.
type PlrCalculation struct {
	BankID               BankID          `json:"bank_id"`
	BankName             string          `json:"bank_name"`
	Salario              decimal.Decimal `json:"salario"`
	MesesTrabalhados     int             `json:"meses_trabalhados"`
	Parcela              Installment     `json:"parcela"`
	TotalBruto           decimal.Decimal `json:"total_bruto"`
	IRRF                 decimal.Decimal `json:"irrf"`
	ContribuicaoSindical decimal.Decimal `json:"contribuicao_sindical"`
	TotalLiquido         decimal.Decimal `json:"total_liquido"`
	Breakdown            PlrBreakdown    `json:"breakdown"`

	// Filled only when the gross of the 1ª parcela was informed; otherwise
	// ValorPrimeiraParcela is nil and the rest are zero.
	ValorPrimeiraParcela  *decimal.Decimal `json:"valor_primeira_parcela"`
	BrutoSegundaParcela   decimal.Decimal  `json:"bruto_segunda_parcela"`
	IrrfPrimeiraParcela   decimal.Decimal  `json:"irrf_primeira_parcela"`
	IrrfSegundaParcela    decimal.Decimal  `json:"irrf_segunda_parcela"`
	LiquidoSegundaParcela decimal.Decimal  `json:"liquido_segunda_parcela"`
}
