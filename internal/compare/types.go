package compare

import (
	"github.com/rgehrsitz/plrgo/internal/calculation"
	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/rgehrsitz/plrgo/internal/output"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComparisonResult is one bank's PLR with its deltas against the base bank
type ComparisonResult struct {
	BankID      domain.BankID `json:"bank_id"`
	BankName    string        `json:"bank_name"`
	ProgramName string        `json:"programa_complementar_nome,omitempty"`

	// Key Metrics
	TotalBruto           decimal.Decimal `json:"total_bruto"`
	ProgramaComplementar decimal.Decimal `json:"programa_complementar"`
	IRRF                 decimal.Decimal `json:"irrf"`
	TotalLiquido         decimal.Decimal `json:"total_liquido"`
	Faixa                string          `json:"faixa"`

	// Comparison to Base
	LiquidoDiffFromBase decimal.Decimal `json:"liquido_diff_from_base"`
	LiquidoPctFromBase  decimal.Decimal `json:"liquido_pct_from_base"`
	IRRFDiffFromBase    decimal.Decimal `json:"irrf_diff_from_base"`

	Result *calculation.PlrResult `json:"-"`
}

// ComparisonSet is a base bank and the alternatives measured against it
type ComparisonSet struct {
	BaseBank           domain.BankID      `json:"base_bank"`
	Salario            decimal.Decimal    `json:"salario"`
	MesesTrabalhados   int                `json:"meses_trabalhados"`
	Parcela            domain.Installment `json:"parcela"`
	BaseResult         *ComparisonResult  `json:"base_result"`
	AlternativeResults []ComparisonResult `json:"alternative_results"`
	Recommendations    []string           `json:"recommendations"`
}

// MetricsCalculator extracts comparison metrics from engine results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics computes the metrics for one calculation
func (mc *MetricsCalculator) CalculateMetrics(result *calculation.PlrResult) ComparisonResult {
	c := result.Calculation
	return ComparisonResult{
		BankID:               c.BankID,
		BankName:             c.BankName,
		ProgramName:          c.Breakdown.ProgramName(),
		TotalBruto:           c.TotalBruto,
		ProgramaComplementar: c.Breakdown.ProgramaComplementar,
		IRRF:                 c.IRRF,
		TotalLiquido:         c.TotalLiquido,
		Faixa:                result.Tax.Faixa,
		Result:               result,
	}
}

// CalculateComparison fills the deltas of alt against base
func (mc *MetricsCalculator) CalculateComparison(alt, base ComparisonResult) ComparisonResult {
	alt.LiquidoDiffFromBase = alt.TotalLiquido.Sub(base.TotalLiquido)
	if !base.TotalLiquido.IsZero() {
		alt.LiquidoPctFromBase = domain.Round2(alt.LiquidoDiffFromBase.Div(base.TotalLiquido).Mul(hundred))
	}
	alt.IRRFDiffFromBase = alt.IRRF.Sub(base.IRRF)
	return alt
}

// GenerateRecommendations points out the alternatives that beat the base
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}
	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	best := -1
	for i, alt := range compSet.AlternativeResults {
		if alt.TotalLiquido.GreaterThan(base.TotalLiquido) &&
			(best < 0 || alt.TotalLiquido.GreaterThan(compSet.AlternativeResults[best].TotalLiquido)) {
			best = i
		}
	}
	if best >= 0 {
		alt := compSet.AlternativeResults[best]
		recommendations = append(recommendations,
			"Maior PLR líquida: "+alt.BankName+" paga "+output.FormatCurrency(alt.LiquidoDiffFromBase)+
				" a mais que "+base.BankName)
	} else {
		recommendations = append(recommendations,
			base.BankName+" já paga a maior PLR líquida entre os bancos comparados")
	}

	lowest := -1
	for i, alt := range compSet.AlternativeResults {
		if alt.IRRF.LessThan(base.IRRF) &&
			(lowest < 0 || alt.IRRF.LessThan(compSet.AlternativeResults[lowest].IRRF)) {
			lowest = i
		}
	}
	if lowest >= 0 {
		alt := compSet.AlternativeResults[lowest]
		recommendations = append(recommendations,
			"Menor IRRF: "+alt.BankName+" retém "+output.FormatCurrency(alt.IRRFDiffFromBase.Neg())+
				" a menos ("+alt.Faixa+")")
	}

	return recommendations
}
