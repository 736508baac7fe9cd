package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/plrgo/internal/calculation"
	"github.com/rgehrsitz/plrgo/internal/domain"
)

// CompareEngine orchestrates bank comparison
type CompareEngine struct {
	CalcEngine        *calculation.CalculationEngine
	MetricsCalculator *MetricsCalculator
}

// NewCompareEngine creates a new comparison engine
func NewCompareEngine(calcEngine *calculation.CalculationEngine) *CompareEngine {
	return &CompareEngine{
		CalcEngine:        calcEngine,
		MetricsCalculator: NewMetricsCalculator(),
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseBank string   `json:"base_bank"`
	Banks    []string `json:"banks,omitempty"` // empty compares every other registered bank

	Salario                     float64 `json:"salario"`
	MesesTrabalhados            float64 `json:"meses_trabalhados"`
	Parcela                     string  `json:"parcela,omitempty"`
	IncluirContribuicaoSindical bool    `json:"incluir_contribuicao_sindical"`
}

func (o CompareOptions) input(bank string) calculation.PlrInput {
	return calculation.PlrInput{
		BankID:                      bank,
		Salario:                     o.Salario,
		MesesTrabalhados:            o.MesesTrabalhados,
		Parcela:                     o.Parcela,
		IncluirContribuicaoSindical: o.IncluirContribuicaoSindical,
	}
}

// alternatives resolves the banks to compare, skipping the base and repeats.
func (o CompareOptions) alternatives(base domain.BankID) ([]domain.BankID, error) {
	var ids []domain.BankID
	if len(o.Banks) == 0 {
		ids = domain.BankIDs()
	} else {
		for _, b := range o.Banks {
			id, err := domain.ParseBankID(b)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}

	seen := map[domain.BankID]bool{base: true}
	out := make([]domain.BankID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

// Compare runs the base bank and every alternative with the same salary,
// period and installment.
func (ce *CompareEngine) Compare(ctx context.Context, options CompareOptions) (*ComparisonSet, error) {
	baseID, err := domain.ParseBankID(options.BaseBank)
	if err != nil {
		return nil, err
	}
	alternatives, err := options.alternatives(baseID)
	if err != nil {
		return nil, err
	}

	base, err := ce.CalcEngine.CalculatePlr(options.input(string(baseID)))
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base bank: %w", err)
	}
	baseResult := ce.MetricsCalculator.CalculateMetrics(base)

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, id := range alternatives {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		r, err := ce.CalcEngine.CalculatePlr(options.input(string(id)))
		if err != nil {
			return nil, fmt.Errorf("failed to calculate bank %s: %w", id, err)
		}
		alt := ce.MetricsCalculator.CalculateMetrics(r)
		results = append(results, ce.MetricsCalculator.CalculateComparison(alt, baseResult))
	}

	compSet := &ComparisonSet{
		BaseBank:           baseID,
		Salario:            base.Calculation.Salario,
		MesesTrabalhados:   base.Calculation.MesesTrabalhados,
		Parcela:            base.Calculation.Parcela,
		BaseResult:         &baseResult,
		AlternativeResults: results,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}
