package compare

import (
	"encoding/csv"
	"strings"
)

// CSVFormatter formats comparison results as CSV
type CSVFormatter struct{}

// Format generates CSV output for comparison results
func (cf *CSVFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)

	header := []string{
		"bank_id",
		"type",
		"total_bruto",
		"programa_complementar",
		"irrf",
		"total_liquido",
		"faixa",
		"liquido_diff_from_base",
		"liquido_pct_from_base",
		"irrf_diff_from_base",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	if err := writer.Write(cf.formatRow(compSet.BaseResult, "base")); err != nil {
		return "", err
	}
	for i := range compSet.AlternativeResults {
		if err := writer.Write(cf.formatRow(&compSet.AlternativeResults[i], "alternative")); err != nil {
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (cf *CSVFormatter) formatRow(result *ComparisonResult, kind string) []string {
	return []string{
		string(result.BankID),
		kind,
		result.TotalBruto.StringFixed(2),
		result.ProgramaComplementar.StringFixed(2),
		result.IRRF.StringFixed(2),
		result.TotalLiquido.StringFixed(2),
		result.Faixa,
		result.LiquidoDiffFromBase.StringFixed(2),
		result.LiquidoPctFromBase.StringFixed(2),
		result.IRRFDiffFromBase.StringFixed(2),
	}
}
