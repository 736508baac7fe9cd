package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rgehrsitz/plrgo/internal/calculation"
)

// CSVFormatter writes a header and one row per result.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

var plrHeader = []string{
	"bank_id", "bank_name", "salario", "meses", "parcela",
	"total_antecipacao", "total_exercicio", "programa_complementar",
	"total_bruto", "irrf", "contribuicao_sindical", "total_liquido", "faixa",
}

var discoveryHeader = []string{
	"salario", "bruto_primeira", "bruto_segunda", "total_bruto", "multiplicador",
	"irrf_primeira", "irrf_segunda", "irrf_total", "liquido_primeira", "liquido_segunda", "total_liquido", "faixa",
}

func (c CSVFormatter) FormatPlr(result *calculation.PlrResult) ([]byte, error) {
	return c.FormatPlrRows([]*calculation.PlrResult{result})
}

// FormatPlrRows writes several calculations under a single header.
func (CSVFormatter) FormatPlrRows(results []*calculation.PlrResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(plrHeader); err != nil {
		return nil, err
	}
	for _, r := range results {
		c := r.Calculation
		row := []string{
			string(c.BankID),
			c.BankName,
			c.Salario.StringFixed(2),
			strconv.Itoa(c.MesesTrabalhados),
			string(c.Parcela),
			c.Breakdown.TotalAntecipacao.StringFixed(2),
			c.Breakdown.TotalExercicio.StringFixed(2),
			c.Breakdown.ProgramaComplementar.StringFixed(2),
			c.TotalBruto.StringFixed(2),
			c.IRRF.StringFixed(2),
			c.ContribuicaoSindical.StringFixed(2),
			c.TotalLiquido.StringFixed(2),
			r.Tax.Faixa,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func (c CSVFormatter) FormatDiscovery(result *calculation.DiscoverMultiplierResult) ([]byte, error) {
	return c.FormatDiscoveryRows([]*calculation.DiscoverMultiplierResult{result})
}

// FormatDiscoveryRows writes several discoveries under a single header.
func (CSVFormatter) FormatDiscoveryRows(results []*calculation.DiscoverMultiplierResult) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(discoveryHeader); err != nil {
		return nil, err
	}
	for _, r := range results {
		row := []string{
			r.Salario.StringFixed(2),
			r.BrutoPrimeiraParcela.StringFixed(2),
			r.BrutoSegundaParcela.StringFixed(2),
			r.TotalBruto.StringFixed(2),
			r.Multiplicador.StringFixed(1),
			r.IrrfPrimeiraParcela.StringFixed(2),
			r.IrrfSegundaParcela.StringFixed(2),
			r.IrrfTotal.StringFixed(2),
			r.LiquidoPrimeiraParcela.StringFixed(2),
			r.LiquidoSegundaParcela.StringFixed(2),
			r.TotalLiquido.StringFixed(2),
			r.Faixa,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
