package output

import (
	"bytes"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rgehrsitz/plrgo/internal/calculation"
	"github.com/rgehrsitz/plrgo/internal/domain"
)

// ConsoleFormatter renders an itemized, human-readable report.
type ConsoleFormatter struct{}

func (ConsoleFormatter) Name() string { return "console" }

var parcelaLabels = map[domain.Installment]string{
	domain.InstallmentTotal:    "Total anual",
	domain.InstallmentPrimeira: "1ª parcela (antecipação)",
	domain.InstallmentSegunda:  "2ª parcela (exercício)",
}

func (ConsoleFormatter) FormatPlr(result *calculation.PlrResult) ([]byte, error) {
	c := result.Calculation
	b := c.Breakdown

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "PLR %s\n", c.BankName)
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintf(&buf, "Salário base: %s   Meses trabalhados: %d   Parcela: %s\n\n",
		FormatCurrency(c.Salario), c.MesesTrabalhados, parcelaLabels[c.Parcela])

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	row := func(label string, v string) { fmt.Fprintf(w, "%s\t%s\t\n", label, v) }

	fmt.Fprintln(w, "ANTECIPAÇÃO\t\t")
	row("  Regra básica", FormatCurrency(b.RegraBasicaAntecipacao))
	row("  Parcela adicional", FormatCurrency(b.ParcelaAdicionalAntecipacao))
	row("  Total antecipação", FormatCurrency(b.TotalAntecipacao))
	fmt.Fprintln(w, "EXERCÍCIO\t\t")
	row("  Regra básica", FormatCurrency(b.RegraBasicaExercicio))
	row("  Parcela adicional", FormatCurrency(b.ParcelaAdicionalExercicio))
	row("  Total sem desconto", FormatCurrency(b.TotalExercicioSemDesconto))
	row("  (-) Antecipação", FormatCurrency(b.DescontoAntecipacao.Neg()))
	row("  Total exercício", FormatCurrency(b.TotalExercicio))
	if name := b.ProgramName(); name != "" {
		fmt.Fprintln(w, "PROGRAMA COMPLEMENTAR\t\t")
		row("  "+name, FormatCurrency(b.ProgramaComplementar))
	}
	if b.TetoAplicado && b.FatorTeto != nil {
		row("  Teto aplicado (fator)", b.FatorTeto.StringFixed(4))
	}
	fmt.Fprintln(w, "\t\t")
	row("Total bruto", FormatCurrency(c.TotalBruto))
	row(fmt.Sprintf("(-) IRRF [%s]", result.Tax.Faixa), FormatCurrency(c.IRRF.Neg()))
	if c.ContribuicaoSindical.IsPositive() {
		row("(-) Contribuição sindical", FormatCurrency(c.ContribuicaoSindical.Neg()))
	}
	row("Total líquido", FormatCurrency(c.TotalLiquido))
	if c.ValorPrimeiraParcela != nil {
		fmt.Fprintln(w, "\t\t")
		fmt.Fprintln(w, "PARCELAS (1ª INFORMADA)\t\t")
		row("  1ª parcela bruta", FormatCurrency(*c.ValorPrimeiraParcela))
		row("  (-) IRRF 1ª parcela", FormatCurrency(c.IrrfPrimeiraParcela.Neg()))
		row("  2ª parcela bruta", FormatCurrency(c.BrutoSegundaParcela))
		row("  (-) IRRF 2ª parcela", FormatCurrency(c.IrrfSegundaParcela.Neg()))
		row("  2ª parcela líquida", FormatCurrency(c.LiquidoSegundaParcela))
	}
	if err := w.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (ConsoleFormatter) FormatDiscovery(r *calculation.DiscoverMultiplierResult) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "DESCOBERTA DE MULTIPLICADOR")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	fmt.Fprintf(&buf, "Salário base: %s   Multiplicador efetivo: %s\n\n",
		FormatCurrency(r.Salario), FormatMultiplier(r.Multiplicador))

	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "\tBruto\tIRRF\tLíquido\t")
	fmt.Fprintf(w, "1ª parcela\t%s\t%s\t%s\t\n",
		FormatCurrency(r.BrutoPrimeiraParcela), FormatCurrency(r.IrrfPrimeiraParcela), FormatCurrency(r.LiquidoPrimeiraParcela))
	fmt.Fprintf(w, "2ª parcela\t%s\t%s\t%s\t\n",
		FormatCurrency(r.BrutoSegundaParcela), FormatCurrency(r.IrrfSegundaParcela), FormatCurrency(r.LiquidoSegundaParcela))
	fmt.Fprintf(w, "Total\t%s\t%s\t%s\t\n",
		FormatCurrency(r.TotalBruto), FormatCurrency(r.IrrfTotal), FormatCurrency(r.TotalLiquido))
	if err := w.Flush(); err != nil {
		return nil, err
	}
	fmt.Fprintf(&buf, "\nFaixa IRRF: %s\n", r.Faixa)
	return buf.Bytes(), nil
}
