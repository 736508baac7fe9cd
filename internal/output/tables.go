package output

import (
	"bytes"
	"fmt"
	"text/tabwriter"

	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/rgehrsitz/plrgo/internal/history"
)

// FormatBankList renders the bank registry.
func FormatBankList(banks []domain.BankInfo) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tBANCO\tPROGRAMA COMPLEMENTAR")
	for _, b := range banks {
		program := "-"
		if b.HasAdditionalProgram {
			program = b.AdditionalProgramName
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, b.Name, program)
	}
	w.Flush()
	return buf.String()
}

// FormatTaxTable renders the IRRF bracket table.
func FormatTaxTable(brackets []domain.IRRFBracket) string {
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FAIXA DE PLR\tALÍQUOTA\tDEDUÇÃO")
	for i, b := range brackets {
		var faixa string
		switch {
		case i == 0:
			faixa = "até " + FormatCurrency(b.Limite)
		case i == len(brackets)-1:
			faixa = "acima de " + FormatCurrency(brackets[i-1].Limite)
		default:
			faixa = fmt.Sprintf("de %s até %s", FormatCurrency(brackets[i-1].Limite.Add(cent)), FormatCurrency(b.Limite))
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", faixa, b.Faixa, FormatCurrency(b.Deducao))
	}
	w.Flush()
	return buf.String()
}

// FormatHistory renders the calculation log with its indexes, newest first.
func FormatHistory(entries []history.Entry) string {
	if len(entries) == 0 {
		return "Nenhum cálculo no histórico.\n"
	}
	var buf bytes.Buffer
	w := tabwriter.NewWriter(&buf, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\tDATA\tBANCO\tSALÁRIO\tMESES\tPARCELA\tBRUTO\tLÍQUIDO")
	for i, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			i,
			e.CalculatedAt.Local().Format("02/01/2006 15:04"),
			e.BankName,
			FormatCurrency(e.Salario),
			e.Meses,
			e.Parcela,
			FormatCurrency(e.TotalBruto),
			FormatCurrency(e.TotalLiquido))
	}
	w.Flush()
	return buf.String()
}
