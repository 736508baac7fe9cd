package compare

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/rgehrsitz/plrgo/internal/output"
	"github.com/shopspring/decimal"
)

// TableFormatter formats comparison results as a console table
type TableFormatter struct{}

// Format generates a formatted table comparing banks
func (tf *TableFormatter) Format(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString("COMPARATIVO DE PLR ENTRE BANCOS\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString(fmt.Sprintf("Salário base: %s   Meses: %d   Parcela: %s\n",
		output.FormatCurrency(compSet.Salario), compSet.MesesTrabalhados, compSet.Parcela))
	sb.WriteString(fmt.Sprintf("Banco base: %s\n\n", compSet.BaseResult.BankName))

	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Banco\tBruto\tIRRF\tLíquido\tΔ líquido\tΔ %\t")
	fmt.Fprint(w, tf.formatRow(compSet.BaseResult, true))
	for i := range compSet.AlternativeResults {
		fmt.Fprint(w, tf.formatRow(&compSet.AlternativeResults[i], false))
	}
	w.Flush()
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	if len(compSet.Recommendations) > 0 {
		sb.WriteString("\nRECOMENDAÇÕES\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		for _, rec := range compSet.Recommendations {
			sb.WriteString(fmt.Sprintf("• %s\n", rec))
		}
	}

	return sb.String()
}

func (tf *TableFormatter) formatRow(result *ComparisonResult, isBase bool) string {
	name := result.BankName
	diff, pct := "-", "-"
	if isBase {
		name += " (base)"
	} else {
		diff = tf.deltaSymbol(result.LiquidoDiffFromBase) + output.FormatCurrency(result.LiquidoDiffFromBase)
		pct = tf.deltaSymbol(result.LiquidoPctFromBase) + result.LiquidoPctFromBase.StringFixed(1)
	}
	return fmt.Sprintf("%s\t%s\t%s\t%s\t%s\t%s\t\n",
		name,
		output.FormatCurrency(result.TotalBruto),
		output.FormatCurrency(result.IRRF),
		output.FormatCurrency(result.TotalLiquido),
		diff,
		pct)
}

// deltaSymbol returns "+" for gains; losses already carry their sign
func (tf *TableFormatter) deltaSymbol(delta decimal.Decimal) string {
	if delta.IsPositive() {
		return "+"
	}
	return ""
}

// FormatCompact creates a compact single-line summary
func (tf *TableFormatter) FormatCompact(compSet *ComparisonSet) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Base: %s %s | ", compSet.BaseBank, output.FormatCurrency(compSet.BaseResult.TotalLiquido)))

	for i, alt := range compSet.AlternativeResults {
		if i > 0 {
			sb.WriteString(" | ")
		}
		change := "="
		if !alt.LiquidoDiffFromBase.IsZero() {
			change = tf.deltaSymbol(alt.LiquidoDiffFromBase) + output.FormatCurrency(alt.LiquidoDiffFromBase)
		}
		sb.WriteString(fmt.Sprintf("%s: %s", alt.BankID, change))
	}

	return sb.String()
}
