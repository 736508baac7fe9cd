package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/plrgo/internal/calculation"
)

var (
	cardBorder     = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#374151"}
	cardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2563EB"))
	cardLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	cardValueStyle = lipgloss.NewStyle().Bold(true)
	cardNetStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#10B981"))
	cardMinusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444"))
)

// RenderCard returns the bordered result card shown by the interactive form.
func RenderCard(result *calculation.PlrResult, width int) string {
	c := result.Calculation
	b := c.Breakdown
	inner := width - 6
	if inner < 30 {
		inner = 30
	}

	line := func(label, value string, style lipgloss.Style) string {
		l := cardLabelStyle.Render(label)
		v := style.Render(value)
		gap := inner - lipgloss.Width(l) - lipgloss.Width(v)
		if gap < 1 {
			gap = 1
		}
		return l + strings.Repeat(" ", gap) + v
	}

	rows := []string{
		cardTitleStyle.Render(fmt.Sprintf("%s · %s", c.BankName, parcelaLabels[c.Parcela])),
		"",
		line("Antecipação", FormatCurrency(b.TotalAntecipacao), cardValueStyle),
		line("Exercício", FormatCurrency(b.TotalExercicio), cardValueStyle),
	}
	if name := b.ProgramName(); name != "" {
		rows = append(rows, line(name, FormatCurrency(b.ProgramaComplementar), cardValueStyle))
	}
	if b.TetoAplicado {
		rows = append(rows, cardLabelStyle.Render("teto de remuneração aplicado"))
	}
	rows = append(rows,
		"",
		line("Total bruto", FormatCurrency(c.TotalBruto), cardValueStyle),
		line("IRRF ("+result.Tax.Faixa+")", FormatCurrency(c.IRRF.Neg()), cardMinusStyle),
	)
	if c.ContribuicaoSindical.IsPositive() {
		rows = append(rows, line("Contribuição sindical", FormatCurrency(c.ContribuicaoSindical.Neg()), cardMinusStyle))
	}
	rows = append(rows, line("Total líquido", FormatCurrency(c.TotalLiquido), cardNetStyle))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(cardBorder).
		Padding(1, 2).
		Width(width).
		Render(strings.Join(rows, "\n"))
}
