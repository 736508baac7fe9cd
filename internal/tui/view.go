package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rgehrsitz/plrgo/internal/output"
)

var parcelaNames = []string{"Total anual", "1ª parcela", "2ª parcela"}

// View renders the current state of the application
func (m Model) View() string {
	var content string
	switch m.scene {
	case SceneResult:
		content = m.renderResult()
	case SceneHistory:
		content = m.renderHistory()
	default:
		content = m.renderForm()
	}

	sections := []string{m.renderTitleBar(), content}
	if m.err != nil {
		sections = append(sections, ErrorStyle.Render("Erro: "+m.err.Error()))
	}
	if m.notice != "" {
		sections = append(sections, InfoStyle.Render(m.notice))
	}
	sections = append(sections, StatusBarStyle.Render(m.help.View(m.keys)))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		TitleStyle.Render("PLR Bancários · CCT 2024/2026"),
		SubtitleStyle.Render(m.scene.String()),
	)
}

func (m Model) renderForm() string {
	row := func(f field, label, value string) string {
		style, cursor := LabelStyle, "  "
		if m.focus == f {
			style, cursor = FocusedLabelStyle, "› "
		}
		return cursor + style.Render(label) + value
	}

	bank := m.SelectedBank()
	bankValue := ValueStyle.Render("‹ " + bank.Name + " ›")
	if bank.HasAdditionalProgram {
		bankValue += SubtitleStyle.Render("+ " + bank.AdditionalProgramName)
	}

	sindical := "[ ] não"
	if m.sindical {
		sindical = "[x] sim"
	}

	rows := []string{
		row(fieldBank, "Banco", bankValue),
		row(fieldSalario, "Salário base", m.salario.View()),
		row(fieldMeses, "Meses trabalhados", m.meses.View()),
		row(fieldParcela, "Parcela", ValueStyle.Render("‹ "+parcelaNames[m.parcelaIdx]+" ›")),
		row(fieldSindical, "Contribuição sindical", ValueStyle.Render(sindical)),
	}
	return FormStyle.Render(strings.Join(rows, "\n"))
}

func (m Model) renderResult() string {
	if m.result == nil {
		return SubtitleStyle.Render("Nenhum resultado.")
	}
	width := m.width - 4
	if width > 64 {
		width = 64
	}
	return output.RenderCard(m.result, width)
}

func (m Model) renderHistory() string {
	if m.store == nil || m.store.Len() == 0 {
		return SubtitleStyle.Render("Nenhum cálculo no histórico.")
	}
	lines := strings.Split(strings.TrimRight(output.FormatHistory(m.store.Entries()), "\n"), "\n")
	for i := range lines {
		// lines[0] is the header
		if i-1 == m.historySel {
			lines[i] = FocusedLabelStyle.UnsetWidth().Render(lines[i])
		}
	}
	return FormStyle.Render(strings.Join(lines, "\n")) +
		"\n" + SubtitleStyle.Render(fmt.Sprintf("%d de %d registros", m.historySel+1, m.store.Len()))
}
