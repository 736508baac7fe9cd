package tui

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/plrgo/internal/calculation"
	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/rgehrsitz/plrgo/internal/history"
)

// field identifies a form row
type field int

const (
	fieldBank field = iota
	fieldSalario
	fieldMeses
	fieldParcela
	fieldSindical
	fieldCount
)

var parcelas = []domain.Installment{
	domain.InstallmentTotal,
	domain.InstallmentPrimeira,
	domain.InstallmentSegunda,
}

type keyMap struct {
	Next      key.Binding
	Prev      key.Binding
	Left      key.Binding
	Right     key.Binding
	Toggle    key.Binding
	Submit    key.Binding
	History   key.Binding
	Remove    key.Binding
	Back      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:      key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab/↓", "próximo campo")),
		Prev:      key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab/↑", "campo anterior")),
		Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "anterior")),
		Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "seguinte")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("espaço", "alternar")),
		Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "calcular")),
		History:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "histórico")),
		Remove:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "remover")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "voltar")),
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "sair")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Right, k.Submit, k.History, k.ForceQuit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Left, k.Right},
		{k.Toggle, k.Submit, k.History, k.Back},
	}
}

// Model represents the entire application state
type Model struct {
	scene Scene

	// Terminal dimensions
	width  int
	height int

	engine  *calculation.CalculationEngine
	store   *history.Store
	now     func() time.Time
	keys    keyMap
	help    help.Model
	banks   []domain.BankInfo
	bankIdx int

	salario    textinput.Model
	meses      textinput.Model
	parcelaIdx int
	sindical   bool
	focus      field

	result *calculation.PlrResult
	err    error

	historySel int
	notice     string
}

// NewModel creates the form model. store may be nil to disable history.
func NewModel(engine *calculation.CalculationEngine, store *history.Store) Model {
	salario := textinput.New()
	salario.Placeholder = "ex.: 5.000,00"
	salario.CharLimit = 16
	salario.Width = 16
	salario.Prompt = "R$ "

	meses := textinput.New()
	meses.Placeholder = "1 a 12"
	meses.CharLimit = 2
	meses.Width = 4
	meses.Prompt = ""
	meses.SetValue("12")

	return Model{
		scene:   SceneForm,
		width:   80,
		height:  24,
		engine:  engine,
		store:   store,
		now:     time.Now,
		keys:    defaultKeyMap(),
		help:    help.New(),
		banks:   domain.Banks(),
		salario: salario,
		meses:   meses,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// SelectedBank returns the bank currently shown in the selector.
func (m Model) SelectedBank() domain.BankInfo {
	return m.banks[m.bankIdx]
}

// Input builds the engine input from the form fields.
func (m Model) Input() (calculation.PlrInput, error) {
	salario, err := parseAmount(m.salario.Value())
	if err != nil {
		return calculation.PlrInput{}, fmt.Errorf("salário inválido: %q", m.salario.Value())
	}
	meses, err := strconv.ParseFloat(strings.TrimSpace(m.meses.Value()), 64)
	if err != nil {
		return calculation.PlrInput{}, fmt.Errorf("meses trabalhados inválido: %q", m.meses.Value())
	}
	return calculation.PlrInput{
		BankID:                      string(m.SelectedBank().ID),
		Salario:                     salario,
		MesesTrabalhados:            meses,
		IncluirContribuicaoSindical: m.sindical,
		Parcela:                     string(parcelas[m.parcelaIdx]),
	}, nil
}

var (
	// 5.000 or 1.234.567
	brThousands = regexp.MustCompile(`^\d{1,3}(\.\d{3})+$`)
	// 5.000,50 or 5000,5
	brDecimal = regexp.MustCompile(`^(\d{1,3}(\.\d{3})+|\d+),\d{1,2}$`)
	// 5000 or 5000.50
	plainAmount = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
)

// parseAmount accepts plain amounts (5000.50) and the Brazilian notation
// (5.000,50 or 5.000). A dot followed by three digits is a thousands
// separator; anything that fits none of the forms is rejected.
func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "R$"))
	switch {
	case brThousands.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
	case brDecimal.MatchString(s):
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case plainAmount.MatchString(s):
	default:
		return 0, fmt.Errorf("valor fora do formato: %q", s)
	}
	return strconv.ParseFloat(s, 64)
}

// calculateCmd runs the engine and records a successful result in history.
func calculateCmd(engine *calculation.CalculationEngine, store *history.Store, in calculation.PlrInput, now time.Time) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.CalculatePlr(in)
		if err != nil {
			return CalculationCompleteMsg{Input: in, Err: err}
		}
		msg := CalculationCompleteMsg{Input: in, Result: result}
		if store != nil {
			msg.HistoryErr = store.Append(history.NewEntry(result.Calculation, now))
		}
		return msg
	}
}
