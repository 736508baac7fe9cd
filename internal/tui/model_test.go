package tui

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/plrgo/internal/calculation"
	"github.com/rgehrsitz/plrgo/internal/domain"
	"github.com/rgehrsitz/plrgo/internal/history"
)

func press(t *testing.T, m Model, msgs ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyLeft  = tea.KeyMsg{Type: tea.KeyLeft}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	keyHist  = tea.KeyMsg{Type: tea.KeyCtrlR}
)

// submit presses enter and feeds the command's message back into the model.
func submit(t *testing.T, m Model) Model {
	t.Helper()
	m, cmd := press(t, m, keyEnter)
	if cmd == nil {
		return m
	}
	next, _ := m.Update(cmd())
	return next.(Model)
}

func newTestModel(t *testing.T) (Model, *history.Store) {
	t.Helper()
	store := history.NewStore(filepath.Join(t.TempDir(), "history.json"), 10)
	m := NewModel(calculation.NewCalculationEngine(), store)
	m.now = func() time.Time { return time.Date(2025, 9, 1, 9, 0, 0, 0, time.UTC) }
	return m, store
}

func TestModel_BankSelector(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, domain.BankBB, m.SelectedBank().ID)

	m, _ = press(t, m, keyRight)
	assert.Equal(t, domain.BankSafra, m.SelectedBank().ID)

	m, _ = press(t, m, keyLeft, keyLeft)
	assert.Equal(t, domain.BankSantander, m.SelectedBank().ID, "selector wraps around")
}

func TestModel_CalculateShowsCard(t *testing.T) {
	m, store := newTestModel(t)
	m, _ = press(t, m, keyRight, keyTab, runes("5000"))

	in, err := m.Input()
	require.NoError(t, err)
	assert.Equal(t, "safra", in.BankID)
	assert.Equal(t, 5000.0, in.Salario)
	assert.Equal(t, 12.0, in.MesesTrabalhados)
	assert.Equal(t, "total", in.Parcela)

	m = submit(t, m)
	require.Nil(t, m.err)
	require.NotNil(t, m.result)
	assert.Equal(t, SceneResult, m.scene)
	assert.True(t, m.result.Calculation.TotalBruto.Equal(domain.Money(15369.52)))

	view := m.View()
	assert.Contains(t, view, "Banco Safra")
	assert.Contains(t, view, "R$ 15.369,52")
	assert.Contains(t, view, "R$ 14.216,14")

	assert.Equal(t, 1, store.Len(), "calculation should be recorded in history")

	m, _ = press(t, m, keyEsc)
	assert.Equal(t, SceneForm, m.scene)
}

func TestModel_ParcelaAndSindical(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = press(t, m, keyTab, runes("5000"), keyTab, keyTab, keyRight, keyTab, keySpace)

	in, err := m.Input()
	require.NoError(t, err)
	assert.Equal(t, "primeira", in.Parcela)
	assert.True(t, in.IncluirContribuicaoSindical)
	assert.Contains(t, m.View(), "[x] sim")
}

func TestModel_InvalidInputRendersInline(t *testing.T) {
	m, store := newTestModel(t)

	m = submit(t, m)
	require.Error(t, m.err, "empty salary cannot be parsed")
	assert.Equal(t, SceneForm, m.scene)
	assert.Contains(t, m.View(), "Erro: salário inválido")

	m, _ = press(t, m, keyTab, runes("0"))
	assert.NoError(t, m.err, "typing clears the error")

	m = submit(t, m)
	require.Error(t, m.err)
	assert.True(t, errors.Is(m.err, domain.ErrValidation))
	assert.Equal(t, SceneForm, m.scene)
	assert.Nil(t, m.result)
	assert.Equal(t, 0, store.Len())
}

func TestModel_History(t *testing.T) {
	m, store := newTestModel(t)
	m, _ = press(t, m, keyTab, runes("8000"))
	m = submit(t, m)
	require.Equal(t, 1, store.Len())

	m, cmd := press(t, m, keyHist)
	require.NotNil(t, cmd)
	next, _ := m.Update(cmd())
	m = next.(Model)
	assert.Equal(t, SceneHistory, m.scene)
	assert.Contains(t, m.View(), "Banco do Brasil")

	m, _ = press(t, m, runes("d"))
	assert.Equal(t, 0, store.Len())
	assert.Contains(t, m.View(), "registro removido")
	assert.Contains(t, m.View(), "Nenhum cálculo")
}

func TestModel_QuitKeys(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	// q is text while a text field has focus
	m, _ = press(t, m, keyTab)
	m, _ = press(t, m, runes("q"))
	assert.Equal(t, "q", m.salario.Value())
	assert.Equal(t, SceneForm, m.scene)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"5000", 5000},
		{"5000.50", 5000.5},
		{"5.000,50", 5000.5},
		{"R$ 1.234,56", 1234.56},
		{" 800,00 ", 800},
		{"5.000", 5000},
		{"8.000", 8000},
		{"12.345", 12345},
		{"1.234.567", 1234567},
		{"5.000,00", 5000},
		{"5000,5", 5000.5},
		{"1.5", 1.5},
		{"0", 0},
	}
	for _, tt := range tests {
		got, err := parseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 1e-9, tt.in)
	}

	for _, bad := range []string{"abc", "", "1234.567", "5.00.0", "12.34.567", "5.000,123", "1,2,3", "-5000", "5e3"} {
		_, err := parseAmount(bad)
		assert.Error(t, err, bad)
	}
}

func TestInput_ThousandsWithoutCents(t *testing.T) {
	m, _ := newTestModel(t)
	m.salario.SetValue("5.000")

	in, err := m.Input()
	require.NoError(t, err)
	assert.InDelta(t, 5000, in.Salario, 1e-9)
}
