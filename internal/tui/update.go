package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case NavigateMsg:
		m.scene = msg.Scene
		m.notice = ""
		if msg.Scene == SceneHistory {
			m.historySel = 0
		}
		return m, nil

	case CalculationCompleteMsg:
		if msg.Err != nil {
			m.err = msg.Err
			m.result = nil
			return m, nil
		}
		m.err = msg.HistoryErr
		m.result = msg.Result
		m.scene = SceneResult
		return m, nil
	}

	return m.updateInputs(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	switch m.scene {
	case SceneResult:
		return m.updateResult(msg)
	case SceneHistory:
		return m.updateHistory(msg)
	}
	return m.updateForm(msg)
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		in, err := m.Input()
		if err != nil {
			m.err = err
			return m, nil
		}
		return m, calculateCmd(m.engine, m.store, in, m.now())

	case key.Matches(msg, m.keys.Next):
		return m.setFocus((m.focus + 1) % fieldCount)

	case key.Matches(msg, m.keys.Prev):
		return m.setFocus((m.focus + fieldCount - 1) % fieldCount)

	case key.Matches(msg, m.keys.History):
		return m, func() tea.Msg { return NavigateMsg{Scene: SceneHistory} }
	}

	switch m.focus {
	case fieldBank:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.bankIdx = (m.bankIdx + len(m.banks) - 1) % len(m.banks)
		case key.Matches(msg, m.keys.Right):
			m.bankIdx = (m.bankIdx + 1) % len(m.banks)
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil

	case fieldParcela:
		switch {
		case key.Matches(msg, m.keys.Left):
			m.parcelaIdx = (m.parcelaIdx + len(parcelas) - 1) % len(parcelas)
		case key.Matches(msg, m.keys.Right):
			m.parcelaIdx = (m.parcelaIdx + 1) % len(parcelas)
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil

	case fieldSindical:
		switch {
		case key.Matches(msg, m.keys.Toggle, m.keys.Left, m.keys.Right):
			m.sindical = !m.sindical
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	// Text fields take every other key.
	return m.updateInputs(msg)
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back, m.keys.Submit):
		m.scene = SceneForm
		return m, nil
	case key.Matches(msg, m.keys.History):
		return m, func() tea.Msg { return NavigateMsg{Scene: SceneHistory} }
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	n := 0
	if m.store != nil {
		n = m.store.Len()
	}
	switch {
	case key.Matches(msg, m.keys.Back):
		m.scene = SceneForm
	case key.Matches(msg, m.keys.Prev):
		if m.historySel > 0 {
			m.historySel--
		}
	case key.Matches(msg, m.keys.Next):
		if m.historySel < n-1 {
			m.historySel++
		}
	case key.Matches(msg, m.keys.Remove):
		if n == 0 {
			return m, nil
		}
		if err := m.store.Remove(m.historySel); err != nil {
			m.err = err
			return m, nil
		}
		m.notice = "registro removido"
		if m.historySel >= m.store.Len() && m.historySel > 0 {
			m.historySel--
		}
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

// setFocus moves the cursor and focuses the matching text input, if any.
func (m Model) setFocus(f field) (tea.Model, tea.Cmd) {
	m.focus = f
	m.salario.Blur()
	m.meses.Blur()
	switch f {
	case fieldSalario:
		return m, m.salario.Focus()
	case fieldMeses:
		return m, m.meses.Focus()
	}
	return m, nil
}

func (m Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds [2]tea.Cmd
	m.salario, cmds[0] = m.salario.Update(msg)
	m.meses, cmds[1] = m.meses.Update(msg)
	if _, ok := msg.(tea.KeyMsg); ok {
		m.err = nil
	}
	return m, tea.Batch(cmds[:]...)
}
