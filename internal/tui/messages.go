package tui

import (
	"github.com/rgehrsitz/plrgo/internal/calculation"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneForm Scene = iota
	SceneResult
	SceneHistory
)

func (s Scene) String() string {
	switch s {
	case SceneForm:
		return "Simulação"
	case SceneResult:
		return "Resultado"
	case SceneHistory:
		return "Histórico"
	default:
		return "Desconhecida"
	}
}

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// CalculationCompleteMsg carries the outcome of a form submission
type CalculationCompleteMsg struct {
	Input  calculation.PlrInput
	Result *calculation.PlrResult
	Err    error
	// HistoryErr is set when the result could not be persisted.
	HistoryErr error
}
