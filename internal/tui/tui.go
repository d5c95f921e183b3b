package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/almasgali/planhub/internal/store"
)

// RunBoardTUI starts the interactive kanban board
func RunBoardTUI(s *store.Store) error {
	p := tea.NewProgram(NewBoardModel(s), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
