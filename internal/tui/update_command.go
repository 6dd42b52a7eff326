// internal/tui/update_command.go
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) updateCommandMode(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEscape, tea.KeyCtrlC:
			m.mode = normalMode
			m.textInput.Blur()
			m.textInput.SetValue("")
			return nil
		case tea.KeyEnter:
			input := m.textInput.Value()
			m.mode = normalMode
			m.textInput.Blur()
			m.textInput.SetValue("")
			return m.ExecuteCommand(input)
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return cmd
}
