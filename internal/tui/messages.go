package tui

import tea "github.com/charmbracelet/bubbletea"

type statusMsg struct {
	text  string
	isErr bool
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg { return statusMsg{text: text} }
}

func errorCmd(err error) tea.Cmd {
	return func() tea.Msg {
		if err == nil {
			return statusMsg{}
		}
		return statusMsg{text: err.Error(), isErr: true}
	}
}
