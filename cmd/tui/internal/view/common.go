package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Path is a recognized navigation token. The router maps it to a view and
// to the canonical location hash.
type Path string

const (
	PathBills   Path = "bills"
	PathNewBill Path = "bill/new"
)

// Hash returns the canonical location fragment for the path.
func (p Path) Hash() string {
	return "#employee/" + string(p)
}

// CommonModel is embedded by all views.
type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// NavigateMsg asks the router to switch to another view.
type NavigateMsg struct {
	Path Path
}

func Navigate(p Path) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Path: p}
	}
}
