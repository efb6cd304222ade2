package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NoaKun34/Billed-app-FR-Front/internal/bill"
)

type billsState int

const (
	billsStateBrowse billsState = iota
	billsStatePreview
)

type BillsModel struct {
	CommonModel
	svc *bill.Service

	state billsState
	table table.Model
	bills []*bill.Bill

	loading bool
	err     error
	status  string
}

func NewBillsModel(svc *bill.Service) BillsModel {
	columns := []table.Column{
		{Title: "Type", Width: 22},
		{Title: "Nom", Width: 24},
		{Title: "Date", Width: 12},
		{Title: "Montant", Width: 10},
		{Title: "Statut", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return BillsModel{
		svc:     svc,
		table:   t,
		loading: true,
	}
}

func (m BillsModel) Title() string { return "Mes notes de frais" }

func (m BillsModel) ShortHelp() string {
	if m.state == billsStatePreview {
		return "Esc: fermer le justificatif"
	}

	return "n: nouvelle note de frais | Enter: justificatif | r: rafraîchir"
}

func (m BillsModel) Init() tea.Cmd {
	return m.loadBillsCmd()
}

func (m BillsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBillsMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		m.err = nil
		m.bills = msg.bills
		m.status = ""
		m.refreshTable()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.table.SetHeight(msg.Height - 10)

		return m, nil
	}

	switch m.state {
	case billsStateBrowse:
		return m.updateBrowse(msg)
	case billsStatePreview:
		return m.updatePreview(msg)
	}

	return m, nil
}

func (m BillsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "n":
			return m, Navigate(PathNewBill)
		case "r":
			m.loading = true
			return m, m.loadBillsCmd()
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.bills) {
				return m, nil
			}

			m.state = billsStatePreview
			m.table.Blur()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m BillsModel) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc || keyMsg.Type == tea.KeyEnter {
			m.state = billsStateBrowse
			m.table.Focus()

			return m, nil
		}
	}

	return m, nil
}

func (m BillsModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Chargement des notes de frais...")
	}

	if m.err != nil {
		label := m.err.Error()
		switch {
		case bill.NotFound(m.err):
			label = "Erreur 404"
		case bill.ServerError(m.err):
			label = "Erreur 500"
		}

		return lipgloss.NewStyle().Padding(2).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(label) +
				"\n\n(r pour réessayer)",
		)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Bold(true).Render(m.Title()),
		tableView,
	)

	if m.state == billsStatePreview {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, m.previewPanel())
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m BillsModel) previewPanel() string {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.bills) {
		return ""
	}

	b := m.bills[idx]

	return lipgloss.NewStyle().
		Padding(1, 2).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Width(48).
		Render(fmt.Sprintf("Justificatif\n\nFichier: %s\nURL: %s", b.FileName, b.FileURL))
}

func (m *BillsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.bills))
	for _, b := range m.bills {
		rows = append(rows, table.Row{
			string(b.Type),
			b.Name,
			bill.FormatDate(b.Date),
			FormatAmount(b.Amount),
			b.Status.Label(),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadBillsMsg struct {
	bills []*bill.Bill
	err   error
}

func (m BillsModel) loadBillsCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := APICtx()
		defer cancel()

		bills, err := m.svc.List(ctx)

		return loadBillsMsg{bills: bills, err: err}
	}
}
