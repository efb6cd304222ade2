package view

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/NoaKun34/Billed-app-FR-Front/internal/bill"
)

const alertInvalidReceipt = "Le justificatif doit être une image (format png, jpg ou jpeg uniquement)"

type newBillState int

const (
	newBillStateFile newBillState = iota
	newBillStateForm
	newBillStateSubmitting
)

// NewBillModel owns the new-bill form: receipt selection with immediate
// file-type validation, silent submit guards, and the two-phase persist.
type NewBillModel struct {
	CommonModel
	svc   *bill.Service
	email string

	state      newBillState
	filePicker filepicker.Model
	form       *huh.Form

	// Form bindings
	formName       string
	formDate       string
	formAmount     string
	formVAT        string
	formPct        string
	formCommentary string

	fileName   string
	filePath   string
	imageValid bool

	alert  string
	status string
}

func NewNewBillModel(svc *bill.Service, email string) NewBillModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return NewBillModel{
		svc:        svc,
		email:      email,
		filePicker: fp,
	}
}

func (m NewBillModel) Title() string { return "Envoyer une note de frais" }

func (m NewBillModel) ShortHelp() string {
	switch m.state {
	case newBillStateForm:
		return "Enter/Tab: champ suivant | Esc: retour"
	case newBillStateSubmitting:
		return "Envoi en cours..."
	}

	return "Enter: choisir le justificatif | Esc: retour"
}

func (m NewBillModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m NewBillModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		if msg.err != nil {
			// Transport failure: stay on the form, keep the entered
			// values, allow another attempt.
			m.status = msg.err.Error()
			m.state = newBillStateForm
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		return m, Navigate(PathBills)

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

		return m, nil
	}

	switch m.state {
	case newBillStateFile:
		return m.updateFilePick(msg)
	case newBillStateForm:
		return m.updateForm(msg)
	case newBillStateSubmitting:
		// An in-flight submit cannot be cancelled and a second one must
		// not start; input is dropped until the result arrives.
		return m, nil
	}

	return m, nil
}

func (m NewBillModel) updateFilePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		return m.handleFileSelected(path)
	}

	return m, cmd
}

// handleFileSelected validates the chosen receipt at selection time. A
// wrong extension surfaces the alert and clears the selection; a valid
// one marks the form image valid and moves on to the fields.
func (m NewBillModel) handleFileSelected(path string) (NewBillModel, tea.Cmd) {
	name := filepath.Base(path)

	if !bill.ValidReceiptName(name) {
		m.alert = alertInvalidReceipt
		m.fileName = ""
		m.filePath = ""
		m.imageValid = false

		return m, nil
	}

	m.alert = ""
	m.fileName = name
	m.filePath = path
	m.imageValid = true
	m.state = newBillStateForm
	m.form = m.buildForm()

	return m, m.form.Init()
}

func (m NewBillModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("expense-name").
				Title("Nom de la dépense").
				Value(&m.formName),

			huh.NewInput().
				Key("datepicker").
				Title("Date (AAAA-MM-JJ)").
				Placeholder("2004-04-04").
				Value(&m.formDate),

			huh.NewInput().
				Key("amount").
				Title("Montant TTC").
				Value(&m.formAmount),

			huh.NewInput().
				Key("vat").
				Title("TVA (montant)").
				Value(&m.formVAT),

			huh.NewInput().
				Key("pct").
				Title("TVA (%)").
				Value(&m.formPct),

			huh.NewInput().
				Key("commentary").
				Title("Commentaire").
				Value(&m.formCommentary),
		),
	).WithWidth(48).WithShowHelp(false)
}

func (m NewBillModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m.trySubmit()
}

// trySubmit applies the submission guards. When any required field is
// missing or the image flag is unset, nothing is sent and no alert is
// raised: the form simply stays put with its values intact.
func (m NewBillModel) trySubmit() (NewBillModel, tea.Cmd) {
	m.syncFormValues()

	params, ok := m.submitParams()
	if !ok {
		m.form = m.buildForm()
		return m, m.form.Init()
	}

	m.state = newBillStateSubmitting
	m.status = ""

	return m, m.submitCmd(params)
}

// syncFormValues copies the completed form's values into the model. The
// huh form owns the authoritative copy while it is mounted.
func (m *NewBillModel) syncFormValues() {
	if m.form == nil {
		return
	}

	m.formName = m.form.GetString("expense-name")
	m.formDate = m.form.GetString("datepicker")
	m.formAmount = m.form.GetString("amount")
	m.formVAT = m.form.GetString("vat")
	m.formPct = m.form.GetString("pct")
	m.formCommentary = m.form.GetString("commentary")
}

// submitParams checks the guards and assembles the validated values.
func (m NewBillModel) submitParams() (bill.SubmitParams, bool) {
	if !m.imageValid {
		return bill.SubmitParams{}, false
	}

	if _, err := time.Parse(time.DateOnly, m.formDate); err != nil {
		return bill.SubmitParams{}, false
	}

	amount, err := strconv.ParseInt(m.formAmount, 10, 64)
	if err != nil {
		return bill.SubmitParams{}, false
	}

	pct, err := strconv.Atoi(m.formPct)
	if err != nil {
		return bill.SubmitParams{}, false
	}

	return bill.SubmitParams{
		Email:      m.email,
		Name:       m.formName,
		Amount:     amount,
		Date:       m.formDate,
		VAT:        m.formVAT,
		Pct:        pct,
		Commentary: m.formCommentary,
		FileName:   m.fileName,
	}, true
}

func (m NewBillModel) View() string {
	switch m.state {
	case newBillStateFile:
		header := lipgloss.NewStyle().Bold(true).Render(m.Title())
		body := fmt.Sprintf("%s\n\nJustificatif (png, jpg ou jpeg) :\n\n%s", header, m.filePicker.View())

		if m.alert != "" {
			body = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Render(m.alert) + "\n\n" + body
		}

		return lipgloss.NewStyle().Padding(1).Render(body)

	case newBillStateForm:
		if m.form == nil {
			return ""
		}

		info := lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Render("Justificatif: " + m.fileName)

		content := info + "\n" + m.form.View()
		if m.status != "" {
			content = lipgloss.NewStyle().
				Foreground(lipgloss.Color("196")).
				Render(m.status) + "\n" + content
		}

		return lipgloss.NewStyle().Padding(1).Render(content)

	case newBillStateSubmitting:
		return lipgloss.NewStyle().Padding(2).Render("Envoi de la note de frais...")
	}

	return ""
}

// Messages

type submitResultMsg struct {
	bill *bill.Bill
	err  error
}

func (m NewBillModel) submitCmd(params bill.SubmitParams) tea.Cmd {
	path := m.filePath
	svc := m.svc

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return submitResultMsg{err: fmt.Errorf("opening receipt: %w", err)}
		}
		defer f.Close()

		params.File = f

		ctx, cancel := APICtx()
		defer cancel()

		saved, err := svc.Submit(ctx, params)

		return submitResultMsg{bill: saved, err: err}
	}
}
