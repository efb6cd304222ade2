package view

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NoaKun34/Billed-app-FR-Front/internal/bill"
	"github.com/NoaKun34/Billed-app-FR-Front/internal/session"
)

type page int

const (
	pageLogin page = iota
	pageBills
	pageNewBill
	pageNotFound
)

// App is the navigation router: it owns the location hash, guards every
// employee view behind the session, and keeps exactly one view current.
type App struct {
	svc  *bill.Service
	sess *session.Store

	current page
	hash    string

	bills   BillsModel
	newBill NewBillModel

	width  int
	height int
}

func NewApp(sess *session.Store, svc *bill.Service) App {
	return App{
		svc:     svc,
		sess:    sess,
		current: pageLogin,
	}
}

// Hash is the canonical location fragment of the current view, the sole
// externally observable navigation state.
func (a App) Hash() string {
	return a.hash
}

// Init performs the initial dispatch: restore the previous view when a
// fragment was persisted and the role still matches, otherwise land on
// the employee default.
func (a App) Init() tea.Cmd {
	return func() tea.Msg {
		path := PathBills

		if last := a.sess.LastHash(); strings.HasPrefix(last, "#employee/") {
			p := Path(strings.TrimPrefix(last, "#employee/"))
			if p == PathBills || p == PathNewBill {
				path = p
			}
		}

		return NavigateMsg{Path: path}
	}
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.current == pageLogin || a.current == pageNotFound {
				return a, tea.Quit
			}
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height

	case NavigateMsg:
		return a.navigate(msg.Path)

	case BackMsg:
		return a.navigate(PathBills)
	}

	switch a.current {
	case pageBills:
		newModel, cmd := a.bills.Update(msg)
		a.bills = newModel.(BillsModel)

		return a, cmd
	case pageNewBill:
		newModel, cmd := a.newBill.Update(msg)
		a.newBill = newModel.(NewBillModel)

		return a, cmd
	}

	return a, nil
}

// navigate maps a path token to a view. The hash is set synchronously
// with a successful switch; an unrecognized token renders the not-found
// view without touching the hash.
func (a App) navigate(path Path) (tea.Model, tea.Cmd) {
	switch path {
	case PathBills, PathNewBill:
	default:
		a.current = pageNotFound
		return a, nil
	}

	if !a.guard() {
		a.current = pageLogin
		return a, nil
	}

	a.hash = path.Hash()
	// Persisted for reload; a persist failure never blocks navigation.
	_ = a.sess.SetLastHash(a.hash)

	switch path {
	case PathBills:
		a.current = pageBills
		a.bills = NewBillsModel(a.svc)

		return a, a.bills.Init()
	case PathNewBill:
		user, _ := a.sess.User()

		email := ""
		if user != nil {
			email = user.Email
		}

		a.current = pageNewBill
		a.newBill = NewNewBillModel(a.svc, email)

		return a, a.newBill.Init()
	}

	return a, nil
}

// guard refuses employee views unless an employee session is present and
// its token, if any, is still live. A refusal is a precondition check,
// never an error.
func (a App) guard() bool {
	user, err := a.sess.User()
	if err != nil || !user.IsEmployee() {
		return false
	}

	return a.sess.Valid()
}

func (a App) View() string {
	switch a.current {
	case pageLogin:
		return lipgloss.NewStyle().Padding(2).Render(
			"Billed\n\n" +
				"Aucune session employé trouvée.\n" +
				"Connectez-vous depuis le portail avant de lancer le client.\n\n" +
				"q. Quitter",
		)
	case pageBills:
		return a.sidebar() + "\n" + a.bills.View()
	case pageNewBill:
		return a.sidebar() + "\n" + a.newBill.View()
	case pageNotFound:
		return lipgloss.NewStyle().Padding(2).Render(
			"Page non trouvée (404)\n\nq. Quitter",
		)
	}

	return ""
}

// sidebar renders the section icons; exactly one carries the active mark.
func (a App) sidebar() string {
	active := lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	inactive := lipgloss.NewStyle().
		Faint(true).
		Padding(0, 1)

	windowIcon := inactive.Render("▦ Notes de frais")
	mailIcon := inactive.Render("✉ Nouvelle note")

	switch a.current {
	case pageBills:
		windowIcon = active.Render("▦ Notes de frais")
	case pageNewBill:
		mailIcon = active.Render("✉ Nouvelle note")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, windowIcon, " ", mailIcon)
}
