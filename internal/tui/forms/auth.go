// ABOUTME: Login and register forms as a bubbletea model
// ABOUTME: Validates input locally, then hands credentials to the app for the backend call

package forms

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sweetworks/sweetshop-cli/internal/api"
	"github.com/sweetworks/sweetshop-cli/internal/tui/styles"
)

// AuthMode selects between the login and register variants of the form.
type AuthMode int

const (
	ModeLogin AuthMode = iota
	ModeRegister
)

// AuthSubmittedMsg is sent when the form completes with valid input.
type AuthSubmittedMsg struct {
	Mode     AuthMode
	Name     string
	Email    string
	Password string
}

// CancelledMsg is sent when the user backs out of any form.
type CancelledMsg struct{}

// Auth is the login/register form.
type Auth struct {
	mode AuthMode
	form *huh.Form

	name     string
	email    string
	password string
	errMsg   string
}

// NewAuth creates a fresh form in the given mode.
func NewAuth(mode AuthMode) *Auth {
	a := &Auth{mode: mode}
	a.form = a.createForm()
	return a
}

func (a *Auth) createForm() *huh.Form {
	fields := []huh.Field{}
	if a.mode == ModeRegister {
		fields = append(fields, huh.NewInput().
			Title("Name").
			Placeholder("Ada Lovelace").
			Value(&a.name))
	}
	fields = append(fields,
		huh.NewInput().
			Title("Email").
			Placeholder("you@example.com").
			Value(&a.email),
		huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(&a.password),
	)

	title := "Log in"
	desc := "Enter your credentials"
	if a.mode == ModeRegister {
		title = "Create account"
		desc = "Pick a name, email, and password"
	}
	return huh.NewForm(
		huh.NewGroup(fields...).Title(title).Description(desc),
	).WithTheme(theme())
}

// SetError shows a backend rejection and reopens the form with the values
// the user already typed.
func (a *Auth) SetError(msg string) tea.Cmd {
	a.errMsg = msg
	a.form = a.createForm()
	return a.form.Init()
}

// Init implements tea.Model
func (a *Auth) Init() tea.Cmd {
	return a.form.Init()
}

// Update implements tea.Model
func (a *Auth) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return a, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		return a.submit()
	}
	return a, cmd
}

func (a *Auth) submit() (tea.Model, tea.Cmd) {
	var err error
	if a.mode == ModeRegister {
		err = api.ValidateRegistration(a.name, a.email, a.password)
	} else {
		err = api.ValidateCredentials(a.email, a.password)
	}
	if err != nil {
		// Rebuild the form so the user can fix the input.
		return a, a.SetError(err.Error())
	}

	msg := AuthSubmittedMsg{
		Mode:     a.mode,
		Name:     strings.TrimSpace(a.name),
		Email:    strings.TrimSpace(a.email),
		Password: a.password,
	}
	return a, func() tea.Msg { return msg }
}

// View implements tea.Model
func (a *Auth) View() string {
	var sb strings.Builder
	if a.errMsg != "" {
		sb.WriteString(styles.StatusCritical.Render(a.errMsg))
		sb.WriteString("\n\n")
	}
	sb.WriteString(a.form.View())
	return sb.String()
}
