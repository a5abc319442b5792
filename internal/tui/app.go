// ABOUTME: Root bubbletea model for the storefront TUI
// ABOUTME: Manages screen state, session transitions, and catalog refreshes

package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sweetworks/sweetshop-cli/internal/api"
	"github.com/sweetworks/sweetshop-cli/internal/catalog"
	"github.com/sweetworks/sweetshop-cli/internal/debuglog"
	"github.com/sweetworks/sweetshop-cli/internal/session"
	"github.com/sweetworks/sweetshop-cli/internal/tui/catalogview"
	"github.com/sweetworks/sweetshop-cli/internal/tui/forms"
	"github.com/sweetworks/sweetshop-cli/internal/tui/styles"
)

// Screen represents the current TUI screen
type Screen int

const (
	ScreenCatalog Screen = iota
	ScreenAuth
	ScreenItem
	ScreenPurchase
	ScreenConfirm
)

// Layout constants
const (
	minTerminalWidth = 60
	frameOverhead    = 6 // header, footer, notice, spacing
)

// sweetsLoadedMsg is sent when a catalog fetch completes
type sweetsLoadedMsg struct {
	sweets []api.Sweet
	err    error
}

// authDoneMsg is sent when a login or register call completes
type authDoneMsg struct {
	mode        forms.AuthMode
	user        *api.User
	established bool
	err         error
}

// mutationDoneMsg is sent when a create/update/delete/purchase call completes
type mutationDoneMsg struct {
	verb  string
	name  string
	sweet *api.Sweet
	err   error
}

// App is the root model for the TUI
type App struct {
	sess   *session.Manager
	client *api.Client
	cache  *catalog.Cache

	// ctx bounds every request the TUI issues; quit cancels it, and
	// logout swaps it so in-flight authenticated work is aborted.
	ctx    context.Context
	cancel context.CancelFunc

	screen  Screen
	width   int
	height  int
	notice  string
	isError bool
	wasAuth bool

	catalog      *catalogview.Catalog
	authForm     *forms.Auth
	itemForm     *forms.Item
	purchaseForm *forms.Purchase
	confirmForm  *forms.Confirm
}

// New creates the TUI application over an already-restored session.
func New(sess *session.Manager, client *api.Client, cache *catalog.Cache) *App {
	ctx, cancel := context.WithCancel(context.Background())
	return &App{
		sess:    sess,
		client:  client,
		cache:   cache,
		ctx:     ctx,
		cancel:  cancel,
		catalog: catalogview.New(),
		wasAuth: sess.IsAuthenticated(),
	}
}

// abortInflight cancels requests started under the previous session state
// and arms a fresh context for the next one.
func (a *App) abortInflight() {
	a.cancel()
	a.ctx, a.cancel = context.WithCancel(context.Background())
}

// Init implements tea.Model
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.catalog.SetLoading(true), a.loadCatalog(false))
}

// Update implements tea.Model
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.catalog.SetSize(a.contentWidth(), a.contentHeight())
		return a, a.forwardToForm(msg)

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			a.cancel()
			return a, tea.Quit
		}
		if a.screen == ScreenCatalog {
			return a.updateCatalog(msg)
		}
		return a, a.forwardToForm(msg)

	case sweetsLoadedMsg:
		a.catalog.SetLoading(false)
		if msg.err != nil {
			debuglog.Error("load catalog", msg.err)
			a.setNotice(friendlyError(msg.err), true)
			a.catalog.SetSweets(nil)
		} else {
			a.catalog.SetSweets(msg.sweets)
		}
		a.checkSessionExpiry()
		return a, nil

	case forms.AuthSubmittedMsg:
		return a, a.authenticate(msg)

	case authDoneMsg:
		return a.handleAuthDone(msg)

	case forms.ItemSubmittedMsg:
		if msg.ID == "" {
			return a, a.createSweet(msg.Input)
		}
		return a, a.updateSweet(msg.ID, msg.Input)

	case forms.PurchaseSubmittedMsg:
		return a, a.purchaseSweet(msg.Sweet, msg.Quantity)

	case forms.DeleteConfirmedMsg:
		return a, a.deleteSweet(msg.Sweet)

	case forms.CancelledMsg:
		a.closeForms()
		return a, nil

	case mutationDoneMsg:
		return a.handleMutationDone(msg)

	default:
		// Spinner ticks go to the catalog; everything else may be huh
		// form internals for the active screen.
		if a.screen == ScreenCatalog {
			return a, a.catalog.Update(msg)
		}
		return a, a.forwardToForm(msg)
	}
}

// updateCatalog routes keys on the catalog screen
func (a *App) updateCatalog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.catalog.Searching() {
		return a, a.catalog.Update(msg)
	}

	switch msg.String() {
	case "q":
		a.cancel()
		return a, tea.Quit

	case "r":
		return a, tea.Batch(a.catalog.SetLoading(true), a.loadCatalog(true))

	case "l":
		if !a.sess.IsAuthenticated() {
			return a, a.openAuth(forms.ModeLogin)
		}

	case "s":
		if !a.sess.IsAuthenticated() {
			return a, a.openAuth(forms.ModeRegister)
		}

	case "o":
		if a.sess.IsAuthenticated() {
			a.abortInflight()
			a.sess.Logout()
			a.wasAuth = false
			a.setNotice("Logged out.", false)
			return a, nil
		}

	case "p":
		if sweet := a.catalog.Selected(); sweet != nil {
			if !a.sess.IsAuthenticated() {
				a.setNotice("Log in to purchase.", true)
				return a, nil
			}
			a.screen = ScreenPurchase
			a.purchaseForm = forms.NewPurchase(*sweet)
			return a, a.purchaseForm.Init()
		}

	case "n":
		if a.sess.IsAdmin() {
			a.screen = ScreenItem
			a.itemForm = forms.NewItem()
			return a, a.itemForm.Init()
		}

	case "e":
		if sweet := a.catalog.Selected(); sweet != nil && a.sess.IsAdmin() {
			a.screen = ScreenItem
			a.itemForm = forms.NewItemEdit(*sweet)
			return a, a.itemForm.Init()
		}

	case "d":
		if sweet := a.catalog.Selected(); sweet != nil && a.sess.IsAdmin() {
			a.screen = ScreenConfirm
			a.confirmForm = forms.NewConfirm(*sweet)
			return a, a.confirmForm.Init()
		}
	}

	return a, a.catalog.Update(msg)
}

func (a *App) openAuth(mode forms.AuthMode) tea.Cmd {
	a.screen = ScreenAuth
	a.authForm = forms.NewAuth(mode)
	return a.authForm.Init()
}

// forwardToForm delivers a message to whichever form owns the screen
func (a *App) forwardToForm(msg tea.Msg) tea.Cmd {
	switch a.screen {
	case ScreenAuth:
		if a.authForm == nil {
			return nil
		}
		model, cmd := a.authForm.Update(msg)
		a.authForm = model.(*forms.Auth)
		return cmd
	case ScreenItem:
		if a.itemForm == nil {
			return nil
		}
		model, cmd := a.itemForm.Update(msg)
		a.itemForm = model.(*forms.Item)
		return cmd
	case ScreenPurchase:
		if a.purchaseForm == nil {
			return nil
		}
		model, cmd := a.purchaseForm.Update(msg)
		a.purchaseForm = model.(*forms.Purchase)
		return cmd
	case ScreenConfirm:
		if a.confirmForm == nil {
			return nil
		}
		model, cmd := a.confirmForm.Update(msg)
		a.confirmForm = model.(*forms.Confirm)
		return cmd
	}
	return nil
}

func (a *App) handleAuthDone(msg authDoneMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		debuglog.Error("authenticate", msg.err)
		if a.authForm != nil {
			return a, a.authForm.SetError(friendlyError(msg.err))
		}
		a.setNotice(friendlyError(msg.err), true)
		return a, nil
	}

	a.closeForms()
	if msg.mode == forms.ModeRegister && !msg.established {
		a.setNotice("Registered. Log in to start shopping.", false)
		return a, nil
	}

	a.wasAuth = true
	name := ""
	if msg.user != nil {
		name = msg.user.Name
	}
	a.setNotice(fmt.Sprintf("Logged in as %s.", name), false)
	return a, nil
}

func (a *App) handleMutationDone(msg mutationDoneMsg) (tea.Model, tea.Cmd) {
	a.checkSessionExpiry()

	if msg.err != nil {
		debuglog.Error(msg.verb, msg.err)
		friendly := friendlyError(msg.err)
		// Session gone means the form's retry would fail the same way;
		// fall back to the catalog in that case.
		if a.sess.IsAuthenticated() {
			switch a.screen {
			case ScreenPurchase:
				if a.purchaseForm != nil {
					return a, a.purchaseForm.SetError(friendly)
				}
			case ScreenItem:
				if a.itemForm != nil {
					return a, a.itemForm.SetError(friendly)
				}
			}
		}
		a.closeForms()
		a.setNotice(friendly, true)
		return a, nil
	}

	a.closeForms()
	switch msg.verb {
	case "purchase":
		left := 0
		if msg.sweet != nil {
			left = msg.sweet.Quantity
		}
		a.setNotice(fmt.Sprintf("Purchased %s. %d left in stock.", msg.name, left), false)
	case "create":
		a.setNotice(fmt.Sprintf("Added %s to the catalog.", msg.name), false)
	case "update":
		a.setNotice(fmt.Sprintf("Updated %s.", msg.name), false)
	case "delete":
		a.setNotice(fmt.Sprintf("Deleted %s.", msg.name), false)
	}

	// The backend owns inventory truth: re-fetch, never patch locally.
	return a, tea.Batch(a.catalog.SetLoading(true), a.loadCatalog(true))
}

func (a *App) closeForms() {
	a.screen = ScreenCatalog
	a.authForm = nil
	a.itemForm = nil
	a.purchaseForm = nil
	a.confirmForm = nil
}

func (a *App) setNotice(text string, isErr bool) {
	a.notice = text
	a.isError = isErr
}

// checkSessionExpiry notices the uniform 401 policy having cleared the
// session underneath us and tells the user.
func (a *App) checkSessionExpiry() {
	if a.wasAuth && !a.sess.IsAuthenticated() {
		a.wasAuth = false
		a.setNotice("Session expired; you have been logged out.", true)
	}
}

// loadCatalog fetches the sweet list, forcing a re-fetch after mutations
func (a *App) loadCatalog(force bool) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		var (
			sweets []api.Sweet
			err    error
		)
		if force {
			sweets, err = a.cache.Refresh(ctx)
		} else {
			sweets, err = a.cache.Sweets(ctx)
		}
		return sweetsLoadedMsg{sweets: sweets, err: err}
	}
}

func (a *App) authenticate(msg forms.AuthSubmittedMsg) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		if msg.Mode == forms.ModeRegister {
			user, established, err := a.sess.Register(ctx, msg.Name, msg.Email, msg.Password)
			return authDoneMsg{mode: msg.Mode, user: user, established: established, err: err}
		}
		user, err := a.sess.Login(ctx, msg.Email, msg.Password)
		return authDoneMsg{mode: msg.Mode, user: user, established: err == nil, err: err}
	}
}

func (a *App) purchaseSweet(sweet api.Sweet, quantity int) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		updated, err := a.client.PurchaseSweet(ctx, sweet.ID, quantity)
		return mutationDoneMsg{verb: "purchase", name: sweet.Name, sweet: updated, err: err}
	}
}

func (a *App) createSweet(input api.SweetInput) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		sweet, err := a.client.CreateSweet(ctx, &input)
		return mutationDoneMsg{verb: "create", name: input.Name, sweet: sweet, err: err}
	}
}

func (a *App) updateSweet(id string, input api.SweetInput) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		sweet, err := a.client.UpdateSweet(ctx, id, &input)
		return mutationDoneMsg{verb: "update", name: input.Name, sweet: sweet, err: err}
	}
}

func (a *App) deleteSweet(sweet api.Sweet) tea.Cmd {
	ctx := a.ctx
	return func() tea.Msg {
		err := a.client.DeleteSweet(ctx, sweet.ID)
		return mutationDoneMsg{verb: "delete", name: sweet.Name, err: err}
	}
}

// View implements tea.Model
func (a *App) View() string {
	var content string
	switch a.screen {
	case ScreenAuth:
		if a.authForm != nil {
			content = a.authForm.View()
		}
	case ScreenItem:
		if a.itemForm != nil {
			content = a.itemForm.View()
		}
	case ScreenPurchase:
		if a.purchaseForm != nil {
			content = a.purchaseForm.View()
		}
	case ScreenConfirm:
		if a.confirmForm != nil {
			content = a.confirmForm.View()
		}
	default:
		content = a.catalog.View()
	}

	var sb strings.Builder
	sb.WriteString(a.renderHeader())
	sb.WriteString("\n\n")
	sb.WriteString(content)
	sb.WriteString("\n")
	sb.WriteString(a.renderNotice())
	sb.WriteString("\n")
	sb.WriteString(a.renderFooter())
	return sb.String()
}

// renderHeader shows the shop name and who is logged in
func (a *App) renderHeader() string {
	left := styles.HeaderTitle.Render("🍬 Sweet Shop")

	right := styles.Dim.Render("browsing anonymously")
	if a.sess.IsAuthenticated() {
		if user := a.sess.User(); user != nil {
			label := user.Name
			if user.IsAdmin {
				label += " [admin]"
			}
			right = styles.StatusOK.Render(label)
		} else {
			right = styles.StatusOK.Render("logged in")
		}
	}

	width := a.width
	if width < minTerminalWidth {
		width = minTerminalWidth
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}

// renderNotice shows the last action's outcome
func (a *App) renderNotice() string {
	if a.notice == "" {
		return ""
	}
	if a.isError {
		return styles.StatusCritical.Render(a.notice)
	}
	return styles.StatusOK.Render(a.notice)
}

// renderFooter lists the shortcuts valid for the current screen
func (a *App) renderFooter() string {
	var shortcuts []string
	switch a.screen {
	case ScreenCatalog:
		shortcuts = []string{"↑↓ Navigate", "/ Search", "r Refresh"}
		if a.sess.IsAuthenticated() {
			shortcuts = append(shortcuts, "p Purchase", "o Logout")
		} else {
			shortcuts = append(shortcuts, "l Login", "s Sign up")
		}
		if a.sess.IsAdmin() {
			shortcuts = append(shortcuts, "n New", "e Edit", "d Delete")
		}
		shortcuts = append(shortcuts, "q Quit")
	default:
		shortcuts = []string{"Enter Confirm", "Esc Cancel"}
	}

	styled := make([]string, 0, len(shortcuts))
	for _, s := range shortcuts {
		parts := strings.SplitN(s, " ", 2)
		if len(parts) == 2 {
			styled = append(styled, styles.KeyStyle.Render(parts[0])+" "+styles.Dim.Render(parts[1]))
		} else {
			styled = append(styled, s)
		}
	}
	return strings.Join(styled, "  ")
}

// contentWidth returns the width available to the catalog table
func (a *App) contentWidth() int {
	if a.width < minTerminalWidth {
		return minTerminalWidth
	}
	return a.width
}

// contentHeight returns the height available to the catalog table
func (a *App) contentHeight() int {
	return a.height - frameOverhead
}

// Run starts the TUI
func Run(sess *session.Manager, client *api.Client, cache *catalog.Cache) error {
	app := New(sess, client, cache)
	defer app.cancel()
	p := tea.NewProgram(app, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
