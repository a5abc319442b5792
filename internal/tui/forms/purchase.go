// ABOUTME: Purchase prompt asking how many of a sweet to buy
// ABOUTME: Submits a quantity the backend checks against real stock

package forms

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sweetworks/sweetshop-cli/internal/api"
	"github.com/sweetworks/sweetshop-cli/internal/tui/styles"
)

// PurchaseSubmittedMsg is sent when the purchase prompt completes.
type PurchaseSubmittedMsg struct {
	Sweet    api.Sweet
	Quantity int
}

// Purchase prompts for a purchase quantity for one sweet.
type Purchase struct {
	sweet    api.Sweet
	form     *huh.Form
	quantity string
	errMsg   string
}

// NewPurchase creates a prompt for the given sweet.
func NewPurchase(sweet api.Sweet) *Purchase {
	p := &Purchase{sweet: sweet, quantity: "1"}
	p.form = p.createForm()
	return p
}

func (p *Purchase) createForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Quantity").
				Description(fmt.Sprintf("%d in stock at %.2f each", p.sweet.Quantity, p.sweet.Price)).
				CharLimit(5).
				Value(&p.quantity).
				Validate(validatePositiveInt),
		).Title("Purchase " + p.sweet.Name),
	).WithTheme(theme())
}

// SetError shows a backend rejection (e.g. insufficient stock) and reopens
// the prompt.
func (p *Purchase) SetError(msg string) tea.Cmd {
	p.errMsg = msg
	p.form = p.createForm()
	return p.form.Init()
}

// Init implements tea.Model
func (p *Purchase) Init() tea.Cmd {
	return p.form.Init()
}

// Update implements tea.Model
func (p *Purchase) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return p, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := p.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		p.form = f
	}

	if p.form.State == huh.StateCompleted {
		qty, _ := strconv.Atoi(strings.TrimSpace(p.quantity))
		msg := PurchaseSubmittedMsg{Sweet: p.sweet, Quantity: qty}
		return p, func() tea.Msg { return msg }
	}
	return p, cmd
}

// View implements tea.Model
func (p *Purchase) View() string {
	var sb strings.Builder
	if p.errMsg != "" {
		sb.WriteString(styles.StatusCritical.Render(p.errMsg))
		sb.WriteString("\n\n")
	}
	sb.WriteString(p.form.View())
	return sb.String()
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}
