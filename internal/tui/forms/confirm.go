// ABOUTME: Delete confirmation prompt for catalog items
// ABOUTME: Defaults to "No"; only an explicit yes emits the confirmation

package forms

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/sweetworks/sweetshop-cli/internal/api"
)

// DeleteConfirmedMsg is sent when the user confirms the deletion.
type DeleteConfirmedMsg struct {
	Sweet api.Sweet
}

// Confirm asks before deleting a sweet.
type Confirm struct {
	sweet     api.Sweet
	form      *huh.Form
	confirmed bool
}

// NewConfirm creates a delete confirmation for the given sweet.
func NewConfirm(sweet api.Sweet) *Confirm {
	c := &Confirm{sweet: sweet}
	c.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Delete " + sweet.Name + "?").
				Description("This removes the item from the catalog for everyone.").
				Affirmative("Delete").
				Negative("Keep").
				Value(&c.confirmed),
		),
	).WithTheme(theme())
	return c
}

// Init implements tea.Model
func (c *Confirm) Init() tea.Cmd {
	return c.form.Init()
}

// Update implements tea.Model
func (c *Confirm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return c, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := c.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		c.form = f
	}

	if c.form.State == huh.StateCompleted {
		if !c.confirmed {
			return c, func() tea.Msg { return CancelledMsg{} }
		}
		msg := DeleteConfirmedMsg{Sweet: c.sweet}
		return c, func() tea.Msg { return msg }
	}
	return c, cmd
}

// View implements tea.Model
func (c *Confirm) View() string {
	return c.form.View()
}
