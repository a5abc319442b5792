// ABOUTME: Create/edit sweet form as a bubbletea model
// ABOUTME: Collects item fields as text and submits a validated SweetInput

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

// ItemSubmittedMsg is sent when the item form completes with valid input.
// ID is empty for a create and the existing sweet's id for an edit.
type ItemSubmittedMsg struct {
	ID    string
	Input api.SweetInput
}

// Item is the create/edit form for a catalog entry.
type Item struct {
	id   string
	form *huh.Form

	name        string
	category    string
	description string
	price       string
	quantity    string
	imageURL    string
	errMsg      string
}

// NewItem creates a blank form for a new sweet.
func NewItem() *Item {
	i := &Item{quantity: "0", price: "0"}
	i.form = i.createForm()
	return i
}

// NewItemEdit creates a form prefilled from an existing sweet.
func NewItemEdit(sweet api.Sweet) *Item {
	i := &Item{
		id:          sweet.ID,
		name:        sweet.Name,
		category:    sweet.Category,
		description: sweet.Description,
		price:       strconv.FormatFloat(sweet.Price, 'f', -1, 64),
		quantity:    strconv.Itoa(sweet.Quantity),
		imageURL:    sweet.ImageURL,
	}
	i.form = i.createForm()
	return i
}

func (i *Item) createForm() *huh.Form {
	title := "New sweet"
	if i.id != "" {
		title = "Edit sweet"
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&i.name),
			huh.NewInput().
				Title("Category").
				Placeholder("chocolate, gummy, ...").
				Value(&i.category),
			huh.NewInput().
				Title("Description").
				Value(&i.description),
			huh.NewInput().
				Title("Price").
				Value(&i.price).
				Validate(validatePrice),
			huh.NewInput().
				Title("Quantity").
				Value(&i.quantity).
				Validate(validateQuantity),
			huh.NewInput().
				Title("Image URL").
				Placeholder("optional").
				Value(&i.imageURL),
		).Title(title).Description("The backend validates again before saving"),
	).WithTheme(theme())
}

// SetError shows a backend rejection and reopens the form.
func (i *Item) SetError(msg string) tea.Cmd {
	i.errMsg = msg
	i.form = i.createForm()
	return i.form.Init()
}

// Init implements tea.Model
func (i *Item) Init() tea.Cmd {
	return i.form.Init()
}

// Update implements tea.Model
func (i *Item) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		return i, func() tea.Msg { return CancelledMsg{} }
	}

	form, cmd := i.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		i.form = f
	}

	if i.form.State == huh.StateCompleted {
		return i.submit()
	}
	return i, cmd
}

func (i *Item) submit() (tea.Model, tea.Cmd) {
	price, _ := strconv.ParseFloat(strings.TrimSpace(i.price), 64)
	quantity, _ := strconv.Atoi(strings.TrimSpace(i.quantity))

	input := api.SweetInput{
		Name:        strings.TrimSpace(i.name),
		Category:    strings.TrimSpace(i.category),
		Description: strings.TrimSpace(i.description),
		Price:       price,
		Quantity:    quantity,
		ImageURL:    strings.TrimSpace(i.imageURL),
	}
	if err := input.Validate(); err != nil {
		return i, i.SetError(err.Error())
	}

	msg := ItemSubmittedMsg{ID: i.id, Input: input}
	return i, func() tea.Msg { return msg }
}

// View implements tea.Model
func (i *Item) View() string {
	var sb strings.Builder
	if i.errMsg != "" {
		sb.WriteString(styles.StatusCritical.Render(i.errMsg))
		sb.WriteString("\n\n")
	}
	sb.WriteString(i.form.View())
	return sb.String()
}

func validatePrice(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("must be a non-negative number")
	}
	return nil
}

func validateQuantity(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return fmt.Errorf("must be a non-negative whole number")
	}
	return nil
}
