// ABOUTME: Catalog table component with incremental search
// ABOUTME: Renders the sweet list and tracks the current selection

package catalogview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sweetworks/sweetshop-cli/internal/api"
	"github.com/sweetworks/sweetshop-cli/internal/catalog"
	"github.com/sweetworks/sweetshop-cli/internal/tui/styles"
)

const minTableHeight = 5

// Catalog displays the sweet list with a search box above it.
type Catalog struct {
	table   table.Model
	search  textinput.Model
	spin    spinner.Model
	sweets  []api.Sweet
	visible []api.Sweet

	searching bool
	loading   bool
	width     int
	height    int
}

// New creates an empty catalog view.
func New() *Catalog {
	ti := textinput.New()
	ti.Placeholder = "type to search"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.Primary)

	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(minTableHeight),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(styles.Muted).
		BorderBottom(true).
		Bold(true).
		Foreground(styles.Accent)
	ts.Selected = ts.Selected.
		Foreground(styles.Text).
		Background(styles.Surface).
		Bold(true)
	t.SetStyles(ts)

	return &Catalog{table: t, search: ti, spin: sp}
}

func columns(width int) []table.Column {
	name := width - 46
	if name < 16 {
		name = 16
	}
	return []table.Column{
		{Title: "Name", Width: name},
		{Title: "Category", Width: 14},
		{Title: "Price", Width: 8},
		{Title: "Stock", Width: 14},
	}
}

// SetSize updates the component dimensions.
func (c *Catalog) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.table.SetColumns(columns(width))
	h := height - 4 // search line, spacing, detail line
	if h < minTableHeight {
		h = minTableHeight
	}
	c.table.SetHeight(h)
}

// SetSweets replaces the catalog data and re-applies the current search.
func (c *Catalog) SetSweets(sweets []api.Sweet) {
	c.sweets = sweets
	c.loading = false
	c.applyFilter()
}

// SetLoading toggles the fetch spinner. Returns the tick command that keeps
// the spinner animated while loading.
func (c *Catalog) SetLoading(loading bool) tea.Cmd {
	c.loading = loading
	if loading {
		return c.spin.Tick
	}
	return nil
}

// Searching reports whether the search box owns keyboard input.
func (c *Catalog) Searching() bool {
	return c.searching
}

// Selected returns the sweet under the cursor, nil when the list is empty.
func (c *Catalog) Selected() *api.Sweet {
	idx := c.table.Cursor()
	if idx < 0 || idx >= len(c.visible) {
		return nil
	}
	s := c.visible[idx]
	return &s
}

// Update handles key and spinner messages.
func (c *Catalog) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !c.loading {
			return nil
		}
		var cmd tea.Cmd
		c.spin, cmd = c.spin.Update(msg)
		return cmd

	case tea.KeyMsg:
		if c.searching {
			switch msg.String() {
			case "esc":
				c.searching = false
				c.search.Blur()
				c.search.SetValue("")
				c.applyFilter()
				return nil
			case "enter":
				c.searching = false
				c.search.Blur()
				return nil
			default:
				var cmd tea.Cmd
				c.search, cmd = c.search.Update(msg)
				c.applyFilter()
				return cmd
			}
		}

		if msg.String() == "/" {
			c.searching = true
			return c.search.Focus()
		}

		var cmd tea.Cmd
		c.table, cmd = c.table.Update(msg)
		return cmd
	}
	return nil
}

// applyFilter narrows the visible rows by the search text.
func (c *Catalog) applyFilter() {
	filter := catalog.Filter{Search: c.search.Value(), MaxPrice: catalog.NoMaxPrice}
	c.visible = filter.Apply(c.sweets)

	rows := make([]table.Row, 0, len(c.visible))
	for _, s := range c.visible {
		stock := fmt.Sprintf("%d", s.Quantity)
		if !s.InStock() {
			stock = "out of stock"
		}
		rows = append(rows, table.Row{s.Name, s.Category, fmt.Sprintf("%.2f", s.Price), stock})
	}
	c.table.SetRows(rows)
	if c.table.Cursor() >= len(rows) {
		c.table.SetCursor(0)
	}
}

// View renders the search line, the table, and the selection detail.
func (c *Catalog) View() string {
	if c.loading {
		return c.spin.View() + " Loading catalog..."
	}

	var sb strings.Builder
	if c.searching || c.search.Value() != "" {
		sb.WriteString(c.search.View())
	} else {
		sb.WriteString(styles.Dim.Render(fmt.Sprintf("%d sweets · press / to search", len(c.visible))))
	}
	sb.WriteString("\n")
	sb.WriteString(c.table.View())
	sb.WriteString("\n")

	if s := c.Selected(); s != nil {
		detail := fmt.Sprintf("%s  %s", styles.ValueStyle.Render(s.Name), styles.StockBadge(s.Quantity))
		if s.Description != "" {
			detail += "  " + styles.Dim.Render(s.Description)
		}
		sb.WriteString(detail)
	} else {
		sb.WriteString(styles.Dim.Render("No sweets match."))
	}
	return sb.String()
}
