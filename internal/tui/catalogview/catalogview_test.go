// ABOUTME: Tests for the catalog table component
// ABOUTME: Covers selection, incremental search, and render output

package catalogview

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sweetworks/sweetshop-cli/internal/api"
)

func sampleSweets() []api.Sweet {
	return []api.Sweet{
		{ID: "1", Name: "Dark Fudge", Category: "chocolate", Description: "rich", Price: 3.5, Quantity: 12},
		{ID: "2", Name: "Lemon Drop", Category: "hard candy", Price: 0.5, Quantity: 0},
	}
}

func typeRune(c *Catalog, r rune) {
	c.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func TestSelectedReturnsFirstRow(t *testing.T) {
	c := New()
	c.SetSweets(sampleSweets())

	s := c.Selected()
	if s == nil {
		t.Fatal("expected a selection")
	}
	if s.Name != "Dark Fudge" {
		t.Errorf("Selected = %q, want Dark Fudge", s.Name)
	}
}

func TestSelectedNilWhenEmpty(t *testing.T) {
	c := New()
	c.SetSweets(nil)
	if s := c.Selected(); s != nil {
		t.Errorf("Selected = %+v, want nil on empty catalog", s)
	}
}

func TestSearchNarrowsRows(t *testing.T) {
	c := New()
	c.SetSweets(sampleSweets())

	typeRune(c, '/')
	if !c.Searching() {
		t.Fatal("expected search mode after pressing /")
	}

	for _, r := range "lemon" {
		typeRune(c, r)
	}

	s := c.Selected()
	if s == nil || s.Name != "Lemon Drop" {
		t.Errorf("Selected = %+v, want Lemon Drop after narrowing", s)
	}
}

func TestEscClearsSearch(t *testing.T) {
	c := New()
	c.SetSweets(sampleSweets())

	typeRune(c, '/')
	typeRune(c, 'x')
	c.Update(tea.KeyMsg{Type: tea.KeyEsc})

	if c.Searching() {
		t.Error("expected search mode to end on esc")
	}
	if s := c.Selected(); s == nil || s.Name != "Dark Fudge" {
		t.Errorf("Selected = %+v, want full catalog restored", s)
	}
}

func TestEnterKeepsSearchFilter(t *testing.T) {
	c := New()
	c.SetSweets(sampleSweets())

	typeRune(c, '/')
	for _, r := range "fudge" {
		typeRune(c, r)
	}
	c.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if c.Searching() {
		t.Error("expected search mode to end on enter")
	}
	if s := c.Selected(); s == nil || s.Name != "Dark Fudge" {
		t.Errorf("Selected = %+v, want the filter kept after enter", s)
	}
}

func TestViewShowsStockState(t *testing.T) {
	c := New()
	c.SetSize(100, 30)
	c.SetSweets(sampleSweets())

	view := c.View()
	if !strings.Contains(view, "Dark Fudge") {
		t.Errorf("view missing sweet name:\n%s", view)
	}
	if !strings.Contains(view, "out of stock") {
		t.Errorf("view missing out-of-stock marker:\n%s", view)
	}
}

func TestViewWhileLoading(t *testing.T) {
	c := New()
	c.SetLoading(true)

	if !strings.Contains(c.View(), "Loading catalog") {
		t.Errorf("view = %q, want loading message", c.View())
	}
}
