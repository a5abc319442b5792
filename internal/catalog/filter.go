// ABOUTME: Pure filter helpers for the sweet catalog
// ABOUTME: Shared by the list command and the TUI search box

package catalog

import (
	"sort"
	"strings"

	"github.com/sweetworks/sweetshop-cli/internal/api"
)

// Filter narrows a catalog. Zero values mean "no constraint"; MaxPrice uses
// a negative value for "no upper bound" because zero is a legal price.
type Filter struct {
	Search   string
	Category string
	MinPrice float64
	MaxPrice float64
}

// NoMaxPrice is the MaxPrice value meaning unbounded.
const NoMaxPrice = -1

// Apply returns the sweets matching every set constraint, in the original
// order.
func (f Filter) Apply(sweets []api.Sweet) []api.Sweet {
	out := make([]api.Sweet, 0, len(sweets))
	for _, s := range sweets {
		if f.matches(s) {
			out = append(out, s)
		}
	}
	return out
}

func (f Filter) matches(s api.Sweet) bool {
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(s.Name), needle) &&
			!strings.Contains(strings.ToLower(s.Description), needle) {
			return false
		}
	}
	if f.Category != "" && !strings.EqualFold(s.Category, f.Category) {
		return false
	}
	if s.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice >= 0 && s.Price > f.MaxPrice {
		return false
	}
	return true
}

// Categories returns the distinct categories present, sorted, for building
// filter menus.
func Categories(sweets []api.Sweet) []string {
	seen := map[string]bool{}
	var out []string
	for _, s := range sweets {
		if s.Category == "" || seen[s.Category] {
			continue
		}
		seen[s.Category] = true
		out = append(out, s.Category)
	}
	sort.Strings(out)
	return out
}
