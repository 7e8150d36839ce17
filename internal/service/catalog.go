package service

import (
	"strings"

	"github.com/jamizoram/storefront/internal/domain"
)

// Wildcard values sent by the storefront filter bar
const (
	FilterAllCategories = "All"
	FilterAllTeams      = "All Teams"
)

// ProductFilter narrows a product list. All three predicates must hold
// simultaneously; empty or wildcard values match everything.
type ProductFilter struct {
	Category string
	Team     string
	Search   string
}

// Apply filters an already-fetched product list. Pure function; the caller
// decides when to re-fetch.
func (f ProductFilter) Apply(products []*domain.Product) []*domain.Product {
	out := make([]*domain.Product, 0, len(products))
	for _, p := range products {
		if f.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func (f ProductFilter) matches(p *domain.Product) bool {
	if f.Category != "" && f.Category != FilterAllCategories && string(p.Category) != f.Category {
		return false
	}
	if f.Team != "" && f.Team != FilterAllTeams && p.Team != f.Team {
		return false
	}
	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(p.Name), needle) &&
			!strings.Contains(strings.ToLower(p.Team), needle) {
			return false
		}
	}
	return true
}
