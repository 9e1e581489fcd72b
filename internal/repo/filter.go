package repo

import (
	"strings"

	"github.com/Skotchmaster/bookbazaar/internal/models"
)

// BookFilter narrows a book listing. Nil fields and a blank Search apply no constraint.
type BookFilter struct {
	Category  *models.Category
	Condition *models.Condition
	Format    *models.Format
	MinPrice  *float64
	MaxPrice  *float64
	Search    string
	SellerID  *uint
}

// Match reports whether b satisfies every set criterion.
func (f BookFilter) Match(b models.Book) bool {
	if f.Category != nil && b.Category != *f.Category {
		return false
	}
	if f.Condition != nil && b.Condition != *f.Condition {
		return false
	}
	if f.Format != nil && b.Format != *f.Format {
		return false
	}
	if f.MinPrice != nil && b.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && b.Price > *f.MaxPrice {
		return false
	}
	if f.SellerID != nil && b.SellerID != *f.SellerID {
		return false
	}
	return f.matchSearch(b)
}

func (f BookFilter) searchTerm() string {
	return strings.ToLower(strings.TrimSpace(f.Search))
}

// an empty term must not match everything through empty-substring containment
func (f BookFilter) matchSearch(b models.Book) bool {
	term := f.searchTerm()
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Author), term) ||
		strings.Contains(strings.ToLower(b.Description), term)
}
