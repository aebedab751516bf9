// Package categories holds the club's ledger categories.
package categories

import (
	"strings"

	"github.com/cleared-dev/clubhouse/internal/model"
)

// Service provides lookup over the configured categories. Names are
// matched case-insensitively.
type Service struct {
	categories []model.Category
	byName     map[string]model.Category
}

// NewService creates a Service from a slice of categories.
func NewService(categories []model.Category) *Service {
	byName := make(map[string]model.Category, len(categories))
	for _, c := range categories {
		byName[strings.ToUpper(c.Name)] = c
	}
	return &Service{categories: categories, byName: byName}
}

// All returns all categories.
func (s *Service) All() []model.Category {
	return s.categories
}

// Get returns a category by name.
func (s *Service) Get(name string) (model.Category, bool) {
	c, ok := s.byName[strings.ToUpper(name)]
	return c, ok
}

// Exists reports whether a category is configured.
func (s *Service) Exists(name string) bool {
	_, ok := s.byName[strings.ToUpper(name)]
	return ok
}

// TypeOf returns the category's type, defaulting to INCOME for unknown names.
func (s *Service) TypeOf(name string) model.TxType {
	if c, ok := s.Get(name); ok {
		return c.Type
	}
	return model.TypeIncome
}

// ByType returns all categories of the given type.
func (s *Service) ByType(t model.TxType) []model.Category {
	var result []model.Category
	for _, c := range s.categories {
		if c.Type == t {
			result = append(result, c)
		}
	}
	return result
}
