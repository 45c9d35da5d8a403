package usecase

import (
	"strings"

	"github.com/phenrril/quotedesk/internal/catalog"
	"github.com/phenrril/quotedesk/internal/domain"
)

type SelectionState int

const (
	NoCategory SelectionState = iota
	CategorySelected
	SizeSelected
)

const defaultCoverage = "一般家庭"

// Selection is the cascading category → size state of the product form.
type Selection struct {
	cat       *catalog.Catalog
	category  string
	sizeIndex int
}

func NewSelection(c *catalog.Catalog) *Selection {
	return &Selection{cat: c, sizeIndex: -1}
}

// SelectCategory resets every downstream field. Unknown categories collapse
// back to NoCategory.
func (s *Selection) SelectCategory(category string) {
	s.sizeIndex = -1
	category = strings.TrimSpace(category)
	if _, ok := s.cat.SpecsFor(category); !ok {
		s.category = ""
		return
	}
	s.category = category
}

// SelectSize applies only when size belongs to the current category.
func (s *Selection) SelectSize(size string) bool {
	specs, ok := s.cat.SpecsFor(s.category)
	if !ok {
		return false
	}
	i := specs.IndexOf(strings.TrimSpace(size))
	if i < 0 {
		s.sizeIndex = -1
		return false
	}
	s.sizeIndex = i
	return true
}

func (s *Selection) State() SelectionState {
	switch {
	case s.category == "":
		return NoCategory
	case s.sizeIndex < 0:
		return CategorySelected
	default:
		return SizeSelected
	}
}

type SelectionView struct {
	State       SelectionState
	Category    string
	Sizes       []string
	Size        string
	Coverage    string
	UnitPrice   float64
	HasPrice    bool
	Description string
}

func (s *Selection) View() SelectionView {
	v := SelectionView{State: s.State(), Category: s.category}
	if specs, ok := s.cat.SpecsFor(s.category); ok {
		v.Sizes = specs.Sizes
	}
	if res, ok := s.cat.ResolveSize(s.category, s.sizeIndex); ok {
		v.Size = res.Size
		v.Coverage = res.Coverage
		v.UnitPrice = res.UnitPrice
		v.HasPrice = true
		v.Description = Describe(s.category, res.Size, res.Coverage)
	}
	return v
}

// LineItem builds the cart entry for the current selection.
func (s *Selection) LineItem(quantity int, discount float64) (domain.LineItem, error) {
	if s.category == "" {
		return domain.LineItem{}, domain.ErrNoCategory
	}
	res, ok := s.cat.ResolveSize(s.category, s.sizeIndex)
	if !ok {
		return domain.LineItem{}, domain.ErrNoSize
	}
	li := domain.LineItem{
		Name:      s.category + " " + res.Size,
		Quantity:  quantity,
		UnitPrice: res.UnitPrice,
		Discount:  discount,
		Category:  s.category,
		Size:      res.Size,
		Coverage:  res.Coverage,
	}
	return li, li.Validate()
}

func Describe(category, size, coverage string) string {
	if category == "" || size == "" {
		return ""
	}
	if coverage == "" {
		coverage = defaultCoverage
	}
	return category + " - " + size + " - " + coverage
}
