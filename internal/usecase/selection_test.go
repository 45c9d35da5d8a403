package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/quotedesk/internal/catalog"
	"github.com/phenrril/quotedesk/internal/domain"
)

func TestSelectionResolvesAirconTwoTon(t *testing.T) {
	s := NewSelection(catalog.Default())
	assert.Equal(t, NoCategory, s.State())

	s.SelectCategory("冷氣")
	assert.Equal(t, CategorySelected, s.State())
	v := s.View()
	assert.Equal(t, []string{"1噸", "1.5噸", "2噸", "2.5噸", "3噸"}, v.Sizes)
	assert.False(t, v.HasPrice)
	assert.Empty(t, v.Description)

	require.True(t, s.SelectSize("2噸"))
	assert.Equal(t, SizeSelected, s.State())
	v = s.View()
	assert.Equal(t, 28000.0, v.UnitPrice)
	assert.Equal(t, "8-12坪", v.Coverage)
	assert.Equal(t, "冷氣 - 2噸 - 8-12坪", v.Description)
}

func TestSelectionClearingCategoryResetsDownstream(t *testing.T) {
	s := NewSelection(catalog.Default())
	s.SelectCategory("冷氣")
	require.True(t, s.SelectSize("2噸"))

	s.SelectCategory("")
	v := s.View()
	assert.Equal(t, NoCategory, v.State)
	assert.Empty(t, v.Sizes)
	assert.False(t, v.HasPrice)
	assert.Zero(t, v.UnitPrice)
	assert.Empty(t, v.Description)
}

func TestSelectionChangingCategoryResetsSize(t *testing.T) {
	s := NewSelection(catalog.Default())
	s.SelectCategory("冷氣")
	require.True(t, s.SelectSize("2噸"))

	s.SelectCategory("電視")
	assert.Equal(t, CategorySelected, s.State())
	assert.False(t, s.SelectSize("2噸"), "size from another category does not apply")
	assert.Len(t, s.View().Sizes, 6)
}

func TestSelectionUnknownCategory(t *testing.T) {
	s := NewSelection(catalog.Default())
	s.SelectCategory("吸塵器")
	assert.Equal(t, NoCategory, s.State())
	assert.False(t, s.SelectSize("1噸"))
}

func TestSelectionLineItem(t *testing.T) {
	s := NewSelection(catalog.Default())

	_, err := s.LineItem(1, 0)
	assert.ErrorIs(t, err, domain.ErrNoCategory)

	s.SelectCategory("洗衣機")
	_, err = s.LineItem(1, 0)
	assert.ErrorIs(t, err, domain.ErrNoSize)

	require.True(t, s.SelectSize("10公斤"))
	_, err = s.LineItem(0, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	li, err := s.LineItem(2, 5)
	require.NoError(t, err)
	assert.Equal(t, domain.LineItem{Name: "洗衣機 10公斤", Quantity: 2, UnitPrice: 18000, Discount: 5, Category: "洗衣機", Size: "10公斤", Coverage: "3-4人"}, li)
}

func TestDescribeFallsBackToHousehold(t *testing.T) {
	assert.Equal(t, "冰箱 - 100公升 - 一般家庭", Describe("冰箱", "100公升", ""))
	assert.Empty(t, Describe("冰箱", "", ""))
}
