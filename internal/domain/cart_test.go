package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aircon(qty int, discount float64) LineItem {
	return LineItem{Name: "冷氣 2噸", Quantity: qty, UnitPrice: 28000, Discount: discount, Category: "冷氣", Size: "2噸", Coverage: "8-12坪"}
}

func TestCartAddMergesByName(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(aircon(1, 5)))
	require.NoError(t, c.Add(aircon(2, 10)))
	require.NoError(t, c.Add(aircon(1, 0)))

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.Equal(t, 10.0, c.Items[0].Discount)
}

func TestCartAddMergeIgnoresCategory(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(aircon(1, 0)))
	require.NoError(t, c.Add(LineItem{Name: "冷氣 2噸", Quantity: 3, UnitPrice: 1}))

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 4, c.Items[0].Quantity)
	assert.Equal(t, 28000.0, c.Items[0].UnitPrice)
}

func TestCartAddRejectsInvalid(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(aircon(1, 0)))

	cases := map[string]struct {
		item LineItem
		err  error
	}{
		"zero quantity":     {aircon(0, 0), ErrInvalidQuantity},
		"negative quantity": {aircon(-2, 0), ErrInvalidQuantity},
		"negative price":    {LineItem{Name: "x", Quantity: 1, UnitPrice: -1}, ErrInvalidPrice},
		"discount over 100": {aircon(1, 120), ErrInvalidDiscount},
		"negative discount": {aircon(1, -1), ErrInvalidDiscount},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			err := c.Add(tc.item)
			assert.ErrorIs(t, err, tc.err)
			assert.Equal(t, 1, c.Len())
			assert.Equal(t, 1, c.Items[0].Quantity)
		})
	}
}

func TestCartRemoveShiftsLaterItems(t *testing.T) {
	c := Cart{Items: []LineItem{{Name: "a", Quantity: 1}, {Name: "b", Quantity: 1}, {Name: "c", Quantity: 1}}}

	require.NoError(t, c.Remove(1))
	require.Equal(t, 2, c.Len())
	assert.Equal(t, "a", c.Items[0].Name)
	assert.Equal(t, "c", c.Items[1].Name)

	assert.ErrorIs(t, c.Remove(2), ErrIndexOutOfRange)
	assert.ErrorIs(t, c.Remove(-1), ErrIndexOutOfRange)
	assert.Equal(t, 2, c.Len())
}

func TestCartTotalRoundsEachItem(t *testing.T) {
	c := Cart{Items: []LineItem{
		{Name: "a", Quantity: 1, UnitPrice: 10.5},
		{Name: "b", Quantity: 1, UnitPrice: 10.5},
		{Name: "c", Quantity: 3, UnitPrice: 999, Discount: 7.5},
	}}

	// 10.5 -> 11 twice; 2997 * 0.925 = 2772.225 -> 2772
	assert.Equal(t, 11.0, c.Items[0].Subtotal())
	assert.Equal(t, 2772.0, c.Items[2].Subtotal())
	assert.Equal(t, 11.0+11.0+2772.0, c.Total())

	sum := 0.0
	for _, it := range c.Items {
		sum += Round(it.UnitPrice * float64(it.Quantity) * (1 - it.Discount/100))
	}
	assert.Equal(t, Round(sum), c.Total())
}

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, 3.0, Round(2.5))
	assert.Equal(t, 2.0, Round(2.4999))
	assert.Equal(t, 0.0, Round(0))
	assert.Equal(t, -2.0, Round(-2.5))
}

func TestCartView(t *testing.T) {
	var c Cart
	v := c.View()
	assert.True(t, v.Empty)
	assert.Zero(t, v.Total)

	require.NoError(t, c.Add(aircon(2, 10)))
	v = c.View()
	require.Len(t, v.Lines, 1)
	assert.False(t, v.Empty)
	assert.Equal(t, 50400.0, v.Lines[0].Subtotal)
	assert.Equal(t, 50400.0, v.Total)
}

func TestCartSnapshotDoesNotAlias(t *testing.T) {
	var c Cart
	require.NoError(t, c.Add(aircon(1, 0)))
	snap := c.Snapshot()
	require.NoError(t, c.Add(aircon(1, 0)))
	assert.Equal(t, 1, snap[0].Quantity)
}

func TestCustomerWithDefaults(t *testing.T) {
	c := Customer{Name: " 王小明 ", Phone: ""}.WithDefaults()
	assert.Equal(t, "王小明", c.Name)
	assert.Equal(t, BlankField, c.Phone)
	assert.Equal(t, BlankField, c.Address)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "請輸入有效的數量", Message(ErrInvalidQuantity))
	assert.Equal(t, "請先新增產品到清單", Message(ErrEmptyCart))
}
