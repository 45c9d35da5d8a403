package domain

import "math"

// LineItem is one product entry of a cart or quote. The JSON names match the
// records already stored by browsers and the quote API.
type LineItem struct {
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Discount  float64 `json:"discount"`
	Category  string  `json:"type"`
	Size      string  `json:"size"`
	Coverage  string  `json:"area"`
}

func (li LineItem) Validate() error {
	if li.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if li.UnitPrice < 0 || math.IsNaN(li.UnitPrice) || math.IsInf(li.UnitPrice, 0) {
		return ErrInvalidPrice
	}
	if li.Discount < 0 || li.Discount > 100 || math.IsNaN(li.Discount) {
		return ErrInvalidDiscount
	}
	return nil
}

// Subtotal is the discounted line amount rounded half up.
func (li LineItem) Subtotal() float64 {
	return Round(li.UnitPrice * float64(li.Quantity) * (1 - li.Discount/100))
}

// Round rounds half up (ties toward +Inf), the same way quotes were always priced.
func Round(x float64) float64 {
	f := math.Floor(x)
	if x-f >= 0.5 {
		f++
	}
	return f
}
