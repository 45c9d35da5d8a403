package domain

type Cart struct {
	Items []LineItem
}

// Add merges into an existing item with the same name (quantities sum,
// the larger discount wins) or appends.
func (c *Cart) Add(item LineItem) error {
	if err := item.Validate(); err != nil {
		return err
	}
	for i := range c.Items {
		if c.Items[i].Name == item.Name {
			c.Items[i].Quantity += item.Quantity
			c.Items[i].Discount = max(c.Items[i].Discount, item.Discount)
			return nil
		}
	}
	c.Items = append(c.Items, item)
	return nil
}

func (c *Cart) Remove(index int) error {
	if index < 0 || index >= len(c.Items) {
		return ErrIndexOutOfRange
	}
	c.Items = append(c.Items[:index], c.Items[index+1:]...)
	return nil
}

func (c *Cart) Clear() { c.Items = nil }

func (c Cart) Len() int { return len(c.Items) }

func (c Cart) Empty() bool { return len(c.Items) == 0 }

// Total sums the already rounded subtotals.
func (c Cart) Total() float64 {
	total := 0.0
	for _, it := range c.Items {
		total += it.Subtotal()
	}
	return total
}

// Snapshot returns a copy whose items do not alias the cart.
func (c Cart) Snapshot() []LineItem {
	out := make([]LineItem, len(c.Items))
	copy(out, c.Items)
	return out
}

type CartLine struct {
	Index     int     `json:"index"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
	Discount  float64 `json:"discount"`
	Subtotal  float64 `json:"subtotal"`
}

type CartView struct {
	Lines []CartLine `json:"lines"`
	Total float64    `json:"total"`
	Empty bool       `json:"empty"`
}

// View projects the cart into display rows.
func (c Cart) View() CartView {
	v := CartView{Lines: make([]CartLine, 0, len(c.Items)), Empty: c.Empty()}
	for i, it := range c.Items {
		v.Lines = append(v.Lines, CartLine{
			Index:     i,
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Discount:  it.Discount,
			Subtotal:  it.Subtotal(),
		})
	}
	v.Total = c.Total()
	return v
}
