package domain

import "strings"

const BlankField = "未填寫"

type Customer struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// WithDefaults fills blank fields with the "not provided" marker printed on quotes.
func (c Customer) WithDefaults() Customer {
	fill := func(s string) string {
		if strings.TrimSpace(s) == "" {
			return BlankField
		}
		return strings.TrimSpace(s)
	}
	return Customer{Name: fill(c.Name), Phone: fill(c.Phone), Address: fill(c.Address)}
}
