package document

import (
	"encoding/json"

	"github.com/phenrril/quotedesk/internal/domain"
)

type exportItem struct {
	domain.LineItem
	Subtotal float64 `json:"subtotal"`
}

type export struct {
	Customer domain.Customer `json:"customer"`
	Items    []exportItem    `json:"items"`
	Total    float64         `json:"total"`
	Date     string          `json:"date"`
	QuoteID  string          `json:"quoteId"`
}

// JSON renders the downloadable export with per-item subtotals.
func JSON(q domain.Quote) ([]byte, error) {
	exp := export{
		Customer: q.Customer,
		Items:    make([]exportItem, 0, len(q.Items)),
		Total:    q.Total,
		Date:     Date(q.Date),
		QuoteID:  q.ID,
	}
	for _, it := range q.Items {
		exp.Items = append(exp.Items, exportItem{LineItem: it, Subtotal: it.Subtotal()})
	}
	return json.MarshalIndent(exp, "", "  ")
}
