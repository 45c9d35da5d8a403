// Package document renders quotes as printable HTML, PDF and JSON.
package document

import (
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/phenrril/quotedesk/internal/domain"
)

var printer = message.NewPrinter(language.MustParse("zh-TW"))

// Number groups digits the way the shop's browsers print amounts.
func Number(v float64) string {
	return printer.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(3)))
}

func Money(v float64) string { return "$" + Number(v) }

func Percent(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) + "%" }

func Date(t time.Time) string { return t.Format("2006/1/2") }

func FileName(quoteID, ext string) string { return "報價單_" + quoteID + "." + ext }

type Row struct {
	Name      string
	Quantity  int
	UnitPrice string
	Discount  string
	Subtotal  string
}

func Rows(items []domain.LineItem) []Row {
	rows := make([]Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, Row{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: Money(it.UnitPrice),
			Discount:  Percent(it.Discount),
			Subtotal:  Money(it.Subtotal()),
		})
	}
	return rows
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
