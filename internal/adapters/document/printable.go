package document

import (
	"html/template"
	"io"

	"github.com/phenrril/quotedesk/internal/domain"
)

const PrintTemplate = "print.html"

type Printable struct {
	Quote      domain.Quote
	Date       string
	Rows       []Row
	Total      string
	Letterhead domain.Letterhead
	Notes      []string
	AutoPrint  bool
}

func NewPrintable(q domain.Quote, lh domain.Letterhead) Printable {
	return Printable{
		Quote:      q,
		Date:       Date(q.Date),
		Rows:       Rows(q.Items),
		Total:      Money(q.Total),
		Letterhead: lh,
		Notes:      lh.Notes(),
		AutoPrint:  true,
	}
}

// WritePrintable executes the print view. Item names are not truncated here.
func WritePrintable(w io.Writer, t *template.Template, p Printable) error {
	return t.ExecuteTemplate(w, PrintTemplate, p)
}
