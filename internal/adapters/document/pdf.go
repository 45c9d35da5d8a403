package document

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/phenrril/quotedesk/internal/domain"
)

const (
	pageCenter   = 105.0
	tableTop     = 105.0
	rowHeight    = 7.0
	pageBottom   = 280.0
	pageTop      = 20.0
	pageHeight   = 297.0
	footerHeight = 51.0
	pdfNameLimit = 12
)

var columnX = [5]float64{20, 55, 90, 125, 160}

type PDFOptions struct {
	// FontPath points at a TTF with CJK glyphs. Without it the core
	// Helvetica font is used.
	FontPath string
	Compress bool
}

type PDF struct {
	letterhead domain.Letterhead
	opts       PDFOptions
}

func NewPDF(lh domain.Letterhead, opts PDFOptions) *PDF {
	return &PDF{letterhead: lh, opts: opts}
}

type rowPos struct {
	Page int
	Y    float64
}

// layoutRows places n table rows starting below the header and returns the
// cursor after the last row. A new page starts once y passes pageBottom.
func layoutRows(n int) ([]rowPos, int, float64) {
	page, y := 1, tableTop+10
	pos := make([]rowPos, 0, n)
	for i := 0; i < n; i++ {
		pos = append(pos, rowPos{Page: page, Y: y})
		y += rowHeight
		if y > pageBottom {
			page++
			y = pageTop
		}
	}
	return pos, page, y
}

func (p *PDF) Render(q domain.Quote) ([]byte, error) {
	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetCompression(p.opts.Compress)
	doc.SetTitle("報價單 "+q.ID, true)
	doc.SetCreator(p.letterhead.Name, true)

	family := "Helvetica"
	if p.opts.FontPath != "" {
		doc.AddUTF8Font("quote", "", p.opts.FontPath)
		family = "quote"
	}
	text := func(size, x, y float64, s string) {
		doc.SetFont(family, "", size)
		doc.Text(x, y, s)
	}

	doc.AddPage()
	doc.SetFont(family, "", 20)
	title := "電器行報價單"
	doc.Text(pageCenter-doc.GetStringWidth(title)/2, 20, title)

	text(12, 20, 35, p.letterhead.Name)
	text(12, 20, 42, "電話: "+p.letterhead.Phone)
	text(12, 20, 49, "地址: "+p.letterhead.Address)

	text(12, 20, 60, "客戶資訊:")
	text(12, 20, 67, "姓名: "+q.Customer.Name)
	text(12, 20, 74, "電話: "+q.Customer.Phone)
	text(12, 20, 81, "地址: "+q.Customer.Address)

	text(12, 150, 35, "日期: "+Date(q.Date))
	text(12, 150, 42, "報價單號: "+q.ID)

	text(14, 20, 95, "產品明細")
	for i, h := range []string{"產品名稱", "數量", "單價", "折扣", "小計"} {
		text(10, 20+float64(i)*35, tableTop, h)
	}

	positions, pages, y := layoutRows(len(q.Items))
	current := 1
	for i, it := range q.Items {
		pos := positions[i]
		for current < pos.Page {
			doc.AddPage()
			current++
		}
		cells := [5]string{
			truncate(it.Name, pdfNameLimit),
			fmt.Sprint(it.Quantity),
			Money(it.UnitPrice),
			Percent(it.Discount),
			Money(it.Subtotal()),
		}
		for c, s := range cells {
			text(10, columnX[c], pos.Y, s)
		}
	}
	for current < pages {
		doc.AddPage()
		current++
	}

	if y+footerHeight > pageHeight-10 {
		doc.AddPage()
		y = pageTop
	}
	y += 10
	text(12, 150, y, "總金額: "+Money(q.Total))

	y += 20
	text(10, 20, y, "備註:")
	for i, n := range p.letterhead.Notes() {
		text(10, 20, y+float64(i+1)*7, "• "+n)
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: %w", err)
	}
	return buf.Bytes(), nil
}
