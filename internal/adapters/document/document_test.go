package document_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/quotedesk/internal/adapters/document"
	"github.com/phenrril/quotedesk/internal/domain"
	"github.com/phenrril/quotedesk/internal/views"
)

func sampleQuote() domain.Quote {
	items := []domain.LineItem{
		{Name: "冷氣 2噸", Quantity: 2, UnitPrice: 28000, Discount: 10, Category: "冷氣", Size: "2噸", Coverage: "8-12坪"},
		{Name: "洗衣機 12公斤 變頻滾筒式", Quantity: 1, UnitPrice: 25000},
	}
	return domain.Quote{
		ID:       "Q20250301AB12",
		Date:     time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC),
		Customer: domain.Customer{Name: "王小明"}.WithDefaults(),
		Items:    items,
		Total:    items[0].Subtotal() + items[1].Subtotal(),
	}
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "$28,000", document.Money(28000))
	assert.Equal(t, "1,234,567.5", document.Number(1234567.5))
	assert.Equal(t, "0", document.Number(0))
	assert.Equal(t, "7.5%", document.Percent(7.5))
	assert.Equal(t, "0%", document.Percent(0))
	assert.Equal(t, "2025/3/1", document.Date(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "報價單_Q20250301AB12.pdf", document.FileName("Q20250301AB12", "pdf"))
}

func TestJSONExport(t *testing.T) {
	b, err := document.JSON(sampleQuote())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "{\n  \"customer\""), "two-space indent")

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "Q20250301AB12", got["quoteId"])
	assert.Equal(t, "2025/3/1", got["date"])
	assert.Equal(t, 75400.0, got["total"])
	assert.Equal(t, map[string]any{"name": "王小明", "phone": domain.BlankField, "address": domain.BlankField}, got["customer"])

	items := got["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, 50400.0, first["subtotal"])
	assert.Equal(t, "冷氣", first["type"])
	assert.Equal(t, "8-12坪", first["area"])
	assert.Equal(t, 28000.0, first["unitPrice"])
}

func TestPrintableKeepsFullNames(t *testing.T) {
	tmpl, err := views.Parse()
	require.NoError(t, err)

	p := document.NewPrintable(sampleQuote(), domain.DefaultLetterhead())
	var buf bytes.Buffer
	require.NoError(t, document.WritePrintable(&buf, tmpl, p))

	d, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	assert.Equal(t, "洗衣機 12公斤 變頻滾筒式", d.Find("tbody tr").Eq(1).Find("td").First().Text())
	assert.Equal(t, "$50,400", d.Find("tbody tr").Eq(0).Find("td").Last().Text())
	assert.Contains(t, d.Find(".total").Text(), "$75,400")
	assert.Contains(t, d.Find("#quoteDate").Text(), "2025/3/1")
	assert.Equal(t, 3, d.Find(".footer p").Length()-1)
}
