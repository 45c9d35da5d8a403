package views

import (
	"embed"
	"html/template"
	"path/filepath"

	"github.com/phenrril/quotedesk/internal/adapters/document"
)

//go:embed *.html
var FS embed.FS

func Funcs() template.FuncMap {
	return template.FuncMap{
		"add":     func(a, b int) int { return a + b },
		"money":   document.Money,
		"number":  document.Number,
		"percent": document.Percent,
		"date":    document.Date,
	}
}

// Parse loads the embedded templates.
func Parse() (*template.Template, error) {
	return template.New("layout").Funcs(Funcs()).ParseFS(FS, "*.html")
}

// ParseDir loads templates from disk so edits show up without a rebuild.
func ParseDir(dir string) (*template.Template, error) {
	return template.New("layout").Funcs(Funcs()).ParseGlob(filepath.Join(dir, "*.html"))
}
