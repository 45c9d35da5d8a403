package app

import (
	"fmt"
	"html/template"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/phenrril/quotedesk/internal/adapters/document"
	"github.com/phenrril/quotedesk/internal/adapters/httpserver"
	"github.com/phenrril/quotedesk/internal/adapters/quoteapi"
	"github.com/phenrril/quotedesk/internal/adapters/repo/postgres"
	"github.com/phenrril/quotedesk/internal/adapters/session"
	"github.com/phenrril/quotedesk/internal/catalog"
	"github.com/phenrril/quotedesk/internal/domain"
	"github.com/phenrril/quotedesk/internal/usecase"
	"github.com/phenrril/quotedesk/internal/views"
)

type App struct {
	DB         *gorm.DB
	Tmpl       *template.Template
	Catalog    *catalog.Catalog
	Cookies    *session.Cookies
	AuthUC     *usecase.AuthUC
	CartUC     *usecase.CartUC
	QuoteUC    *usecase.QuoteUC
	PDF        *document.PDF
	Letterhead domain.Letterhead
}

// NewApp wires the application. db may be nil, in which case quotes are
// only reported to the remote API.
func NewApp(db *gorm.DB) (*App, error) {
	appEnv := strings.ToLower(os.Getenv("APP_ENV"))
	isDev := appEnv == "" || appEnv == "development" || appEnv == "dev"

	cat, err := loadCatalog(os.Getenv("CATALOG_XLSX"))
	if err != nil {
		return nil, err
	}

	sessionKey := os.Getenv("SESSION_KEY")
	if sessionKey == "" {
		if !isDev {
			return nil, fmt.Errorf("SESSION_KEY is required when APP_ENV=%s", appEnv)
		}
		log.Warn().Msg("SESSION_KEY not set, using an insecure development key")
		sessionKey = "dev-insecure"
	}
	cookies := session.NewCookies([]byte(sessionKey), 60*60*24*7, !isDev)

	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		log.Warn().Msg("API_URL not set, logins will fail")
	}
	client := quoteapi.NewClient(apiURL)

	loc := time.Local
	tz := envOr("QUOTE_TZ", "Asia/Taipei")
	if l, err := time.LoadLocation(tz); err != nil {
		log.Warn().Err(err).Str("tz", tz).Msg("unknown QUOTE_TZ, using local time")
	} else {
		loc = l
	}

	lh := domain.DefaultLetterhead()
	lh.Name = envOr("SHOP_NAME", lh.Name)
	lh.Phone = envOr("SHOP_PHONE", lh.Phone)
	lh.Address = envOr("SHOP_ADDRESS", lh.Address)

	app := &App{DB: db, Catalog: cat, Cookies: cookies, Letterhead: lh}
	app.AuthUC = &usecase.AuthUC{Verifier: client}
	app.CartUC = &usecase.CartUC{}
	app.QuoteUC = &usecase.QuoteUC{
		Recorder:       client,
		Location:       loc,
		ReportOnExport: envBool("REPORT_ON_EXPORT"),
	}
	if db != nil {
		app.QuoteUC.Records = postgres.NewQuoteRecordRepo(db)
	}
	app.PDF = document.NewPDF(lh, document.PDFOptions{
		FontPath: os.Getenv("PDF_FONT_PATH"),
		Compress: !isDev,
	})

	if isDev {
		app.Tmpl, err = views.ParseDir("internal/views")
	} else {
		app.Tmpl, err = views.Parse()
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (a *App) HTTPHandler() http.Handler {
	return httpserver.New(a.Tmpl, a.Catalog, a.Cookies, a.AuthUC, a.CartUC, a.QuoteUC, a.PDF, a.Letterhead)
}

// Migrate creates the quote ledger. It is a no-op without a database.
func (a *App) Migrate() error {
	if a.DB == nil {
		return nil
	}
	if err := a.DB.AutoMigrate(&domain.QuoteRecord{}); err != nil {
		return err
	}
	_ = a.DB.Exec("CREATE INDEX IF NOT EXISTS idx_quote_records_email_created ON quote_records (email, created_at DESC)").Error
	return nil
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer f.Close()
	c, err := catalog.LoadXLSX(f)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	log.Info().Str("path", path).Int("categories", len(c.Categories())).Msg("catalog loaded")
	return c, nil
}

func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
