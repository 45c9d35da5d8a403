package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/quotedesk/internal/adapters/document"
	"github.com/phenrril/quotedesk/internal/adapters/session"
	"github.com/phenrril/quotedesk/internal/catalog"
	"github.com/phenrril/quotedesk/internal/domain"
	"github.com/phenrril/quotedesk/internal/usecase"
)

const pdfFailed = "產生 PDF 失敗，請稍後再試"

type Server struct {
	mux        *http.ServeMux
	tmpl       *template.Template
	catalog    *catalog.Catalog
	cookies    *session.Cookies
	auth       *usecase.AuthUC
	carts      *usecase.CartUC
	quotes     *usecase.QuoteUC
	pdf        *document.PDF
	letterhead domain.Letterhead
}

// quoteAction is one quote button on the main view. Shortcut binds
// Ctrl/⌘+key to it.
type quoteAction struct {
	ID       string
	Label    string
	Path     string
	Shortcut string
	NewTab   bool
}

var quoteActions = []quoteAction{
	{ID: "printBtn", Label: "列印報價單", Path: "/quote/print", Shortcut: "p", NewTab: true},
	{ID: "pdfBtn", Label: "下載 PDF", Path: "/quote/pdf"},
	{ID: "exportBtn", Label: "匯出報價資料", Path: "/quote/export", Shortcut: "s"},
}

func New(t *template.Template, cat *catalog.Catalog, cookies *session.Cookies, auth *usecase.AuthUC, carts *usecase.CartUC, quotes *usecase.QuoteUC, pdf *document.PDF, lh domain.Letterhead) http.Handler {
	s := &Server{mux: http.NewServeMux(), tmpl: t, catalog: cat, cookies: cookies, auth: auth, carts: carts, quotes: quotes, pdf: pdf, letterhead: lh}
	s.routes()
	return Chain(s.mux,
		RequestID,
		Logging,
		Recovery,
		SecurityHeaders,
	)
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleHome)
	s.mux.HandleFunc("/login", s.handleLogin)
	s.mux.HandleFunc("/logout", s.handleLogout)

	s.mux.HandleFunc("/cart/add", s.handleCartAdd)
	s.mux.HandleFunc("/cart/remove", s.handleCartRemove)
	s.mux.HandleFunc("/cart/clear", s.handleCartClear)

	s.mux.HandleFunc("/quote/print", s.handleQuotePrint)
	s.mux.HandleFunc("/quote/pdf", s.handleQuotePDF)
	s.mux.HandleFunc("/quote/export", s.handleQuoteExport)

	s.mux.HandleFunc("/api/catalog", s.apiCatalog)
	s.mux.HandleFunc("/api/catalog/", s.apiCatalogCategory)
	s.mux.HandleFunc("/api/catalog.xlsx", s.apiCatalogXLSX)
	s.mux.HandleFunc("/api/cart", s.apiCart)
	s.mux.HandleFunc("/api/quotes", s.apiQuotes)
	s.mux.HandleFunc("/api/quotes/", s.apiQuoteByID)

	s.mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

// scope binds the cookie jar to this request.
func (s *Server) scope(w http.ResponseWriter, r *http.Request) (*session.CookieKV, *session.Store) {
	kv := s.cookies.For(w, r)
	return kv, session.New(kv)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	kv, store := s.scope(w, r)
	q := r.URL.Query()

	user := s.auth.Current(store)
	if user == nil {
		s.render(w, "login.html", map[string]any{
			"LoginFlash": popFlash(kv, areaLogin),
			"Email":      q.Get("email"),
		})
		return
	}

	sel := usecase.NewSelection(s.catalog)
	category := q.Get("category")
	sel.SelectCategory(category)
	if category != "" && category == q.Get("prev") {
		sel.SelectSize(q.Get("size"))
	}

	cart, err := s.carts.View(store)
	if err != nil {
		log.Warn().Err(err).Msg("load cart")
	}

	s.render(w, "index.html", map[string]any{
		"User":       user,
		"Flash":      popFlash(kv, areaMain),
		"Categories": s.catalog.Categories(),
		"Selection":  sel.View(),
		"Quantity":   valueOr(q.Get("quantity"), "1"),
		"Discount":   valueOr(q.Get("discount"), "0"),
		"Customer":   customerFrom(q),
		"Cart":       cart,
		"Actions":    quoteActions,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	kv, store := s.scope(w, r)
	email := r.PostFormValue("email")

	res, err := s.auth.Login(r.Context(), store, email, r.PostFormValue("apiKey"))
	if err != nil {
		log.Info().Err(err).Str("email", email).Msg("login rejected")
		setFlash(kv, areaLogin, "error", res.Message)
		redirectHome(w, r, url.Values{"email": {strings.TrimSpace(email)}})
		return
	}
	setFlash(kv, areaMain, "success", res.Message)
	redirectHome(w, r, nil)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	kv, store := s.scope(w, r)
	if r.PostFormValue("confirm") != "1" {
		s.confirm(w, "確定要登出嗎？", "/logout", nil, "/")
		return
	}
	if err := s.auth.Logout(store); err != nil {
		log.Error().Err(err).Msg("logout")
	}
	setFlash(kv, areaLogin, "success", "已成功登出")
	redirectHome(w, r, nil)
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	kv, store := s.scope(w, r)
	if !s.requireUser(w, r, store) {
		return
	}
	_ = r.ParseForm()
	back := customerValues(customerFrom(r.PostForm))

	sel := usecase.NewSelection(s.catalog)
	sel.SelectCategory(r.PostFormValue("category"))
	sel.SelectSize(r.PostFormValue("size"))
	view := sel.View()
	if view.Category != "" {
		back.Set("category", view.Category)
		back.Set("prev", view.Category)
	}
	if view.Size != "" {
		back.Set("size", view.Size)
	}

	qty, err := strconv.Atoi(strings.TrimSpace(r.PostFormValue("quantity")))
	if err != nil {
		qty = 0
	}
	discount, err := parseDiscount(r.PostFormValue("discount"))
	if err != nil {
		s.failAdd(w, r, kv, back, r.PostForm, err)
		return
	}
	item, err := sel.LineItem(qty, discount)
	if err != nil {
		s.failAdd(w, r, kv, back, r.PostForm, err)
		return
	}
	if _, err := s.carts.Add(store, item); err != nil {
		s.failAdd(w, r, kv, back, r.PostForm, err)
		return
	}
	setFlash(kv, areaMain, "success", "產品已加入清單")
	redirectHome(w, r, back)
}

// failAdd keeps the typed quantity and discount so the user can fix them.
func (s *Server) failAdd(w http.ResponseWriter, r *http.Request, kv session.KV, back, form url.Values, err error) {
	if !isUserError(err) {
		log.Error().Err(err).Msg("add to cart")
	}
	back.Set("quantity", form.Get("quantity"))
	back.Set("discount", form.Get("discount"))
	setFlash(kv, areaMain, "error", domain.Message(err))
	redirectHome(w, r, back)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	kv, store := s.scope(w, r)
	if !s.requireUser(w, r, store) {
		return
	}
	_ = r.ParseForm()
	back := customerValues(customerFrom(r.PostForm))
	idx := r.PostFormValue("index")

	if r.PostFormValue("confirm") != "1" {
		fields := customerFields(back)
		fields["index"] = idx
		s.confirm(w, "確定要刪除此產品嗎？", "/cart/remove", fields, homeURL(back))
		return
	}

	i, err := strconv.Atoi(idx)
	if err != nil {
		redirectHome(w, r, back)
		return
	}
	if _, err := s.carts.Remove(store, i); err != nil {
		if !errors.Is(err, domain.ErrIndexOutOfRange) {
			log.Error().Err(err).Int("index", i).Msg("remove cart item")
			setFlash(kv, areaMain, "error", domain.Message(err))
		}
		redirectHome(w, r, back)
		return
	}
	setFlash(kv, areaMain, "success", "產品已刪除")
	redirectHome(w, r, back)
}

func (s *Server) handleCartClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	kv, store := s.scope(w, r)
	if !s.requireUser(w, r, store) {
		return
	}
	_ = r.ParseForm()
	back := customerValues(customerFrom(r.PostForm))

	if r.PostFormValue("confirm") != "1" {
		s.confirm(w, "確定要清空所有產品嗎？", "/cart/clear", customerFields(back), homeURL(back))
		return
	}
	if err := s.carts.Clear(store); err != nil {
		log.Error().Err(err).Msg("clear cart")
		setFlash(kv, areaMain, "error", domain.Message(err))
		redirectHome(w, r, back)
		return
	}
	setFlash(kv, areaMain, "success", "清單已清空")
	redirectHome(w, r, back)
}

// composeQuote loads the cart and builds a fresh quote. On failure it has
// already answered the request.
func (s *Server) composeQuote(w http.ResponseWriter, r *http.Request) (*domain.Session, domain.Quote, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return nil, domain.Quote{}, false
	}
	kv, store := s.scope(w, r)
	user := s.auth.Current(store)
	if user == nil {
		redirectHome(w, r, nil)
		return nil, domain.Quote{}, false
	}
	_ = r.ParseForm()
	customer := customerFrom(r.PostForm)

	cart, err := s.carts.Load(store)
	if err != nil {
		log.Warn().Err(err).Msg("load cart")
	}
	q, err := s.quotes.Compose(cart, customer)
	if err != nil {
		setFlash(kv, areaMain, "error", domain.Message(err))
		redirectHome(w, r, customerValues(customer))
		return nil, domain.Quote{}, false
	}
	return user, q, true
}

func (s *Server) report(r *http.Request, user *domain.Session, q domain.Quote, ch domain.QuoteChannel) {
	if !s.quotes.ShouldReport(ch) {
		return
	}
	go s.quotes.Report(context.WithoutCancel(r.Context()), user, q, ch)
}

func (s *Server) handleQuotePrint(w http.ResponseWriter, r *http.Request) {
	user, q, ok := s.composeQuote(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := document.WritePrintable(&buf, s.tmpl, document.NewPrintable(q, s.letterhead)); err != nil {
		log.Error().Err(err).Str("quote_id", q.ID).Msg("render printable")
		http.Error(w, "tpl", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
	s.report(r, user, q, domain.ChannelPrint)
}

func (s *Server) handleQuotePDF(w http.ResponseWriter, r *http.Request) {
	user, q, ok := s.composeQuote(w, r)
	if !ok {
		return
	}
	b, err := s.pdf.Render(q)
	if err != nil {
		log.Error().Err(err).Str("quote_id", q.ID).Msg("render pdf")
		kv := s.cookies.For(w, r)
		setFlash(kv, areaMain, "error", pdfFailed)
		redirectHome(w, r, customerValues(customerFrom(r.PostForm)))
		return
	}
	writeAttachment(w, "application/pdf", document.FileName(q.ID, "pdf"), b)
	s.report(r, user, q, domain.ChannelPDF)
}

func (s *Server) handleQuoteExport(w http.ResponseWriter, r *http.Request) {
	user, q, ok := s.composeQuote(w, r)
	if !ok {
		return
	}
	b, err := document.JSON(q)
	if err != nil {
		log.Error().Err(err).Str("quote_id", q.ID).Msg("export json")
		http.Error(w, "json", http.StatusInternalServerError)
		return
	}
	writeAttachment(w, "application/json", document.FileName(q.ID, "json"), b)
	s.report(r, user, q, domain.ChannelJSON)
}

type catalogEntry struct {
	Category string `json:"category"`
	catalog.Specs
}

func (s *Server) apiCatalog(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	entries := s.catalog.Entries()
	out := make([]catalogEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, catalogEntry{Category: e.Category, Specs: e.Specs})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) apiCatalogCategory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/api/catalog/")
	specs, ok := s.catalog.SpecsFor(name)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, catalogEntry{Category: name, Specs: specs})
}

func (s *Server) apiCatalogXLSX(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	var buf bytes.Buffer
	if err := s.catalog.WriteXLSX(&buf); err != nil {
		log.Error().Err(err).Msg("export catalog")
		http.Error(w, "xlsx", http.StatusInternalServerError)
		return
	}
	writeAttachment(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "價目表.xlsx", buf.Bytes())
}

func (s *Server) apiCart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	_, store := s.scope(w, r)
	if s.apiUser(w, store) == nil {
		return
	}
	view, err := s.carts.View(store)
	if err != nil {
		log.Warn().Err(err).Msg("load cart")
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) apiQuotes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	_, store := s.scope(w, r)
	user := s.apiUser(w, store)
	if user == nil {
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	list, err := s.quotes.History(r.Context(), user.Email, limit)
	if err != nil {
		s.apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) apiQuoteByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method", http.StatusMethodNotAllowed)
		return
	}
	_, store := s.scope(w, r)
	user := s.apiUser(w, store)
	if user == nil {
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/quotes/")
	if !domain.QuoteIDPattern.MatchString(id) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	rec, err := s.quotes.Lookup(r.Context(), user.Email, id)
	if err != nil {
		s.apiError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) apiError(w http.ResponseWriter, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
		return
	}
	log.Error().Err(err).Msg("api")
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": domain.Message(err)})
}

func (s *Server) requireUser(w http.ResponseWriter, r *http.Request, store domain.SessionStore) bool {
	if s.auth.Current(store) == nil {
		redirectHome(w, r, nil)
		return false
	}
	return true
}

func (s *Server) apiUser(w http.ResponseWriter, store domain.SessionStore) *domain.Session {
	user := s.auth.Current(store)
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": domain.Message(domain.ErrNoSession)})
	}
	return user
}

func (s *Server) confirm(w http.ResponseWriter, msg, action string, fields map[string]string, cancel string) {
	s.render(w, "confirm.html", map[string]any{
		"Message": msg,
		"Action":  action,
		"Fields":  fields,
		"Cancel":  cancel,
	})
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("tpl", name).Msg("render")
		http.Error(w, "tpl", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeAttachment(w http.ResponseWriter, contentType, filename string, b []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(b)))
	_, _ = w.Write(b)
}

func customerFields(v url.Values) map[string]string {
	out := map[string]string{}
	for k := range v {
		out[k] = v.Get(k)
	}
	return out
}

func parseDiscount(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	d, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, domain.ErrInvalidDiscount
	}
	return d, nil
}

func isUserError(err error) bool {
	for _, e := range []error{domain.ErrNoCategory, domain.ErrNoSize, domain.ErrInvalidQuantity, domain.ErrInvalidPrice, domain.ErrInvalidDiscount} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

func valueOr(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
