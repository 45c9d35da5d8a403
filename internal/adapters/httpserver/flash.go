package httpserver

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/quotedesk/internal/adapters/session"
	"github.com/phenrril/quotedesk/internal/domain"
)

const flashKey = "quoteFlash"

const (
	areaLogin = "login"
	areaMain  = "main"
)

// flash is a one-shot banner shown on the next page load of its area.
type flash struct {
	Area string `json:"area"`
	Kind string `json:"kind"`
	Text string `json:"text"`
}

func setFlash(kv session.KV, area, kind, text string) {
	b, _ := json.Marshal(flash{Area: area, Kind: kind, Text: text})
	if err := kv.Set(flashKey, b); err != nil {
		log.Warn().Err(err).Msg("set flash")
	}
}

// popFlash returns and clears the pending banner when it belongs to area.
func popFlash(kv session.KV, area string) *flash {
	b, ok := kv.Get(flashKey)
	if !ok {
		return nil
	}
	var f flash
	if err := json.Unmarshal(b, &f); err != nil || f.Area != area {
		return nil
	}
	_ = kv.Delete(flashKey)
	return &f
}

func customerFrom(v url.Values) domain.Customer {
	return domain.Customer{
		Name:    strings.TrimSpace(v.Get("customerName")),
		Phone:   strings.TrimSpace(v.Get("customerPhone")),
		Address: strings.TrimSpace(v.Get("customerAddress")),
	}
}

func customerValues(c domain.Customer) url.Values {
	v := url.Values{}
	if c.Name != "" {
		v.Set("customerName", c.Name)
	}
	if c.Phone != "" {
		v.Set("customerPhone", c.Phone)
	}
	if c.Address != "" {
		v.Set("customerAddress", c.Address)
	}
	return v
}

func homeURL(v url.Values) string {
	if len(v) == 0 {
		return "/"
	}
	return "/?" + v.Encode()
}

func redirectHome(w http.ResponseWriter, r *http.Request, v url.Values) {
	http.Redirect(w, r, homeURL(v), http.StatusSeeOther)
}
