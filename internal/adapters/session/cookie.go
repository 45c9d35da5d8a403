package session

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"
)

const maxCookieValue = 4000

var ErrTooLarge = errors.New("session: value too large for cookie")

// Cookies signs values with HMAC-SHA256 and keeps them in browser cookies.
type Cookies struct {
	secret []byte
	maxAge int
	secure bool
}

func NewCookies(secret []byte, maxAge int, secure bool) *Cookies {
	return &Cookies{secret: secret, maxAge: maxAge, secure: secure}
}

// For binds the cookie jar to one request/response pair.
func (c *Cookies) For(w http.ResponseWriter, r *http.Request) *CookieKV {
	return &CookieKV{c: c, w: w, r: r, pending: map[string][]byte{}, deleted: map[string]bool{}}
}

// Store is a shortcut for New(c.For(w, r)).
func (c *Cookies) Store(w http.ResponseWriter, r *http.Request) *Store {
	return New(c.For(w, r))
}

func (c *Cookies) sign(payload []byte) string {
	h := hmac.New(sha256.New, c.secret)
	h.Write(payload)
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil)) + "." + base64.RawURLEncoding.EncodeToString(payload)
}

func (c *Cookies) verify(value string) ([]byte, bool) {
	parts := strings.SplitN(value, ".", 2)
	if len(parts) != 2 {
		return nil, false
	}
	sig, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, false
	}
	h := hmac.New(sha256.New, c.secret)
	h.Write(payload)
	if !hmac.Equal(sig, h.Sum(nil)) {
		return nil, false
	}
	return payload, true
}

// CookieKV reads what the request carried and remembers what this response
// wrote, so a Set followed by a Get in the same request sees the new value.
type CookieKV struct {
	c       *Cookies
	w       http.ResponseWriter
	r       *http.Request
	pending map[string][]byte
	deleted map[string]bool
}

func (kv *CookieKV) Get(key string) ([]byte, bool) {
	if kv.deleted[key] {
		return nil, false
	}
	if v, ok := kv.pending[key]; ok {
		return v, true
	}
	ck, err := kv.r.Cookie(key)
	if err != nil || ck.Value == "" {
		return nil, false
	}
	return kv.c.verify(ck.Value)
}

func (kv *CookieKV) Set(key string, value []byte) error {
	val := kv.c.sign(value)
	if len(val) > maxCookieValue {
		return ErrTooLarge
	}
	http.SetCookie(kv.w, &http.Cookie{Name: key, Value: val, Path: "/", MaxAge: kv.c.maxAge, HttpOnly: true, Secure: kv.c.secure, SameSite: http.SameSiteLaxMode})
	kv.pending[key] = append([]byte(nil), value...)
	delete(kv.deleted, key)
	return nil
}

func (kv *CookieKV) Delete(key string) error {
	http.SetCookie(kv.w, &http.Cookie{Name: key, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, Secure: kv.c.secure, SameSite: http.SameSiteLaxMode})
	delete(kv.pending, key)
	kv.deleted[key] = true
	return nil
}
