package session

import (
	"encoding/json"
	"errors"

	"github.com/phenrril/quotedesk/internal/domain"
)

const (
	AuthKey = "quoteSystemAuth"
	CartKey = "quoteCart"
)

// KV is the key-value storage the session is kept in.
type KV interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	Delete(key string) error
}

// Store implements domain.SessionStore on top of a KV.
type Store struct {
	kv KV
}

func New(kv KV) *Store { return &Store{kv: kv} }

func (s *Store) LoadAuth() (domain.Session, error) {
	raw, ok := s.kv.Get(AuthKey)
	if !ok {
		return domain.Session{}, domain.ErrNoSession
	}
	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil || !sess.Valid() {
		return domain.Session{}, domain.ErrNoSession
	}
	return sess, nil
}

func (s *Store) SaveAuth(sess domain.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.kv.Set(AuthKey, b)
}

func (s *Store) ClearAuth() error { return s.kv.Delete(AuthKey) }

// LoadCart returns an empty cart when nothing is stored. Items that fail
// validation are dropped.
func (s *Store) LoadCart() (domain.Cart, error) {
	raw, ok := s.kv.Get(CartKey)
	if !ok {
		return domain.Cart{}, nil
	}
	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return domain.Cart{}, errors.Join(errors.New("session: corrupt cart"), err)
	}
	var c domain.Cart
	for _, it := range items {
		_ = c.Add(it)
	}
	return c, nil
}

func (s *Store) SaveCart(c domain.Cart) error {
	items := c.Items
	if items == nil {
		items = []domain.LineItem{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return s.kv.Set(CartKey, b)
}

func (s *Store) ClearCart() error { return s.kv.Delete(CartKey) }

var _ domain.SessionStore = (*Store)(nil)
