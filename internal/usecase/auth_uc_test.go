package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phenrril/quotedesk/internal/adapters/session"
	"github.com/phenrril/quotedesk/internal/domain"
)

var fixedNow = time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)

func TestLoginSuccessPersistsSession(t *testing.T) {
	store := session.New(session.NewMemory())
	v := &fakeVerifier{result: domain.Verification{Status: "success"}}
	uc := &AuthUC{Verifier: v, Now: func() time.Time { return fixedNow }}

	res, err := uc.Login(context.Background(), store, " sales@shop.tw ", "key-1")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "登入成功！", res.Message)
	assert.Equal(t, []string{"sales@shop.tw"}, v.calls)

	sess := uc.Current(store)
	require.NotNil(t, sess)
	assert.Equal(t, "sales@shop.tw", sess.Email)
	assert.Equal(t, "key-1", sess.APIKey)
	assert.Equal(t, "2026-10-15T09:30:00.000Z", sess.Timestamp)
}

func TestLoginRequiresBothFields(t *testing.T) {
	store := session.New(session.NewMemory())
	v := &fakeVerifier{result: domain.Verification{Status: "success"}}
	uc := &AuthUC{Verifier: v}

	res, err := uc.Login(context.Background(), store, "sales@shop.tw", "")
	assert.ErrorIs(t, err, domain.ErrMissingLogin)
	assert.Equal(t, "請輸入電子郵件", res.Message)
	assert.Empty(t, v.calls)
	assert.Nil(t, uc.Current(store))
}

func TestLoginRejected(t *testing.T) {
	store := session.New(session.NewMemory())

	uc := &AuthUC{Verifier: &fakeVerifier{result: domain.Verification{Status: "error", Message: "未授權的使用者"}}}
	res, err := uc.Login(context.Background(), store, "x@shop.tw", "k")
	assert.ErrorIs(t, err, domain.ErrVerifyRejected)
	assert.False(t, res.Success)
	assert.Equal(t, "未授權的使用者", res.Message)
	assert.Nil(t, uc.Current(store))

	uc = &AuthUC{Verifier: &fakeVerifier{result: domain.Verification{Status: "error"}}}
	res, _ = uc.Login(context.Background(), store, "x@shop.tw", "k")
	assert.Equal(t, "驗證失敗", res.Message)
}

func TestLoginNetworkFailure(t *testing.T) {
	store := session.New(session.NewMemory())
	uc := &AuthUC{Verifier: &fakeVerifier{err: errors.New("dial tcp: refused")}}

	res, err := uc.Login(context.Background(), store, "x@shop.tw", "k")
	assert.ErrorIs(t, err, domain.ErrVerifyConnection)
	assert.Equal(t, "連線失敗，請檢查網路連線", res.Message)
	assert.Nil(t, uc.Current(store))
}

func TestLogoutClearsSessionAndCart(t *testing.T) {
	store := session.New(session.NewMemory())
	uc := &AuthUC{Verifier: &fakeVerifier{result: domain.Verification{Status: "success"}}}
	_, err := uc.Login(context.Background(), store, "x@shop.tw", "k")
	require.NoError(t, err)
	_, err = (&CartUC{}).Add(store, item("冷氣 1噸", 1, 15000, 0))
	require.NoError(t, err)

	require.NoError(t, uc.Logout(store))
	assert.Nil(t, uc.Current(store))

	cart, err := store.LoadCart()
	require.NoError(t, err)
	assert.True(t, cart.Empty())
	assert.True(t, cart.View().Empty)
}
