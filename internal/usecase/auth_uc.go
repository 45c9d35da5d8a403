package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phenrril/quotedesk/internal/domain"
)

type LoginResult struct {
	Success bool
	Message string
}

type AuthUC struct {
	Verifier domain.EmailVerifier
	Now      func() time.Time
}

// Login checks only the email against the quote API. The API key is stored
// for later quote reports and never verified here.
func (uc *AuthUC) Login(ctx context.Context, store domain.SessionStore, email, apiKey string) (LoginResult, error) {
	email = strings.TrimSpace(email)
	apiKey = strings.TrimSpace(apiKey)
	if email == "" || apiKey == "" {
		return LoginResult{Message: domain.Message(domain.ErrMissingLogin)}, domain.ErrMissingLogin
	}

	v, err := uc.Verifier.VerifyEmail(ctx, email)
	if err != nil {
		log.Warn().Err(err).Str("email", email).Msg("verify email")
		return LoginResult{Message: domain.Message(domain.ErrVerifyConnection)}, errors.Join(domain.ErrVerifyConnection, err)
	}
	if !v.OK() {
		msg := v.Message
		if msg == "" {
			msg = domain.Message(domain.ErrVerifyRejected)
		}
		return LoginResult{Message: msg}, domain.ErrVerifyRejected
	}

	if err := store.SaveAuth(domain.NewSession(email, apiKey, uc.now())); err != nil {
		return LoginResult{Message: domain.Message(err)}, err
	}
	return LoginResult{Success: true, Message: "登入成功！"}, nil
}

// Logout drops the session and the cart.
func (uc *AuthUC) Logout(store domain.SessionStore) error {
	return errors.Join(store.ClearAuth(), store.ClearCart())
}

func (uc *AuthUC) Current(store domain.SessionStore) *domain.Session {
	s, err := store.LoadAuth()
	if err != nil {
		return nil
	}
	return &s
}

func (uc *AuthUC) now() time.Time {
	if uc.Now != nil {
		return uc.Now()
	}
	return time.Now()
}
