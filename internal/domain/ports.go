package domain

import "context"

// SessionStore persists the auth record and the cart snapshot between requests.
type SessionStore interface {
	LoadAuth() (Session, error)
	SaveAuth(Session) error
	ClearAuth() error
	LoadCart() (Cart, error)
	SaveCart(Cart) error
	ClearCart() error
}

type Verification struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func (v Verification) OK() bool { return v.Status == "success" }

type EmailVerifier interface {
	VerifyEmail(ctx context.Context, email string) (Verification, error)
}

type QuoteRecorder interface {
	RecordQuote(ctx context.Context, r QuoteReport) error
}

type QuoteRecordRepo interface {
	Save(ctx context.Context, r *QuoteRecord) error
	FindByQuoteID(ctx context.Context, quoteID string) (*QuoteRecord, error)
	ListByEmail(ctx context.Context, email string, limit int) ([]QuoteRecord, error)
}
