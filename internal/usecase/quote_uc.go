package usecase

import (
	"context"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/phenrril/quotedesk/internal/domain"
)

const quoteIDAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

type QuoteUC struct {
	Recorder domain.QuoteRecorder
	Records  domain.QuoteRecordRepo
	Location *time.Location
	Now      func() time.Time
	Suffix   func() string
	// ReportOnExport makes the JSON export report like print and PDF do.
	ReportOnExport bool
}

// Compose snapshots the cart into a quote with a fresh id. Every call
// yields a new id, even for an unchanged cart.
func (uc *QuoteUC) Compose(cart domain.Cart, customer domain.Customer) (domain.Quote, error) {
	if cart.Empty() {
		return domain.Quote{}, domain.ErrEmptyCart
	}
	now := uc.now()
	return domain.Quote{
		ID:       uc.NewQuoteID(now),
		Date:     now,
		Customer: customer.WithDefaults(),
		Items:    cart.Snapshot(),
		Total:    cart.Total(),
	}, nil
}

// NewQuoteID formats Q<YYYYMMDD><4 base-36 chars>. Uniqueness is best effort.
func (uc *QuoteUC) NewQuoteID(now time.Time) string {
	suffix := ""
	if uc.Suffix != nil {
		suffix = uc.Suffix()
	} else {
		suffix = randomSuffix()
	}
	return "Q" + now.Format("20060102") + suffix
}

func randomSuffix() string {
	var b strings.Builder
	for i := 0; i < 4; i++ {
		b.WriteByte(quoteIDAlphabet[rand.IntN(len(quoteIDAlphabet))])
	}
	return b.String()
}

func (uc *QuoteUC) ShouldReport(ch domain.QuoteChannel) bool {
	return ch != domain.ChannelJSON || uc.ReportOnExport
}

// Report records the quote locally when a ledger is configured and posts it
// to the quote API. Failures are logged and never returned.
func (uc *QuoteUC) Report(ctx context.Context, sess *domain.Session, q domain.Quote, ch domain.QuoteChannel) {
	if sess == nil || !sess.Valid() {
		return
	}
	if uc.Records != nil {
		rec := &domain.QuoteRecord{
			ID:              uuid.New(),
			QuoteID:         q.ID,
			Email:           strings.ToLower(sess.Email),
			CustomerName:    q.Customer.Name,
			CustomerPhone:   q.Customer.Phone,
			CustomerAddress: q.Customer.Address,
			Items:           q.Items,
			Total:           q.Total,
			Channel:         ch,
			CreatedAt:       uc.now(),
		}
		if err := uc.Records.Save(ctx, rec); err != nil {
			log.Error().Err(err).Str("quote_id", q.ID).Msg("save quote record")
		}
	}
	if uc.Recorder == nil {
		return
	}
	report := domain.QuoteReport{
		Auth:     domain.ReportAuth{Email: sess.Email, APIKey: sess.APIKey},
		Customer: q.Customer,
		Items:    q.Items,
		QuoteID:  q.ID,
	}
	if err := uc.Recorder.RecordQuote(ctx, report); err != nil {
		log.Error().Err(err).Str("quote_id", q.ID).Str("channel", string(ch)).Msg("report quote")
		return
	}
	log.Info().Str("quote_id", q.ID).Str("channel", string(ch)).Msg("quote reported")
}

func (uc *QuoteUC) History(ctx context.Context, email string, limit int) ([]domain.QuoteRecord, error) {
	if uc.Records == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 50
	}
	return uc.Records.ListByEmail(ctx, strings.ToLower(strings.TrimSpace(email)), limit)
}

// Lookup returns a ledger row only to the email that reported it.
func (uc *QuoteUC) Lookup(ctx context.Context, email, quoteID string) (*domain.QuoteRecord, error) {
	if uc.Records == nil {
		return nil, domain.ErrNotFound
	}
	rec, err := uc.Records.FindByQuoteID(ctx, quoteID)
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(rec.Email, strings.TrimSpace(email)) {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

func (uc *QuoteUC) now() time.Time {
	now := time.Now()
	if uc.Now != nil {
		now = uc.Now()
	}
	if uc.Location != nil {
		now = now.In(uc.Location)
	}
	return now
}
