package usecase

import (
	"context"
	"errors"
	"sync"

	"github.com/phenrril/quotedesk/internal/domain"
)

type fakeVerifier struct {
	result domain.Verification
	err    error
	calls  []string
}

func (f *fakeVerifier) VerifyEmail(_ context.Context, email string) (domain.Verification, error) {
	f.calls = append(f.calls, email)
	return f.result, f.err
}

type fakeRecorder struct {
	mu      sync.Mutex
	reports []domain.QuoteReport
	err     error
}

func (f *fakeRecorder) RecordQuote(_ context.Context, r domain.QuoteReport) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reports = append(f.reports, r)
	return f.err
}

type fakeRecords struct {
	saved []domain.QuoteRecord
	err   error
}

func (f *fakeRecords) Save(_ context.Context, r *domain.QuoteRecord) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, *r)
	return nil
}

func (f *fakeRecords) FindByQuoteID(_ context.Context, id string) (*domain.QuoteRecord, error) {
	for i := range f.saved {
		if f.saved[i].QuoteID == id {
			return &f.saved[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeRecords) ListByEmail(_ context.Context, email string, limit int) ([]domain.QuoteRecord, error) {
	var out []domain.QuoteRecord
	for _, r := range f.saved {
		if r.Email == email && len(out) < limit {
			out = append(out, r)
		}
	}
	return out, nil
}

// failingStore fails every write, for checking that nothing is reported as saved.
type failingStore struct{ domain.SessionStore }

var errWrite = errors.New("write failed")

func (f failingStore) SaveAuth(domain.Session) error { return errWrite }
func (f failingStore) SaveCart(domain.Cart) error    { return errWrite }
