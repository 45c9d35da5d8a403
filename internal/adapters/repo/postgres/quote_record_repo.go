package postgres

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/phenrril/quotedesk/internal/domain"
)

type QuoteRecordRepo struct{ db *gorm.DB }

func NewQuoteRecordRepo(db *gorm.DB) *QuoteRecordRepo { return &QuoteRecordRepo{db: db} }

func (r *QuoteRecordRepo) Save(ctx context.Context, rec *domain.QuoteRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Email != "" {
		rec.Email = strings.ToLower(rec.Email)
	}
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *QuoteRecordRepo) FindByQuoteID(ctx context.Context, quoteID string) (*domain.QuoteRecord, error) {
	var rec domain.QuoteRecord
	q := strings.TrimSpace(quoteID)
	if q == "" {
		return nil, errors.New("empty quote id")
	}
	if err := r.db.WithContext(ctx).Order("created_at desc").First(&rec, "quote_id = ?", q).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// ListByEmail returns the newest records first.
func (r *QuoteRecordRepo) ListByEmail(ctx context.Context, email string, limit int) ([]domain.QuoteRecord, error) {
	var list []domain.QuoteRecord
	e := strings.ToLower(strings.TrimSpace(email))
	if e == "" {
		return nil, errors.New("empty email")
	}
	if limit <= 0 {
		limit = 50
	}
	if err := r.db.WithContext(ctx).Where("email = ?", e).Order("created_at desc").Limit(limit).Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

var _ domain.QuoteRecordRepo = (*QuoteRecordRepo)(nil)
