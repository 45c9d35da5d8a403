package domain

import (
	"regexp"
	"time"

	"github.com/google/uuid"
)

var QuoteIDPattern = regexp.MustCompile(`^Q\d{8}[A-Z0-9]{4}$`)

type Quote struct {
	ID       string
	Date     time.Time
	Customer Customer
	Items    []LineItem
	Total    float64
}

type QuoteChannel string

const (
	ChannelPrint QuoteChannel = "print"
	ChannelPDF   QuoteChannel = "pdf"
	ChannelJSON  QuoteChannel = "json"
)

// QuoteReport is the body posted to the quote API.
type QuoteReport struct {
	Auth     ReportAuth `json:"auth"`
	Customer Customer   `json:"customer"`
	Items    []LineItem `json:"items"`
	QuoteID  string     `json:"quoteId"`
}

type ReportAuth struct {
	Email  string `json:"email"`
	APIKey string `json:"apiKey"`
}

type QuoteRecord struct {
	ID              uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	QuoteID         string       `gorm:"size:20;index" json:"quoteId"`
	Email           string       `gorm:"size:140;index" json:"email"`
	CustomerName    string       `gorm:"size:140" json:"customerName"`
	CustomerPhone   string       `gorm:"size:60" json:"customerPhone"`
	CustomerAddress string       `gorm:"size:255" json:"customerAddress"`
	Items           []LineItem   `gorm:"type:jsonb;serializer:json" json:"items"`
	Total           float64      `gorm:"type:decimal(12,2)" json:"total"`
	Channel         QuoteChannel `gorm:"type:varchar(10)" json:"channel"`
	CreatedAt       time.Time    `json:"createdAt"`
}

// Letterhead is the shop block printed on every quote.
type Letterhead struct {
	Name    string
	Phone   string
	Address string
}

func (l Letterhead) Notes() []string {
	return []string{
		"此報價有效期限為30天",
		"安裝費用另計",
		"聯絡我們: " + l.Phone,
	}
}

func DefaultLetterhead() Letterhead {
	return Letterhead{Name: "專業電器行", Phone: "02-1234-5678", Address: "台北市中山區某某路123號"}
}
