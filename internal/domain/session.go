package domain

import (
	"strings"
	"time"
)

type Session struct {
	Email     string `json:"email"`
	APIKey    string `json:"apiKey"`
	Timestamp string `json:"timestamp"`
}

func NewSession(email, apiKey string, now time.Time) Session {
	return Session{Email: email, APIKey: apiKey, Timestamp: now.UTC().Format("2006-01-02T15:04:05.000Z")}
}

// Valid reports whether the record is well formed. There is no expiry.
func (s Session) Valid() bool {
	return strings.TrimSpace(s.Email) != "" && strings.TrimSpace(s.APIKey) != ""
}
