package quoteapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/phenrril/quotedesk/internal/domain"
)

// Client talks to the quote API: email verification on GET, quote
// recording on POST.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{baseURL: strings.TrimSpace(baseURL), httpClient: &http.Client{Timeout: 10 * time.Second}}
}

func (c *Client) VerifyEmail(ctx context.Context, email string) (domain.Verification, error) {
	if c.baseURL == "" {
		return domain.Verification{}, errors.New("quote api: API_URL not set")
	}
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return domain.Verification{}, fmt.Errorf("api url: %w", err)
	}
	q := u.Query()
	q.Set("email", email)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return domain.Verification{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.Verification{}, fmt.Errorf("verify email: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.Verification{}, fmt.Errorf("verify email: read body: %w", err)
	}
	var v domain.Verification
	if err := json.Unmarshal(body, &v); err != nil {
		return domain.Verification{}, fmt.Errorf("verify email: status %d: %w", resp.StatusCode, err)
	}
	return v, nil
}

// RecordQuote posts the report. The response body is ignored.
func (c *Client) RecordQuote(ctx context.Context, r domain.QuoteReport) error {
	if c.baseURL == "" {
		return errors.New("quote api: API_URL not set")
	}
	b, err := json.Marshal(r)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("record quote: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode >= 400 {
		return fmt.Errorf("record quote: status %d", resp.StatusCode)
	}
	return nil
}

var (
	_ domain.EmailVerifier = (*Client)(nil)
	_ domain.QuoteRecorder = (*Client)(nil)
)
