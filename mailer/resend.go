package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"autoplay/internal/httpclient"
)

// Client sends transactional mail through the Resend API. Mail is best
// effort everywhere it is used; callers log failures and move on.
type Client struct {
	base   *httpclient.BaseClient
	apiKey string
	from   string
}

const defaultBaseURL = "https://api.resend.com"

func New(apiKey, from string) *Client {
	if from == "" {
		from = "Autoplay <onboarding@resend.dev>"
	}
	return &Client{
		base:   httpclient.NewBaseClient(defaultBaseURL),
		apiKey: apiKey,
		from:   from,
	}
}

// NewFromEnv builds a client from RESEND_API_KEY and MAIL_FROM.
func NewFromEnv() *Client {
	return New(os.Getenv("RESEND_API_KEY"), os.Getenv("MAIL_FROM"))
}

// Enabled reports whether an API key is configured.
func (c *Client) Enabled() bool {
	return c.apiKey != ""
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// Send delivers one HTML email.
func (c *Client) Send(ctx context.Context, to, subject, html string) error {
	if !c.Enabled() {
		return fmt.Errorf("resend: missing API key")
	}

	buf, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	})
	if err != nil {
		return err
	}

	req, err := c.base.NewRequest(ctx, http.MethodPost, "/emails", nil, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.base.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("resend Send: status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}
