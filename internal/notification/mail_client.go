package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

//go:generate mockgen -source=mail_client.go -destination=mock/mail_client_mock.go -package=mock
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

type Message struct {
	From    string   `json:"from"`
	To      string   `json:"to"`
	Cc      []string `json:"cc,omitempty"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type MailClientConfig struct {
	BaseURL string
	APIKey  string
	From    string
}

// MailClient talks to the transactional email provider's HTTP API. It is
// constructed once at process start from environment config and passed by
// reference; the API key never appears in source.
type MailClient struct {
	cfg        MailClientConfig
	httpClient *http.Client
}

func NewMailClient(cfg MailClientConfig) *MailClient {
	return &MailClient{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *MailClient) Send(ctx context.Context, msg Message) error {
	if msg.From == "" {
		msg.From = c.cfg.From
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/emails", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}

	return nil
}
