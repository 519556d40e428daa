// Package telegram delivers notifications through the Telegram Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goodnatureofminers/hydrawatch/internal/hydra/notify"
)

const (
	DefaultBaseURL = "https://api.telegram.org"
	defaultTimeout = 10 * time.Second
)

// Client sends messages as one bot.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

func New(token string, opts ...func(*Client)) *Client {
	c := &Client{
		client:  &http.Client{Timeout: defaultTimeout},
		baseURL: DefaultBaseURL,
		token:   token,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithBaseURL points the client at another Bot API server.
func WithBaseURL(url string) func(*Client) {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) func(*Client) {
	return func(c *Client) {
		c.client = client
	}
}

func (c *Client) Name() string {
	return "telegram"
}

type sendMessageRequest struct {
	ChatID                int64  `json:"chat_id"`
	Text                  string `json:"text"`
	ParseMode             string `json:"parse_mode,omitempty"`
	DisableWebPagePreview bool   `json:"disable_web_page_preview"`
}

type apiResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code"`
	Description string `json:"description"`
	Parameters  struct {
		RetryAfter int `json:"retry_after"`
	} `json:"parameters"`
}

// Send posts msg to chatID. A 429 answer becomes *notify.RateLimitedError and
// a 403 answer wraps notify.ErrForbidden.
func (c *Client) Send(ctx context.Context, chatID int64, msg notify.Message) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:                chatID,
		Text:                  msg.Text,
		ParseMode:             msg.ParseMode,
		DisableWebPagePreview: true,
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	var out apiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("decode response (status %s): %w", resp.Status, err)
	}
	if out.OK {
		return nil
	}

	code := out.ErrorCode
	if code == 0 {
		code = resp.StatusCode
	}
	switch code {
	case http.StatusTooManyRequests:
		return &notify.RateLimitedError{RetryAfter: time.Duration(out.Parameters.RetryAfter) * time.Second}
	case http.StatusForbidden:
		return fmt.Errorf("chat %d: %s: %w", chatID, out.Description, notify.ErrForbidden)
	default:
		return fmt.Errorf("send message: %d %s", code, out.Description)
	}
}
