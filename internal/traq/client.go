// Package traq delivers composed messages to a traQ webhook endpoint.
package traq

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"traqhook.app/relay/core/config"
	"traqhook.app/relay/internal/signature"
)

const signatureHeader = "X-TRAQ-Signature"

// Client posts messages to one traQ webhook. Delivery is fire-and-forget:
// one POST, no retry, no backoff; a transport error or non-2xx response is
// returned to the caller as-is.
type Client struct {
	client *http.Client
	url    string
	secret []byte
}

// New creates a client for the webhook described by cfg. httpClient may be
// nil, in which case http.DefaultClient is used; timeouts belong to the
// transport layer, not to this client.
func New(cfg config.TraqConfig, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		client: httpClient,
		url:    cfg.WebhookURL(),
		secret: []byte(cfg.WebhookSecret),
	}
}

// Post signs message with the webhook secret and delivers it as a plain-text
// body. The signature uses HMAC-SHA1 because that is what the traQ endpoint
// verifies.
func (c *Client) Post(ctx context.Context, message string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("traq: building request: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain; charset=utf-8")
	req.Header.Set(signatureHeader, signature.Sign(c.secret, message))

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("traq: %w", err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("traq: HTTP %d from webhook endpoint", resp.StatusCode)
	}

	slog.DebugContext(ctx, "message delivered to traq", "status", resp.StatusCode)
	return nil
}
