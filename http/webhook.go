package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/fwojciec/vipbot"
)

// Ensure WebhookNotifier implements vipbot.Notifier at compile time.
var _ vipbot.Notifier = (*WebhookNotifier)(nil)

// colorGreen is the embed color used for update announcements.
const colorGreen = 0x2ecc71

// WebhookNotifier posts catalog updates to a chat webhook as an embed.
type WebhookNotifier struct {
	client *http.Client
	url    string
}

// NewWebhookNotifier creates a notifier posting to url.
func NewWebhookNotifier(url string, opts ...Option) *WebhookNotifier {
	f := NewFetcher(opts...)
	return &WebhookNotifier{client: f.client, url: url}
}

type webhookPayload struct {
	Embeds []webhookEmbed `json:"embeds"`
}

type webhookEmbed struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Color       int    `json:"color"`
	Timestamp   string `json:"timestamp,omitempty"`
}

// NotifyUpdate posts u to the webhook.
func (n *WebhookNotifier) NotifyUpdate(ctx context.Context, u vipbot.CatalogUpdate) error {
	ts := u.AdoptedAt
	if ts.IsZero() {
		ts = time.Now()
	}

	payload := webhookPayload{Embeds: []webhookEmbed{{
		Title:       "🔄 Data Diperbarui",
		Description: fmt.Sprintf("📦 Produk: **%d**\n❓ FAQ: **%d**", u.Products, u.FAQ),
		Color:       colorGreen,
		Timestamp:   ts.UTC().Format(time.RFC3339),
	}}}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(body))
	if err != nil {
		return vipbot.Errorf(vipbot.EINVALID, "invalid webhook URL")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return &vipbot.Error{Code: vipbot.EUNAVAILABLE, Message: "webhook request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return vipbot.Errorf(vipbot.EUNAVAILABLE, "webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}
