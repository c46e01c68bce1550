package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MKhiriev/go-door-keeper/internal/config"
	"github.com/MKhiriev/go-door-keeper/internal/logger"
	"github.com/MKhiriev/go-door-keeper/internal/utils"
	"github.com/MKhiriev/go-door-keeper/models"
	"github.com/go-resty/resty/v2"
)

const defaultWebhookTimeout = 10 * time.Second

type webhookNotifier struct {
	client  *utils.HTTPClient
	timeout time.Duration
	logger  *logger.Logger
}

// NewWebhookNotifier constructs an HTTP webhook implementation of [Notifier].
// It normalises and validates cfg.WebhookURL and configures the underlying
// HTTP client with the resolved endpoint, the request timeout, and a small
// retry budget for transient delivery failures.
//
// An empty cfg.WebhookURL disables notifications: the returned Notifier
// silently drops every event. A malformed URL is an error.
func NewWebhookNotifier(cfg config.Notifier, logger *logger.Logger) (Notifier, error) {
	if strings.TrimSpace(cfg.WebhookURL) == "" {
		logger.Info().Msg("webhook notifier disabled: no endpoint configured")
		return &nopNotifier{}, nil
	}

	endpoint, err := normalizeWebhookURL(cfg.WebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook url: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(endpoint).
		SetTimeout(timeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)

	return &webhookNotifier{client: client, timeout: timeout, logger: logger}, nil
}

func normalizeWebhookURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("url must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

// Notify implements [Notifier]. Delivery runs on a background goroutine so
// the caller returns immediately.
func (w *webhookNotifier) Notify(ctx context.Context, event models.NotificationEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	go w.deliver(event)
}

func (w *webhookNotifier) deliver(event models.NotificationEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), w.timeout)
	defer cancel()

	resp, err := w.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(event).
		Post("")
	if err == nil {
		err = mapWebhookError(resp)
	}
	if err != nil {
		w.logger.Err(err).
			Str("event", event.Event).
			Str("user", event.User).
			Msg("webhook delivery failed")
		return
	}

	w.logger.Debug().Str("event", event.Event).Msg("webhook delivered")
}

func mapWebhookError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := strings.TrimSpace(string(resp.Body()))
	if body == "" {
		body = http.StatusText(resp.StatusCode())
	}
	return fmt.Errorf("%w: http %d: %s", ErrWebhookRejected, resp.StatusCode(), body)
}

// nopNotifier drops every event. Used when no webhook endpoint is
// configured.
type nopNotifier struct{}

func (*nopNotifier) Notify(context.Context, models.NotificationEvent) {}
