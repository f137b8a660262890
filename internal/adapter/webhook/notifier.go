package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/polkiloo/quoteflow/internal/domain/model"
)

const defaultRetryAfter = 5 * time.Second

// TooManyRequestsError represents rate limiting signal from the receiver.
type TooManyRequestsError struct {
	RetryAfter time.Duration
}

func (e TooManyRequestsError) Error() string {
	return fmt.Sprintf("too many requests, retry after %s", e.RetryAfter)
}

// PermanentError marks a delivery the receiver refused; retrying will not help.
type PermanentError struct {
	StatusCode int
}

func (e PermanentError) Error() string {
	return fmt.Sprintf("webhook rejected event with status %d", e.StatusCode)
}

// Notifier delivers a committed event to the outside world.
type Notifier interface {
	Notify(ctx context.Context, event model.Event) error
}

// HTTPNotifier posts events as JSON to a webhook endpoint.
type HTTPNotifier struct {
	endpoint   *url.URL
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPNotifier creates a webhook notifier with default timeout.
func NewHTTPNotifier(endpoint string, logger *slog.Logger) (*HTTPNotifier, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse webhook url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("webhook url must be absolute")
	}
	return &HTTPNotifier{
		endpoint: parsed,
		logger:   logger,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

// Notify posts event. The event ID doubles as the idempotency key so the
// receiver can drop redeliveries.
func (n *HTTPNotifier) Notify(ctx context.Context, event model.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Event-Type", string(event.Type))
	req.Header.Set("Idempotency-Key", event.ID.String())

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return TooManyRequestsError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return PermanentError{StatusCode: resp.StatusCode}
	default:
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		n.logger.Error("webhook request failed", slog.Int("status", resp.StatusCode), slog.String("body", string(payload)))
		return fmt.Errorf("webhook error: %s", resp.Status)
	}
}

// LogNotifier writes events to the log instead of sending them anywhere.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier constructs LogNotifier.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs event.
func (n *LogNotifier) Notify(ctx context.Context, event model.Event) error {
	n.logger.InfoContext(ctx, "notification",
		slog.String("event", string(event.Type)),
		slog.String("event_id", event.ID.String()),
		slog.Int64("order_id", event.OrderID),
		slog.Int64("customer_id", event.CustomerID),
		slog.Int64("dealer_id", event.DealerID),
	)
	return nil
}

func parseRetryAfter(header string) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}
	if seconds, err := strconv.Atoi(header); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if t, err := http.ParseTime(header); err == nil {
		return time.Until(t)
	}
	return defaultRetryAfter
}
