package webhook

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	domain "github.com/catsync/backend/internal/domain/webhook"
)

// Config holds webhook delivery settings
type Config struct {
	RequestTimeout  time.Duration
	MaxResponseSize int64
}

// Dispatcher performs one bounded-timeout POST per webhook and records
// the attempt as a delivery log. Delivery failures are captured in the
// log, never returned as errors.
type Dispatcher struct {
	httpClient      *http.Client
	logger          *zap.Logger
	maxResponseSize int64
}

// NewDispatcher creates a webhook dispatcher
func NewDispatcher(config *Config, logger *zap.Logger) *Dispatcher {
	timeout := config.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	maxSize := config.MaxResponseSize
	if maxSize <= 0 {
		maxSize = 64 * 1024
	}

	return &Dispatcher{
		httpClient:      &http.Client{Timeout: timeout},
		logger:          logger,
		maxResponseSize: maxSize,
	}
}

// Dispatch renders the provider payload, delivers it, and returns the
// delivery log for exactly this one attempt
func (d *Dispatcher) Dispatch(ctx context.Context, wh *domain.Webhook, n Notification) *domain.WebhookLog {
	log := domain.NewWebhookLog(wh.TenantID, wh.ID)

	body, err := RenderPayload(wh.Provider, n)
	if err != nil {
		log.Status = domain.DeliveryStatusFailed
		log.ErrorMessage = fmt.Sprintf("render payload: %v", err)
		return log
	}
	log.RequestBody = string(body)

	start := time.Now()
	code, respBody, err := d.deliver(ctx, wh, body)
	log.LatencyMS = time.Since(start).Milliseconds()
	log.ResponseCode = code
	log.ResponseBody = respBody

	switch {
	case err != nil:
		log.Status = domain.DeliveryStatusFailed
		log.ErrorMessage = err.Error()
	case code >= 400:
		log.Status = domain.DeliveryStatusFailed
		log.ErrorMessage = fmt.Sprintf("HTTP %d", code)
	default:
		log.Status = domain.DeliveryStatusSuccess
	}

	if log.Status == domain.DeliveryStatusFailed {
		d.logger.Warn("webhook delivery failed",
			zap.String("webhook_id", wh.ID.String()),
			zap.String("url", wh.URL),
			zap.Int("response_code", code),
			zap.String("error", log.ErrorMessage),
		)
	} else {
		d.logger.Debug("webhook delivered",
			zap.String("webhook_id", wh.ID.String()),
			zap.Int64("latency_ms", log.LatencyMS),
		)
	}

	return log
}

// deliver performs the HTTP POST
func (d *Dispatcher) deliver(ctx context.Context, wh *domain.Webhook, body []byte) (int, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, wh.URL, bytes.NewReader(body))
	if err != nil {
		return 0, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	switch wh.AuthType {
	case domain.AuthTypeBearer:
		req.Header.Set("Authorization", "Bearer "+wh.AuthToken)
	case domain.AuthTypeBasic:
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte(wh.AuthToken)))
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, d.maxResponseSize))
	if err != nil {
		return resp.StatusCode, "", fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, string(respBody), nil
}

// Ensure Dispatcher implements the domain dispatcher port
var _ domain.Dispatcher = (*Dispatcher)(nil)
