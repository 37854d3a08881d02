package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config конфигурация клиента уведомлений
type Config struct {
	URL     string
	Timeout time.Duration
}

// Event типы событий уведомлений
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventRefundProcessed  = "refund.processed"
	EventDisputeOpened    = "dispute.opened"
	EventDisputeResolved  = "dispute.resolved"
	EventDisputeEscalated = "dispute.escalated"
)

// Notification полезная нагрузка события
type Notification struct {
	Event     string `json:"event"`
	BookingID int64  `json:"booking_id"`
	ProID     int64  `json:"pro_id"`
	Message   string `json:"message,omitempty"`
}

// Client клиент сервиса уведомлений.
// Доставка best-effort: ошибки логируются и не влияют на основной поток
type Client struct {
	httpClient *http.Client
	url        string
	logger     Logger
}

// NewClient создает новый клиент уведомлений.
// При пустом URL клиент работает вхолостую
func NewClient(cfg Config, logger Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 3 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		url:        cfg.URL,
		logger:     logger,
	}
}

// Notify отправляет событие в сервис уведомлений.
// Ошибка отправки никогда не возвращается наверх
func (c *Client) Notify(ctx context.Context, n Notification) {
	if c.url == "" {
		return
	}

	body, err := json.Marshal(n)
	if err != nil {
		c.logger.Error("notifier: Notify - marshal %s for booking %d: %v", n.Event, n.BookingID, err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		c.logger.Error("notifier: Notify - build request: %v", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("notifier: Notify - send %s for booking %d: %v", n.Event, n.BookingID, err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		c.logger.Warn("notifier: Notify - %s for booking %d: status %s", n.Event, n.BookingID, resp.Status)
		return
	}

	c.logger.Info("notifier: Notify - sent %s for booking %d", n.Event, n.BookingID)
}
