package gcal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/timerange"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Config конфигурация клиента Google Calendar
type Config struct {
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// Client клиент внешнего календаря.
// Читает занятые интервалы через FreeBusy API по refresh-токену преподавателя
type Client struct {
	oauth   *oauth2.Config
	timeout time.Duration
	logger  Logger
}

// NewClient создает новый клиент календаря
func NewClient(cfg Config, logger Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{calendar.CalendarReadonlyScope},
		},
		timeout: timeout,
		logger:  logger,
	}
}

// GetBusyIntervals запрашивает занятые интервалы календаря в окне [from, to).
// Ошибки авторизации и недоступности различаются: первые означают, что
// преподавателю нужно переподключить календарь
func (c *Client) GetBusyIntervals(ctx context.Context, link *domain.CalendarLink, from, to time.Time) ([]timerange.Range, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	tokenSource := c.oauth.TokenSource(ctx, &oauth2.Token{RefreshToken: link.RefreshToken})

	service, err := calendar.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		c.logger.Error("gcal: GetBusyIntervals - pro %d: create service: %v", link.ProID, err)
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	request := &calendar.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   []*calendar.FreeBusyRequestItem{{Id: link.CalendarID}},
	}

	response, err := service.Freebusy.Query(request).Context(ctx).Do()
	if err != nil {
		return nil, c.classify(link.ProID, err)
	}

	cal, ok := response.Calendars[link.CalendarID]
	if !ok {
		c.logger.Warn("gcal: GetBusyIntervals - pro %d: calendar %s missing in response", link.ProID, link.CalendarID)
		return nil, fmt.Errorf("%w: calendar %s not in response", ErrUnavailable, link.CalendarID)
	}

	busy := make([]timerange.Range, 0, len(cal.Busy))
	for _, period := range cal.Busy {
		start, err := time.Parse(time.RFC3339, period.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: parse busy start: %v", ErrUnavailable, err)
		}
		end, err := time.Parse(time.RFC3339, period.End)
		if err != nil {
			return nil, fmt.Errorf("%w: parse busy end: %v", ErrUnavailable, err)
		}
		busy = append(busy, timerange.Range{Start: start, End: end})
	}

	return busy, nil
}

// classify разделяет ошибки провайдера на просроченную авторизацию
// и временную недоступность
func (c *Client) classify(proID int64, err error) error {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		c.logger.Warn("gcal: pro %d: token refresh rejected: %v", proID, err)
		return fmt.Errorf("%w: %v", ErrAuthExpired, err)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden {
			c.logger.Warn("gcal: pro %d: authorization rejected: %v", proID, err)
			return fmt.Errorf("%w: %v", ErrAuthExpired, err)
		}
	}

	c.logger.Error("gcal: pro %d: freebusy query failed: %v", proID, err)
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
