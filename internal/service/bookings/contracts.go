package bookings

import (
	"context"
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByProWithFilter(ctx context.Context, filter domain.ProBookingsFilter) ([]*domain.Booking, error)
	Cancel(ctx context.Context, id int64, reason string) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	MarkRefundRequested(ctx context.Context, id int64, amount int64, reason string) error
	MarkRefundProcessed(ctx context.Context, id int64, amount int64, reason string) error
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	CheckRefundEligibility(ctx context.Context, paymentRef string, amount int64) error
	IssueRefund(ctx context.Context, paymentRef string, amount int64) error
}

// Notifier интерфейс сервиса уведомлений
type Notifier interface {
	Notify(ctx context.Context, n notifier.Notification)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
