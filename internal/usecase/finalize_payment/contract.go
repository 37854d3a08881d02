package finalize_payment

import (
	"context"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByPaymentRef(ctx context.Context, paymentRef string) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, bookingID int64) (*domain.Booking, error)
	ConfirmPayment(ctx context.Context, bookingID int64, paymentStatus domain.PaymentStatus) error
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	ConfirmPayment(ctx context.Context, paymentRef string) error
}

// Notifier интерфейс сервиса уведомлений
type Notifier interface {
	Notify(ctx context.Context, n notifier.Notification)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
