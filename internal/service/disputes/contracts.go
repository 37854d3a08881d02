package disputes

import (
	"context"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByIDForUpdate(ctx context.Context, id int64) (*domain.Booking, error)
	TransitionDispute(ctx context.Context, id int64, from []domain.DisputeStatus, to domain.DisputeStatus) error
	ResolveDispute(ctx context.Context, id int64, from []domain.DisputeStatus, to domain.DisputeStatus, notes string) error
	MarkRefundProcessed(ctx context.Context, id int64, amount int64, reason string) error
}

// DisputeLogRepository интерфейс append-only журнала споров
type DisputeLogRepository interface {
	Append(ctx context.Context, entry *domain.DisputeLogEntry) (*domain.DisputeLogEntry, error)
	GetByBookingID(ctx context.Context, bookingID int64) ([]*domain.DisputeLogEntry, error)
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

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
