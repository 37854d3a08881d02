package create_booking

import (
	"context"
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/notifier"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/integrations/stripegw"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	SetPaymentRef(ctx context.Context, bookingID int64, paymentRef string) error
	Cancel(ctx context.Context, bookingID int64, reason string) error
}

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetRulesByPro(ctx context.Context, proID int64) ([]*domain.AvailabilityRule, error)
	GetBlocksByProInWindow(ctx context.Context, proID int64, from, to time.Time) ([]*domain.BlockedInterval, error)
}

// SettingsRepository интерфейс репозитория настроек преподавателя
type SettingsRepository interface {
	GetByProID(ctx context.Context, proID int64) (*domain.ProSettings, error)
}

// PaymentGateway интерфейс платежного шлюза
type PaymentGateway interface {
	InitiateDeposit(ctx context.Context, bookingID int64, amount int64, currency, description string) (*stripegw.DepositSession, error)
}

// Notifier интерфейс сервиса уведомлений
type Notifier interface {
	Notify(ctx context.Context, n notifier.Notification)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
