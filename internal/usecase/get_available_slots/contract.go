package get_available_slots

import (
	"context"
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	"github.com/golfpro-saas/GolfPro-BookingService/pkg/timerange"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetByProWithFilter получает бронирования преподавателя в окне фильтра
	GetByProWithFilter(ctx context.Context, filter domain.ProBookingsFilter) ([]*domain.Booking, error)
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

// CalendarLinkRepository интерфейс репозитория привязок календарей
type CalendarLinkRepository interface {
	GetByProID(ctx context.Context, proID int64) (*domain.CalendarLink, error)
}

// CalendarClient интерфейс клиента внешнего календаря
type CalendarClient interface {
	GetBusyIntervals(ctx context.Context, link *domain.CalendarLink, from, to time.Time) ([]timerange.Range, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	// DoReadOnly выполняет fn в read-only транзакции
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
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
