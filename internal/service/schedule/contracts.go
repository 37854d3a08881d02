package schedule

import (
	"context"
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория правил доступности
type AvailabilityRepository interface {
	GetRulesByPro(ctx context.Context, proID int64) ([]*domain.AvailabilityRule, error)
	ReplaceRules(ctx context.Context, proID int64, rules []*domain.AvailabilityRule) error
	GetBlocksByProInWindow(ctx context.Context, proID int64, from, to time.Time) ([]*domain.BlockedInterval, error)
	CreateBlock(ctx context.Context, block *domain.BlockedInterval) (*domain.BlockedInterval, error)
	DeleteBlock(ctx context.Context, proID, blockID int64) error
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
