package settings

import (
	"context"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
)

// SettingsRepository интерфейс репозитория настроек преподавателя
type SettingsRepository interface {
	GetByProID(ctx context.Context, proID int64) (*domain.ProSettings, error)
	Upsert(ctx context.Context, s *domain.ProSettings) (*domain.ProSettings, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
