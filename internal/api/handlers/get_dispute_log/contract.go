package get_dispute_log

import (
	"context"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/disputes/models"
)

type DisputesService interface {
	GetLog(ctx context.Context, bookingID int64, actor domain.Actor) (*models.DisputeLogResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
