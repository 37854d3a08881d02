package delete_block

import (
	"context"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
)

type ScheduleService interface {
	DeleteBlock(ctx context.Context, proID, blockID int64, actor domain.Actor) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
