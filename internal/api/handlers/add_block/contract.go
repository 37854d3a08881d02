package add_block

import (
	"context"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	AddBlock(ctx context.Context, proID int64, req *models.AddBlockRequest) (*models.BlockResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
