package get_blocks

import (
	"context"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/schedule/models"
)

type ScheduleService interface {
	GetBlocks(ctx context.Context, proID int64, req *models.GetBlocksRequest) (*models.BlockListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
