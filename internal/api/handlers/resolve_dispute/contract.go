package resolve_dispute

import (
	"context"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/disputes/models"
)

type DisputesService interface {
	Resolve(ctx context.Context, bookingID int64, req *models.ResolveDisputeRequest) (*models.DisputeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
