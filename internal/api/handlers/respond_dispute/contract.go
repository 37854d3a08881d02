package respond_dispute

import (
	"context"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/disputes/models"
)

type DisputesService interface {
	Respond(ctx context.Context, bookingID int64, req *models.RespondDisputeRequest) (*models.DisputeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
