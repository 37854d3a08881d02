package request_refund

import (
	"context"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	RequestRefund(ctx context.Context, bookingID int64, req *models.RequestRefundRequest) (*models.RefundResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
