package get_pro_bookings

import (
	"context"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/bookings/models"
)

type BookingsService interface {
	GetProBookings(ctx context.Context, req *models.GetProBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
