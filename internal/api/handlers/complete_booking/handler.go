package complete_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/middleware"
	bookingsService "github.com/golfpro-saas/GolfPro-BookingService/internal/service/bookings"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/bookings/models"
)

const (
	msgInvalidBookingID = "некорректный идентификатор бронирования"
	msgAuthRequired     = "требуется аутентификация"
	msgBookingNotFound  = "бронирование не найдено"
	msgAccessDenied     = "доступ запрещен"
	msgCannotComplete   = "занятие нельзя завершить: оно не подтверждено или еще не прошло"
)

type Handler struct {
	service BookingsService
	logger  Logger
}

func NewHandler(service BookingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{id}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /bookings/{id}/complete - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAuthRequired)
		return
	}

	err = h.service.Complete(r.Context(), bookingID, &models.CompleteBookingRequest{Actor: actor})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/complete - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/complete - Access denied: booking_id=%d, actor=%d", bookingID, actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrCannotComplete):
			h.logger.Warn("POST /bookings/{id}/complete - Cannot complete: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgCannotComplete)

		default:
			h.logger.Error("POST /bookings/{id}/complete - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/complete - Completed: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
