package request_refund

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
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAuthRequired       = "требуется аутентификация"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "доступ запрещен"
	msgNotPaid            = "бронирование не оплачено"
	msgRefundNotEligible  = "возврат по этому бронированию недоступен"
	msgRefundAlreadyDone  = "возврат уже выполнен"
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

// RefundRequest HTTP request model
type RefundRequest struct {
	Reason string `json:"reason"`
}

// Handle POST /api/v1/bookings/{id}/refund
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /bookings/{id}/refund - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAuthRequired)
		return
	}

	var req RefundRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/refund - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.RequestRefund(r.Context(), bookingID, &models.RequestRefundRequest{
		Actor:  actor,
		Reason: req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, bookingsService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/refund - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, bookingsService.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/refund - Access denied: booking_id=%d, actor=%d", bookingID, actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, bookingsService.ErrNotPaid):
			h.logger.Warn("POST /bookings/{id}/refund - Not paid: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotPaid)

		case errors.Is(err, bookingsService.ErrRefundAlreadyProcessed):
			h.logger.Warn("POST /bookings/{id}/refund - Already refunded: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgRefundAlreadyDone)

		case errors.Is(err, bookingsService.ErrRefundNotEligible):
			h.logger.Warn("POST /bookings/{id}/refund - Not eligible: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgRefundNotEligible)

		default:
			h.logger.Error("POST /bookings/{id}/refund - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/refund - Refunded: booking_id=%d, amount=%d (%d%%)",
		bookingID, result.RefundAmount, result.RefundPercent)
	handlers.RespondJSON(w, http.StatusOK, result)
}
