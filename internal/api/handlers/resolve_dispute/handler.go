package resolve_dispute

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/middleware"
	disputesService "github.com/golfpro-saas/GolfPro-BookingService/internal/service/disputes"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/disputes/models"
)

const (
	msgInvalidBookingID   = "некорректный идентификатор бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgAuthRequired       = "требуется аутентификация"
	msgBookingNotFound    = "бронирование не найдено"
	msgAccessDenied       = "доступ запрещен"
	msgNoActiveDispute    = "по этому бронированию нет активного спора"
	msgInvalidTransition  = "разрешение недопустимо в текущем состоянии спора"
	msgStateChanged       = "состояние спора изменилось, повторите запрос"
	msgRefundFailed       = "не удалось выполнить возврат средств"
)

type Handler struct {
	service DisputesService
	logger  Logger
}

func NewHandler(service DisputesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ResolveDisputeRequest HTTP request model
type ResolveDisputeRequest struct {
	Resolution   string `json:"resolution"`
	Notes        string `json:"notes,omitempty"`
	RefundAmount *int64 `json:"refundAmount,omitempty"`
}

// Handle POST /api/v1/bookings/{id}/dispute/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /bookings/{id}/dispute/resolve - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAuthRequired)
		return
	}

	var req ResolveDisputeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/dispute/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Resolve(r.Context(), bookingID, &models.ResolveDisputeRequest{
		Actor:        actor,
		Resolution:   req.Resolution,
		Notes:        req.Notes,
		RefundAmount: req.RefundAmount,
	})
	if err != nil {
		switch {
		case errors.Is(err, disputesService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/dispute/resolve - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, disputesService.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/dispute/resolve - Access denied: booking_id=%d, actor=%d", bookingID, actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, disputesService.ErrNoActiveDispute):
			h.logger.Warn("POST /bookings/{id}/dispute/resolve - No active dispute: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNoActiveDispute)

		case errors.Is(err, disputesService.ErrInvalidTransition):
			h.logger.Warn("POST /bookings/{id}/dispute/resolve - Invalid transition: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, disputesService.ErrDisputeStateChanged):
			h.logger.Warn("POST /bookings/{id}/dispute/resolve - State changed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgStateChanged)

		case errors.Is(err, disputesService.ErrRefundFailed):
			h.logger.Error("POST /bookings/{id}/dispute/resolve - Refund failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgRefundFailed)

		case errors.Is(err, disputesService.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/dispute/resolve - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/dispute/resolve - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/dispute/resolve - Resolved: booking_id=%d, resolution=%s", bookingID, req.Resolution)
	handlers.RespondJSON(w, http.StatusOK, result)
}
