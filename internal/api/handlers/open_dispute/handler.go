package open_dispute

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
	msgNotDisputable      = "спор можно открыть только по оплаченному бронированию"
	msgAlreadyOpen        = "спор по этому бронированию уже открыт"
	msgStateChanged       = "состояние спора изменилось, повторите запрос"
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

// OpenDisputeRequest HTTP request model
type OpenDisputeRequest struct {
	Message      string   `json:"message"`
	EvidenceURLs []string `json:"evidenceUrls,omitempty"`
}

// Handle POST /api/v1/bookings/{id}/dispute
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || bookingID <= 0 {
		h.logger.Warn("POST /bookings/{id}/dispute - Invalid id: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAuthRequired)
		return
	}

	var req OpenDisputeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/dispute - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Open(r.Context(), bookingID, &models.OpenDisputeRequest{
		Actor:        actor,
		Message:      req.Message,
		EvidenceURLs: req.EvidenceURLs,
	})
	if err != nil {
		switch {
		case errors.Is(err, disputesService.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/dispute - Not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, disputesService.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/dispute - Access denied: booking_id=%d, actor=%d", bookingID, actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, disputesService.ErrNotDisputable):
			h.logger.Warn("POST /bookings/{id}/dispute - Not disputable: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotDisputable)

		case errors.Is(err, disputesService.ErrDisputeAlreadyOpen):
			h.logger.Warn("POST /bookings/{id}/dispute - Already open: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyOpen)

		case errors.Is(err, disputesService.ErrDisputeStateChanged):
			h.logger.Warn("POST /bookings/{id}/dispute - State changed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgStateChanged)

		case errors.Is(err, disputesService.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/dispute - Invalid input: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/dispute - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/dispute - Opened: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
