package create_booking

import (
	"errors"
	"net/http"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/middleware"
	createBooking "github.com/golfpro-saas/GolfPro-BookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidTime         = "некорректный формат времени, ожидается ISO 8601"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgOutsideAvailability = "выбранное время вне рабочих часов преподавателя"
	msgInvalidDuration     = "длительность не совпадает с длительностью слота преподавателя"
	msgPaymentInitFailed   = "не удалось создать сессию оплаты депозита"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	actor, hasActor := middleware.ActorFromContext(r.Context())

	useCaseReq, err := req.ToUseCaseRequest(customerFromActor(actor, hasActor))
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotNotAvailable):
			h.logger.Warn("POST /bookings - Slot not available: pro_id=%d", req.ProID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createBooking.ErrOutsideAvailability):
			h.logger.Warn("POST /bookings - Outside availability: pro_id=%d", req.ProID)
			handlers.RespondBadRequest(w, msgOutsideAvailability)

		case errors.Is(err, createBooking.ErrInvalidDuration):
			h.logger.Warn("POST /bookings - Invalid duration: pro_id=%d", req.ProID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: pro_id=%d, error=%v", req.ProID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, createBooking.ErrPaymentInitFailed):
			h.logger.Error("POST /bookings - Payment init failed: pro_id=%d, error=%v", req.ProID, err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentInitFailed)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: pro_id=%d, error=%v", req.ProID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, pro_id=%d", result.ID, result.ProID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
