package finalize_payment

import (
	"errors"
	"net/http"
	"time"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers"
	finalizePayment "github.com/golfpro-saas/GolfPro-BookingService/internal/usecase/finalize_payment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgBookingNotFound     = "бронирование по платежу не найдено"
	msgPaymentNotCompleted = "платеж не подтвержден провайдером"
)

type Handler struct {
	useCase FinalizePaymentUseCase
	logger  Logger
}

func NewHandler(useCase FinalizePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// FinalizeRequest HTTP request model
type FinalizeRequest struct {
	PaymentRef string `json:"paymentRef"`
}

// FinalizeResponse HTTP response model
type FinalizeResponse struct {
	BookingID        int64  `json:"bookingId"`
	Status           string `json:"status"`
	PaymentStatus    string `json:"paymentStatus"`
	StartAt          string `json:"startAt"`
	EndAt            string `json:"endAt"`
	AlreadyFinalized bool   `json:"alreadyFinalized"`
}

// Handle POST /api/v1/bookings/payment/finalize
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req FinalizeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/payment/finalize - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &finalizePayment.Request{PaymentRef: req.PaymentRef})
	if err != nil {
		switch {
		case errors.Is(err, finalizePayment.ErrInvalidInput):
			h.logger.Warn("POST /bookings/payment/finalize - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		case errors.Is(err, finalizePayment.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/payment/finalize - Booking not found: ref=%s", req.PaymentRef)
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, finalizePayment.ErrPaymentNotCompleted):
			h.logger.Warn("POST /bookings/payment/finalize - Payment not completed: ref=%s", req.PaymentRef)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentNotCompleted)

		default:
			h.logger.Error("POST /bookings/payment/finalize - Failed: ref=%s, error=%v", req.PaymentRef, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/payment/finalize - Finalized: booking_id=%d, already=%v",
		result.BookingID, result.AlreadyFinalized)
	handlers.RespondJSON(w, http.StatusOK, &FinalizeResponse{
		BookingID:        result.BookingID,
		Status:           result.Status,
		PaymentStatus:    result.PaymentStatus,
		StartAt:          result.StartAt.Format(time.RFC3339),
		EndAt:            result.EndAt.Format(time.RFC3339),
		AlreadyFinalized: result.AlreadyFinalized,
	})
}
