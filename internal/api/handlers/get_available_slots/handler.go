package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/domain"
	getSlots "github.com/golfpro-saas/GolfPro-BookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidProID = "некорректный идентификатор преподавателя"
	msgInvalidDate  = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast   = "дата не может быть в прошлом"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/pros/{proId}/slots?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	proID, err := strconv.ParseInt(mux.Vars(r)["proId"], 10, 64)
	if err != nil || proID <= 0 {
		h.logger.Warn("GET /pros/{proId}/slots - Invalid proId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /pros/{proId}/slots - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getSlots.Request{
		ProID: proID,
		Date:  date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getSlots.ErrInvalidDate):
			h.logger.Warn("GET /pros/{proId}/slots - Date in past: pro_id=%d", proID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getSlots.ErrInvalidInput):
			h.logger.Warn("GET /pros/{proId}/slots - Invalid input: pro_id=%d", proID)
			handlers.RespondBadRequest(w, msgInvalidProID)

		default:
			h.logger.Error("GET /pros/{proId}/slots - Failed: pro_id=%d, error=%v", proID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
