package get_schedule

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers"
)

const (
	msgInvalidProID = "некорректный идентификатор преподавателя"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/pros/{proId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	proID, err := strconv.ParseInt(mux.Vars(r)["proId"], 10, 64)
	if err != nil || proID <= 0 {
		h.logger.Warn("GET /pros/{proId}/schedule - Invalid proId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProID)
		return
	}

	result, err := h.service.GetSchedule(r.Context(), proID)
	if err != nil {
		h.logger.Error("GET /pros/{proId}/schedule - Failed: pro_id=%d, error=%v", proID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
