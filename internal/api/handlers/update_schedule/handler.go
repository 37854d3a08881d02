package update_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/middleware"
	scheduleService "github.com/golfpro-saas/GolfPro-BookingService/internal/service/schedule"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidProID       = "некорректный идентификатор преподавателя"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRule        = "некорректное правило доступности"
	msgAuthRequired       = "требуется аутентификация"
	msgAccessDenied       = "доступ запрещен"
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

// UpdateScheduleRequest HTTP request model
type UpdateScheduleRequest struct {
	Rules []models.RuleInput `json:"rules"`
}

// Handle PUT /api/v1/pros/{proId}/schedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	proID, err := strconv.ParseInt(mux.Vars(r)["proId"], 10, 64)
	if err != nil || proID <= 0 {
		h.logger.Warn("PUT /pros/{proId}/schedule - Invalid proId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAuthRequired)
		return
	}

	var req UpdateScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /pros/{proId}/schedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSchedule(r.Context(), proID, &models.UpdateScheduleRequest{
		Actor: actor,
		Rules: req.Rules,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("PUT /pros/{proId}/schedule - Access denied: pro_id=%d, actor=%d", proID, actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, scheduleService.ErrInvalidRule):
			h.logger.Warn("PUT /pros/{proId}/schedule - Invalid rule: pro_id=%d, error=%v", proID, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, scheduleService.ErrInvalidInput):
			h.logger.Warn("PUT /pros/{proId}/schedule - Invalid input: pro_id=%d", proID)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT /pros/{proId}/schedule - Failed: pro_id=%d, error=%v", proID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /pros/{proId}/schedule - Updated: pro_id=%d, rules=%d", proID, len(req.Rules))
	handlers.RespondJSON(w, http.StatusOK, result)
}
