package get_blocks

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/handlers"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/api/middleware"
	scheduleService "github.com/golfpro-saas/GolfPro-BookingService/internal/service/schedule"
	"github.com/golfpro-saas/GolfPro-BookingService/internal/service/schedule/models"
)

const (
	msgInvalidProID    = "некорректный идентификатор преподавателя"
	msgInvalidInterval = "некорректный интервал запроса"
	msgAuthRequired    = "требуется аутентификация"
	msgAccessDenied    = "доступ запрещен"
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

// Handle GET /api/v1/pros/{proId}/blocks?from=...&to=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	proID, err := strconv.ParseInt(mux.Vars(r)["proId"], 10, 64)
	if err != nil || proID <= 0 {
		h.logger.Warn("GET /pros/{proId}/blocks - Invalid proId: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProID)
		return
	}

	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, msgAuthRequired)
		return
	}

	query := r.URL.Query()
	from, err := time.Parse(time.RFC3339, query.Get("from"))
	if err != nil {
		h.logger.Warn("GET /pros/{proId}/blocks - Invalid from: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}
	to, err := time.Parse(time.RFC3339, query.Get("to"))
	if err != nil {
		h.logger.Warn("GET /pros/{proId}/blocks - Invalid to: %v", err)
		handlers.RespondBadRequest(w, msgInvalidInterval)
		return
	}

	result, err := h.service.GetBlocks(r.Context(), proID, &models.GetBlocksRequest{
		Actor: actor,
		From:  from,
		To:    to,
	})
	if err != nil {
		switch {
		case errors.Is(err, scheduleService.ErrAccessDenied):
			h.logger.Warn("GET /pros/{proId}/blocks - Access denied: pro_id=%d, actor=%d", proID, actor.ID)
			handlers.RespondForbidden(w, msgAccessDenied)

		case errors.Is(err, scheduleService.ErrInvalidInterval):
			h.logger.Warn("GET /pros/{proId}/blocks - Invalid interval: pro_id=%d", proID)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("GET /pros/{proId}/blocks - Failed: pro_id=%d, error=%v", proID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
